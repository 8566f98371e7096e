package main

import (
	"fmt"
	"os"

	"github.com/de-tools/site-report/pkg/runtime/terminal"
	"github.com/de-tools/site-report/pkg/services/assets"
	"github.com/de-tools/site-report/pkg/services/export"
	"github.com/de-tools/site-report/pkg/services/export/bundle"
	"github.com/de-tools/site-report/pkg/services/export/docx"
	"github.com/de-tools/site-report/pkg/services/export/pdf"
	"github.com/de-tools/site-report/pkg/services/export/xlsx"
)

func main() {
	assetDir := os.Getenv("SITE_REPORT_ASSETS")
	if assetDir == "" {
		assetDir = "assets"
	}
	store := assets.NewFileStore(assetDir)

	pdfRenderer := pdf.NewRenderer(store)
	xlsxRenderer := xlsx.NewRenderer(store)

	cli := terminal.NewCLI(terminal.Options{
		Registry: export.NewRegistry(
			pdfRenderer,
			xlsxRenderer,
			docx.NewRenderer(),
			bundle.NewBundler(pdfRenderer, xlsxRenderer),
		),
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
