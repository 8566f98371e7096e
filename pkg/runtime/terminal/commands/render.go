package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/site-report/pkg/models/api"
	"github.com/de-tools/site-report/pkg/services/export"
)

type RenderCmd struct {
	format   string
	outDir   string
	registry *export.Registry
}

func NewRenderCmd(registry *export.Registry) *cobra.Command {
	rc := &RenderCmd{registry: registry}
	cmd := &cobra.Command{
		Use:   "render <report.json>",
		Short: "Render a report file into an export artifact",
		Args:  cobra.ExactArgs(1),
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.format, "format", "pdf", "Output format (pdf, xlsx, docx, zip)")
	cmd.Flags().StringVar(&rc.outDir, "out", ".", "Directory to write the artifact into")

	return cmd
}

func (rc *RenderCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read report file: %w", err)
	}
	var report api.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return fmt.Errorf("failed to parse report file: %w", err)
	}

	renderer, err := rc.registry.Renderer(export.Format(rc.format))
	if err != nil {
		return err
	}

	doc, err := renderer.Render(ctx, report.ToDomain())
	if err != nil {
		return err
	}

	path := filepath.Join(rc.outDir, doc.FileName)
	if err := os.WriteFile(path, doc.Content, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}

	cmd.Printf("wrote %s (%d bytes)\n", path, len(doc.Content))
	return nil
}
