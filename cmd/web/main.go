package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/site-report/pkg/server"
	"github.com/de-tools/site-report/pkg/services/config"
	"github.com/de-tools/site-report/pkg/services/export"
	"github.com/de-tools/site-report/pkg/services/export/bundle"
	"github.com/de-tools/site-report/pkg/services/export/docx"
	"github.com/de-tools/site-report/pkg/services/export/pdf"
	"github.com/de-tools/site-report/pkg/services/export/preview"
	"github.com/de-tools/site-report/pkg/services/export/xlsx"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for site report exports",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "site-report.yaml",
		"Path to the service configuration file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	store := cfg.Store()
	pdfRenderer := pdf.NewRenderer(store)
	xlsxRenderer := xlsx.NewRenderer(store)
	registry := export.NewRegistry(
		pdfRenderer,
		xlsxRenderer,
		docx.NewRenderer(),
		bundle.NewBundler(pdfRenderer, xlsxRenderer),
	)

	addr := cfg.Server.Addr
	if host, port := os.Getenv("SERVER_HOST"), os.Getenv("SERVER_PORT"); host != "" && port != "" {
		addr = net.JoinHostPort(host, port)
	}

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)

	api := server.NewWebAPI(logger, server.Config{
		Addr:            addr,
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Registry: registry,
			Previews: preview.NewStore(),
			Logger:   logger,
		},
	})

	return api.Start()
}
