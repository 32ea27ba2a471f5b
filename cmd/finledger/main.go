package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"finledger/internal/auth"
	"finledger/internal/backend"
	"finledger/internal/cli"
	"finledger/internal/export"
	"finledger/internal/ledger"
	"finledger/internal/log"
	"finledger/internal/storage"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)

	logger.Info("Starting finledger")

	cfg := cli.LoadAndValidateConfig(logger)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := backend.NewFactory(logger.WithComponent(log.ComponentBackend).Logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := result.Cleanup(); err != nil {
			logger.Error("Cleanup failed", "error", err)
		}
	}()

	csvExporter, err := export.NewCSVExporter(cfg.ExportDir)
	if err != nil {
		logger.Error("Failed to initialize CSV exporter", "error", err)
		os.Exit(1)
	}

	// Google Sheets export is optional; only wired when configured.
	var sheets export.TransactionExporter
	if os.Getenv("GOOGLE_SPREADSHEET_ID") != "" {
		sheetsExporter, err := export.NewSheetsExporterFromEnv(ctx)
		if err != nil {
			logger.Warn("Google Sheets export disabled", "error", err)
		} else {
			sheets = sheetsExporter
			logger.Info("Google Sheets export enabled")
		}
	}

	wallets := ledger.NewMemoryStore()
	app := cli.NewApp(cli.Options{
		Auth:    auth.NewService(auth.NewMemoryUserStore()),
		Ledger:  ledger.NewService(wallets),
		Wallets: wallets,
		Archive: storage.NewWalletArchive(result.Blobs),
		Alerts:  result.Alerts,
		CSV:     csvExporter,
		Sheets:  sheets,
		In:      os.Stdin,
		Out:     os.Stdout,
	})

	if err := app.Run(ctx); err != nil {
		logger.Error("Session ended with error", "error", err)
		os.Exit(1)
	}
}
