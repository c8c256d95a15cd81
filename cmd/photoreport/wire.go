package main

import (
	"fmt"

	"github.com/custodia-labs/photoreport-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/photoreport-cli/internal/adapters/driven/imaging"
	"github.com/custodia-labs/photoreport-cli/internal/adapters/driven/pdf"
	"github.com/custodia-labs/photoreport-cli/internal/adapters/driven/photodir"
	"github.com/custodia-labs/photoreport-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/photoreport-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/photoreport-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/photoreport-cli/internal/core/ports/driven"
	"github.com/custodia-labs/photoreport-cli/internal/core/services"
	"github.com/custodia-labs/photoreport-cli/internal/logger"
)

// bootstrap builds the driven adapters and core services for one command.
func bootstrap(opts cli.Options) (*cli.Services, func() error, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening config: %w", err)
	}

	var (
		reportStore driven.ReportStore
		cleanup     = func() error { return nil }
	)
	if opts.Ephemeral {
		logger.Debug("using in-memory report store")
		reportStore = memory.NewReportStore()
	} else {
		store, err := sqlite.NewStore(opts.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		logger.Debug("using database %s", store.Path())
		reportStore = store.ReportStore()
		cleanup = store.Close
	}

	photos := photodir.New()
	images := imaging.NewProcessor()
	renderer := pdf.NewRenderer(images)

	settings := services.NewSettingsService(configStore)
	report := services.NewReportService(reportStore, photos, images, settings)
	export := services.NewExportService(reportStore, renderer, photos, images, settings)
	watch := services.NewWatchService(photos, export, services.DefaultWatchConfig())

	return &cli.Services{
		Report:   report,
		Export:   export,
		Settings: settings,
		Watch:    watch,
	}, cleanup, nil
}
