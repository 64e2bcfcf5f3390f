package main

import (
	"fmt"

	"github.com/custodia-labs/bismuth/internal/adapters/driven/config/file"
	"github.com/custodia-labs/bismuth/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/bismuth/internal/adapters/driving/cli"
	"github.com/custodia-labs/bismuth/internal/core/services"
	"github.com/custodia-labs/bismuth/internal/logger"
	"github.com/custodia-labs/bismuth/internal/normalisers"
)

// bootstrap opens the config file and the database and builds the services.
// The data directory comes from --data-dir, then storage.data_dir, then
// the default under the home directory.
func bootstrap(opts cli.GlobalOptions) (*cli.Services, func() error, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	logger.Debug("Config: %s", configStore.Path())

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("reading settings: %w", err)
	}

	dataDir := opts.DataDir
	if dataDir == "" {
		dataDir = settings.Storage.DataDir
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Database: %s", store.Path())

	content := store.ContentStore()
	searchService := services.NewSearchService(content)
	searchService.SetSnippetContext(settings.Search.SnippetContext)

	svcs := &cli.Services{
		Search:   searchService,
		Page:     services.NewPageService(content),
		Block:    services.NewBlockService(content),
		Export:   services.NewExportService(content),
		Import:   services.NewImportService(content, normalisers.Default()),
		Settings: settingsService,
	}
	return svcs, store.Close, nil
}
