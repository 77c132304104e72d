// Package app wires configuration, storage, adapters, and handlers into a
// running application.
package app

import (
	"github.com/joblinours/cyberdash/internal/common"
	"github.com/joblinours/cyberdash/internal/config"
	"github.com/joblinours/cyberdash/internal/feeds"
	"github.com/joblinours/cyberdash/internal/handlers"
	"github.com/joblinours/cyberdash/internal/refresh"
	"github.com/joblinours/cyberdash/internal/store"
)

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *common.Logger

	Store       *store.FileStore
	Coordinator *refresh.Coordinator

	// HTTP handlers
	DashboardHandler *handlers.DashboardHandler
	SnapshotHandler  *handlers.SnapshotHandler
	HealthHandler    *handlers.HealthHandler
}

// New initializes the application with all dependencies. configPath is the
// primary config file the refresh interval is live-reloaded from; an empty
// path pins the interval to the loaded config value.
func New(cfg *config.Config, configPath string, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	var provider config.IntervalProvider
	if configPath != "" {
		provider = config.NewFileIntervalProvider(configPath, cfg.Refresh.Interval())
	} else {
		provider = config.StaticInterval(cfg.Refresh.Interval())
	}

	a.Store = store.New(cfg.Cache.Dir, provider, logger)

	feedList, err := config.LoadFeeds(cfg.Sources.FeedsFile)
	if err != nil {
		logger.Warn().Str("file", cfg.Sources.FeedsFile).Err(err).Msg("feed list unavailable, news will be empty")
	}
	assets, err := config.LoadAssets(cfg.Sources.MarketsFile)
	if err != nil {
		logger.Warn().Str("file", cfg.Sources.MarketsFile).Err(err).Msg("asset list unavailable, markets will be empty")
	}
	shortcuts, err := config.LoadShortcuts(cfg.Sources.ShortcutsFile)
	if err != nil {
		logger.Warn().Str("file", cfg.Sources.ShortcutsFile).Err(err).Msg("shortcut list unavailable")
	}

	a.Coordinator = refresh.New(a.Store, provider, logger,
		feeds.NewNewsAdapter(feedList),
		feeds.NewVulnAdapter(cfg.Sources.NVDBaseURL),
		feeds.NewIncidentAdapter(cfg.Sources.IncidentsURL),
		feeds.NewMarketAdapter(assets, cfg.Sources.CoinGeckoURL, cfg.Sources.QuotesURL),
	)

	a.SnapshotHandler = handlers.NewSnapshotHandler(logger, a.Coordinator)
	a.HealthHandler = handlers.NewHealthHandler(logger)
	a.DashboardHandler = handlers.NewDashboardHandler(logger, a.Coordinator, shortcuts, cfg.UI)

	logger.Info().
		Int("feeds", len(feedList)).
		Int("assets", len(assets)).
		Int("shortcuts", len(shortcuts)).
		Msg("application initialization complete")

	return a, nil
}
