// -----------------------------------------------------------------------
// Application wiring - constructs services, storage, and handlers
// -----------------------------------------------------------------------

package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/auspex/internal/common"
	"github.com/ternarybob/auspex/internal/handlers"
	"github.com/ternarybob/auspex/internal/interfaces"
	"github.com/ternarybob/auspex/internal/services/collector"
	"github.com/ternarybob/auspex/internal/services/corpus"
	"github.com/ternarybob/auspex/internal/services/dispatch"
	"github.com/ternarybob/auspex/internal/services/gazette"
	"github.com/ternarybob/auspex/internal/services/mailer"
	"github.com/ternarybob/auspex/internal/services/scheduler"
	"github.com/ternarybob/auspex/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	// Core services
	CorpusService    interfaces.CorpusService
	CollectorService interfaces.CollectorService
	GazetteService   interfaces.GazetteService
	MailerService    interfaces.MailerService
	Dispatcher       interfaces.Dispatcher
	Orchestrator     interfaces.Orchestrator

	// HTTP handlers
	APIHandler        *handlers.APIHandler
	ReportHandler     *handlers.ReportHandler
	SchedulerHandler  *handlers.SchedulerHandler
	DataHandler       *handlers.DataHandler
	HistoryHandler    *handlers.HistoryHandler
	SubscriberHandler *handlers.SubscriberHandler
	StatusHandler     *handlers.StatusHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	storageManager, err := badger.NewManager(logger, &cfg.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.StorageManager = storageManager

	if err := app.initServices(); err != nil {
		storageManager.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.initHandlers()

	return app, nil
}

func (a *App) initServices() error {
	corpusService, err := corpus.NewService(a.StorageManager.CorpusStorage(), a.Logger)
	if err != nil {
		return err
	}
	a.CorpusService = corpusService

	// No sentiment scorer is wired yet, so records carry zero scores until
	// one is configured. Reports handle that gracefully.
	a.CollectorService = collector.NewService(&a.Config.Collector, a.CorpusService, nil, a.Logger)
	a.GazetteService = gazette.NewService(&a.Config.Gazette, a.Logger)
	a.MailerService = mailer.NewService(&a.Config.Mail, a.Logger)

	a.Dispatcher = dispatch.NewService(
		a.CorpusService,
		a.GazetteService,
		a.MailerService,
		a.StorageManager.SubscriberStorage(),
		a.Logger,
	)

	a.Orchestrator = scheduler.NewOrchestrator(
		&a.Config.Scheduler,
		func() error { return a.CollectorService.RefreshNews(context.Background()) },
		func() error { return a.CollectorService.RefreshMarket(context.Background()) },
		func() error { return a.Dispatcher.DispatchDaily(context.Background()) },
		a.Logger,
	)

	return nil
}

func (a *App) initHandlers() {
	a.APIHandler = handlers.NewAPIHandler()
	a.ReportHandler = handlers.NewReportHandler(a.CorpusService, a.GazetteService, a.Logger)
	a.SchedulerHandler = handlers.NewSchedulerHandler(a.Orchestrator, a.Logger)
	a.DataHandler = handlers.NewDataHandler(a.CorpusService, a.Logger)
	a.HistoryHandler = handlers.NewHistoryHandler(a.CollectorService, a.Logger)
	a.SubscriberHandler = handlers.NewSubscriberHandler(a.StorageManager.SubscriberStorage(), a.Logger)
	a.StatusHandler = handlers.NewStatusHandler(a.CorpusService, a.Orchestrator, a.Logger)
}

// Start begins background execution of the refresh orchestrator
func (a *App) Start() error {
	if err := a.Orchestrator.Start(); err != nil {
		return fmt.Errorf("failed to start orchestrator: %w", err)
	}
	return nil
}

// Close shuts down components in reverse dependency order
func (a *App) Close() {
	if a.Orchestrator != nil {
		if err := a.Orchestrator.Stop(); err != nil {
			a.Logger.Warn().Err(err).Msg("Orchestrator stop failed")
		}
	}

	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Storage close failed")
		}
	}

	a.Logger.Info().Msg("Application closed")
}
