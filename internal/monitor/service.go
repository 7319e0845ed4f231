package monitor

import (
	"context"
	"errors"
	"io"

	"github.com/aleister1102/companywatch/internal/config"
	"github.com/aleister1102/companywatch/internal/datastore"
	"github.com/aleister1102/companywatch/internal/models"
	"github.com/aleister1102/companywatch/internal/notifier/discord"
	"github.com/aleister1102/companywatch/internal/registry"
	"github.com/aleister1102/companywatch/internal/reporter"
	"github.com/rs/zerolog"
)

// Service wires registry, store, presenters and scheduler for one company
type Service struct {
	cfg        *config.GlobalConfig
	logger     zerolog.Logger
	store      models.SnapshotStore
	controller *Controller
	scheduler  *Scheduler
}

// ServiceOption customises how a Service is assembled
type ServiceOption func(*serviceDeps)

type serviceDeps struct {
	fetcher       RegistryFetcher
	store         models.SnapshotStore
	consoleOut    io.Writer
	schedulerOpts []SchedulerOption
}

// WithRegistryFetcher replaces the Companies House client
func WithRegistryFetcher(fetcher RegistryFetcher) ServiceOption {
	return func(d *serviceDeps) { d.fetcher = fetcher }
}

// WithSnapshotStore replaces the configured store
func WithSnapshotStore(store models.SnapshotStore) ServiceOption {
	return func(d *serviceDeps) { d.store = store }
}

// WithConsoleWriter redirects console output
func WithConsoleWriter(out io.Writer) ServiceOption {
	return func(d *serviceDeps) { d.consoleOut = out }
}

// WithSchedulerOptions forwards options to the scheduler
func WithSchedulerOptions(opts ...SchedulerOption) ServiceOption {
	return func(d *serviceDeps) { d.schedulerOpts = append(d.schedulerOpts, opts...) }
}

// NewService builds every component from cfg
func NewService(cfg *config.GlobalConfig, logger zerolog.Logger, opts ...ServiceOption) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	deps := &serviceDeps{}
	for _, opt := range opts {
		opt(deps)
	}

	serviceLogger := logger.With().Str("component", "MonitorService").Logger()
	companyNumber := cfg.MonitorConfig.CompanyNumber

	fetcher := deps.fetcher
	if fetcher == nil {
		client, err := registry.NewClient(cfg.RegistryConfig, logger)
		if err != nil {
			return nil, err
		}
		fetcher = client
	}

	store := deps.store
	if store == nil {
		var err error
		store, err = datastore.NewSnapshotStore(cfg.StorageConfig, logger)
		if err != nil {
			return nil, err
		}
	}

	presenter, err := buildPresenter(cfg.NotificationConfig, deps.consoleOut, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	if presenter.Len() == 0 {
		serviceLogger.Warn().Msg("No presenters enabled, changes will only be logged")
	}

	specs := CompanyFieldSpecs(fetcher, companyNumber)
	rep := reporter.NewReporter(presenter, logger, fieldViews(specs)...)
	controller := NewController(companyNumber, specs, store, rep, logger,
		WithConcurrentFetches(cfg.MonitorConfig.ConcurrentFetches))
	scheduler := NewScheduler(companyNumber, controller, rep,
		cfg.MonitorConfig.PollInterval(), cfg.MonitorConfig.NoChangeInterval(),
		logger, deps.schedulerOpts...)

	serviceLogger.Info().
		Str("entity_id", companyNumber).
		Str("storage_backend", cfg.StorageConfig.Backend).
		Int("presenters", presenter.Len()).
		Msg("Monitor service initialized")

	return &Service{
		cfg:        cfg,
		logger:     serviceLogger,
		store:      store,
		controller: controller,
		scheduler:  scheduler,
	}, nil
}

func buildPresenter(cfg config.NotificationConfig, consoleOut io.Writer, logger zerolog.Logger) (*reporter.MultiPresenter, error) {
	var presenters []models.Presenter
	if !cfg.DisableConsole {
		presenters = append(presenters, reporter.NewConsolePresenter(consoleOut))
	}
	if cfg.DiscordWebhookURL != "" {
		notifier, err := discord.NewDiscordNotifier(cfg, logger)
		if err != nil {
			return nil, err
		}
		presenters = append(presenters, notifier)
	}
	return reporter.NewMultiPresenter(presenters...), nil
}

// Run starts the polling loop and blocks until ctx is canceled
func (s *Service) Run(ctx context.Context) error {
	return s.scheduler.Run(ctx)
}

// RunOnce runs a single cycle
func (s *Service) RunOnce(ctx context.Context) (CycleResult, error) {
	return s.scheduler.RunOnce(ctx)
}

// Stats returns the scheduler counters
func (s *Service) Stats() Stats {
	return s.scheduler.Stats()
}

// Close releases the snapshot store
func (s *Service) Close() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Close(); err != nil {
		s.logger.Error().Err(err).Msg("Failed to close snapshot store")
		return err
	}
	return nil
}
