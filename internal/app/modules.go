package app

import (
	"context"
	"time"

	"github.com/KirkDiggler/tiertest/internal/common/uuid"
	"github.com/KirkDiggler/tiertest/internal/config"
	"github.com/KirkDiggler/tiertest/internal/handlers/discord"
	"github.com/KirkDiggler/tiertest/internal/logger"
	"github.com/KirkDiggler/tiertest/internal/metrics"
	tiertestRepo "github.com/KirkDiggler/tiertest/internal/repositories/tiertest"
	"github.com/KirkDiggler/tiertest/internal/services/rolesync"
	"github.com/KirkDiggler/tiertest/internal/services/tiertest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

const (
	// OpenTimeout bounds connecting to the record store
	OpenTimeout = 10 * time.Second

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout = 10 * time.Second
)

// Options are the process-level settings from flags and environment
type Options struct {
	// ConfigPath is the configuration document location
	ConfigPath string

	LogLevel string

	// MetricsAddr serves /metrics when set, e.g. ":9090"
	MetricsAddr string

	ApplicationID string

	// GuildID registers commands for one guild only
	GuildID string

	// SyncConcurrency bounds parallel role grants
	SyncConcurrency int
}

// Module wires the bot. Everything hangs off the configuration store, so a
// bad document fails startup before any connection is made.
func Module(opts Options) fx.Option {
	return fx.Options(
		fx.Supply(opts),
		fx.Provide(ProvideLogger),
		fx.WithLogger(func(l zerolog.Logger) fxevent.Logger {
			return &fxevent.ConsoleLogger{W: l.With().Str("component", "fx").Logger()}
		}),
		fx.Provide(ProvideSettingsStore),
		fx.Provide(ProvideMetrics),
		// repos
		fx.Provide(ProvideRepository),
		// svc
		fx.Provide(ProvideRoleSync),
		fx.Provide(ProvideTierTestService),
		// transport
		fx.Provide(ProvideBot),
		fx.Invoke(RegisterHooks),
	)
}

func ProvideLogger(opts Options) (zerolog.Logger, error) {
	return logger.New(opts.LogLevel)
}

func ProvideSettingsStore(opts Options, log zerolog.Logger) (*config.Store, error) {
	return config.NewStore(&config.StoreConfig{
		Path:   opts.ConfigPath,
		Logger: log.With().Str("component", "config").Logger(),
	})
}

func ProvideMetrics() (*metrics.Metrics, error) {
	return metrics.New(prometheus.NewRegistry())
}

// ProvideRepository opens the record store named by the configuration. The
// location is read once; a reload that changes it takes effect after restart.
func ProvideRepository(lc fx.Lifecycle, store *config.Store, log zerolog.Logger) (tiertestRepo.Repository, error) {
	ctx, cancel := context.WithTimeout(context.Background(), OpenTimeout)
	defer cancel()

	repoLogger := log.With().Str("component", "record_store").Logger()
	repo, err := tiertestRepo.Open(ctx, &tiertestRepo.OpenInput{
		Location: store.Current().Database,
		Logger:   repoLogger,
	})
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if err := repo.Close(); err != nil {
				repoLogger.Warn().Err(err).Msg("error closing record store")
			}
			return nil
		},
	})

	return repo, nil
}

func ProvideRoleSync(opts Options, log zerolog.Logger, m *metrics.Metrics) (rolesync.Service, error) {
	svc, err := rolesync.New(&rolesync.Config{
		Concurrency: opts.SyncConcurrency,
		Logger:      log.With().Str("component", "rolesync").Logger(),
		Metrics:     m,
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func ProvideTierTestService(
	repo tiertestRepo.Repository,
	roleSync rolesync.Service,
	store *config.Store,
	log zerolog.Logger,
	m *metrics.Metrics,
) (tiertest.Service, error) {
	svc, err := tiertest.New(&tiertest.Config{
		Repository:    repo,
		RoleSync:      roleSync,
		Settings:      store,
		UUIDGenerator: uuid.New(),
		Logger:        log.With().Str("component", "tiertest").Logger(),
		Metrics:       m,
	})
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func ProvideBot(
	opts Options,
	store *config.Store,
	svc tiertest.Service,
	log zerolog.Logger,
	m *metrics.Metrics,
) (*discord.Bot, error) {
	return discord.New(&discord.Config{
		Token:           store.Current().Token,
		ApplicationID:   opts.ApplicationID,
		GuildID:         opts.GuildID,
		Settings:        store,
		TierTestService: svc,
		Logger:          log.With().Str("component", "discord").Logger(),
		Metrics:         m,
	})
}

// RegisterHooks starts the bot and, when configured, the metrics server
func RegisterHooks(lc fx.Lifecycle, opts Options, bot *discord.Bot, m *metrics.Metrics, log zerolog.Logger) {
	if opts.MetricsAddr != "" {
		srv := metrics.NewServer(opts.MetricsAddr, m, log.With().Str("component", "metrics").Logger())
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				srv.Start()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return srv.Stop(ctx)
			},
		})
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return bot.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("shutting down bot")
			return bot.Stop()
		},
	})
}
