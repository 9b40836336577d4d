package di

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-telegram/bot"
	"github.com/jmoiron/sqlx"
	"github.com/samber/do/v2"
	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/reshetovitsme/mobile-portal/internal/importer"
	favouriteRepo "github.com/reshetovitsme/mobile-portal/internal/modules/favourite/repository"
	favouriteService "github.com/reshetovitsme/mobile-portal/internal/modules/favourite/service"
	featureRepo "github.com/reshetovitsme/mobile-portal/internal/modules/featurevote/repository"
	featureService "github.com/reshetovitsme/mobile-portal/internal/modules/featurevote/service"
	feedRepo "github.com/reshetovitsme/mobile-portal/internal/modules/feed/repository"
	feedService "github.com/reshetovitsme/mobile-portal/internal/modules/feed/service"
	feedbackRepo "github.com/reshetovitsme/mobile-portal/internal/modules/feedback/repository"
	feedbackService "github.com/reshetovitsme/mobile-portal/internal/modules/feedback/service"
	"github.com/reshetovitsme/mobile-portal/internal/modules/place/ldb"
	placeRepo "github.com/reshetovitsme/mobile-portal/internal/modules/place/repository"
	placeService "github.com/reshetovitsme/mobile-portal/internal/modules/place/service"
	podcastRepo "github.com/reshetovitsme/mobile-portal/internal/modules/podcast/repository"
	podcastService "github.com/reshetovitsme/mobile-portal/internal/modules/podcast/service"
	userRepo "github.com/reshetovitsme/mobile-portal/internal/modules/user/repository"
	userService "github.com/reshetovitsme/mobile-portal/internal/modules/user/service"
	"github.com/reshetovitsme/mobile-portal/internal/seed"
	"github.com/reshetovitsme/mobile-portal/internal/shared/config"
	"github.com/reshetovitsme/mobile-portal/internal/shared/database"
	"github.com/reshetovitsme/mobile-portal/internal/shared/notify"
	"github.com/reshetovitsme/mobile-portal/internal/shared/render"
	"github.com/reshetovitsme/mobile-portal/internal/shared/syndication"
	httpServer "github.com/reshetovitsme/mobile-portal/internal/transport/http"
	telegramHandler "github.com/reshetovitsme/mobile-portal/internal/transport/telegram"
)

var _ placeService.DetailsProvider = (*ldb.Provider)(nil)

// ErrTelegramDisabled is returned when the bot is requested without a token.
var ErrTelegramDisabled = errors.New("telegram bot token not configured")

// Setup initializes the dependency injection container
func Setup(cfg *config.Config, logger *slog.Logger) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)

	// Database
	do.Provide(injector, func(i do.Injector) (*sqlx.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		logger := do.MustInvoke[*slog.Logger](i)

		db, err := database.Open(context.Background(), cfg.Database)
		if err != nil {
			return nil, err
		}
		if cfg.Database.Migrate {
			if err := database.Migrate(db, cfg.Database.Driver, logger); err != nil {
				db.Close()
				return nil, err
			}
		}
		return db, nil
	})

	do.Provide(injector, func(i do.Injector) (*database.TransactionManager, error) {
		return database.NewTransactionManager(do.MustInvoke[*sqlx.DB](i)), nil
	})

	// Repositories
	do.Provide(injector, func(i do.Injector) (feedRepo.Repository, error) {
		return feedRepo.NewSQLStorage(do.MustInvoke[*sqlx.DB](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (podcastRepo.Repository, error) {
		return podcastRepo.NewSQLStorage(do.MustInvoke[*sqlx.DB](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (placeRepo.Repository, error) {
		return placeRepo.NewSQLStorage(do.MustInvoke[*sqlx.DB](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (favouriteRepo.Repository, error) {
		return favouriteRepo.NewSQLStorage(do.MustInvoke[*sqlx.DB](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (feedbackRepo.Repository, error) {
		return feedbackRepo.NewSQLStorage(do.MustInvoke[*sqlx.DB](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (featureRepo.Repository, error) {
		return featureRepo.NewSQLStorage(do.MustInvoke[*sqlx.DB](i)), nil
	})
	do.Provide(injector, func(i do.Injector) (userRepo.Repository, error) {
		return userRepo.NewSQLStorage(do.MustInvoke[*sqlx.DB](i)), nil
	})

	// Routes are registered on this mux by the HTTP server; favourites
	// resolve against the same mux.
	do.Provide(injector, func(i do.Injector) (*http.ServeMux, error) {
		return http.NewServeMux(), nil
	})

	do.Provide(injector, func(i do.Injector) (*render.Renderer, error) {
		return render.New(do.MustInvoke[*slog.Logger](i))
	})

	do.Provide(injector, func(i do.Injector) (*syndication.Fetcher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return syndication.NewFetcher(cfg.Importer.Timeout), nil
	})

	// Notifiers
	do.Provide(injector, func(i do.Injector) (*notify.AMQP, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.AMQP.URL == "" {
			return nil, oops.With("context", "amqp url not configured").Errorf("amqp disabled")
		}
		return notify.NewAMQP(cfg.AMQP, do.MustInvoke[*slog.Logger](i))
	})

	do.Provide(injector, func(i do.Injector) (*notify.Fanout, error) {
		cfg := do.MustInvoke[*config.Config](i)
		logger := do.MustInvoke[*slog.Logger](i)

		notifiers := []notify.Notifier{notify.NewEmail(cfg.Email)}
		if b, err := do.Invoke[*bot.Bot](i); err == nil && len(cfg.Telegram.FeedbackChatIDs) > 0 {
			notifiers = append(notifiers, notify.NewTelegram(b, cfg.Telegram.FeedbackChatIDs))
		}
		if cfg.AMQP.URL != "" {
			publisher, err := do.Invoke[*notify.AMQP](i)
			if err != nil {
				// The portal works without the broker; events are dropped.
				logger.Warn("AMQP publisher unavailable", "error", err)
			} else {
				notifiers = append(notifiers, publisher)
			}
		}

		return notify.NewFanout(logger, notifiers...), nil
	})

	// Services
	do.Provide(injector, func(i do.Injector) (*feedService.Service, error) {
		return feedService.New(
			do.MustInvoke[feedRepo.Repository](i),
			do.MustInvoke[*syndication.Fetcher](i),
			do.MustInvoke[*slog.Logger](i),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*podcastService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return podcastService.New(
			cfg.Podcasts,
			do.MustInvoke[podcastRepo.Repository](i),
			do.MustInvoke[*syndication.Fetcher](i),
			do.MustInvoke[*slog.Logger](i),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*placeService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		logger := do.MustInvoke[*slog.Logger](i)
		return placeService.New(
			do.MustInvoke[placeRepo.Repository](i),
			logger,
			ldb.NewProvider(cfg.LDB, logger),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*favouriteService.Service, error) {
		return favouriteService.New(
			do.MustInvoke[favouriteRepo.Repository](i),
			favouriteService.MuxResolver{Router: do.MustInvoke[*http.ServeMux](i)},
			do.MustInvoke[*slog.Logger](i),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*feedbackService.Service, error) {
		return feedbackService.New(
			do.MustInvoke[feedbackRepo.Repository](i),
			do.MustInvoke[*notify.Fanout](i),
			do.MustInvoke[*slog.Logger](i),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*featureService.Service, error) {
		return featureService.New(
			do.MustInvoke[featureRepo.Repository](i),
			do.MustInvoke[*database.TransactionManager](i),
			do.MustInvoke[*notify.Fanout](i),
			do.MustInvoke[*slog.Logger](i),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*userService.Service, error) {
		return userService.New(do.MustInvoke[userRepo.Repository](i), do.MustInvoke[*slog.Logger](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*seed.Loader, error) {
		return &seed.Loader{
			Feeds:    do.MustInvoke[feedRepo.Repository](i),
			Podcasts: do.MustInvoke[podcastRepo.Repository](i),
			Places:   do.MustInvoke[placeRepo.Repository](i),
			Features: do.MustInvoke[featureRepo.Repository](i),
			Logger:   do.MustInvoke[*slog.Logger](i),
		}, nil
	})

	do.Provide(injector, func(i do.Injector) (*importer.Importer, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return importer.New(
			cfg.Importer.Interval,
			do.MustInvoke[*slog.Logger](i),
			do.MustInvoke[*feedService.Service](i),
			do.MustInvoke[*podcastService.Service](i),
		), nil
	})

	// Transports
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return httpServer.New(
			cfg.HTTP,
			do.MustInvoke[*http.ServeMux](i),
			do.MustInvoke[*render.Renderer](i),
			httpServer.Services{
				Feeds:      do.MustInvoke[*feedService.Service](i),
				Podcasts:   do.MustInvoke[*podcastService.Service](i),
				Places:     do.MustInvoke[*placeService.Service](i),
				Favourites: do.MustInvoke[*favouriteService.Service](i),
				Feedback:   do.MustInvoke[*feedbackService.Service](i),
				Features:   do.MustInvoke[*featureService.Service](i),
				Users:      do.MustInvoke[*userService.Service](i),
			},
			do.MustInvoke[*slog.Logger](i),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*telegramHandler.Handler, error) {
		return telegramHandler.New(
			do.MustInvoke[*feedService.Service](i),
			do.MustInvoke[*placeService.Service](i),
			do.MustInvoke[*slog.Logger](i),
		), nil
	})

	// Bot (only when a token is configured)
	do.Provide(injector, func(i do.Injector) (*bot.Bot, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.Telegram.BotToken == "" {
			return nil, ErrTelegramDisabled
		}
		handler := do.MustInvoke[*telegramHandler.Handler](i)

		b, err := bot.New(cfg.Telegram.BotToken,
			bot.WithDefaultHandler(handler.HandleUpdate),
			bot.WithServerURL(cfg.Telegram.APIURL),
			bot.WithSkipGetMe(),
		)
		if err != nil {
			return nil, oops.With("context", "failed to create telegram bot").Wrap(err)
		}

		handler.RegisterCommands(b)
		return b, nil
	})

	return injector
}

// Shutdown stops the importer, then lets the container shut down every
// invoked service in reverse dependency order (HTTP server, AMQP publisher),
// and finally closes the database. Services never built are left alone.
func Shutdown(ctx context.Context, injector do.Injector) error {
	var errs []error

	if invoked[*importer.Importer](injector) {
		do.MustInvoke[*importer.Importer](injector).Stop()
	}

	// Resolved before the container drops it.
	var db *sqlx.DB
	if invoked[*sqlx.DB](injector) {
		db = do.MustInvoke[*sqlx.DB](injector)
	}

	if report := injector.ShutdownWithContext(ctx); report != nil && !report.Succeed {
		errs = append(errs, oops.With("context", "container shutdown").Wrap(report))
	}

	if db != nil {
		if err := db.Close(); err != nil {
			errs = append(errs, oops.With("context", "failed to close database").Wrap(err))
		}
	}

	return errors.Join(errs...)
}

func invoked[T any](injector do.Injector) bool {
	name := do.NameOf[T]()
	return lo.ContainsBy(injector.ListInvokedServices(), func(e do.ServiceDescription) bool {
		return e.Service == name
	})
}
