package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/lodgekit/db/migrations"
	"github.com/dmitrymomot/lodgekit/locales"
	"github.com/dmitrymomot/lodgekit/pkg/httpserver"
	"github.com/dmitrymomot/lodgekit/pkg/i18n"
	"github.com/dmitrymomot/lodgekit/pkg/logger"
	"github.com/dmitrymomot/lodgekit/pkg/notifications"
	"github.com/dmitrymomot/lodgekit/pkg/pg"
	"github.com/dmitrymomot/lodgekit/pkg/redis"
	"github.com/dmitrymomot/lodgekit/pkg/requestid"
	"github.com/dmitrymomot/lodgekit/pkg/session"
)

// app holds the wired components of one process.
type app struct {
	cfg        appConfig
	log        *slog.Logger
	translator *i18n.Translator
	registry   *notifications.Registry
	feed       *notifications.Feed
	sessions   *session.Manager
	relay      *notifications.RedisRelay
	checks     []httpserver.Check
	closers    []func()
}

// newApp connects the optional backends and builds the domain components.
// Close must be called even when newApp fails.
func newApp(ctx context.Context, cfg appConfig, log *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}

	var pool *pgxpool.Pool
	if cfg.needsPostgres() {
		p, err := pg.Connect(ctx, cfg.PG)
		if err != nil {
			return a, fmt.Errorf("connect postgres: %w", err)
		}
		pool = p
		a.closers = append(a.closers, pool.Close)
		a.checks = append(a.checks, httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)})

		if err := pg.Migrate(ctx, pool, migrations.FS, ".", cfg.PG, log); err != nil {
			return a, fmt.Errorf("migrate postgres: %w", err)
		}
	}

	var rdb *goredis.Client
	if cfg.needsRedis() {
		c, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return a, fmt.Errorf("connect redis: %w", err)
		}
		rdb = c
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		a.checks = append(a.checks, httpserver.Check{Name: "redis", Fn: redis.Healthcheck(rdb)})
	}

	adapter, err := translationAdapter(cfg, pool)
	if err != nil {
		return a, err
	}
	a.translator, err = i18n.NewTranslator(ctx, adapter,
		i18n.WithDefaultLanguage(cfg.DefaultLang),
		i18n.WithLogger(log),
		i18n.WithMissingTranslationsLogging(cfg.I18nLogMissing),
	)
	if err != nil {
		return a, fmt.Errorf("load translations: %w", err)
	}

	toaster := a.toaster(rdb)
	a.registry = notifications.NewRegistry(toaster,
		notifications.WithMaxSessions(cfg.MaxSessions),
		notifications.WithRegistryLogger(log),
		notifications.WithOnClose(a.forget),
		notifications.WithKeepAlive(a.streaming),
	)
	a.sessions = session.NewFromConfig(cfg.Session,
		session.WithLogger(log),
		session.WithOnEnd(func(_ context.Context, id string) { a.registry.Close(id) }),
	)

	return a, nil
}

// toaster picks the live delivery backend. With Redis every instance relays
// the shared channel into its local feed.
func (a *app) toaster(rdb *goredis.Client) notifications.Toaster {
	switch a.cfg.ToastBackend {
	case toastNone:
		return notifications.NoOpToaster{}
	case toastRedis:
		a.feed = notifications.NewFeed(a.cfg.ToastBuffer)
		a.closers = append(a.closers, func() { _ = a.feed.Close() })
		opts := []notifications.RedisOption{
			notifications.WithChannel(a.cfg.ToastChannel),
			notifications.WithRedisLogger(a.log),
		}
		a.relay = notifications.NewRedisRelay(rdb, a.feed, opts...)
		return notifications.NewRedisToaster(rdb, opts...)
	default:
		a.feed = notifications.NewFeed(a.cfg.ToastBuffer)
		a.closers = append(a.closers, func() { _ = a.feed.Close() })
		return a.feed
	}
}

func (a *app) forget(sessionID string) {
	if a.feed != nil {
		a.feed.Forget(sessionID)
	}
}

// streaming reports whether a browser still holds the session's toast stream.
func (a *app) streaming(sessionID string) bool {
	return a.feed != nil && a.feed.Subscribers(sessionID) > 0
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func translationAdapter(cfg appConfig, pool *pgxpool.Pool) (i18n.TranslationAdapter, error) {
	switch cfg.I18nSource {
	case i18nDir:
		info, err := os.Stat(cfg.I18nDir)
		if err != nil {
			return nil, fmt.Errorf("translations directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("translations directory: %s is not a directory", cfg.I18nDir)
		}
		return i18n.NewFSAdapter(os.DirFS(cfg.I18nDir), "."), nil
	case i18nPostgres:
		if pool == nil {
			return nil, errors.New("translations from postgres need a connection")
		}
		return i18n.NewPostgresAdapter(pool, i18n.WithTable(cfg.I18nTable)), nil
	default:
		return i18n.NewFSAdapter(locales.FS, "."), nil
	}
}

func newLogger(cfg logger.Config) (*slog.Logger, error) {
	opts, err := logger.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	opts = append(opts, logger.WithContextExtractors(
		requestid.LoggerExtractor(),
		session.LoggerExtractor(),
		i18n.LoggerExtractor(),
	))
	return logger.New(opts...), nil
}
