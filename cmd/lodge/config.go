package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrymomot/lodgekit/pkg/config"
	"github.com/dmitrymomot/lodgekit/pkg/httpserver"
	"github.com/dmitrymomot/lodgekit/pkg/logger"
	"github.com/dmitrymomot/lodgekit/pkg/pg"
	"github.com/dmitrymomot/lodgekit/pkg/redis"
	"github.com/dmitrymomot/lodgekit/pkg/session"
)

// Toast backends.
const (
	toastNone   = "none"
	toastMemory = "memory"
	toastRedis  = "redis"
)

// Translation sources.
const (
	i18nEmbedded = "embedded"
	i18nDir      = "dir"
	i18nPostgres = "postgres"
)

var (
	ErrInvalidToastBackend = errors.New("invalid toast backend")
	ErrInvalidI18nSource   = errors.New("invalid translation source")
)

type appConfig struct {
	Log     logger.Config
	HTTP    httpserver.Config
	Session session.Config
	PG      pg.Config
	Redis   redis.Config

	// ToastBackend is none, memory or redis.
	ToastBackend string `env:"TOAST_BACKEND" envDefault:"memory"`
	ToastChannel string `env:"TOAST_CHANNEL" envDefault:"lodge:toasts"`
	ToastBuffer  int    `env:"TOAST_BUFFER" envDefault:"16"`

	// I18nSource is embedded, dir or postgres.
	I18nSource     string        `env:"I18N_SOURCE" envDefault:"embedded"`
	I18nDir        string        `env:"I18N_DIR" envDefault:"./locales"`
	I18nTable      string        `env:"I18N_TABLE" envDefault:"translations"`
	I18nLogMissing bool          `env:"I18N_LOG_MISSING" envDefault:"false"`
	DefaultLang    string        `env:"DEFAULT_LANG" envDefault:"en"`
	MaxSessions    int           `env:"MAX_SESSIONS" envDefault:"10000"`
	SessionIdle    time.Duration `env:"SESSION_IDLE" envDefault:"2h"`
	SweepSchedule  string        `env:"SWEEP_SCHEDULE" envDefault:"@every 5m"`
}

func loadConfig(opts ...config.Option) (appConfig, error) {
	cfg, err := config.Load[appConfig](opts...)
	if err != nil {
		return cfg, err
	}
	cfg.ToastBackend = strings.ToLower(strings.TrimSpace(cfg.ToastBackend))
	cfg.I18nSource = strings.ToLower(strings.TrimSpace(cfg.I18nSource))
	return cfg, cfg.validate()
}

func (c appConfig) validate() error {
	switch c.ToastBackend {
	case toastNone, toastMemory, toastRedis:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidToastBackend, c.ToastBackend)
	}
	switch c.I18nSource {
	case i18nEmbedded, i18nDir, i18nPostgres:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidI18nSource, c.I18nSource)
	}
	return nil
}

func (c appConfig) needsPostgres() bool { return c.I18nSource == i18nPostgres }
func (c appConfig) needsRedis() bool    { return c.ToastBackend == toastRedis }
