package session

import "time"

// Config holds the session transport settings.
type Config struct {
	CookieName    string        `env:"SESSION_COOKIE_NAME" envDefault:"lodge_session"`
	HeaderName    string        `env:"SESSION_HEADER_NAME" envDefault:"X-Session-ID"`
	TTL           time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SecureCookies bool          `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig mirrors the envDefault tags.
func DefaultConfig() Config {
	return Config{
		CookieName: DefaultCookieName,
		HeaderName: DefaultHeaderName,
		TTL:        24 * time.Hour,
	}
}

// NewFromConfig builds a Manager that reads the header first and falls back
// to the cookie. Zero fields keep the defaults.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	def := DefaultConfig()
	if cfg.CookieName == "" {
		cfg.CookieName = def.CookieName
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = def.HeaderName
	}
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}

	transport := NewCompositeTransport(
		NewHeaderTransport(cfg.HeaderName),
		NewCookieTransport(cfg.CookieName, WithSecureCookie(cfg.SecureCookies)),
	)

	return New(append([]Option{WithTransport(transport), WithTTL(cfg.TTL)}, opts...)...)
}
