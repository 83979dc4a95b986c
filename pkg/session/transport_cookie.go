package session

import (
	"net/http"
	"time"
)

// CookieTransport keeps the session id in an HttpOnly, SameSite=Lax cookie.
type CookieTransport struct {
	name   string
	path   string
	secure bool
}

// CookieOption configures a CookieTransport.
type CookieOption func(*CookieTransport)

// WithSecureCookie sets the Secure flag, required behind HTTPS.
func WithSecureCookie(secure bool) CookieOption {
	return func(t *CookieTransport) { t.secure = secure }
}

func WithCookiePath(path string) CookieOption {
	return func(t *CookieTransport) {
		if path != "" {
			t.path = path
		}
	}
}

func NewCookieTransport(name string, opts ...CookieOption) *CookieTransport {
	t := &CookieTransport{name: name, path: "/"}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	c, err := r.Cookie(t.name)
	if err != nil || c.Value == "" {
		return "", ErrSessionNotFound
	}
	return c.Value, nil
}

func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	http.SetCookie(w, &http.Cookie{
		Name:     t.name,
		Value:    token,
		Path:     t.path,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	http.SetCookie(w, &http.Cookie{
		Name:     t.name,
		Value:    "",
		Path:     t.path,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
