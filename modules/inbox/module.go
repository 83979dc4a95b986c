package inbox

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/lodgekit/handler"
	"github.com/dmitrymomot/lodgekit/pkg/i18n"
	"github.com/dmitrymomot/lodgekit/pkg/notifications"
	"github.com/dmitrymomot/lodgekit/pkg/session"
)

// Module serves a member's notification inbox. It expects session and
// locale middleware to run first.
type Module struct {
	registry   *notifications.Registry
	feed       *notifications.Feed
	translator *i18n.Translator
	errHandler handler.ErrorHandler
	logger     *slog.Logger
	now        func() time.Time
}

type Option func(*Module)

// WithFeed enables the toast stream. Without a feed the stream answers 503.
func WithFeed(f *notifications.Feed) Option {
	return func(m *Module) { m.feed = f }
}

func WithTranslator(t *i18n.Translator) Option {
	return func(m *Module) { m.translator = t }
}

func WithErrorHandler(h handler.ErrorHandler) Option {
	return func(m *Module) {
		if h != nil {
			m.errHandler = h
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Module) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClock overrides the time used for "5 minutes ago" labels.
func WithClock(now func() time.Time) Option {
	return func(m *Module) {
		if now != nil {
			m.now = now
		}
	}
}

func New(registry *notifications.Registry, opts ...Option) *Module {
	m := &Module{
		registry: registry,
		logger:   slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.errHandler == nil {
		m.errHandler = handler.NewErrorHandler(m.logger, handler.ErrorHandlerConfig{
			ErrorToast: func(p handler.ErrorToastParams) templ.Component {
				return ErrorToast(p.Message, p.Type, p.RequestID)
			},
		})
	}
	return m
}

// Handle returns the router to mount under /notifications.
func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()

	path := handler.WithBinders(handler.BindPath(chi.URLParam))
	body := handler.WithBinders(handler.BindJSON(), handler.BindForm())
	errs := handler.WithErrorHandler(m.errHandler)

	r.Get("/", handler.Wrap(m.list, errs))
	r.Post("/", handler.Wrap(m.add, body, errs))
	r.Delete("/", handler.Wrap(m.clear, errs))
	r.Get("/unread-count", handler.Wrap(m.unreadCount, errs))
	r.Post("/read-all", handler.Wrap(m.markAllRead, errs))
	r.Get("/stream", handler.Wrap(m.stream, errs))
	r.Post("/{id}/read", handler.Wrap(m.markRead, path, errs))
	r.Delete("/{id}", handler.Wrap(m.delete, path, errs))

	return r
}

// store opens the notification store of the request's session.
func (m *Module) store(ctx context.Context) (*notifications.Store, error) {
	id, ok := session.IDFromContext(ctx)
	if !ok {
		return nil, ErrNoSession
	}
	return m.registry.Open(id)
}

// labels binds the translator to the request language.
func (m *Module) labels(ctx context.Context) Labels {
	return localizer{tr: m.translator, lang: i18n.GetLocale(ctx), now: m.now()}
}

type localizer struct {
	tr   *i18n.Translator
	lang string
	now  time.Time
}

func (l localizer) Label(key, fallback string) string {
	if l.tr == nil {
		return i18n.ResolvePretty(key, fallback, nil)
	}
	return i18n.ResolvePretty(key, fallback, l.tr.Lookup(l.lang))
}

func (l localizer) Since(t time.Time) string {
	if l.tr == nil {
		return t.UTC().Format(time.DateTime)
	}
	return l.tr.TimeSince(l.lang, t, l.now)
}
