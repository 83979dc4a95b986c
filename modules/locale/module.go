package locale

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/lodgekit/handler"
	"github.com/dmitrymomot/lodgekit/pkg/i18n"
	"github.com/dmitrymomot/lodgekit/pkg/logger"
)

var ErrUnknownLanguage = handler.NewHTTPError(http.StatusNotFound, "unknown_language")

// Module exposes the loaded translations to the browser.
type Module struct {
	translator *i18n.Translator
	errHandler handler.ErrorHandler
	logger     *slog.Logger
}

type Option func(*Module)

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

func New(tr *i18n.Translator, opts ...Option) *Module {
	m := &Module{translator: tr, logger: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	if m.errHandler == nil {
		m.errHandler = handler.NewErrorHandler(m.logger, handler.ErrorHandlerConfig{})
	}
	return m
}

// Handle returns the router to mount under /i18n.
func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()

	errs := handler.WithErrorHandler(m.errHandler)
	path := handler.BindPath(chi.URLParam)

	r.Get("/", handler.Wrap(m.languages, errs))
	r.Post("/reload", handler.Wrap(m.reload, errs))
	r.Get("/{lang}", handler.Wrap(m.export, handler.WithBinders(path), errs))
	r.Get("/{lang}/resolve", handler.Wrap(m.resolve, handler.WithBinders(path, handler.BindQuery()), errs))

	return r
}

type languagesResponse struct {
	Languages []string `json:"languages"`
	Default   string   `json:"default"`
	Current   string   `json:"current"`
}

func (m *Module) languages(ctx handler.Context, _ struct{}) handler.Response {
	return handler.JSON(languagesResponse{
		Languages: m.translator.SupportedLanguages(),
		Default:   m.translator.DefaultLanguage(),
		Current:   i18n.GetLocale(ctx),
	})
}

type langRequest struct {
	Lang string `path:"lang"`
}

type exportResponse struct {
	raw []byte
}

func (e exportResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, err := w.Write(e.raw)
	return err
}

// export serves the raw translation table, ready for a client-side lookup.
func (m *Module) export(_ handler.Context, req langRequest) handler.Response {
	if !m.translator.IsSupported(req.Lang) {
		return handler.Error(ErrUnknownLanguage)
	}
	raw, err := m.translator.ExportJSON(req.Lang)
	if err != nil {
		return handler.Error(err)
	}
	return exportResponse{raw: raw}
}

type resolveRequest struct {
	Lang     string `path:"lang"`
	Key      string `query:"key"`
	Fallback string `query:"fallback"`
	Pretty   bool   `query:"pretty"`
}

type resolveResponse struct {
	Key   string `json:"key"`
	Lang  string `json:"lang"`
	Value string `json:"value"`
	Found bool   `json:"found"`
}

// resolve runs the key-echo fallback server side for clients without the
// table at hand.
func (m *Module) resolve(_ handler.Context, req resolveRequest) handler.Response {
	if !m.translator.IsSupported(req.Lang) {
		return handler.Error(ErrUnknownLanguage)
	}

	lookup := m.translator.Lookup(req.Lang)
	value := i18n.Resolve(req.Key, req.Fallback, lookup)
	if req.Pretty {
		value = i18n.ResolvePretty(req.Key, req.Fallback, lookup)
	}

	return handler.JSON(resolveResponse{
		Key:   req.Key,
		Lang:  req.Lang,
		Value: value,
		Found: req.Key != "" && lookup(req.Key) != req.Key,
	})
}

func (m *Module) reload(ctx handler.Context, _ struct{}) handler.Response {
	if err := m.translator.Reload(ctx); err != nil {
		return handler.Error(errors.Join(handler.ErrServiceUnavailable, err))
	}
	m.logger.LogAttrs(ctx, slog.LevelInfo, "Translations reloaded",
		logger.Component("locale"),
		slog.Int("languages", len(m.translator.SupportedLanguages())),
	)
	return handler.Empty()
}
