package main

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/lodgekit/handler"
	"github.com/dmitrymomot/lodgekit/modules/inbox"
	"github.com/dmitrymomot/lodgekit/modules/locale"
	"github.com/dmitrymomot/lodgekit/pkg/httpserver"
	"github.com/dmitrymomot/lodgekit/pkg/i18n"
	"github.com/dmitrymomot/lodgekit/pkg/logger"
	"github.com/dmitrymomot/lodgekit/pkg/requestid"
)

// routes assembles the HTTP surface. Probes and metrics sit outside the
// session and locale middleware so they never issue cookies.
func (a *app) routes() http.Handler {
	errHandler := handler.NewErrorHandler(a.log, handler.ErrorHandlerConfig{
		ErrorToast: func(p handler.ErrorToastParams) templ.Component {
			return inbox.ErrorToast(p.Message, p.Type, p.RequestID)
		},
		ToastTarget: "#" + inbox.ToastsID,
		Localize: func(ctx context.Context, key string) string {
			return a.translator.Rc(ctx, key, "")
		},
	})

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(a.log, a.checks...))
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(a.sessions.Middleware)
		r.Use(i18n.Middleware(a.translator.SupportedLanguages(), a.translator.DefaultLanguage()))

		inboxOpts := []inbox.Option{
			inbox.WithTranslator(a.translator),
			inbox.WithErrorHandler(errHandler),
			inbox.WithLogger(a.log.With(logger.Component("inbox"))),
		}
		if a.feed != nil {
			inboxOpts = append(inboxOpts, inbox.WithFeed(a.feed))
		}
		r.Mount("/notifications", inbox.New(a.registry, inboxOpts...).Handle())
		r.Mount("/i18n", locale.New(a.translator,
			locale.WithErrorHandler(errHandler),
			locale.WithLogger(a.log.With(logger.Component("locale"))),
		).Handle())
	})

	// Ending a session must not issue a fresh one first.
	r.Delete("/session", handler.Wrap(a.endSession, handler.WithErrorHandler(errHandler)))

	return r
}

func (a *app) endSession(ctx handler.Context, _ struct{}) handler.Response {
	if err := a.sessions.End(ctx.ResponseWriter(), ctx.Request()); err != nil {
		return handler.Error(err)
	}
	return handler.Empty()
}
