package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/lodgekit/pkg/logger"
	"github.com/dmitrymomot/lodgekit/pkg/requestid"
)

// ErrorToastParams feeds the toast shown for failed datastar actions.
type ErrorToastParams struct {
	Message   string
	Type      string // "warning" for 4xx, "error" otherwise
	RequestID string
}

// ErrorHandlerConfig configures NewErrorHandler.
type ErrorHandlerConfig struct {
	// ErrorToast renders the toast for datastar requests. Without it those
	// requests get the JSON envelope too.
	ErrorToast func(ErrorToastParams) templ.Component

	// ToastTarget defaults to "#toasts".
	ToastTarget string

	// Localize turns an error key into member-facing text. It receives the
	// key prefixed with "errors.".
	Localize func(ctx context.Context, key string) string
}

type errorInfo struct {
	status  int
	key     string
	message string
}

func classifyError(ctx context.Context, err error, localize func(context.Context, string) string) errorInfo {
	info := errorInfo{status: http.StatusInternalServerError, key: ErrInternalServerError.Key}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.status = httpErr.Code
		info.key = httpErr.Key
	}

	info.message = http.StatusText(info.status)
	if localize != nil {
		info.message = localize(ctx, "errors."+info.key)
	}
	return info
}

// NewErrorHandler logs the failure and answers with a toast for datastar
// requests or the JSON error envelope otherwise.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler {
	if log == nil {
		log = slog.Default()
	}
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toasts"
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		info := classifyError(r.Context(), err, cfg.Localize)

		level := slog.LevelError
		if info.status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(r.Context(), level, "Request failed",
			logger.Component("error_handler"),
			logger.Error(err),
			slog.Int("status_code", info.status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		w := ctx.ResponseWriter()
		if IsDataStar(r) && cfg.ErrorToast != nil {
			toastType := "error"
			if info.status < http.StatusInternalServerError {
				toastType = "warning"
			}
			toast := cfg.ErrorToast(ErrorToastParams{
				Message:   info.message,
				Type:      toastType,
				RequestID: requestid.FromContext(r.Context()),
			})
			if renderErr := Templ(toast, WithTarget(cfg.ToastTarget), WithPatchMode(PatchAppend)).Render(w, r); renderErr != nil {
				log.LogAttrs(r.Context(), slog.LevelError, "Failed to render error toast",
					logger.Component("error_handler"),
					logger.Error(renderErr),
				)
			}
			return
		}

		resp := jsonResponse{
			status: info.status,
			body:   JSONResponse{Error: &ErrorDetail{Code: info.key, Message: info.message}},
		}
		if renderErr := resp.Render(w, r); renderErr != nil {
			log.LogAttrs(r.Context(), slog.LevelError, "Failed to render error response",
				logger.Component("error_handler"),
				logger.Error(renderErr),
			)
		}
	}
}
