package i18n

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/lodgekit/pkg/logger"
)

type localeContextKey struct{}

// SetLocale stores the request language in ctx.
func SetLocale(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, lang)
}

// GetLocale returns the language stored in ctx, or DefaultLanguage.
func GetLocale(ctx context.Context) string {
	if lang, _ := ctx.Value(localeContextKey{}).(string); lang != "" {
		return lang
	}
	return DefaultLanguage
}

// LoggerExtractor adds the request language to log records.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		lang, _ := ctx.Value(localeContextKey{}).(string)
		if lang == "" {
			return slog.Attr{}, false
		}
		return logger.Lang(lang), true
	}
}
