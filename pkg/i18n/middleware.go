package i18n

import (
	"net/http"
	"strings"
)

// LangExtractor reads a language candidate from a request.
// An empty result means the request does not say.
type LangExtractor func(r *http.Request) string

// FromQuery reads the named query parameter.
func FromQuery(name string) LangExtractor {
	return func(r *http.Request) string {
		return strings.TrimSpace(r.URL.Query().Get(name))
	}
}

// FromCookie reads the named cookie.
func FromCookie(name string) LangExtractor {
	return func(r *http.Request) string {
		c, err := r.Cookie(name)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(c.Value)
	}
}

// FromAcceptLanguage negotiates the Accept-Language header against supported.
func FromAcceptLanguage(supported []string) LangExtractor {
	return func(r *http.Request) string {
		return Negotiate(r.Header.Get("Accept-Language"), supported, "")
	}
}

// DefaultExtractors checks the "lang" query parameter, then the "lang"
// cookie, then Accept-Language.
func DefaultExtractors(supported []string) []LangExtractor {
	return []LangExtractor{
		FromQuery("lang"),
		FromCookie("lang"),
		FromAcceptLanguage(supported),
	}
}

// Middleware stores the request language in the context. Extractors are
// tried in order and the first candidate that matches a supported language
// wins; otherwise def is used. Without extractors DefaultExtractors apply.
func Middleware(supported []string, def string, extractors ...LangExtractor) func(http.Handler) http.Handler {
	if len(extractors) == 0 {
		extractors = DefaultExtractors(supported)
	}
	if def == "" {
		def = DefaultLanguage
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := def
			for _, extract := range extractors {
				if code, ok := Match(extract(r), supported); ok {
					lang = code
					break
				}
			}
			next.ServeHTTP(w, r.WithContext(SetLocale(r.Context(), lang)))
		})
	}
}
