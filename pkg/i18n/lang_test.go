package i18n_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lodgekit/pkg/i18n"
)

func TestNegotiate(t *testing.T) {
	t.Parallel()

	supported := []string{"en", "fr"}

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "empty header", header: "", want: "en"},
		{name: "exact match", header: "fr", want: "fr"},
		{name: "regional variant", header: "fr-CH", want: "fr"},
		{name: "quality order", header: "de;q=0.9, fr;q=0.8, en;q=0.5", want: "fr"},
		{name: "first preference wins", header: "en-US,en;q=0.9,fr;q=0.8", want: "en"},
		{name: "nothing supported", header: "de, it", want: "en"},
		{name: "garbage", header: ";;;q=abc", want: "en"},
		{name: "oversized", header: strings.Repeat("x", 5000), want: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, i18n.Negotiate(tt.header, supported, "en"))
		})
	}

	assert.Equal(t, "fr", i18n.Negotiate("fr", nil, "fr"))
}

func TestMatch(t *testing.T) {
	t.Parallel()

	supported := []string{"en", "fr"}

	got, ok := i18n.Match("FR", supported)
	require.True(t, ok)
	assert.Equal(t, "fr", got)

	got, ok = i18n.Match("en-GB", supported)
	require.True(t, ok)
	assert.Equal(t, "en", got)

	for _, code := range []string{"", "de", "not a language", strings.Repeat("a", 40)} {
		_, ok := i18n.Match(code, supported)
		assert.False(t, ok, code)
	}
}

func TestLocaleContext(t *testing.T) {
	t.Parallel()

	assert.Equal(t, i18n.DefaultLanguage, i18n.GetLocale(context.Background()))
	assert.Equal(t, "fr", i18n.GetLocale(i18n.SetLocale(context.Background(), "fr")))

	extract := i18n.LoggerExtractor()
	_, ok := extract(context.Background())
	assert.False(t, ok)
	attr, ok := extract(i18n.SetLocale(context.Background(), "fr"))
	require.True(t, ok)
	assert.Equal(t, "lang", attr.Key)
	assert.Equal(t, "fr", attr.Value.String())
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	supported := []string{"en", "fr"}

	tests := []struct {
		name  string
		setup func(r *http.Request)
		extrs []i18n.LangExtractor
		want  string
	}{
		{
			name:  "default when nothing provided",
			setup: func(*http.Request) {},
			want:  "en",
		},
		{
			name: "query parameter",
			setup: func(r *http.Request) {
				r.URL.RawQuery = "lang=fr"
			},
			want: "fr",
		},
		{
			name: "cookie",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "lang", Value: "fr"})
			},
			want: "fr",
		},
		{
			name: "accept-language",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "fr-FR,fr;q=0.9")
			},
			want: "fr",
		},
		{
			name: "query beats cookie",
			setup: func(r *http.Request) {
				r.URL.RawQuery = "lang=en"
				r.AddCookie(&http.Cookie{Name: "lang", Value: "fr"})
			},
			want: "en",
		},
		{
			name: "unsupported query falls through to header",
			setup: func(r *http.Request) {
				r.URL.RawQuery = "lang=de"
				r.Header.Set("Accept-Language", "fr")
			},
			want: "fr",
		},
		{
			name: "custom extractors",
			setup: func(r *http.Request) {
				r.Header.Set("X-Lang", "fr")
				r.URL.RawQuery = "lang=en"
			},
			extrs: []i18n.LangExtractor{func(r *http.Request) string { return r.Header.Get("X-Lang") }},
			want:  "fr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got string
			handler := i18n.Middleware(supported, "en", tt.extrs...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = i18n.GetLocale(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			handler.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsers(t *testing.T) {
	t.Parallel()

	assert.IsType(t, i18n.JSONParser{}, i18n.ParserForFile("locales/en.JSON"))
	assert.IsType(t, i18n.YAMLParser{}, i18n.ParserForFile("fr.yml"))
	assert.IsType(t, i18n.YAMLParser{}, i18n.ParserForFile("fr.yaml"))
	assert.Nil(t, i18n.ParserForFile("fr.toml"))
	assert.Nil(t, i18n.ParserForFile("README"))

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		got, err := i18n.YAMLParser{}.Parse(context.Background(), []byte("fr:\n  nav:\n    home: Accueil\n"))
		require.NoError(t, err)
		assert.Equal(t, "Accueil", got["fr"]["nav"].(map[string]any)["home"])

		_, err = i18n.YAMLParser{}.Parse(context.Background(), []byte("fr: [unclosed"))
		assert.ErrorIs(t, err, i18n.ErrFailedToParseYAML)

		_, err = i18n.YAMLParser{}.Parse(context.Background(), []byte("fr: plain"))
		assert.ErrorIs(t, err, i18n.ErrFailedToParseYAML)
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		got, err := i18n.JSONParser{}.Parse(context.Background(), []byte(`{"en": {"flat.key": "Flat"}}`))
		require.NoError(t, err)
		assert.Equal(t, "Flat", got["en"]["flat.key"])

		_, err = i18n.JSONParser{}.Parse(context.Background(), []byte(`{`))
		assert.ErrorIs(t, err, i18n.ErrFailedToParseJSON)
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := i18n.JSONParser{}.Parse(ctx, []byte(`{}`))
		assert.ErrorIs(t, err, i18n.ErrParsingCancelled)
	})
}
