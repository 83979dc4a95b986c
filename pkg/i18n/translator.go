package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/lodgekit/pkg/logger"
)

// Translator serves translation tables loaded from a TranslationAdapter.
// It is safe for concurrent use and can be reloaded at runtime.
type Translator struct {
	adapter      TranslationAdapter
	translations map[string]map[string]any
	defaultLang  string
	logMissing   bool
	logger       *slog.Logger
	mu           sync.RWMutex
}

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the language consulted when the requested one has
// no entry for a key. Default is DefaultLanguage.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMissingTranslationsLogging logs a warning for every key that cannot be
// found in either the requested or the default language.
func WithMissingTranslationsLogging(enabled bool) Option {
	return func(t *Translator) {
		t.logMissing = enabled
	}
}

// NewTranslator loads translations from adapter.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, opts ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		adapter:     adapter,
		defaultLang: DefaultLanguage,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}

	if err := t.Reload(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload fetches the tables again and swaps them in atomically. On failure
// the previous tables stay in use.
func (t *Translator) Reload(ctx context.Context) error {
	translations, err := t.adapter.Load(ctx)
	if err != nil {
		return errors.Join(ErrFailedToLoad, err)
	}
	if err := validate(translations); err != nil {
		return err
	}

	t.mu.Lock()
	t.translations = translations
	t.mu.Unlock()

	t.logger.LogAttrs(ctx, slog.LevelInfo, "Translations loaded",
		logger.Component("i18n"),
		slog.Any("languages", t.SupportedLanguages()),
	)
	return nil
}

func validate(translations map[string]map[string]any) error {
	for lang, table := range translations {
		if strings.TrimSpace(lang) == "" {
			return errors.Join(ErrInvalidTranslations, errors.New("empty language code"))
		}
		if table == nil {
			return errors.Join(ErrInvalidTranslations, fmt.Errorf("nil table for language %q", lang))
		}
	}
	return nil
}

// DefaultLanguage returns the configured default language.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// SupportedLanguages returns the loaded language codes, sorted.
func (t *Translator) SupportedLanguages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

// IsSupported reports whether lang has a loaded table.
func (t *Translator) IsSupported(lang string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.translations[lang]
	return ok
}

// HasTranslation reports whether lang itself defines key.
func (t *Translator) HasTranslation(lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := lookupString(t.translations[lang], key)
	return ok
}

// T translates key into lang, substituting %{name} placeholders from args
// given as name, value pairs:
//
//	t.T("en", "agenda.next", "date", "Thursday") // "Next tenue: Thursday"
//
// Keys missing from lang are looked up in the default language. When both
// miss, T returns key unchanged, which Resolve treats as a miss.
func (t *Translator) T(lang, key string, args ...string) string {
	tmpl, ok := t.find(lang, key)
	if !ok {
		return key
	}
	return substitute(tmpl, args)
}

// Td is T with an explicit default used on a miss.
func (t *Translator) Td(lang, key, def string, args ...string) string {
	tmpl, ok := t.find(lang, key)
	if !ok {
		tmpl = def
	}
	return substitute(tmpl, args)
}

// N translates a counted key. It looks up key.zero (n == 0 only), key.one
// (n == 1) or key.other, then key itself. %{count} is set to n unless args
// provide it.
func (t *Translator) N(lang, key string, n int, args ...string) string {
	args = append([]string{"count", strconv.Itoa(n)}, args...)

	var forms []string
	switch n {
	case 0:
		forms = []string{key + ".zero", key + ".other"}
	case 1:
		forms = []string{key + ".one"}
	default:
		forms = []string{key + ".other"}
	}
	forms = append(forms, key)

	for _, k := range forms {
		if tmpl, ok := t.find(lang, k); ok {
			return substitute(tmpl, args)
		}
	}
	return key
}

// Lookup binds the translator to lang for use with Resolve.
func (t *Translator) Lookup(lang string) LookupFunc {
	return func(key string) string {
		return t.T(lang, key)
	}
}

// Resolve translates key into lang and falls back to fallback or the key's
// last segment on a miss.
func (t *Translator) Resolve(lang, key, fallback string) string {
	return Resolve(key, fallback, t.Lookup(lang))
}

// Label is Resolve with a prettified segment on a miss, for headings and
// field labels.
func (t *Translator) Label(lang, key string) string {
	return ResolvePretty(key, "", t.Lookup(lang))
}

// Tc is T with the language taken from ctx.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(GetLocale(ctx), key, args...)
}

// Rc is Resolve with the language taken from ctx.
func (t *Translator) Rc(ctx context.Context, key, fallback string) string {
	return t.Resolve(GetLocale(ctx), key, fallback)
}

// ExportJSON encodes the whole table of lang for client-side use.
func (t *Translator) ExportJSON(lang string) ([]byte, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	table, ok := t.translations[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLanguageNotSupported, lang)
	}

	data, err := json.Marshal(table)
	if err != nil {
		return nil, errors.Join(ErrFailedToMarshalJSON, err)
	}
	return data, nil
}

// TimeSince renders how long ago ts was relative to now, such as
// "5 minutes ago". It uses the counted keys time.minutes_ago,
// time.hours_ago and time.days_ago and the plain key time.just_now, and
// falls back to English when they are missing.
func (t *Translator) TimeSince(lang string, ts, now time.Time) string {
	d := now.Sub(ts)

	unit := func(key string, n int, english string) string {
		if s := t.N(lang, key, n); s != key {
			return s
		}
		if n == 1 {
			return fmt.Sprintf("1 %s ago", english)
		}
		return fmt.Sprintf("%d %ss ago", n, english)
	}

	switch {
	case d < time.Minute:
		return t.Td(lang, "time.just_now", "just now")
	case d < time.Hour:
		return unit("time.minutes_ago", int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return unit("time.hours_ago", int(d/time.Hour), "hour")
	default:
		return unit("time.days_ago", int(d/(24*time.Hour)), "day")
	}
}

// find looks key up in lang and then in the default language.
func (t *Translator) find(lang, key string) (string, bool) {
	if key == "" {
		return "", false
	}

	t.mu.RLock()
	s, ok := lookupString(t.translations[lang], key)
	if !ok && lang != t.defaultLang {
		s, ok = lookupString(t.translations[t.defaultLang], key)
	}
	t.mu.RUnlock()

	if !ok && t.logMissing {
		t.logger.LogAttrs(context.Background(), slog.LevelWarn, "Translation not found",
			logger.Component("i18n"),
			logger.Lang(lang),
			logger.Key(key),
		)
	}
	return s, ok
}

// lookupString finds key as a flat entry first, then by walking nested maps
// along its dot-separated path. Only string-like leaves count.
func lookupString(table map[string]any, key string) (string, bool) {
	if table == nil {
		return "", false
	}
	if v, ok := table[key]; ok {
		if s, ok := asString(v); ok {
			return s, true
		}
	}

	current := table
	parts := strings.Split(key, ".")
	for i, part := range parts {
		v, ok := current[part]
		if !ok {
			return "", false
		}
		if i == len(parts)-1 {
			return asString(v)
		}
		if current, ok = asMap(v); !ok {
			return "", false
		}
	}
	return "", false
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case fmt.Stringer:
		return s.String(), true
	}
	return "", false
}

var placeholder = regexp.MustCompile(`%\{([^}]+)\}`)

// substitute replaces %{name} with the matching value from name, value
// pairs. Unknown placeholders are kept and a trailing odd argument is ignored.
func substitute(tmpl string, args []string) string {
	if len(args) < 2 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}

	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}

	return placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		if v, ok := params[m[2:len(m)-1]]; ok {
			return v
		}
		return m
	})
}
