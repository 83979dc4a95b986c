package locales_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/lodgekit/locales"
	"github.com/dmitrymomot/lodgekit/pkg/i18n"
)

func TestEmbeddedLocales(t *testing.T) {
	t.Parallel()

	tr, err := i18n.NewTranslator(context.Background(), i18n.NewFSAdapter(locales.FS, "."))
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "fr"}, tr.SupportedLanguages())

	for _, key := range []string{
		"notifications.title",
		"notifications.empty",
		"notifications.types.event",
		"errors.unknown_type",
		"errors.internal_server_error",
		"time.just_now",
	} {
		assert.True(t, tr.HasTranslation("en", key), "en: %s", key)
		assert.True(t, tr.HasTranslation("fr", key), "fr: %s", key)
	}

	assert.Equal(t, "Accueil", tr.Resolve("fr", "nav.home", ""))
	assert.Equal(t, "il y a 3 minutes", tr.N("fr", "time.minutes_ago", 3))
}
