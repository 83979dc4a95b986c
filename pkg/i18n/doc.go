// Package i18n resolves translation keys to display text.
//
// The core is Resolve, which never lets a raw key reach the member. A lookup
// that finds nothing echoes the key back; on that miss Resolve returns the
// caller's fallback or the last segment of the dotted key:
//
//	i18n.Resolve("nav.menu.home", "", nil)         // "home"
//	i18n.Resolve("missing.key", "Default", lookup) // "Default"
//	i18n.ResolvePretty("profile.firstName", "", nil) // "First Name"
//
// # Translator
//
// A Translator holds the tables of every language, loaded through a
// TranslationAdapter: MapAdapter for tests, FSAdapter for embedded or
// on-disk JSON and YAML files, PostgresAdapter for a translations table.
// Its Lookup method plugs into Resolve, and Resolve and Label wrap the
// common cases:
//
//	tr, err := i18n.NewTranslator(ctx, i18n.NewFSAdapter(locales.FS, "."))
//	tr.Resolve("fr", "nav.agenda", "")       // "Agenda"
//	tr.T("en", "agenda.next", "date", "Thu") // "Next tenue: Thu"
//
// Keys missing from a language are looked up in the default language before
// the miss is reported.
//
// # HTTP
//
// Middleware picks the request language from the query string, a cookie or
// Accept-Language and stores it in the context, where GetLocale, Tc and Rc
// read it.
package i18n
