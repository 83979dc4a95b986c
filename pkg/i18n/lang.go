package i18n

import (
	"golang.org/x/text/language"
)

// DefaultLanguage is used when nothing better can be determined.
const DefaultLanguage = "en"

// Longer Accept-Language headers are truncated before parsing.
const maxAcceptLanguageLength = 4096

// RFC 5646 recommends 35 characters at most.
const maxLangCodeLength = 35

// Negotiate picks the supported language that best fits an Accept-Language
// header, honoring quality values and regional variants ("fr-CH" matches
// "fr"). It returns def when the header is empty, malformed, or matches
// nothing.
func Negotiate(acceptLanguage string, supported []string, def string) string {
	if acceptLanguage == "" || len(supported) == 0 {
		return def
	}
	if len(acceptLanguage) > maxAcceptLanguageLength {
		acceptLanguage = acceptLanguage[:maxAcceptLanguageLength]
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return def
	}

	if code, ok := match(tags, supported); ok {
		return code
	}
	return def
}

// Match maps a single language code onto the supported list, accepting
// regional variants of a supported base language.
func Match(code string, supported []string) (string, bool) {
	if code == "" || len(code) > maxLangCodeLength || len(supported) == 0 {
		return "", false
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	return match([]language.Tag{tag}, supported)
}

func match(want []language.Tag, supported []string) (string, bool) {
	tags := make([]language.Tag, 0, len(supported))
	codes := make([]string, 0, len(supported))
	for _, code := range supported {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		codes = append(codes, code)
	}
	if len(tags) == 0 {
		return "", false
	}

	_, idx, conf := language.NewMatcher(tags).Match(want...)
	if conf == language.No {
		return "", false
	}
	return codes[idx], true
}
