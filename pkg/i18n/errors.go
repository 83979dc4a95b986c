package i18n

import "errors"

var (
	// Translator
	ErrNilAdapter           = errors.New("translation adapter is nil")
	ErrInvalidTranslations  = errors.New("invalid translations")
	ErrLanguageNotSupported = errors.New("language not supported")
	ErrFailedToLoad         = errors.New("failed to load translations")
	ErrFailedToMarshalJSON  = errors.New("failed to marshal translations to JSON")

	// Parsers
	ErrParsingCancelled  = errors.New("translation parsing cancelled")
	ErrFailedToParseJSON = errors.New("failed to parse JSON translations")
	ErrFailedToParseYAML = errors.New("failed to parse YAML translations")

	// File system adapter
	ErrFailedToReadFile        = errors.New("failed to read translation file")
	ErrFailedToWalkDirectory   = errors.New("failed to walk translation directory")
	ErrNoTranslationFilesFound = errors.New("no translation files found")

	// Postgres adapter
	ErrFailedToQueryDatabase = errors.New("failed to query translations table")
	ErrFailedToScanRow       = errors.New("failed to scan translation row")
)
