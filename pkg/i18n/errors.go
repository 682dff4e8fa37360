package i18n

import "errors"

var (
	ErrNilSource           = errors.New("i18n: translation source is nil")
	ErrEmptyLanguage       = errors.New("i18n: empty language code")
	ErrInvalidCatalog      = errors.New("i18n: invalid catalog structure")
	ErrFailedToParseYAML   = errors.New("i18n: failed to parse YAML content")
	ErrFailedToReadFile    = errors.New("i18n: failed to read translation file")
	ErrFailedToReadDir     = errors.New("i18n: failed to read translation directory")
	ErrLoadingCancelled    = errors.New("i18n: loading translations cancelled")
	ErrLanguageUnsupported = errors.New("i18n: language not supported")
)
