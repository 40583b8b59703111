package i18n

import (
	"errors"
	"fmt"
)

var (
	ErrYAMLParsingCancelled = errors.New("yaml parsing cancelled")
	ErrFailedToParseYAML    = errors.New("failed to parse YAML content")
	ErrFailedToReadFile     = errors.New("failed to read translation file")
	ErrNoTranslations       = errors.New("no translations provided")
	ErrInvalidLanguage      = errors.New("invalid language code")
)

// ErrLanguageNotSupported indicates that the requested language is not available.
type ErrLanguageNotSupported struct {
	Lang string
}

func (e *ErrLanguageNotSupported) Error() string {
	return fmt.Sprintf("language not supported: %s", e.Lang)
}
