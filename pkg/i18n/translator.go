package i18n

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/language"

	"github.com/dmitrymomot/shapekit/pkg/logger"
	"github.com/dmitrymomot/shapekit/pkg/shape"
)

// DefaultLanguage is used when no requested language can be matched.
const DefaultLanguage = "en"

//go:embed locales/*.yaml
var builtin embed.FS

// Builtin returns a fresh copy of the bundled validation message catalog.
func Builtin() Catalog {
	catalog, err := LoadFS(context.Background(), builtin, "locales")
	if err != nil {
		panic(fmt.Sprintf("i18n: bundled locales: %v", err))
	}
	return catalog
}

// Translator renders catalog messages with %{name} placeholders.
// It is immutable after construction and safe for concurrent use.
type Translator struct {
	translations   Catalog
	defaultLang    string
	langs          []string
	matcher        language.Matcher
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the language used when matching fails.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = lang
		}
	}
}

// WithFallbackToKey makes T return the key when a translation is missing. Default is true.
func WithFallbackToKey(fallback bool) Option {
	return func(t *Translator) {
		t.fallbackToKey = fallback
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMissingTranslationsLogging logs every missing key at warn level.
func WithMissingTranslationsLogging(log bool) Option {
	return func(t *Translator) {
		t.missingLogMode = log
	}
}

// NewTranslator builds a translator over catalog. Every language code must
// be a valid BCP 47 tag and the default language must be present.
func NewTranslator(catalog Catalog, opts ...Option) (*Translator, error) {
	if len(catalog) == 0 {
		return nil, ErrNoTranslations
	}

	t := &Translator{
		translations:  catalog.Clone(),
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if _, ok := catalog[t.defaultLang]; !ok {
		return nil, &ErrLanguageNotSupported{Lang: t.defaultLang}
	}

	// The matcher falls back to its first tag, so the default goes first.
	t.langs = make([]string, 0, len(catalog))
	t.langs = append(t.langs, t.defaultLang)
	for _, lang := range sortedLangs(catalog) {
		if lang != t.defaultLang {
			t.langs = append(t.langs, lang)
		}
	}

	tags := make([]language.Tag, len(t.langs))
	for i, lang := range t.langs {
		tag, err := language.Parse(lang)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidLanguage, lang, err)
		}
		tags[i] = tag
	}
	t.matcher = language.NewMatcher(tags)

	t.logger.Debug("translations loaded", slog.Any("languages", t.langs))
	return t, nil
}

func sortedLangs(catalog Catalog) []string {
	langs := make([]string, 0, len(catalog))
	for lang := range catalog {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// SupportedLanguages lists catalog languages, default first.
func (t *Translator) SupportedLanguages() []string {
	return slices.Clone(t.langs)
}

// Match picks the best supported language for one or more preferences.
// Each preference may be a language tag or a full Accept-Language header.
func (t *Translator) Match(preferred ...string) string {
	var want []language.Tag
	for _, p := range preferred {
		tags, _, err := language.ParseAcceptLanguage(p)
		if err != nil {
			continue
		}
		want = append(want, tags...)
	}
	if len(want) == 0 {
		return t.defaultLang
	}
	_, idx, conf := t.matcher.Match(want...)
	if conf == language.No {
		return t.defaultLang
	}
	return t.langs[idx]
}

// HasTranslation reports whether key exists for exactly lang.
func (t *Translator) HasTranslation(lang, key string) bool {
	tree, ok := t.translations[lang]
	if !ok {
		return false
	}
	_, ok = lookup(tree, key)
	return ok
}

// T translates key for lang, substituting "%{name}" placeholders from
// args given as name, value pairs. An unknown lang is matched to the
// closest supported one.
//
//	// With "greeting": "Hello, %{name}!"
//	msg := translator.T("en", "greeting", "name", "John") // "Hello, John!"
func (t *Translator) T(lang, key string, args ...string) string {
	if tmpl, ok := t.template(lang, key); ok {
		return namedSprintf(tmpl, buildParams(args))
	}
	if t.fallbackToKey {
		return namedSprintf(key, buildParams(args))
	}
	return ""
}

func (t *Translator) template(lang, key string) (string, bool) {
	if _, ok := t.translations[lang]; !ok {
		lang = t.Match(lang)
	}
	val, ok := lookup(t.translations[lang], key)
	if !ok {
		if t.missingLogMode {
			t.logger.Warn("translation not found", slog.String("lang", lang), slog.String("key", key))
		}
		return "", false
	}
	s, ok := val.(string)
	if !ok {
		if t.missingLogMode {
			t.logger.Warn("translation is not a string",
				slog.String("lang", lang), slog.String("key", key), slog.String("type", fmt.Sprintf("%T", val)))
		}
		return "", false
	}
	return s, true
}

// Error renders err in lang. A validation failure is rendered from its leaf
// translation key, prefixed with the location of the failing field; other
// errors are returned verbatim.
func (t *Translator) Error(lang string, err error) string {
	ve := shape.ExtractValidationError(err)
	if ve == nil {
		if err == nil {
			return ""
		}
		return err.Error()
	}

	msg := t.message(lang, ve.Leaf())
	loc := ve.Location()
	if loc == "" {
		return msg
	}
	tmpl, ok := t.template(lang, "validation.at")
	if !ok {
		tmpl = "%{path}: %{message}"
	}
	return namedSprintf(tmpl, map[string]string{"node": ve.Node, "path": loc, "message": msg})
}

func (t *Translator) message(lang string, err error) string {
	if err == nil {
		return "invalid value"
	}
	ve, ok := err.(*shape.ValidationError)
	if !ok {
		return err.Error()
	}
	// A member check that failed with its own translatable error is more
	// specific than the generic intersection message.
	if ve.TranslationKey == "validation.intersection" && shape.IsValidationError(ve.Cause) {
		return t.Error(lang, ve.Cause)
	}
	tmpl, ok := t.template(lang, ve.TranslationKey)
	if !ok {
		return ve.Message
	}
	return namedSprintf(tmpl, formatValues(ve.TranslationValues))
}

func formatValues(values map[string]any) map[string]string {
	params := make(map[string]string, len(values))
	for k, v := range values {
		switch x := v.(type) {
		case string:
			params[k] = x
		case []string:
			params[k] = strings.Join(x, ", ")
		default:
			params[k] = fmt.Sprint(x)
		}
	}
	return params
}

// lookup traverses a nested map using dot-separated keys.
func lookup(tree map[string]any, key string) (any, bool) {
	if tree == nil {
		return nil, false
	}
	parts := strings.Split(key, ".")
	current := tree
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return val, true
		}
		if current, ok = val.(map[string]any); !ok {
			return nil, false
		}
	}
	return nil, false
}

// buildParams turns name, value pairs into a map; a trailing odd argument is ignored.
func buildParams(args []string) map[string]string {
	params := make(map[string]string, len(args)/2)
	for i := 0; i < len(args)-1; i += 2 {
		params[args[i]] = args[i+1]
	}
	return params
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// namedSprintf replaces "%{name}" placeholders; unknown ones are kept as is.
func namedSprintf(tmpl string, params map[string]string) string {
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}
