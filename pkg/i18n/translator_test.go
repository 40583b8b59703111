package i18n_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shapekit/pkg/i18n"
	"github.com/dmitrymomot/shapekit/pkg/logger"
	"github.com/dmitrymomot/shapekit/pkg/rules"
	"github.com/dmitrymomot/shapekit/pkg/shape"
)

func newTranslator(t *testing.T, opts ...i18n.Option) *i18n.Translator {
	t.Helper()
	catalog := i18n.Builtin()
	custom, err := i18n.LoadFS(context.Background(), os.DirFS("testdata"), ".")
	require.NoError(t, err)
	catalog.Merge(custom)

	tr, err := i18n.NewTranslator(catalog, opts...)
	require.NoError(t, err)
	return tr
}

func TestParseYAML(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		catalog, err := i18n.ParseYAML(ctx, []byte("en:\n  a:\n    b: text\n"))
		require.NoError(t, err)
		assert.Equal(t, "text", catalog["en"]["a"].(map[string]any)["b"])
	})

	t.Run("language is not a map", func(t *testing.T) {
		_, err := i18n.ParseYAML(ctx, []byte("en: [a, b]\n"))
		assert.ErrorIs(t, err, i18n.ErrFailedToParseYAML)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := i18n.ParseYAML(ctx, []byte("en: {a: "))
		assert.ErrorIs(t, err, i18n.ErrFailedToParseYAML)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := i18n.ParseYAML(ctx, []byte(""))
		assert.ErrorIs(t, err, i18n.ErrNoTranslations)
	})

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := i18n.ParseYAML(cctx, []byte("en: {a: b}"))
		assert.ErrorIs(t, err, i18n.ErrYAMLParsingCancelled)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLoadFS(t *testing.T) {
	ctx := context.Background()

	t.Run("merges files and skips others", func(t *testing.T) {
		fsys := fstest.MapFS{
			"l/a.yaml":  {Data: []byte("en:\n  one: One\n")},
			"l/b.yml":   {Data: []byte("en:\n  two: Two\nuk:\n  one: Один\n")},
			"l/c.txt":   {Data: []byte("garbage")},
			"l/sub/d.x": {Data: []byte("ignored")},
		}
		catalog, err := i18n.LoadFS(ctx, fsys, "l")
		require.NoError(t, err)
		assert.Equal(t, "One", catalog["en"]["one"])
		assert.Equal(t, "Two", catalog["en"]["two"])
		assert.Equal(t, "Один", catalog["uk"]["one"])
	})

	t.Run("broken file", func(t *testing.T) {
		fsys := fstest.MapFS{"l/a.yaml": {Data: []byte("en: 1\n")}}
		_, err := i18n.LoadFS(ctx, fsys, "l")
		assert.ErrorIs(t, err, i18n.ErrFailedToParseYAML)
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := i18n.LoadFS(ctx, fstest.MapFS{}, "nope")
		assert.ErrorIs(t, err, i18n.ErrFailedToReadFile)
	})

	t.Run("no catalogs", func(t *testing.T) {
		fsys := fstest.MapFS{"l/readme.md": {Data: []byte("#")}}
		_, err := i18n.LoadFS(ctx, fsys, "l")
		assert.ErrorIs(t, err, i18n.ErrNoTranslations)
	})
}

func TestCatalog_Merge(t *testing.T) {
	c := i18n.Catalog{"en": {"a": map[string]any{"x": "1", "y": "2"}}}
	c.Merge(i18n.Catalog{
		"en": {"a": map[string]any{"y": "3"}, "b": "4"},
		"uk": {"a": "5"},
	})
	assert.Equal(t, map[string]any{"x": "1", "y": "3"}, c["en"]["a"])
	assert.Equal(t, "4", c["en"]["b"])
	assert.Equal(t, "5", c["uk"]["a"])
}

func TestCatalog_MergeCopiesNestedMaps(t *testing.T) {
	override := i18n.Catalog{"en": {"validation": map[string]any{"x": "X"}}}
	base := i18n.Catalog{}
	base.Merge(override)
	base.Merge(i18n.Catalog{"en": {"validation": map[string]any{"y": "Y"}}})

	assert.Equal(t, map[string]any{"x": "X", "y": "Y"}, base["en"]["validation"])
	assert.Equal(t, map[string]any{"x": "X"}, override["en"]["validation"], "source catalog is left untouched")

	override["en"]["validation"].(map[string]any)["x"] = "changed"
	assert.Equal(t, "X", base["en"]["validation"].(map[string]any)["x"])

	clone := base.Clone()
	clone["en"]["validation"].(map[string]any)["y"] = "changed"
	assert.Equal(t, "Y", base["en"]["validation"].(map[string]any)["y"])
}

func TestNewTranslator_CopiesCatalog(t *testing.T) {
	catalog := i18n.Catalog{"en": {"greeting": "Hello"}}
	tr, err := i18n.NewTranslator(catalog)
	require.NoError(t, err)

	catalog["en"]["greeting"] = "Bye"
	assert.Equal(t, "Hello", tr.T("en", "greeting"))
}

func TestNewTranslator(t *testing.T) {
	t.Run("empty catalog", func(t *testing.T) {
		_, err := i18n.NewTranslator(nil)
		assert.ErrorIs(t, err, i18n.ErrNoTranslations)
	})

	t.Run("default language missing", func(t *testing.T) {
		_, err := i18n.NewTranslator(i18n.Builtin(), i18n.WithDefaultLanguage("fr"))
		var notSupported *i18n.ErrLanguageNotSupported
		require.ErrorAs(t, err, &notSupported)
		assert.Equal(t, "fr", notSupported.Lang)
	})

	t.Run("invalid language code", func(t *testing.T) {
		_, err := i18n.NewTranslator(i18n.Catalog{"en": {}, "not a tag!": {}})
		assert.ErrorIs(t, err, i18n.ErrInvalidLanguage)
	})

	t.Run("supported languages", func(t *testing.T) {
		tr := newTranslator(t, i18n.WithDefaultLanguage("uk"))
		assert.Equal(t, []string{"uk", "de", "en"}, tr.SupportedLanguages())
	})
}

func TestTranslator_T(t *testing.T) {
	tr := newTranslator(t)

	assert.Equal(t, "Hello, John!", tr.T("en", "greeting", "name", "John"))
	assert.Equal(t, "Hello, %{name}!", tr.T("en", "greeting"))
	assert.Equal(t, "Hello, Ann!", tr.T("en-GB", "greeting", "name", "Ann"), "regional variant falls back to base")
	assert.Equal(t, "missing.key", tr.T("en", "missing.key"))
	assert.Equal(t, "validation", tr.T("en", "validation"), "non-string value falls back to key")
	assert.True(t, tr.HasTranslation("uk", "validation.union"))
	assert.False(t, tr.HasTranslation("uk", "greeting"))

	strict := newTranslator(t, i18n.WithFallbackToKey(false))
	assert.Empty(t, strict.T("en", "missing.key"))
}

func TestTranslator_MissingLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	tr := newTranslator(t,
		i18n.WithLogger(logger.New(logger.WithOutput(buf))),
		i18n.WithMissingTranslationsLogging(true),
	)
	tr.T("en", "missing.key")
	assert.Contains(t, buf.String(), "translation not found")
	assert.Contains(t, buf.String(), "missing.key")
}

func TestTranslator_Match(t *testing.T) {
	tr := newTranslator(t)

	tests := []struct {
		name      string
		preferred []string
		want      string
	}{
		{"exact", []string{"uk"}, "uk"},
		{"regional", []string{"de-AT"}, "de"},
		{"accept header", []string{"fr-CH, fr;q=0.9, uk;q=0.8, en;q=0.5"}, "uk"},
		{"unsupported", []string{"ja"}, "en"},
		{"empty", nil, "en"},
		{"garbage", []string{";;;"}, "en"},
		{"first valid preference", []string{"", "uk-UA"}, "uk"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Match(tt.preferred...))
		})
	}
}

func TestTranslator_Error(t *testing.T) {
	tr := newTranslator(t)
	user := shape.Object("User", shape.Fields{
		"name": shape.String,
		"tags": shape.Array(shape.String),
		"zip":  shape.String,
	})

	t.Run("nested field", func(t *testing.T) {
		_, err := user.Loose(map[string]any{"name": "a", "tags": []any{"x", 42}, "zip": "1"})
		require.Error(t, err)
		assert.Equal(t, ".tags[1]: expected String, got 42", tr.Error("en", err))
		assert.Equal(t, ".tags[1]: очікувалось String, отримано 42", tr.Error("uk", err))
	})

	t.Run("catalog override", func(t *testing.T) {
		_, err := user.Loose(map[string]any{"name": "a", "tags": []any{}})
		require.Error(t, err)
		assert.Equal(t, ".zip: String is required", tr.Error("en", err))
	})

	t.Run("top level", func(t *testing.T) {
		_, err := user.Loose("nope")
		require.Error(t, err)
		assert.Equal(t, `erwartet User, erhalten "nope"`, tr.Error("de", err))
	})

	t.Run("missing key uses message", func(t *testing.T) {
		_, err := shape.Union(shape.String, shape.Number).Loose(true)
		require.Error(t, err)
		assert.Equal(t, "expected String | Number, got true", tr.Error("de", err))
	})

	t.Run("list values", func(t *testing.T) {
		v := shape.Adapt(shape.Boolean,
			shape.Convert(shape.String, func(v any) any { return v == "yes" }),
			shape.Convert(shape.Number, func(v any) any { return v != 0 }),
		)
		_, err := v.Loose(nil)
		require.Error(t, err)
		assert.Equal(t, "expected Boolean or a value adaptable from String, Number, got null", tr.Error("en", err))
	})

	t.Run("refined field", func(t *testing.T) {
		account := shape.Object("Account", shape.Fields{
			"login": rules.Refine(shape.String, rules.MinLen(3)),
		})
		_, err := account.Loose(map[string]any{"login": "ab"})
		require.Error(t, err)
		assert.Equal(t, ".login: must have at least 3 items, got 2", tr.Error("en", err))
		assert.Equal(t, ".login: має містити щонайменше 3 елементів, отримано 2", tr.Error("uk", err))
	})

	t.Run("plain errors", func(t *testing.T) {
		assert.Empty(t, tr.Error("en", nil))
		assert.Equal(t, "boom", tr.Error("en", errors.New("boom")))
	})
}
