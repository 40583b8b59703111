package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog maps a language code to its nested translation tree.
type Catalog map[string]map[string]any

// Merge copies other into c. Keys of the same language are merged
// recursively; values from other win on conflict. Nested maps are copied,
// so later changes to either catalog do not leak into the other.
func (c Catalog) Merge(other Catalog) {
	for lang, tree := range other {
		if c[lang] == nil {
			c[lang] = make(map[string]any, len(tree))
		}
		mergeTree(c[lang], tree)
	}
}

// Clone returns a deep copy of c.
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	out.Merge(c)
	return out
}

func mergeTree(dst, src map[string]any) {
	for k, v := range src {
		srcMap, srcOK := v.(map[string]any)
		if !srcOK {
			dst[k] = v
			continue
		}
		dstMap, dstOK := dst[k].(map[string]any)
		if !dstOK {
			dstMap = make(map[string]any, len(srcMap))
			dst[k] = dstMap
		}
		mergeTree(dstMap, srcMap)
	}
}

// ParseYAML parses YAML content with language codes at the root.
func ParseYAML(ctx context.Context, content []byte) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrYAMLParsingCancelled, err)
	}

	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}

	result := make(Catalog, len(data))
	for lang, val := range data {
		tree, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: language %q: expected map, got %T", ErrFailedToParseYAML, lang, val)
		}
		result[lang] = tree
	}
	if len(result) == 0 {
		return nil, ErrNoTranslations
	}
	return result, nil
}

// LoadFS parses every .yaml or .yml file in dir of fsys into one catalog.
func LoadFS(ctx context.Context, fsys fs.FS, dir string) (Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}

	catalog := make(Catalog)
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		name := path.Join(dir, entry.Name())
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, fmt.Errorf("%s: %w", name, err))
		}
		parsed, err := ParseYAML(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		catalog.Merge(parsed)
	}
	if len(catalog) == 0 {
		return nil, ErrNoTranslations
	}
	return catalog, nil
}

func isYAML(name string) bool {
	ext := strings.TrimPrefix(path.Ext(name), ".")
	return strings.EqualFold(ext, "yaml") || strings.EqualFold(ext, "yml")
}
