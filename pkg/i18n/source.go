package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source loads a Catalog.
type Source interface {
	Load(ctx context.Context) (Catalog, error)
}

// MapSource serves an in-memory catalog.
type MapSource Catalog

func (s MapSource) Load(_ context.Context) (Catalog, error) {
	if s == nil {
		return Catalog{}, nil
	}
	return Catalog(s), nil
}

// FSSource reads every *.yaml and *.yml file of a directory in fsys and
// merges them into one catalog. Each file holds one or more top-level
// language keys:
//
//	id:
//	  validation:
//	    required: "%{attribute} wajib diisi"
type FSSource struct {
	fsys fs.FS
	dir  string
}

func NewFSSource(fsys fs.FS, dir string) *FSSource {
	if dir == "" {
		dir = "."
	}
	return &FSSource{fsys: fsys, dir: dir}
}

func (s *FSSource) Load(ctx context.Context) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingCancelled, err)
	}

	entries, err := fs.ReadDir(s.fsys, s.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDir, err)
	}

	catalog := make(Catalog)
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}

		name := path.Join(s.dir, entry.Name())
		content, err := fs.ReadFile(s.fsys, name)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, fmt.Errorf("%s: %w", name, err))
		}

		parsed, err := ParseYAML(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		mergeCatalog(catalog, parsed)
	}
	return catalog, nil
}

// ParseYAML decodes a YAML document whose top-level keys are languages.
func ParseYAML(content []byte) (Catalog, error) {
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}

	catalog := make(Catalog, len(data))
	for lang, val := range data {
		tree, ok := asMap(val)
		if !ok {
			return nil, fmt.Errorf("%w: language %q: expected map, got %T", ErrInvalidCatalog, lang, val)
		}
		catalog[lang] = tree
	}
	return catalog, nil
}

// mergeCatalog deep-merges src into dst; later files win on conflicting leaves.
func mergeCatalog(dst, src Catalog) {
	for lang, tree := range src {
		if existing, ok := dst[lang]; ok {
			mergeTree(existing, tree)
			continue
		}
		dst[lang] = maps.Clone(tree)
	}
}

func mergeTree(dst, src map[string]any) {
	for k, v := range src {
		srcMap, srcIsMap := asMap(v)
		dstMap, dstIsMap := asMap(dst[k])
		if srcIsMap && dstIsMap {
			merged := maps.Clone(dstMap)
			mergeTree(merged, srcMap)
			dst[k] = merged
			continue
		}
		dst[k] = v
	}
}

func isYAML(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
