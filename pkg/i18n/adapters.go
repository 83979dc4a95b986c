package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
)

// TranslationAdapter loads translation tables keyed by language code.
// The source is chosen once at startup.
type TranslationAdapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapAdapter serves translations held in memory.
type MapAdapter struct {
	Data map[string]map[string]any
}

// Load returns a shallow copy of Data.
func (a *MapAdapter) Load(context.Context) (map[string]map[string]any, error) {
	out := make(map[string]map[string]any, len(a.Data))
	for lang, table := range a.Data {
		out[lang] = maps.Clone(table)
	}
	return out, nil
}

// FSAdapter loads every JSON and YAML file below root in fsys. It works with
// embedded locale files as well as os.DirFS directories. Files are read in
// lexical order and later files override keys of earlier ones.
type FSAdapter struct {
	fsys fs.FS
	root string
}

// NewFSAdapter creates an adapter reading from fsys. An empty root means ".".
func NewFSAdapter(fsys fs.FS, root string) *FSAdapter {
	if root == "" {
		root = "."
	}
	return &FSAdapter{fsys: fsys, root: root}
}

func (a *FSAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	result := make(map[string]map[string]any)
	files := 0

	err := fs.WalkDir(a.fsys, a.root, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Join(ErrFailedToWalkDirectory, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		parser := ParserForFile(name)
		if parser == nil {
			return nil
		}

		content, err := fs.ReadFile(a.fsys, name)
		if err != nil {
			return errors.Join(ErrFailedToReadFile, fmt.Errorf("%s: %w", name, err))
		}
		tables, err := parser.Parse(ctx, content)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		for lang, table := range tables {
			if _, ok := result[lang]; !ok {
				result[lang] = make(map[string]any, len(table))
			}
			mergeTable(result[lang], table)
		}
		files++
		return nil
	})
	if err != nil {
		return nil, errors.Join(ErrFailedToLoad, err)
	}
	if files == 0 {
		return nil, ErrNoTranslationFilesFound
	}

	return result, nil
}

// mergeTable copies src into dst, descending into nested maps present on
// both sides.
func mergeTable(dst, src map[string]any) {
	for k, v := range src {
		srcMap, srcIsMap := asMap(v)
		dstMap, dstIsMap := asMap(dst[k])
		if srcIsMap && dstIsMap {
			mergeTable(dstMap, srcMap)
			dst[k] = dstMap
			continue
		}
		dst[k] = v
	}
}
