package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser decodes a translation file. Files hold one top-level entry per
// language code mapping to that language's (possibly nested) keys:
//
//	en:
//	  nav:
//	    home: Home
type Parser interface {
	Parse(ctx context.Context, content []byte) (map[string]map[string]any, error)
	SupportsFileExtension(ext string) bool
}

// ParserForFile picks a parser from the file extension, or nil when the
// format is unknown.
func ParserForFile(name string) Parser {
	ext := strings.TrimPrefix(path.Ext(name), ".")
	for _, p := range []Parser{JSONParser{}, YAMLParser{}} {
		if p.SupportsFileExtension(ext) {
			return p
		}
	}
	return nil
}

// JSONParser reads .json translation files.
type JSONParser struct{}

func (JSONParser) Parse(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var data map[string]any
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	out, err := splitLanguages(data)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	return out, nil
}

func (JSONParser) SupportsFileExtension(ext string) bool {
	return strings.EqualFold(strings.TrimPrefix(ext, "."), "json")
}

// YAMLParser reads .yaml and .yml translation files.
type YAMLParser struct{}

func (YAMLParser) Parse(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	out, err := splitLanguages(data)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	return out, nil
}

func (YAMLParser) SupportsFileExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return strings.EqualFold(ext, "yaml") || strings.EqualFold(ext, "yml")
}

func splitLanguages(data map[string]any) (map[string]map[string]any, error) {
	out := make(map[string]map[string]any, len(data))
	for lang, val := range data {
		table, ok := asMap(val)
		if !ok {
			return nil, fmt.Errorf("language %q: expected a map of keys, got %T", lang, val)
		}
		out[lang] = table
	}
	return out, nil
}

// asMap accepts both decoded map shapes.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			if ks, ok := k.(string); ok {
				out[ks] = val
			}
		}
		return out, true
	}
	return nil, false
}
