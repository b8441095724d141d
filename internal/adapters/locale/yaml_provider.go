package locale

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/zatekoja/clarat-search/pkg/errors"
)

//go:embed locales/*.yml
var embeddedLocales embed.FS

// YAMLTextProvider serves translations from Rails-style locale files, where
// each file has the locale code as its single top-level key.
type YAMLTextProvider struct {
	translations map[string]map[string]interface{}
}

// NewYAMLTextProvider loads the embedded translations and, when dir is not
// empty, merges every *.yml file found there on top of them.
func NewYAMLTextProvider(dir string) (*YAMLTextProvider, error) {
	p := &YAMLTextProvider{translations: make(map[string]map[string]interface{})}

	sub, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return nil, err
	}
	if err := p.loadFS(sub); err != nil {
		return nil, fmt.Errorf("failed to load embedded locales: %w", err)
	}

	if dir != "" {
		if err := p.loadFS(os.DirFS(dir)); err != nil {
			return nil, fmt.Errorf("failed to load locales from %s: %w", dir, err)
		}
	}

	return p, nil
}

func (p *YAMLTextProvider) loadFS(fsys fs.FS) error {
	matches, err := fs.Glob(fsys, "*.yml")
	if err != nil {
		return err
	}
	for _, name := range matches {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		if err := p.loadDocument(data); err != nil {
			return fmt.Errorf("%s: %w", path.Base(name), err)
		}
	}
	return nil
}

func (p *YAMLTextProvider) loadDocument(data []byte) error {
	var doc map[string]map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	for locale, tree := range doc {
		existing, ok := p.translations[locale]
		if !ok {
			existing = make(map[string]interface{})
			p.translations[locale] = existing
		}
		deepMerge(existing, tree)
	}
	return nil
}

// Lookup returns the translation for a dotted key in the given locale.
func (p *YAMLTextProvider) Lookup(key, locale string) (string, error) {
	tree, ok := p.translations[locale]
	if !ok {
		return "", apperrors.NewNotFoundError(fmt.Sprintf("translation missing: locale %q", locale))
	}

	var node interface{} = tree
	for _, part := range strings.Split(key, ".") {
		m, ok := node.(map[string]interface{})
		if !ok {
			return "", apperrors.NewNotFoundError(fmt.Sprintf("translation missing: %s.%s", locale, key))
		}
		if node, ok = m[part]; !ok {
			return "", apperrors.NewNotFoundError(fmt.Sprintf("translation missing: %s.%s", locale, key))
		}
	}

	text, ok := node.(string)
	if !ok {
		return "", apperrors.NewNotFoundError(fmt.Sprintf("translation missing: %s.%s", locale, key))
	}
	return text, nil
}

// Locales returns the loaded locale codes.
func (p *YAMLTextProvider) Locales() []string {
	out := make([]string, 0, len(p.translations))
	for l := range p.translations {
		out = append(out, l)
	}
	return out
}

func deepMerge(dst, src map[string]interface{}) {
	for k, v := range src {
		srcMap, srcIsMap := v.(map[string]interface{})
		dstMap, dstIsMap := dst[k].(map[string]interface{})
		if srcIsMap && dstIsMap {
			deepMerge(dstMap, srcMap)
			continue
		}
		dst[k] = v
	}
}
