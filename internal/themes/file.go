package themes

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/preston-bernstein/pyramid-service/internal/domain"
)

type themeFile struct {
	Themes []Theme `yaml:"themes"`
}

// LoadFile reads extra themes from a YAML file of the form `themes: [...]`.
func LoadFile(path string) ([]Theme, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindInvalidInput
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return nil, &domain.Error{Op: "themes.load_file", Kind: kind, Path: path, Msg: "cannot read theme file", Err: err}
	}

	var f themeFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, &domain.Error{Op: "themes.load_file", Kind: domain.KindMalformedDocument, Path: path, Msg: "invalid theme file", Err: err}
	}
	return f.Themes, nil
}

// Build returns the builtin registry, extended with the themes in path when it is set.
// Extension themes may not reuse a builtin key.
func Build(path string) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	extra, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	r, err := NewRegistry(append(builtin(), extra...)...)
	if err != nil {
		if de, ok := err.(*domain.Error); ok && de.Path == "" {
			de.Path = path
		}
		return nil, err
	}
	return r, nil
}
