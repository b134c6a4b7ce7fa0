package document

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/preston-bernstein/pyramid-service/internal/domain"
	"github.com/preston-bernstein/pyramid-service/internal/domain/pyramid"
)

// Extension is the only file extension Save writes.
const Extension = ".json"

// HasExtension reports whether path ends in the document extension, ignoring case.
func HasExtension(path string) bool {
	return strings.EqualFold(filepath.Ext(path), Extension)
}

// Save writes the pyramid to path via a temp file and rename, replacing any existing file.
func Save(p pyramid.Pyramid, path string) error {
	if !HasExtension(path) {
		return &domain.Error{
			Op:   "document.save",
			Kind: domain.KindInvalidInput,
			Path: path,
			Msg:  "pyramids are written as JSON; use a .json file extension",
		}
	}

	data, err := Marshal(p)
	if err != nil {
		return fmt.Errorf("encode pyramid: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

// Load reads a pyramid document from path.
func Load(path string) (pyramid.Pyramid, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return pyramid.Pyramid{}, &domain.Error{
				Op:   "document.load",
				Kind: domain.KindNotFound,
				Path: path,
				Msg:  "pyramid file not found",
			}
		}
		return pyramid.Pyramid{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	p, err := Decode(f)
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) && de.Path == "" {
			de.Path = path
		}
		return pyramid.Pyramid{}, err
	}
	return p, nil
}
