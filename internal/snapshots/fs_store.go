package snapshots

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/preston-bernstein/pyramid-service/internal/document"
	"github.com/preston-bernstein/pyramid-service/internal/domain"
	"github.com/preston-bernstein/pyramid-service/internal/domain/pyramid"
)

// FSStore loads stored pyramids from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LoadPyramid reads {basePath}/pyramids/{id}.json.
func (s *FSStore) LoadPyramid(id string) (pyramid.Pyramid, error) {
	if s == nil {
		return pyramid.Pyramid{}, errors.New("pyramid store not configured")
	}
	if err := checkID("snapshots.load", id); err != nil {
		return pyramid.Pyramid{}, err
	}
	return document.Load(PyramidPath(s.basePath, id))
}

// ListPyramids returns the manifest entries, newest first. A missing manifest is an empty library.
func (s *FSStore) ListPyramids() ([]pyramid.Summary, error) {
	if s == nil {
		return nil, errors.New("pyramid store not configured")
	}
	m, err := readManifest(filepath.Join(s.basePath, manifestFile), 0)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, &domain.Error{Op: "snapshots.list", Kind: domain.KindMalformedDocument, Path: filepath.Join(s.basePath, manifestFile), Msg: "unreadable manifest", Err: err}
	}
	out := make([]pyramid.Summary, 0, len(m.Pyramids))
	for _, e := range m.Pyramids {
		out = append(out, e.Summary())
	}
	return out, nil
}

// HasPyramid reports whether a document exists for id.
func (s *FSStore) HasPyramid(id string) bool {
	if s == nil || s.basePath == "" || !ValidID(id) {
		return false
	}
	_, err := os.Stat(PyramidPath(s.basePath, id))
	return err == nil
}

// Library combines the writer and reader over one directory.
type Library struct {
	*Writer
	*FSStore
}

// NewLibrary opens a library rooted at basePath.
func NewLibrary(basePath string, maxPyramids int) *Library {
	return &Library{
		Writer:  NewWriter(basePath, maxPyramids),
		FSStore: NewFSStore(basePath),
	}
}
