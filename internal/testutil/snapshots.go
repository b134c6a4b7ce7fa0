package testutil

import (
	"testing"

	"github.com/preston-bernstein/pyramid-service/internal/domain/pyramid"
	"github.com/preston-bernstein/pyramid-service/internal/snapshots"
)

// NewTempLibrary returns a pyramid library rooted in a temp dir.
func NewTempLibrary(t *testing.T, maxPyramids int) *snapshots.Library {
	t.Helper()
	return snapshots.NewLibrary(t.TempDir(), maxPyramids)
}

// WriteStoredPyramid writes p into the library under id.
func WriteStoredPyramid(t *testing.T, lib *snapshots.Library, id string, p pyramid.Pyramid) {
	t.Helper()
	if err := writeStoredPayload(lib, id, p); err != nil {
		t.Fatalf("failed to write pyramid %s: %v", id, err)
	}
}

func writeStoredPayload(lib *snapshots.Library, id string, p pyramid.Pyramid) error {
	var w *snapshots.Writer
	if lib != nil {
		w = lib.Writer
	}
	return w.WritePyramid(id, p)
}

// StoredPath returns the expected file path for a stored pyramid.
func StoredPath(lib *snapshots.Library, id string) string {
	return snapshots.PyramidPath(lib.BasePath(), id)
}
