package snapshots

import (
	"os"
	"testing"

	"github.com/preston-bernstein/pyramid-service/internal/domain/pyramid"
)

func samplePyramid(title string) pyramid.Pyramid {
	return pyramid.Pyramid{
		Title: title,
		Meta:  pyramid.Meta{pyramid.MetaTheme: "eorzea", pyramid.MetaLevels: []int{2}},
		Divisions: []pyramid.Division{{
			Level: 1,
			Name:  "Top",
			Teams: []pyramid.Team{{Name: "Alpha", Location: "Gridania"}, {Name: "Beta", Location: "Ul'dah"}},
		}},
	}
}

func writePyramid(t *testing.T, w *Writer, id string, p pyramid.Pyramid) {
	t.Helper()
	if err := w.WritePyramid(id, p); err != nil {
		t.Fatalf("failed to write pyramid %s: %v", id, err)
	}
}

func requirePyramidExists(t *testing.T, w *Writer, id string) {
	t.Helper()
	if _, err := os.Stat(PyramidPath(w.BasePath(), id)); err != nil {
		t.Fatalf("expected pyramid %s to exist: %v", id, err)
	}
}
