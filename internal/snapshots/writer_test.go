package snapshots

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/pyramid-service/internal/domain"
	"github.com/preston-bernstein/pyramid-service/internal/logging"
)

func TestWriterWritesPyramidAndManifest(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 10)

	writePyramid(t, w, "p1", samplePyramid("First"))

	data, err := os.ReadFile(filepath.Join(dir, "pyramids", "p1.json"))
	if err != nil {
		t.Fatalf("expected pyramid file, got err %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected pyramid content")
	}

	m, err := readManifest(filepath.Join(dir, "manifest.json"), 10)
	if err != nil {
		t.Fatalf("expected manifest, got err %v", err)
	}
	if len(m.Pyramids) != 1 || m.Pyramids[0].ID != "p1" || m.Pyramids[0].Title != "First" {
		t.Fatalf("unexpected manifest entries %+v", m.Pyramids)
	}
	if m.Pyramids[0].Theme != "eorzea" || m.Pyramids[0].Teams != 2 {
		t.Fatalf("unexpected manifest summary %+v", m.Pyramids[0])
	}
}

func TestWriterReplacesExistingEntry(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 10)

	writePyramid(t, w, "same", samplePyramid("Before"))
	writePyramid(t, w, "same", samplePyramid("After"))

	m, _ := readManifest(filepath.Join(dir, "manifest.json"), 10)
	if len(m.Pyramids) != 1 || m.Pyramids[0].Title != "After" {
		t.Fatalf("expected single updated entry, got %+v", m.Pyramids)
	}
}

func TestWriterPrunesOldestBeyondCap(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 2)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	w.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	for _, id := range []string{"oldest", "middle", "newest"} {
		writePyramid(t, w, id, samplePyramid(id))
	}

	if _, err := os.Stat(PyramidPath(dir, "oldest")); err == nil {
		t.Fatalf("expected oldest pyramid to be pruned")
	}
	requirePyramidExists(t, w, "middle")
	requirePyramidExists(t, w, "newest")

	m, _ := readManifest(filepath.Join(dir, "manifest.json"), 2)
	if len(m.Pyramids) != 2 || m.Pyramids[0].ID != "newest" || m.Pyramids[1].ID != "middle" {
		t.Fatalf("unexpected manifest after prune %+v", m.Pyramids)
	}
}

func TestWriterReportsPrunedIDs(t *testing.T) {
	w := NewWriter(t.TempDir(), 1)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	w.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	var pruned []string
	w.OnPrune(func(id string) { pruned = append(pruned, id) })

	for _, id := range []string{"a", "b", "c"} {
		writePyramid(t, w, id, samplePyramid(id))
	}

	if strings.Join(pruned, ",") != "a,b" {
		t.Fatalf("expected a and b to be pruned in order, got %v", pruned)
	}
}

func TestWriterRebuildsCorruptManifestFromDocuments(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, 10)
	var buf bytes.Buffer
	w.SetLogger(logging.NewLogger(logging.Config{Output: &buf}))

	writePyramid(t, w, "first", samplePyramid("First"))
	writePyramid(t, w, "second", samplePyramid("Second"))
	if err := os.WriteFile(filepath.Join(dir, "manifest.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("failed to corrupt manifest: %v", err)
	}

	writePyramid(t, w, "third", samplePyramid("Third"))

	m, err := readManifest(filepath.Join(dir, "manifest.json"), 10)
	if err != nil {
		t.Fatalf("expected readable manifest, got %v", err)
	}
	ids := map[string]bool{}
	for _, e := range m.Pyramids {
		ids[e.ID] = true
	}
	if len(m.Pyramids) != 3 || !ids["first"] || !ids["second"] || !ids["third"] {
		t.Fatalf("expected all three documents in manifest, got %+v", m.Pyramids)
	}
	if !strings.Contains(buf.String(), "pyramid manifest unreadable") {
		t.Fatalf("expected a warning about the manifest, got %q", buf.String())
	}
}

func TestWriterRejectsNilAndBadIDs(t *testing.T) {
	var w *Writer
	if err := w.WritePyramid("p", samplePyramid("x")); err == nil {
		t.Fatalf("expected error for nil writer")
	}

	w = NewWriter(t.TempDir(), 1)
	for _, id := range []string{"", "../escape", "has space", "a/b"} {
		err := w.WritePyramid(id, samplePyramid("x"))
		if !domain.IsKind(err, domain.KindInvalidInput) {
			t.Fatalf("expected invalid input for id %q, got %v", id, err)
		}
	}
}

func TestNewWriterDefaultsRetention(t *testing.T) {
	w := NewWriter(t.TempDir(), 0)
	if w.maxPyramids != defaultMaxPyramids {
		t.Fatalf("expected default retention %d, got %d", defaultMaxPyramids, w.maxPyramids)
	}
	if w.BasePath() == "" {
		t.Fatalf("expected base path")
	}
	var nilWriter *Writer
	if nilWriter.BasePath() != "" {
		t.Fatalf("expected empty base path for nil writer")
	}
}
