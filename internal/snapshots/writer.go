package snapshots

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/preston-bernstein/pyramid-service/internal/document"
	"github.com/preston-bernstein/pyramid-service/internal/domain/pyramid"
	"github.com/preston-bernstein/pyramid-service/internal/logging"
)

const defaultMaxPyramids = 500

// Writer persists pyramid documents and the manifest, pruning the oldest beyond the cap.
type Writer struct {
	basePath    string
	maxPyramids int
	now         func() time.Time
	onPrune     func(id string)
	logger      *slog.Logger
	mu          sync.Mutex
}

// NewWriter constructs a writer rooted at basePath keeping at most maxPyramids documents.
func NewWriter(basePath string, maxPyramids int) *Writer {
	if maxPyramids <= 0 {
		maxPyramids = defaultMaxPyramids
	}
	return &Writer{
		basePath:    basePath,
		maxPyramids: maxPyramids,
		now:         time.Now,
	}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// OnPrune registers fn to be called with the id of every document retention removes.
func (w *Writer) OnPrune(fn func(id string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onPrune = fn
}

// SetLogger sets the logger used for manifest recovery warnings.
func (w *Writer) SetLogger(logger *slog.Logger) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.logger = logger
}

// WritePyramid saves the document under id and records it in the manifest.
func (w *Writer) WritePyramid(id string, p pyramid.Pyramid) error {
	if w == nil {
		return fmt.Errorf("pyramid writer not configured")
	}
	if err := checkID("snapshots.write", id); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := document.Save(p, PyramidPath(w.basePath, id)); err != nil {
		return err
	}
	return w.updateManifest(pyramid.Summarize(id, p, w.now().UTC()))
}

func (w *Writer) updateManifest(s pyramid.Summary) error {
	m := w.loadManifest()

	entries := make([]Entry, 0, len(m.Pyramids)+1)
	entries = append(entries, entryFromSummary(s))
	for _, e := range m.Pyramids {
		if e.ID != s.ID {
			entries = append(entries, e)
		}
	}

	m.Pyramids = w.prune(entries)
	m.Retention.MaxPyramids = w.maxPyramids
	return writeManifest(w.basePath, m)
}

// loadManifest reads the manifest. A missing manifest starts empty; an unreadable one
// is rebuilt from the documents on disk so existing entries survive the next write.
func (w *Writer) loadManifest() Manifest {
	path := filepath.Join(w.basePath, manifestFile)
	m, err := readManifest(path, w.maxPyramids)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return m
	}
	logging.Warn(w.logger, "pyramid manifest unreadable; rebuilding from documents",
		logging.FieldFile, path,
		"error", err,
	)
	entries, _, scanErr := w.scanEntries(nil)
	if scanErr != nil {
		logging.Warn(w.logger, "pyramid library scan failed", logging.FieldFile, path, "error", scanErr)
		return m
	}
	m.Pyramids = entries
	return m
}

// prune drops the oldest entries beyond the cap and removes their files.
func (w *Writer) prune(entries []Entry) []Entry {
	sortEntries(entries)
	if len(entries) <= w.maxPyramids {
		return entries
	}
	for _, e := range entries[w.maxPyramids:] {
		_ = os.Remove(PyramidPath(w.basePath, e.ID))
		if w.onPrune != nil {
			w.onPrune(e.ID)
		}
	}
	return entries[:w.maxPyramids]
}

// listIDs returns the ids of documents present on disk.
func (w *Writer) listIDs() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(w.basePath, pyramidsDir))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() || !document.HasExtension(e.Name()) {
			continue
		}
		id := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if ValidID(id) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
