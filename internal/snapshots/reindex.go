package snapshots

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/preston-bernstein/pyramid-service/internal/document"
	"github.com/preston-bernstein/pyramid-service/internal/domain/pyramid"
	"github.com/preston-bernstein/pyramid-service/internal/logging"
)

// ReindexResult reports what a reindex changed.
type ReindexResult struct {
	Added   int
	Removed int
	Total   int
	Skipped map[string]error
}

// Reindex rebuilds the manifest from the documents on disk. Known entries keep their
// saved time; new documents use the file modification time.
func (w *Writer) Reindex() (ReindexResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	path := filepath.Join(w.basePath, manifestFile)
	m, err := readManifest(path, w.maxPyramids)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.Warn(w.logger, "pyramid manifest unreadable; rebuilding from documents",
			logging.FieldFile, path,
			"error", err,
		)
	}
	known := make(map[string]Entry, len(m.Pyramids))
	for _, e := range m.Pyramids {
		known[e.ID] = e
	}

	entries, result, err := w.scanEntries(known)
	if err != nil {
		return result.ReindexResult, err
	}
	for id := range known {
		if _, ok := result.onDisk[id]; !ok {
			result.Removed++
		}
	}

	if err := os.MkdirAll(w.basePath, 0o755); err != nil {
		return result.ReindexResult, err
	}
	m.Pyramids = w.prune(entries)
	m.Retention.MaxPyramids = w.maxPyramids
	result.Total = len(m.Pyramids)
	return result.ReindexResult, writeManifest(w.basePath, m)
}

type scanResult struct {
	ReindexResult
	onDisk map[string]struct{}
}

// scanEntries builds manifest entries for every valid document on disk, reusing known
// entries where present. Callers hold w.mu.
func (w *Writer) scanEntries(known map[string]Entry) ([]Entry, scanResult, error) {
	result := scanResult{
		ReindexResult: ReindexResult{Skipped: map[string]error{}},
		onDisk:        map[string]struct{}{},
	}
	ids, err := w.listIDs()
	if err != nil {
		return nil, result, err
	}

	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		result.onDisk[id] = struct{}{}
		if e, ok := known[id]; ok {
			entries = append(entries, e)
			continue
		}
		path := PyramidPath(w.basePath, id)
		p, err := document.Load(path)
		if err != nil {
			result.Skipped[id] = err
			continue
		}
		savedAt := w.now().UTC()
		if info, err := os.Stat(path); err == nil {
			savedAt = info.ModTime().UTC()
		}
		entries = append(entries, entryFromSummary(pyramid.Summarize(id, p, savedAt)))
		result.Added++
	}
	return entries, result, nil
}
