package snapshots

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/preston-bernstein/pyramid-service/internal/domain/pyramid"
)

// Manifest tracks the pyramids stored in a library directory.
type Manifest struct {
	Version     int       `json:"version"`
	GeneratedAt time.Time `json:"generatedAt"`
	Retention   Retention `json:"retention"`
	Pyramids    []Entry   `json:"pyramids"`
}

type Retention struct {
	MaxPyramids int `json:"maxPyramids"`
}

// Entry is one manifest row.
type Entry struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Theme   string    `json:"theme"`
	Teams   int       `json:"teams"`
	SavedAt time.Time `json:"savedAt"`
}

func entryFromSummary(s pyramid.Summary) Entry {
	return Entry{ID: s.ID, Title: s.Title, Theme: s.Theme, Teams: s.Teams, SavedAt: s.SavedAt}
}

// Summary converts the entry to the domain listing type.
func (e Entry) Summary() pyramid.Summary {
	return pyramid.Summary{ID: e.ID, Title: e.Title, Theme: e.Theme, Teams: e.Teams, SavedAt: e.SavedAt}
}

func defaultManifest(maxPyramids int) Manifest {
	return Manifest{
		Version:     1,
		GeneratedAt: time.Now().UTC(),
		Retention:   Retention{MaxPyramids: maxPyramids},
		Pyramids:    []Entry{},
	}
}

func readManifest(path string, maxPyramids int) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return defaultManifest(maxPyramids), err
	}
	defer f.Close()
	var m Manifest
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return defaultManifest(maxPyramids), err
	}
	if m.Pyramids == nil {
		m.Pyramids = []Entry{}
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest) error {
	m.GeneratedAt = time.Now().UTC()
	sortEntries(m.Pyramids)
	path := filepath.Join(basePath, manifestFile)
	tmp := path + ".tmp"
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// sortEntries orders newest first, then by id.
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].SavedAt.Equal(entries[j].SavedAt) {
			return entries[i].SavedAt.After(entries[j].SavedAt)
		}
		return entries[i].ID < entries[j].ID
	})
}
