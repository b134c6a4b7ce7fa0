package store

import (
	"sort"
	"sync"
	"time"

	"github.com/preston-bernstein/pyramid-service/internal/domain/pyramid"
)

type entry struct {
	pyramid pyramid.Pyramid
	savedAt time.Time
	seq     uint64
}

// MemoryStore keeps a thread-safe cache of generated pyramids keyed by id.
type MemoryStore struct {
	mu       sync.RWMutex
	pyramids map[string]entry
	now      func() time.Time
	max      int
	seq      uint64
}

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithMaxPyramids caps the store; the least recently stored entries are evicted first.
// Zero or negative means unbounded.
func WithMaxPyramids(n int) Option {
	return func(s *MemoryStore) { s.max = n }
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		pyramids: make(map[string]entry),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PutPyramid stores a copy of p under id, replacing any previous value.
func (s *MemoryStore) PutPyramid(id string, p pyramid.Pyramid) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.pyramids[id] = entry{pyramid: p.Clone(), savedAt: s.now().UTC(), seq: s.seq}
	s.evict()
}

// DeletePyramid removes id; missing ids are ignored.
func (s *MemoryStore) DeletePyramid(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pyramids, id)
}

// evict drops the oldest entries beyond the cap. Callers hold the write lock.
func (s *MemoryStore) evict() {
	if s.max <= 0 {
		return
	}
	for len(s.pyramids) > s.max {
		var (
			oldestID  string
			oldestSeq uint64
			found     bool
		)
		for id, e := range s.pyramids {
			if !found || e.seq < oldestSeq {
				oldestID, oldestSeq, found = id, e.seq, true
			}
		}
		delete(s.pyramids, oldestID)
	}
}

// GetPyramid retrieves a copy of the pyramid stored under id.
func (s *MemoryStore) GetPyramid(id string) (pyramid.Pyramid, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.pyramids[id]
	if !ok {
		return pyramid.Pyramid{}, false
	}
	return e.pyramid.Clone(), true
}

// ListPyramids returns summaries, newest first.
func (s *MemoryStore) ListPyramids() []pyramid.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]pyramid.Summary, 0, len(s.pyramids))
	for id, e := range s.pyramids {
		result = append(result, pyramid.Summarize(id, e.pyramid, e.savedAt))
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].SavedAt.Equal(result[j].SavedAt) {
			return result[i].SavedAt.After(result[j].SavedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// Len returns the number of stored pyramids.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pyramids)
}
