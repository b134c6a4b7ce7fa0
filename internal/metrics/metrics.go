package metrics

import (
	"sync"
	"time"
)

type themeStats struct {
	generations     int
	errors          int
	teams           int
	suffixDraws     int
	fallbacks       int
	lastGenDuration time.Duration
}

// Generation describes one finished generate or resample call.
type Generation struct {
	Theme       string
	Teams       int
	SuffixDraws int
	Fallbacks   int
	Duration    time.Duration
	Err         error
}

// Recorder captures lightweight, in-memory metrics about pyramid generation and,
// when telemetry is enabled, mirrors them to OpenTelemetry instruments.
type Recorder struct {
	mu         sync.Mutex
	stats      map[string]*themeStats
	syncs      int
	syncErrors int
	otel       *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*themeStats),
		otel:  otel,
	}
}

// RecordGeneration increments the per-theme counters for a generation attempt.
func (r *Recorder) RecordGeneration(g Generation) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats, ok := r.stats[g.Theme]
	if !ok {
		stats = &themeStats{}
		r.stats[g.Theme] = stats
	}
	stats.generations++
	stats.lastGenDuration = g.Duration
	if g.Err != nil {
		stats.errors++
	} else {
		stats.teams += g.Teams
		stats.suffixDraws += g.SuffixDraws
		stats.fallbacks += g.Fallbacks
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordGeneration(g)
	}
}

// Generations returns the attempts recorded for a theme.
func (r *Recorder) Generations(theme string) int {
	return r.Snapshot(theme).Generations
}

// GenerationErrors returns the failed attempts recorded for a theme.
func (r *Recorder) GenerationErrors(theme string) int {
	return r.Snapshot(theme).Errors
}

// Snapshot is a copy of the stats recorded for one theme.
type Snapshot struct {
	Generations  int
	Errors       int
	Teams        int
	SuffixDraws  int
	Fallbacks    int
	LastDuration time.Duration
}

func (r *Recorder) Snapshot(theme string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[theme]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Generations:  stats.generations,
		Errors:       stats.errors,
		Teams:        stats.teams,
		SuffixDraws:  stats.suffixDraws,
		Fallbacks:    stats.fallbacks,
		LastDuration: stats.lastGenDuration,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordLibrarySync tracks one reindex of the pyramid library.
func (r *Recorder) RecordLibrarySync(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.syncs++
	if err != nil {
		r.syncErrors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordLibrarySync(duration, err)
	}
}

// LibrarySyncs returns the number of library reindexes recorded.
func (r *Recorder) LibrarySyncs() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.syncs
}

// LibrarySyncErrors returns the number of failed library reindexes.
func (r *Recorder) LibrarySyncErrors() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.syncErrors
}
