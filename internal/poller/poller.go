package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/pyramid-service/internal/logging"
	"github.com/preston-bernstein/pyramid-service/internal/metrics"
	"github.com/preston-bernstein/pyramid-service/internal/snapshots"
)

const defaultInterval = 5 * time.Minute

// Indexer reconciles the pyramid library with its directory.
type Indexer interface {
	Reindex() (snapshots.ReindexResult, error)
}

// Poller reindexes the pyramid library on an interval so documents written by other
// processes show up in listings.
type Poller struct {
	indexer  Indexer
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the reindex loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
	Indexed             int
}

// IsReady reports whether the library has been indexed and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller with sane defaults.
func New(indexer Indexer, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		indexer:  indexer,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start begins reindexing until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.ticker = time.NewTicker(p.interval)
	p.startMu.Unlock()

	go func() {
		logging.Info(p.logger, "library poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		// Index once on boot so listings are complete before the first tick.
		p.syncOnce()

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "library poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "library poller stopped")
				return
			case <-p.ticker.C:
				p.syncOnce()
			}
		}
	}()
}

// Stop halts the loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

func (p *Poller) syncOnce() {
	start := time.Now()
	p.recordAttempt(start)
	result, err := p.indexer.Reindex()
	p.metrics.RecordLibrarySync(time.Since(start), err)
	if err != nil {
		logging.Error(p.logger, "library reindex failed", err, slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
		p.recordFailure(err, start)
		return
	}

	for id, skipErr := range result.Skipped {
		logging.Warn(p.logger, "skipping unreadable pyramid", logging.FieldPyramidID, id, "error", skipErr)
	}
	p.recordSuccess(start, result.Total)
	if result.Added > 0 || result.Removed > 0 {
		logging.Info(p.logger, "library reindexed",
			"added", result.Added,
			"removed", result.Removed,
			logging.FieldCount, result.Total,
			logging.FieldDurationMS, time.Since(start).Milliseconds(),
		)
	}
}

func (p *Poller) stopTicker() {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, indexed int) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.Indexed = indexed
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
