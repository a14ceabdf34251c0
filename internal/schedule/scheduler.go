package schedule

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/dom"
)

// DefaultChangeRate is the minimum spacing between change-triggered
// scans. Feed mutations arrive in bursts as the page renders; one pass
// per burst is enough because a pass covers every unclaimed post.
const DefaultChangeRate = 500 * time.Millisecond

// jobBuffer bounds how many submitted jobs can wait while a scan runs.
const jobBuffer = 16

// ScanFunc runs one scan pass.
type ScanFunc func(ctx context.Context) error

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger used for scan failures and lifecycle
// events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithChangeRate overrides the spacing between change-triggered scans.
func WithChangeRate(d time.Duration) Option {
	return func(s *Scheduler) {
		s.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// Scheduler serializes scan passes and settings mutations onto one
// goroutine.
type Scheduler struct {
	doc      *dom.Document
	interval time.Duration
	scan     ScanFunc
	logger   *slog.Logger
	limiter  *rate.Limiter

	subID   int
	changes <-chan struct{}

	jobs   chan func()
	paused atomic.Bool
}

// NewScheduler creates a Scheduler scanning at the given interval. The
// document subscription starts here, not in Run, so changes between
// construction and the loop start are not lost.
func NewScheduler(doc *dom.Document, interval time.Duration, scan ScanFunc, opts ...Option) *Scheduler {
	s := &Scheduler{
		doc:      doc,
		interval: interval,
		scan:     scan,
		logger:   slog.Default(),
		limiter:  rate.NewLimiter(rate.Every(DefaultChangeRate), 1),
		jobs:     make(chan func(), jobBuffer),
	}
	s.subID, s.changes = doc.Subscribe()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit queues a job onto the scheduler goroutine. Jobs are how
// settings change in watch mode: the mutation runs between scans, so
// no scan ever observes a half-applied settings struct.
func (s *Scheduler) Submit(job func()) {
	s.jobs <- job
}

// Pause stops scan passes until Resume. In-flight work finishes.
func (s *Scheduler) Pause() {
	s.paused.Store(true)
}

// Resume re-enables scan passes.
func (s *Scheduler) Resume() {
	s.paused.Store(false)
}

// Paused reports whether scanning is currently gated.
func (s *Scheduler) Paused() bool {
	return s.paused.Load()
}

// Run blocks, scanning on every tick and on rate-limited change
// signals, until the context ends. Scan errors are logged and the loop
// continues; one bad pass must not end a watch session.
func (s *Scheduler) Run(ctx context.Context) error {
	defer s.doc.Unsubscribe(s.subID)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("watch loop started", "interval", s.interval.String())
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("watch loop stopped")
			return ctx.Err()
		case job := <-s.jobs:
			job()
		case <-ticker.C:
			s.pass(ctx, "tick")
		case <-s.changes:
			if !s.limiter.Allow() {
				continue
			}
			s.pass(ctx, "change")
		}
	}
}

func (s *Scheduler) pass(ctx context.Context, trigger string) {
	if s.paused.Load() {
		return
	}
	if err := s.scan(ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return
		}
		s.logger.Error("scan pass failed", "trigger", trigger, "error", err)
	}
}
