package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/config"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/dom"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/feed"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/model"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/notify"
)

// BatchDelay is the pause between batch items. Firing automations
// back-to-back overwhelms the page's rendering and trips rate limits.
const BatchDelay = 220 * time.Millisecond

// Batch execution refusals.
var (
	// ErrNothingPending indicates the pending queue was empty.
	ErrNothingPending = errors.New("no pending targets to execute")

	// ErrDryRunActive indicates dry-run mode blocks batch execution.
	ErrDryRunActive = errors.New("dry run must be disabled for batch execution")
)

// FeedView is the subset of the scanner the batch runner needs.
type FeedView interface {
	VisiblePosts() []*dom.Node
	SourceOf(n *dom.Node) *model.Source
}

// BatchSummary reports one batch execution.
type BatchSummary struct {
	// Attempted counts automation invocations.
	Attempted int `json:"attempted"`

	// Unfollowed counts attempts that completed.
	Unfollowed int `json:"unfollowed"`

	// Failed counts attempts that ended in the failure terminal.
	Failed int `json:"failed"`

	// Missing counts targets with no matching post on screen.
	Missing int `json:"missing"`
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithNotifier registers the user-facing notification channel.
func WithNotifier(n notify.Notifier) RunnerOption {
	return func(r *Runner) {
		r.notifier = n
	}
}

// WithLogger sets the logger used for per-target diagnostics.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithBatchDelay overrides the inter-item pause, for tests.
func WithBatchDelay(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.delay = d
	}
}

// Runner replays the pending queue against the live feed.
type Runner struct {
	doc       *dom.Document
	settings  *config.Settings
	store     *Store
	view      FeedView
	automator feed.Automator
	notifier  notify.Notifier
	logger    *slog.Logger
	delay     time.Duration
}

// NewRunner creates a Runner over the given collaborators.
func NewRunner(doc *dom.Document, settings *config.Settings, store *Store, view FeedView, automator feed.Automator, opts ...RunnerOption) *Runner {
	r := &Runner{
		doc:       doc,
		settings:  settings,
		store:     store,
		view:      view,
		automator: automator,
		logger:    slog.Default(),
		delay:     BatchDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ExecuteBatch runs every pending target in queue order. The pending
// queue is cleared when the batch ends, whatever the outcomes: targets
// that failed are in the executed trail, not silently retried on the
// next batch.
func (r *Runner) ExecuteBatch(ctx context.Context) (BatchSummary, error) {
	targets := r.store.Pending()
	if len(targets) == 0 {
		r.notify("Nothing to execute: the pending queue is empty", notify.Warning, notify.DefaultDuration)
		return BatchSummary{}, ErrNothingPending
	}
	if r.settings.DryRun {
		r.notify("Disable dry run to execute the batch", notify.Warning, notify.DefaultDuration)
		return BatchSummary{}, ErrDryRunActive
	}

	defer r.store.ClearPending()

	var summary BatchSummary
	for i, target := range targets {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		node := r.findVisiblePost(target.Source.Name)
		if node == nil {
			r.store.AppendExecuted(model.NewFailedTarget(
				target.Source, target.Reason, "no_matching_post", "no matching post on screen"))
			summary.Missing++
			r.logger.Warn("batch target not on screen", "name", target.Source.Name)
			continue
		}

		post := feed.CapturePost(r.doc, node)
		src := target.Source
		outcome := r.automator.Run(ctx, post, target.Reason, &src)
		summary.Attempted++
		switch outcome {
		case model.OutcomeUnfollowed:
			summary.Unfollowed++
		case model.OutcomeFailed:
			summary.Failed++
		}
		r.logger.Debug("batch target finished", "name", target.Source.Name, "outcome", outcome.String())

		if i < len(targets)-1 {
			if err := r.pause(ctx); err != nil {
				return summary, err
			}
		}
	}

	r.notify(fmt.Sprintf("Batch finished: %d unfollowed, %d failed, %d not on screen",
		summary.Unfollowed, summary.Failed, summary.Missing), notify.Info, notify.LongDuration)
	return summary, nil
}

// findVisiblePost returns the first visible post whose extracted source
// name equals the target name.
func (r *Runner) findVisiblePost(name string) *dom.Node {
	for _, node := range r.view.VisiblePosts() {
		src := r.view.SourceOf(node)
		if src != nil && model.SameName(src.Name, name) {
			return node
		}
	}
	return nil
}

func (r *Runner) pause(ctx context.Context) error {
	timer := time.NewTimer(r.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (r *Runner) notify(message string, severity notify.Severity, duration time.Duration) {
	if r.notifier != nil {
		r.notifier.Notify(message, severity, duration)
	}
}
