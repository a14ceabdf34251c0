package unfollow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/config"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/dom"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/feed"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/model"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/notify"
)

// Settle delays between interface interactions. The page's scripts need
// time to render menus and dialogs; searching too early misses elements
// that were about to appear.
const (
	// MenuSettleDelay follows the menu trigger activation.
	MenuSettleDelay = 350 * time.Millisecond

	// ConfirmSettleDelay follows the unfollow action activation.
	ConfirmSettleDelay = 300 * time.Millisecond

	// PostActionDelay follows the confirmation activation.
	PostActionDelay = 200 * time.Millisecond
)

// attrUnfollowed annotates posts whose source was unfollowed.
const attrUnfollowed = "data-fcp-unfollowed"

// TargetSink receives the queue records automation produces: pending
// targets in dry-run mode, executed records otherwise.
type TargetSink interface {
	AppendPending(model.Target)
	AppendExecuted(model.Target)
}

// Recorder persists executed automation records across sessions.
// Persistence is best effort: a failing Recorder is logged, never
// propagated.
type Recorder interface {
	Record(model.Target) error
}

// Option configures an Engine.
type Option func(*Engine)

// WithSink registers the queue store receiving pending and executed
// targets.
func WithSink(sink TargetSink) Option {
	return func(e *Engine) {
		e.sink = sink
	}
}

// WithNotifier registers the user-facing notification channel.
func WithNotifier(n notify.Notifier) Option {
	return func(e *Engine) {
		e.notifier = n
	}
}

// WithRecorder registers the persistent action history.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithLogger sets the logger used for state transitions and faults.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSettleDelays overrides the render settle delays, for hosts with
// known-fast rendering and for tests.
func WithSettleDelays(menu, confirm, action time.Duration) Option {
	return func(e *Engine) {
		e.menuDelay = menu
		e.confirmDelay = confirm
		e.actionDelay = action
	}
}

// Engine executes the unfollow workflow against the live document.
//
// Design decision: runs are serialized by a mutex rather than queued
// because:
//  1. Two interleaved workflows would race over the same shared menus and dialogs
//  2. The scanner and batch runner both block on Run anyway, so a queue
//     would only hide the backpressure
//  3. Serialization makes the settle-delay timing meaningful
type Engine struct {
	doc      *dom.Document
	settings *config.Settings
	stats    *model.Stats
	sink     TargetSink
	notifier notify.Notifier
	recorder Recorder
	logger   *slog.Logger

	menuDelay    time.Duration
	confirmDelay time.Duration
	actionDelay  time.Duration

	// runMu serializes workflows: at most one automation interacts with
	// the page at a time.
	runMu sync.Mutex

	// seenMu guards seen, the session dedupe set keyed by canonical link.
	seenMu sync.RWMutex
	seen   map[string]bool
}

var _ feed.Automator = (*Engine)(nil)

// NewEngine creates an Engine over the given document.
func NewEngine(doc *dom.Document, settings *config.Settings, stats *model.Stats, opts ...Option) *Engine {
	if stats == nil {
		stats = model.NewStats()
	}
	e := &Engine{
		doc:          doc,
		settings:     settings,
		stats:        stats,
		logger:       slog.Default(),
		menuDelay:    MenuSettleDelay,
		confirmDelay: ConfirmSettleDelay,
		actionDelay:  PostActionDelay,
		seen:         make(map[string]bool),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// HandledCount reports how many distinct sources were acted on this
// session.
func (e *Engine) HandledCount() int {
	e.seenMu.RLock()
	defer e.seenMu.RUnlock()
	return len(e.seen)
}

// Run executes one unfollow workflow and returns its terminal outcome.
// Faults never escape: a panicking host script surfaces as
// OutcomeFailed.
func (e *Engine) Run(ctx context.Context, post *feed.Post, reason model.Reason, source *model.Source) (outcome model.Outcome) {
	e.runMu.Lock()
	defer e.runMu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			e.fail(reason, source, fmt.Errorf("unexpected fault: %v", r))
			outcome = model.OutcomeFailed
		}
	}()

	e.enter(StateGuarded)

	// Guards run in a fixed order and never suspend. Each terminal is
	// final for this post; nothing is retried.
	if !source.Usable() {
		e.stats.AddError()
		e.logger.Warn("automation rejected", "error", ErrMissingSource)
		e.notify("Could not identify the post's source", notify.Warning, notify.ShortDuration)
		return model.OutcomeMissingSource
	}
	if model.ContainsName(e.settings.Whitelist, source.Name) {
		e.conceal(post, model.OutcomeWhitelisted)
		return model.OutcomeWhitelisted
	}
	if e.settings.FriendProtection && source.IsFriend {
		e.stats.AddProtected()
		e.conceal(post, model.OutcomeProtected)
		e.notify(fmt.Sprintf("Protected friend: %s", source.Name), notify.Info, notify.ShortDuration)
		return model.OutcomeProtected
	}
	if e.alreadyHandled(source.Link) {
		e.conceal(post, model.OutcomeAlreadyHandled)
		return model.OutcomeAlreadyHandled
	}
	if e.settings.DryRun {
		e.appendPending(model.NewPendingTarget(*source, reason))
		e.conceal(post, model.OutcomeQueued)
		e.notify(fmt.Sprintf("Queued %s (dry run)", source.Name), notify.Info, notify.ShortDuration)
		return model.OutcomeQueued
	}

	e.enter(StateMenuOpening)
	var trigger *dom.Node
	e.doc.View(func() {
		trigger = findMenuTrigger(post.Node())
	})
	if trigger == nil {
		e.fail(reason, source, ErrMenuButtonNotFound)
		return model.OutcomeFailed
	}
	e.doc.Activate(trigger)
	if err := e.pause(ctx, e.menuDelay); err != nil {
		e.fail(reason, source, err)
		return model.OutcomeFailed
	}

	// Menus may render outside the post subtree, so from here on every
	// search covers the whole document.
	e.enter(StateMenuOpen)
	var action *dom.Node
	menuEmpty := false
	e.doc.View(func() {
		items := e.doc.Root().FindAll(menuItemPred)
		if len(items) == 0 {
			menuEmpty = true
			return
		}
		for _, item := range items {
			if matchesPhrase(item, unfollowPhrases) {
				action = item
				return
			}
		}
	})
	if menuEmpty {
		e.fail(reason, source, ErrMenuDidNotOpen)
		return model.OutcomeFailed
	}
	if action == nil {
		e.fail(reason, source, ErrActionNotFound)
		return model.OutcomeFailed
	}

	e.enter(StateActionSelected)
	e.doc.Activate(action)
	if err := e.pause(ctx, e.confirmDelay); err != nil {
		e.fail(reason, source, err)
		return model.OutcomeFailed
	}

	// A missing confirmation target is success: some flows complete on
	// the menu click alone.
	e.enter(StateConfirming)
	var confirm *dom.Node
	e.doc.View(func() {
		for _, dialog := range e.doc.Root().FindAll(dialogPred) {
			for _, b := range dialog.FindAll(actionablePred) {
				if matchesPhrase(b, confirmPhrases) {
					confirm = b
					return
				}
			}
		}
	})
	if confirm != nil {
		e.doc.Activate(confirm)
		if err := e.pause(ctx, e.actionDelay); err != nil {
			e.fail(reason, source, err)
			return model.OutcomeFailed
		}
	}

	e.enter(StateDone)
	e.markHandled(source.Link)
	e.stats.AddUnfollowed()
	target := model.NewExecutedTarget(*source, reason)
	e.appendExecuted(target)
	e.doc.SetAttr(post.Node(), attrUnfollowed, "1")
	e.conceal(post, model.OutcomeUnfollowed)
	e.notify(fmt.Sprintf("Unfollowed %s", source.Name), notify.Success, notify.DefaultDuration)
	e.persist(target)
	e.logger.Info("unfollowed source", "name", source.Name, "link", source.Link, "reason", reason.String())
	return model.OutcomeUnfollowed
}

// fail records the error terminal: executed record, error counter,
// notification, and a single attempt to close whatever dialog the
// workflow left open. The post is not hidden; a visibly failed post is
// the user's cue to intervene by hand.
func (e *Engine) fail(reason model.Reason, source *model.Source, err error) {
	e.enter(StateFailed)

	var src model.Source
	if source != nil {
		src = *source
	}
	target := model.NewFailedTarget(src, reason, signalName(err), err.Error())
	e.appendExecuted(target)
	e.stats.AddError()
	e.notify(fmt.Sprintf("Unfollow failed: %v", err), notify.Error, notify.LongDuration)
	e.closeStrayDialog()
	e.persist(target)
	e.logger.Warn("automation failed", "source", src.Name, "signal", signalName(err), "error", err)
}

// closeStrayDialog activates the first dismissal control found on any
// open dialog. Best effort: when nothing matches, the dialog stays and
// the user closes it.
func (e *Engine) closeStrayDialog() {
	var control *dom.Node
	e.doc.View(func() {
		for _, dialog := range e.doc.Root().FindAll(dialogPred) {
			if c := findCloseControl(dialog); c != nil {
				control = c
				return
			}
		}
	})
	if control != nil {
		e.doc.Activate(control)
	}
}

// conceal hides the post with a terminal annotation and counts it.
// Every concealing terminal counts toward hidden, including no-op
// terminals like whitelisting: the user sees one fewer post either way.
func (e *Engine) conceal(post *feed.Post, outcome model.Outcome) {
	e.doc.Hide(post.Node(), outcome.String())
	e.stats.AddHidden()
}

// pause sleeps for the settle delay unless the context ends first.
func (e *Engine) pause(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
	case <-timer.C:
		return nil
	}
}

func (e *Engine) enter(s State) {
	e.logger.Debug("workflow state", "state", s.String())
}

func (e *Engine) alreadyHandled(link string) bool {
	e.seenMu.RLock()
	defer e.seenMu.RUnlock()
	return e.seen[link]
}

func (e *Engine) markHandled(link string) {
	e.seenMu.Lock()
	defer e.seenMu.Unlock()
	e.seen[link] = true
}

func (e *Engine) appendPending(t model.Target) {
	if e.sink != nil {
		e.sink.AppendPending(t)
	}
}

func (e *Engine) appendExecuted(t model.Target) {
	if e.sink != nil {
		e.sink.AppendExecuted(t)
	}
}

func (e *Engine) notify(message string, severity notify.Severity, duration time.Duration) {
	if e.notifier != nil {
		e.notifier.Notify(message, severity, duration)
	}
}

func (e *Engine) persist(t model.Target) {
	if e.recorder == nil {
		return
	}
	if err := e.recorder.Record(t); err != nil {
		e.logger.Warn("failed to persist action record", "error", err)
	}
}
