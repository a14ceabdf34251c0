package queue

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/config"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/dom"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/feed"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/model"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/notify"
)

const batchFixture = `<html><body><div role="feed">
	<div role="article" id="p1">
		<h3><a href="/acme.page">Acme Corp</a></h3>
		<span>Sponsored</span>
	</div>
	<div role="article" id="p2">
		<h3><a href="/jane.doe">Jane Doe</a></h3>
		<p>Holiday photos</p>
	</div>
</div></body></html>`

// batchAutomator records which sources it was asked to unfollow.
type batchAutomator struct {
	mu      sync.Mutex
	outcome model.Outcome
	names   []string
}

func (a *batchAutomator) Run(_ context.Context, _ *feed.Post, _ model.Reason, source *model.Source) model.Outcome {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.names = append(a.names, source.Name)
	return a.outcome
}

func (a *batchAutomator) Names() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.names...)
}

func newBatchRunner(t *testing.T, settings *config.Settings, store *Store, auto *batchAutomator) (*Runner, *notify.MemoryNotifier) {
	t.Helper()

	doc, err := dom.Parse(strings.NewReader(batchFixture))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	scanner := feed.NewScanner(doc, settings, model.NewStats())
	notes := notify.NewMemoryNotifier()
	runner := NewRunner(doc, settings, store, scanner, auto,
		WithNotifier(notes),
		WithBatchDelay(time.Millisecond))
	return runner, notes
}

// TestExecuteBatch tests pending queue replay.
func TestExecuteBatch(t *testing.T) {
	t.Parallel()

	t.Run("empty queue is refused with a notice", func(t *testing.T) {
		t.Parallel()

		settings := config.NewSettings()
		settings.DryRun = false
		runner, notes := newBatchRunner(t, settings, NewStore(), &batchAutomator{})

		_, err := runner.ExecuteBatch(context.Background())
		if !errors.Is(err, ErrNothingPending) {
			t.Fatalf("expected ErrNothingPending, got %v", err)
		}
		msgs := notes.Notifications()
		if len(msgs) != 1 || msgs[0].Severity != notify.Warning {
			t.Errorf("expected one warning notification, got %+v", msgs)
		}
	})

	t.Run("dry run is refused and keeps the queue", func(t *testing.T) {
		t.Parallel()

		settings := config.NewSettings()
		settings.DryRun = true
		store := NewStore()
		store.AppendPending(model.NewPendingTarget(model.Source{Name: "Acme Corp", Link: "/acme.page"}, model.ReasonSponsored))
		runner, _ := newBatchRunner(t, settings, store, &batchAutomator{})

		_, err := runner.ExecuteBatch(context.Background())
		if !errors.Is(err, ErrDryRunActive) {
			t.Fatalf("expected ErrDryRunActive, got %v", err)
		}
		if got := store.PendingCount(); got != 1 {
			t.Errorf("expected the queue to survive the refusal, got %d", got)
		}
	})

	t.Run("executes matches and records missing targets", func(t *testing.T) {
		t.Parallel()

		settings := config.NewSettings()
		settings.DryRun = false
		store := NewStore()
		store.AppendPending(model.NewPendingTarget(model.Source{Name: "Acme Corp", Link: "/acme.page"}, model.ReasonSponsored))
		store.AppendPending(model.NewPendingTarget(model.Source{Name: "Ghost Page", Link: "/ghost.page"}, model.ReasonSuggested))
		auto := &batchAutomator{outcome: model.OutcomeUnfollowed}
		runner, notes := newBatchRunner(t, settings, store, auto)

		summary, err := runner.ExecuteBatch(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if summary.Attempted != 1 || summary.Unfollowed != 1 || summary.Missing != 1 || summary.Failed != 0 {
			t.Errorf("unexpected summary: %+v", summary)
		}

		if got := auto.Names(); len(got) != 1 || got[0] != "Acme Corp" {
			t.Errorf("expected one automation for Acme Corp, got %v", got)
		}

		executed := store.Executed()
		if len(executed) != 1 || executed[0].Signal != "no_matching_post" {
			t.Fatalf("expected a no_matching_post record, got %+v", executed)
		}
		if executed[0].Source.Name != "Ghost Page" {
			t.Errorf("expected the missing record to name Ghost Page, got %q", executed[0].Source.Name)
		}

		if got := store.PendingCount(); got != 0 {
			t.Errorf("expected the queue to be cleared, got %d", got)
		}
		msgs := notes.Notifications()
		if len(msgs) == 0 || msgs[len(msgs)-1].Severity != notify.Info {
			t.Errorf("expected a completion notification, got %+v", msgs)
		}
	})

	t.Run("name matching tolerates spacing differences", func(t *testing.T) {
		t.Parallel()

		settings := config.NewSettings()
		settings.DryRun = false
		store := NewStore()
		store.AppendPending(model.NewPendingTarget(model.Source{Name: " Acme  Corp ", Link: "/acme.page"}, model.ReasonSponsored))
		auto := &batchAutomator{outcome: model.OutcomeUnfollowed}
		runner, _ := newBatchRunner(t, settings, store, auto)

		summary, err := runner.ExecuteBatch(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if summary.Unfollowed != 1 || summary.Missing != 0 {
			t.Errorf("unexpected summary: %+v", summary)
		}
	})
}
