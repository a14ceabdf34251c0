package feed

import (
	"context"
	"strings"
	"testing"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/config"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/dom"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/journal"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/model"
)

// feedFixture is a two-post feed: one sponsored page post, one ordinary
// post from a person.
const feedFixture = `<html><body><div role="feed">
	<div role="article" id="p1">
		<h3><a href="/acme.page">Acme Corp</a></h3>
		<span>Sponsored</span>
		<p>Buy our thing today</p>
	</div>
	<div role="article" id="p2">
		<h3><a href="/jane.doe">Jane Doe</a></h3>
		<p>Holiday photos from the coast</p>
	</div>
</div></body></html>`

func parseFixture(t *testing.T, src string) *dom.Document {
	t.Helper()

	doc, err := dom.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func findPost(t *testing.T, doc *dom.Document, id string) *dom.Node {
	t.Helper()

	post := doc.Find(dom.ByAttr("id", id))
	if post == nil {
		t.Fatalf("fixture has no element with id=%s", id)
	}
	return post
}

type recordedRun struct {
	postID string
	reason model.Reason
	source *model.Source
}

// fakeAutomator records handoffs without touching the document.
type fakeAutomator struct {
	outcome model.Outcome
	runs    []recordedRun
}

func (f *fakeAutomator) Run(_ context.Context, post *Post, reason model.Reason, source *model.Source) model.Outcome {
	f.runs = append(f.runs, recordedRun{postID: post.ID, reason: reason, source: source})
	return f.outcome
}

// TestScannerScan tests the classify-and-hide pass.
func TestScannerScan(t *testing.T) {
	t.Parallel()

	t.Run("hides classified posts and journals every outcome", func(t *testing.T) {
		t.Parallel()

		doc := parseFixture(t, feedFixture)
		settings := config.NewSettings()
		stats := model.NewStats()
		j := journal.New()
		s := NewScanner(doc, settings, stats, WithJournal(j))

		if err := s.Scan(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		p1 := findPost(t, doc, "p1")
		p2 := findPost(t, doc, "p2")
		if !doc.IsHidden(p1) {
			t.Error("expected sponsored post to be hidden")
		}
		if got := doc.GetAttr(p1, dom.AttrReason); got != "sponsored" {
			t.Errorf("expected reason annotation %q, got %q", "sponsored", got)
		}
		if doc.IsHidden(p2) {
			t.Error("expected ordinary post to stay visible")
		}

		snap := stats.Snapshot()
		if snap.Processed != 2 {
			t.Errorf("expected 2 processed, got %d", snap.Processed)
		}
		if snap.Hidden != 1 {
			t.Errorf("expected 1 hidden, got %d", snap.Hidden)
		}

		entries := j.Entries()
		if len(entries) != 2 {
			t.Fatalf("expected 2 journal entries, got %d", len(entries))
		}
		if entries[0].Reason != model.ReasonSponsored || entries[0].ActorName != "Acme Corp" {
			t.Errorf("unexpected first entry: %+v", entries[0])
		}
		if entries[1].Reason != model.ReasonNone || entries[1].ActorName != "Jane Doe" {
			t.Errorf("expected actor fields even for unmatched posts, got %+v", entries[1])
		}
	})

	t.Run("second pass claims nothing", func(t *testing.T) {
		t.Parallel()

		doc := parseFixture(t, feedFixture)
		settings := config.NewSettings()
		stats := model.NewStats()
		j := journal.New()
		s := NewScanner(doc, settings, stats, WithJournal(j))

		if err := s.Scan(context.Background()); err != nil {
			t.Fatalf("first scan: %v", err)
		}
		if err := s.Scan(context.Background()); err != nil {
			t.Fatalf("second scan: %v", err)
		}

		if snap := stats.Snapshot(); snap.Processed != 2 {
			t.Errorf("expected 2 processed after rescan, got %d", snap.Processed)
		}
		if j.Len() != 2 {
			t.Errorf("expected 2 journal entries after rescan, got %d", j.Len())
		}
	})

	t.Run("newly attached posts are picked up by the next pass", func(t *testing.T) {
		t.Parallel()

		doc := parseFixture(t, feedFixture)
		settings := config.NewSettings()
		stats := model.NewStats()
		s := NewScanner(doc, settings, stats)

		if err := s.Scan(context.Background()); err != nil {
			t.Fatalf("first scan: %v", err)
		}

		root := doc.Find(dom.ByRole("feed"))
		if root == nil {
			t.Fatal("fixture has no feed container")
		}
		nodes, err := dom.ParseFragment(strings.NewReader(
			`<div role="article" id="p3"><span>Suggested for you</span><h3><a href="/fresh.page">Fresh Page</a></h3></div>`,
		), root)
		if err != nil {
			t.Fatalf("parse fragment: %v", err)
		}
		doc.Mutate(func() {
			for _, n := range nodes {
				root.AppendChild(n)
			}
		})

		if err := s.Scan(context.Background()); err != nil {
			t.Fatalf("second scan: %v", err)
		}

		snap := stats.Snapshot()
		if snap.Processed != 3 {
			t.Errorf("expected 3 processed, got %d", snap.Processed)
		}
		if !doc.IsHidden(findPost(t, doc, "p3")) {
			t.Error("expected the new suggested post to be hidden")
		}
	})

	t.Run("cancelled context stops before any claim", func(t *testing.T) {
		t.Parallel()

		doc := parseFixture(t, feedFixture)
		settings := config.NewSettings()
		stats := model.NewStats()
		s := NewScanner(doc, settings, stats)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := s.Scan(ctx); err == nil {
			t.Fatal("expected a context error, got nil")
		}
		if snap := stats.Snapshot(); snap.Processed != 0 {
			t.Errorf("expected 0 processed, got %d", snap.Processed)
		}
	})
}

// TestScannerHighlightOnly tests the non-destructive preview mode.
func TestScannerHighlightOnly(t *testing.T) {
	t.Parallel()

	doc := parseFixture(t, feedFixture)
	settings := config.NewSettings()
	settings.HighlightOnly = true
	stats := model.NewStats()
	s := NewScanner(doc, settings, stats)

	if err := s.Scan(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	p1 := findPost(t, doc, "p1")
	if !doc.IsHighlighted(p1) {
		t.Error("expected sponsored post to be highlighted")
	}
	if doc.IsHidden(p1) {
		t.Error("expected highlighted post to stay visible")
	}
	if snap := stats.Snapshot(); snap.Hidden != 0 {
		t.Errorf("expected 0 hidden in highlight mode, got %d", snap.Hidden)
	}
}

// TestScannerAutoUnfollow tests the handoff to the automation engine.
func TestScannerAutoUnfollow(t *testing.T) {
	t.Parallel()

	t.Run("classified posts are handed to the automator", func(t *testing.T) {
		t.Parallel()

		doc := parseFixture(t, feedFixture)
		settings := config.NewSettings()
		settings.AutoUnfollow = true
		stats := model.NewStats()
		fake := &fakeAutomator{outcome: model.OutcomeUnfollowed}
		s := NewScanner(doc, settings, stats, WithAutomator(fake))

		if err := s.Scan(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(fake.runs) != 1 {
			t.Fatalf("expected 1 automation run, got %d", len(fake.runs))
		}
		run := fake.runs[0]
		if run.reason != model.ReasonSponsored {
			t.Errorf("expected ReasonSponsored, got %v", run.reason)
		}
		if run.source == nil || run.source.Name != "Acme Corp" {
			t.Errorf("expected source Acme Corp, got %+v", run.source)
		}
		if doc.IsHidden(findPost(t, doc, "p1")) {
			t.Error("scanner must not hide posts it handed to the automator")
		}
	})

	t.Run("without an automator the post is hidden instead", func(t *testing.T) {
		t.Parallel()

		doc := parseFixture(t, feedFixture)
		settings := config.NewSettings()
		settings.AutoUnfollow = true
		stats := model.NewStats()
		s := NewScanner(doc, settings, stats)

		if err := s.Scan(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !doc.IsHidden(findPost(t, doc, "p1")) {
			t.Error("expected fallback to hiding")
		}
	})
}

// TestScannerAnalyze tests the side-effect-free sweep.
func TestScannerAnalyze(t *testing.T) {
	t.Parallel()

	doc := parseFixture(t, feedFixture)
	settings := config.NewSettings()
	stats := model.NewStats()
	j := journal.New()
	s := NewScanner(doc, settings, stats, WithJournal(j))

	if err := s.Scan(context.Background()); err != nil {
		t.Fatalf("scan: %v", err)
	}

	rows, err := s.Analyze(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	if rows[0].Reason != model.ReasonSponsored {
		t.Errorf("expected ReasonSponsored, got %v", rows[0].Reason)
	}
	if !rows[0].Hidden {
		t.Error("expected the hidden post to be reported hidden")
	}
	if rows[0].Source.Name != "Acme Corp" {
		t.Errorf("expected source Acme Corp, got %q", rows[0].Source.Name)
	}
	if rows[1].Reason != model.ReasonNone || rows[1].Hidden {
		t.Errorf("unexpected second row: %+v", rows[1])
	}

	if snap := stats.Snapshot(); snap.Processed != 2 {
		t.Errorf("analyze must not change counters, processed=%d", snap.Processed)
	}
	if j.Len() != 2 {
		t.Errorf("analyze must not journal, entries=%d", j.Len())
	}
}

// TestScannerVisiblePosts tests visibility filtering and source lookup.
func TestScannerVisiblePosts(t *testing.T) {
	t.Parallel()

	doc := parseFixture(t, feedFixture)
	settings := config.NewSettings()
	s := NewScanner(doc, settings, model.NewStats())

	if err := s.Scan(context.Background()); err != nil {
		t.Fatalf("scan: %v", err)
	}

	visible := s.VisiblePosts()
	if len(visible) != 1 {
		t.Fatalf("expected 1 visible post, got %d", len(visible))
	}
	src := s.SourceOf(visible[0])
	if src == nil || src.Name != "Jane Doe" {
		t.Errorf("expected source Jane Doe, got %+v", src)
	}
}

// TestFingerprint tests snapshot fingerprint stability.
func TestFingerprint(t *testing.T) {
	t.Parallel()

	a := Fingerprint("hello feed")
	if a != Fingerprint("hello feed") {
		t.Error("expected identical input to produce identical fingerprints")
	}
	if a == Fingerprint("other text") {
		t.Error("expected different input to produce different fingerprints")
	}
	if len(a) != 16 {
		t.Errorf("expected 16 hex chars, got %d", len(a))
	}
}
