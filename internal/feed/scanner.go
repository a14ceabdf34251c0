package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/classify"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/config"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/dom"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/extract"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/journal"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/model"
)

// feedRootPred matches the containers that hold feed posts.
var feedRootPred = dom.ByRole("feed")

// postPred matches one feed post. Posts appear either as articles or as
// pagelet units, depending on which rendering the page served.
var postPred = dom.Any(
	dom.ByRole("article"),
	dom.ByAttrPrefix("data-pagelet", "FeedUnit"),
)

// Option configures a Scanner.
type Option func(*Scanner)

// WithAutomator registers the unfollow engine invoked for classified
// posts when auto-unfollow is enabled. Without one, classified posts are
// hidden regardless of the auto-unfollow setting.
func WithAutomator(a Automator) Option {
	return func(s *Scanner) {
		s.automator = a
	}
}

// WithJournal registers the session journal. Without one, outcomes are
// not journaled even when logging is enabled.
func WithJournal(j *journal.Journal) Option {
	return func(s *Scanner) {
		s.journal = j
	}
}

// WithLogger sets the logger used for per-post diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// Scanner walks the document's feed containers and classifies their
// posts. One Scanner serves one Document for the life of a session.
type Scanner struct {
	doc      *dom.Document
	settings *config.Settings
	stats    *model.Stats

	classifier *classify.Classifier
	extractor  *extract.Extractor
	journal    *journal.Journal
	automator  Automator
	logger     *slog.Logger
}

// NewScanner creates a Scanner over the given document.
func NewScanner(doc *dom.Document, settings *config.Settings, stats *model.Stats, opts ...Option) *Scanner {
	if stats == nil {
		stats = model.NewStats()
	}
	s := &Scanner{
		doc:        doc,
		settings:   settings,
		stats:      stats,
		classifier: classify.NewClassifier(settings),
		extractor:  extract.NewExtractor(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats returns the counter set the scanner increments.
func (s *Scanner) Stats() *model.Stats {
	return s.stats
}

// Scan runs one classification pass over every unclaimed post, in
// document order. Claimed posts are skipped, so repeated calls only do
// work for content that appeared since the last pass.
func (s *Scanner) Scan(ctx context.Context) error {
	posts := s.posts()
	claimed := 0

	for _, node := range posts {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !s.doc.MarkOnce(node, attrProcessed, "1") {
			continue
		}
		claimed++

		var (
			post   *Post
			reason model.Reason
			src    *model.Source
		)
		s.doc.View(func() {
			post = newPost(node)
			reason = s.classifier.Classify(node, post.Snapshot)
			src = s.extractor.Extract(node, post.Snapshot)
		})

		s.record(reason, src, post.Snapshot)
		s.stats.AddProcessed()

		if reason == model.ReasonNone {
			continue
		}

		if s.settings.AutoUnfollow && s.automator != nil {
			outcome := s.automator.Run(ctx, post, reason, src)
			s.logger.Debug("automation finished",
				"post", post.ID,
				"reason", reason.String(),
				"outcome", outcome.String())
			continue
		}

		s.suppress(node, reason)
	}

	s.logger.Debug("scan pass complete", "posts", len(posts), "claimed", claimed)
	return nil
}

// Analyze reports what a scan would decide for every post, including
// posts already claimed by earlier passes. It has no side effects: no
// claims, no hiding, no journal entries, no counter changes.
func (s *Scanner) Analyze(ctx context.Context) ([]model.AnalysisRow, error) {
	posts := s.posts()
	rows := make([]model.AnalysisRow, 0, len(posts))

	for _, node := range posts {
		select {
		case <-ctx.Done():
			return rows, ctx.Err()
		default:
		}

		var row model.AnalysisRow
		s.doc.View(func() {
			snapshot := node.VisibleText()
			row = model.AnalysisRow{
				PostID:  Fingerprint(snapshot),
				Reason:  s.classifier.Classify(node, snapshot),
				Excerpt: model.Excerpt(snapshot),
				Hidden:  node.HasAttr(dom.AttrHidden),
			}
			if src := s.extractor.Extract(node, snapshot); src != nil {
				row.Source = *src
			}
		})
		rows = append(rows, row)
	}

	return rows, nil
}

// VisiblePosts returns the posts not currently hidden, in document
// order. Batch execution matches its targets against this set.
func (s *Scanner) VisiblePosts() []*dom.Node {
	var visible []*dom.Node
	for _, node := range s.posts() {
		if !s.doc.IsHidden(node) {
			visible = append(visible, node)
		}
	}
	return visible
}

// SourceOf extracts the source of a single post, or nil when no matcher
// yields a link.
func (s *Scanner) SourceOf(n *dom.Node) *model.Source {
	var src *model.Source
	s.doc.View(func() {
		src = s.extractor.Extract(n, n.VisibleText())
	})
	return src
}

// posts collects every post in document order: feed containers first,
// then posts within each container. When the page has no feed container
// the whole body is treated as one, so permalink pages still scan.
func (s *Scanner) posts() []*dom.Node {
	var posts []*dom.Node
	seen := make(map[*dom.Node]bool)

	s.doc.View(func() {
		roots := s.doc.Root().FindAll(feedRootPred)
		if len(roots) == 0 {
			if body := s.doc.Root().Find(dom.ByTag("body")); body != nil {
				roots = []*dom.Node{body}
			}
		}
		for _, root := range roots {
			for _, p := range root.FindAll(postPred) {
				if !seen[p] {
					seen[p] = true
					posts = append(posts, p)
				}
			}
		}
	})

	return posts
}

// suppress hides or highlights a classified post and counts it.
func (s *Scanner) suppress(node *dom.Node, reason model.Reason) {
	if s.settings.HighlightOnly {
		s.doc.Highlight(node, reason.String())
		return
	}
	s.doc.Hide(node, reason.String())
	s.stats.AddHidden()
}

// record journals one classification outcome when logging is enabled.
// ReasonNone outcomes are journaled too: a long run of entries with no
// actor is how extraction misses get noticed.
func (s *Scanner) record(reason model.Reason, src *model.Source, snapshot string) {
	if !s.settings.Logging || s.journal == nil {
		return
	}
	entry := model.LogEntry{
		Timestamp: time.Now(),
		Reason:    reason,
		Excerpt:   model.Excerpt(snapshot),
	}
	if src != nil {
		entry.ActorName = src.Name
		entry.ActorLink = src.Link
		entry.IsFriend = src.IsFriend
	}
	s.journal.Append(entry)
}
