package extract

import (
	"log/slog"
	"strings"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/dom"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/model"
)

// relationshipHints are phrases whose presence in a post's text marks
// the source as a likely personal contact. Matching is case-insensitive
// substring. The set errs toward false negatives: friend detection only
// gates automation, and a missed hint still leaves the post merely
// hidden.
var relationshipHints = []string{
	"mutual friend",
	"close friend",
	"friends with",
	"your friend",
	"friends since",
	"added you as a friend",
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMatchers replaces the default matcher list. The order is the
// priority order.
func WithMatchers(matchers []Matcher) Option {
	return func(e *Extractor) {
		if len(matchers) > 0 {
			e.matchers = matchers
		}
	}
}

// WithLogger sets the logger for extraction diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// Extractor derives a source descriptor from a post subtree by trying
// an ordered list of structural matchers.
//
// Design decision: The extractor is polymorphic over its matcher list
// rather than hard-coding the lookup because:
//  1. Feed markup changes force matcher updates; the list localizes them
//  2. Matchers can be tested and reordered independently
//  3. Tests can inject a single matcher to isolate behavior
type Extractor struct {
	matchers []Matcher
	logger   *slog.Logger
}

// NewExtractor creates an Extractor with the default matcher list
// unless options say otherwise.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		matchers: DefaultMatchers(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the source behind a post, or nil when no matcher
// yields a usable link. The snapshot is the post's visible text, used
// for relationship-hint detection.
//
// Callers must treat nil as "unknown source", never as a fault.
func (e *Extractor) Extract(post *dom.Node, snapshot string) *model.Source {
	for _, m := range e.matchers {
		anchor := m.Find(post)
		if anchor == nil {
			continue
		}
		link := CanonicalLink(anchor.AttrValue("href"))
		if link == "" {
			continue
		}

		shape := ClassifyLink(link)
		src := &model.Source{
			Name:    anchorName(anchor),
			Link:    link,
			IsGroup: shape == LinkGroup,
			IsPage:  shape == LinkPage,
		}
		src.IsFriend = shape == LinkPerson && containsRelationshipHint(snapshot)

		e.logger.Debug("source extracted",
			"matcher", m.Name,
			"name", src.Name,
			"link", src.Link,
			"shape", shape.String(),
			"friend", src.IsFriend,
		)
		return src
	}
	return nil
}

// anchorName resolves the display name of a source anchor: visible text
// first, accessibility label as the fallback.
func anchorName(anchor *dom.Node) string {
	if name := model.NormalizeName(anchor.VisibleText()); name != "" {
		return name
	}
	return model.NormalizeName(anchor.AriaLabel())
}

// containsRelationshipHint reports whether the post text carries any
// relationship-hint phrase.
func containsRelationshipHint(snapshot string) bool {
	lower := strings.ToLower(snapshot)
	for _, hint := range relationshipHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}
