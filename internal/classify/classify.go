package classify

import (
	"strings"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/config"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/dom"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/model"
)

// sponsoredLabels are the badge texts the feed uses to disclose paid
// placement.
var sponsoredLabels = []string{
	"Sponsored",
	"Paid partnership",
}

// suggestedLabels mark algorithmic recommendations from accounts the
// user never followed.
var suggestedLabels = []string{
	"Suggested for you",
	"Suggested post",
	"Recommended post",
	"People you may know",
	"Reels and short videos",
}

// adLinkMarker appears in the href of anchors leading to the ad
// preferences surface ("Why am I seeing this ad?"). It is a structural
// sponsored indicator that survives badge-text obfuscation.
const adLinkMarker = "/ads/"

// Classifier decides why a post should be hidden, if at all.
//
// Design decision: checks run in a fixed priority order because:
//  1. Exactly one reason is recorded per post, so ties must break deterministically
//  2. The sponsored disclosure is the strongest signal and the cheapest to verify
//  3. A post that is both sponsored and keyword-matching reads better in
//     reports as sponsored than as an accident of keyword choice
type Classifier struct {
	// settings is read on every call, so runtime changes take effect
	// on the next scan without rebuilding the classifier.
	settings *config.Settings
}

// NewClassifier creates a Classifier bound to the given settings.
func NewClassifier(settings *config.Settings) *Classifier {
	return &Classifier{settings: settings}
}

// Classify inspects a post subtree and its text snapshot and returns
// the first matching reason. ReasonNone means the post is left alone.
func (c *Classifier) Classify(post *dom.Node, snapshot string) model.Reason {
	if c.settings.HideSponsored && c.sponsored(post) {
		return model.ReasonSponsored
	}
	if c.settings.HideSuggested && c.suggested(post) {
		return model.ReasonSuggested
	}
	if c.keyword(snapshot) {
		return model.ReasonKeyword
	}
	return model.ReasonNone
}

// sponsored reports whether the post carries a paid-placement
// disclosure, either as badge text or as an ad-preferences link.
func (c *Classifier) sponsored(post *dom.Node) bool {
	if hasLabel(post, sponsoredLabels) {
		return true
	}
	return post.Find(adLink) != nil
}

// suggested reports whether the post carries a recommendation label.
func (c *Classifier) suggested(post *dom.Node) bool {
	return hasLabel(post, suggestedLabels)
}

// keyword reports whether the snapshot contains any configured keyword.
// Matching is a case-insensitive substring test. Blank keywords are
// skipped: an empty needle is a substring of everything and would hide
// the whole feed.
func (c *Classifier) keyword(snapshot string) bool {
	if len(c.settings.Keywords) == 0 {
		return false
	}
	haystack := strings.ToLower(snapshot)
	for _, kw := range c.settings.Keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(haystack, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// adLink matches anchors pointing into the ad preferences surface.
func adLink(n *dom.Node) bool {
	return n.Tag() == "a" && strings.Contains(n.AttrValue("href"), adLinkMarker)
}

// hasLabel reports whether any element in the subtree shows one of the
// given labels, as visible text or as an accessibility label.
func hasLabel(post *dom.Node, labels []string) bool {
	found := false
	post.Each(func(n *dom.Node) bool {
		if !n.IsElement() {
			return true
		}
		text := n.VisibleText()
		aria := n.AriaLabel()
		if text == "" && aria == "" {
			return true
		}
		for _, label := range labels {
			if labelEquals(text, label) || labelEquals(aria, label) {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

// labelEquals compares a rendered text against a label with all inner
// whitespace removed from both sides, case-insensitively. Collapsed
// per-letter renderings such as "S p o n s o r e d" compare equal to
// the plain label.
func labelEquals(text, label string) bool {
	if text == "" {
		return false
	}
	return strings.EqualFold(stripSpace(text), stripSpace(label))
}

// stripSpace removes every whitespace rune from s.
func stripSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', ' ':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
