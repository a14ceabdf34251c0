package unfollow

import (
	"strings"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/dom"
)

// menuTriggerMatchers locate a post's action-menu trigger, most specific
// first. The ordering matters: the aria label is exact when present,
// while the haspopup and "More" fallbacks also match share and comment
// affordances on some renderings.
var menuTriggerMatchers = []dom.Predicate{
	dom.ByAttr("aria-label", "Actions for this post"),
	dom.All(dom.ByRole("button"), dom.ByAttr("aria-haspopup", "menu")),
	dom.All(dom.ByRole("button"), dom.ByAttrContains("aria-label", "More")),
}

// menuItemPred matches rendered menu entries.
var menuItemPred = dom.ByRole("menuitem")

// dialogPred matches confirmation dialogs.
var dialogPred = dom.ByRole("dialog")

// actionablePred matches elements a user can activate inside a dialog.
var actionablePred = dom.Any(
	dom.ByTag("button"),
	dom.ByRole("button"),
)

// closeLabelPred matches explicit dialog close controls.
var closeLabelPred = dom.Any(
	dom.ByAttr("aria-label", "Close"),
	dom.ByAttr("aria-label", "close"),
)

// unfollowPhrases identify the menu action, lowercase. Substring
// matching keeps them robust against the source name being appended to
// the item text ("Unfollow Acme Corp").
var unfollowPhrases = []string{
	"unfollow",
	"stop following",
	"hide all from",
}

// confirmPhrases identify the dialog's confirmation control, lowercase.
var confirmPhrases = []string{
	"unfollow",
	"confirm",
	"ok",
}

// cancelPhrases identify dialog dismissal controls used during failure
// cleanup, lowercase.
var cancelPhrases = []string{
	"cancel",
	"close",
}

// findMenuTrigger returns the post's menu trigger, or nil. Callers must
// hold a document read view.
func findMenuTrigger(post *dom.Node) *dom.Node {
	for _, pred := range menuTriggerMatchers {
		if n := post.Find(pred); n != nil {
			return n
		}
	}
	return nil
}

// matchesPhrase reports whether the node's visible text or accessibility
// label contains any of the phrases. Phrases must be lowercase.
func matchesPhrase(n *dom.Node, phrases []string) bool {
	text := strings.ToLower(n.VisibleText())
	label := strings.ToLower(n.AriaLabel())
	for _, p := range phrases {
		if strings.Contains(text, p) || strings.Contains(label, p) {
			return true
		}
	}
	return false
}

// findCloseControl returns a dismissal control inside the dialog, or
// nil. Callers must hold a document read view.
func findCloseControl(dialog *dom.Node) *dom.Node {
	if n := dialog.Find(closeLabelPred); n != nil {
		return n
	}
	for _, b := range dialog.FindAll(actionablePred) {
		if matchesPhrase(b, cancelPhrases) {
			return b
		}
	}
	return nil
}
