package extract

import (
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/dom"
)

// Matcher tries to locate the anchor element that names a post's
// source. Matchers are pure functions over the post subtree; each
// returns nil when its structural shape is absent.
type Matcher struct {
	// Name identifies the matcher in logs and tests.
	Name string

	// Find returns the candidate anchor inside the post, or nil.
	Find func(post *dom.Node) *dom.Node
}

// headingTags are the containers whose anchors carry the author name in
// feed markup. strong is included because some renders bold the name
// without a heading element.
var headingTags = map[string]bool{
	"h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true,
	"strong": true,
}

// usableAnchor matches anchor-like elements whose href canonicalizes to
// a non-empty source identity.
func usableAnchor(n *dom.Node) bool {
	if !n.IsElement() {
		return false
	}
	if n.Tag() != "a" && n.Role() != "link" {
		return false
	}
	return CanonicalLink(n.AttrValue("href")) != ""
}

// insideHeading matches nodes nested under a heading or strong element.
func insideHeading(n *dom.Node) bool {
	return n.Closest(func(p *dom.Node) bool { return headingTags[p.Tag()] }) != nil
}

// ariaLabelled matches elements carrying a non-empty accessibility
// label.
func ariaLabelled(n *dom.Node) bool {
	return n.AriaLabel() != ""
}

// profileShaped matches anchors whose canonical link classifies as a
// known entity kind rather than an arbitrary path.
func profileShaped(n *dom.Node) bool {
	link := CanonicalLink(n.AttrValue("href"))
	return link != "" && ClassifyLink(link) != LinkUnknown
}

// DefaultMatchers returns the standard matcher list, most reliable
// first:
//
//  1. An anchor inside a heading or strong element. Author names live
//     in the post header, so this is the strongest signal.
//  2. An anchor with an accessibility label. Labels survive markup
//     shuffles better than visual structure.
//  3. A role=link element with an entity-shaped href.
//  4. Any anchor with a usable href, as the last resort.
func DefaultMatchers() []Matcher {
	return []Matcher{
		{
			Name: "heading-anchor",
			Find: func(post *dom.Node) *dom.Node {
				return post.Find(dom.All(usableAnchor, insideHeading))
			},
		},
		{
			Name: "labelled-anchor",
			Find: func(post *dom.Node) *dom.Node {
				return post.Find(dom.All(usableAnchor, ariaLabelled))
			},
		},
		{
			Name: "entity-link",
			Find: func(post *dom.Node) *dom.Node {
				return post.Find(dom.All(dom.ByRole("link"), profileShaped))
			},
		},
		{
			Name: "any-anchor",
			Find: func(post *dom.Node) *dom.Node {
				return post.Find(usableAnchor)
			},
		},
	}
}
