package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Node is a single node in a parsed document tree.
//
// Node helpers do not synchronize. Callers either own the tree
// exclusively or hold the owning Document's read lock (Document.View)
// while traversing.
type Node html.Node

// raw returns the underlying parser node.
func (n *Node) raw() *html.Node { return (*html.Node)(n) }

// wrap converts a parser node back into a Node. wrap(nil) is nil.
func wrap(n *html.Node) *Node { return (*Node)(n) }

// ParentNode returns the parent node, or nil at the tree root.
func (n *Node) ParentNode() *Node {
	if n == nil {
		return nil
	}
	return wrap(n.raw().Parent)
}

// IsElement reports whether the node is an element node.
func (n *Node) IsElement() bool { return n != nil && n.Type == html.ElementNode }

// Tag returns the lower-cased element name, or "" for non-element nodes.
func (n *Node) Tag() string {
	if !n.IsElement() {
		return ""
	}
	return strings.ToLower(n.Data)
}

// AttrValue returns the value of the named attribute, or "" when
// absent.
func (n *Node) AttrValue(key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present, even with an
// empty value.
func (n *Node) HasAttr(key string) bool {
	if n == nil {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

// Role returns the ARIA role attribute.
func (n *Node) Role() string { return n.AttrValue("role") }

// AriaLabel returns the accessibility label attribute.
func (n *Node) AriaLabel() string { return n.AttrValue("aria-label") }

// setAttr writes an attribute in place, replacing any existing value.
// Mutation helpers stay unexported: attribute writes go through the
// Document so they happen under its write lock.
func (n *Node) setAttr(key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// AppendChild attaches c as the last child of n. Structural edits must
// run inside Document.Mutate.
func (n *Node) AppendChild(c *Node) {
	n.raw().AppendChild(c.raw())
}

// Detach removes n from its parent. Structural edits must run inside
// Document.Mutate.
func (n *Node) Detach() {
	if p := n.raw().Parent; p != nil {
		p.RemoveChild(n.raw())
	}
}

// Children returns the direct children of n in order. The slice is a
// snapshot, so callers may detach or re-parent the nodes while ranging
// over it.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	var children []*Node
	for c := n.raw().FirstChild; c != nil; c = c.NextSibling {
		children = append(children, wrap(c))
	}
	return children
}

// Each walks the subtree rooted at n in document order, n itself
// included. The walk stops early when fn returns false.
func (n *Node) Each(fn func(*Node) bool) {
	if n == nil {
		return
	}
	n.each(fn)
}

func (n *Node) each(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.raw().FirstChild; c != nil; c = c.NextSibling {
		if !wrap(c).each(fn) {
			return false
		}
	}
	return true
}

// Find returns the first node in document order, starting at n itself,
// that satisfies pred, or nil when nothing matches.
func (n *Node) Find(pred Predicate) *Node {
	var found *Node
	n.Each(func(c *Node) bool {
		if pred(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node in document order, starting at n itself,
// that satisfies pred.
func (n *Node) FindAll(pred Predicate) []*Node {
	var matches []*Node
	n.Each(func(c *Node) bool {
		if pred(c) {
			matches = append(matches, c)
		}
		return true
	})
	return matches
}

// Closest returns the nearest node satisfying pred, starting at n
// itself and walking up through its ancestors, or nil when nothing
// matches.
func (n *Node) Closest(pred Predicate) *Node {
	for cur := n; cur != nil; cur = cur.ParentNode() {
		if pred(cur) {
			return cur
		}
	}
	return nil
}

// VisibleText returns the text a user would see inside the subtree,
// with whitespace runs collapsed to single spaces. Script, style,
// template, and noscript content is skipped, as are descendants hidden
// from view (aria-hidden, display:none, visibility:hidden).
//
// Visibility filtering applies to descendants only: asking for the
// visible text of a node that is itself hidden answers what it would
// show, which is what analysis of already-suppressed posts needs.
func (n *Node) VisibleText() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteString(" ")
	}
	for c := n.raw().FirstChild; c != nil; c = c.NextSibling {
		wrap(c).visibleText(&b)
	}
	return collapseSpace(b.String())
}

func (n *Node) visibleText(b *strings.Builder) {
	if n.hiddenFromView() {
		return
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteString(" ")
	}
	for c := n.raw().FirstChild; c != nil; c = c.NextSibling {
		wrap(c).visibleText(b)
	}
}

// hiddenFromView reports whether the subtree under n contributes
// nothing to what a user sees.
func (n *Node) hiddenFromView() bool {
	if !n.IsElement() {
		return false
	}
	switch n.Tag() {
	case "script", "style", "noscript", "template":
		return true
	}
	if n.AttrValue("aria-hidden") == "true" {
		return true
	}
	style := strings.ReplaceAll(n.AttrValue("style"), " ", "")
	return strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden")
}

// collapseSpace collapses whitespace runs to single spaces and trims
// the ends.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
