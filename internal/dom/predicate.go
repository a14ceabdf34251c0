package dom

import "strings"

// Predicate decides whether a node matches a query. Predicates are pure
// functions, which keeps matcher lists trivial to reorder and test.
type Predicate func(*Node) bool

// ByTag matches element nodes with the given name.
func ByTag(name string) Predicate {
	return func(n *Node) bool { return n.Tag() == name }
}

// ByRole matches element nodes carrying the given ARIA role.
func ByRole(role string) Predicate {
	return func(n *Node) bool { return n.IsElement() && n.Role() == role }
}

// ByAttr matches element nodes whose attribute equals val exactly.
func ByAttr(key, val string) Predicate {
	return func(n *Node) bool { return n.IsElement() && n.AttrValue(key) == val }
}

// ByAttrPrefix matches element nodes whose non-empty attribute starts
// with prefix.
func ByAttrPrefix(key, prefix string) Predicate {
	return func(n *Node) bool {
		if !n.IsElement() {
			return false
		}
		v := n.AttrValue(key)
		return v != "" && strings.HasPrefix(v, prefix)
	}
}

// ByAttrContains matches element nodes whose non-empty attribute
// contains substr.
func ByAttrContains(key, substr string) Predicate {
	return func(n *Node) bool {
		if !n.IsElement() {
			return false
		}
		v := n.AttrValue(key)
		return v != "" && strings.Contains(v, substr)
	}
}

// HasAttribute matches element nodes that carry the attribute at all.
func HasAttribute(key string) Predicate {
	return func(n *Node) bool { return n.IsElement() && n.HasAttr(key) }
}

// Any matches nodes satisfying at least one of the given predicates.
func Any(preds ...Predicate) Predicate {
	return func(n *Node) bool {
		for _, p := range preds {
			if p(n) {
				return true
			}
		}
		return false
	}
}

// All matches nodes satisfying every one of the given predicates.
func All(preds ...Predicate) Predicate {
	return func(n *Node) bool {
		for _, p := range preds {
			if !p(n) {
				return false
			}
		}
		return true
	}
}
