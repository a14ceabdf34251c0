package model

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Source describes the entity that authored or delivered a post: a person,
// a page, or a group. Sources are derived per post by heuristic extraction
// and are not persisted as entities.
//
// Two sources are considered the same source under two different keys:
// the canonical Link is the session-dedupe identity, while the display Name
// is the batch-matching key. The asymmetry mirrors the overall design and is
// intentional; see DESIGN.md.
type Source struct {
	// Name is the display name, whitespace-collapsed and NFC-normalized.
	Name string `json:"name"`

	// Link is the canonical profile/page/group URL. It is the unique
	// identity key for session deduplication. Empty Link means the
	// extraction produced no usable identity.
	Link string `json:"link"`

	// IsGroup is true when the link shape identifies a group.
	IsGroup bool `json:"is_group"`

	// IsPage is true when the link shape identifies a page.
	IsPage bool `json:"is_page"`

	// IsFriend is true when the source looks person-like and the post text
	// contains a relationship hint. Friend detection is heuristic and errs
	// toward false negatives; it only gates automation, never hiding.
	IsFriend bool `json:"is_friend"`
}

// Usable reports whether the source carries enough identity to automate
// against: both a name and a link are required.
func (s *Source) Usable() bool {
	return s != nil && s.Name != "" && s.Link != ""
}

// PersonLike reports whether the source is neither a group nor a page.
func (s *Source) PersonLike() bool {
	return s != nil && !s.IsGroup && !s.IsPage
}

// NormalizeName collapses internal whitespace and applies NFC normalization.
// Display names on feed pages frequently mix composed and decomposed
// codepoints; without normalization, batch matching by name misses
// visually identical sources.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.Join(strings.Fields(name), " "))
}

// SameName reports whether two display names refer to the same source under
// the batch-matching rule: exact equality after normalization.
func SameName(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}

// ContainsName reports whether the list holds the display name under
// SameName matching. Used for whitelist checks, where entries are typed by
// users and must not be defeated by spacing or encoding differences.
func ContainsName(list []string, name string) bool {
	for _, entry := range list {
		if SameName(entry, name) {
			return true
		}
	}
	return false
}
