package model

// Reason identifies why a post was classified as unwanted.
// Exactly one reason applies per post: the classifier evaluates its checks in
// a fixed priority order and stops at the first match, so a post that is both
// sponsored and keyword-matching is always reported as sponsored.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and switch statements. The String() method
// provides human-readable output when needed.
type Reason int

const (
	// ReasonNone indicates the post matched no rule and is left alone.
	ReasonNone Reason = iota

	// ReasonSponsored indicates the post carries a sponsored indicator,
	// either a textual label or a structural ad link in its subtree.
	// Sponsored has the highest classification priority.
	ReasonSponsored

	// ReasonSuggested indicates the post carries a suggested-content label
	// ("Suggested for you" and similar feed recommendations).
	ReasonSuggested

	// ReasonKeyword indicates the post's text snapshot contains one of the
	// user-configured keywords. Keyword has the lowest classification priority.
	ReasonKeyword
)

// String returns a human-readable representation of the classification reason.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonSponsored:
		return "sponsored"
	case ReasonSuggested:
		return "suggested"
	case ReasonKeyword:
		return "keyword"
	default:
		return "unknown"
	}
}

// Unwanted reports whether the reason marks a post for hiding or automation.
func (r Reason) Unwanted() bool {
	return r != ReasonNone
}

// MarshalText implements encoding.TextMarshaler so reasons serialize as their
// names in JSON and YAML rather than as opaque integers.
func (r Reason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names map to
// ReasonNone rather than failing, because rows from older exports should
// remain loadable.
func (r *Reason) UnmarshalText(text []byte) error {
	switch string(text) {
	case "sponsored":
		*r = ReasonSponsored
	case "suggested":
		*r = ReasonSuggested
	case "keyword":
		*r = ReasonKeyword
	default:
		*r = ReasonNone
	}
	return nil
}
