package model

import (
	"time"
	"unicode/utf8"
)

// MaxExcerptLen is the maximum length in bytes of a post excerpt carried in
// log entries and analysis rows. Feed posts can hold kilobytes of text;
// excerpts exist for humans scanning a journal, not for re-classification.
const MaxExcerptLen = 160

// LogEntry is one classification event in the session journal. An entry is
// recorded for every processed post when logging is enabled, including posts
// classified ReasonNone, so the journal doubles as a diagnostics trail for
// extraction misses.
type LogEntry struct {
	// Timestamp is when the post was classified.
	Timestamp time.Time `json:"timestamp"`

	// Reason is the classification result.
	Reason Reason `json:"reason"`

	// ActorName is the extracted source name, empty when extraction failed.
	ActorName string `json:"actor_name,omitempty"`

	// ActorLink is the extracted canonical source link.
	ActorLink string `json:"actor_link,omitempty"`

	// IsFriend mirrors the source's friend heuristic at classification time.
	IsFriend bool `json:"is_friend,omitempty"`

	// Excerpt is the leading slice of the post's text snapshot.
	Excerpt string `json:"excerpt,omitempty"`
}

// AnalysisRow is one row of a side-effect-free feed analysis. Rows are the
// input to batch collection: the queue rebuilds its pending list from a
// snapshot of rows.
type AnalysisRow struct {
	// PostID is the content fingerprint of the analyzed post.
	PostID string `json:"post_id"`

	// Reason is the classification the post would receive.
	Reason Reason `json:"reason"`

	// Source is the extracted source; zero-valued when extraction failed.
	Source Source `json:"source"`

	// Excerpt is the leading slice of the post's text snapshot.
	Excerpt string `json:"excerpt,omitempty"`

	// Hidden reports whether the post is currently visually hidden.
	Hidden bool `json:"hidden"`
}

// Excerpt truncates a snapshot to at most MaxExcerptLen bytes without
// splitting a UTF-8 sequence.
func Excerpt(snapshot string) string {
	if len(snapshot) <= MaxExcerptLen {
		return snapshot
	}
	cut := MaxExcerptLen
	for cut > 0 && !utf8.RuneStart(snapshot[cut]) {
		cut--
	}
	return snapshot[:cut]
}
