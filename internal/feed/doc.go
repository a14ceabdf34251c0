// Package feed discovers posts in the live document and runs the
// classification pipeline over them.
//
// # Scan pipeline
//
// A scan walks feed containers in document order and their posts in
// document order. Each new post is claimed, snapshotted, classified,
// extracted, journaled, and counted; posts that match a rule are hidden
// (or highlighted) or handed to the automation engine when auto-unfollow
// is enabled. Posts that match nothing are left alone but still counted
// and journaled, so extraction misses stay visible in diagnostics.
//
// # Idempotence
//
// A post is claimed with a single check-and-set marker before any other
// work happens. A re-entrant scan triggered mid-pass, or overlapping
// passes in watch mode, therefore cannot double-handle a post.
//
// # Analysis
//
// Analyze is the side-effect-free twin of Scan: it visits every post,
// including already-processed ones, and reports what classification and
// extraction would decide, without claiming, hiding, journaling, or
// counting anything. Batch collection is built on those rows.
package feed
