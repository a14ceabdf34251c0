// Package queue holds the session's automation targets and replays them.
//
// The Store keeps two lists: pending targets, built by dry-run guards or
// by collecting analysis rows, and executed records, the trail of every
// automation attempt including refusals. The Runner executes the pending
// queue against the live feed.
//
// # Matching
//
// Batch execution matches a pending target to a post by display name,
// not by link: between collection and execution the feed re-renders and
// node handles go stale, so the name is the only key that survives. A
// target whose name matches no visible post is recorded as a failure
// without touching the page.
package queue
