// Package history persists executed automation outcomes across sessions.
//
// The store is a single SQLite database holding one row per automation
// attempt: who was acted on, why, whether it succeeded, and the failure
// signal when it did not. The history is an audit log for the user to
// review with the history command; it is never consulted by the
// pipeline, and in particular session deduplication stays in-memory and
// resets with the process.
package history
