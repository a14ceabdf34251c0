// Package journal keeps a bounded in-memory record of classification
// events for the current session. Every processed post gets an entry
// when logging is enabled, including posts that matched nothing, so the
// journal doubles as a diagnostic trace of what the rules saw.
package journal
