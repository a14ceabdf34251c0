// Package notify delivers user-facing notifications from the pipeline:
// protection events, queue events, and automation outcomes. The core
// calls a Notifier inline, so implementations must never block.
package notify
