// Package dom wraps a parsed HTML tree with the operations the feed
// pipeline needs: document-order queries, visible-text extraction,
// write-once processing markers, visual annotations, and synthetic
// activation with pluggable handlers.
//
// # Architecture
//
// The package is built around two types:
//
//   - Document: owns the tree, a single RWMutex, activation handlers,
//     and change subscribers. Every mutation goes through a Document
//     method so it happens under the write lock.
//   - Node: a thin, lock-free view over one tree node with navigation,
//     attribute, and text helpers. Callers traverse nodes while holding
//     the document still, either via Document.View or because they own
//     the tree exclusively (tests, one-shot commands).
//
// Design decision: We use golang.org/x/net/html for parsing rather than
// regex or a CSS selector engine because:
//  1. It correctly handles the malformed HTML real feed pages serve
//  2. Provides a proper DOM-like structure with stable node identity
//  3. Predicate functions over nodes are easier to unit test than
//     selector strings
//
// # Concurrency
//
// Scans, automation steps, and external mutations overlap in watch
// mode. The rules are:
//
//   - Reads take the read lock (View, Find, FindAll, IsHidden, ...)
//   - Writes take the write lock (Mutate, MarkOnce, Hide, ...)
//   - Activation handlers and change notifications run or fire outside
//     any critical section, so a handler may call Mutate and a
//     subscriber may immediately query the document
//   - No lock is ever held across a settle delay
//
// # Annotations
//
// The pipeline never removes nodes. It annotates them with data-fcp-*
// attributes and inline style, which keeps the page's own structure
// intact and leaves an audit trail in rendered output.
package dom
