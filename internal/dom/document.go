package dom

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/net/html"
)

// Annotation attributes written by the pipeline. Namespacing every
// marker under data-fcp- keeps it clear of the page's own attributes
// and makes cleanup greppable.
const (
	// AttrHidden marks a post that has been visually suppressed.
	AttrHidden = "data-fcp-hidden"

	// AttrReason carries the human-readable reason a post was acted on.
	AttrReason = "data-fcp-reason"

	// AttrHighlight marks a post kept visible but outlined for review.
	AttrHighlight = "data-fcp-highlight"

	// AttrActivated counts synthetic activations delivered to a node.
	AttrActivated = "data-fcp-activated"
)

const (
	// hiddenStyle suppresses a post without detaching it from the tree.
	hiddenStyle = "display: none !important"

	// highlightStyle outlines a post under review without hiding it.
	highlightStyle = "outline: 3px dashed #e7a33e; outline-offset: -3px"
)

// ActivationHandler reacts to a synthetic activation of a node,
// typically by mutating the tree the way the live page would: rendering
// a menu, opening a dialog. Handlers run outside the document lock, so
// they are free to call Mutate.
type ActivationHandler func(n *Node)

// activation pairs a handler with its registration id so handlers run
// in registration order and can be removed individually.
type activation struct {
	id int
	fn ActivationHandler
}

// Document is a parsed HTML tree shared between the scan loop and
// external mutators.
//
// Design decision: We guard the tree with a single RWMutex rather than
// making callers coordinate because:
//  1. Scans and external mutations genuinely overlap in watch mode
//  2. Write-once markers need an atomic check-and-set, which the write
//     lock provides
//  3. One lock makes it easy to verify that no settle delay is ever
//     spent inside a critical section
type Document struct {
	mu          sync.RWMutex
	root        *Node
	handlers    []activation
	nextHandler int
	subs        map[int]chan struct{}
	nextSub     int
}

// Parse reads an HTML document into a Document. The parser accepts the
// malformed markup real pages serve; it fails only on reader errors.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &Document{
		root: wrap(root),
		subs: make(map[int]chan struct{}),
	}, nil
}

// ParseFragment parses an HTML fragment as it would appear inside the
// given context element. The caller attaches the returned nodes to the
// tree inside a Mutate call.
func ParseFragment(r io.Reader, context *Node) ([]*Node, error) {
	nodes, err := html.ParseFragment(r, context.raw())
	if err != nil {
		return nil, fmt.Errorf("parse fragment: %w", err)
	}
	wrapped := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		wrapped = append(wrapped, wrap(n))
	}
	return wrapped, nil
}

// Root returns the document root node. The root never changes for the
// lifetime of the Document.
func (d *Document) Root() *Node { return d.root }

// Render serializes the current tree. The output reflects every
// annotation written so far, which makes it suitable for snapshot
// assertions and for writing cleaned documents back out.
func (d *Document) Render(w io.Writer) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return html.Render(w, d.root.raw())
}

// View runs fn under the read lock. Use it to keep a multi-step read
// (walk, snapshot, extract, classify) consistent against concurrent
// mutation.
func (d *Document) View(fn func()) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	fn()
}

// Mutate runs fn under the write lock and then signals subscribers. It
// is the entry point for external structural change: new posts
// arriving, menus rendering, dialogs opening.
func (d *Document) Mutate(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn()
	d.notifyLocked()
}

// notifyLocked delivers a change signal to every subscriber without
// blocking. A subscriber that has not drained its previous signal
// simply coalesces the two.
func (d *Document) notifyLocked() {
	for _, ch := range d.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribe registers a change listener. The returned channel receives
// a coalesced signal after every Mutate call. Callers release the
// listener by passing the returned id to Unsubscribe.
func (d *Document) Subscribe() (int, <-chan struct{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextSub++
	ch := make(chan struct{}, 1)
	d.subs[d.nextSub] = ch
	return d.nextSub, ch
}

// Unsubscribe removes a change listener registered with Subscribe.
// Unknown ids are ignored.
func (d *Document) Unsubscribe(id int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.subs, id)
}

// Find returns the first node in document order satisfying pred.
func (d *Document) Find(pred Predicate) *Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.root.Find(pred)
}

// FindAll returns every node in document order satisfying pred.
func (d *Document) FindAll(pred Predicate) []*Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.root.FindAll(pred)
}

// MarkOnce writes the attribute only if it is not already present and
// reports whether this call claimed it. Check and write happen under
// one write lock hold, so two overlapping scans cannot both claim the
// same node.
func (d *Document) MarkOnce(n *Node, key, val string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if n.HasAttr(key) {
		return false
	}
	n.setAttr(key, val)
	return true
}

// IsMarked reports whether the attribute was previously written.
func (d *Document) IsMarked(n *Node, key string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return n.HasAttr(key)
}

// SetAttr writes an annotation attribute under the write lock.
func (d *Document) SetAttr(n *Node, key, val string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n.setAttr(key, val)
}

// GetAttr reads an attribute under the read lock.
func (d *Document) GetAttr(n *Node, key string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return n.AttrValue(key)
}

// Hide visually suppresses a post and records why. The node stays in
// the tree: removing it would fight the page's own renderer and lose
// the audit trail the annotations provide.
func (d *Document) Hide(n *Node, reason string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n.setAttr(AttrHidden, "1")
	if reason != "" {
		n.setAttr(AttrReason, reason)
	}
	n.setAttr("style", mergeStyle(n.AttrValue("style"), hiddenStyle))
}

// IsHidden reports whether Hide was applied to the node.
func (d *Document) IsHidden(n *Node) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return n.HasAttr(AttrHidden)
}

// Highlight outlines a post while keeping it visible. Used instead of
// Hide when the review setting asks to see what would be removed.
func (d *Document) Highlight(n *Node, reason string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n.setAttr(AttrHighlight, "1")
	if reason != "" {
		n.setAttr(AttrReason, reason)
	}
	n.setAttr("style", mergeStyle(n.AttrValue("style"), highlightStyle))
}

// IsHighlighted reports whether Highlight was applied to the node.
func (d *Document) IsHighlighted(n *Node) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return n.HasAttr(AttrHighlight)
}

// Activate delivers a synthetic activation (a click) to a node. It
// increments the node's activation marker under the write lock, then
// runs registered handlers in registration order outside the lock so
// they can mutate the tree in response. With no handlers registered it
// only records the marker.
func (d *Document) Activate(n *Node) {
	d.mu.Lock()
	count, _ := strconv.Atoi(n.AttrValue(AttrActivated))
	n.setAttr(AttrActivated, strconv.Itoa(count+1))
	handlers := make([]activation, len(d.handlers))
	copy(handlers, d.handlers)
	d.mu.Unlock()

	for _, h := range handlers {
		h.fn(n)
	}
}

// ActivationCount returns how many times Activate hit the node.
func (d *Document) ActivationCount(n *Node) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	count, _ := strconv.Atoi(n.AttrValue(AttrActivated))
	return count
}

// RegisterActivation adds a handler invoked on every Activate call.
// The returned id removes it again via UnregisterActivation.
func (d *Document) RegisterActivation(fn ActivationHandler) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextHandler++
	d.handlers = append(d.handlers, activation{id: d.nextHandler, fn: fn})
	return d.nextHandler
}

// UnregisterActivation removes a handler by the id RegisterActivation
// returned. Unknown ids are ignored.
func (d *Document) UnregisterActivation(id int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, h := range d.handlers {
		if h.id == id {
			d.handlers = append(d.handlers[:i], d.handlers[i+1:]...)
			return
		}
	}
}

// mergeStyle appends a declaration to an existing inline style without
// clobbering what the page already set.
func mergeStyle(existing, decl string) string {
	existing = strings.TrimSpace(existing)
	if existing == "" {
		return decl
	}
	if strings.Contains(existing, decl) {
		return existing
	}
	if !strings.HasSuffix(existing, ";") {
		existing += ";"
	}
	return existing + " " + decl
}
