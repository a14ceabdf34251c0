package feed

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/dom"
)

// attrProcessed marks posts already claimed by a scan pass.
const attrProcessed = "data-fcp-processed"

// Post pairs a feed post element with the text snapshot and content
// fingerprint captured when the post was claimed. The snapshot is the
// classification input; later edits to the live node do not change it.
type Post struct {
	// ID is a short content fingerprint of the snapshot. Posts with
	// identical text share an ID, which is acceptable: the ID exists to
	// correlate journal rows and history records, not to address nodes.
	ID string

	// Snapshot is the post's visible text at capture time.
	Snapshot string

	node *dom.Node
}

// newPost captures a post under an already-held document read view.
func newPost(n *dom.Node) *Post {
	snapshot := n.VisibleText()
	return &Post{
		ID:       Fingerprint(snapshot),
		Snapshot: snapshot,
		node:     n,
	}
}

// CapturePost snapshots a post element with proper locking. Callers that
// already hold a read view must use the scanner's capture path instead.
func CapturePost(doc *dom.Document, n *dom.Node) *Post {
	var p *Post
	doc.View(func() {
		p = newPost(n)
	})
	return p
}

// Node returns the underlying post element.
func (p *Post) Node() *dom.Node {
	return p.node
}

// Fingerprint returns a short hex digest of a post snapshot. SHA3 keeps
// the digest stable across processes, so history rows written in one
// session remain correlatable in the next.
func Fingerprint(snapshot string) string {
	sum := sha3.Sum256([]byte(snapshot))
	return hex.EncodeToString(sum[:8])
}
