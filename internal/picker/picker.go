package picker

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/dom"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/extract"
)

// ErrActive is returned by Start while a pick session is already armed.
var ErrActive = errors.New("picker: session already active")

// maxKeywordLen caps suggested keywords at a length that still reads
// well in a filter list.
const maxKeywordLen = 48

// postPred mirrors the feed scanner's notion of a post container so a
// pick inside a post can also suggest its author.
var postPred = dom.Any(
	dom.ByRole("article"),
	dom.ByAttrPrefix("data-pagelet", "FeedUnit"),
)

// Suggestion is what one picked element yields. SourceName is empty
// when the element sits outside any post.
type Suggestion struct {
	Keyword    string
	SourceName string
}

// Option configures a Picker.
type Option func(*Picker)

// WithLogger routes picker logs somewhere other than slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Picker) {
		p.logger = logger
	}
}

// WithExtractor substitutes the extractor used to name the enclosing
// post's author.
func WithExtractor(ex *extract.Extractor) Option {
	return func(p *Picker) {
		p.extractor = ex
	}
}

// Picker captures the next activation on a document and turns the
// activated element into a Suggestion.
type Picker struct {
	doc       *dom.Document
	extractor *extract.Extractor
	logger    *slog.Logger
	out       chan Suggestion

	mu        sync.Mutex
	active    bool
	handlerID int
}

// New creates a Picker for the document. No session is armed until
// Start.
func New(doc *dom.Document, opts ...Option) *Picker {
	p := &Picker{
		doc:       doc,
		extractor: extract.NewExtractor(),
		logger:    slog.Default(),
		out:       make(chan Suggestion, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Suggestions delivers one Suggestion per completed pick session.
func (p *Picker) Suggestions() <-chan Suggestion { return p.out }

// Active reports whether a pick session is armed.
func (p *Picker) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Start arms the picker for exactly one pick.
func (p *Picker) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active {
		return ErrActive
	}
	p.active = true
	p.handlerID = p.doc.RegisterActivation(p.intercept)
	p.logger.Debug("element picking armed")
	return nil
}

// Stop disarms an active session without producing a suggestion.
// Stopping an idle picker is a no-op.
func (p *Picker) Stop() {
	p.mu.Lock()
	if !p.active {
		p.mu.Unlock()
		return
	}
	p.active = false
	id := p.handlerID
	p.mu.Unlock()

	p.doc.UnregisterActivation(id)
	p.logger.Debug("element picking disarmed")
}

// intercept runs on every activation while registered. The first call
// resolves the session and unregisters the handler before deriving the
// suggestion, so a host script reacting to the same click cannot
// trigger a second pick.
func (p *Picker) intercept(n *dom.Node) {
	p.mu.Lock()
	if !p.active {
		p.mu.Unlock()
		return
	}
	p.active = false
	id := p.handlerID
	p.mu.Unlock()

	p.doc.UnregisterActivation(id)

	s := p.suggest(n)
	select {
	case p.out <- s:
		p.logger.Debug("element picked", "keyword", s.Keyword, "source", s.SourceName)
	default:
		p.logger.Debug("pick dropped, previous suggestion unread")
	}
}

// suggest reads the picked element under one consistent view.
func (p *Picker) suggest(n *dom.Node) Suggestion {
	var s Suggestion
	p.doc.View(func() {
		s.Keyword = keywordFrom(n.VisibleText())
		if post := n.Closest(postPred); post != nil {
			if src := p.extractor.Extract(post, post.VisibleText()); src != nil {
				s.SourceName = src.Name
			}
		}
	})
	return s
}

// keywordFrom cuts a keyword candidate out of element text. Text over
// the cap is cut at the last word boundary that fits, or mid-run when
// there is no boundary to cut at.
func keywordFrom(text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= maxKeywordLen {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:maxKeywordLen])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut)
}
