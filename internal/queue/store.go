package queue

import (
	"sync"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/config"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/model"
)

// Store holds the session's pending queue and executed record trail.
// All methods are safe for concurrent use; the automation engine and
// the batch runner share one Store per session.
type Store struct {
	mu       sync.Mutex
	pending  []model.Target
	executed []model.Target
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// AppendPending adds a dry-run candidate to the pending queue.
func (s *Store) AppendPending(t model.Target) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, t)
}

// AppendExecuted adds an executed or refused record to the trail.
func (s *Store) AppendExecuted(t model.Target) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.executed = append(s.executed, t)
}

// Pending returns a copy of the pending queue.
func (s *Store) Pending() []model.Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Target(nil), s.pending...)
}

// Executed returns a copy of the executed records.
func (s *Store) Executed() []model.Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Target(nil), s.executed...)
}

// PendingCount returns the pending queue length.
func (s *Store) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// ReplacePending swaps the whole pending queue.
func (s *Store) ReplacePending(targets []model.Target) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append([]model.Target(nil), targets...)
}

// ClearPending empties the pending queue.
func (s *Store) ClearPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
}

// Collect rebuilds the pending queue from analysis rows and returns how
// many targets it queued. Rows are filtered in order: unmatched posts,
// rows without a link, whitelisted names, and friend sources under
// protection are dropped; the first row per source name wins.
func (s *Store) Collect(rows []model.AnalysisRow, settings *config.Settings) int {
	seen := make(map[string]bool)
	var targets []model.Target

	for _, row := range rows {
		if !row.Reason.Unwanted() {
			continue
		}
		src := row.Source
		if src.Link == "" || src.Name == "" {
			continue
		}
		if model.ContainsName(settings.Whitelist, src.Name) {
			continue
		}
		if settings.FriendProtection && src.IsFriend {
			continue
		}
		name := model.NormalizeName(src.Name)
		if seen[name] {
			continue
		}
		seen[name] = true
		targets = append(targets, model.NewPendingTarget(src, row.Reason))
	}

	s.ReplacePending(targets)
	return len(targets)
}
