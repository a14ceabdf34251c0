package model

import "sync"

// Stats holds the session's monotonic counters. Counters are incremented by
// the scanner and the automation engine and read by presentation layers;
// they never decrease and reset only with the process.
//
// Design decision: We guard the counters with a mutex rather than using
// atomic types because Snapshot must read all five counters consistently,
// and the increment rate (a handful per scan tick) makes lock contention
// irrelevant.
type Stats struct {
	mu sync.Mutex

	processed  int
	unfollowed int
	hidden     int
	protected  int
	errors     int
}

// StatsSnapshot is a consistent point-in-time copy of all counters.
// The JSON tags support export and the stats display.
type StatsSnapshot struct {
	// Processed counts posts that went through classification.
	Processed int `json:"processed"`

	// Unfollowed counts completed unfollow automations.
	Unfollowed int `json:"unfollowed"`

	// Hidden counts posts visually hidden for any reason.
	Hidden int `json:"hidden"`

	// Protected counts automations stopped by friend protection.
	Protected int `json:"protected"`

	// Errors counts terminal automation failures.
	Errors int `json:"errors"`
}

// NewStats creates a zeroed counter set.
func NewStats() *Stats {
	return &Stats{}
}

// AddProcessed increments the processed counter.
func (s *Stats) AddProcessed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed++
}

// AddUnfollowed increments the unfollowed counter.
func (s *Stats) AddUnfollowed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unfollowed++
}

// AddHidden increments the hidden counter.
func (s *Stats) AddHidden() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hidden++
}

// AddProtected increments the protected counter.
func (s *Stats) AddProtected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.protected++
}

// AddError increments the errors counter.
func (s *Stats) AddError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors++
}

// Snapshot returns a consistent copy of all counters.
func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StatsSnapshot{
		Processed:  s.processed,
		Unfollowed: s.unfollowed,
		Hidden:     s.hidden,
		Protected:  s.protected,
		Errors:     s.errors,
	}
}
