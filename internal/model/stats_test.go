package model

import (
	"sync"
	"testing"
)

// TestStatsSnapshot tests counter increments and snapshot consistency.
func TestStatsSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("new stats are zero", func(t *testing.T) {
		t.Parallel()

		s := NewStats()
		snap := s.Snapshot()
		if snap != (StatsSnapshot{}) {
			t.Errorf("expected zero snapshot, got %+v", snap)
		}
	})

	t.Run("increments are reflected", func(t *testing.T) {
		t.Parallel()

		s := NewStats()
		s.AddProcessed()
		s.AddProcessed()
		s.AddUnfollowed()
		s.AddHidden()
		s.AddProtected()
		s.AddError()

		snap := s.Snapshot()
		want := StatsSnapshot{Processed: 2, Unfollowed: 1, Hidden: 1, Protected: 1, Errors: 1}
		if snap != want {
			t.Errorf("expected %+v, got %+v", want, snap)
		}
	})

	t.Run("concurrent increments are not lost", func(t *testing.T) {
		t.Parallel()

		s := NewStats()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.AddProcessed()
				s.AddHidden()
			}()
		}
		wg.Wait()

		snap := s.Snapshot()
		if snap.Processed != 50 || snap.Hidden != 50 {
			t.Errorf("expected 50/50, got %d/%d", snap.Processed, snap.Hidden)
		}
	})
}

// TestExcerpt tests snapshot truncation at rune boundaries.
func TestExcerpt(t *testing.T) {
	t.Parallel()

	t.Run("short snapshot unchanged", func(t *testing.T) {
		t.Parallel()

		if got := Excerpt("hello"); got != "hello" {
			t.Errorf("expected %q, got %q", "hello", got)
		}
	})

	t.Run("long snapshot truncated", func(t *testing.T) {
		t.Parallel()

		long := make([]byte, 0, MaxExcerptLen*2)
		for range MaxExcerptLen * 2 {
			long = append(long, 'a')
		}
		got := Excerpt(string(long))
		if len(got) != MaxExcerptLen {
			t.Errorf("expected length %d, got %d", MaxExcerptLen, len(got))
		}
	})

	t.Run("does not split multibyte runes", func(t *testing.T) {
		t.Parallel()

		// Fill with three-byte runes so MaxExcerptLen lands mid-rune.
		var b []byte
		for len(b) < MaxExcerptLen+3 {
			b = append(b, "あ"...)
		}
		got := Excerpt(string(b))
		if len(got) > MaxExcerptLen {
			t.Errorf("expected at most %d bytes, got %d", MaxExcerptLen, len(got))
		}
		for _, r := range got {
			if r == '�' {
				t.Fatal("excerpt contains a replacement rune, rune was split")
			}
		}
	})
}
