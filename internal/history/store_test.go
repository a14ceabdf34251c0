package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/model"
)

// setupTestStore creates a temporary history store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	return s
}

// successTarget builds a completed unfollow record.
func successTarget(name, link string) model.Target {
	return model.Target{
		Source:    model.Source{Name: name, Link: link},
		Reason:    model.ReasonSponsored,
		Success:   true,
		Timestamp: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

// TestOpen tests store opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "newdir", "subdir")
		s, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open store: %v", err)
		}
		defer func() { _ = s.Close() }()

		if _, err := os.Stat(filepath.Join(dir, dbFileName)); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
	})

	t.Run("CreateIfNotExists=false fails on missing database", func(t *testing.T) {
		t.Parallel()

		_, err := Open(t.TempDir(), Options{CreateIfNotExists: false})
		if err == nil {
			t.Fatal("expected error for missing database, got nil")
		}
	})
}

// TestInsertAndRecent tests the insert and query round trip.
func TestInsertAndRecent(t *testing.T) {
	t.Parallel()

	t.Run("round trips a success record", func(t *testing.T) {
		t.Parallel()

		s := setupTestStore(t)
		ctx := context.Background()

		if _, err := s.Insert(ctx, successTarget("Acme Ads", "https://www.facebook.com/acmeads")); err != nil {
			t.Fatalf("failed to insert: %v", err)
		}

		got, err := s.Recent(ctx, 10)
		if err != nil {
			t.Fatalf("failed to query: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 record, got %d", len(got))
		}
		if got[0].Source.Name != "Acme Ads" {
			t.Errorf("expected name Acme Ads, got %q", got[0].Source.Name)
		}
		if !got[0].Success {
			t.Error("expected success record")
		}
		if got[0].Reason != model.ReasonSponsored {
			t.Errorf("expected sponsored reason, got %s", got[0].Reason)
		}
		if got[0].Timestamp.IsZero() {
			t.Error("expected timestamp to round trip")
		}
	})

	t.Run("round trips a failure record with signal", func(t *testing.T) {
		t.Parallel()

		s := setupTestStore(t)
		ctx := context.Background()

		failed := model.Target{
			Source: model.Source{Name: "Ghost Page", Link: "https://www.facebook.com/ghost"},
			Reason: model.ReasonKeyword,
			Signal: "menu_did_not_open",
			Error:  "menu did not open",
		}
		if _, err := s.Insert(ctx, failed); err != nil {
			t.Fatalf("failed to insert: %v", err)
		}

		got, err := s.BySource(ctx, "https://www.facebook.com/ghost")
		if err != nil {
			t.Fatalf("failed to query: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("expected 1 record, got %d", len(got))
		}
		if got[0].Signal != "menu_did_not_open" {
			t.Errorf("expected signal menu_did_not_open, got %q", got[0].Signal)
		}
		if got[0].Success {
			t.Error("expected failure record")
		}
	})

	t.Run("recent returns newest first and honors limit", func(t *testing.T) {
		t.Parallel()

		s := setupTestStore(t)
		ctx := context.Background()

		for _, name := range []string{"First", "Second", "Third"} {
			if _, err := s.Insert(ctx, successTarget(name, "https://www.facebook.com/"+name)); err != nil {
				t.Fatalf("failed to insert %s: %v", name, err)
			}
		}

		got, err := s.Recent(ctx, 2)
		if err != nil {
			t.Fatalf("failed to query: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 records, got %d", len(got))
		}
		if got[0].Source.Name != "Third" {
			t.Errorf("expected newest record first, got %q", got[0].Source.Name)
		}
	})
}

// TestRecord tests the Recorder contract used by the automation engine.
func TestRecord(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)

	if err := s.Record(successTarget("Acme Ads", "https://www.facebook.com/acmeads")); err != nil {
		t.Fatalf("failed to record: %v", err)
	}

	got, err := s.Recent(context.Background(), 1)
	if err != nil {
		t.Fatalf("failed to query: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
}

// TestSummarize tests the aggregate counts.
func TestSummarize(t *testing.T) {
	t.Parallel()

	s := setupTestStore(t)
	ctx := context.Background()

	records := []model.Target{
		successTarget("A", "https://www.facebook.com/a"),
		successTarget("B", "https://www.facebook.com/b"),
		{
			Source: model.Source{Name: "C", Link: "https://www.facebook.com/c"},
			Reason: model.ReasonKeyword,
			Signal: "action_not_found",
			Error:  "no unfollow action in menu",
		},
		{
			Source: model.Source{Name: "D", Link: "https://www.facebook.com/d"},
			Reason: model.ReasonSuggested,
			DryRun: true,
		},
	}
	for _, r := range records {
		if _, err := s.Insert(ctx, r); err != nil {
			t.Fatalf("failed to insert: %v", err)
		}
	}

	summary, err := s.Summarize(ctx)
	if err != nil {
		t.Fatalf("failed to summarize: %v", err)
	}
	if summary.Total != 4 {
		t.Errorf("expected total 4, got %d", summary.Total)
	}
	if summary.Succeeded != 2 {
		t.Errorf("expected 2 succeeded, got %d", summary.Succeeded)
	}
	if summary.Failed != 1 {
		t.Errorf("expected 1 failed, got %d", summary.Failed)
	}
	if summary.ByReason["sponsored"] != 2 {
		t.Errorf("expected 2 sponsored actions, got %d", summary.ByReason["sponsored"])
	}
}

// TestParseTimestamp tests the multi-format timestamp fallback.
func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		zero  bool
	}{
		{name: "rfc3339", input: "2025-06-01T09:00:00Z", zero: false},
		{name: "sqlite datetime", input: "2025-06-01 09:00:00", zero: false},
		{name: "garbage", input: "not a time", zero: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parseTimestamp(tt.input)
			if got.IsZero() != tt.zero {
				t.Errorf("expected zero=%v for %q, got %v", tt.zero, tt.input, got)
			}
		})
	}
}
