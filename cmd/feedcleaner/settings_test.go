package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

// newTestCleanCmd builds a clean command attached to a fresh root, the
// way Execute wires it, without running anything.
func newTestCleanCmd(t *testing.T) (*cobra.Command, *cobra.Command) {
	t.Helper()

	root := NewRootCmd()
	clean, _, err := root.Find([]string{"clean"})
	if err != nil {
		t.Fatalf("failed to find clean command: %v", err)
	}
	return root, clean
}

// writeConfig saves a config file into a temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".feedcleaner")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestBuildSettings tests settings assembly precedence.
func TestBuildSettings(t *testing.T) {
	t.Parallel()

	t.Run("defaults without config file", func(t *testing.T) {
		t.Parallel()

		_, clean := newTestCleanCmd(t)
		// Run from a temp dir so a developer's own .feedcleaner cannot
		// leak into the test. FindFile checks the home directory too,
		// so point config at an explicit empty file instead.
		path := writeConfig(t, "")

		if err := clean.Root().PersistentFlags().Set("config", path); err != nil {
			t.Fatal(err)
		}
		settings, err := buildSettings(clean)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !settings.DryRun {
			t.Error("expected dry run on by default")
		}
		if !settings.FriendProtection {
			t.Error("expected friend protection on by default")
		}
		if settings.AutoUnfollow {
			t.Error("expected auto-unfollow off by default")
		}
	})

	t.Run("config file overrides defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
settings:
  dryRun: false
  keywords:
    - crypto
  scanInterval: 5s
`)
		_, clean := newTestCleanCmd(t)
		if err := clean.Root().PersistentFlags().Set("config", path); err != nil {
			t.Fatal(err)
		}

		settings, err := buildSettings(clean)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if settings.DryRun {
			t.Error("expected dry run disabled by config file")
		}
		if len(settings.Keywords) != 1 || settings.Keywords[0] != "crypto" {
			t.Errorf("expected keywords from file, got %v", settings.Keywords)
		}
		if settings.ScanInterval != 5*time.Second {
			t.Errorf("expected 5s interval, got %s", settings.ScanInterval)
		}
		if settings.ConfigFilePath != path {
			t.Errorf("expected config path recorded, got %q", settings.ConfigFilePath)
		}
	})

	t.Run("flags override config file", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
settings:
  dryRun: false
`)
		_, clean := newTestCleanCmd(t)
		if err := clean.Root().PersistentFlags().Set("config", path); err != nil {
			t.Fatal(err)
		}
		if err := clean.Flags().Set("dry-run", "true"); err != nil {
			t.Fatal(err)
		}

		settings, err := buildSettings(clean)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !settings.DryRun {
			t.Error("expected flag to win over config file")
		}
	})

	t.Run("profile applies on top of base settings", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
settings:
  keywords:
    - crypto
profiles:
  aggressive:
    autoUnfollow: true
    dryRun: false
`)
		_, clean := newTestCleanCmd(t)
		if err := clean.Root().PersistentFlags().Set("config", path); err != nil {
			t.Fatal(err)
		}
		if err := clean.Root().PersistentFlags().Set("profile", "aggressive"); err != nil {
			t.Fatal(err)
		}

		settings, err := buildSettings(clean)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !settings.AutoUnfollow || settings.DryRun {
			t.Error("expected profile to enable automation")
		}
		if len(settings.Keywords) != 1 {
			t.Errorf("expected base keywords kept, got %v", settings.Keywords)
		}
	})

	t.Run("unknown profile is an error", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "settings:\n  dryRun: true\n")
		_, clean := newTestCleanCmd(t)
		if err := clean.Root().PersistentFlags().Set("config", path); err != nil {
			t.Fatal(err)
		}
		if err := clean.Root().PersistentFlags().Set("profile", "nope"); err != nil {
			t.Fatal(err)
		}

		if _, err := buildSettings(clean); err == nil {
			t.Fatal("expected error for unknown profile, got nil")
		}
	})

	t.Run("missing explicit config file is an error", func(t *testing.T) {
		t.Parallel()

		_, clean := newTestCleanCmd(t)
		missing := filepath.Join(t.TempDir(), "absent.yaml")
		if err := clean.Root().PersistentFlags().Set("config", missing); err != nil {
			t.Fatal(err)
		}

		if _, err := buildSettings(clean); err == nil {
			t.Fatal("expected error for missing config file, got nil")
		}
	})

	t.Run("conflicting modes fail validation", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, "")
		_, clean := newTestCleanCmd(t)
		if err := clean.Root().PersistentFlags().Set("config", path); err != nil {
			t.Fatal(err)
		}
		if err := clean.Flags().Set("highlight-only", "true"); err != nil {
			t.Fatal(err)
		}
		if err := clean.Flags().Set("auto-unfollow", "true"); err != nil {
			t.Fatal(err)
		}

		if _, err := buildSettings(clean); err == nil {
			t.Fatal("expected validation error, got nil")
		}
	})
}
