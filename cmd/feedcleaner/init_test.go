package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestNewInitCmd tests the init command creation.
func TestNewInitCmd(t *testing.T) {
	t.Parallel()

	cmd := NewInitCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "init" {
			t.Errorf("expected use 'init', got %q", cmd.Use)
		}
	})

	t.Run("has output flag with default", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
		if flag.DefValue != configFileName {
			t.Errorf("expected default %q, got %q", configFileName, flag.DefValue)
		}
	})

	t.Run("has force flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("force") == nil {
			t.Fatal("expected force flag")
		}
	})
}

// TestRunInitCmd tests the init command execution.
func TestRunInitCmd(t *testing.T) {
	t.Parallel()

	t.Run("creates configuration file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".feedcleaner")

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", path})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("expected config file, got error %v", err)
		}
		for _, want := range []string{"settings:", "hideSponsored", "profiles:", "dryRun"} {
			if !strings.Contains(string(content), want) {
				t.Errorf("expected template to contain %q", want)
			}
		}
	})

	t.Run("refuses to overwrite without force", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".feedcleaner")
		if err := os.WriteFile(path, []byte("existing"), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", path})
		if err := cmd.Execute(); err == nil {
			t.Fatal("expected error for existing file, got nil")
		}
	})

	t.Run("overwrites with force", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".feedcleaner")
		if err := os.WriteFile(path, []byte("existing"), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", path, "-f"})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(content), "settings:") {
			t.Error("expected file to be replaced with template")
		}
	})

	t.Run("generated template loads as valid settings", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".feedcleaner")

		cmd := NewInitCmd()
		cmd.SetArgs([]string{"-o", path})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		root := NewRootCmd()
		clean, _, err := root.Find([]string{"clean"})
		if err != nil {
			t.Fatal(err)
		}
		if err := root.PersistentFlags().Set("config", path); err != nil {
			t.Fatal(err)
		}
		settings, err := buildSettings(clean)
		if err != nil {
			t.Fatalf("expected template to load, got %v", err)
		}
		if !settings.DryRun {
			t.Error("expected template to keep dry run on")
		}
	})
}
