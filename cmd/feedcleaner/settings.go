package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/config"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/dom"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/export"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/log"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/model"
)

// addRuleFlags registers the classification and automation flags shared
// by every command that runs the pipeline. Flag defaults mirror the
// settings defaults; only flags the user actually set override the
// configuration file.
func addRuleFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("sponsored", config.DefaultHideSponsored,
		"Hide posts carrying a sponsored indicator")
	cmd.Flags().Bool("suggested", config.DefaultHideSuggested,
		"Hide suggested-content posts")
	cmd.Flags().StringSliceP("keyword", "k", nil,
		"Case-insensitive keyword to hide posts by (repeatable)")
	cmd.Flags().StringSliceP("whitelist", "w", nil,
		"Source display name never automated (repeatable)")
	cmd.Flags().Bool("auto-unfollow", false,
		"Unfollow the source of qualifying posts instead of only hiding them")
	cmd.Flags().Bool("dry-run", config.DefaultDryRun,
		"Queue unfollow targets instead of executing them")
	cmd.Flags().Bool("friend-protection", config.DefaultFriendProtection,
		"Never automate sources that look like personal contacts")
	cmd.Flags().Bool("highlight-only", false,
		"Outline qualifying posts instead of hiding them")
	cmd.Flags().Duration("interval", config.DefaultScanInterval,
		"Scan cadence in watch mode")
	cmd.Flags().Bool("save-history", false,
		"Record automation outcomes in the history database")
	cmd.Flags().String("history-dir", "",
		"History database directory (default: XDG data directory)")
}

// buildSettings assembles runtime settings: defaults, then the
// configuration file, then the selected profile, then explicit flags.
func buildSettings(cmd *cobra.Command) (*config.Settings, error) {
	s := config.NewSettings()

	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, err
	}
	profile, err := cmd.Root().PersistentFlags().GetString("profile")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file path, error when it
	// is not found. An absent default file is fine.
	found := config.FindFile(configPath)
	switch {
	case found != "":
		cf, err := config.LoadFile(found)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
		}
		if err := cf.Apply(s); err != nil {
			return nil, fmt.Errorf("failed to apply config file %s: %w", found, err)
		}
		if profile != "" {
			if err := cf.ApplyProfile(profile, s); err != nil {
				return nil, err
			}
		}
		s.ConfigFilePath = found
	case configPath != "":
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	case profile != "":
		return nil, fmt.Errorf("profile %q requested but no configuration file found", profile)
	}

	if err := applyFlagOverrides(cmd, s); err != nil {
		return nil, err
	}

	s.Verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
	if err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	return s, nil
}

// applyFlagOverrides copies every rule flag the user set onto s.
// Unchanged flags keep whatever defaults and config file produced, so
// precedence stays flags > profile > file > defaults.
func applyFlagOverrides(cmd *cobra.Command, s *config.Settings) error {
	f := cmd.Flags()
	var err error

	if f.Changed("sponsored") {
		if s.HideSponsored, err = f.GetBool("sponsored"); err != nil {
			return err
		}
	}
	if f.Changed("suggested") {
		if s.HideSuggested, err = f.GetBool("suggested"); err != nil {
			return err
		}
	}
	if f.Changed("keyword") {
		if s.Keywords, err = f.GetStringSlice("keyword"); err != nil {
			return err
		}
	}
	if f.Changed("whitelist") {
		if s.Whitelist, err = f.GetStringSlice("whitelist"); err != nil {
			return err
		}
	}
	if f.Changed("auto-unfollow") {
		if s.AutoUnfollow, err = f.GetBool("auto-unfollow"); err != nil {
			return err
		}
	}
	if f.Changed("dry-run") {
		if s.DryRun, err = f.GetBool("dry-run"); err != nil {
			return err
		}
	}
	if f.Changed("friend-protection") {
		if s.FriendProtection, err = f.GetBool("friend-protection"); err != nil {
			return err
		}
	}
	if f.Changed("highlight-only") {
		if s.HighlightOnly, err = f.GetBool("highlight-only"); err != nil {
			return err
		}
	}
	if f.Changed("interval") {
		if s.ScanInterval, err = f.GetDuration("interval"); err != nil {
			return err
		}
	}
	if f.Changed("save-history") {
		if s.SaveHistory, err = f.GetBool("save-history"); err != nil {
			return err
		}
	}
	if f.Changed("history-dir") {
		if s.HistoryDir, err = f.GetString("history-dir"); err != nil {
			return err
		}
	}

	return nil
}

// setupLogger creates the trimming structured logger and installs it as
// the process default.
func setupLogger(verbose bool) *slog.Logger {
	logger := log.NewLogger(os.Stderr, verbose)
	slog.SetDefault(logger)
	return logger
}

// loadDocument parses the feed page at path; "-" reads standard input.
func loadDocument(path string) (*dom.Document, error) {
	if path == "-" {
		return dom.Parse(os.Stdin)
	}

	f, err := os.Open(path) //nolint:gosec // User-provided page path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer func() { _ = f.Close() }()

	doc, err := dom.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page %s: %w", path, err)
	}
	return doc, nil
}

// writeDocument renders the document to path, or to fallback when path
// is empty.
func writeDocument(doc *dom.Document, path string, fallback io.Writer) error {
	if path == "" || path == "-" {
		return doc.Render(fallback)
	}

	f, err := os.Create(path) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := doc.Render(f); err != nil {
		return fmt.Errorf("failed to write cleaned page: %w", err)
	}
	return nil
}

// printStats renders the session counters to the command's error stream
// so they never mix with the cleaned HTML on stdout.
func printStats(cmd *cobra.Command, stats model.StatsSnapshot) {
	w := export.NewPlainWriter(cmd.ErrOrStderr())
	_, _ = w.WriteStats(stats)
}
