package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These defaults encode the behavior a fresh install should have:
// passive cleanup on, destructive automation off.
const (
	// DefaultScanInterval is the fixed cadence between feed scans.
	// Two seconds keeps up with normal scrolling without busy-polling;
	// structural-change signals cover bursts between ticks.
	DefaultScanInterval = 2 * time.Second

	// DefaultHideSponsored enables sponsored-post hiding out of the box.
	// Removing ads is the primary reason to run the tool at all.
	DefaultHideSponsored = true

	// DefaultHideSuggested enables suggested-content hiding out of the box.
	DefaultHideSuggested = true

	// DefaultFriendProtection keeps automation away from personal
	// contacts unless the user explicitly opts out.
	DefaultFriendProtection = true

	// DefaultDryRun queues unfollow targets instead of executing them.
	// Unfollowing is not reversible from here, so it must be a
	// deliberate choice per run.
	DefaultDryRun = true

	// DefaultLogging records every classification outcome in the
	// session journal. Diagnostics are cheap; silence is opt-in.
	DefaultLogging = true

	// AppName is the application name used for XDG directory paths.
	AppName = "feedcleaner"
)

// Settings holds all runtime options for the feed cleaner.
// One instance is built at startup from defaults, the config file, and
// CLI flags, then passed through the pipeline via dependency injection
// rather than global state.
//
// Design decision: We use a single flat struct instead of nested
// structs (ClassifyConfig, AutomationConfig, ...) for simplicity. The
// number of options is manageable, and every component receives the
// same object, which keeps "which setting wins" questions answerable
// in one place.
//
// Settings carries no lock. In watch mode every mutation is applied on
// the scan goroutine between scans, so components read fields directly
// the whole session without synchronization.
type Settings struct {
	// HideSponsored enables the sponsored-post classifier checks.
	HideSponsored bool

	// HideSuggested enables the suggested-content classifier checks.
	HideSuggested bool

	// Keywords are case-insensitive substrings matched against each
	// post's text snapshot. An empty list disables keyword matching.
	Keywords []string

	// Whitelist holds source display names that are never automated,
	// regardless of friend status. Matching is whitespace- and
	// Unicode-normalized.
	Whitelist []string

	// AutoUnfollow hands qualifying posts to the automation engine
	// instead of only hiding them.
	AutoUnfollow bool

	// DryRun queues automation targets as pending instead of executing
	// them. Batch execution refuses to run while this is set.
	DryRun bool

	// FriendProtection prevents automation against sources that look
	// like personal contacts; such posts are hidden and counted as
	// protected instead.
	FriendProtection bool

	// HighlightOnly outlines qualifying posts instead of hiding them,
	// for reviewing what the rules would remove. Incompatible with
	// AutoUnfollow.
	HighlightOnly bool

	// Logging records a journal entry for every processed post,
	// including posts that matched nothing.
	Logging bool

	// ScanInterval is the fixed cadence between scheduled scans.
	ScanInterval time.Duration

	// HistoryDir is the directory for the action history database.
	// When empty and SaveHistory is set, the XDG data directory is used.
	HistoryDir string

	// SaveHistory records every automation outcome in the history
	// database. The history is an audit log only; session dedupe never
	// consults it.
	SaveHistory bool

	// ConfigFilePath is the path of the loaded configuration file, kept
	// so setting changes can be saved back to the same place. Empty
	// when no file was found.
	ConfigFilePath string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool
}

// NewSettings creates Settings with default values.
// All fields are set to safe, sensible defaults; callers override
// specific values from the config file and CLI flags after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are true or non-zero, and the
// constructor doubles as documentation of what a fresh install does.
func NewSettings() *Settings {
	return &Settings{
		HideSponsored:    DefaultHideSponsored,
		HideSuggested:    DefaultHideSuggested,
		FriendProtection: DefaultFriendProtection,
		DryRun:           DefaultDryRun,
		Logging:          DefaultLogging,
		ScanInterval:     DefaultScanInterval,
	}
}

// XDGDataDir returns the XDG data directory for the feed cleaner.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/feedcleaner
// On macOS: ~/Library/Application Support/feedcleaner
// On Windows: %LOCALAPPDATA%\feedcleaner
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for the feed cleaner.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/feedcleaner
// On macOS: ~/Library/Application Support/feedcleaner
// On Windows: %APPDATA%\feedcleaner
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the settings are valid.
// It returns a specific error describing what is invalid.
//
// We return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (s *Settings) Validate() error {
	// A non-positive interval would spin the scheduler or stall it
	if s.ScanInterval <= 0 {
		return ErrInvalidScanInterval
	}

	// A blank keyword is a substring of everything and would hide the
	// entire feed
	for _, k := range s.Keywords {
		if strings.TrimSpace(k) == "" {
			return ErrBlankKeyword
		}
	}

	// HighlightOnly is a review mode; pairing it with automation would
	// unfollow sources the user only asked to look at
	if s.HighlightOnly && s.AutoUnfollow {
		return ErrConflictingModes
	}

	return nil
}
