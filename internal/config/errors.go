package config

import "errors"

// Configuration validation errors.
// These errors are returned by Settings.Validate() and the profile
// loader and provide specific information about what is wrong.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances at each return site. This allows callers
// to use errors.Is() for programmatic error handling while still
// providing human-readable messages. Using errors.New() here rather
// than fmt.Errorf() because these messages carry no dynamic values.
var (
	// ErrInvalidScanInterval is returned when the scan interval is not
	// positive. A zero interval would busy-loop the scheduler.
	ErrInvalidScanInterval = errors.New("invalid scan interval: must be positive")

	// ErrBlankKeyword is returned when the keyword list contains an
	// empty or whitespace-only entry. A blank keyword matches every
	// post and would hide the entire feed.
	ErrBlankKeyword = errors.New("blank keyword: remove empty entries from the keyword list")

	// ErrConflictingModes is returned when highlight-only review mode
	// and auto-unfollow are enabled together. Review mode must never
	// trigger automation.
	ErrConflictingModes = errors.New("conflicting modes: highlight-only and auto-unfollow cannot be used together")

	// ErrUnknownProfile is returned when the requested profile name
	// does not exist in the configuration file.
	ErrUnknownProfile = errors.New("unknown profile: not defined in the configuration file")

	// ErrConfigNotFound is returned when the configuration file does
	// not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
