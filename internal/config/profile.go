package config

import (
	"fmt"
	"time"
)

// Profile holds a partial settings override. Every field is optional:
// nil or empty means "keep the current value". Pointer fields let a
// profile explicitly turn a boolean off, which a plain bool could not
// express.
type Profile struct {
	// HideSponsored toggles the sponsored-post classifier checks.
	HideSponsored *bool `yaml:"hideSponsored,omitempty"`

	// HideSuggested toggles the suggested-content classifier checks.
	HideSuggested *bool `yaml:"hideSuggested,omitempty"`

	// Keywords replaces the keyword list when non-empty.
	Keywords []string `yaml:"keywords,omitempty"`

	// Whitelist replaces the protected source names when non-empty.
	Whitelist []string `yaml:"whitelist,omitempty"`

	// AutoUnfollow toggles automation hand-off for qualifying posts.
	AutoUnfollow *bool `yaml:"autoUnfollow,omitempty"`

	// DryRun toggles queue-instead-of-execute mode.
	DryRun *bool `yaml:"dryRun,omitempty"`

	// FriendProtection toggles the personal-contact guard.
	FriendProtection *bool `yaml:"friendProtection,omitempty"`

	// HighlightOnly toggles outline-instead-of-hide review mode.
	HighlightOnly *bool `yaml:"highlightOnly,omitempty"`

	// Logging toggles the session journal.
	Logging *bool `yaml:"logging,omitempty"`

	// ScanInterval overrides the scan cadence when non-empty. The value
	// uses Go duration syntax, e.g. "2s" or "1500ms".
	ScanInterval string `yaml:"scanInterval,omitempty"`

	// HistoryDir overrides the action history directory when non-empty.
	HistoryDir string `yaml:"historyDir,omitempty"`

	// SaveHistory toggles recording automation outcomes on disk.
	SaveHistory *bool `yaml:"saveHistory,omitempty"`
}

// File represents the structure of the .feedcleaner configuration file.
type File struct {
	// Settings is the base override applied on top of the built-in
	// defaults for every run.
	Settings Profile `yaml:"settings,omitempty"`

	// Profiles maps profile names to further overrides selected with
	// the --profile flag, e.g. an "aggressive" profile that enables
	// auto-unfollow and a "review" profile that only highlights.
	Profiles map[string]Profile `yaml:"profiles,omitempty"`
}

// Apply merges the file's base settings into s. Unset fields keep their
// current values, so loading a sparse file over defaults behaves as
// documented: missing keys keep defaults.
func (cf *File) Apply(s *Settings) error {
	return applyProfile(cf.Settings, s)
}

// ApplyProfile merges the named profile into s on top of whatever is
// already there. It returns ErrUnknownProfile for names the file does
// not define.
func (cf *File) ApplyProfile(name string, s *Settings) error {
	p, ok := cf.Profiles[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return applyProfile(p, s)
}

// applyProfile copies every set field of p onto s.
func applyProfile(p Profile, s *Settings) error {
	if p.HideSponsored != nil {
		s.HideSponsored = *p.HideSponsored
	}
	if p.HideSuggested != nil {
		s.HideSuggested = *p.HideSuggested
	}
	if len(p.Keywords) > 0 {
		s.Keywords = append([]string(nil), p.Keywords...)
	}
	if len(p.Whitelist) > 0 {
		s.Whitelist = append([]string(nil), p.Whitelist...)
	}
	if p.AutoUnfollow != nil {
		s.AutoUnfollow = *p.AutoUnfollow
	}
	if p.DryRun != nil {
		s.DryRun = *p.DryRun
	}
	if p.FriendProtection != nil {
		s.FriendProtection = *p.FriendProtection
	}
	if p.HighlightOnly != nil {
		s.HighlightOnly = *p.HighlightOnly
	}
	if p.Logging != nil {
		s.Logging = *p.Logging
	}
	if p.ScanInterval != "" {
		d, err := time.ParseDuration(p.ScanInterval)
		if err != nil {
			return fmt.Errorf("parse scan interval: %w", err)
		}
		s.ScanInterval = d
	}
	if p.HistoryDir != "" {
		s.HistoryDir = p.HistoryDir
	}
	if p.SaveHistory != nil {
		s.SaveHistory = *p.SaveHistory
	}
	return nil
}

// snapshot converts live settings back into a fully-populated Profile
// for saving. Slices are copied so the snapshot stays stable if the
// caller keeps mutating the settings.
func snapshot(s Settings) Profile {
	return Profile{
		HideSponsored:    boolPtr(s.HideSponsored),
		HideSuggested:    boolPtr(s.HideSuggested),
		Keywords:         append([]string(nil), s.Keywords...),
		Whitelist:        append([]string(nil), s.Whitelist...),
		AutoUnfollow:     boolPtr(s.AutoUnfollow),
		DryRun:           boolPtr(s.DryRun),
		FriendProtection: boolPtr(s.FriendProtection),
		HighlightOnly:    boolPtr(s.HighlightOnly),
		Logging:          boolPtr(s.Logging),
		ScanInterval:     s.ScanInterval.String(),
		HistoryDir:       s.HistoryDir,
		SaveHistory:      boolPtr(s.SaveHistory),
	}
}

func boolPtr(b bool) *bool { return &b }
