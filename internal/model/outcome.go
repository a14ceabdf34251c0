package model

// Outcome is the terminal result of one unfollow automation attempt.
// Every call into the automation engine ends in exactly one outcome;
// faults never escape as errors, they are reported as OutcomeFailed.
type Outcome int

const (
	// OutcomeUnfollowed indicates the automation completed and the source
	// was unfollowed.
	OutcomeUnfollowed Outcome = iota

	// OutcomeQueued indicates dry-run mode was active: the target was
	// appended to the pending queue and the post hidden, nothing else.
	OutcomeQueued

	// OutcomeProtected indicates friend protection stopped the automation.
	// The post is hidden and the protected counter incremented.
	OutcomeProtected

	// OutcomeWhitelisted indicates the source name is whitelisted. The post
	// is hidden with an annotation; no other counters change.
	OutcomeWhitelisted

	// OutcomeAlreadyHandled indicates the source link was already acted on
	// this session. The post is hidden; no counters change.
	OutcomeAlreadyHandled

	// OutcomeFailed indicates a terminal automation failure. The failure
	// signal is recorded in the executed history and the errors counter
	// incremented.
	OutcomeFailed

	// OutcomeMissingSource indicates the post had no usable source and
	// automation was rejected before any interaction.
	OutcomeMissingSource
)

// String returns a human-readable representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeUnfollowed:
		return "unfollowed"
	case OutcomeQueued:
		return "queued"
	case OutcomeProtected:
		return "protected"
	case OutcomeWhitelisted:
		return "whitelisted"
	case OutcomeAlreadyHandled:
		return "already_handled"
	case OutcomeFailed:
		return "failed"
	case OutcomeMissingSource:
		return "missing_source"
	default:
		return "unknown"
	}
}
