package model

import "time"

// Target is one automation candidate or result record. Targets are created
// by the automation engine or by batch collection from analysis rows, and
// are never mutated in place: a new record replaces the old one.
type Target struct {
	// Source identifies who the automation acts against.
	Source Source `json:"source"`

	// Reason is the classification that made the post a candidate.
	Reason Reason `json:"reason"`

	// DryRun is true when the target was queued rather than executed.
	DryRun bool `json:"dry_run"`

	// Success is true when the automation completed. Only meaningful on
	// executed records.
	Success bool `json:"success,omitempty"`

	// Error holds the failure message for unsuccessful executions.
	Error string `json:"error,omitempty"`

	// Signal names the failure class (menu_button_not_found and friends)
	// for unsuccessful executions.
	Signal string `json:"signal,omitempty"`

	// Timestamp records when the target was created or executed.
	Timestamp time.Time `json:"timestamp"`
}

// NewPendingTarget creates a dry-run target for the pending queue.
func NewPendingTarget(source Source, reason Reason) Target {
	return Target{
		Source:    source,
		Reason:    reason,
		DryRun:    true,
		Timestamp: time.Now(),
	}
}

// NewExecutedTarget creates a successful executed record.
func NewExecutedTarget(source Source, reason Reason) Target {
	return Target{
		Source:    source,
		Reason:    reason,
		Success:   true,
		Timestamp: time.Now(),
	}
}

// NewFailedTarget creates a failed executed record carrying the failure
// signal and message.
func NewFailedTarget(source Source, reason Reason, signal, message string) Target {
	return Target{
		Source:    source,
		Reason:    reason,
		Signal:    signal,
		Error:     message,
		Timestamp: time.Now(),
	}
}
