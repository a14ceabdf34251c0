package notify

import (
	"log/slog"
	"sync"
	"time"
)

// Suggested display durations. Callers pick per event: routine outcomes
// disappear quickly, failures stay long enough to be read.
const (
	// ShortDuration suits routine confirmations.
	ShortDuration = 2 * time.Second

	// DefaultDuration suits most outcome notifications.
	DefaultDuration = 3 * time.Second

	// LongDuration suits failures and warnings the user should read.
	LongDuration = 6 * time.Second
)

// Severity classifies a notification for presentation.
type Severity int

// Severity levels, ordered from least to most attention-demanding.
const (
	// Info is a neutral status message.
	Info Severity = iota

	// Success reports a completed action.
	Success

	// Warning reports a refused or skipped action.
	Warning

	// Error reports a failed action.
	Error
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Notifier receives user-facing notifications from the pipeline.
// Implementations must not block and must not panic: the pipeline calls
// Notify inline on every protection event, queue event, and automation
// outcome.
type Notifier interface {
	// Notify delivers one message. The duration is a display hint;
	// implementations without a visual surface may ignore it.
	Notify(message string, severity Severity, duration time.Duration)
}

// LogNotifier writes notifications to a structured logger. It is the
// default collaborator for command-line runs, where there is no toast
// surface to render into.
type LogNotifier struct {
	logger *slog.Logger
}

// Interface availability check.
var _ Notifier = (*LogNotifier)(nil)

// NewLogNotifier creates a LogNotifier. If logger is nil, slog.Default()
// is used.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// Notify logs the message at a level mapped from the severity.
func (n *LogNotifier) Notify(message string, severity Severity, duration time.Duration) {
	switch severity {
	case Warning:
		n.logger.Warn(message, "severity", severity.String())
	case Error:
		n.logger.Error(message, "severity", severity.String())
	default:
		n.logger.Info(message, "severity", severity.String())
	}
}

// Notification is one recorded notification.
type Notification struct {
	// Message is the user-facing text.
	Message string

	// Severity is the presentation class.
	Severity Severity

	// Duration is the suggested display time.
	Duration time.Duration
}

// MemoryNotifier records notifications in memory. Used by tests to
// assert on pipeline behavior and by watch mode to render a summary.
type MemoryNotifier struct {
	mu            sync.Mutex
	notifications []Notification
}

// Interface availability check.
var _ Notifier = (*MemoryNotifier)(nil)

// NewMemoryNotifier creates an empty MemoryNotifier.
func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{}
}

// Notify records the notification.
func (n *MemoryNotifier) Notify(message string, severity Severity, duration time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = append(n.notifications, Notification{
		Message:  message,
		Severity: severity,
		Duration: duration,
	})
}

// Notifications returns a copy of everything recorded so far, in
// delivery order.
func (n *MemoryNotifier) Notifications() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, len(n.notifications))
	copy(out, n.notifications)
	return out
}

// Reset discards everything recorded so far.
func (n *MemoryNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifications = nil
}
