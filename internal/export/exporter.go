package export

import (
	"fmt"
	"log/slog"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/model"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/notify"
)

// Exporter runs a Writer on behalf of the pipeline. Export failures are
// isolated here: they are logged and surfaced through the notification
// collaborator, and none of the methods return an error, so a broken
// destination can never disturb scanning or automation.
type Exporter struct {
	writer   Writer
	notifier notify.Notifier
	logger   *slog.Logger
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithNotifier registers the user-facing notification channel.
func WithNotifier(n notify.Notifier) ExporterOption {
	return func(e *Exporter) {
		e.notifier = n
	}
}

// WithLogger sets the logger used for export diagnostics.
func WithLogger(logger *slog.Logger) ExporterOption {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// NewExporter creates an Exporter delegating to the given Writer.
func NewExporter(w Writer, opts ...ExporterOption) *Exporter {
	e := &Exporter{
		writer: w,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Log exports the journal entries. Returns true on success.
func (e *Exporter) Log(entries []model.LogEntry) bool {
	n, err := e.writer.WriteLog(entries)
	return e.report("journal", n, err)
}

// Analysis exports the analysis rows. Returns true on success.
func (e *Exporter) Analysis(rows []model.AnalysisRow) bool {
	n, err := e.writer.WriteAnalysis(rows)
	return e.report("analysis", n, err)
}

// Stats exports the session counters. Returns true on success.
func (e *Exporter) Stats(stats model.StatsSnapshot) bool {
	n, err := e.writer.WriteStats(stats)
	return e.report("stats", n, err)
}

// report logs the outcome and notifies the user on failure.
func (e *Exporter) report(what string, n int, err error) bool {
	if err != nil {
		e.logger.Error("export failed", "what", what, "error", err)
		if e.notifier != nil {
			e.notifier.Notify(fmt.Sprintf("Export of %s failed: %v", what, err),
				notify.Error, notify.LongDuration)
		}
		return false
	}
	e.logger.Debug("export complete", "what", what, "bytes", n)
	return true
}
