package export

import (
	"io"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/model"
)

// Writer defines the interface for exporting session snapshots.
// Implementations write the same data in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// WriteLog outputs the journal entries.
	// Returns the number of bytes written and any error encountered.
	WriteLog(entries []model.LogEntry) (int, error)

	// WriteAnalysis outputs the feed analysis rows.
	WriteAnalysis(rows []model.AnalysisRow) (int, error)

	// WriteStats outputs the session counters.
	WriteStats(stats model.StatsSnapshot) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write snapshots, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// Interface availability check.
var _ Writer = (*MultiWriter)(nil)

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteLog outputs the journal entries to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) WriteLog(entries []model.LogEntry) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteLog(entries)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteAnalysis outputs the analysis rows to all configured Writers.
func (m *MultiWriter) WriteAnalysis(rows []model.AnalysisRow) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteAnalysis(rows)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteStats outputs the counters to all configured Writers.
func (m *MultiWriter) WriteStats(stats model.StatsSnapshot) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteStats(stats)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for export writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// reasonCounts tallies analysis rows by classification reason.
// The returned order is fixed so tables and charts render stably.
func reasonCounts(rows []model.AnalysisRow) map[model.Reason]int {
	counts := make(map[model.Reason]int, 4)
	for _, row := range rows {
		counts[row.Reason]++
	}
	return counts
}

// reasonOrder is the display order for reason breakdowns, most
// actionable first.
var reasonOrder = []model.Reason{
	model.ReasonSponsored,
	model.ReasonSuggested,
	model.ReasonKeyword,
	model.ReasonNone,
}
