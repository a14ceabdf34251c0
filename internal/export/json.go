package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/model"
)

// JSONWriter outputs snapshots in JSON format.
// This format is designed for tool integration and programmatic processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because:
// 1. It's part of the standard library (no extra dependencies)
// 2. It's sufficient for our needs
// 3. It provides consistent behavior across Go versions
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// Interface availability check.
var _ Writer = (*JSONWriter)(nil)

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// logEnvelope wraps journal entries with export metadata.
//
// Design decision: We wrap the entries rather than emitting a bare array
// because downstream tools need to distinguish journal exports from
// analysis exports, and the timestamp records when the snapshot was
// taken rather than when it is read.
type logEnvelope struct {
	ExportedAt time.Time        `json:"exported_at"`
	Count      int              `json:"count"`
	Entries    []model.LogEntry `json:"entries"`
}

// analysisEnvelope wraps analysis rows with export metadata.
type analysisEnvelope struct {
	ExportedAt time.Time           `json:"exported_at"`
	Count      int                 `json:"count"`
	Rows       []model.AnalysisRow `json:"rows"`
}

// statsEnvelope wraps the counters with export metadata.
type statsEnvelope struct {
	ExportedAt time.Time           `json:"exported_at"`
	Stats      model.StatsSnapshot `json:"stats"`
}

// WriteLog outputs the journal entries in JSON format.
func (w *JSONWriter) WriteLog(entries []model.LogEntry) (int, error) {
	return w.writeJSON(logEnvelope{
		ExportedAt: time.Now(),
		Count:      len(entries),
		Entries:    entries,
	})
}

// WriteAnalysis outputs the analysis rows in JSON format.
func (w *JSONWriter) WriteAnalysis(rows []model.AnalysisRow) (int, error) {
	return w.writeJSON(analysisEnvelope{
		ExportedAt: time.Now(),
		Count:      len(rows),
		Rows:       rows,
	})
}

// WriteStats outputs the counters in JSON format.
func (w *JSONWriter) WriteStats(stats model.StatsSnapshot) (int, error) {
	return w.writeJSON(statsEnvelope{
		ExportedAt: time.Now(),
		Stats:      stats,
	})
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
