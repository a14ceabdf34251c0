package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/model"
)

// PlainWriter outputs human-readable text snapshots.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type PlainWriter struct {
	baseWriter

	// showNone controls whether analysis rows classified as none are shown.
	showNone bool
}

// Interface availability check.
var _ Writer = (*PlainWriter)(nil)

// PlainWriterOption configures a PlainWriter.
type PlainWriterOption func(*PlainWriter)

// WithShowNone configures the writer to include posts that matched no rule.
func WithShowNone(show bool) PlainWriterOption {
	return func(w *PlainWriter) {
		w.showNone = show
	}
}

// NewPlainWriter creates a PlainWriter that outputs to the given writer.
func NewPlainWriter(output io.Writer, opts ...PlainWriterOption) *PlainWriter {
	w := &PlainWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteLog outputs the journal entries in human-readable format.
func (w *PlainWriter) WriteLog(entries []model.LogEntry) (int, error) {
	var sb strings.Builder

	writeHeader(&sb, "CLASSIFICATION JOURNAL")
	if len(entries) == 0 {
		sb.WriteString("  No classification events recorded\n\n")
		return w.output.Write([]byte(sb.String()))
	}

	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("  %s  %-10s %s\n",
			e.Timestamp.Format("15:04:05"), e.Reason.String(), describeActor(e.ActorName, e.IsFriend)))
		if e.Excerpt != "" {
			sb.WriteString(fmt.Sprintf("            %s\n", e.Excerpt))
		}
	}
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

// WriteAnalysis outputs the analysis rows in human-readable format.
func (w *PlainWriter) WriteAnalysis(rows []model.AnalysisRow) (int, error) {
	var sb strings.Builder

	writeHeader(&sb, "FEED ANALYSIS")

	counts := reasonCounts(rows)
	for _, r := range reasonOrder {
		sb.WriteString(fmt.Sprintf("  %-10s %d\n", strings.ToUpper(r.String())+":", counts[r]))
	}
	sb.WriteString(fmt.Sprintf("\n  TOTAL:     %d posts\n\n", len(rows)))

	shown := 0
	for _, row := range rows {
		if row.Reason == model.ReasonNone && !w.showNone {
			continue
		}
		shown++
		state := ""
		if row.Hidden {
			state = " [hidden]"
		}
		sb.WriteString(fmt.Sprintf("  [%s] %s%s\n",
			row.Reason.String(), describeActor(row.Source.Name, row.Source.IsFriend), state))
		if row.Excerpt != "" {
			sb.WriteString(fmt.Sprintf("      %s\n", row.Excerpt))
		}
	}
	if shown == 0 {
		sb.WriteString("  No posts matched any rule\n")
	}
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

// WriteStats outputs the session counters in human-readable format.
func (w *PlainWriter) WriteStats(stats model.StatsSnapshot) (int, error) {
	var sb strings.Builder

	writeHeader(&sb, "SESSION STATS")
	sb.WriteString(fmt.Sprintf("  Processed:  %d\n", stats.Processed))
	sb.WriteString(fmt.Sprintf("  Unfollowed: %d\n", stats.Unfollowed))
	sb.WriteString(fmt.Sprintf("  Hidden:     %d\n", stats.Hidden))
	sb.WriteString(fmt.Sprintf("  Protected:  %d\n", stats.Protected))
	sb.WriteString(fmt.Sprintf("  Errors:     %d\n", stats.Errors))
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes a section banner.
func writeHeader(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}

// describeActor renders a source name with its friend hint, falling back
// to a placeholder when extraction produced nothing.
func describeActor(name string, isFriend bool) string {
	if name == "" {
		return "(unknown source)"
	}
	if isFriend {
		return name + " (friend)"
	}
	return name
}
