package export

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/model"
)

// MarkdownWriter outputs snapshots in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// Interface availability check.
var _ Writer = (*MarkdownWriter)(nil)

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteLog outputs the journal entries in Markdown format.
func (w *MarkdownWriter) WriteLog(entries []model.LogEntry) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Classification Journal")
	md.PlainText("")
	md.PlainTextf("%d entries, exported %s", len(entries), time.Now().Format("2006-01-02 15:04:05 MST"))
	md.PlainText("")

	if len(entries) == 0 {
		md.PlainText("No classification events recorded.")
		md.PlainText("")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.Timestamp.Format("15:04:05"),
			e.Reason.String(),
			e.ActorName,
			friendMark(e.IsFriend),
			e.Excerpt,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Time", "Reason", "Source", "Friend", "Excerpt"},
		Rows:   rows,
	})
	md.PlainText("")

	return len(md.String()), md.Build()
}

// WriteAnalysis outputs the analysis rows in Markdown format, with a
// reason breakdown table and a pie chart ahead of the per-post rows.
func (w *MarkdownWriter) WriteAnalysis(rows []model.AnalysisRow) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Feed Analysis")
	md.PlainText("")
	md.PlainTextf("%d posts analyzed, exported %s", len(rows), time.Now().Format("2006-01-02 15:04:05 MST"))
	md.PlainText("")

	w.writeBreakdown(md, rows)
	w.writeRows(md, rows)

	return len(md.String()), md.Build()
}

// WriteStats outputs the session counters in Markdown format.
func (w *MarkdownWriter) WriteStats(stats model.StatsSnapshot) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Session Stats")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Counter", "Value"},
		Rows: [][]string{
			{"Processed", strconv.Itoa(stats.Processed)},
			{"Unfollowed", strconv.Itoa(stats.Unfollowed)},
			{"Hidden", strconv.Itoa(stats.Hidden)},
			{"Protected", strconv.Itoa(stats.Protected)},
			{"Errors", strconv.Itoa(stats.Errors)},
		},
	})
	md.PlainText("")

	return len(md.String()), md.Build()
}

// writeBreakdown writes the reason summary table and distribution chart.
func (w *MarkdownWriter) writeBreakdown(md *markdown.Markdown, rows []model.AnalysisRow) {
	md.H2("Reason Breakdown")
	md.PlainText("")

	counts := reasonCounts(rows)
	table := make([][]string, 0, len(reasonOrder))
	for _, r := range reasonOrder {
		table = append(table, []string{r.String(), strconv.Itoa(counts[r])})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Reason", "Posts"},
		Rows:   table,
	})
	md.PlainText("")

	if len(rows) > 0 {
		w.writePieChart(md, counts)
	}
}

// writePieChart writes a mermaid pie chart of the reason distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, counts map[model.Reason]int) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Classification Distribution"),
		piechart.WithShowData(true),
	)

	for _, r := range reasonOrder {
		if counts[r] > 0 {
			chart.LabelAndIntValue(r.String(), uint64(counts[r]))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeRows writes the per-post analysis table.
func (w *MarkdownWriter) writeRows(md *markdown.Markdown, rows []model.AnalysisRow) {
	md.H2("Posts")
	md.PlainText("")

	if len(rows) == 0 {
		md.PlainText("No posts found.")
		md.PlainText("")
		return
	}

	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		table = append(table, []string{
			row.Reason.String(),
			row.Source.Name,
			friendMark(row.Source.IsFriend),
			hiddenMark(row.Hidden),
			row.Excerpt,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Reason", "Source", "Friend", "Hidden", "Excerpt"},
		Rows:   table,
	})
	md.PlainText("")
}

// friendMark renders the friend heuristic for table cells.
func friendMark(isFriend bool) string {
	if isFriend {
		return "yes"
	}
	return ""
}

// hiddenMark renders the visual state for table cells.
func hiddenMark(hidden bool) string {
	if hidden {
		return "yes"
	}
	return ""
}
