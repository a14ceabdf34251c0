package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/export"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/feed"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/model"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/notify"
)

// defaultAnalyzeConcurrency bounds parallel page parsing. Analysis is
// CPU-light; the bound exists so a glob of hundreds of saved pages does
// not open them all at once.
const defaultAnalyzeConcurrency = 4

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <page.html> [more pages...]",
		Short: "Report what a clean pass would decide, without side effects",
		Long: `Analyze classifies every post on the given pages and reports the result
without hiding anything, claiming anything, or touching counters. The
rows it produces are what batch collection feeds on.

Examples:
  # Terminal summary of one page
  feedcleaner analyze feed.html

  # JSON rows for several saved pages
  feedcleaner analyze page1.html page2.html --json -o rows.json

  # Shareable markdown report with a reason distribution chart
  feedcleaner analyze feed.html --markdown -o report.md`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAnalyzeCmd,
	}

	addRuleFlags(cmd)
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON rows (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output a Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write the report to this path (default: stdout)")
	cmd.Flags().Bool("show-none", false,
		"Include posts that matched no rule in the plain report")
	cmd.Flags().Int("concurrency", defaultAnalyzeConcurrency,
		"Number of pages analyzed in parallel")

	return cmd
}

// runAnalyzeCmd executes the analyze command.
func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	settings, err := buildSettings(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(settings.Verbose)

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	asMarkdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if asJSON && asMarkdown {
		return errors.New("--json and --markdown are mutually exclusive")
	}

	concurrency, err := cmd.Flags().GetInt("concurrency")
	if err != nil {
		return err
	}
	if concurrency < 1 {
		concurrency = 1
	}

	ctx, cancel := signalContext()
	defer cancel()

	// Pages are independent, so they parse and classify in parallel;
	// results keep argument order so reports are reproducible.
	results := make([][]model.AnalysisRow, len(args))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range args {
		g.Go(func() error {
			doc, err := loadDocument(path)
			if err != nil {
				return err
			}
			scanner := feed.NewScanner(doc, settings, model.NewStats(), feed.WithLogger(logger))
			rows, err := scanner.Analyze(gctx)
			if err != nil {
				return fmt.Errorf("analyze %s: %w", path, err)
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var rows []model.AnalysisRow
	for _, r := range results {
		rows = append(rows, r...)
	}
	logger.Info("analysis complete", "pages", len(args), "posts", len(rows))

	out, closeOut, err := openOutput(cmd)
	if err != nil {
		return err
	}
	defer closeOut()

	showNone, err := cmd.Flags().GetBool("show-none")
	if err != nil {
		return err
	}

	var writer export.Writer
	switch {
	case asJSON:
		writer = export.NewJSONWriter(out, export.WithPrettyPrint())
	case asMarkdown:
		writer = export.NewMarkdownWriter(out)
	default:
		writer = export.NewPlainWriter(out, export.WithShowNone(showNone))
	}

	exporter := export.NewExporter(writer,
		export.WithNotifier(notify.NewLogNotifier(logger)),
		export.WithLogger(logger))
	if !exporter.Analysis(rows) {
		return errors.New("analysis export failed")
	}

	return nil
}

// openOutput resolves the --output flag into a writer and its cleanup.
func openOutput(cmd *cobra.Command) (io.Writer, func(), error) {
	path, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil, nil, err
	}
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() {}, nil
	}

	f, err := os.Create(path) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create report file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
