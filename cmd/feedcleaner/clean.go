package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/export"
)

// NewCleanCmd creates the clean command.
func NewCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean <page.html>",
		Short: "Run one classification pass over a feed page",
		Long: `Clean parses the feed page, classifies every post, hides or highlights
the matches, and writes the cleaned page back out.

With --auto-unfollow and --dry-run=false, qualifying sources are
unfollowed through the page's own action menus instead of only hidden.
Friend protection and the whitelist apply either way.

Examples:
  # Hide sponsored and suggested posts, write the result next to the input
  feedcleaner clean feed.html -o cleaned.html

  # Add keyword rules on top of the defaults
  feedcleaner clean feed.html -k crypto -k giveaway -o cleaned.html

  # Review what would be hidden without hiding anything
  feedcleaner clean feed.html --highlight-only -o review.html

  # Unfollow for real, keeping an audit trail
  feedcleaner clean feed.html --auto-unfollow --dry-run=false --save-history`,
		Args: cobra.ExactArgs(1),
		RunE: runCleanCmd,
	}

	addRuleFlags(cmd)
	cmd.Flags().StringP("output", "o", "",
		"Write the cleaned page to this path (default: stdout)")
	cmd.Flags().String("journal", "",
		"Export the classification journal as JSON to this path")

	return cmd
}

// runCleanCmd executes the clean command.
func runCleanCmd(cmd *cobra.Command, args []string) error {
	settings, err := buildSettings(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(settings.Verbose)

	ctx, cancel := signalContext()
	defer cancel()

	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	sess, err := newSession(doc, settings, logger)
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.scanner.Scan(ctx); err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if err := writeDocument(doc, output, cmd.OutOrStdout()); err != nil {
		return err
	}

	journalPath, err := cmd.Flags().GetString("journal")
	if err != nil {
		return err
	}
	if journalPath != "" {
		exportJournal(sess, journalPath, logger)
	}

	printStats(cmd, sess.stats.Snapshot())
	return nil
}

// exportJournal writes the session journal as JSON. Export failures are
// surfaced through the notifier and logged; they never fail the command,
// because the cleaned page was already written.
func exportJournal(sess *session, path string, logger *slog.Logger) {
	f, err := os.Create(path) //nolint:gosec // User-provided export path is intentional
	if err != nil {
		logger.Error("journal export failed", "path", path, "error", err)
		return
	}
	defer func() { _ = f.Close() }()

	exporter := export.NewExporter(
		export.NewJSONWriter(f, export.WithPrettyPrint()),
		export.WithNotifier(sess.notifier),
	)
	exporter.Log(sess.journal.Entries())
}
