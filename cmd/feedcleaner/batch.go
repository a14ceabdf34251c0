package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/queue"
)

// NewBatchCmd creates the batch command.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <page.html>",
		Short: "Collect unfollow targets from a page and execute them",
		Long: `Batch analyzes the page, rebuilds the pending queue from the qualifying
rows (deduplicated by source name, whitelist and friend protection
applied), and then unfollows each pending target against the posts
currently visible on the page.

Execution requires --dry-run=false; with dry run active the queue is
collected and listed but nothing runs. Targets whose post is no longer
on screen are recorded as failures without any interaction.

Examples:
  # See what a batch would act on
  feedcleaner batch feed.html --collect-only

  # Execute the batch and keep an audit trail
  feedcleaner batch feed.html --dry-run=false --save-history -o cleaned.html`,
		Args: cobra.ExactArgs(1),
		RunE: runBatchCmd,
	}

	addRuleFlags(cmd)
	cmd.Flags().StringP("output", "o", "",
		"Write the page after execution to this path")
	cmd.Flags().Bool("collect-only", false,
		"Rebuild and list the pending queue without executing it")

	return cmd
}

// runBatchCmd executes the batch command.
func runBatchCmd(cmd *cobra.Command, args []string) error {
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

	rows, err := sess.scanner.Analyze(ctx)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	collected := sess.store.Collect(rows, settings)
	cmd.Printf("Collected %d pending target(s) from %d post(s)\n", collected, len(rows))

	collectOnly, err := cmd.Flags().GetBool("collect-only")
	if err != nil {
		return err
	}
	if collectOnly {
		for _, t := range sess.store.Pending() {
			cmd.Printf("  [%s] %s  %s\n", t.Reason.String(), t.Source.Name, t.Source.Link)
		}
		return nil
	}

	runner := queue.NewRunner(doc, settings, sess.store, sess.scanner, sess.engine,
		queue.WithNotifier(sess.notifier),
		queue.WithLogger(logger))

	summary, err := runner.ExecuteBatch(ctx)
	if err != nil {
		return err
	}
	cmd.Printf("Batch complete: %d attempted, %d unfollowed, %d failed, %d missing\n",
		summary.Attempted, summary.Unfollowed, summary.Failed, summary.Missing)

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if output != "" {
		if err := writeDocument(doc, output, cmd.OutOrStdout()); err != nil {
			return err
		}
	}

	printStats(cmd, sess.stats.Snapshot())
	return nil
}
