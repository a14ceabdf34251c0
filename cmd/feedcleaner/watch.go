package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/dom"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/schedule"
)

// defaultPollInterval is how often watch mode checks the page file for
// changes. Polling is separate from the scan cadence: a rewrite of the
// file mutates the document, and the mutation signal is what triggers
// the rescan.
const defaultPollInterval = time.Second

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <page.html>",
		Short: "Continuously re-scan a feed page as it changes",
		Long: `Watch keeps scanning the feed page on a fixed cadence and whenever the
page file is rewritten, the way a feed keeps mutating under a live
browser session. New posts are classified and hidden as they appear;
already-processed posts are never handled twice.

Watch runs until interrupted. On exit it writes the cleaned page when
--output is set and prints the session counters.

Examples:
  # Watch with the default two-second cadence
  feedcleaner watch feed.html -o cleaned.html

  # Slow cadence, unfollow matches as they appear
  feedcleaner watch feed.html --interval 10s --auto-unfollow --dry-run=false`,
		Args: cobra.ExactArgs(1),
		RunE: runWatchCmd,
	}

	addRuleFlags(cmd)
	cmd.Flags().StringP("output", "o", "",
		"Write the cleaned page to this path on exit")
	cmd.Flags().Duration("poll", defaultPollInterval,
		"How often to check the page file for rewrites")

	return cmd
}

// runWatchCmd executes the watch command.
func runWatchCmd(cmd *cobra.Command, args []string) error {
	settings, err := buildSettings(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(settings.Verbose)

	ctx, cancel := signalContext()
	defer cancel()

	path := args[0]
	doc, err := loadDocument(path)
	if err != nil {
		return err
	}

	sess, err := newSession(doc, settings, logger)
	if err != nil {
		return err
	}
	defer sess.Close()

	scheduler := schedule.NewScheduler(doc, settings.ScanInterval, sess.scanner.Scan,
		schedule.WithLogger(logger))

	poll, err := cmd.Flags().GetDuration("poll")
	if err != nil {
		return err
	}
	go pollFile(ctx, doc, path, poll, logger)

	// Run returns the context error when interrupted; that is the
	// normal way a watch session ends.
	if err := scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

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

// pollFile watches the page file's modification time and replaces the
// document body when the file is rewritten. The structural mutation
// notifies the scheduler, which rescans; posts that survived the
// rewrite with their markers intact are not reprocessed.
func pollFile(ctx context.Context, doc *dom.Document, path string, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastMod time.Time
	if info, err := os.Stat(path); err == nil {
		lastMod = info.ModTime()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		info, err := os.Stat(path)
		if err != nil {
			logger.Warn("page file unavailable", "path", path, "error", err)
			continue
		}
		if !info.ModTime().After(lastMod) {
			continue
		}
		lastMod = info.ModTime()

		if err := refreshDocument(doc, path); err != nil {
			logger.Error("page refresh failed", "path", path, "error", err)
			continue
		}
		logger.Debug("page refreshed", "path", path, "modified", lastMod)
	}
}

// refreshDocument re-reads the page and swaps the fresh body content
// into the live document under one mutation.
func refreshDocument(doc *dom.Document, path string) error {
	f, err := os.Open(path) //nolint:gosec // Watched page path comes from the user
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	fresh, err := dom.Parse(f)
	if err != nil {
		return err
	}

	freshBody := fresh.Root().Find(dom.ByTag("body"))
	if freshBody == nil {
		return nil
	}

	doc.Mutate(func() {
		body := doc.Root().Find(dom.ByTag("body"))
		if body == nil {
			return
		}
		for _, c := range body.Children() {
			c.Detach()
		}
		for _, c := range freshBody.Children() {
			c.Detach()
			body.AppendChild(c)
		}
	})

	return nil
}
