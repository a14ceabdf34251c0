package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/config"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/history"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/model"
)

// defaultHistoryLimit bounds the listing so a long-lived history stays
// readable in a terminal.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Review recorded automation outcomes",
		Long: `History lists the automation outcomes recorded by past runs with
--save-history: who was unfollowed, when, why, and how failures ended.

The history is an audit log only; it never influences what the cleaner
does next. Session deduplication in particular resets with every run.

Examples:
  # The most recent actions
  feedcleaner history

  # Everything recorded against one source
  feedcleaner history --source https://www.facebook.com/acmeads

  # Aggregate counts
  feedcleaner history --summary`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", defaultHistoryLimit,
		"Maximum number of actions to list (0 lists everything)")
	cmd.Flags().String("source", "",
		"List only actions against this canonical source link")
	cmd.Flags().Bool("summary", false,
		"Print aggregate counts instead of individual actions")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON")
	cmd.Flags().String("history-dir", "",
		"History database directory (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	dir, err := cmd.Flags().GetString("history-dir")
	if err != nil {
		return err
	}
	if dir == "" {
		dir = config.XDGDataDir()
	}

	// Reading history must not create an empty database: an empty
	// listing would then be indistinguishable from a missing one.
	store, err := history.Open(dir, history.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		return fmt.Errorf("no history recorded yet: %w", err)
	}
	defer func() { _ = store.Close() }()

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	summary, err := cmd.Flags().GetBool("summary")
	if err != nil {
		return err
	}
	if summary {
		return printSummary(cmd, store, asJSON)
	}

	source, err := cmd.Flags().GetString("source")
	if err != nil {
		return err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	var targets []model.Target
	if source != "" {
		targets, err = store.BySource(cmd.Context(), source)
	} else {
		targets, err = store.Recent(cmd.Context(), limit)
	}
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(cmd, targets)
	}

	if len(targets) == 0 {
		cmd.Println("No actions recorded")
		return nil
	}
	for _, t := range targets {
		cmd.Printf("%s  %-8s %-10s %s  %s%s\n",
			t.Timestamp.Format("2006-01-02 15:04:05"),
			actionStatus(t),
			t.Reason.String(),
			t.Source.Name,
			t.Source.Link,
			actionDetail(t),
		)
	}
	return nil
}

// printSummary renders the aggregate view.
func printSummary(cmd *cobra.Command, store *history.Store, asJSON bool) error {
	s, err := store.Summarize(cmd.Context())
	if err != nil {
		return err
	}

	if asJSON {
		return printJSON(cmd, s)
	}

	cmd.Printf("Total actions: %d\n", s.Total)
	cmd.Printf("  Succeeded:   %d\n", s.Succeeded)
	cmd.Printf("  Failed:      %d\n", s.Failed)
	cmd.Println("By reason:")
	for reason, count := range s.ByReason {
		cmd.Printf("  %-10s %d\n", reason+":", count)
	}
	return nil
}

// printJSON pretty-prints v to the command's output stream.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(data))
	return nil
}

// actionStatus renders one target's terminal state.
func actionStatus(t model.Target) string {
	switch {
	case t.Success:
		return "ok"
	case t.DryRun:
		return "queued"
	default:
		return "failed"
	}
}

// actionDetail appends the failure signal when there is one.
func actionDetail(t model.Target) string {
	if t.Signal == "" {
		return ""
	}
	return "  (" + t.Signal + ")"
}
