// Package main provides the entry point for the feedcleaner CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for feedcleaner.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedcleaner",
		Short: "Classify and clean up a social-feed page",
		Long: `feedcleaner inspects an HTML social-feed page, classifies every post
against a rule set (sponsored indicators, suggested-content labels, and
user keywords), and hides the matches. With auto-unfollow enabled it
also drives the page's own action menus to unfollow the sources behind
unwanted posts, with friend protection, a whitelist, session
deduplication, and a dry-run queue.

Dry run is on by default: qualifying sources are queued, never acted on,
until you pass --dry-run=false.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .feedcleaner in current or home directory)")
	cmd.PersistentFlags().StringP("profile", "P", "",
		"Named settings profile from the configuration file")

	// Add subcommands
	cmd.AddCommand(NewCleanCmd())
	cmd.AddCommand(NewWatchCmd())
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewBatchCmd())
	cmd.AddCommand(NewPickCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM, so
// long-running commands shut down cleanly and still write their output.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
