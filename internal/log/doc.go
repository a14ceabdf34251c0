// Package log provides logging for the feed cleaner, built on top of
// the standard slog package.
//
// This package extends slog to provide:
//   - Automatic clamping of oversized string attributes (post snapshots)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Why clamping
//
// Pipeline components log post excerpts and extracted text, and feed
// content is unbounded user input. The TrimHandler truncates long string
// attributes centrally so call sites can log values as-is without every
// one of them re-implementing the same guard.
//
// # Usage
//
//	// Create a logger
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Info("post classified",
//	    "reason", "sponsored",
//	    "excerpt", snapshot, // clamped if oversized
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
