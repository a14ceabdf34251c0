// Package schedule drives watch mode: repeated scan passes over a
// changing document.
//
// # The work queue
//
// One goroutine owns all scheduled work. It selects over three sources:
// a fixed-cadence ticker, the document's structural-change signal, and a
// job channel for settings mutations. Because everything runs on that
// one goroutine, settings need no lock: submit a job to change them and
// it executes between scans, never during one.
//
// Change-triggered scans pass through a rate limiter so a burst of
// mutations coalesces into one pass; ticker scans are unconditional and
// pick up whatever the limiter suppressed.
//
// # Pausing
//
// Pause gates scanning without stopping the loop, for interactive modes
// that need the feed left alone. It never cancels an automation that is
// already running.
package schedule
