// Package export serializes session data for sharing: journal entries,
// analysis rows, and the stats counters.
//
// The package offers three formats behind one Writer interface: JSON for
// tool integration, Markdown for documentation and sharing, and plain
// text for terminal display. A MultiWriter fans one snapshot out to
// several destinations, and the Exporter wrapper isolates the pipeline
// from export failures: errors are logged and surfaced through the
// notification collaborator, never returned into feed processing.
package export
