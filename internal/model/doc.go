// Package model defines the core data structures used throughout the feed cleaner.
//
// This package contains the following main types:
//   - Source: The entity (person, page, or group) responsible for a post
//   - Reason: Why a post was classified as unwanted
//   - Outcome: The terminal result of an unfollow automation attempt
//   - Target: One automation candidate or result record
//   - Stats: Session counters exposed to presentation layers
//   - LogEntry: One classification event for the session journal
//   - AnalysisRow: One row of a side-effect-free feed analysis
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (extract, classify, feed, unfollow, queue,
// export, history) need to use these types, so centralizing them prevents
// import cycles.
//
// The models are designed to be serializable to JSON for export output and
// database storage.
package model
