// Package config provides configuration structures and utilities for the
// feed cleaner. It defines the runtime settings for classification and
// automation, YAML profile loading with merge-over-defaults semantics,
// and fire-and-forget persistence of setting changes.
package config
