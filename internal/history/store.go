package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/model"
)

// dbFileName is the database file created inside the history directory.
const dbFileName = "feedcleaner.db"

// Store provides SQLite-based storage for automation outcomes.
// It manages connection pooling and provides methods for recording and
// querying actions.
//
// Design decision: We use one database file for all sessions rather
// than a file per run. The history exists to answer "what did this tool
// do to my feed over time", which is inherently a cross-session query.
type Store struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Store behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default store options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a Store at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dir string, opts Options) (*Store, error) {
	dbPath := filepath.Join(dir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("history database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check history path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite only supports one writer; a second connection buys nothing
	// for an append-mostly audit log.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the location of the database file.
func (s *Store) Path() string {
	return s.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (s *Store) createTables() error {
	schema := `
	-- Actions store one row per automation attempt
	CREATE TABLE IF NOT EXISTS actions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		name TEXT NOT NULL,
		link TEXT NOT NULL,
		reason TEXT NOT NULL,
		dry_run INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL DEFAULT 0,
		error TEXT,
		signal TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_actions_link ON actions(link);
	CREATE INDEX IF NOT EXISTS idx_actions_timestamp ON actions(timestamp);
	CREATE INDEX IF NOT EXISTS idx_actions_signal ON actions(signal);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Insert stores one executed target and returns its row id.
func (s *Store) Insert(ctx context.Context, t model.Target) (int64, error) {
	ts := t.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query := `
	INSERT INTO actions (timestamp, name, link, reason, dry_run, success, error, signal)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		ts.UTC().Format(time.RFC3339),
		t.Source.Name,
		t.Source.Link,
		t.Reason.String(),
		boolToInt(t.DryRun),
		boolToInt(t.Success),
		t.Error,
		t.Signal,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert action: %w", err)
	}

	return result.LastInsertId()
}

// Record implements the automation engine's Recorder contract. The
// engine treats persistence as best effort, so Record just delegates to
// Insert with a background context.
func (s *Store) Record(t model.Target) error {
	_, err := s.Insert(context.Background(), t)
	return err
}

// Recent returns the most recent actions, newest first, up to limit.
// A non-positive limit returns everything.
func (s *Store) Recent(ctx context.Context, limit int) ([]model.Target, error) {
	query := `
	SELECT timestamp, name, link, reason, dry_run, success, error, signal
	FROM actions
	ORDER BY id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	return s.queryTargets(ctx, query, args...)
}

// BySource returns every action recorded against the given canonical
// link, newest first.
func (s *Store) BySource(ctx context.Context, link string) ([]model.Target, error) {
	query := `
	SELECT timestamp, name, link, reason, dry_run, success, error, signal
	FROM actions
	WHERE link = ?
	ORDER BY id DESC
	`

	return s.queryTargets(ctx, query, link)
}

// Summary aggregates the whole history.
type Summary struct {
	// Total counts every recorded action.
	Total int `json:"total"`

	// Succeeded counts completed unfollows.
	Succeeded int `json:"succeeded"`

	// Failed counts actions that ended in the failure terminal.
	Failed int `json:"failed"`

	// ByReason breaks the total down by classification reason.
	ByReason map[string]int `json:"by_reason"`
}

// Summarize computes aggregate counts over the whole history.
func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	summary := Summary{ByReason: make(map[string]int)}

	row := s.db.QueryRowContext(ctx, `
	SELECT COUNT(*),
	       COALESCE(SUM(success), 0),
	       COALESCE(SUM(CASE WHEN success = 0 AND dry_run = 0 THEN 1 ELSE 0 END), 0)
	FROM actions
	`)
	if err := row.Scan(&summary.Total, &summary.Succeeded, &summary.Failed); err != nil {
		return summary, fmt.Errorf("failed to summarize actions: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT reason, COUNT(*) FROM actions GROUP BY reason`)
	if err != nil {
		return summary, fmt.Errorf("failed to group actions by reason: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var reason string
		var count int
		if err := rows.Scan(&reason, &count); err != nil {
			return summary, fmt.Errorf("failed to scan reason group: %w", err)
		}
		summary.ByReason[reason] = count
	}

	return summary, rows.Err()
}

// queryTargets runs a SELECT over the actions columns and decodes each
// row into a Target.
func (s *Store) queryTargets(ctx context.Context, query string, args ...any) ([]model.Target, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query actions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var targets []model.Target
	for rows.Next() {
		var (
			t         model.Target
			timestamp string
			reason    string
			dryRun    int
			success   int
			errText   sql.NullString
			signal    sql.NullString
		)
		if err := rows.Scan(&timestamp, &t.Source.Name, &t.Source.Link,
			&reason, &dryRun, &success, &errText, &signal); err != nil {
			return nil, fmt.Errorf("failed to scan action: %w", err)
		}

		t.Timestamp = parseTimestamp(timestamp)
		if err := t.Reason.UnmarshalText([]byte(reason)); err != nil {
			return nil, fmt.Errorf("failed to decode reason: %w", err)
		}
		t.DryRun = dryRun != 0
		t.Success = success != 0
		t.Error = errText.String
		t.Signal = signal.String

		targets = append(targets, t)
	}

	return targets, rows.Err()
}

// timestampFormats covers the representations SQLite may hand back for a
// DATETIME column, depending on how the value was written.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05.999999999-07:00",
}

// parseTimestamp tries each known format in order.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	// Return zero time if no format matches
	// This is a fallback to avoid breaking functionality for edge cases
	return time.Time{}
}

// boolToInt converts a bool to SQLite's integer representation.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
