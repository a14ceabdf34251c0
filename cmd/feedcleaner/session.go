package main

import (
	"fmt"
	"log/slog"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/config"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/dom"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/feed"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/history"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/journal"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/model"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/notify"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/queue"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/unfollow"
)

// session wires the pipeline over one document: scanner, automation
// engine, queue store, journal, and the optional history database. One
// session serves one command invocation.
type session struct {
	doc      *dom.Document
	settings *config.Settings
	stats    *model.Stats
	journal  *journal.Journal
	notifier notify.Notifier
	store    *queue.Store
	engine   *unfollow.Engine
	scanner  *feed.Scanner
	history  *history.Store
}

// newSession builds the pipeline over doc. The history database is
// opened only when saving is enabled; an unopenable history is a hard
// error because the user explicitly asked for an audit trail.
func newSession(doc *dom.Document, settings *config.Settings, logger *slog.Logger) (*session, error) {
	s := &session{
		doc:      doc,
		settings: settings,
		stats:    model.NewStats(),
		journal:  journal.New(),
		notifier: notify.NewLogNotifier(logger),
		store:    queue.NewStore(),
	}

	engineOpts := []unfollow.Option{
		unfollow.WithSink(s.store),
		unfollow.WithNotifier(s.notifier),
		unfollow.WithLogger(logger),
	}

	if settings.SaveHistory {
		dir := settings.HistoryDir
		if dir == "" {
			dir = config.XDGDataDir()
		}
		hs, err := history.Open(dir, history.DefaultOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to open history: %w", err)
		}
		s.history = hs
		engineOpts = append(engineOpts, unfollow.WithRecorder(hs))
		logger.Info("history opened", "path", hs.Path())
	}

	s.engine = unfollow.NewEngine(doc, settings, s.stats, engineOpts...)
	s.scanner = feed.NewScanner(doc, settings, s.stats,
		feed.WithAutomator(s.engine),
		feed.WithJournal(s.journal),
		feed.WithLogger(logger),
	)

	return s, nil
}

// Close releases the session's resources.
func (s *session) Close() {
	if s.history != nil {
		_ = s.history.Close()
	}
}
