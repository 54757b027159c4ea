package dedup

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"storyreel/internal/logging"
)

// Record is one previously used story.
type Record struct {
	StoryID   string
	Subreddit string
	Title     string
	UsedAt    time.Time
}

// Store is the durable record of previously used story identifiers, backed by
// SQLite. It is not safe for concurrent writers across processes; callers
// serialize runs with the pipeline run lock.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open initializes or connects to the used-story database. A corrupt store is
// never fatal: the damaged file is moved aside and a fresh, empty store is
// created in its place.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "dedup")

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure data directory: %w", err)
		}
	}

	store, err := open(path, logger)
	if err == nil {
		return store, nil
	}

	quarantined := fmt.Sprintf("%s.corrupt-%d", path, time.Now().Unix())
	logger.Warn("used-story store unreadable, starting empty",
		logging.Error(err),
		logging.String("quarantined", quarantined))
	if renameErr := os.Rename(path, quarantined); renameErr != nil && !os.IsNotExist(renameErr) {
		return nil, fmt.Errorf("quarantine corrupt store: %w", renameErr)
	}
	return open(path, logger)
}

func open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, logger: logger}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Contains reports whether the story identifier has already been used.
func (s *Store) Contains(ctx context.Context, storyID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM used_stories WHERE story_id = ?", storyID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("query used story: %w", err)
	}
	return count > 0, nil
}

// MarkUsed durably records a story identifier. Marking the same identifier
// twice is a no-op. The write is committed before MarkUsed returns; a crash
// later in the run can burn a story but never reuse one.
func (s *Store) MarkUsed(ctx context.Context, rec Record) error {
	usedAt := rec.UsedAt
	if usedAt.IsZero() {
		usedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO used_stories (story_id, subreddit, title, used_at)
		 VALUES (?, ?, ?, ?)`,
		rec.StoryID, rec.Subreddit, rec.Title, usedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("mark story used: %w", err)
	}
	s.logger.Debug("story marked used", logging.String("story_id", rec.StoryID))
	return nil
}

// List returns all used stories, most recent first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT story_id, subreddit, title, used_at FROM used_stories ORDER BY used_at DESC, story_id")
	if err != nil {
		return nil, fmt.Errorf("list used stories: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var usedAt string
		if err := rows.Scan(&rec.StoryID, &rec.Subreddit, &rec.Title, &usedAt); err != nil {
			return nil, fmt.Errorf("scan used story: %w", err)
		}
		if ts, parseErr := time.Parse(time.RFC3339Nano, usedAt); parseErr == nil {
			rec.UsedAt = ts
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate used stories: %w", err)
	}
	return records, nil
}
