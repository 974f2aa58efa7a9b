// internal/store/sqlite.go
//
// SQLite-backed Store.
// Responsibilities:
//   - Opening SQLite with safe defaults (WAL, busy timeout).
//   - Applying embedded migrations from sql/*.sql (idempotent, recorded in _migrations).
//   - Session CRUD and expiry sweeps.
//
// Boards and found-word lists are stored as JSON text; timestamps as RFC3339Nano UTC.

package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/boggle/apps/go-server/internal/board"
	"github.com/robalobadob/boggle/apps/go-server/internal/game"
)

//go:embed sql/*.sql
var migrations embed.FS

type sqliteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if missing) the database at dsn and migrates it.
// ":memory:" is accepted for tests.
func NewSQLiteStore(dsn string) (Store, error) {
	db, err := OpenDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

// OpenDB opens a SQLite database with busy timeout and WAL journaling.
// The parent directory of a file DSN is created if needed.
func OpenDB(dsn string) (*sql.DB, error) {
	if dsn == ":memory:" {
		db, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, err
		}
		// Each connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
		return db, nil
	}

	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// Migrate applies embedded sql/*.sql files in lexical order, skipping
// any already recorded in _migrations.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

func (s *sqliteStore) Save(ctx context.Context, sess *game.Session) error {
	boardJSON, err := json.Marshal(sess.Board.Rows())
	if err != nil {
		return err
	}
	found := sess.Found
	if found == nil {
		found = []string{}
	}
	foundJSON, err := json.Marshal(found)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO sessions (id, board, daily, started_at, ends_at, score, found)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            board=excluded.board, daily=excluded.daily, started_at=excluded.started_at,
            ends_at=excluded.ends_at, score=excluded.score, found=excluded.found`,
		sess.ID, string(boardJSON), sess.Daily,
		formatTime(sess.StartedAt), formatTime(sess.EndsAt),
		sess.Score, string(foundJSON),
	)
	if err != nil {
		return fmt.Errorf("save session %s: %w", sess.ID, err)
	}
	return nil
}

func (s *sqliteStore) Get(ctx context.Context, id string) (*game.Session, error) {
	var (
		sess             game.Session
		boardJSON, found string
		started, ends    string
	)
	err := s.db.QueryRowContext(ctx, `
        SELECT id, board, daily, started_at, ends_at, score, found
        FROM sessions WHERE id=?`, id,
	).Scan(&sess.ID, &boardJSON, &sess.Daily, &started, &ends, &sess.Score, &found)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	var rows [][]string
	if err := json.Unmarshal([]byte(boardJSON), &rows); err != nil {
		return nil, fmt.Errorf("decode board %s: %w", id, err)
	}
	if sess.Board, err = board.Parse(rows); err != nil {
		return nil, fmt.Errorf("decode board %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(found), &sess.Found); err != nil {
		return nil, fmt.Errorf("decode found %s: %w", id, err)
	}
	if sess.StartedAt, err = parseTime(started); err != nil {
		return nil, fmt.Errorf("decode started_at %s: %w", id, err)
	}
	if sess.EndsAt, err = parseTime(ends); err != nil {
		return nil, fmt.Errorf("decode ends_at %s: %w", id, err)
	}
	return &sess, nil
}

func (s *sqliteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id=?`, id)
	return err
}

func (s *sqliteStore) Sweep(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE ends_at < ?`, formatTime(cutoff))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *sqliteStore) Close() error { return s.db.Close() }

// formatTime uses a fixed-width layout so that string comparison in SQL
// matches chronological order.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, strings.TrimSpace(s))
}

const timeLayout = "2006-01-02T15:04:05.000000000Z"
