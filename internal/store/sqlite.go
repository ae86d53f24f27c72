// internal/store/sqlite.go
//
// SQLite-backed Store.
// Responsibilities:
//   - Opening the database file with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations from migrations/*.sql (idempotent, recorded in _migrations).
//   - Reading and writing sessions and finished rounds.

package store

import (
	"context"
	"database/sql"
	"embed"
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

	"github.com/robalobadob/numguess/internal/game"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if missing) the database at path, applies
// migrations and returns a Store backed by it.
func OpenSQLite(path string) (Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

// openDB opens a SQLite database file.
//
//   - Ensures parent directory exists for relative paths (e.g. ./data/numguess.db).
//   - Configures busy timeout, WAL journaling and foreign keys on every connection.
func openDB(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", path, err)
	}
	return db, nil
}

// migrate applies the embedded migrations in lexical order.
//
//   - Uses a _migrations table to track applied files.
//   - Each file runs in its own transaction together with its record row.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
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

		body, err := migrationsFS.ReadFile(f)
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
		log.Info().Str("migration", strings.TrimPrefix(f, "migrations/")).Msg("applied")
	}
	return nil
}

func (s *sqliteStore) Save(ctx context.Context, g game.Session) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO sessions (id, round, secret, pending, message, attempts, status, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            round=excluded.round,
            secret=excluded.secret,
            pending=excluded.pending,
            message=excluded.message,
            attempts=excluded.attempts,
            status=excluded.status,
            updated_at=excluded.updated_at`,
		g.ID, g.Round, g.Secret, g.Pending, g.Message, g.Attempts, string(g.Status),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save session %s: %w", g.ID, err)
	}
	return nil
}

func (s *sqliteStore) Get(ctx context.Context, id string) (game.Session, error) {
	var g game.Session
	var status string
	err := s.db.QueryRowContext(ctx, `
        SELECT id, round, secret, pending, message, attempts, status
        FROM sessions WHERE id=?`, id,
	).Scan(&g.ID, &g.Round, &g.Secret, &g.Pending, &g.Message, &g.Attempts, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Session{}, ErrNotFound
	}
	if err != nil {
		return game.Session{}, fmt.Errorf("get session %s: %w", id, err)
	}
	g.Status = game.Status(status)
	return g, nil
}

func (s *sqliteStore) RecordRound(ctx context.Context, r Round) error {
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO rounds (session_id, round, status, attempts, secret, finished_at)
        VALUES (?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.Round, string(r.Status), r.Attempts, r.Secret,
		r.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record round %s/%d: %w", r.SessionID, r.Round, err)
	}
	return nil
}

func (s *sqliteStore) Rounds(ctx context.Context, sessionID string) ([]Round, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT round, status, attempts, secret, finished_at
        FROM rounds
        WHERE session_id=?
        ORDER BY round ASC`, sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Round{}
	for rows.Next() {
		r := Round{SessionID: sessionID}
		var status, finished string
		if err := rows.Scan(&r.Round, &status, &r.Attempts, &r.Secret, &finished); err != nil {
			return nil, err
		}
		r.Status = game.Status(status)
		at, err := time.Parse(time.RFC3339Nano, finished)
		if err != nil {
			return nil, fmt.Errorf("round %s/%d: finished_at: %w", sessionID, r.Round, err)
		}
		r.FinishedAt = at
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *sqliteStore) Close() error { return s.db.Close() }
