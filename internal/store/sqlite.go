// apps/term/internal/store/sqlite.go
//
// SQLite-backed Store.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations from sql/*.sql (idempotent, recorded in _migrations).
//   - Result queries: save/get/already played/history/leaderboard.
//   - Player accounts: create/find (names unique ignoring case).

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
)

//go:embed sql/*.sql
var migrations embed.FS

// SQLite is a Store backed by a SQLite file.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// OpenSQLite opens (creating if missing) the database at dsn and migrates it.
// dsn may be ":memory:" for a throwaway database.
func OpenSQLite(dsn string) (*SQLite, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db, migrations); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// openDB opens a SQLite database file, creating its parent directory.
func openDB(dsn string) (*sql.DB, error) {
	if dsn != ":memory:" {
		dir := filepath.Dir(dsn)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// Every pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies every *.sql file in fsys in lexical order, each in its own
// transaction, skipping files already recorded in _migrations.
func migrate(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	var files []string
	if err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("walk migrations: %w", err)
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

		sqlBytes, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
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

// Save inserts r. Respects UNIQUE(player, date): a second result is ignored and
// reported as not inserted.
func (s *SQLite) Save(ctx context.Context, r Result) (bool, error) {
	won := 0
	if r.Won {
		won = 1
	}
	res, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO results
            (id, player, date, solution, words, grid, attempts, won, elapsed_ms, played_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Player, r.Date, r.Solution, strings.Join(r.Words, ","), r.Grid,
		r.Attempts, won, r.ElapsedMs, r.PlayedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return false, fmt.Errorf("store: save result: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("store: save result: %w", err)
	}
	return n > 0, nil
}

const resultColumns = `id, player, date, solution, words, grid, attempts, won, elapsed_ms, played_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (Result, error) {
	var (
		r      Result
		words  string
		won    int
		played string
	)
	if err := row.Scan(&r.ID, &r.Player, &r.Date, &r.Solution, &words, &r.Grid,
		&r.Attempts, &won, &r.ElapsedMs, &played); err != nil {
		return Result{}, err
	}
	if words != "" {
		r.Words = strings.Split(words, ",")
	}
	r.Won = won == 1
	r.PlayedAt, _ = time.Parse(time.RFC3339Nano, played)
	return r, nil
}

func (s *SQLite) Get(ctx context.Context, player, date string) (Result, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+resultColumns+` FROM results WHERE player=? AND date=?`, player, date)
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, ErrNotFound
	}
	if err != nil {
		return Result{}, fmt.Errorf("store: get result: %w", err)
	}
	return r, nil
}

func (s *SQLite) AlreadyPlayed(ctx context.Context, player, date string) (bool, error) {
	var cnt int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM results WHERE player=? AND date=?`,
		player, date,
	).Scan(&cnt); err != nil {
		return false, fmt.Errorf("store: already played: %w", err)
	}
	return cnt > 0, nil
}

func (s *SQLite) History(ctx context.Context, player string, limit int) ([]Result, error) {
	q := `SELECT ` + resultColumns + ` FROM results WHERE player=? ORDER BY date DESC`
	args := []any{player}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: history: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Leaderboard fetches the winners for a given date.
//
// - Ordered by attempts ASC, then elapsed time ASC, then played_at ASC.
// - Default limit is 20 if not specified.
func (s *SQLite) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT player, attempts, elapsed_ms
        FROM results
        WHERE date=? AND won=1
        ORDER BY attempts ASC, elapsed_ms ASC, played_at ASC
        LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("store: leaderboard: %w", err)
	}
	defer rows.Close()

	out := make([]LBRow, 0, limit)
	for rows.Next() {
		var r LBRow
		if err := rows.Scan(&r.Player, &r.Attempts, &r.ElapsedMs); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLite) CreatePlayer(ctx context.Context, p Player) error {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM players WHERE name=?`, p.Name).Scan(&exists)
	if err == nil {
		return ErrNameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("store: lookup player: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO players (id, name, password_hash, created_at) VALUES (?,?,?,?)`,
		p.ID, p.Name, p.PasswordHash, p.CreatedAt.UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("store: create player: %w", err)
	}
	return nil
}

func (s *SQLite) FindPlayer(ctx context.Context, name string) (Player, error) {
	var (
		p       Player
		created string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, password_hash, created_at FROM players WHERE name=?`, name,
	).Scan(&p.ID, &p.Name, &p.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Player{}, ErrNotFound
	}
	if err != nil {
		return Player{}, fmt.Errorf("store: find player: %w", err)
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return p, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error { return s.db.Close() }
