package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/YunKonstantin/timer-final/internal/models"
)

// Database keeps the log of finished timer sessions.
type Database struct {
	db *sql.DB
}

func NewDatabase(path string) (*Database, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open history %s: %w", path, err)
	}

	database := &Database{db: db}
	if err := database.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history tables: %w", err)
	}
	return database, nil
}

func (d *Database) initTables() error {
	_, err := d.db.Exec(`
        CREATE TABLE IF NOT EXISTS sessions (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            kind TEXT NOT NULL,
            started_at DATETIME NOT NULL,
            ended_at DATETIME NOT NULL,
            duration_ms INTEGER NOT NULL
        )
    `)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`CREATE INDEX IF NOT EXISTS sessions_kind_started ON sessions(kind, started_at)`)
	return err
}

func (d *Database) Close() error {
	return d.db.Close()
}

// SaveSession inserts rec and fills in its ID.
func (d *Database) SaveSession(ctx context.Context, rec *models.SessionRecord) error {
	result, err := d.db.ExecContext(ctx, `
        INSERT INTO sessions (kind, started_at, ended_at, duration_ms)
        VALUES (?, ?, ?, ?)
    `, string(rec.Kind), rec.StartedAt.UTC(), rec.EndedAt.UTC(), rec.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = id
	return nil
}

// RecentSessions returns up to limit sessions of kind that started in
// [from, to], newest first.
func (d *Database) RecentSessions(ctx context.Context, kind models.SessionKind, from, to time.Time, limit int) ([]*models.SessionRecord, error) {
	rows, err := d.db.QueryContext(ctx, `
        SELECT id, kind, started_at, ended_at, duration_ms
        FROM sessions
        WHERE kind = ? AND started_at BETWEEN ? AND ?
        ORDER BY started_at DESC, id DESC
        LIMIT ?
    `, string(kind), from.UTC(), to.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var records []*models.SessionRecord
	for rows.Next() {
		var (
			rec        models.SessionRecord
			kindText   string
			durationMs int64
		)
		if err := rows.Scan(&rec.ID, &kindText, &rec.StartedAt, &rec.EndedAt, &durationMs); err != nil {
			return nil, err
		}
		rec.Kind = models.SessionKind(kindText)
		rec.Duration = time.Duration(durationMs) * time.Millisecond
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// SessionStats aggregates sessions of kind that started in [from, to].
// A zero from means no lower bound.
func (d *Database) SessionStats(ctx context.Context, kind models.SessionKind, from, to time.Time) (*models.SessionStats, error) {
	var (
		sessions int
		totalMs  int64
		longest  int64
	)
	err := d.db.QueryRowContext(ctx, `
        SELECT
            COUNT(*) AS sessions,
            COALESCE(SUM(duration_ms), 0) AS total,
            COALESCE(MAX(duration_ms), 0) AS longest
        FROM sessions
        WHERE kind = ? AND started_at BETWEEN ? AND ?
    `, string(kind), from.UTC(), to.UTC()).Scan(&sessions, &totalMs, &longest)
	if err != nil {
		return nil, fmt.Errorf("session stats: %w", err)
	}

	stats := &models.SessionStats{
		Sessions: sessions,
		Total:    time.Duration(totalMs) * time.Millisecond,
		Longest:  time.Duration(longest) * time.Millisecond,
	}
	if sessions > 0 {
		stats.Average = stats.Total / time.Duration(sessions)
	}
	return stats, nil
}
