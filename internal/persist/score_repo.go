package persist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// ErrNoReplay is returned when a replay id is not stored.
var ErrNoReplay = errors.New("replay not found")

// ScoreRow is one finished session.
type ScoreRow struct {
	UserID    int64
	Score     int
	Kills     int
	Duration  time.Duration
	ReplayID  string
	CreatedAt time.Time
}

// ScoreRepo stores scores and their replays.
type ScoreRepo interface {
	Save(ctx context.Context, row ScoreRow, replay []byte) error
	Top(ctx context.Context, n int) ([]ScoreRow, error)
	Replay(ctx context.Context, replayID string) ([]byte, error)
}

// PGScoreRepo is the PostgreSQL ScoreRepo.
type PGScoreRepo struct {
	db *DB
}

func NewPGScoreRepo(db *DB) *PGScoreRepo {
	return &PGScoreRepo{db: db}
}

// Save writes the score and its replay in one transaction.
func (r *PGScoreRepo) Save(ctx context.Context, row ScoreRow, replay []byte) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("score begin: %w", err)
	}
	defer tx.Rollback(ctx)

	created := row.CreatedAt.UnixMilli()
	if _, err := tx.Exec(ctx,
		`INSERT INTO scores (user_id, score, kills, duration_ms, replay_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		row.UserID, row.Score, row.Kills, row.Duration.Milliseconds(), row.ReplayID, created,
	); err != nil {
		return fmt.Errorf("score insert: %w", err)
	}
	if row.ReplayID != "" {
		if _, err := tx.Exec(ctx,
			`INSERT INTO replays (user_id, replay_id, data, created_at)
			 VALUES ($1, $2, $3, $4) ON CONFLICT (replay_id) DO NOTHING`,
			row.UserID, row.ReplayID, replay, created,
		); err != nil {
			return fmt.Errorf("replay insert: %w", err)
		}
	}
	return tx.Commit(ctx)
}

func (r *PGScoreRepo) Top(ctx context.Context, n int) ([]ScoreRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT user_id, score, kills, duration_ms, replay_id, created_at
		 FROM scores ORDER BY score DESC, created_at LIMIT $1`, n)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var out []ScoreRow
	for rows.Next() {
		var s ScoreRow
		var durMs, created int64
		if err := rows.Scan(&s.UserID, &s.Score, &s.Kills, &durMs, &s.ReplayID, &created); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		s.Duration = time.Duration(durMs) * time.Millisecond
		s.CreatedAt = time.UnixMilli(created)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PGScoreRepo) Replay(ctx context.Context, replayID string) ([]byte, error) {
	var data []byte
	err := r.db.Pool.QueryRow(ctx, `SELECT data FROM replays WHERE replay_id = $1`, replayID).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNoReplay, replayID)
	}
	if err != nil {
		return nil, fmt.Errorf("query replay: %w", err)
	}
	return data, nil
}

// SQLiteScoreRepo is the SQLite ScoreRepo.
type SQLiteScoreRepo struct {
	conn *sql.DB
}

func NewSQLiteScoreRepo(conn *sql.DB) *SQLiteScoreRepo {
	return &SQLiteScoreRepo{conn: conn}
}

func (r *SQLiteScoreRepo) Save(ctx context.Context, row ScoreRow, replay []byte) error {
	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("score begin: %w", err)
	}
	defer tx.Rollback()

	created := row.CreatedAt.UnixMilli()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO scores (user_id, score, kills, duration_ms, replay_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		row.UserID, row.Score, row.Kills, row.Duration.Milliseconds(), row.ReplayID, created,
	); err != nil {
		return fmt.Errorf("score insert: %w", err)
	}
	if row.ReplayID != "" {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO replays (user_id, replay_id, data, created_at) VALUES (?, ?, ?, ?)`,
			row.UserID, row.ReplayID, replay, created,
		); err != nil {
			return fmt.Errorf("replay insert: %w", err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteScoreRepo) Top(ctx context.Context, n int) ([]ScoreRow, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT user_id, score, kills, duration_ms, replay_id, created_at
		 FROM scores ORDER BY score DESC, created_at LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var out []ScoreRow
	for rows.Next() {
		var s ScoreRow
		var durMs, created int64
		if err := rows.Scan(&s.UserID, &s.Score, &s.Kills, &durMs, &s.ReplayID, &created); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		s.Duration = time.Duration(durMs) * time.Millisecond
		s.CreatedAt = time.UnixMilli(created)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteScoreRepo) Replay(ctx context.Context, replayID string) ([]byte, error) {
	var data []byte
	err := r.conn.QueryRowContext(ctx, `SELECT data FROM replays WHERE replay_id = ?`, replayID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNoReplay, replayID)
	}
	if err != nil {
		return nil, fmt.Errorf("query replay: %w", err)
	}
	return data, nil
}
