package persist

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shmupcore/shmup/internal/config"
	"github.com/shmupcore/shmup/internal/session"
	"go.uber.org/zap"
)

// Store is the session's score sink. Submit returns at once; the write runs
// on its own goroutine under the configured timeout and failures are only
// logged.
type Store struct {
	repo    ScoreRepo
	userID  int64
	timeout time.Duration
	log     *zap.Logger
	closer  func()
	wg      sync.WaitGroup
}

// Open connects the backend named by cfg.Driver and migrates it.
func Open(ctx context.Context, cfg config.ScoresConfig, log *zap.Logger) (*Store, error) {
	switch cfg.Driver {
	case "postgres":
		db, err := NewDB(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
		s := NewStore(NewPGScoreRepo(db), cfg, log)
		s.closer = db.Close
		return s, nil
	case "sqlite":
		conn, err := OpenSQLite(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		s := NewStore(NewSQLiteScoreRepo(conn), cfg, log)
		s.closer = func() { conn.Close() }
		return s, nil
	default:
		return nil, fmt.Errorf("unknown scores driver %q", cfg.Driver)
	}
}

func NewStore(repo ScoreRepo, cfg config.ScoresConfig, log *zap.Logger) *Store {
	return &Store{
		repo:    repo,
		userID:  cfg.UserID,
		timeout: cfg.SubmitTimeout,
		log:     log,
	}
}

// Submit stores r in the background.
func (s *Store) Submit(r session.Result) {
	row := ScoreRow{
		UserID:    s.userID,
		Score:     r.Score,
		Kills:     r.Kills,
		Duration:  r.Duration,
		ReplayID:  r.ReplayID,
		CreatedAt: time.Now(),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		if err := s.repo.Save(ctx, row, r.Replay); err != nil {
			s.log.Error("submit score", zap.Int("score", row.Score), zap.Error(err))
			return
		}
		s.log.Info("score saved", zap.Int("score", row.Score), zap.String("replay_id", row.ReplayID))
	}()
}

// Wait blocks until every submitted score has been written or dropped.
func (s *Store) Wait() { s.wg.Wait() }

func (s *Store) Top(ctx context.Context, n int) ([]ScoreRow, error) {
	return s.repo.Top(ctx, n)
}

func (s *Store) Replay(ctx context.Context, replayID string) ([]byte, error) {
	return s.repo.Replay(ctx, replayID)
}

// Close waits for pending submissions and closes the backend.
func (s *Store) Close() {
	s.wg.Wait()
	if s.closer != nil {
		s.closer()
	}
}

// NopSink discards scores, logging them instead. Used when scores.driver
// is "none".
type NopSink struct {
	Log *zap.Logger
}

func (n NopSink) Submit(r session.Result) {
	n.Log.Info("score not stored", zap.Int("score", r.Score), zap.String("replay_id", r.ReplayID))
}
