package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/sunr3d/tocbz/internal/interfaces/infra"
	"github.com/sunr3d/tocbz/models"
)

var _ infra.Database = (*inmemDB)(nil)

// inmemDB keeps copies of outcomes so callers may keep mutating their own.
type inmemDB struct {
	logger *zap.Logger
	db     map[string]*models.Outcome
	mu     sync.RWMutex
}

func New(log *zap.Logger) infra.Database {
	return &inmemDB{
		logger: log,
		db:     make(map[string]*models.Outcome),
	}
}

func (db *inmemDB) SaveOutcome(ctx context.Context, outcome *models.Outcome) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrContextDone, ctx.Err())
	default:
	}

	if outcome == nil {
		return ErrOutcomeNil
	}

	if outcome.ID == "" {
		return ErrOutcomeIDEmpty
	}

	cp := *outcome

	db.mu.Lock()
	defer db.mu.Unlock()

	db.db[cp.ID] = &cp
	db.logger.Debug("результат сохранен",
		zap.String("outcome_id", cp.ID),
		zap.String("status", string(cp.Status)),
	)

	return nil
}

func (db *inmemDB) GetOutcome(ctx context.Context, id string) (*models.Outcome, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrContextDone, ctx.Err())
	default:
	}

	if id == "" {
		return nil, ErrOutcomeIDEmpty
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	outcome, exists := db.db[id]
	if !exists {
		return nil, ErrOutcomeNotFound
	}

	cp := *outcome
	return &cp, nil
}

// ListOutcomes returns all outcomes ordered by creation time.
func (db *inmemDB) ListOutcomes(ctx context.Context) ([]*models.Outcome, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrContextDone, ctx.Err())
	default:
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]*models.Outcome, 0, len(db.db))
	for _, outcome := range db.db {
		cp := *outcome
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Source < out[j].Source
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (db *inmemDB) CountInProgress(ctx context.Context) (int, error) {
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%w: %v", ErrContextDone, ctx.Err())
	default:
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	count := 0
	for _, outcome := range db.db {
		if outcome.Status == models.OutcomeStatusPending ||
			outcome.Status == models.OutcomeStatusRunning {
			count++
		}
	}

	return count, nil
}
