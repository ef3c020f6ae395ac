package convert_service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sunr3d/tocbz/models"
)

// ConvertAll queues every path as a pending outcome, then runs them on a pool
// of cfg.Workers goroutines. Outcomes come back in completion order, one per path.
func (s *convertService) ConvertAll(ctx context.Context, paths []string) ([]*models.Outcome, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrContextDone, ctx.Err())
	default:
	}

	storeCtx := context.WithoutCancel(ctx)
	out := make([]*models.Outcome, 0, len(paths))
	queued := make([]*models.Outcome, 0, len(paths))
	for _, p := range paths {
		outcome := newOutcome(p)
		if err := s.repo.SaveOutcome(storeCtx, outcome); err != nil {
			out = append(out, s.failed(p, fmt.Errorf("%w: %v", ErrOutcomeSave, err)))
			continue
		}
		queued = append(queued, outcome)
	}

	if pending, err := s.repo.CountInProgress(storeCtx); err == nil {
		s.logger.Info("источники поставлены в очередь",
			zap.Int("queued", len(queued)),
			zap.Int("in_progress", pending),
		)
	}

	workers := s.cfg.Workers
	if workers > len(queued) {
		workers = len(queued)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan *models.Outcome)
	results := make(chan *models.Outcome)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for outcome := range jobs {
			results <- s.runOne(ctx, outcome)
		}
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go worker()
	}

	go func() {
		for _, outcome := range queued {
			jobs <- outcome
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for outcome := range results {
		out = append(out, outcome)
	}

	s.logger.Info("пакет обработан",
		zap.Int("total", len(paths)),
		zap.Int("workers", workers),
	)
	return out, nil
}

// runOne never returns nil. A cancelled batch settles the remaining queued
// outcomes as failed instead of leaving them pending.
func (s *convertService) runOne(ctx context.Context, outcome *models.Outcome) *models.Outcome {
	select {
	case <-ctx.Done():
		outcome.Status = models.OutcomeStatusFailed
		outcome.Error = fmt.Errorf("%w: %v", ErrContextDone, ctx.Err()).Error()
		outcome.UpdatedAt = time.Now()
		if err := s.repo.SaveOutcome(context.WithoutCancel(ctx), outcome); err != nil {
			s.logger.Error("не удалось сохранить результат", zap.String("source", outcome.Source), zap.Error(err))
		}
		return outcome
	default:
	}

	done, err := s.run(ctx, outcome)
	if err == nil {
		return done
	}
	return s.failed(outcome.Source, err)
}

// failed stands in for an outcome that could not be recorded.
func (s *convertService) failed(path string, err error) *models.Outcome {
	s.logger.Error("не удалось обработать источник", zap.String("source", path), zap.Error(err))
	now := time.Now()
	return &models.Outcome{
		Source:    path,
		Status:    models.OutcomeStatusFailed,
		Error:     err.Error(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
