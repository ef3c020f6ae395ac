package convert_service

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sunr3d/tocbz/internal/archive"
	"github.com/sunr3d/tocbz/internal/config"
	"github.com/sunr3d/tocbz/internal/interfaces/infra"
	"github.com/sunr3d/tocbz/internal/interfaces/services"
	"github.com/sunr3d/tocbz/models"
)

var _ services.ConvertService = (*convertService)(nil)

type convertService struct {
	repo      infra.Database
	logger    *zap.Logger
	cfg       *config.Config
	transform archive.TransformFunc
}

// New wires the pipeline. A nil transform means entries are copied unchanged.
func New(log *zap.Logger, cfg *config.Config, repo infra.Database, transform archive.TransformFunc) services.ConvertService {
	return &convertService{
		logger:    log,
		cfg:       cfg,
		repo:      repo,
		transform: transform,
	}
}

// Convert transcodes one source into a CBZ next to it and moves the source
// into the old directory. Per-source failures are reported in the outcome;
// the error is non-nil only when the outcome itself could not be recorded.
func (s *convertService) Convert(ctx context.Context, path string) (*models.Outcome, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrContextDone, ctx.Err())
	default:
	}

	outcome := newOutcome(path)

	// outcomes are recorded even after cancellation
	if err := s.repo.SaveOutcome(context.WithoutCancel(ctx), outcome); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutcomeSave, err)
	}

	return s.run(ctx, outcome)
}

func newOutcome(path string) *models.Outcome {
	now := time.Now()
	return &models.Outcome{
		ID:        uuid.New().String(),
		Source:    path,
		Status:    models.OutcomeStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// run takes a pending outcome through the pipeline, saving it when it starts
// and when it settles.
func (s *convertService) run(ctx context.Context, outcome *models.Outcome) (*models.Outcome, error) {
	storeCtx := context.WithoutCancel(ctx)

	outcome.Status = models.OutcomeStatusRunning
	outcome.UpdatedAt = time.Now()
	if err := s.repo.SaveOutcome(storeCtx, outcome); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutcomeSave, err)
	}

	s.logger.Info("обработка источника", zap.String("source", outcome.Source), zap.String("outcome_id", outcome.ID))
	s.process(ctx, outcome)

	outcome.UpdatedAt = time.Now()
	if err := s.repo.SaveOutcome(storeCtx, outcome); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutcomeSave, err)
	}

	return outcome, nil
}

func (s *convertService) process(ctx context.Context, outcome *models.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("паника при обработке источника",
				zap.String("source", outcome.Source),
				zap.Any("error", r),
				zap.String("stack", string(debug.Stack())),
			)
			outcome.Status = models.OutcomeStatusFailed
			outcome.Error = fmt.Sprintf("%s: %v", ErrPanic.Error(), r)
		}
	}()

	kind, err := archive.Sniff(outcome.Source)
	if err != nil {
		s.fail(outcome, err)
		return
	}
	outcome.Kind = kind

	if kind == models.SourceKindUnsupported {
		outcome.Status = models.OutcomeStatusUnsupported
		outcome.Error = archive.ErrUnsupported.Error()
		s.logger.Warn("формат не поддерживается", zap.String("source", outcome.Source))
		return
	}

	dest, entries, err := s.transcode(ctx, outcome.Source, kind)
	if err != nil {
		s.fail(outcome, err)
		return
	}
	outcome.Status = models.OutcomeStatusDone
	outcome.Destination = dest
	outcome.Entries = entries

	s.logger.Info("архив собран",
		zap.String("source", outcome.Source),
		zap.String("kind", string(kind)),
		zap.String("destination", dest),
		zap.Int("entries", entries),
	)

	relocated, err := archive.Relocate(outcome.Source, s.cfg.OldDir)
	if err != nil {
		outcome.RelocationError = err.Error()
		s.logger.Error("не удалось переместить источник",
			zap.String("source", outcome.Source),
			zap.Error(err),
		)
		return
	}
	outcome.RelocatedTo = relocated
}

// transcode runs the extraction strategy for kind into a fresh CBZ. The source
// reader is closed before returning, so the source can be relocated afterwards.
func (s *convertService) transcode(ctx context.Context, path string, kind models.SourceKind) (string, int, error) {
	dest := archive.OutputName(path, kind == models.SourceKindDirectory, s.cfg.CollisionSuffix)

	r, err := archive.Open(path, kind)
	if err != nil {
		return "", 0, err
	}
	defer func() {
		if err := r.Close(); err != nil {
			s.logger.Warn("не удалось закрыть источник",
				zap.String("source", path),
				zap.Error(err),
			)
		}
	}()

	w, err := archive.Create(dest, s.cfg.CollisionSuffix, s.cfg.CompressionLevel)
	if err != nil {
		return "", 0, err
	}

	// no-op once committed; also runs when the transform panics
	defer func() {
		if err := w.Abort(); err != nil {
			s.logger.Warn("не удалось удалить временный файл",
				zap.String("destination", dest),
				zap.Error(err),
			)
		}
	}()

	n, err := archive.Copy(ctx, r, w, s.transform)
	if err != nil {
		return "", n, err
	}

	final, err := w.Commit()
	if err != nil {
		return "", n, err
	}
	return final, n, nil
}

func (s *convertService) fail(outcome *models.Outcome, err error) {
	outcome.Status = models.OutcomeStatusFailed
	outcome.Error = err.Error()
	s.logger.Error("не удалось обработать источник",
		zap.String("source", outcome.Source),
		zap.String("kind", string(outcome.Kind)),
		zap.Error(err),
	)
}

func (s *convertService) GetOutcome(ctx context.Context, id string) (*models.Outcome, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrContextDone, ctx.Err())
	default:
	}

	outcome, err := s.repo.GetOutcome(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutcomeGet, err)
	}
	return outcome, nil
}

func (s *convertService) ListOutcomes(ctx context.Context) ([]*models.Outcome, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrContextDone, ctx.Err())
	default:
	}

	outcomes, err := s.repo.ListOutcomes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutcomeGet, err)
	}
	return outcomes, nil
}
