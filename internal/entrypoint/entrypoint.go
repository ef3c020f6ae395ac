package entrypoint

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sunr3d/tocbz/internal/config"
	"github.com/sunr3d/tocbz/internal/infra/inmem"
	"github.com/sunr3d/tocbz/internal/services/convert_service"
	"github.com/sunr3d/tocbz/internal/transform"
	"github.com/sunr3d/tocbz/models"
)

var (
	ErrNoPaths    = errors.New("не указаны пути для обработки")
	ErrSomeFailed = errors.New("не все источники удалось обработать")
)

// Run converts every path and logs one line per outcome. Unsupported sources
// are reported but do not fail the run.
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger, paths []string) ([]*models.Outcome, error) {
	if len(paths) == 0 {
		return nil, ErrNoPaths
	}

	db := inmem.New(log)
	svc := convert_service.New(log, cfg, db, transform.Select(cfg.Resize, cfg.MaxHeight))

	log.Info("запуск конвертации",
		zap.Int("sources", len(paths)),
		zap.Int("workers", cfg.Workers),
		zap.Bool("resize", cfg.Resize),
		zap.Int("max_height", cfg.MaxHeight),
	)

	outcomes, err := svc.ConvertAll(ctx, paths)
	if err != nil {
		return nil, fmt.Errorf("не удалось запустить конвертацию: %w", err)
	}

	failed := 0
	for _, o := range outcomes {
		switch o.Status {
		case models.OutcomeStatusDone:
			log.Info("готово",
				zap.String("source", o.Source),
				zap.String("destination", o.Destination),
				zap.String("relocated_to", o.RelocatedTo),
			)
			if o.RelocationError != "" {
				failed++
				log.Error("источник не перемещен",
					zap.String("source", o.Source),
					zap.String("error", o.RelocationError),
				)
			}
		case models.OutcomeStatusUnsupported:
			log.Warn("не поддерживается", zap.String("source", o.Source))
		default:
			failed++
			log.Error("ошибка", zap.String("source", o.Source), zap.String("error", o.Error))
		}
	}

	if failed > 0 {
		return outcomes, fmt.Errorf("%w: %d из %d", ErrSomeFailed, failed, len(paths))
	}
	return outcomes, nil
}
