package infra

import (
	"context"

	"github.com/sunr3d/tocbz/models"
)

type Database interface {
	SaveOutcome(ctx context.Context, outcome *models.Outcome) error
	GetOutcome(ctx context.Context, id string) (*models.Outcome, error)
	ListOutcomes(ctx context.Context) ([]*models.Outcome, error)
	CountInProgress(ctx context.Context) (int, error)
}
