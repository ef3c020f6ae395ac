package services

import (
	"context"

	"github.com/sunr3d/tocbz/models"
)

type ConvertService interface {
	Convert(ctx context.Context, path string) (*models.Outcome, error)
	ConvertAll(ctx context.Context, paths []string) ([]*models.Outcome, error)

	GetOutcome(ctx context.Context, id string) (*models.Outcome, error)
	ListOutcomes(ctx context.Context) ([]*models.Outcome, error)
}
