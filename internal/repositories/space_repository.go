package repositories

import (
	"context"

	"collabspace/internal/models"
)

// SpaceRepository defines the interface for space data access.
type SpaceRepository interface {
	GetAll(ctx context.Context) ([]models.Space, error)
	GetByID(ctx context.Context, id uint) (*models.Space, error)
	Create(ctx context.Context, space *models.Space) error
}
