package repositories

import (
	"context"
	"errors"
	"fmt"

	"collabspace/internal/models"

	"gorm.io/gorm"
)

// GORMSpaceRepository is a GORM implementation of SpaceRepository.
type GORMSpaceRepository struct {
	db *gorm.DB
}

// NewGORMSpaceRepository creates a new instance of GORMSpaceRepository.
func NewGORMSpaceRepository(db *gorm.DB) *GORMSpaceRepository {
	return &GORMSpaceRepository{
		db: db,
	}
}

// GetAll retrieves every space, oldest first.
func (r *GORMSpaceRepository) GetAll(ctx context.Context) ([]models.Space, error) {
	spaces := []models.Space{}
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&spaces).Error; err != nil {
		return nil, fmt.Errorf("failed to get all spaces: %w", err)
	}
	return spaces, nil
}

// GetByID retrieves a single space by its ID.
func (r *GORMSpaceRepository) GetByID(ctx context.Context, id uint) (*models.Space, error) {
	var space models.Space
	if err := r.db.WithContext(ctx).First(&space, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("space with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get space by ID %d: %w", id, err)
	}
	return &space, nil
}

// Create inserts a space inside its own transaction, rolling back on failure.
func (r *GORMSpaceRepository) Create(ctx context.Context, space *models.Space) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(space).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create space: %w", err)
	}
	return nil
}
