package repositories

import (
	"context"

	"collabspace/internal/models"
)

// CollaborationRepository defines the interface for collaboration request data access.
type CollaborationRepository interface {
	Create(ctx context.Context, req *models.CollaborationRequest) error
	GetBySpaceAndEmail(ctx context.Context, spaceID uint, email string) (*models.CollaborationRequest, error)
	ListNotifications(ctx context.Context, email string) ([]models.Notification, error)
	Approve(ctx context.Context, spaceID uint, email string) (*models.CollaborationRequest, error)
}
