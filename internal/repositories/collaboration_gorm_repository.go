package repositories

import (
	"context"
	"errors"
	"fmt"

	"collabspace/internal/models"

	"gorm.io/gorm"
)

// GORMCollaborationRepository is a GORM implementation of CollaborationRepository.
type GORMCollaborationRepository struct {
	db *gorm.DB
}

// NewGORMCollaborationRepository creates a new instance of GORMCollaborationRepository.
func NewGORMCollaborationRepository(db *gorm.DB) *GORMCollaborationRepository {
	return &GORMCollaborationRepository{
		db: db,
	}
}

// Create inserts a new collaboration request.
func (r *GORMCollaborationRepository) Create(ctx context.Context, req *models.CollaborationRequest) error {
	if req.Status == "" {
		req.Status = models.StatusPending
	}
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("request for space %d by %s: %w", req.SpaceID, req.CollaboratorEmail, ErrDuplicateKey)
		}
		return fmt.Errorf("failed to create collaboration request: %w", err)
	}
	return nil
}

// GetBySpaceAndEmail retrieves the request for a (space, email) pair in any status.
func (r *GORMCollaborationRepository) GetBySpaceAndEmail(ctx context.Context, spaceID uint, email string) (*models.CollaborationRequest, error) {
	var req models.CollaborationRequest
	err := r.db.WithContext(ctx).
		Where("space_id = ? AND collaborator_email = ?", spaceID, email).
		First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("request for space %d by %s: %w", spaceID, email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get collaboration request: %w", err)
	}
	return &req, nil
}

// ListNotifications joins every request made by email with its space, in
// creation order. Requests whose space no longer exists drop out of the join.
func (r *GORMCollaborationRepository) ListNotifications(ctx context.Context, email string) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := r.db.WithContext(ctx).
		Table("collaboration_requests AS cr").
		Select("cr.space_id, s.space_name, cr.status").
		Joins("JOIN spaces AS s ON s.id = cr.space_id").
		Where("cr.collaborator_email = ?", email).
		Order("cr.id ASC").
		Scan(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications for %s: %w", email, err)
	}
	return notifications, nil
}

// Approve marks the request for a (space, email) pair as approved. Approving
// an already approved request leaves it unchanged.
func (r *GORMCollaborationRepository) Approve(ctx context.Context, spaceID uint, email string) (*models.CollaborationRequest, error) {
	var req models.CollaborationRequest
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("space_id = ? AND collaborator_email = ?", spaceID, email).First(&req).Error; err != nil {
			return err
		}
		return tx.Model(&req).Update("status", models.StatusApproved).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("request for space %d by %s: %w", spaceID, email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to approve collaboration request: %w", err)
	}
	req.Status = models.StatusApproved
	return &req, nil
}
