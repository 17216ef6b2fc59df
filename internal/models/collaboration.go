package models

import "time"

// CollaborationStatus is the lifecycle state of a collaboration request.
type CollaborationStatus string

const (
	StatusPending  CollaborationStatus = "pending"
	StatusApproved CollaborationStatus = "approved"
)

// CollaborationRequest is an email address's claim to collaborate on a space.
// At most one request exists per (space, email) pair.
type CollaborationRequest struct {
	ID                uint                `json:"id" gorm:"primaryKey"`
	SpaceID           uint                `json:"space_id" gorm:"not null;uniqueIndex:idx_space_collaborator"`
	Space             *Space              `json:"space,omitempty" gorm:"foreignKey:SpaceID;constraint:OnDelete:RESTRICT"`
	CollaboratorEmail string              `json:"collaborator_email" gorm:"type:varchar(255);not null;uniqueIndex:idx_space_collaborator;index"`
	Status            CollaborationStatus `json:"status" gorm:"type:varchar(20);not null;default:pending"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// Notification is the joined view of a request returned to its collaborator.
type Notification struct {
	SpaceID   uint                `json:"space_id"`
	SpaceName string              `json:"space_name"`
	Status    CollaborationStatus `json:"status"`
}

// AllModels lists every table the service owns, in migration order.
func AllModels() []interface{} {
	return []interface{}{&User{}, &Space{}, &CollaborationRequest{}}
}
