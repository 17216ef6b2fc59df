package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"collabspace/internal/models"
	"collabspace/internal/repositories"
)

// Routing keys of published collaboration events.
const (
	EventCollaborationRequested = "collaboration.requested"
	EventCollaborationApproved  = "collaboration.approved"
)

// CollaborationEvent is published after a request changes state.
type CollaborationEvent struct {
	Type              string                     `json:"type"`
	RequestID         uint                       `json:"request_id"`
	SpaceID           uint                       `json:"space_id"`
	CollaboratorEmail string                     `json:"collaborator_email"`
	Status            models.CollaborationStatus `json:"status"`
	OccurredAt        time.Time                  `json:"occurred_at"`
}

// EventPublisher delivers collaboration events to downstream consumers.
type EventPublisher interface {
	PublishJSON(routingKey string, payload interface{}) error
}

// CollaborationService handles collaboration requests and their approval.
type CollaborationService struct {
	collabRepo repositories.CollaborationRepository
	spaceRepo  repositories.SpaceRepository
	publisher  EventPublisher // optional
}

// NewCollaborationService creates a new CollaborationService. publisher may be nil.
func NewCollaborationService(collabRepo repositories.CollaborationRepository, spaceRepo repositories.SpaceRepository, publisher EventPublisher) *CollaborationService {
	return &CollaborationService{
		collabRepo: collabRepo,
		spaceRepo:  spaceRepo,
		publisher:  publisher,
	}
}

// RequestCollaboration records a pending request by email on a space.
func (s *CollaborationService) RequestCollaboration(ctx context.Context, spaceID uint, email string) (*models.CollaborationRequest, error) {
	if _, err := s.spaceRepo.GetByID(ctx, spaceID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("space %d: %w", spaceID, ErrSpaceNotFound)
		}
		return nil, err
	}

	existing, err := s.collabRepo.GetBySpaceAndEmail(ctx, spaceID, email)
	if err == nil && existing != nil {
		return nil, ErrDuplicateRequest
	}
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	req := &models.CollaborationRequest{
		SpaceID:           spaceID,
		CollaboratorEmail: email,
		Status:            models.StatusPending,
	}
	if err := s.collabRepo.Create(ctx, req); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrDuplicateRequest
		}
		return nil, err
	}

	s.publish(EventCollaborationRequested, req)
	return req, nil
}

// Notifications lists the requests made by email together with their spaces.
func (s *CollaborationService) Notifications(ctx context.Context, email string) ([]models.Notification, error) {
	return s.collabRepo.ListNotifications(ctx, email)
}

// Approve moves the request for (spaceID, email) to approved.
func (s *CollaborationService) Approve(ctx context.Context, spaceID uint, email string) (*models.CollaborationRequest, error) {
	req, err := s.collabRepo.Approve(ctx, spaceID, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	s.publish(EventCollaborationApproved, req)
	return req, nil
}

func (s *CollaborationService) publish(eventType string, req *models.CollaborationRequest) {
	if s.publisher == nil {
		return
	}
	event := CollaborationEvent{
		Type:              eventType,
		RequestID:         req.ID,
		SpaceID:           req.SpaceID,
		CollaboratorEmail: req.CollaboratorEmail,
		Status:            req.Status,
		OccurredAt:        time.Now().UTC(),
	}
	if err := s.publisher.PublishJSON(eventType, event); err != nil {
		log.Printf("Warning: Failed to publish %s event for request %d: %v", eventType, req.ID, err)
	}
}
