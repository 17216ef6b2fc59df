package services_test

import (
	"context"

	"collabspace/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockSpaceRepository is a mock implementation of repositories.SpaceRepository
type MockSpaceRepository struct {
	mock.Mock
}

func (m *MockSpaceRepository) GetAll(ctx context.Context) ([]models.Space, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Space), args.Error(1)
}

func (m *MockSpaceRepository) GetByID(ctx context.Context, id uint) (*models.Space, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Space), args.Error(1)
}

func (m *MockSpaceRepository) Create(ctx context.Context, space *models.Space) error {
	args := m.Called(ctx, space)
	return args.Error(0)
}

// MockCollaborationRepository is a mock implementation of repositories.CollaborationRepository
type MockCollaborationRepository struct {
	mock.Mock
}

func (m *MockCollaborationRepository) Create(ctx context.Context, req *models.CollaborationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockCollaborationRepository) GetBySpaceAndEmail(ctx context.Context, spaceID uint, email string) (*models.CollaborationRequest, error) {
	args := m.Called(ctx, spaceID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CollaborationRequest), args.Error(1)
}

func (m *MockCollaborationRepository) ListNotifications(ctx context.Context, email string) ([]models.Notification, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockCollaborationRepository) Approve(ctx context.Context, spaceID uint, email string) (*models.CollaborationRequest, error) {
	args := m.Called(ctx, spaceID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CollaborationRequest), args.Error(1)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishJSON(routingKey string, payload interface{}) error {
	args := m.Called(routingKey, payload)
	return args.Error(0)
}
