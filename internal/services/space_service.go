package services

import (
	"context"
	"fmt"
	"strings"

	"collabspace/internal/models"
	"collabspace/internal/repositories"
)

// CreateSpaceInput carries the fields of a new space.
type CreateSpaceInput struct {
	SpaceName   string
	Tags        []string
	Category    string
	GithubID    string
	Description string
}

// SpaceService handles business logic related to spaces.
type SpaceService struct {
	repo repositories.SpaceRepository
}

// NewSpaceService creates a new SpaceService.
func NewSpaceService(repo repositories.SpaceRepository) *SpaceService {
	return &SpaceService{
		repo: repo,
	}
}

// CreateSpace trims and validates the input and stores a new space.
func (s *SpaceService) CreateSpace(ctx context.Context, in CreateSpaceInput) (*models.Space, error) {
	fields := []struct {
		name  string
		value *string
	}{
		{"space_name", &in.SpaceName},
		{"category", &in.Category},
		{"github_id", &in.GithubID},
		{"description", &in.Description},
	}
	for _, f := range fields {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			return nil, fmt.Errorf("%s must not be empty: %w", f.name, ErrValidation)
		}
	}

	tags := NormalizeTags(in.Tags)
	if len(tags) == 0 {
		return nil, fmt.Errorf("at least one non-empty tag is required: %w", ErrValidation)
	}

	space := &models.Space{
		SpaceName:     in.SpaceName,
		Tags:          models.JoinTags(tags),
		Category:      in.Category,
		GithubID:      in.GithubID,
		Description:   in.Description,
		Collaborators: []string{},
	}
	if err := s.repo.Create(ctx, space); err != nil {
		return nil, err
	}
	return space, nil
}

// ListSpaces returns every space.
func (s *SpaceService) ListSpaces(ctx context.Context) ([]models.Space, error) {
	return s.repo.GetAll(ctx)
}

// NormalizeTags trims each tag and drops the empty ones.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
