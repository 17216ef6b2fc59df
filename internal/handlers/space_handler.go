package handlers

import (
	"time"

	"collabspace/internal/models"
	"collabspace/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// SpaceHandler handles HTTP requests for spaces.
type SpaceHandler struct {
	service  *services.SpaceService
	validate *validator.Validate
}

// NewSpaceHandler creates a new SpaceHandler.
func NewSpaceHandler(service *services.SpaceService) *SpaceHandler {
	return &SpaceHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the space routes with the Fiber app.
func (h *SpaceHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/spaces", h.HandleCreateSpace)
	router.Get("/spaces", h.HandleListSpaces)
}

// CreateSpaceRequest represents the request body for creating a space.
type CreateSpaceRequest struct {
	SpaceName   string   `json:"space_name" validate:"required"`
	Tags        []string `json:"tags" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	GithubID    string   `json:"github_id" validate:"required"`
	Description string   `json:"description" validate:"required"`
}

// SpaceResponse is a space with its tags split back into a list.
type SpaceResponse struct {
	ID            uint      `json:"id"`
	SpaceName     string    `json:"space_name"`
	Tags          []string  `json:"tags"`
	Category      string    `json:"category"`
	GithubID      string    `json:"github_id"`
	Description   string    `json:"description"`
	Collaborators []string  `json:"collaborators"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func newSpaceResponse(s models.Space) SpaceResponse {
	collaborators := []string(s.Collaborators)
	if collaborators == nil {
		collaborators = []string{}
	}
	return SpaceResponse{
		ID:            s.ID,
		SpaceName:     s.SpaceName,
		Tags:          s.TagList(),
		Category:      s.Category,
		GithubID:      s.GithubID,
		Description:   s.Description,
		Collaborators: collaborators,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// HandleCreateSpace creates a new space.
func (h *SpaceHandler) HandleCreateSpace(c *fiber.Ctx) error {
	var req CreateSpaceRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if ok, err := validate(c, h.validate, req); !ok {
		return err
	}

	space, err := h.service.CreateSpace(c.UserContext(), services.CreateSpaceInput{
		SpaceName:   req.SpaceName,
		Tags:        req.Tags,
		Category:    req.Category,
		GithubID:    req.GithubID,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":  "Space created successfully",
		"space_id": space.ID,
	})
}

// HandleListSpaces returns every space.
func (h *SpaceHandler) HandleListSpaces(c *fiber.Ctx) error {
	spaces, err := h.service.ListSpaces(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	out := make([]SpaceResponse, 0, len(spaces))
	for _, s := range spaces {
		out = append(out, newSpaceResponse(s))
	}
	return c.JSON(out)
}
