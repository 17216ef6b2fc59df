package handlers

import (
	"log"

	"collabspace/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CollaborationHandler handles HTTP requests for collaboration requests.
type CollaborationHandler struct {
	service  *services.CollaborationService
	validate *validator.Validate
}

// NewCollaborationHandler creates a new CollaborationHandler.
func NewCollaborationHandler(service *services.CollaborationService) *CollaborationHandler {
	return &CollaborationHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the collaboration routes with the Fiber app.
func (h *CollaborationHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/collaborate", h.HandleRequestCollaboration)
	router.Get("/notifications", h.HandleNotifications)
	router.Post("/approve_collaboration", h.HandleApprove)
}

// CollaborateRequest represents the request body for a collaboration request.
// SpaceID is not required: an unknown id, zero included, is a 404.
type CollaborateRequest struct {
	SpaceID           uint   `json:"space_id"`
	CollaboratorEmail string `json:"collaborator_email" validate:"required,notblank"`
}

// NotificationsQuery holds the query parameters of the notifications endpoint.
type NotificationsQuery struct {
	Email string `query:"email" validate:"required"`
}

// ApproveQuery holds the query parameters of the approval endpoint.
type ApproveQuery struct {
	SpaceID           uint   `query:"space_id"`
	CollaboratorEmail string `query:"collaborator_email" validate:"required"`
}

// HandleRequestCollaboration records a pending collaboration request.
func (h *CollaborationHandler) HandleRequestCollaboration(c *fiber.Ctx) error {
	var req CollaborateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c, err)
	}
	if ok, err := validate(c, h.validate, req); !ok {
		return err
	}

	if _, err := h.service.RequestCollaboration(c.UserContext(), req.SpaceID, req.CollaboratorEmail); err != nil {
		log.Printf("Error requesting collaboration on space %d for %s: %v", req.SpaceID, req.CollaboratorEmail, err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Collaboration request sent successfully",
	})
}

// HandleNotifications lists the collaboration requests made by an email.
// The email is taken as given and not checked against any user.
func (h *CollaborationHandler) HandleNotifications(c *fiber.Ctx) error {
	var q NotificationsQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c, err)
	}
	if ok, err := validate(c, h.validate, q); !ok {
		return err
	}

	notifications, err := h.service.Notifications(c.UserContext(), q.Email)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(notifications)
}

// HandleApprove approves the request identified by the space_id and
// collaborator_email query parameters.
func (h *CollaborationHandler) HandleApprove(c *fiber.Ctx) error {
	var q ApproveQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c, err)
	}
	if ok, err := validate(c, h.validate, q); !ok {
		return err
	}

	if _, err := h.service.Approve(c.UserContext(), q.SpaceID, q.CollaboratorEmail); err != nil {
		log.Printf("Error approving collaboration on space %d for %s: %v", q.SpaceID, q.CollaboratorEmail, err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Collaboration approved successfully",
	})
}
