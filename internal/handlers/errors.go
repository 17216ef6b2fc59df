package handlers

import (
	"errors"
	"fmt"
	"log"

	"collabspace/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/gofiber/fiber/v2"
)

// newValidator returns a validator that also understands the notblank tag.
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// validate checks s and writes a 400 response when it fails. The returned
// bool reports whether s was valid.
func validate(c *fiber.Ctx, v *validator.Validate, s interface{}) (bool, error) {
	err := v.Struct(s)
	if err == nil {
		return true, nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": err.Error()})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"detail": "Validation failed",
		"errors": errorMessages,
	})
}

// invalidBody writes the response for a request body that could not be parsed.
func invalidBody(c *fiber.Ctx, err error) error {
	log.Printf("Error parsing request body for %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"detail": "Invalid request body",
	})
}

// respondError maps a service error to its HTTP status and JSON body.
func respondError(c *fiber.Ctx, err error) error {
	status, detail := fiber.StatusInternalServerError, "Internal server error"
	switch {
	case errors.Is(err, services.ErrValidation):
		status, detail = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrEmailTaken):
		status, detail = fiber.StatusBadRequest, "Email already registered"
	case errors.Is(err, services.ErrInvalidCredentials):
		status, detail = fiber.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, services.ErrSpaceNotFound):
		status, detail = fiber.StatusNotFound, "Space not found"
	case errors.Is(err, services.ErrDuplicateRequest):
		status, detail = fiber.StatusBadRequest, "Collaboration request already exists"
	case errors.Is(err, services.ErrRequestNotFound):
		status, detail = fiber.StatusNotFound, "Collaboration request not found"
	}
	if status == fiber.StatusInternalServerError {
		log.Printf("Error handling %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{"detail": detail})
}
