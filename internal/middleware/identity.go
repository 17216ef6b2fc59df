package middleware

import (
	"errors"
	"log"

	"collabspace/internal/models"
	"collabspace/internal/services"

	"github.com/gofiber/fiber/v2"
)

// IdentityHeader carries the caller's email in place of an auth token.
const IdentityHeader = "email"

const userLocalsKey = "user"

// RequireIdentity resolves the email header to a user and stores it in the
// Fiber context. Requests without a known email are rejected with 401.
func RequireIdentity(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := c.Get(IdentityHeader)
		user, err := authService.ResolveIdentity(c.UserContext(), email)
		if err != nil {
			if !errors.Is(err, services.ErrInvalidCredentials) {
				log.Printf("Identity lookup failed for %q: %v", email, err)
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "Invalid authentication credentials",
			})
		}

		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by RequireIdentity.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(userLocalsKey).(*models.User)
	return user, ok && user != nil
}
