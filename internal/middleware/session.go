package middleware

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spincash/spin_cash/internal/session"
)

// UserPhoneKey is the request-local key holding the authenticated phone.
const UserPhoneKey = "user_phone"

// SessionAuth resolves the bearer session token to a canonical phone number
// and stores it in request locals. Requests with a missing or unknown token
// fail with 401.
func SessionAuth(sessions session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
		}
		token := strings.TrimSpace(authz[len("Bearer "):])

		phone, err := sessions.Lookup(c.UserContext(), token)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid session token")
		}

		c.Locals(UserPhoneKey, phone)
		return c.Next()
	}
}
