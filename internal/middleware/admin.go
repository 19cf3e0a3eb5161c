package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// AdminTokenHeader carries the shared admin capability token.
const AdminTokenHeader = "X-Admin-Token"

// AdminToken gates admin routes on the single shared token. The comparison
// is constant time; a mismatch fails with 403 as the original API did.
func AdminToken(token string) fiber.Handler {
	expected := []byte(token)
	return func(c *fiber.Ctx) error {
		presented := []byte(c.Get(AdminTokenHeader))
		if len(expected) == 0 || subtle.ConstantTimeCompare(presented, expected) != 1 {
			return fiber.NewError(http.StatusForbidden, "unauthorized")
		}
		return c.Next()
	}
}
