package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/spincash/spin_cash/internal/identity"
	"github.com/spincash/spin_cash/internal/middleware"
	"github.com/spincash/spin_cash/internal/withdrawals"
)

// RegisterAdminRoutes wires the admin login route and token-gated admin APIs.
func RegisterAdminRoutes(r fiber.Router, d Deps, ids *identity.Service, wh *withdrawals.Handler, idem fiber.Handler) {
	passwordHash := []byte(d.Cfg.AdminPasswordHash)

	admin := r.Group("/admin")

	admin.Post("/login", func(c *fiber.Ctx) error {
		var req struct {
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		if len(passwordHash) == 0 ||
			bcrypt.CompareHashAndPassword(passwordHash, []byte(req.Password)) != nil {
			return fiber.NewError(http.StatusUnauthorized, "invalid credentials")
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{"ok": true, "token": d.Cfg.AdminToken})
	})

	gate := middleware.AdminToken(d.Cfg.AdminToken)
	protected := admin.Group("", gate)

	protected.Get("/users", func(c *fiber.Ctx) error {
		users, err := ids.List(c.UserContext())
		if err != nil {
			return err
		}
		if users == nil {
			users = []identity.User{}
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{"ok": true, "users": users})
	})

	protected.Get("/withdrawals", wh.List)
	if idem != nil {
		protected.Post("/withdrawals/:id/process", idem, wh.Process)
	} else {
		protected.Post("/withdrawals/:id/process", wh.Process)
	}
}
