package games

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spincash/spin_cash/internal/identity"
	"github.com/spincash/spin_cash/internal/middleware"
)

// Handler exposes the mini-game endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a games HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Spin plays the prize wheel for the authenticated user.
func (h *Handler) Spin(c *fiber.Ctx) error {
	return h.play(c, GameSpin)
}

// Scratch plays a scratch card for the authenticated user.
func (h *Handler) Scratch(c *fiber.Ctx) error {
	return h.play(c, GameScratch)
}

func (h *Handler) play(c *fiber.Ctx, game Game) error {
	phone, _ := c.Locals(middleware.UserPhoneKey).(string)
	if phone == "" {
		return fiber.NewError(http.StatusUnauthorized, "missing session")
	}

	res, err := h.service.Play(c.UserContext(), phone, game)
	if err != nil {
		if errors.Is(err, identity.ErrUserNotFound) {
			return fiber.NewError(http.StatusNotFound, "user not found")
		}
		return err
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"ok": true, "prize": res.Prize, "balance": res.Balance})
}
