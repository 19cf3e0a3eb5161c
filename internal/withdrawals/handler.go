package withdrawals

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spincash/spin_cash/internal/identity"
	"github.com/spincash/spin_cash/internal/middleware"
)

// Handler exposes the user-facing withdrawal endpoint and the admin
// processing endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a withdrawal HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createRequest struct {
	Amount int64  `json:"amount"`
	Method string `json:"method"`
}

type processRequest struct {
	Action string `json:"action"`
}

// Create places a pending withdrawal for the authenticated user, holding the
// requested amount.
func (h *Handler) Create(c *fiber.Ctx) error {
	phone, _ := c.Locals(middleware.UserPhoneKey).(string)
	if phone == "" {
		return fiber.NewError(http.StatusUnauthorized, "missing session")
	}

	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	w, err := h.service.Create(c.UserContext(), phone, req.Amount, req.Method)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			return fiber.NewError(http.StatusBadRequest, "amount and method are required")
		case errors.Is(err, identity.ErrInsufficientBalance):
			return fiber.NewError(http.StatusBadRequest, "insufficient balance")
		case errors.Is(err, identity.ErrUserNotFound):
			return fiber.NewError(http.StatusNotFound, "user not found")
		}
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"ok": true, "withdrawal": w})
}

// List returns a full snapshot of all withdrawals for the admin dashboard.
func (h *Handler) List(c *fiber.Ctx) error {
	all, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	if all == nil {
		all = []Withdrawal{}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"ok": true, "withdrawals": all})
}

// Process approves or rejects a pending withdrawal.
func (h *Handler) Process(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid withdrawal id")
	}

	var req processRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	w, err := h.service.Process(c.UserContext(), id, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			return fiber.NewError(http.StatusBadRequest, "action must be approve or reject")
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(http.StatusNotFound, "withdrawal not found")
		case errors.Is(err, ErrAlreadyProcessed):
			return fiber.NewError(http.StatusConflict, "withdrawal already processed")
		}
		return err
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"ok": true, "withdrawal": w})
}
