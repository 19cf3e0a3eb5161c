package identity

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spincash/spin_cash/internal/middleware"
	"github.com/spincash/spin_cash/internal/session"
)

// Handler exposes the OTP login flow and the profile endpoint.
type Handler struct {
	service  *Service
	sessions session.Store
}

// NewHandler constructs an identity HTTP handler.
func NewHandler(service *Service, sessions session.Store) *Handler {
	return &Handler{service: service, sessions: sessions}
}

type sendOTPRequest struct {
	Username string `json:"username"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

type verifyOTPRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// SendOTP issues a one-time code for the phone. Mock mode: the code is
// echoed in the response instead of being delivered out of band.
func (h *Handler) SendOTP(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Phone) == "" {
		return fiber.NewError(http.StatusBadRequest, "phone is required")
	}

	code, err := h.service.RequestCode(c.UserContext(), req.Username, req.Phone, req.Email)
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"ok": true, "otp": code})
}

// VerifyOTP checks the submitted code, creates the user on first login and
// returns a fresh session token.
func (h *Handler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Phone) == "" || strings.TrimSpace(req.Code) == "" {
		return fiber.NewError(http.StatusBadRequest, "phone and code are required")
	}

	user, err := h.service.VerifyCode(c.UserContext(), req.Phone, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, ErrChallengeNotFound):
			return fiber.NewError(http.StatusNotFound, "no code issued for this phone")
		case errors.Is(err, ErrCodeExpired):
			return fiber.NewError(http.StatusUnauthorized, "code expired")
		case errors.Is(err, ErrCodeMismatch):
			return fiber.NewError(http.StatusUnauthorized, "invalid code")
		}
		return err
	}

	token, err := h.sessions.Create(c.UserContext(), user.Phone)
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"ok": true, "token": token, "user": user})
}

// Me returns the authenticated user's record.
func (h *Handler) Me(c *fiber.Ctx) error {
	phone, _ := c.Locals(middleware.UserPhoneKey).(string)
	if phone == "" {
		return fiber.NewError(http.StatusUnauthorized, "missing session")
	}

	user, err := h.service.Find(c.UserContext(), phone)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return fiber.NewError(http.StatusNotFound, "user not found")
		}
		return err
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"ok": true, "user": user})
}
