package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spincash/spin_cash/internal/identity"
)

// RegisterOTPRoutes wires the one-time-code login endpoints.
func RegisterOTPRoutes(r fiber.Router, h *identity.Handler, rateLimiter fiber.Handler) {
	if rateLimiter != nil {
		r.Post("/send-otp", rateLimiter, h.SendOTP)
	} else {
		r.Post("/send-otp", h.SendOTP)
	}
	r.Post("/verify-otp", h.VerifyOTP)
}
