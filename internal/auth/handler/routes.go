package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	auth := app.Group("/api/auth")
	auth.Post("/send-code", h.SendCode)
	auth.Post("/verify-code", h.VerifyCode)
	auth.Post("/refresh", h.Refresh)
	auth.Post("/logout", h.RequireAuth(), h.Logout)

	users := app.Group("/api/users", h.RequireAuth())
	users.Get("/profile", h.GetProfile)
	users.Post("/profile", h.UpdateProfile)
	users.Put("/profile", h.UpdateProfile)
}
