package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *CardHandler, requireAuth fiber.Handler) {
	cards := app.Group("/api/person-cards", requireAuth)
	cards.Post("/", h.Create)
	cards.Get("/", h.List)
	cards.Put("/:id", h.Update)
	cards.Delete("/:id", h.Delete)
	cards.Post("/:id/discoverable", h.ToggleDiscoverable)
}
