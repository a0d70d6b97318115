package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	authhandler "github.com/superadriano/hana-backend/internal/auth/handler"
	"github.com/superadriano/hana-backend/internal/card/domain"
	"github.com/superadriano/hana-backend/internal/card/dto"
	"github.com/superadriano/hana-backend/internal/card/service"
	autherror "github.com/superadriano/hana-backend/internal/errors"
)

type CardHandler struct {
	cardService *service.CardService
	validate    *validator.Validate
	log         *zap.Logger
}

func NewCardHandler(cardService *service.CardService, log *zap.Logger) *CardHandler {
	return &CardHandler{
		cardService: cardService,
		validate:    validator.New(),
		log:         log,
	}
}

func (h *CardHandler) Create(c *fiber.Ctx) error {
	var input dto.CreateCardInput
	if err := c.BodyParser(&input); err != nil {
		return h.fail(c, autherror.ErrValidation)
	}
	if err := h.validate.Struct(input); err != nil {
		return h.fail(c, autherror.ErrValidation)
	}

	user := authhandler.CurrentUser(c)

	card, err := h.cardService.Create(c.Context(), user.UserID, input)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"personCard": dto.CardOutputFrom(card),
	})
}

func (h *CardHandler) List(c *fiber.Ctx) error {
	user := authhandler.CurrentUser(c)

	filter := domain.ListFilter{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	if raw := c.Query("discoverable"); raw != "" {
		discoverable := raw == "true"
		filter.Discoverable = &discoverable
	}

	cards, err := h.cardService.List(c.Context(), user.UserID, filter)
	if err != nil {
		return h.fail(c, err)
	}

	out := make([]dto.CardOutput, 0, len(cards))
	for i := range cards {
		out = append(out, dto.CardOutputFrom(&cards[i]))
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"personCards": out,
		"total":       len(out),
		"hasMore":     len(out) == filter.Limit,
	})
}

func (h *CardHandler) Update(c *fiber.Ctx) error {
	var input dto.UpdateCardInput
	if err := c.BodyParser(&input); err != nil {
		return h.fail(c, autherror.ErrValidation)
	}
	if err := h.validate.Struct(input); err != nil {
		return h.fail(c, autherror.ErrValidation)
	}

	user := authhandler.CurrentUser(c)

	if err := h.cardService.Update(c.Context(), user.UserID, c.Params("id"), input); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Person card updated successfully",
	})
}

func (h *CardHandler) Delete(c *fiber.Ctx) error {
	user := authhandler.CurrentUser(c)

	if err := h.cardService.Delete(c.Context(), user.UserID, c.Params("id")); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Person card deleted successfully",
	})
}

func (h *CardHandler) ToggleDiscoverable(c *fiber.Ctx) error {
	var input dto.ToggleDiscoverableInput
	if err := c.BodyParser(&input); err != nil {
		return h.fail(c, autherror.ErrValidation)
	}

	user := authhandler.CurrentUser(c)

	if err := h.cardService.SetDiscoverable(c.Context(), user.UserID, c.Params("id"), input.IsDiscoverable); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Discoverability updated successfully",
	})
}

func (h *CardHandler) fail(c *fiber.Ctx, err error) error {
	return authhandler.RespondError(c, h.log, err)
}
