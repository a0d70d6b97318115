package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/superadriano/hana-backend/internal/auth/dto"
	"github.com/superadriano/hana-backend/internal/auth/service"
	autherror "github.com/superadriano/hana-backend/internal/errors"
)

type AuthHandler struct {
	authService *service.AuthService
	validate    *validator.Validate
	log         *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
		log:         log,
	}
}

func (h *AuthHandler) SendCode(c *fiber.Ctx) error {
	var input dto.SendCodeInput
	if err := c.BodyParser(&input); err != nil {
		return h.fail(c, autherror.ErrInvalidPhone)
	}
	if input.PhoneNumber == "" {
		return h.fail(c, autherror.ErrInvalidPhone)
	}

	requestID, err := h.authService.RequestCode(c.Context(), input)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(dto.SendCodeOutput{
		Success:   true,
		Message:   "Verification code sent",
		RequestID: requestID,
	})
}

func (h *AuthHandler) VerifyCode(c *fiber.Ctx) error {
	var input dto.VerifyCodeInput
	if err := c.BodyParser(&input); err != nil {
		return h.fail(c, autherror.ErrValidation)
	}
	if err := h.validate.Struct(input); err != nil {
		return h.fail(c, autherror.ErrValidation)
	}

	input.IPAddress = c.IP()
	input.UserAgent = string(c.Request().Header.UserAgent())

	userAuth, err := h.authService.VerifyCode(c.Context(), input)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"userAuth": userAuth,
	})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return h.fail(c, autherror.ErrValidation)
	}
	if err := h.validate.Struct(input); err != nil {
		return h.fail(c, autherror.ErrValidation)
	}

	input.IPAddress = c.IP()
	input.UserAgent = string(c.Request().Header.UserAgent())

	userAuth, err := h.authService.Refresh(c.Context(), input)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"userAuth": userAuth,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var input dto.LogoutInput
	if err := c.BodyParser(&input); err != nil {
		return h.fail(c, autherror.ErrValidation)
	}

	if err := h.authService.Logout(c.Context(), input.RefreshToken); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out",
	})
}

func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	userCtx := CurrentUser(c)

	user, err := h.authService.GetProfile(c.Context(), userCtx.UserID)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"profile": dto.ProfileOutput{
			UserID:      user.ID,
			PhoneNumber: user.PhoneNumber,
			FullName:    user.FullName,
			HairColor:   user.HairColor,
			IsOnboarded: user.IsOnboarded,
			CreatedAt:   user.CreatedAt,
			UpdatedAt:   user.UpdatedAt,
		},
	})
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var input dto.ProfileInput
	if err := c.BodyParser(&input); err != nil {
		return h.fail(c, autherror.ErrValidation)
	}
	if err := h.validate.Struct(input); err != nil {
		return h.fail(c, autherror.ErrValidation)
	}

	userCtx := CurrentUser(c)

	if err := h.authService.UpdateProfile(c.Context(), userCtx.UserID, input); err != nil {
		return h.fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Profile updated successfully",
	})
}

func (h *AuthHandler) fail(c *fiber.Ctx, err error) error {
	return RespondError(c, h.log, err)
}
