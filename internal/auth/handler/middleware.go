package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/superadriano/hana-backend/internal/auth/service"
	autherror "github.com/superadriano/hana-backend/internal/errors"
)

const userContextKey = "userContext"

// RequireAuth validates the bearer access token and the live session behind
// it, then stashes the caller's identity for downstream handlers.
func (h *AuthHandler) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" || token == authHeader {
			return h.fail(c, autherror.ErrInvalidToken)
		}

		userCtx, err := h.authService.Authenticate(c.Context(), token)
		if err != nil {
			return h.fail(c, err)
		}

		c.Locals(userContextKey, userCtx)

		return c.Next()
	}
}

// CurrentUser returns the identity stored by RequireAuth. Only valid on
// routes behind that middleware.
func CurrentUser(c *fiber.Ctx) *service.UserContext {
	userCtx, _ := c.Locals(userContextKey).(*service.UserContext)
	return userCtx
}
