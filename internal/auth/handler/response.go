package handler

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	autherror "github.com/superadriano/hana-backend/internal/errors"
)

// RespondError writes the {success, code, message} failure envelope. Internal
// errors are logged with their cause and surface only the generic message.
func RespondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	status, code, message := autherror.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"code":    code,
		"message": message,
	})
}
