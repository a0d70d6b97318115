package errors

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidPhone        = errors.New("invalid phone number")
	ErrRateLimited         = errors.New("too many verification attempts")
	ErrInvalidCode         = errors.New("invalid or expired verification code")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrSessionExpired      = errors.New("session expired")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrUserNotFound        = errors.New("user not found")
	ErrCardNotFound        = errors.New("person card not found")
	ErrValidation          = errors.New("missing required fields")
)

// HTTPStatus maps a service error to the HTTP status, machine-readable code
// and client-safe message for the response envelope. Anything unrecognised is
// an internal error and must not leak details to the caller.
func HTTPStatus(err error) (int, string, string) {
	switch {
	case errors.Is(err, ErrInvalidPhone):
		return http.StatusBadRequest, "INVALID_PHONE", "Invalid phone number"
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, "RATE_LIMITED", "Too many verification attempts. Try again in 15 minutes."
	case errors.Is(err, ErrInvalidCode):
		return http.StatusBadRequest, "INVALID_CODE", "Invalid or expired verification code"
	case errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token"
	case errors.Is(err, ErrSessionExpired):
		return http.StatusUnauthorized, "SESSION_EXPIRED", "Session expired"
	case errors.Is(err, ErrInvalidRefreshToken):
		return http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "Invalid refresh token"
	case errors.Is(err, ErrUserNotFound):
		return http.StatusUnauthorized, "USER_NOT_FOUND", "User not found"
	case errors.Is(err, ErrCardNotFound):
		return http.StatusNotFound, "CARD_NOT_FOUND", "Person card not found"
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, "INVALID_INPUT", "Missing or invalid required fields"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong"
	}
}
