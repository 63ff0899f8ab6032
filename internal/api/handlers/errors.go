package handlers

import (
	"errors"

	"recipe-catalog/domain"
	"recipe-catalog/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps domain errors to HTTP status codes. Anything unknown is a
// server fault.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrBookmarkNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrPasswordTooLong),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrEmailAlreadyVerified),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUserInactive):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrReindexInProgress):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrMailerNotConfigured),
		errors.Is(err, domain.ErrSearchUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func validationError(err error) error {
	return errors.New(utils.ValidationMessage(err))
}
