package middleware

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"recipe-catalog/domain"
	"recipe-catalog/entities"
	"recipe-catalog/internal/api/presenters"
	"recipe-catalog/internal/metrics"
	"recipe-catalog/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		MetricsMiddleware() fiber.Handler
	}

	// UserLookup loads the account a token was issued for.
	UserLookup interface {
		GetUserByID(ctx context.Context, id int) (*entities.User, error)
	}

	middleware struct {
		users        UserLookup
		allowOrigins string
	}
)

func NewMiddleware(users UserLookup, allowOrigins string) Middleware {
	if allowOrigins == "" {
		allowOrigins = "*"
	}
	return &middleware{
		users:        users,
		allowOrigins: allowOrigins,
	}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: m.allowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	})
}

func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return unauthorized(c, domain.MessageFailedGetToken, err)
		}

		userID, err := jwtService.GetUserIDByToken(token)
		if err != nil {
			return unauthorized(c, domain.MessageFailedTokenInvalid, err)
		}

		user, err := m.users.GetUserByID(c.Context(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return unauthorized(c, domain.MessageUnauthorized, domain.ErrTokenInvalid)
			}
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedProcessRequest, err)
		}
		if !user.IsActive {
			return unauthorized(c, domain.MessageUnauthorized, domain.ErrUserInactive)
		}

		c.Locals("user_id", user.ID)
		c.Locals("user", user)
		return c.Next()
	}
}

func bearerToken(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, domain.TokenTypeBearer) {
		return "", domain.ErrTokenNotFound
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", domain.ErrTokenNotFound
	}
	return token, nil
}

func unauthorized(c *fiber.Ctx, message string, err error) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return presenters.ErrorResponse(c, fiber.StatusUnauthorized, message, err)
}

func (m *middleware) MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		route := c.Route().Path
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
			// unmatched paths would explode the label set
			if status == fiber.StatusNotFound {
				route = "unmatched"
			}
		}

		metrics.HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// ErrorHandler renders errors that escape handlers in the response envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := domain.MessageInternalError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
		if code == fiber.StatusNotFound {
			message = domain.MessageRouteNotFound
		}
	}
	return presenters.ErrorResponse(c, code, message, err)
}
