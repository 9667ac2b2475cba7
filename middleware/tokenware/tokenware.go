// Package tokenware turns the session verifier into fiber middleware: it
// gates a route on a valid bearer token and stores the resolved user in the
// request locals for downstream handlers.
package tokenware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-photoauth"
)

// DefaultContextKey is where the resolved user lands in fiber's locals.
const DefaultContextKey = "user"

type Config struct {
	Verifier *photoauth.SessionVerifier

	// ContextKey overrides where the resolved user is stored.
	ContextKey string

	// Filter skips the middleware when it returns true.
	Filter func(*fiber.Ctx) bool

	// ErrorHandler overrides the default JSON error responses.
	ErrorHandler func(*fiber.Ctx, error) error
}

// New builds the middleware. Config.Verifier is mandatory.
func New(cfg Config) fiber.Handler {
	if cfg.Verifier == nil {
		panic("tokenware: Config.Verifier is required")
	}
	if cfg.ContextKey == "" {
		cfg.ContextKey = DefaultContextKey
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		user, err := cfg.Verifier.Verify(c.UserContext(), c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		c.Locals(cfg.ContextKey, user)

		return c.Next()
	}
}

// UserFromContext returns the user a previous tokenware handler attached.
func UserFromContext(c *fiber.Ctx, key ...string) (*photoauth.User, bool) {
	contextKey := DefaultContextKey
	if len(key) > 0 && key[0] != "" {
		contextKey = key[0]
	}

	user, ok := c.Locals(contextKey).(*photoauth.User)
	return user, ok
}

func defaultErrorHandler(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, photoauth.ErrMissingToken):
		return respond(c, fiber.StatusBadRequest, "You did not provide a JSON Web Token in the Authorization header")
	case errors.Is(err, photoauth.ErrTokenExpired):
		return respond(c, fiber.StatusUnauthorized, "Token has expired")
	case errors.Is(err, photoauth.ErrUserNotFound):
		return respond(c, fiber.StatusBadRequest, "User no longer exists")
	case errors.Is(err, photoauth.ErrInvalidToken):
		return respond(c, fiber.StatusUnauthorized, "Invalid session token")
	default:
		return respond(c, fiber.StatusInternalServerError, "Something went wrong")
	}
}

func respond(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"message": msg})
}
