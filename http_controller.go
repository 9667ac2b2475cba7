package photoauth

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
)

// HTTPController maps the three auth routes onto the resolver. Responses are
// {token, user} on success and {message} on failure; login failures keep the
// original field-scoped message shape so clients can mark the right input.
type HTTPController struct {
	accounts AccountAuthenticator
	logger   Logger
}

type HTTPControllerOption func(*HTTPController) *HTTPController

func NewHTTPController(accounts AccountAuthenticator, opts ...HTTPControllerOption) *HTTPController {
	c := &HTTPController{
		accounts: accounts,
		logger:   defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	return c
}

func WithControllerLogger(logger Logger) HTTPControllerOption {
	return func(c *HTTPController) *HTTPController {
		if logger != nil {
			c.logger = logger
		}
		return c
	}
}

// RegisterRoutes mounts the auth endpoints on the given app.
func (c *HTTPController) RegisterRoutes(app *fiber.App) {
	grp := app.Group("/auth")
	grp.Post("/signup", c.Signup)
	grp.Post("/login", c.Login)
	grp.Post("/instagram", c.Instagram)
}

type SignupPayload struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (p SignupPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		// bcrypt truncates past 72 bytes
		validation.Field(&p.Password, validation.Required, validation.Length(6, 72)),
	)
}

type LoginPayload struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (p LoginPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required),
	)
}

// ExchangePayload mirrors what the OAuth popup posts back. ClientID and
// RedirectURI are accepted for wire compatibility but the exchange always
// uses the server-configured values.
type ExchangePayload struct {
	Code        string `json:"code" form:"code"`
	ClientID    string `json:"clientId" form:"clientId"`
	RedirectURI string `json:"redirectUri" form:"redirectUri"`
}

func (p ExchangePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Code, validation.Required),
	)
}

func (c *HTTPController) Signup(ctx *fiber.Ctx) error {
	var payload SignupPayload
	if err := ctx.BodyParser(&payload); err != nil {
		return message(ctx, fiber.StatusBadRequest, "Invalid request payload")
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err})
	}

	result, err := c.accounts.Signup(ctx.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return c.respondError(ctx, err)
	}

	return ctx.JSON(result)
}

func (c *HTTPController) Login(ctx *fiber.Ctx) error {
	var payload LoginPayload
	if err := ctx.BodyParser(&payload); err != nil {
		return message(ctx, fiber.StatusBadRequest, "Invalid request payload")
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err})
	}

	result, err := c.accounts.Login(ctx.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return c.respondError(ctx, err)
	}

	return ctx.JSON(result)
}

func (c *HTTPController) Instagram(ctx *fiber.Ctx) error {
	var payload ExchangePayload
	if err := ctx.BodyParser(&payload); err != nil {
		return message(ctx, fiber.StatusBadRequest, "Invalid request payload")
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err})
	}

	result, err := c.accounts.ExchangeCode(ctx.UserContext(), payload.Code, ctx.Get(fiber.HeaderAuthorization))
	if err != nil {
		return c.respondError(ctx, err)
	}

	return ctx.JSON(result)
}

func (c *HTTPController) respondError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return message(ctx, fiber.StatusConflict, "Email is already taken")
	case errors.Is(err, ErrIncorrectEmail):
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": fiber.Map{"email": "Incorrect email"},
		})
	case errors.Is(err, ErrIncorrectPassword):
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": fiber.Map{"password": "Incorrect password"},
		})
	case errors.Is(err, ErrMissingToken):
		return message(ctx, fiber.StatusBadRequest, "You did not provide a JSON Web Token in the Authorization header")
	case errors.Is(err, ErrInvalidToken):
		return message(ctx, fiber.StatusUnauthorized, "Invalid session token")
	case errors.Is(err, ErrTokenExpired):
		return message(ctx, fiber.StatusUnauthorized, "Token has expired")
	case errors.Is(err, ErrUserNotFound):
		return message(ctx, fiber.StatusBadRequest, "User no longer exists")
	case errors.Is(err, ErrProviderExchangeFailed):
		return message(ctx, fiber.StatusBadGateway, "Provider code exchange failed")
	case errors.Is(err, ErrStorageConflict):
		return message(ctx, fiber.StatusConflict, "Conflicting record already exists")
	default:
		c.logger.Error("unhandled auth error", "error", err)
		return message(ctx, fiber.StatusInternalServerError, "Something went wrong")
	}
}

func message(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{"message": msg})
}
