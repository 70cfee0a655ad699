package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/asset-service/internal/auth"
	apperrors "github.com/spec-kit/asset-service/pkg/util/errorutil"
)

func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return nil
}

// success renders body inside the success envelope.
func success(c *fiber.Ctx, status int, body fiber.Map) error {
	if body == nil {
		body = fiber.Map{}
	}
	body["success"] = true
	return c.Status(status).JSON(body)
}

func principal(c *fiber.Ctx) (*auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return p, nil
}

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

func (cc CookieConfig) set(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     cc.Name,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   cc.Secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func (cc CookieConfig) clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     cc.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   cc.Secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
