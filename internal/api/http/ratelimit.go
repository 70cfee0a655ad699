package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/asset-service/internal/ratelimit"
	apperrors "github.com/spec-kit/asset-service/pkg/util/errorutil"
)

// RateLimit bounds requests per client IP within scope. When the limiter
// itself fails the request is let through.
func RateLimit(limiter ratelimit.Limiter, scope string, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil {
			return c.Next()
		}
		allowed, err := limiter.Allow(c.UserContext(), scope+":"+c.IP())
		if err != nil {
			logger.Warn("rate limiter unavailable; allowing request", zap.String("scope", scope), zap.Error(err))
			return c.Next()
		}
		if !allowed {
			return apperrors.NewRateLimited("Too many requests, please try again later")
		}
		return c.Next()
	}
}
