package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/asset-service/internal/domain"
	"github.com/spec-kit/asset-service/internal/repository"
	apperrors "github.com/spec-kit/asset-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	User   *domain.User
	Claims *Claims
}

// AuthMiddleware validates session tokens and loads the calling user.
type AuthMiddleware struct {
	tokens      *TokenManager
	users       repository.UserRepository
	revocations RevocationStore
	cookieName  string
	logger      *zap.Logger
}

// NewAuthMiddleware constructs middleware. revocations may be nil.
func NewAuthMiddleware(tokens *TokenManager, users repository.UserRepository, revocations RevocationStore, cookieName string, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, revocations: revocations, cookieName: cookieName, logger: logger}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	raw, err := m.extractToken(c)
	if err != nil {
		return err
	}

	claims, err := m.tokens.ParseToken(raw)
	if err != nil {
		return apperrors.NewUnauthorized("invalid or expired token")
	}

	ctx := c.UserContext()
	if m.revocations != nil && claims.ID != "" {
		revoked, err := m.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			m.logger.Warn("revocation check failed", zap.Error(err))
		} else if revoked {
			return apperrors.NewUnauthorized("token revoked")
		}
	}

	user, err := m.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return apperrors.NewUnauthorized("user not found")
		}
		return apperrors.NewInternalError(err)
	}
	if user.IsSuspended {
		return apperrors.NewForbidden("account suspended")
	}

	// Handlers only ever need the profile, so credentials stay behind.
	profile := *user
	profile.PasswordHash = ""
	profile.OTP = nil
	c.Locals(principalKey, &Principal{User: &profile, Claims: claims})
	return c.Next()
}

// The cookie wins over the Authorization header.
func (m *AuthMiddleware) extractToken(c *fiber.Ctx) (string, error) {
	if token := c.Cookies(m.cookieName); token != "" {
		return token, nil
	}

	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return "", apperrors.NewUnauthorized("authentication required")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", apperrors.NewUnauthorized("invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok && principal.User != nil
}
