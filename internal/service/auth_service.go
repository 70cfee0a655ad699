package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/asset-service/internal/auth"
	"github.com/spec-kit/asset-service/internal/config"
	"github.com/spec-kit/asset-service/internal/domain"
	"github.com/spec-kit/asset-service/internal/repository"
	apperrors "github.com/spec-kit/asset-service/pkg/util/errorutil"
)

// Session is an issued session token.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// RegisterInput describes a self-registration.
type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
	Address     string
	Role        string
}

// AuthService coordinates registration, OTP and login flows.
type AuthService struct {
	users       repository.UserRepository
	otp         *OTPService
	tokenMgr    *auth.TokenManager
	revocations auth.RevocationStore
	bcryptCost  int
	logger      *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo    repository.UserRepository
	OTP         *OTPService
	Revocations auth.RevocationStore
	Logger      *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:       deps.UserRepo,
		otp:         deps.OTP,
		tokenMgr:    auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		revocations: deps.Revocations,
		bcryptCost:  cfg.Auth.BcryptCost,
		logger:      loggerOrNop(deps.Logger),
	}
}

// Register creates an unverified account and emails its verification code.
// The account is stored only once the email went out.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.Email = repository.NormalizeEmail(in.Email)
	if missing := missingFields(
		"name", in.Name,
		"email", in.Email,
		"password", in.Password,
		"phoneNumber", in.PhoneNumber,
		"address", in.Address,
	); len(missing) > 0 {
		return nil, apperrors.NewMissingFields(missing...)
	}
	if !ValidEmail(in.Email) {
		return nil, apperrors.NewValidationError("invalid email format", nil)
	}
	if err := auth.ValidatePassword(in.Password); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}
	role := domain.Role(strings.TrimSpace(in.Role))
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"allowed": []domain.Role{domain.RoleUser, domain.RoleMaintenanceAdmin}})
	}
	if role != domain.RoleUser {
		return nil, apperrors.NewForbidden("administrator accounts are created by administrators")
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, repoError("user", err)
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		PhoneNumber:  strings.TrimSpace(in.PhoneNumber),
		Address:      strings.TrimSpace(in.Address),
	}
	if err := s.otp.IssueForNewUser(ctx, user); err != nil {
		if apperrors.Is(err, apperrors.CodeConflict) {
			return nil, apperrors.NewConflict("email already registered", nil)
		}
		return nil, err
	}
	return user, nil
}

// VerifyAccount consumes a verification code, marks the account verified
// and issues a session.
func (s *AuthService) VerifyAccount(ctx context.Context, email, code string) (*domain.User, *Session, error) {
	if err := requireEmailAndCode(email, code); err != nil {
		return nil, nil, err
	}
	user, err := s.otp.Verify(ctx, email, domain.OTPPurposeVerification, code, func(u *domain.User) error {
		u.IsVerified = true
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	session, err := s.issueSession(user)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// ResendVerification issues a new verification code.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	if err := requireEmail(email); err != nil {
		return err
	}
	return s.otp.Issue(ctx, email, domain.OTPPurposeVerification)
}

// Login authenticates with email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, *Session, error) {
	if missing := missingFields("email", email, "password", password); len(missing) > 0 {
		return nil, nil, apperrors.NewMissingFields(missing...)
	}
	if !ValidEmail(strings.TrimSpace(email)) {
		return nil, nil, apperrors.NewValidationError("invalid email format", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, nil, repoError("user", err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if !user.IsVerified {
		return nil, nil, apperrors.NewUnauthorized("Account not verified")
	}
	if user.IsSuspended {
		return nil, nil, apperrors.NewForbidden("account suspended")
	}
	session, err := s.issueSession(user)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// RequestLoginCode emails a login code to a verified account.
func (s *AuthService) RequestLoginCode(ctx context.Context, email string) error {
	if err := requireEmail(email); err != nil {
		return err
	}
	return s.otp.Issue(ctx, email, domain.OTPPurposeLogin)
}

// LoginWithCode consumes a login code and issues a session.
func (s *AuthService) LoginWithCode(ctx context.Context, email, code string) (*domain.User, *Session, error) {
	if err := requireEmailAndCode(email, code); err != nil {
		return nil, nil, err
	}
	user, err := s.otp.Verify(ctx, email, domain.OTPPurposeLogin, code, func(u *domain.User) error {
		if u.IsSuspended {
			return apperrors.NewForbidden("account suspended")
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	session, err := s.issueSession(user)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// ForgotPassword emails a password reset code.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if err := requireEmail(email); err != nil {
		return err
	}
	return s.otp.Issue(ctx, email, domain.OTPPurposePasswordReset)
}

// ResetPassword consumes a reset code and stores the new password.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if missing := missingFields("email", email, "otp", code, "newPassword", newPassword); len(missing) > 0 {
		return apperrors.NewMissingFields(missing...)
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	_, err = s.otp.Verify(ctx, email, domain.OTPPurposePasswordReset, code, func(u *domain.User) error {
		u.PasswordHash = hash
		return nil
	})
	return err
}

// ChangePassword verifies the current password before storing the new one.
// Callers may only change their own password.
func (s *AuthService) ChangePassword(ctx context.Context, callerID, targetID, currentPassword, newPassword string) error {
	if callerID != targetID {
		return apperrors.NewForbidden("you can only change your own password")
	}
	if missing := missingFields("currentPassword", currentPassword, "newPassword", newPassword); len(missing) > 0 {
		return apperrors.NewMissingFields(missing...)
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	user, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return repoError("user", err)
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewValidationError("current password is incorrect", nil)
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	user.PasswordHash = hash
	return repoError("user", s.users.Update(ctx, user))
}

// Logout revokes the session token until it would have expired.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if s.revocations == nil || claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		s.logger.Warn("token revocation failed", zap.String("user_id", claims.Subject), zap.Error(err))
		return apperrors.NewInternalError(err)
	}
	return nil
}

// BootstrapAdmin creates a verified administrator when none exists under
// cfg.Email. It reports whether an account was created.
func (s *AuthService) BootstrapAdmin(ctx context.Context, cfg config.AdminConfig) (bool, error) {
	email := repository.NormalizeEmail(cfg.Email)
	if !ValidEmail(email) {
		return false, apperrors.NewValidationError("ADMIN_EMAIL is not a valid email", nil)
	}
	if err := auth.ValidatePassword(cfg.Password); err != nil {
		return false, apperrors.NewValidationError("ADMIN_PASSWORD: "+err.Error(), nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, repoError("user", err)
	}

	hash, err := auth.HashPassword(cfg.Password, s.bcryptCost)
	if err != nil {
		return false, apperrors.NewInternalError(err)
	}
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = "Administrator"
	}
	admin := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleMaintenanceAdmin,
		IsVerified:   true,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return false, nil
		}
		return false, repoError("user", err)
	}
	s.logger.Info("admin account bootstrapped", zap.String("email", email))
	return true, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) issueSession(user *domain.User) (*Session, error) {
	token, claims, err := s.tokenMgr.GenerateToken(user.ID.Hex(), user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &Session{Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func requireEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.NewMissingFields("email")
	}
	return nil
}

func requireEmailAndCode(email, code string) error {
	if missing := missingFields("email", email, "otp", code); len(missing) > 0 {
		return apperrors.NewMissingFields(missing...)
	}
	return nil
}
