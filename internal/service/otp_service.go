package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/asset-service/internal/domain"
	"github.com/spec-kit/asset-service/internal/mailer"
	"github.com/spec-kit/asset-service/internal/repository"
	apperrors "github.com/spec-kit/asset-service/pkg/util/errorutil"
)

const otpDigits = 6

var otpTemplates = map[domain.OTPPurpose]mailer.Template{
	domain.OTPPurposeVerification:  mailer.TemplateOTPVerification,
	domain.OTPPurposeLogin:         mailer.TemplateOTPLogin,
	domain.OTPPurposePasswordReset: mailer.TemplateOTPPasswordReset,
}

// OTPService issues and consumes single-use email codes.
//
// A code is persisted only after its email was dispatched, so a failed
// delivery never leaves an unknown code behind and any previous code stays
// usable. Issuing again overwrites the stored code; concurrent issues are
// last-write-wins.
type OTPService struct {
	users  repository.UserRepository
	mail   Mailer
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

// OTPDependencies bundles collaborators for the OTP service.
type OTPDependencies struct {
	UserRepo repository.UserRepository
	Mailer   Mailer
	TTL      time.Duration
	Clock    func() time.Time
	Logger   *zap.Logger
}

// NewOTPService builds the service.
func NewOTPService(deps OTPDependencies) *OTPService {
	ttl := deps.TTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &OTPService{
		users:  deps.UserRepo,
		mail:   deps.Mailer,
		ttl:    ttl,
		now:    clockOrDefault(deps.Clock),
		logger: loggerOrNop(deps.Logger),
	}
}

type otpMail struct {
	Name       string
	Code       string
	TTLMinutes int
}

// Issue sends a fresh code for purpose to the account registered under email.
func (s *OTPService) Issue(ctx context.Context, email string, purpose domain.OTPPurpose) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return repoError("user", err)
	}

	switch purpose {
	case domain.OTPPurposeVerification:
		if user.IsVerified {
			return apperrors.NewConflict("account already verified", nil)
		}
	case domain.OTPPurposeLogin:
		if !user.IsVerified {
			return apperrors.NewUnauthorized("Account not verified")
		}
	}
	if user.IsSuspended && purpose != domain.OTPPurposeVerification {
		return apperrors.NewForbidden("account suspended")
	}

	credential, err := s.send(ctx, user, purpose)
	if err != nil {
		return err
	}

	user.OTP = credential
	if err := s.users.Update(ctx, user); err != nil {
		return repoError("user", err)
	}
	s.logger.Info("otp issued", zap.String("user_id", user.ID.Hex()), zap.String("purpose", string(purpose)))
	return nil
}

// IssueForNewUser emails a verification code to a user that is not stored
// yet and then creates it with the code attached. Nothing is stored when
// delivery fails.
func (s *OTPService) IssueForNewUser(ctx context.Context, user *domain.User) error {
	credential, err := s.send(ctx, user, domain.OTPPurposeVerification)
	if err != nil {
		return err
	}
	user.OTP = credential
	if err := s.users.Create(ctx, user); err != nil {
		return repoError("user", err)
	}
	s.logger.Info("user registered", zap.String("user_id", user.ID.Hex()))
	return nil
}

// Verify checks code for the account under email against a code issued for
// purpose. On success apply runs against the loaded user, the code is cleared
// and the user is persisted in one write. apply may reject the transition
// without consuming the code. Every wrong guess is counted; the code is
// dropped once domain.MaxOTPAttempts is reached.
func (s *OTPService) Verify(ctx context.Context, email string, purpose domain.OTPPurpose, code string, apply func(*domain.User) error) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, repoError("user", err)
	}
	if !user.OTP.Matches(code, purpose, s.now()) {
		s.recordFailure(ctx, user)
		return nil, apperrors.NewOTPInvalid()
	}
	if apply != nil {
		if err := apply(user); err != nil {
			return nil, err
		}
	}
	user.OTP = nil
	if err := s.users.Update(ctx, user); err != nil {
		return nil, repoError("user", err)
	}
	return user, nil
}

func (s *OTPService) recordFailure(ctx context.Context, user *domain.User) {
	if user.OTP == nil {
		return
	}
	if user.OTP.RecordFailure() {
		user.OTP = nil
		s.logger.Warn("otp invalidated after repeated failures", zap.String("user_id", user.ID.Hex()))
	}
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Warn("otp attempt not recorded", zap.String("user_id", user.ID.Hex()), zap.Error(err))
	}
}

func (s *OTPService) send(ctx context.Context, user *domain.User, purpose domain.OTPPurpose) (*domain.OTPCredential, error) {
	tmpl, ok := otpTemplates[purpose]
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown otp purpose %q", purpose), nil)
	}
	code, err := GenerateCode()
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	credential := &domain.OTPCredential{Code: code, Purpose: purpose, ExpiresAt: s.now().Add(s.ttl)}

	data := otpMail{Name: user.Name, Code: code, TTLMinutes: int(s.ttl / time.Minute)}
	if err := s.mail.SendTemplate(ctx, user.Email, user.Name, tmpl, data); err != nil {
		s.logger.Warn("otp email failed", zap.String("purpose", string(purpose)), zap.Error(err))
		return nil, apperrors.NewEmailDeliveryFailed(err)
	}
	return credential, nil
}

// GenerateCode returns a uniformly random numeric code.
func GenerateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < otpDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}
