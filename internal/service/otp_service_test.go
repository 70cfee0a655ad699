package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/spec-kit/asset-service/internal/domain"
	apperrors "github.com/spec-kit/asset-service/pkg/util/errorutil"
)

func TestGenerateCode(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode: %v", err)
		}
		if !pattern.MatchString(code) {
			t.Fatalf("code %q is not six digits", code)
		}
	}
}

func TestOTPVerifyExpiryBoundary(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		wantErr bool
	}{
		{name: "well within ttl", elapsed: time.Minute},
		{name: "one second before expiry", elapsed: 9*time.Minute + 59*time.Second},
		{name: "exactly at expiry", elapsed: 10 * time.Minute},
		{name: "one second after expiry", elapsed: 10*time.Minute + time.Second, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newAuthEnv()
			ctx := context.Background()
			if _, err := env.auth.Register(ctx, RegisterInput{
				Name: "Dana", Email: "dana@example.com", Password: "secret1", PhoneNumber: "1", Address: "2",
			}); err != nil {
				t.Fatalf("Register: %v", err)
			}
			issuedAt := env.clock.Now()
			code := env.mail.lastCode(t)

			env.clock.Set(issuedAt.Add(tc.elapsed))
			_, _, err := env.auth.VerifyAccount(ctx, "dana@example.com", code)
			if tc.wantErr {
				requireCode(t, err, apperrors.CodeOTPInvalid)
				return
			}
			if err != nil {
				t.Fatalf("VerifyAccount: %v", err)
			}
		})
	}
}

func TestOTPIsSingleUse(t *testing.T) {
	env := newAuthEnv()
	ctx := context.Background()
	env.registerVerified(t, "eve@example.com", "secret1")

	if err := env.auth.RequestLoginCode(ctx, "eve@example.com"); err != nil {
		t.Fatalf("RequestLoginCode: %v", err)
	}
	code := env.mail.lastCode(t)

	if _, _, err := env.auth.LoginWithCode(ctx, "eve@example.com", code); err != nil {
		t.Fatalf("first LoginWithCode: %v", err)
	}
	_, _, err := env.auth.LoginWithCode(ctx, "eve@example.com", code)
	requireCode(t, err, apperrors.CodeOTPInvalid)

	user, _ := env.users.GetByEmail(ctx, "eve@example.com")
	if user.OTP != nil {
		t.Fatalf("expected otp to be cleared, got %+v", user.OTP)
	}
}

func TestOTPWrongCodeKeepsStoredCode(t *testing.T) {
	env := newAuthEnv()
	ctx := context.Background()
	if _, err := env.auth.Register(ctx, RegisterInput{
		Name: "Finn", Email: "finn@example.com", Password: "secret1", PhoneNumber: "1", Address: "2",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	code := env.mail.lastCode(t)
	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}

	_, _, err := env.auth.VerifyAccount(ctx, "finn@example.com", wrong)
	requireCode(t, err, apperrors.CodeOTPInvalid)

	if _, _, err := env.auth.VerifyAccount(ctx, "finn@example.com", code); err != nil {
		t.Fatalf("VerifyAccount with the right code after a miss: %v", err)
	}
}

func TestOTPIssueDeliveryFailureKeepsPreviousCode(t *testing.T) {
	env := newAuthEnv()
	ctx := context.Background()
	if _, err := env.auth.Register(ctx, RegisterInput{
		Name: "Gus", Email: "gus@example.com", Password: "secret1", PhoneNumber: "1", Address: "2",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	first := env.mail.lastCode(t)

	env.mail.err = errors.New("smtp down")
	err := env.auth.ResendVerification(ctx, "gus@example.com")
	requireCode(t, err, apperrors.CodeEmailDelivery)

	env.mail.err = nil
	if _, _, err := env.auth.VerifyAccount(ctx, "gus@example.com", first); err != nil {
		t.Fatalf("previous code should still verify: %v", err)
	}
}

func TestOTPResendReplacesCode(t *testing.T) {
	env := newAuthEnv()
	ctx := context.Background()
	if _, err := env.auth.Register(ctx, RegisterInput{
		Name: "Hal", Email: "hal@example.com", Password: "secret1", PhoneNumber: "1", Address: "2",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	first := env.mail.lastCode(t)
	if err := env.auth.ResendVerification(ctx, "hal@example.com"); err != nil {
		t.Fatalf("ResendVerification: %v", err)
	}
	second := env.mail.lastCode(t)
	if first == second {
		t.Skip("random codes collided")
	}

	_, _, err := env.auth.VerifyAccount(ctx, "hal@example.com", first)
	requireCode(t, err, apperrors.CodeOTPInvalid)
	if _, _, err := env.auth.VerifyAccount(ctx, "hal@example.com", second); err != nil {
		t.Fatalf("VerifyAccount with the newest code: %v", err)
	}
}

func TestOTPIssueRules(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email", func(t *testing.T) {
		env := newAuthEnv()
		err := env.otp.Issue(ctx, "nobody@example.com", domain.OTPPurposeLogin)
		requireCode(t, err, apperrors.CodeNotFound)
	})

	t.Run("verification for verified account", func(t *testing.T) {
		env := newAuthEnv()
		env.registerVerified(t, "ivy@example.com", "secret1")
		err := env.auth.ResendVerification(ctx, "ivy@example.com")
		requireCode(t, err, apperrors.CodeConflict)
	})

	t.Run("login code for unverified account", func(t *testing.T) {
		env := newAuthEnv()
		if _, err := env.auth.Register(ctx, RegisterInput{
			Name: "Jo", Email: "jo@example.com", Password: "secret1", PhoneNumber: "1", Address: "2",
		}); err != nil {
			t.Fatalf("Register: %v", err)
		}
		err := env.auth.RequestLoginCode(ctx, "jo@example.com")
		requireCode(t, err, apperrors.CodeUnauthorized)
	})

	t.Run("suspended account", func(t *testing.T) {
		env := newAuthEnv()
		user := env.registerVerified(t, "kai@example.com", "secret1")
		user.IsSuspended = true
		if err := env.users.Update(ctx, user); err != nil {
			t.Fatalf("Update: %v", err)
		}
		err := env.auth.ForgotPassword(ctx, "kai@example.com")
		requireCode(t, err, apperrors.CodeForbidden)
	})
}

func TestOTPVoidAfterRepeatedWrongGuesses(t *testing.T) {
	env := newAuthEnv()
	ctx := context.Background()
	env.registerVerified(t, "lou@example.com", "secret1")

	if err := env.auth.ForgotPassword(ctx, "lou@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	code := env.mail.lastCode(t)
	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}

	for i := 0; i < domain.MaxOTPAttempts; i++ {
		err := env.auth.ResetPassword(ctx, "lou@example.com", wrong, "taken-over")
		requireCode(t, err, apperrors.CodeOTPInvalid)
	}

	user, _ := env.users.GetByEmail(ctx, "lou@example.com")
	if user.OTP != nil {
		t.Fatalf("expected the code to be dropped, got %+v", user.OTP)
	}
	err := env.auth.ResetPassword(ctx, "lou@example.com", code, "taken-over")
	requireCode(t, err, apperrors.CodeOTPInvalid)
	if _, _, err := env.auth.Login(ctx, "lou@example.com", "secret1"); err != nil {
		t.Fatalf("original password should still work: %v", err)
	}
}

func TestOTPWrongGuessesArePersisted(t *testing.T) {
	env := newAuthEnv()
	ctx := context.Background()
	env.registerVerified(t, "max@example.com", "secret1")
	if err := env.auth.RequestLoginCode(ctx, "max@example.com"); err != nil {
		t.Fatalf("RequestLoginCode: %v", err)
	}
	code := env.mail.lastCode(t)
	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}

	_, _, err := env.auth.LoginWithCode(ctx, "max@example.com", wrong)
	requireCode(t, err, apperrors.CodeOTPInvalid)
	_, _, err = env.auth.LoginWithCode(ctx, "max@example.com", wrong)
	requireCode(t, err, apperrors.CodeOTPInvalid)

	user, _ := env.users.GetByEmail(ctx, "max@example.com")
	if user.OTP == nil || user.OTP.Attempts != 2 {
		t.Fatalf("attempts = %+v, want 2", user.OTP)
	}
}

func TestOTPBoundToPurpose(t *testing.T) {
	env := newAuthEnv()
	ctx := context.Background()
	env.registerVerified(t, "nia@example.com", "secret1")

	if err := env.auth.RequestLoginCode(ctx, "nia@example.com"); err != nil {
		t.Fatalf("RequestLoginCode: %v", err)
	}
	loginCode := env.mail.lastCode(t)

	err := env.auth.ResetPassword(ctx, "nia@example.com", loginCode, "taken-over")
	requireCode(t, err, apperrors.CodeOTPInvalid)

	if _, _, err := env.auth.LoginWithCode(ctx, "nia@example.com", loginCode); err != nil {
		t.Fatalf("login code should still log in: %v", err)
	}
}
