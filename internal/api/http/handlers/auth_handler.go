package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/asset-service/internal/api/dto"
	"github.com/spec-kit/asset-service/internal/domain"
	"github.com/spec-kit/asset-service/internal/service"
)

// AuthHandler exposes registration, OTP and login endpoints.
type AuthHandler struct {
	auth   *service.AuthService
	cookie CookieConfig
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{auth: authService, cookie: cookie}
}

// Register handles POST /register-user.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Role:        req.Role,
	})
	if err != nil {
		return err
	}
	return success(c, fiber.StatusCreated, fiber.Map{
		"message": "User registered successfully. Please verify your email with the OTP sent.",
		"user":    dto.NewUserResponse(user),
	})
}

// VerifyOTP handles POST /verify-otp.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.OTPRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, session, err := h.auth.VerifyAccount(c.UserContext(), req.Email, req.OTP)
	if err != nil {
		return err
	}
	return h.startSession(c, "Account verified successfully", user, session)
}

// ResendOTP handles POST /resent-otp.
func (h *AuthHandler) ResendOTP(c *fiber.Ctx) error {
	var req dto.EmailRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.auth.ResendVerification(c.UserContext(), req.Email); err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "A new OTP has been sent to your email"})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, session, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return h.startSession(c, "Login successful", user, session)
}

// RequestLoginCode handles POST /login-with-email-only.
func (h *AuthHandler) RequestLoginCode(c *fiber.Ctx) error {
	var req dto.EmailRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.auth.RequestLoginCode(c.UserContext(), req.Email); err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "A login code has been sent to your email"})
}

// LoginWithCode handles POST /login-with-email-only-otp.
func (h *AuthHandler) LoginWithCode(c *fiber.Ctx) error {
	var req dto.OTPRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	user, session, err := h.auth.LoginWithCode(c.UserContext(), req.Email, req.OTP)
	if err != nil {
		return err
	}
	return h.startSession(c, "Login successful", user, session)
}

// ForgotPassword handles POST /forgot-password.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.EmailRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.auth.ForgotPassword(c.UserContext(), req.Email); err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "A password reset code has been sent to your email"})
}

// ResetPassword handles POST /reset-password.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.auth.ResetPassword(c.UserContext(), req.Email, req.OTP, req.NewPassword); err != nil {
		return err
	}
	return success(c, fiber.StatusOK, fiber.Map{"message": "Password reset successfully"})
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := h.auth.Logout(c.UserContext(), p.Claims); err != nil {
		return err
	}
	h.cookie.clear(c)
	return success(c, fiber.StatusOK, fiber.Map{"message": "Logged out successfully"})
}

func (h *AuthHandler) startSession(c *fiber.Ctx, message string, user *domain.User, session *service.Session) error {
	h.cookie.set(c, session.Token, session.ExpiresAt)
	return success(c, fiber.StatusOK, fiber.Map{
		"message": message,
		"user":    dto.NewUserResponse(user),
		"auth":    dto.AuthResponse{Token: session.Token, ExpiresAt: session.ExpiresAt},
	})
}
