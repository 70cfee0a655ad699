package dto

import (
	"time"

	"github.com/spec-kit/asset-service/internal/domain"
)

// RegisterRequest is the self-registration payload.
type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Role        string `json:"role"`
}

// LoginRequest payload for password login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmailRequest carries only an email address.
type EmailRequest struct {
	Email string `json:"email"`
}

// OTPRequest pairs an email with a one-time code.
type OTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ResetPasswordRequest completes a password reset.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// ChangePasswordRequest changes the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ProfileRequest updates the caller's profile; omitted fields are kept.
type ProfileRequest struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     *string `json:"address"`
}

// AvatarRequest carries a base64 image or data URI.
type AvatarRequest struct {
	Avatar string `json:"avatar"`
}

// AdminUserRequest creates or edits an account as an administrator.
type AdminUserRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	Role        *string `json:"role"`
	PhoneNumber *string `json:"phoneNumber"`
	Address     *string `json:"address"`
}

// PropertyAssignmentRequest links a property to a user.
type PropertyAssignmentRequest struct {
	UserID     string `json:"userId"`
	PropertyID string `json:"propertyId"`
}

// AccessRequest changes role and suspension of an account.
type AccessRequest struct {
	UserID    string  `json:"userId"`
	Role      *string `json:"role"`
	IsSuspend *bool   `json:"isSuspend"`
	Reason    *string `json:"reason"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the public view of an account. Password hashes and codes
// are never rendered.
type UserResponse struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Role        domain.Role `json:"role"`
	IsVerified  bool        `json:"isVerified"`
	Avatar      *string     `json:"avatar"`
	PhoneNumber string      `json:"phoneNumber,omitempty"`
	Address     string      `json:"address,omitempty"`
	Properties  []string    `json:"user_property"`
	IsSuspend   bool        `json:"isSuspend"`
	Reason      string      `json:"reason,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// NewUserResponse maps a user to its public view.
func NewUserResponse(u *domain.User) UserResponse {
	resp := UserResponse{
		ID:          u.ID.Hex(),
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		IsVerified:  u.IsVerified,
		PhoneNumber: u.PhoneNumber,
		Address:     u.Address,
		Properties:  make([]string, 0, len(u.Properties)),
		IsSuspend:   u.IsSuspended,
		Reason:      u.SuspendReason,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	if u.Avatar != nil {
		resp.Avatar = &u.Avatar.URL
	}
	for _, p := range u.Properties {
		resp.Properties = append(resp.Properties, p.Hex())
	}
	return resp
}

// NewUserList maps users in order.
func NewUserList(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
