package domain

import (
	"crypto/subtle"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account holder; residents and maintenance administrators alike.
type User struct {
	Base          `bson:",inline"`
	Name          string               `bson:"name"`
	Email         string               `bson:"email"`
	PasswordHash  string               `bson:"password"`
	Role          Role                 `bson:"role"`
	IsVerified    bool                 `bson:"isVerified"`
	OTP           *OTPCredential       `bson:"otp,omitempty"`
	Avatar        *MediaRef            `bson:"avatar,omitempty"`
	PhoneNumber   string               `bson:"phoneNumber,omitempty"`
	Address       string               `bson:"address,omitempty"`
	Properties    []primitive.ObjectID `bson:"user_property,omitempty"`
	IsSuspended   bool                 `bson:"isSuspend"`
	SuspendReason string               `bson:"reason,omitempty"`
}

// MaxOTPAttempts is the number of wrong guesses after which a code is void.
const MaxOTPAttempts = 5

// OTPCredential is the single active one-time code of a user.
type OTPCredential struct {
	Code      string     `bson:"code"`
	Purpose   OTPPurpose `bson:"purpose"`
	ExpiresAt time.Time  `bson:"expiresAt"`
	Attempts  int        `bson:"attempts"`
}

// Matches reports whether code equals the stored one, was issued for
// purpose and has not expired at now. A credential expiring exactly at now
// is still accepted.
func (o *OTPCredential) Matches(code string, purpose OTPPurpose, now time.Time) bool {
	if o == nil || o.Code == "" || o.Attempts >= MaxOTPAttempts {
		return false
	}
	if o.Purpose != purpose {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(o.Code), []byte(code)) != 1 {
		return false
	}
	return !o.ExpiresAt.Before(now)
}

// RecordFailure counts a wrong guess and reports whether the code is now void.
func (o *OTPCredential) RecordFailure() bool {
	o.Attempts++
	return o.Attempts >= MaxOTPAttempts
}

// HasProperty reports whether the property is assigned to the user.
func (u *User) HasProperty(id primitive.ObjectID) bool {
	for _, p := range u.Properties {
		if p == id {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the user administers the facility.
func (u *User) IsAdmin() bool {
	return u.Role == RoleMaintenanceAdmin
}
