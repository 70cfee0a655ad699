package domain

// Role differentiates residents from maintenance administrators.
type Role string

const (
	RoleUser             Role = "user"
	RoleMaintenanceAdmin Role = "Maintenance Admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleMaintenanceAdmin
}

// OTPPurpose names the state transition a one-time code authorizes.
type OTPPurpose string

const (
	OTPPurposeVerification  OTPPurpose = "verification"
	OTPPurposeLogin         OTPPurpose = "login"
	OTPPurposePasswordReset OTPPurpose = "password_reset"
)
