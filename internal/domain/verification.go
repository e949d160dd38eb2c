package domain

import "time"

// Purpose tags which flow a one-time code belongs to. Codes issued for one
// purpose are invisible to the other.
type Purpose string

const (
	PurposeSignup        Purpose = "signup"
	PurposePasswordReset Purpose = "password_reset"
)

func (p Purpose) Valid() bool {
	return p == PurposeSignup || p == PurposePasswordReset
}

// OneTimeCode is the persisted form of an issued code. The code value itself
// is never stored, only its bcrypt hash. At most one row exists per
// (Email, Purpose) pair; issuing a new code replaces the previous row.
type OneTimeCode struct {
	Email     Email
	Purpose   Purpose
	CodeHash  string
	Expires   time.Time
	CreatedAt time.Time
}

func (c OneTimeCode) Expired(now time.Time) bool {
	return c.Expires.Before(now)
}

// ResetGrant marks an identity as confirmed for password reset. It is minted
// on successful code verification and consumed exactly once by the final
// password write.
type ResetGrant struct {
	Email   Email
	Token   string
	Expires time.Time
}

func (g ResetGrant) Expired(now time.Time) bool {
	return g.Expires.Before(now)
}
