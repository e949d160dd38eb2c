package domain

import "time"

type (
	UserId = int64
	Email  = string
)

// AccountStatus is set by admins; blocked users cannot log in.
type AccountStatus string

const (
	StatusActive  AccountStatus = "active"
	StatusBlocked AccountStatus = "blocked"
)

type User struct {
	Id        UserId        `json:"id"`
	Email     Email         `json:"email"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Mobile    string        `json:"mobile,omitempty"`
	PassHash  string        `json:"-"`
	Verified  bool          `json:"verified"`
	Status    AccountStatus `json:"status"`
	Admin     bool          `json:"admin"`
	CreatedAt time.Time     `json:"created_at"`
}

type Credentials struct {
	Email    Email
	Password string
}
