package entity

import (
	"time"
)

// User is the aggregate root for the user domain.
// Password holds a bcrypt hash, never plaintext.
//
// SessionToken is the single active bearer token for the account: non-nil
// means logged in, nil means logged out. Login overwrites it, which is what
// invalidates every previously issued token for the account.
type User struct {
	ID           string
	Email        string
	Password     string
	Name         string
	Address      string
	Phone        string
	Birthday     string
	AvatarURL    string
	SessionToken *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LoggedIn reports whether the user currently holds an active session.
func (u *User) LoggedIn() bool {
	return u.SessionToken != nil && *u.SessionToken != ""
}
