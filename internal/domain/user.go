package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the identity returned by the upstream API on login or signup.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the user may reach the admin surface.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Session binds a gateway session identifier to the upstream bearer token and
// the user it authenticates. Created on login or signup, destroyed on logout.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"` // opaque upstream token, forwarded on every authenticated call
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}
