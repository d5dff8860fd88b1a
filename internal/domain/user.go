package domain

import "time"

// User is an identity record used purely for authorization lookups. The API
// surface never creates or modifies users; cmd/seed owns the write path.
type User struct {
	ID        int64     `json:"user_id"`
	Username  string    `json:"username"`
	Token     string    `json:"-"` // opaque bearer credential, never serialized
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the user may call the administrative surface.
func (u *User) IsAdmin() bool {
	return u.Admin
}
