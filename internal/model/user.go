package model

import "time"

// User mirrors a row of the `users` table.  PasswordHash never leaves the
// service layer; handlers respond with UserPublic.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username (unique)
	Email        string    // users.email (unique)
	PasswordHash string    // users.password_hash (bcrypt)
	CreatedAt    time.Time // users.created_at
}

// UserPublic is the part of a user that may be shown to other users.
type UserPublic struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Public strips the credential fields.
func (u User) Public() UserPublic {
	return UserPublic{ID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt}
}
