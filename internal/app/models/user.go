package models

import "time"

// User defines the user model based on the 'users' table
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`             // Unique identifier for the user
	Login     string    `json:"login" db:"login" example:"alice"`   // Login name, unique
	Password  string    `json:"-" db:"password"`                    // Hashed password (excluded from JSON)
	RoleType  RoleType  `json:"roleType" db:"role_type" example:"USER"` // User's role (USER or ADMIN)
	IsActive  bool      `json:"isActive" db:"is_active" example:"true"` // Whether the account is active
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role RoleType) bool {
	return u.RoleType == role
}
