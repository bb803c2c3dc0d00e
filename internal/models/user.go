package models

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Role         string    `json:"role"` // admin, dispatch, receiver, view_only
	Permissions  []string  `json:"permissions"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Password    string   `json:"password"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	Active      *bool    `json:"active"`
}

// UpdateUserRequest carries a partial update; nil fields are untouched.
// Changing the role resets permissions to that role's default set.
type UpdateUserRequest struct {
	Email       *string  `json:"email"`
	Name        *string  `json:"name"`
	Password    *string  `json:"password"`
	Role        *string  `json:"role"`
	Permissions []string `json:"permissions"`
	Active      *bool    `json:"active"`
}
