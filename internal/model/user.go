package model

import "time"

// User represents a registered shopper. PasswordHash is populated only by
// repository lookups made for authentication; it must never reach a template
// or response.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// SignupRequest carries the signup form fields.
type SignupRequest struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// LoginRequest carries the login form fields.
type LoginRequest struct {
	Email    string
	Password string
}
