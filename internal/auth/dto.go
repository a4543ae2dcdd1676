package auth

import "github.com/marinhl/housemate/internal/user"

// RegisterRequest represents the request body for registering a new account
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"required,min=1,max=50"`
	LastName  string `json:"last_name" validate:"required,min=1,max=50"`
}

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the session token and the authenticated user
type AuthResponse struct {
	Token string             `json:"token"`
	User  *user.UserResponse `json:"user"`
}
