package model

import "github.com/golang-jwt/jwt/v5"

// RoleAdmin is the sole role with write access.
const RoleAdmin = "admin"

// Identity is the public view of an authenticated principal.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// AdminClaims are the JWT claims carried by a session token.
type AdminClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for admin login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login.
type LoginResponse struct {
	Token string   `json:"token"`
	User  Identity `json:"user"`
}
