package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is the server-side identity a bearer token resolves to. It is
// distinct from the auth subject embedded in the token.
type User struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Subject   string    `json:"-" bson:"subject"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// UserClaims are the JWT claims carried by player bearer tokens
type UserClaims struct {
	Subject string `json:"sub_id"`
	Name    string `json:"name"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
