package domain

import (
	"errors"
	"time"
)

// Role names form a closed set of reference data, seeded once at startup.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("username already taken")
var ErrUserNotFound = errors.New("user not found")
var ErrPasswordPolicy = errors.New("password must be at least 8 characters")

// User models a registered account. PasswordHash is the bcrypt output and is
// never serialized into responses.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
