package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa una credencial del sistema.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca se serializa
	Role         string // admin, user
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsValidRole informa si role pertenece al enum de roles.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
