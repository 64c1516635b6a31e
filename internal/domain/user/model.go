package user

import "github.com/google/uuid"

type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         string
}

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)
