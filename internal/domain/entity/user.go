package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User representa un usuario del sistema (vendedor o administrador).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | vendedor
	Status       string // active | inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
