package entity

import "time"

// Roles de usuario. El rol decide el acceso a cada endpoint.
const (
	RolAdministrador = "administrador"
	RolEmpleado      = "empleado"
)

// Usuario cuenta de acceso al sistema.
type Usuario struct {
	ID           string
	Nombre       string
	Email        string // único
	PasswordHash string
	Rol          string // administrador | empleado
	RefreshToken string // vacío si no hay sesión de refresco activa
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
