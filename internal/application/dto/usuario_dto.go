package dto

import "time"

// RegisterRequest entrada para registrar un usuario.
type RegisterRequest struct {
	Nombre   string `json:"nombre" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Rol      string `json:"rol" validate:"omitempty,oneof=administrador empleado"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token de acceso más los datos básicos del usuario.
// El refresh token viaja aparte en una cookie http-only.
type LoginResponse struct {
	AccessToken string          `json:"accessToken"`
	Usuario     UsuarioResponse `json:"usuario"`
}

// UsuarioResponse salida de un usuario (nunca incluye el hash de contraseña).
type UsuarioResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Email     string    `json:"email"`
	Rol       string    `json:"rol"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateUsuarioRequest entrada para actualizar un usuario.
type UpdateUsuarioRequest struct {
	Nombre   *string `json:"nombre" validate:"omitempty,min=1,max=200"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Rol      *string `json:"rol" validate:"omitempty,oneof=administrador empleado"`
}
