package dto

import "time"

// CreateProveedorRequest entrada para crear un proveedor.
type CreateProveedorRequest struct {
	Nombre    string `json:"nombre" validate:"required,min=1,max=200"`
	Contacto  string `json:"contacto"`
	Direccion string `json:"direccion"`
}

// UpdateProveedorRequest entrada para actualizar un proveedor.
type UpdateProveedorRequest struct {
	Nombre    *string `json:"nombre" validate:"omitempty,min=1,max=200"`
	Contacto  *string `json:"contacto"`
	Direccion *string `json:"direccion"`
}

// ProveedorResponse salida de un proveedor.
type ProveedorResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Contacto  string    `json:"contacto"`
	Direccion string    `json:"direccion"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
