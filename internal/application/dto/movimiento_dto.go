package dto

import "time"

// CreateMovimientoRequest entrada para registrar un movimiento manual.
type CreateMovimientoRequest struct {
	ProductoID string  `json:"producto_id" validate:"required"`
	Tipo       string  `json:"tipo" validate:"required,oneof=entrada salida"`
	Cantidad   int64   `json:"cantidad" validate:"required,gt=0"`
	Motivo     string  `json:"motivo"`
	Fecha      *string `json:"fecha"`
}

// UpdateMovimientoRequest entrada para corregir un movimiento registrado.
type UpdateMovimientoRequest struct {
	ProductoID *string `json:"producto_id"`
	Tipo       *string `json:"tipo" validate:"omitempty,oneof=entrada salida"`
	Cantidad   *int64  `json:"cantidad" validate:"omitempty,gt=0"`
	Motivo     *string `json:"motivo"`
	Fecha      *string `json:"fecha"`
}

// MovimientoResponse salida de un movimiento de inventario.
type MovimientoResponse struct {
	ID         string    `json:"id"`
	ProductoID string    `json:"producto_id"`
	Tipo       string    `json:"tipo"`
	Cantidad   int64     `json:"cantidad"`
	Motivo     string    `json:"motivo"`
	UsuarioID  string    `json:"usuario_id"`
	Fecha      time.Time `json:"fecha"`
}
