package entity

import "time"

// Proveedor empresa a la que se emiten órdenes de compra.
type Proveedor struct {
	ID        string
	Nombre    string
	Contacto  string
	Direccion string
	CreatedAt time.Time
	UpdatedAt time.Time
}
