package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DetalleOrdenRequest línea de orden de compra en una petición.
// ID solo se usa en actualización, para conciliar contra la línea existente.
type DetalleOrdenRequest struct {
	ID         *string         `json:"id"`
	ProductoID string          `json:"producto_id" validate:"required"`
	Cantidad   int64           `json:"cantidad" validate:"required,gt=0"`
	Precio     decimal.Decimal `json:"precio"`
}

// CreateOrdenCompraRequest entrada para crear una orden de compra.
type CreateOrdenCompraRequest struct {
	ProveedorID string                `json:"proveedor_id" validate:"required"`
	Fecha       *string               `json:"fecha"`
	Estado      string                `json:"estado"`
	Detalles    []DetalleOrdenRequest `json:"detalles" validate:"required,min=1,dive"`
}

// UpdateOrdenCompraRequest entrada para actualizar proveedor, fecha, estado y/o líneas.
type UpdateOrdenCompraRequest struct {
	ProveedorID *string               `json:"proveedor_id"`
	Fecha       *string               `json:"fecha"`
	Estado      *string               `json:"estado"`
	Detalles    []DetalleOrdenRequest `json:"detalles" validate:"omitempty,dive"`
}

// DetalleOrdenResponse línea de orden de compra en respuestas.
type DetalleOrdenResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"producto_id"`
	ProductoNombre string          `json:"producto_nombre,omitempty"`
	Cantidad       int64           `json:"cantidad"`
	Precio         decimal.Decimal `json:"precio"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// OrdenCompraResponse salida de una orden de compra.
type OrdenCompraResponse struct {
	ID              string                 `json:"id"`
	ProveedorID     string                 `json:"proveedor_id"`
	ProveedorNombre string                 `json:"proveedor_nombre,omitempty"`
	Fecha           time.Time              `json:"fecha"`
	Estado          string                 `json:"estado"`
	Total           decimal.Decimal        `json:"total"`
	Detalles        []DetalleOrdenResponse `json:"detalles"`
	CreatedAt       time.Time              `json:"created_at"`
}

// ProductoSeleccionadoRequest producto elegido en la pantalla de sugerencias.
type ProductoSeleccionadoRequest struct {
	ID             string `json:"id" validate:"required"`
	CantidadAPedir int64  `json:"cantidad_a_pedir" validate:"required,gt=0"`
}

// GenerarOrdenesRequest entrada para generar órdenes desde sugerencias.
type GenerarOrdenesRequest struct {
	ProductosSeleccionados []ProductoSeleccionadoRequest `json:"productosSeleccionados" validate:"required,min=1,dive"`
}

// GenerarOrdenesResponse resultado de generar órdenes desde sugerencias.
type GenerarOrdenesResponse struct {
	Message string                `json:"message"`
	Ordenes []OrdenCompraResponse `json:"ordenes"`
}
