package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DetalleVentaRequest línea de venta en una petición de crear/actualizar.
type DetalleVentaRequest struct {
	ProductoID     string          `json:"producto_id" validate:"required"`
	Cantidad       int64           `json:"cantidad" validate:"required,gt=0"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// CreateVentaRequest entrada para registrar una venta.
type CreateVentaRequest struct {
	Fecha    *string               `json:"fecha"` // opcional, por defecto ahora
	Detalles []DetalleVentaRequest `json:"detalles" validate:"required,min=1,dive"`
}

// UpdateVentaRequest entrada para reemplazar las líneas de una venta.
type UpdateVentaRequest struct {
	Fecha    *string               `json:"fecha"`
	Detalles []DetalleVentaRequest `json:"detalles" validate:"required,min=1,dive"`
}

// DetalleVentaResponse línea de venta en respuestas.
type DetalleVentaResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"producto_id"`
	Cantidad       int64           `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// VentaResponse salida de una venta con sus líneas.
type VentaResponse struct {
	ID        string                 `json:"id"`
	Fecha     time.Time              `json:"fecha"`
	UsuarioID string                 `json:"usuario_id"`
	Total     decimal.Decimal        `json:"total"`
	Detalles  []DetalleVentaResponse `json:"detalles"`
	CreatedAt time.Time              `json:"created_at"`
}

// VentaListResponse página de ventas. Los nombres de campo los consume el
// frontend existente, no renombrar.
type VentaListResponse struct {
	Total       int64           `json:"total"`
	Pages       int64           `json:"pages"`
	CurrentPage int             `json:"currentPage"`
	Data        []VentaResponse `json:"data"`
}
