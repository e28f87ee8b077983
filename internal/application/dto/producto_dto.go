package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductoRequest entrada para crear un producto.
type CreateProductoRequest struct {
	Nombre                string           `json:"nombre" validate:"required,min=1,max=200"`
	Descripcion           string           `json:"descripcion"`
	Stock                 int64            `json:"stock" validate:"min=0"`
	Precio                decimal.Decimal  `json:"precio"`
	FechaVencimiento      *string          `json:"fecha_vencimiento"` // YYYY-MM-DD
	ProveedorID           *string          `json:"proveedor_id"`
	DiasTransitoProveedor *int             `json:"dias_transito_proveedor"`
	FactorSeguridadStock  *decimal.Decimal `json:"factor_seguridad_stock"`
	StockMinimoSugerido   *int64           `json:"stock_minimo_sugerido"`
}

// UpdateProductoRequest entrada para actualizar un producto. Campos opcionales:
// solo se modifican los presentes.
type UpdateProductoRequest struct {
	Nombre                *string          `json:"nombre" validate:"omitempty,min=1,max=200"`
	Descripcion           *string          `json:"descripcion"`
	Stock                 *int64           `json:"stock" validate:"omitempty,min=0"`
	Precio                *decimal.Decimal `json:"precio"`
	FechaVencimiento      *string          `json:"fecha_vencimiento"`
	ProveedorID           *string          `json:"proveedor_id"`
	DiasTransitoProveedor *int             `json:"dias_transito_proveedor"`
	FactorSeguridadStock  *decimal.Decimal `json:"factor_seguridad_stock"`
	StockMinimoSugerido   *int64           `json:"stock_minimo_sugerido"`
}

// ProductoResponse salida de un producto.
type ProductoResponse struct {
	ID                    string          `json:"id"`
	Nombre                string          `json:"nombre"`
	Descripcion           string          `json:"descripcion"`
	Stock                 int64           `json:"stock"`
	Precio                decimal.Decimal `json:"precio"`
	FechaVencimiento      *string         `json:"fecha_vencimiento"`
	ProveedorID           *string         `json:"proveedor_id"`
	DiasTransitoProveedor int             `json:"dias_transito_proveedor"`
	FactorSeguridadStock  decimal.Decimal `json:"factor_seguridad_stock"`
	StockMinimoSugerido   int64           `json:"stock_minimo_sugerido"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}
