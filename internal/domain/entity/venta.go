package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Venta transacción de venta con una o más líneas. Total es derivado:
// siempre igual a la suma de cantidad × precio_unitario de sus detalles.
type Venta struct {
	ID        string
	Fecha     time.Time
	UsuarioID string
	Total     decimal.Decimal
	Detalles  []DetalleVenta
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DetalleVenta línea de venta. Se crea atómicamente con el descuento de stock.
type DetalleVenta struct {
	ID             string
	VentaID        string
	ProductoID     string
	Cantidad       int64           // > 0
	PrecioUnitario decimal.Decimal // >= 0
}

// Subtotal de la línea (cantidad × precio unitario).
func (d DetalleVenta) Subtotal() decimal.Decimal {
	return decimal.NewFromInt(d.Cantidad).Mul(d.PrecioUnitario)
}
