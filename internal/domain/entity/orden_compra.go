package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Estados conocidos de una orden de compra. El estado es texto libre, pero la
// transición hacia/desde "recibida" es la que dispara la mutación de stock.
const (
	EstadoPendiente = "pendiente"
	EstadoRecibida  = "recibida"
)

// OrdenCompra pedido a un proveedor con sus líneas.
type OrdenCompra struct {
	ID          string
	ProveedorID string
	Fecha       time.Time
	Estado      string
	Total       decimal.Decimal
	Detalles    []DetalleOrdenCompra
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Recibida informa si la orden está en estado recibida (comparación sin distinguir mayúsculas,
// el estado es texto libre y el frontend histórico enviaba "Recibida" y "recibida").
func (o *OrdenCompra) Recibida() bool {
	return EsEstadoRecibida(o.Estado)
}

// EsEstadoRecibida compara un estado arbitrario contra "recibida".
func EsEstadoRecibida(estado string) bool {
	return strings.EqualFold(strings.TrimSpace(estado), EstadoRecibida)
}

// DetalleOrdenCompra línea de una orden de compra.
type DetalleOrdenCompra struct {
	ID            string
	OrdenCompraID string
	ProductoID    string
	Cantidad      int64
	Precio        decimal.Decimal
}

// Subtotal de la línea (cantidad × precio).
func (d DetalleOrdenCompra) Subtotal() decimal.Decimal {
	return decimal.NewFromInt(d.Cantidad).Mul(d.Precio)
}
