package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Valores por defecto de los parámetros de reabastecimiento cuando el producto no los define.
const (
	DiasTransitoPorDefecto = 7
)

// FactorSeguridadPorDefecto multiplicador aplicado a la demanda proyectada (1.20 = 20% de colchón).
var FactorSeguridadPorDefecto = decimal.NewFromFloat(1.20)

// Producto artículo del inventario. Stock es la cantidad entera en mano; la mutan
// transaccionalmente Ventas, Órdenes de Compra y nada más (los movimientos manuales
// son solo bitácora).
type Producto struct {
	ID                    string
	Nombre                string
	Descripcion           string
	Stock                 int64
	Precio                decimal.Decimal
	FechaVencimiento      *time.Time // opcional, solo fecha
	ProveedorID           *string
	DiasTransitoProveedor int             // lead time del proveedor en días
	FactorSeguridadStock  decimal.Decimal // >1, colchón contra variabilidad de demanda
	StockMinimoSugerido   int64
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// DiasTransito devuelve el lead time, aplicando el valor por defecto si no está definido.
func (p *Producto) DiasTransito() int {
	if p.DiasTransitoProveedor <= 0 {
		return DiasTransitoPorDefecto
	}
	return p.DiasTransitoProveedor
}

// FactorSeguridad devuelve el factor de seguridad, aplicando el valor por defecto si no está definido.
func (p *Producto) FactorSeguridad() decimal.Decimal {
	if p.FactorSeguridadStock.LessThanOrEqual(decimal.Zero) {
		return FactorSeguridadPorDefecto
	}
	return p.FactorSeguridadStock
}
