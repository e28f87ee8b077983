package entity

import "time"

// Tipos de movimiento manual de inventario.
const (
	MovimientoEntrada = "entrada"
	MovimientoSalida  = "salida"
)

// MovimientoInventario ajuste manual registrado como bitácora. No modifica
// Producto.Stock automáticamente: es un registro de auditoría.
type MovimientoInventario struct {
	ID         string
	ProductoID string
	Tipo       string // entrada | salida
	Cantidad   int64
	Motivo     string
	UsuarioID  string
	Fecha      time.Time
	CreatedAt  time.Time
}
