package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProductoVendidoResult resultado crudo de la consulta de más vendidos.
// Lo produce la DB; el use case lo convierte en DTO.
type ProductoVendidoResult struct {
	ProductoID    string
	Nombre        string
	TotalVendido  int64
	TotalIngresos decimal.Decimal
}

// VentaPorDiaResult ventas agregadas por día calendario.
type VentaPorDiaResult struct {
	Fecha time.Time
	Total decimal.Decimal
	Count int64
}

// ProductoVentaResult fila del insumo del cálculo de reabastecimiento: un
// producto con su total vendido en la ventana (cero si no tuvo ventas).
type ProductoVentaResult struct {
	ProductoID          string
	Nombre              string
	Stock               int64
	DiasTransito        int
	FactorSeguridad     decimal.Decimal
	StockMinimoSugerido int64
	ProveedorID         *string
	ProveedorNombre     *string
	TotalVendido        int64
}

// ReporteRepository define las consultas de lectura para reportes y sugerencias.
// Las implementaciones son read-only (no modifican datos).
type ReporteRepository interface {
	// VentasEnRango devuelve el total facturado y el número de ventas del período.
	VentasEnRango(ctx context.Context, desde, hasta time.Time) (total decimal.Decimal, count int64, err error)

	// VentasPorDia agrupa las ventas por día calendario dentro del período.
	VentasPorDia(ctx context.Context, desde, hasta time.Time) ([]VentaPorDiaResult, error)

	// ProductosMasVendidos devuelve los `limit` productos con más unidades
	// vendidas en el período, en orden descendente.
	ProductosMasVendidos(ctx context.Context, desde, hasta time.Time, limit int) ([]ProductoVendidoResult, error)

	// ProductosBajoStock cuenta los productos con stock <= stock mínimo sugerido.
	ProductosBajoStock(ctx context.Context) (int64, error)

	// TotalProductos y TotalProveedores para el dashboard.
	TotalProductos(ctx context.Context) (int64, error)
	TotalProveedores(ctx context.Context) (int64, error)

	// ProductosConVentas devuelve todos los productos con su total vendido en
	// los últimos `dias` días (LEFT JOIN: los sin ventas aparecen con cero).
	ProductosConVentas(ctx context.Context, dias int) ([]ProductoVentaResult, error)
}
