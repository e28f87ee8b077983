package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/danilalessandra/Petstock-Backend/internal/domain/repository"
)

var _ repository.ReporteRepository = (*ReporteRepo)(nil)

// ReporteRepo consultas de lectura para reportes, dashboard y reabastecimiento.
// No modifica datos.
type ReporteRepo struct {
	q Querier
}

// NewReporteRepository construye el adaptador de reportes.
func NewReporteRepository(q Querier) *ReporteRepo {
	return &ReporteRepo{q: q}
}

// VentasEnRango devuelve el total facturado y el número de ventas del período.
func (r *ReporteRepo) VentasEnRango(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, int64, error) {
	query := `
		SELECT COALESCE(SUM(total), 0), COUNT(*)
		FROM ventas
		WHERE fecha >= $1 AND fecha < $2`
	var total decimal.Decimal
	var count int64
	if err := r.q.QueryRow(ctx, query, desde, hasta).Scan(&total, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("ventas en rango: %w", err)
	}
	return total, count, nil
}

// VentasPorDia agrupa las ventas por día calendario dentro del período.
func (r *ReporteRepo) VentasPorDia(ctx context.Context, desde, hasta time.Time) ([]repository.VentaPorDiaResult, error) {
	query := `
		SELECT DATE(fecha) AS dia, COALESCE(SUM(total), 0), COUNT(*)
		FROM ventas
		WHERE fecha >= $1 AND fecha < $2
		GROUP BY dia
		ORDER BY dia ASC`
	rows, err := r.q.Query(ctx, query, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("ventas por dia: %w", err)
	}
	defer rows.Close()
	var list []repository.VentaPorDiaResult
	for rows.Next() {
		var v repository.VentaPorDiaResult
		if err := rows.Scan(&v.Fecha, &v.Total, &v.Count); err != nil {
			return nil, fmt.Errorf("scan venta por dia: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// ProductosMasVendidos devuelve los productos con más unidades vendidas en el período.
func (r *ReporteRepo) ProductosMasVendidos(ctx context.Context, desde, hasta time.Time, limit int) ([]repository.ProductoVendidoResult, error) {
	query := `
		SELECT p.id, p.nombre,
		       COALESCE(SUM(dv.cantidad), 0) AS total_vendido,
		       COALESCE(SUM(dv.cantidad * dv.precio_unitario), 0) AS total_ingresos
		FROM detalle_ventas dv
		JOIN ventas v ON v.id = dv.venta_id
		JOIN productos p ON p.id = dv.producto_id
		WHERE v.fecha >= $1 AND v.fecha < $2
		GROUP BY p.id, p.nombre
		ORDER BY total_vendido DESC
		LIMIT $3`
	rows, err := r.q.Query(ctx, query, desde, hasta, limit)
	if err != nil {
		return nil, fmt.Errorf("productos mas vendidos: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductoVendidoResult
	for rows.Next() {
		var p repository.ProductoVendidoResult
		if err := rows.Scan(&p.ProductoID, &p.Nombre, &p.TotalVendido, &p.TotalIngresos); err != nil {
			return nil, fmt.Errorf("scan producto vendido: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ProductosBajoStock cuenta los productos con stock en o por debajo del mínimo sugerido.
func (r *ReporteRepo) ProductosBajoStock(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM productos WHERE stock <= stock_minimo_sugerido`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("productos bajo stock: %w", err)
	}
	return count, nil
}

// TotalProductos cuenta los productos registrados.
func (r *ReporteRepo) TotalProductos(ctx context.Context) (int64, error) {
	var count int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM productos`).Scan(&count); err != nil {
		return 0, fmt.Errorf("total productos: %w", err)
	}
	return count, nil
}

// TotalProveedores cuenta los proveedores registrados.
func (r *ReporteRepo) TotalProveedores(ctx context.Context) (int64, error) {
	var count int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM proveedores`).Scan(&count); err != nil {
		return 0, fmt.Errorf("total proveedores: %w", err)
	}
	return count, nil
}

// ProductosConVentas devuelve todos los productos con su total vendido en los
// últimos `dias` días. LEFT JOIN: los productos sin ventas aparecen con cero.
func (r *ReporteRepo) ProductosConVentas(ctx context.Context, dias int) ([]repository.ProductoVentaResult, error) {
	desde := time.Now().AddDate(0, 0, -dias)
	query := `
		SELECT p.id, p.nombre, p.stock, p.dias_transito_proveedor, p.factor_seguridad_stock,
		       p.stock_minimo_sugerido, p.proveedor_id, pr.nombre,
		       COALESCE(vp.total_vendido, 0) AS total_vendido
		FROM productos p
		LEFT JOIN proveedores pr ON pr.id = p.proveedor_id
		LEFT JOIN (
			SELECT dv.producto_id, SUM(dv.cantidad) AS total_vendido
			FROM detalle_ventas dv
			JOIN ventas v ON v.id = dv.venta_id
			WHERE v.fecha >= $1
			GROUP BY dv.producto_id
		) vp ON vp.producto_id = p.id
		ORDER BY p.nombre ASC`
	rows, err := r.q.Query(ctx, query, desde)
	if err != nil {
		return nil, fmt.Errorf("productos con ventas: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductoVentaResult
	for rows.Next() {
		var p repository.ProductoVentaResult
		if err := rows.Scan(&p.ProductoID, &p.Nombre, &p.Stock, &p.DiasTransito, &p.FactorSeguridad,
			&p.StockMinimoSugerido, &p.ProveedorID, &p.ProveedorNombre, &p.TotalVendido); err != nil {
			return nil, fmt.Errorf("scan producto con ventas: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
