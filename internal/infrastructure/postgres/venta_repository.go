package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/danilalessandra/Petstock-Backend/internal/domain/entity"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/repository"
)

var _ repository.VentaRepository = (*VentaRepo)(nil)

// VentaRepo implementación sobre PostgreSQL (usable con pool o tx).
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

// Create inserta la venta y todos sus detalles.
func (r *VentaRepo) Create(venta *entity.Venta) error {
	ctx := context.Background()
	query := `
		INSERT INTO ventas (id, fecha, usuario_id, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query,
		venta.ID, venta.Fecha, venta.UsuarioID, venta.Total, venta.CreatedAt, venta.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert venta: %w", err)
	}
	for _, d := range venta.Detalles {
		if err := r.insertDetalle(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

func (r *VentaRepo) insertDetalle(ctx context.Context, d entity.DetalleVenta) error {
	query := `
		INSERT INTO detalle_ventas (id, venta_id, producto_id, cantidad, precio_unitario)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, d.ID, d.VentaID, d.ProductoID, d.Cantidad, d.PrecioUnitario); err != nil {
		return fmt.Errorf("insert detalle venta: %w", err)
	}
	return nil
}

// GetByID obtiene una venta con sus detalles.
func (r *VentaRepo) GetByID(id string) (*entity.Venta, error) {
	ctx := context.Background()
	query := `
		SELECT id, fecha, usuario_id, total, created_at, updated_at
		FROM ventas WHERE id = $1`
	var v entity.Venta
	err := r.q.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.Fecha, &v.UsuarioID, &v.Total, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	detalles, err := r.detallesDe(ctx, id)
	if err != nil {
		return nil, err
	}
	v.Detalles = detalles
	return &v, nil
}

func (r *VentaRepo) detallesDe(ctx context.Context, ventaID string) ([]entity.DetalleVenta, error) {
	query := `
		SELECT id, venta_id, producto_id, cantidad, precio_unitario
		FROM detalle_ventas WHERE venta_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, ventaID)
	if err != nil {
		return nil, fmt.Errorf("list detalles venta: %w", err)
	}
	defer rows.Close()
	var detalles []entity.DetalleVenta
	for rows.Next() {
		var d entity.DetalleVenta
		if err := rows.Scan(&d.ID, &d.VentaID, &d.ProductoID, &d.Cantidad, &d.PrecioUnitario); err != nil {
			return nil, fmt.Errorf("scan detalle venta: %w", err)
		}
		detalles = append(detalles, d)
	}
	return detalles, rows.Err()
}

// List devuelve una página de ventas (más recientes primero) con sus detalles
// y el total de filas para calcular páginas.
func (r *VentaRepo) List(limit, offset int) ([]*entity.Venta, int64, error) {
	ctx := context.Background()
	var total int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM ventas`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count ventas: %w", err)
	}
	query := `
		SELECT id, fecha, usuario_id, total, created_at, updated_at
		FROM ventas ORDER BY fecha DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Venta
	for rows.Next() {
		var v entity.Venta
		if err := rows.Scan(&v.ID, &v.Fecha, &v.UsuarioID, &v.Total, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan venta: %w", err)
		}
		list = append(list, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for _, v := range list {
		detalles, err := r.detallesDe(ctx, v.ID)
		if err != nil {
			return nil, 0, err
		}
		v.Detalles = detalles
	}
	return list, total, nil
}

// ReplaceDetalles borra los detalles actuales, inserta los nuevos y actualiza el total.
func (r *VentaRepo) ReplaceDetalles(venta *entity.Venta) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM detalle_ventas WHERE venta_id = $1`, venta.ID); err != nil {
		return fmt.Errorf("delete detalles venta: %w", err)
	}
	for _, d := range venta.Detalles {
		if err := r.insertDetalle(ctx, d); err != nil {
			return err
		}
	}
	if _, err := r.q.Exec(ctx,
		`UPDATE ventas SET total = $2, fecha = $3, updated_at = now() WHERE id = $1`,
		venta.ID, venta.Total, venta.Fecha,
	); err != nil {
		return fmt.Errorf("update total venta: %w", err)
	}
	return nil
}

// Delete elimina la venta y sus detalles (ON DELETE CASCADE en detalle_ventas).
func (r *VentaRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM ventas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete venta: %w", err)
	}
	return nil
}
