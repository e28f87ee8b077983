package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/danilalessandra/Petstock-Backend/internal/domain/entity"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/repository"
)

var _ repository.OrdenCompraRepository = (*OrdenCompraRepo)(nil)

// OrdenCompraRepo implementación sobre PostgreSQL (usable con pool o tx).
type OrdenCompraRepo struct {
	q Querier
}

// NewOrdenCompraRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrdenCompraRepository(q Querier) *OrdenCompraRepo {
	return &OrdenCompraRepo{q: q}
}

// Create inserta la orden y todos sus detalles.
func (r *OrdenCompraRepo) Create(orden *entity.OrdenCompra) error {
	ctx := context.Background()
	query := `
		INSERT INTO ordenes_compra (id, proveedor_id, fecha, estado, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.q.Exec(ctx, query,
		orden.ID, orden.ProveedorID, orden.Fecha, orden.Estado, orden.Total,
		orden.CreatedAt, orden.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert orden compra: %w", err)
	}
	for _, d := range orden.Detalles {
		if err := r.insertDetalle(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

func (r *OrdenCompraRepo) insertDetalle(ctx context.Context, d entity.DetalleOrdenCompra) error {
	query := `
		INSERT INTO detalle_ordenes_compra (id, orden_compra_id, producto_id, cantidad, precio)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, d.ID, d.OrdenCompraID, d.ProductoID, d.Cantidad, d.Precio); err != nil {
		return fmt.Errorf("insert detalle orden: %w", err)
	}
	return nil
}

func (r *OrdenCompraRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.OrdenCompra, error) {
	query := `
		SELECT id, proveedor_id, fecha, estado, total, created_at, updated_at
		FROM ordenes_compra WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var o entity.OrdenCompra
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.ProveedorID, &o.Fecha, &o.Estado, &o.Total, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden compra: %w", err)
	}
	detalles, err := r.detallesDe(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Detalles = detalles
	return &o, nil
}

// GetByID obtiene una orden con sus detalles.
func (r *OrdenCompraRepo) GetByID(id string) (*entity.OrdenCompra, error) {
	return r.get(context.Background(), id, false)
}

// GetByIDForUpdate obtiene la orden bloqueando su fila (SELECT FOR UPDATE).
func (r *OrdenCompraRepo) GetByIDForUpdate(id string) (*entity.OrdenCompra, error) {
	return r.get(context.Background(), id, true)
}

func (r *OrdenCompraRepo) detallesDe(ctx context.Context, ordenID string) ([]entity.DetalleOrdenCompra, error) {
	query := `
		SELECT id, orden_compra_id, producto_id, cantidad, precio
		FROM detalle_ordenes_compra WHERE orden_compra_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, ordenID)
	if err != nil {
		return nil, fmt.Errorf("list detalles orden: %w", err)
	}
	defer rows.Close()
	var detalles []entity.DetalleOrdenCompra
	for rows.Next() {
		var d entity.DetalleOrdenCompra
		if err := rows.Scan(&d.ID, &d.OrdenCompraID, &d.ProductoID, &d.Cantidad, &d.Precio); err != nil {
			return nil, fmt.Errorf("scan detalle orden: %w", err)
		}
		detalles = append(detalles, d)
	}
	return detalles, rows.Err()
}

// List lista todas las órdenes (más recientes primero) con sus detalles.
func (r *OrdenCompraRepo) List() ([]*entity.OrdenCompra, error) {
	ctx := context.Background()
	query := `
		SELECT id, proveedor_id, fecha, estado, total, created_at, updated_at
		FROM ordenes_compra ORDER BY fecha DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list ordenes compra: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrdenCompra
	for rows.Next() {
		var o entity.OrdenCompra
		if err := rows.Scan(&o.ID, &o.ProveedorID, &o.Fecha, &o.Estado, &o.Total, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan orden compra: %w", err)
		}
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		detalles, err := r.detallesDe(ctx, o.ID)
		if err != nil {
			return nil, err
		}
		o.Detalles = detalles
	}
	return list, nil
}

// UpdateEstado cambia solo el estado de la orden.
func (r *OrdenCompraRepo) UpdateEstado(id, estado string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE ordenes_compra SET estado = $2, updated_at = now() WHERE id = $1`,
		id, estado,
	)
	if err != nil {
		return fmt.Errorf("update estado orden: %w", err)
	}
	return nil
}

// UpdateCabecera actualiza proveedor, fecha, estado y total de la orden.
func (r *OrdenCompraRepo) UpdateCabecera(orden *entity.OrdenCompra) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE ordenes_compra SET proveedor_id = $2, fecha = $3, estado = $4, total = $5, updated_at = now()
		 WHERE id = $1`,
		orden.ID, orden.ProveedorID, orden.Fecha, orden.Estado, orden.Total,
	)
	if err != nil {
		return fmt.Errorf("update cabecera orden: %w", err)
	}
	return nil
}

// InsertDetalle inserta una línea nueva.
func (r *OrdenCompraRepo) InsertDetalle(d entity.DetalleOrdenCompra) error {
	return r.insertDetalle(context.Background(), d)
}

// UpdateDetalle actualiza una línea existente.
func (r *OrdenCompraRepo) UpdateDetalle(d entity.DetalleOrdenCompra) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE detalle_ordenes_compra SET producto_id = $2, cantidad = $3, precio = $4 WHERE id = $1`,
		d.ID, d.ProductoID, d.Cantidad, d.Precio,
	)
	if err != nil {
		return fmt.Errorf("update detalle orden: %w", err)
	}
	return nil
}

// DeleteDetalle elimina una línea por ID.
func (r *OrdenCompraRepo) DeleteDetalle(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM detalle_ordenes_compra WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete detalle orden: %w", err)
	}
	return nil
}

// Delete elimina la orden y sus detalles (ON DELETE CASCADE). No revierte stock.
func (r *OrdenCompraRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM ordenes_compra WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete orden compra: %w", err)
	}
	return nil
}
