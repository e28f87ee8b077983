package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/danilalessandra/Petstock-Backend/internal/domain/entity"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

// MovimientoRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

// Create persiste un movimiento de inventario (bitácora, no toca stock).
func (r *MovimientoRepo) Create(movimiento *entity.MovimientoInventario) error {
	query := `
		INSERT INTO movimientos_inventario (id, producto_id, tipo, cantidad, motivo, usuario_id, fecha, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		movimiento.ID, movimiento.ProductoID, movimiento.Tipo, movimiento.Cantidad,
		movimiento.Motivo, movimiento.UsuarioID, movimiento.Fecha, movimiento.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// GetByID busca un movimiento por id. Devuelve (nil, nil) si no existe.
func (r *MovimientoRepo) GetByID(id string) (*entity.MovimientoInventario, error) {
	query := `SELECT id, producto_id, tipo, cantidad, motivo, usuario_id, fecha, created_at
		FROM movimientos_inventario WHERE id = $1`
	var m entity.MovimientoInventario
	err := r.q.QueryRow(context.Background(), query, id).
		Scan(&m.ID, &m.ProductoID, &m.Tipo, &m.Cantidad, &m.Motivo, &m.UsuarioID, &m.Fecha, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movimiento: %w", err)
	}
	return &m, nil
}

// List lista todos los movimientos, más recientes primero.
func (r *MovimientoRepo) List() ([]*entity.MovimientoInventario, error) {
	return r.list(`SELECT id, producto_id, tipo, cantidad, motivo, usuario_id, fecha, created_at
		FROM movimientos_inventario ORDER BY fecha DESC`)
}

// ListByProducto lista los movimientos de un producto, más recientes primero.
func (r *MovimientoRepo) ListByProducto(productoID string) ([]*entity.MovimientoInventario, error) {
	return r.list(`SELECT id, producto_id, tipo, cantidad, motivo, usuario_id, fecha, created_at
		FROM movimientos_inventario WHERE producto_id = $1 ORDER BY fecha DESC`, productoID)
}

// Update reescribe los campos editables de un movimiento.
func (r *MovimientoRepo) Update(movimiento *entity.MovimientoInventario) error {
	query := `
		UPDATE movimientos_inventario
		SET producto_id = $2, tipo = $3, cantidad = $4, motivo = $5, fecha = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		movimiento.ID, movimiento.ProductoID, movimiento.Tipo,
		movimiento.Cantidad, movimiento.Motivo, movimiento.Fecha,
	)
	if err != nil {
		return fmt.Errorf("update movimiento: %w", err)
	}
	return nil
}

// Delete elimina un movimiento de la bitácora.
func (r *MovimientoRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM movimientos_inventario WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movimiento: %w", err)
	}
	return nil
}

func (r *MovimientoRepo) list(query string, args ...any) ([]*entity.MovimientoInventario, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovimientoInventario
	for rows.Next() {
		var m entity.MovimientoInventario
		if err := rows.Scan(&m.ID, &m.ProductoID, &m.Tipo, &m.Cantidad, &m.Motivo, &m.UsuarioID, &m.Fecha, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
