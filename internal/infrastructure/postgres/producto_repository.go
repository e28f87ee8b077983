package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/danilalessandra/Petstock-Backend/internal/domain"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/entity"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/repository"
)

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

const productoColumns = `id, nombre, descripcion, stock, precio, fecha_vencimiento, proveedor_id,
		dias_transito_proveedor, factor_seguridad_stock, stock_minimo_sugerido, created_at, updated_at`

// ProductoRepo implementación del puerto ProductoRepository sobre PostgreSQL (usable con pool o tx).
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

func scanProducto(row pgx.Row) (*entity.Producto, error) {
	var p entity.Producto
	err := row.Scan(
		&p.ID, &p.Nombre, &p.Descripcion, &p.Stock, &p.Precio, &p.FechaVencimiento, &p.ProveedorID,
		&p.DiasTransitoProveedor, &p.FactorSeguridadStock, &p.StockMinimoSugerido, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductoRepo) Create(producto *entity.Producto) error {
	query := `
		INSERT INTO productos (id, nombre, descripcion, stock, precio, fecha_vencimiento, proveedor_id,
			dias_transito_proveedor, factor_seguridad_stock, stock_minimo_sugerido, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		producto.ID, producto.Nombre, producto.Descripcion, producto.Stock, producto.Precio,
		producto.FechaVencimiento, producto.ProveedorID, producto.DiasTransitoProveedor,
		producto.FactorSeguridadStock, producto.StockMinimoSugerido, producto.CreatedAt, producto.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductoRepo) GetByID(id string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE id = $1`
	p, err := scanProducto(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene un producto bloqueando su fila (SELECT FOR UPDATE).
func (r *ProductoRepo) GetForUpdate(id string) (*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE id = $1 FOR UPDATE`
	p, err := scanProducto(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto for update: %w", err)
	}
	return p, nil
}

// AjustarStock suma delta al stock del producto y devuelve la fila actualizada.
// Se asume la fila bloqueada por GetForUpdate dentro de la misma transacción.
func (r *ProductoRepo) AjustarStock(id string, delta int64) (*entity.Producto, error) {
	query := `
		UPDATE productos SET stock = stock + $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + productoColumns
	p, err := scanProducto(r.q.QueryRow(context.Background(), query, id, delta))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ajustar stock: %w", err)
	}
	return p, nil
}

// Update actualiza un producto existente (todos los campos editables, incluido stock).
func (r *ProductoRepo) Update(producto *entity.Producto) error {
	query := `
		UPDATE productos SET nombre = $2, descripcion = $3, stock = $4, precio = $5,
			fecha_vencimiento = $6, proveedor_id = $7, dias_transito_proveedor = $8,
			factor_seguridad_stock = $9, stock_minimo_sugerido = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		producto.ID, producto.Nombre, producto.Descripcion, producto.Stock, producto.Precio,
		producto.FechaVencimiento, producto.ProveedorID, producto.DiasTransitoProveedor,
		producto.FactorSeguridadStock, producto.StockMinimoSugerido, producto.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

// List lista todos los productos ordenados por nombre.
func (r *ProductoRepo) List() ([]*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos ORDER BY nombre ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Producto
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ListPorVencer lista productos con fecha de vencimiento entre hoy y el horizonte dado.
func (r *ProductoRepo) ListPorVencer(hasta time.Time) ([]*entity.Producto, error) {
	query := `SELECT ` + productoColumns + `
		FROM productos
		WHERE fecha_vencimiento IS NOT NULL
		  AND fecha_vencimiento >= CURRENT_DATE
		  AND fecha_vencimiento <= $1
		ORDER BY fecha_vencimiento ASC`
	rows, err := r.q.Query(context.Background(), query, hasta)
	if err != nil {
		return nil, fmt.Errorf("list productos por vencer: %w", err)
	}
	defer rows.Close()
	var list []*entity.Producto
	for rows.Next() {
		p, err := scanProducto(rows)
		if err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductoRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete producto: %w", err)
	}
	return nil
}
