package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/danilalessandra/Petstock-Backend/internal/domain"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/entity"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/repository"
)

var _ repository.ProveedorRepository = (*ProveedorRepo)(nil)

// ProveedorRepo implementación sobre PostgreSQL (usable con pool o tx).
type ProveedorRepo struct {
	q Querier
}

// NewProveedorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProveedorRepository(q Querier) *ProveedorRepo {
	return &ProveedorRepo{q: q}
}

// Create persiste un nuevo proveedor.
func (r *ProveedorRepo) Create(proveedor *entity.Proveedor) error {
	query := `
		INSERT INTO proveedores (id, nombre, contacto, direccion, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		proveedor.ID, proveedor.Nombre, proveedor.Contacto, proveedor.Direccion,
		proveedor.CreatedAt, proveedor.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *ProveedorRepo) GetByID(id string) (*entity.Proveedor, error) {
	query := `
		SELECT id, nombre, contacto, direccion, created_at, updated_at
		FROM proveedores WHERE id = $1`
	var p entity.Proveedor
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Nombre, &p.Contacto, &p.Direccion, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	return &p, nil
}

// Update actualiza un proveedor existente.
func (r *ProveedorRepo) Update(proveedor *entity.Proveedor) error {
	query := `
		UPDATE proveedores SET nombre = $2, contacto = $3, direccion = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		proveedor.ID, proveedor.Nombre, proveedor.Contacto, proveedor.Direccion, proveedor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update proveedor: %w", err)
	}
	return nil
}

// List lista todos los proveedores ordenados por nombre.
func (r *ProveedorRepo) List() ([]*entity.Proveedor, error) {
	query := `
		SELECT id, nombre, contacto, direccion, created_at, updated_at
		FROM proveedores ORDER BY nombre ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Proveedor
	for rows.Next() {
		var p entity.Proveedor
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Contacto, &p.Direccion, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina un proveedor por ID.
func (r *ProveedorRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM proveedores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete proveedor: %w", err)
	}
	return nil
}
