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

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

const usuarioColumns = `id, nombre, email, password_hash, rol, COALESCE(refresh_token, ''), created_at, updated_at`

// UsuarioRepo implementación sobre PostgreSQL (usable con pool o tx).
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.Rol, &u.RefreshToken, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario.
func (r *UsuarioRepo) Create(usuario *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (id, nombre, email, password_hash, rol, refresh_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		usuario.ID, usuario.Nombre, usuario.Email, usuario.PasswordHash, usuario.Rol,
		usuario.RefreshToken, usuario.CreatedAt, usuario.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(context.Background(),
		`SELECT `+usuarioColumns+` FROM usuarios WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

// GetByEmail obtiene un usuario por email.
func (r *UsuarioRepo) GetByEmail(email string) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(context.Background(),
		`SELECT `+usuarioColumns+` FROM usuarios WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario by email: %w", err)
	}
	return u, nil
}

// GetByRefreshToken obtiene el usuario dueño de un refresh token activo.
func (r *UsuarioRepo) GetByRefreshToken(token string) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(context.Background(),
		`SELECT `+usuarioColumns+` FROM usuarios WHERE refresh_token = $1`, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario by refresh token: %w", err)
	}
	return u, nil
}

// UpdateRefreshToken guarda (o limpia, con cadena vacía) el refresh token del usuario.
func (r *UsuarioRepo) UpdateRefreshToken(id, token string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE usuarios SET refresh_token = NULLIF($2, ''), updated_at = now() WHERE id = $1`,
		id, token,
	)
	if err != nil {
		return fmt.Errorf("update refresh token: %w", err)
	}
	return nil
}

// Update actualiza un usuario existente.
func (r *UsuarioRepo) Update(usuario *entity.Usuario) error {
	query := `
		UPDATE usuarios SET nombre = $2, email = $3, password_hash = $4, rol = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		usuario.ID, usuario.Nombre, usuario.Email, usuario.PasswordHash, usuario.Rol, usuario.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update usuario: %w", err)
	}
	return nil
}

// List lista todos los usuarios ordenados por nombre.
func (r *UsuarioRepo) List() ([]*entity.Usuario, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+usuarioColumns+` FROM usuarios ORDER BY nombre ASC`)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()
	var list []*entity.Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Delete elimina un usuario por ID.
func (r *UsuarioRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete usuario: %w", err)
	}
	return nil
}

// EmailsPorRol devuelve los correos no vacíos de los usuarios con el rol dado.
func (r *UsuarioRepo) EmailsPorRol(rol string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT email FROM usuarios WHERE rol = $1 AND email <> ''`, rol)
	if err != nil {
		return nil, fmt.Errorf("emails por rol: %w", err)
	}
	defer rows.Close()
	var emails []string
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, fmt.Errorf("scan email: %w", err)
		}
		emails = append(emails, e)
	}
	return emails, rows.Err()
}
