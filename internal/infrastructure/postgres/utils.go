package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation detecta el código 23505 de PostgreSQL (clave única
// duplicada), por ejemplo al insertar un usuario con un email ya registrado.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// errores ya envueltos en texto plano
	return strings.Contains(err.Error(), "23505")
}
