package repository

import "github.com/danilalessandra/Petstock-Backend/internal/domain/entity"

// UsuarioRepository define el puerto de persistencia para Usuario (DIP).
type UsuarioRepository interface {
	Create(usuario *entity.Usuario) error
	GetByID(id string) (*entity.Usuario, error)
	GetByEmail(email string) (*entity.Usuario, error)
	// GetByRefreshToken busca el usuario dueño de un refresh token activo.
	GetByRefreshToken(token string) (*entity.Usuario, error)
	UpdateRefreshToken(id, token string) error
	Update(usuario *entity.Usuario) error
	List() ([]*entity.Usuario, error)
	Delete(id string) error
	// EmailsPorRol devuelve los correos de los usuarios con el rol dado,
	// destinatarios de las alertas.
	EmailsPorRol(rol string) ([]string, error)
}
