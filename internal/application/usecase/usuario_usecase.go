package usecase

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/danilalessandra/Petstock-Backend/internal/application/dto"
	"github.com/danilalessandra/Petstock-Backend/internal/domain"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/entity"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/repository"
)

// UsuarioUseCase administración de usuarios (el alta vive en el módulo de auth).
type UsuarioUseCase struct {
	repo repository.UsuarioRepository
}

// NewUsuarioUseCase construye el caso de uso.
func NewUsuarioUseCase(repo repository.UsuarioRepository) *UsuarioUseCase {
	return &UsuarioUseCase{repo: repo}
}

// GetByID obtiene un usuario por ID.
func (uc *UsuarioUseCase) GetByID(id string) (*dto.UsuarioResponse, error) {
	usuario, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, nil
	}
	return toUsuarioResponse(usuario), nil
}

// Update actualiza nombre, email, rol y opcionalmente la contraseña.
func (uc *UsuarioUseCase) Update(id string, in dto.UpdateUsuarioRequest) (*dto.UsuarioResponse, error) {
	usuario, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, nil
	}
	if in.Nombre != nil {
		usuario.Nombre = *in.Nombre
	}
	if in.Email != nil {
		usuario.Email = *in.Email
	}
	if in.Rol != nil {
		if *in.Rol != entity.RolAdministrador && *in.Rol != entity.RolEmpleado {
			return nil, domain.ErrInvalidInput
		}
		usuario.Rol = *in.Rol
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		usuario.PasswordHash = string(hash)
	}
	usuario.UpdatedAt = time.Now()
	if err := uc.repo.Update(usuario); err != nil {
		return nil, err
	}
	return toUsuarioResponse(usuario), nil
}

// List lista todos los usuarios.
func (uc *UsuarioUseCase) List() ([]dto.UsuarioResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UsuarioResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *toUsuarioResponse(u))
	}
	return out, nil
}

// Delete elimina un usuario por ID.
func (uc *UsuarioUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	if u == nil {
		return nil
	}
	return &dto.UsuarioResponse{
		ID:        u.ID,
		Nombre:    u.Nombre,
		Email:     u.Email,
		Rol:       u.Rol,
		CreatedAt: u.CreatedAt,
	}
}
