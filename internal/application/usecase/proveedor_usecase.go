package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/danilalessandra/Petstock-Backend/internal/application/dto"
	"github.com/danilalessandra/Petstock-Backend/internal/domain"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/entity"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/repository"
)

// ProveedorUseCase casos de uso CRUD para proveedores.
type ProveedorUseCase struct {
	repo repository.ProveedorRepository
}

// NewProveedorUseCase construye el caso de uso.
func NewProveedorUseCase(repo repository.ProveedorRepository) *ProveedorUseCase {
	return &ProveedorUseCase{repo: repo}
}

// Create crea un nuevo proveedor.
func (uc *ProveedorUseCase) Create(in dto.CreateProveedorRequest) (*dto.ProveedorResponse, error) {
	if in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	proveedor := &entity.Proveedor{
		ID:        uuid.New().String(),
		Nombre:    in.Nombre,
		Contacto:  in.Contacto,
		Direccion: in.Direccion,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(proveedor); err != nil {
		return nil, err
	}
	return toProveedorResponse(proveedor), nil
}

// GetByID obtiene un proveedor por ID.
func (uc *ProveedorUseCase) GetByID(id string) (*dto.ProveedorResponse, error) {
	proveedor, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, nil
	}
	return toProveedorResponse(proveedor), nil
}

// Update actualiza un proveedor.
func (uc *ProveedorUseCase) Update(id string, in dto.UpdateProveedorRequest) (*dto.ProveedorResponse, error) {
	proveedor, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, nil
	}
	if in.Nombre != nil {
		proveedor.Nombre = *in.Nombre
	}
	if in.Contacto != nil {
		proveedor.Contacto = *in.Contacto
	}
	if in.Direccion != nil {
		proveedor.Direccion = *in.Direccion
	}
	proveedor.UpdatedAt = time.Now()
	if err := uc.repo.Update(proveedor); err != nil {
		return nil, err
	}
	return toProveedorResponse(proveedor), nil
}

// List lista todos los proveedores.
func (uc *ProveedorUseCase) List() ([]dto.ProveedorResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProveedorResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProveedorResponse(p))
	}
	return out, nil
}

// Delete elimina un proveedor por ID.
func (uc *ProveedorUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toProveedorResponse(p *entity.Proveedor) *dto.ProveedorResponse {
	if p == nil {
		return nil
	}
	return &dto.ProveedorResponse{
		ID:        p.ID,
		Nombre:    p.Nombre,
		Contacto:  p.Contacto,
		Direccion: p.Direccion,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
