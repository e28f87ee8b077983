package inventario

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/danilalessandra/Petstock-Backend/internal/application/dto"
	"github.com/danilalessandra/Petstock-Backend/internal/domain"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/entity"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/repository"
	"github.com/danilalessandra/Petstock-Backend/pkg/logger"
)

// Notificador publica el evento de inventario actualizado a los suscriptores.
type Notificador interface {
	InventarioActualizado(p *entity.Producto)
}

// MovimientoUseCase bitácora de ajustes manuales. Los movimientos NO mutan el
// stock del producto: son un registro de auditoría.
type MovimientoUseCase struct {
	movRepo      repository.MovimientoRepository
	productoRepo repository.ProductoRepository
	notificador  Notificador
	log          *logger.Logger
}

// NewMovimientoUseCase construye el caso de uso de movimientos.
func NewMovimientoUseCase(movRepo repository.MovimientoRepository, productoRepo repository.ProductoRepository, notificador Notificador, log *logger.Logger) *MovimientoUseCase {
	return &MovimientoUseCase{movRepo: movRepo, productoRepo: productoRepo, notificador: notificador, log: log}
}

// Create registra un movimiento manual. Valida tipo y que el producto exista.
func (uc *MovimientoUseCase) Create(ctx context.Context, usuarioID string, in dto.CreateMovimientoRequest) (*dto.MovimientoResponse, error) {
	if in.Tipo != entity.MovimientoEntrada && in.Tipo != entity.MovimientoSalida {
		return nil, domain.ErrInvalidInput
	}
	if in.Cantidad <= 0 {
		return nil, domain.ErrInvalidInput
	}
	producto, err := uc.productoRepo.GetByID(in.ProductoID)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, domain.ErrNotFound
	}

	fecha := time.Now()
	if in.Fecha != nil && *in.Fecha != "" {
		f, err := time.Parse("2006-01-02", *in.Fecha)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		fecha = f
	}

	mov := &entity.MovimientoInventario{
		ID:         uuid.New().String(),
		ProductoID: in.ProductoID,
		Tipo:       in.Tipo,
		Cantidad:   in.Cantidad,
		Motivo:     in.Motivo,
		UsuarioID:  usuarioID,
		Fecha:      fecha,
		CreatedAt:  time.Now(),
	}
	if err := uc.movRepo.Create(mov); err != nil {
		return nil, err
	}
	uc.log.Info().Str("producto_id", mov.ProductoID).Str("tipo", mov.Tipo).Int64("cantidad", mov.Cantidad).
		Msg("movimiento de inventario registrado")
	if uc.notificador != nil {
		uc.notificador.InventarioActualizado(producto)
	}
	return toMovimientoResponse(mov), nil
}

// GetByID busca un movimiento por id.
func (uc *MovimientoUseCase) GetByID(ctx context.Context, id string) (*dto.MovimientoResponse, error) {
	mov, err := uc.movRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	return toMovimientoResponse(mov), nil
}

// Update corrige un movimiento registrado. Aplica las mismas validaciones que
// Create sobre los campos que cambian; sigue sin tocar el stock del producto.
func (uc *MovimientoUseCase) Update(ctx context.Context, id string, in dto.UpdateMovimientoRequest) (*dto.MovimientoResponse, error) {
	mov, err := uc.movRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}

	if in.ProductoID != nil && *in.ProductoID != mov.ProductoID {
		producto, err := uc.productoRepo.GetByID(*in.ProductoID)
		if err != nil {
			return nil, err
		}
		if producto == nil {
			return nil, domain.ErrNotFound
		}
		mov.ProductoID = *in.ProductoID
	}
	if in.Tipo != nil {
		if *in.Tipo != entity.MovimientoEntrada && *in.Tipo != entity.MovimientoSalida {
			return nil, domain.ErrInvalidInput
		}
		mov.Tipo = *in.Tipo
	}
	if in.Cantidad != nil {
		if *in.Cantidad <= 0 {
			return nil, domain.ErrInvalidInput
		}
		mov.Cantidad = *in.Cantidad
	}
	if in.Motivo != nil {
		mov.Motivo = *in.Motivo
	}
	if in.Fecha != nil && *in.Fecha != "" {
		f, err := time.Parse("2006-01-02", *in.Fecha)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		mov.Fecha = f
	}

	if err := uc.movRepo.Update(mov); err != nil {
		return nil, err
	}
	return toMovimientoResponse(mov), nil
}

// Delete elimina un movimiento de la bitácora.
func (uc *MovimientoUseCase) Delete(ctx context.Context, id string) error {
	mov, err := uc.movRepo.GetByID(id)
	if err != nil {
		return err
	}
	if mov == nil {
		return domain.ErrNotFound
	}
	return uc.movRepo.Delete(id)
}

// List lista todos los movimientos.
func (uc *MovimientoUseCase) List(ctx context.Context) ([]dto.MovimientoResponse, error) {
	list, err := uc.movRepo.List()
	if err != nil {
		return nil, err
	}
	return toMovimientoResponses(list), nil
}

// ListByProducto lista los movimientos de un producto.
func (uc *MovimientoUseCase) ListByProducto(ctx context.Context, productoID string) ([]dto.MovimientoResponse, error) {
	list, err := uc.movRepo.ListByProducto(productoID)
	if err != nil {
		return nil, err
	}
	return toMovimientoResponses(list), nil
}

func toMovimientoResponses(list []*entity.MovimientoInventario) []dto.MovimientoResponse {
	out := make([]dto.MovimientoResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *toMovimientoResponse(m))
	}
	return out
}

func toMovimientoResponse(m *entity.MovimientoInventario) *dto.MovimientoResponse {
	return &dto.MovimientoResponse{
		ID:         m.ID,
		ProductoID: m.ProductoID,
		Tipo:       m.Tipo,
		Cantidad:   m.Cantidad,
		Motivo:     m.Motivo,
		UsuarioID:  m.UsuarioID,
		Fecha:      m.Fecha,
	}
}
