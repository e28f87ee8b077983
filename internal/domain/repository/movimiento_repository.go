package repository

import "github.com/danilalessandra/Petstock-Backend/internal/domain/entity"

// MovimientoRepository define el puerto de persistencia para la bitácora de
// movimientos manuales de inventario.
type MovimientoRepository interface {
	Create(movimiento *entity.MovimientoInventario) error
	GetByID(id string) (*entity.MovimientoInventario, error)
	List() ([]*entity.MovimientoInventario, error)
	ListByProducto(productoID string) ([]*entity.MovimientoInventario, error)
	Update(movimiento *entity.MovimientoInventario) error
	Delete(id string) error
}
