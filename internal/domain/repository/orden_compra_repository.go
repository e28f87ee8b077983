package repository

import "github.com/danilalessandra/Petstock-Backend/internal/domain/entity"

// OrdenCompraRepository define el puerto de persistencia para OrdenCompra y sus detalles.
type OrdenCompraRepository interface {
	Create(orden *entity.OrdenCompra) error
	GetByID(id string) (*entity.OrdenCompra, error)
	// GetByIDForUpdate bloquea la fila de la orden (SELECT FOR UPDATE) para
	// decidir transiciones de estado sin carreras. Solo dentro de transacción.
	GetByIDForUpdate(id string) (*entity.OrdenCompra, error)
	List() ([]*entity.OrdenCompra, error)
	UpdateEstado(id, estado string) error
	// UpdateCabecera actualiza proveedor, fecha, estado y total de la orden.
	UpdateCabecera(orden *entity.OrdenCompra) error
	// Manipulación de líneas individuales, para conciliar contra las existentes.
	InsertDetalle(d entity.DetalleOrdenCompra) error
	UpdateDetalle(d entity.DetalleOrdenCompra) error
	DeleteDetalle(id string) error
	Delete(id string) error
}
