package repository

import "github.com/danilalessandra/Petstock-Backend/internal/domain/entity"

// VentaRepository define el puerto de persistencia para Venta y sus detalles.
type VentaRepository interface {
	// Create inserta la venta con sus detalles en una sola operación.
	Create(venta *entity.Venta) error
	GetByID(id string) (*entity.Venta, error)
	// List devuelve una página de ventas (más recientes primero) y el total de filas.
	List(limit, offset int) ([]*entity.Venta, int64, error)
	// ReplaceDetalles borra los detalles actuales y escribe los nuevos, actualizando el total.
	ReplaceDetalles(venta *entity.Venta) error
	Delete(id string) error
}
