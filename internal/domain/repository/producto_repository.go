package repository

import (
	"time"

	"github.com/danilalessandra/Petstock-Backend/internal/domain/entity"
)

// ProductoRepository define el puerto de persistencia para Producto (DIP).
type ProductoRepository interface {
	Create(producto *entity.Producto) error
	GetByID(id string) (*entity.Producto, error)
	Update(producto *entity.Producto) error
	List() ([]*entity.Producto, error)
	Delete(id string) error
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE). Solo tiene
	// sentido dentro de una transacción.
	GetForUpdate(id string) (*entity.Producto, error)
	// AjustarStock incrementa (delta > 0) o decrementa (delta < 0) el stock y
	// devuelve el producto actualizado. La fila debe estar bloqueada.
	AjustarStock(id string, delta int64) (*entity.Producto, error)
	// ListPorVencer devuelve productos con fecha de vencimiento dentro del horizonte.
	ListPorVencer(hasta time.Time) ([]*entity.Producto, error)
}
