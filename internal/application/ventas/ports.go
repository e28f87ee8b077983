package ventas

import (
	"context"

	"github.com/danilalessandra/Petstock-Backend/internal/domain/entity"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repos atados a ella.
type TxRunner interface {
	RunVenta(ctx context.Context, fn func(
		ventaRepo repository.VentaRepository,
		productoRepo repository.ProductoRepository,
	) error) error
}

// Notificador recibe los productos cuyo stock cambió, después del commit.
// La implementación decide si además corresponde alerta de stock bajo.
type Notificador interface {
	StockActualizado(p *entity.Producto)
}
