package compras

import (
	"context"

	"github.com/danilalessandra/Petstock-Backend/internal/domain/entity"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repos atados a ella.
type TxRunner interface {
	RunOrden(ctx context.Context, fn func(
		ordenRepo repository.OrdenCompraRepository,
		productoRepo repository.ProductoRepository,
	) error) error
}

// Notificador recibe los productos afectados después del commit.
type Notificador interface {
	// StockActualizado emite inventarioActualizado y, si corresponde, stock bajo.
	StockActualizado(p *entity.Producto)
	// InventarioActualizado emite solo el evento de inventario (recepciones).
	InventarioActualizado(p *entity.Producto)
	// AlertaVencimiento avisa de un producto por vencer.
	AlertaVencimiento(p *entity.Producto)
}

// PDFGenerator genera el documento imprimible de una orden de compra.
// nombresProductos mapea producto_id -> nombre para rotular las líneas.
type PDFGenerator interface {
	OrdenCompraPDF(orden *entity.OrdenCompra, proveedor *entity.Proveedor, nombresProductos map[string]string) ([]byte, error)
}
