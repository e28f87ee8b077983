package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/danilalessandra/Petstock-Backend/internal/application/compras"
	"github.com/danilalessandra/Petstock-Backend/internal/application/ventas"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/repository"
)

// Ensure TxRunner implements ventas.TxRunner and compras.TxRunner.
var _ ventas.TxRunner = (*TxRunner)(nil)
var _ compras.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunVenta inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunVenta(ctx context.Context, fn func(
	ventaRepo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ventaRepo := NewVentaRepository(tx)
	productoRepo := NewProductoRepository(tx)

	if err := fn(ventaRepo, productoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunOrden inicia una transacción con repos de órdenes de compra y productos
// (recepciones y conciliación de líneas mutan stock).
func (r *TxRunner) RunOrden(ctx context.Context, fn func(
	ordenRepo repository.OrdenCompraRepository,
	productoRepo repository.ProductoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ordenRepo := NewOrdenCompraRepository(tx)
	productoRepo := NewProductoRepository(tx)

	if err := fn(ordenRepo, productoRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
