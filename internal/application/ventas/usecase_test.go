package ventas_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danilalessandra/Petstock-Backend/internal/application/dto"
	"github.com/danilalessandra/Petstock-Backend/internal/application/ventas"
	"github.com/danilalessandra/Petstock-Backend/internal/domain"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/entity"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/repository"
	"github.com/danilalessandra/Petstock-Backend/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica transaccional (rollback ante error)
// ──────────────────────────────────────────────────────────────────────────────

type memProductoRepo struct {
	productos map[string]*entity.Producto
}

func (m *memProductoRepo) Create(p *entity.Producto) error { m.productos[p.ID] = p; return nil }

func (m *memProductoRepo) GetByID(id string) (*entity.Producto, error) {
	p, ok := m.productos[id]
	if !ok {
		return nil, nil
	}
	copia := *p
	return &copia, nil
}

func (m *memProductoRepo) Update(p *entity.Producto) error { m.productos[p.ID] = p; return nil }

func (m *memProductoRepo) List() ([]*entity.Producto, error) { return nil, nil }

func (m *memProductoRepo) Delete(id string) error { delete(m.productos, id); return nil }

func (m *memProductoRepo) GetForUpdate(id string) (*entity.Producto, error) { return m.GetByID(id) }

func (m *memProductoRepo) AjustarStock(id string, delta int64) (*entity.Producto, error) {
	p, ok := m.productos[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Stock += delta
	copia := *p
	return &copia, nil
}

func (m *memProductoRepo) ListPorVencer(hasta time.Time) ([]*entity.Producto, error) {
	return nil, nil
}

type memVentaRepo struct {
	ventas map[string]*entity.Venta
}

func (m *memVentaRepo) Create(v *entity.Venta) error { m.ventas[v.ID] = v; return nil }

func (m *memVentaRepo) GetByID(id string) (*entity.Venta, error) {
	v, ok := m.ventas[id]
	if !ok {
		return nil, nil
	}
	copia := *v
	return &copia, nil
}

func (m *memVentaRepo) List(limit, offset int) ([]*entity.Venta, int64, error) {
	out := make([]*entity.Venta, 0, len(m.ventas))
	for _, v := range m.ventas {
		out = append(out, v)
	}
	return out, int64(len(m.ventas)), nil
}

func (m *memVentaRepo) ReplaceDetalles(v *entity.Venta) error { m.ventas[v.ID] = v; return nil }

func (m *memVentaRepo) Delete(id string) error { delete(m.ventas, id); return nil }

// memTx simula la transacción: toma una instantánea y la restaura si fn falla.
type memTx struct {
	ventaRepo    *memVentaRepo
	productoRepo *memProductoRepo
}

func (t *memTx) RunVenta(ctx context.Context, fn func(repository.VentaRepository, repository.ProductoRepository) error) error {
	ventasSnap := map[string]*entity.Venta{}
	for k, v := range t.ventaRepo.ventas {
		copia := *v
		ventasSnap[k] = &copia
	}
	productosSnap := map[string]*entity.Producto{}
	for k, p := range t.productoRepo.productos {
		copia := *p
		productosSnap[k] = &copia
	}
	if err := fn(t.ventaRepo, t.productoRepo); err != nil {
		t.ventaRepo.ventas = ventasSnap
		t.productoRepo.productos = productosSnap
		return err
	}
	return nil
}

type spyNotificador struct {
	notificados []*entity.Producto
}

func (s *spyNotificador) StockActualizado(p *entity.Producto) {
	s.notificados = append(s.notificados, p)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type harness struct {
	uc        *ventas.UseCase
	productos *memProductoRepo
	ventas    *memVentaRepo
	spy       *spyNotificador
}

func nuevoHarness(productos ...*entity.Producto) *harness {
	pRepo := &memProductoRepo{productos: map[string]*entity.Producto{}}
	for _, p := range productos {
		pRepo.productos[p.ID] = p
	}
	vRepo := &memVentaRepo{ventas: map[string]*entity.Venta{}}
	spy := &spyNotificador{}
	tx := &memTx{ventaRepo: vRepo, productoRepo: pRepo}
	return &harness{
		uc:        ventas.NewUseCase(vRepo, tx, spy, logger.Nop()),
		productos: pRepo,
		ventas:    vRepo,
		spy:       spy,
	}
}

func producto(id string, stock, minimo int64) *entity.Producto {
	return &entity.Producto{
		ID:                  id,
		Nombre:              "Producto " + id,
		Stock:               stock,
		Precio:              decimal.NewFromInt(100),
		StockMinimoSugerido: minimo,
	}
}

func linea(productoID string, cantidad int64, precio int64) dto.DetalleVentaRequest {
	return dto.DetalleVentaRequest{
		ProductoID:     productoID,
		Cantidad:       cantidad,
		PrecioUnitario: decimal.NewFromInt(precio),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// El total de la venta es la suma de cantidad × precio por línea y el stock
// baja exactamente en lo vendido.
func TestCreate_TotalYDescuentoDeStock(t *testing.T) {
	h := nuevoHarness(producto("p1", 50, 5), producto("p2", 20, 5))

	out, err := h.uc.Create(context.Background(), "u1", dto.CreateVentaRequest{
		Detalles: []dto.DetalleVentaRequest{
			linea("p1", 3, 100),
			linea("p2", 2, 250),
		},
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(800).Equal(out.Total), "total = 3×100 + 2×250")
	assert.Equal(t, int64(47), h.productos.productos["p1"].Stock)
	assert.Equal(t, int64(18), h.productos.productos["p2"].Stock)
	assert.Len(t, h.spy.notificados, 2, "cada producto afectado notifica su stock")
}

// Si una línea excede el stock, la venta completa se rechaza y ningún stock
// queda modificado.
func TestCreate_StockInsuficienteNoDejaEscrituraParcial(t *testing.T) {
	h := nuevoHarness(producto("p1", 50, 5), producto("p2", 1, 5))

	_, err := h.uc.Create(context.Background(), "u1", dto.CreateVentaRequest{
		Detalles: []dto.DetalleVentaRequest{
			linea("p1", 10, 100),
			linea("p2", 5, 100), // excede el stock de p2
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(50), h.productos.productos["p1"].Stock, "la transacción debe revertirse completa")
	assert.Equal(t, int64(1), h.productos.productos["p2"].Stock)
	assert.Empty(t, h.ventas.ventas, "no debe persistir ninguna venta")
	assert.Empty(t, h.spy.notificados, "sin commit no hay notificaciones")
}

// Borrar una venta devuelve el stock exactamente a su valor previo.
func TestDelete_RestituyeStock(t *testing.T) {
	h := nuevoHarness(producto("p1", 50, 5))

	out, err := h.uc.Create(context.Background(), "u1", dto.CreateVentaRequest{
		Detalles: []dto.DetalleVentaRequest{linea("p1", 8, 100)},
	})
	require.NoError(t, err)
	require.Equal(t, int64(42), h.productos.productos["p1"].Stock)

	require.NoError(t, h.uc.Delete(context.Background(), out.ID))

	assert.Equal(t, int64(50), h.productos.productos["p1"].Stock, "delete es el inverso exacto de create")
	assert.Empty(t, h.ventas.ventas)
}

// Update revierte las líneas anteriores y aplica las nuevas.
func TestUpdate_ReviertaYReaplicaStock(t *testing.T) {
	h := nuevoHarness(producto("p1", 50, 5), producto("p2", 30, 5))

	out, err := h.uc.Create(context.Background(), "u1", dto.CreateVentaRequest{
		Detalles: []dto.DetalleVentaRequest{linea("p1", 10, 100)},
	})
	require.NoError(t, err)
	require.Equal(t, int64(40), h.productos.productos["p1"].Stock)

	nuevo, err := h.uc.Update(context.Background(), out.ID, dto.UpdateVentaRequest{
		Detalles: []dto.DetalleVentaRequest{linea("p2", 4, 200)},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(50), h.productos.productos["p1"].Stock, "las líneas anteriores se revierten")
	assert.Equal(t, int64(26), h.productos.productos["p2"].Stock, "las nuevas líneas se aplican")
	assert.True(t, decimal.NewFromInt(800).Equal(nuevo.Total))
}

// Venta sobre un producto inexistente → ErrNotFound, sin efectos.
func TestCreate_ProductoInexistente(t *testing.T) {
	h := nuevoHarness(producto("p1", 50, 5))

	_, err := h.uc.Create(context.Background(), "u1", dto.CreateVentaRequest{
		Detalles: []dto.DetalleVentaRequest{linea("no-existe", 1, 100)},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, h.ventas.ventas)
}

// Venta sin líneas → ErrInvalidInput.
func TestCreate_SinLineas(t *testing.T) {
	h := nuevoHarness()
	_, err := h.uc.Create(context.Background(), "u1", dto.CreateVentaRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
