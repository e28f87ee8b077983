package inventario_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danilalessandra/Petstock-Backend/internal/application/dto"
	"github.com/danilalessandra/Petstock-Backend/internal/application/inventario"
	"github.com/danilalessandra/Petstock-Backend/internal/domain"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/entity"
	"github.com/danilalessandra/Petstock-Backend/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type memMovRepo struct {
	movimientos map[string]*entity.MovimientoInventario
}

func (m *memMovRepo) Create(mov *entity.MovimientoInventario) error {
	m.movimientos[mov.ID] = mov
	return nil
}

func (m *memMovRepo) GetByID(id string) (*entity.MovimientoInventario, error) {
	mov, ok := m.movimientos[id]
	if !ok {
		return nil, nil
	}
	copia := *mov
	return &copia, nil
}

func (m *memMovRepo) List() ([]*entity.MovimientoInventario, error) {
	out := make([]*entity.MovimientoInventario, 0, len(m.movimientos))
	for _, mov := range m.movimientos {
		out = append(out, mov)
	}
	return out, nil
}

func (m *memMovRepo) ListByProducto(productoID string) ([]*entity.MovimientoInventario, error) {
	var out []*entity.MovimientoInventario
	for _, mov := range m.movimientos {
		if mov.ProductoID == productoID {
			out = append(out, mov)
		}
	}
	return out, nil
}

func (m *memMovRepo) Update(mov *entity.MovimientoInventario) error {
	m.movimientos[mov.ID] = mov
	return nil
}

func (m *memMovRepo) Delete(id string) error {
	delete(m.movimientos, id)
	return nil
}

type stubProductoRepo struct {
	productos map[string]*entity.Producto
}

func (s *stubProductoRepo) Create(p *entity.Producto) error   { s.productos[p.ID] = p; return nil }
func (s *stubProductoRepo) Update(p *entity.Producto) error   { s.productos[p.ID] = p; return nil }
func (s *stubProductoRepo) List() ([]*entity.Producto, error) { return nil, nil }
func (s *stubProductoRepo) Delete(id string) error            { delete(s.productos, id); return nil }

func (s *stubProductoRepo) GetByID(id string) (*entity.Producto, error) {
	p, ok := s.productos[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (s *stubProductoRepo) GetForUpdate(id string) (*entity.Producto, error) { return s.GetByID(id) }

func (s *stubProductoRepo) AjustarStock(id string, delta int64) (*entity.Producto, error) {
	p, ok := s.productos[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Stock += delta
	return p, nil
}

func (s *stubProductoRepo) ListPorVencer(hasta time.Time) ([]*entity.Producto, error) {
	return nil, nil
}

type spyNotificadorInv struct {
	eventos []*entity.Producto
}

func (s *spyNotificadorInv) InventarioActualizado(p *entity.Producto) {
	s.eventos = append(s.eventos, p)
}

type movHarness struct {
	uc        *inventario.MovimientoUseCase
	repo      *memMovRepo
	productos *stubProductoRepo
	spy       *spyNotificadorInv
}

func nuevoMovHarness(productos ...*entity.Producto) *movHarness {
	pRepo := &stubProductoRepo{productos: map[string]*entity.Producto{}}
	for _, p := range productos {
		pRepo.productos[p.ID] = p
	}
	mRepo := &memMovRepo{movimientos: map[string]*entity.MovimientoInventario{}}
	spy := &spyNotificadorInv{}
	return &movHarness{
		uc:        inventario.NewMovimientoUseCase(mRepo, pRepo, spy, logger.Nop()),
		repo:      mRepo,
		productos: pRepo,
		spy:       spy,
	}
}

func movProducto(id string, stock int64) *entity.Producto {
	return &entity.Producto{ID: id, Nombre: "Producto " + id, Stock: stock}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// El movimiento es solo bitácora: se persiste y notifica, pero el stock del
// producto queda intacto.
func TestMovimientoCreate_NoMutaStock(t *testing.T) {
	h := nuevoMovHarness(movProducto("p1", 40))

	out, err := h.uc.Create(context.Background(), "u1", dto.CreateMovimientoRequest{
		ProductoID: "p1",
		Tipo:       entity.MovimientoSalida,
		Cantidad:   5,
		Motivo:     "merma",
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.ID)

	assert.Equal(t, int64(40), h.productos.productos["p1"].Stock, "la bitácora nunca ajusta stock")
	assert.Len(t, h.repo.movimientos, 1)
	assert.Len(t, h.spy.eventos, 1, "crear un movimiento difunde inventarioActualizado")
}

func TestMovimientoCreate_TipoInvalido(t *testing.T) {
	h := nuevoMovHarness(movProducto("p1", 40))
	_, err := h.uc.Create(context.Background(), "u1", dto.CreateMovimientoRequest{
		ProductoID: "p1",
		Tipo:       "ajuste",
		Cantidad:   5,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMovimientoGetByID_Inexistente(t *testing.T) {
	h := nuevoMovHarness()
	_, err := h.uc.GetByID(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Update aplica las mismas validaciones que Create sobre los campos que cambian.
func TestMovimientoUpdate_CorrigeCantidadYMotivo(t *testing.T) {
	h := nuevoMovHarness(movProducto("p1", 40))
	out, err := h.uc.Create(context.Background(), "u1", dto.CreateMovimientoRequest{
		ProductoID: "p1",
		Tipo:       entity.MovimientoEntrada,
		Cantidad:   3,
		Motivo:     "conteo",
	})
	require.NoError(t, err)

	cantidad := int64(7)
	motivo := "conteo corregido"
	actualizado, err := h.uc.Update(context.Background(), out.ID, dto.UpdateMovimientoRequest{
		Cantidad: &cantidad,
		Motivo:   &motivo,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), actualizado.Cantidad)
	assert.Equal(t, "conteo corregido", actualizado.Motivo)
	assert.Equal(t, entity.MovimientoEntrada, actualizado.Tipo, "los campos no enviados se conservan")
	assert.Equal(t, int64(40), h.productos.productos["p1"].Stock)
}

func TestMovimientoUpdate_CantidadInvalida(t *testing.T) {
	h := nuevoMovHarness(movProducto("p1", 40))
	out, err := h.uc.Create(context.Background(), "u1", dto.CreateMovimientoRequest{
		ProductoID: "p1",
		Tipo:       entity.MovimientoEntrada,
		Cantidad:   3,
	})
	require.NoError(t, err)

	cero := int64(0)
	_, err = h.uc.Update(context.Background(), out.ID, dto.UpdateMovimientoRequest{Cantidad: &cero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	tipo := "ajuste"
	_, err = h.uc.Update(context.Background(), out.ID, dto.UpdateMovimientoRequest{Tipo: &tipo})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMovimientoUpdate_ProductoDestinoDebeExistir(t *testing.T) {
	h := nuevoMovHarness(movProducto("p1", 40))
	out, err := h.uc.Create(context.Background(), "u1", dto.CreateMovimientoRequest{
		ProductoID: "p1",
		Tipo:       entity.MovimientoEntrada,
		Cantidad:   3,
	})
	require.NoError(t, err)

	otro := "no-existe"
	_, err = h.uc.Update(context.Background(), out.ID, dto.UpdateMovimientoRequest{ProductoID: &otro})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovimientoUpdate_Inexistente(t *testing.T) {
	h := nuevoMovHarness()
	motivo := "x"
	_, err := h.uc.Update(context.Background(), "no-existe", dto.UpdateMovimientoRequest{Motivo: &motivo})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovimientoDelete(t *testing.T) {
	h := nuevoMovHarness(movProducto("p1", 40))
	out, err := h.uc.Create(context.Background(), "u1", dto.CreateMovimientoRequest{
		ProductoID: "p1",
		Tipo:       entity.MovimientoSalida,
		Cantidad:   2,
	})
	require.NoError(t, err)

	require.NoError(t, h.uc.Delete(context.Background(), out.ID))
	assert.Empty(t, h.repo.movimientos)
	assert.Equal(t, int64(40), h.productos.productos["p1"].Stock, "borrar de la bitácora tampoco toca stock")

	assert.ErrorIs(t, h.uc.Delete(context.Background(), out.ID), domain.ErrNotFound)
}
