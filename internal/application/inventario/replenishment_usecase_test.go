package inventario_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danilalessandra/Petstock-Backend/internal/application/inventario"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/repository"
	"github.com/danilalessandra/Petstock-Backend/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del repositorio de reportes
// ──────────────────────────────────────────────────────────────────────────────

type fakeReporteRepo struct {
	filas []repository.ProductoVentaResult
}

func (f *fakeReporteRepo) VentasEnRango(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, int64, error) {
	return decimal.Zero, 0, nil
}

func (f *fakeReporteRepo) VentasPorDia(ctx context.Context, desde, hasta time.Time) ([]repository.VentaPorDiaResult, error) {
	return nil, nil
}

func (f *fakeReporteRepo) ProductosMasVendidos(ctx context.Context, desde, hasta time.Time, limit int) ([]repository.ProductoVendidoResult, error) {
	return nil, nil
}

func (f *fakeReporteRepo) ProductosBajoStock(ctx context.Context) (int64, error) { return 0, nil }
func (f *fakeReporteRepo) TotalProductos(ctx context.Context) (int64, error)     { return 0, nil }
func (f *fakeReporteRepo) TotalProveedores(ctx context.Context) (int64, error)   { return 0, nil }

func (f *fakeReporteRepo) ProductosConVentas(ctx context.Context, dias int) ([]repository.ProductoVentaResult, error) {
	return f.filas, nil
}

func strPtr(s string) *string { return &s }

func nuevoAsistente(filas ...repository.ProductoVentaResult) *inventario.ReplenishmentUseCase {
	return inventario.NewReplenishmentUseCase(&fakeReporteRepo{filas: filas}, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del cálculo de sugerencias
// ──────────────────────────────────────────────────────────────────────────────

// 180 unidades vendidas en 90 días → promedio 2.00/día. Con tránsito 7 el
// umbral crítico es 14+7=21; stock 30 cubre 15 días → se sugiere
// ceil(2.00 × (30+7) × 1.20) − 30 = 89 − 30 = 59.
func TestSugerencias_ProductoConVentas(t *testing.T) {
	uc := nuevoAsistente(repository.ProductoVentaResult{
		ProductoID:      "p1",
		Nombre:          "Alimento Premium",
		Stock:           30,
		DiasTransito:    7,
		FactorSeguridad: decimal.NewFromFloat(1.20),
		ProveedorNombre: strPtr("Distribuidora Sur"),
		TotalVendido:    180,
	})

	out, err := uc.Sugerencias(context.Background(), inventario.ParametrosSugerencia{})
	require.NoError(t, err)
	require.Len(t, out, 1)

	s := out[0]
	assert.Equal(t, "p1", s.IDProducto)
	assert.Equal(t, 2.00, s.PromedioVentaDiaria)
	assert.Equal(t, 15.00, s.DiasStockRestantes)
	assert.Equal(t, 21, s.UmbralCritico)
	assert.Equal(t, int64(59), s.CantidadSugerida)
	assert.Equal(t, "Distribuidora Sur", s.ProveedorSugerido)
	assert.Contains(t, s.Motivo, "Stock bajo")
}

// Sin ventas en la ventana, stock agotado y mínimo sugerido 10 → pedir 10.
func TestSugerencias_SinVentasStockAgotado(t *testing.T) {
	uc := nuevoAsistente(repository.ProductoVentaResult{
		ProductoID:          "p2",
		Nombre:              "Correa Mediana",
		Stock:               0,
		StockMinimoSugerido: 10,
		TotalVendido:        0,
	})

	out, err := uc.Sugerencias(context.Background(), inventario.ParametrosSugerencia{})
	require.NoError(t, err)
	require.Len(t, out, 1)

	s := out[0]
	assert.Equal(t, int64(10), s.CantidadSugerida)
	assert.Equal(t, 0.0, s.PromedioVentaDiaria)
	assert.Equal(t, "Sin Proveedor", s.ProveedorSugerido)
	assert.Contains(t, s.Motivo, "Stock agotado")
}

// Stock holgado frente al consumo → no se sugiere nada.
func TestSugerencias_StockSuficienteNoSugiere(t *testing.T) {
	uc := nuevoAsistente(repository.ProductoVentaResult{
		ProductoID:   "p3",
		Nombre:       "Shampoo Canino",
		Stock:        500,
		DiasTransito: 7,
		TotalVendido: 90, // 1/día, 500 días de cobertura
	})

	out, err := uc.Sugerencias(context.Background(), inventario.ParametrosSugerencia{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

// Sin ventas y sin mínimo sugerido no hay señal para pedir, aunque el stock
// esté en cero.
func TestSugerencias_SinVentasSinMinimoNoSugiere(t *testing.T) {
	uc := nuevoAsistente(repository.ProductoVentaResult{
		ProductoID:   "p4",
		Nombre:       "Juguete Descontinuado",
		Stock:        0,
		TotalVendido: 0,
	})

	out, err := uc.Sugerencias(context.Background(), inventario.ParametrosSugerencia{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

// Cantidad calculada ≤ 0 se omite del resultado.
func TestSugerencias_CantidadCeroSeOmite(t *testing.T) {
	// promedio 1/día, necesaria = ceil(1 × 37 × 1.20) = 45; stock 45 → cantidad 0.
	// Días restantes 45 > umbral 21, así que además no está marcado; forzamos el
	// caso límite con un umbral alto.
	uc := nuevoAsistente(repository.ProductoVentaResult{
		ProductoID:      "p5",
		Nombre:          "Arena Sanitaria",
		Stock:           45,
		DiasTransito:    7,
		FactorSeguridad: decimal.NewFromFloat(1.20),
		TotalVendido:    90,
	})

	out, err := uc.Sugerencias(context.Background(), inventario.ParametrosSugerencia{
		UmbralDiasStockMinimo: 50, // 45 días restantes ≤ 50+7: marcado
	})
	require.NoError(t, err)
	assert.Empty(t, out, "cantidad sugerida cero no debe aparecer en la salida")
}

// Producto sin tránsito ni factor configurados usa los valores por defecto.
func TestSugerencias_DefaultsDeProducto(t *testing.T) {
	uc := nuevoAsistente(repository.ProductoVentaResult{
		ProductoID:   "p6",
		Nombre:       "Antipulgas",
		Stock:        10,
		TotalVendido: 90, // 1/día, 10 días restantes
	})

	out, err := uc.Sugerencias(context.Background(), inventario.ParametrosSugerencia{})
	require.NoError(t, err)
	require.Len(t, out, 1)

	// tránsito por defecto 7 → umbral 21; cantidad = ceil(1 × 37 × 1.20) − 10 = 35
	assert.Equal(t, 21, out[0].UmbralCritico)
	assert.Equal(t, int64(35), out[0].CantidadSugerida)
}
