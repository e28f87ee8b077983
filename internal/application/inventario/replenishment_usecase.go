package inventario

import (
	"context"
	"fmt"
	"math"

	"github.com/danilalessandra/Petstock-Backend/internal/application/dto"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/entity"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/repository"
	"github.com/danilalessandra/Petstock-Backend/pkg/logger"
)

// ParametrosSugerencia parámetros del análisis de reabastecimiento, todos con
// valor por defecto.
type ParametrosSugerencia struct {
	DiasPeriodoAnalisis   int // ventana de análisis de ventas
	UmbralDiasStockMinimo int // días de cobertura bajo los cuales el stock es crítico
	DiasCoberturaDeseados int // días de demanda que debe cubrir el pedido
}

// Normalizar aplica los valores por defecto a los parámetros en cero.
func (p *ParametrosSugerencia) Normalizar() {
	if p.DiasPeriodoAnalisis <= 0 {
		p.DiasPeriodoAnalisis = 90
	}
	if p.UmbralDiasStockMinimo <= 0 {
		p.UmbralDiasStockMinimo = 14
	}
	if p.DiasCoberturaDeseados <= 0 {
		p.DiasCoberturaDeseados = 30
	}
}

// ReplenishmentUseCase asistente de reabastecimiento: calcula, por producto,
// el promedio de venta diaria en la ventana y deriva una cantidad sugerida a
// pedir. Lectura pura, sin efectos secundarios, reejecutable.
type ReplenishmentUseCase struct {
	reporteRepo repository.ReporteRepository
	log         *logger.Logger
}

// NewReplenishmentUseCase construye el asistente.
func NewReplenishmentUseCase(reporteRepo repository.ReporteRepository, log *logger.Logger) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{reporteRepo: reporteRepo, log: log}
}

// Sugerencias devuelve las sugerencias de reposición, ordenadas por nombre de
// producto. Por producto:
//
//	promedio = total vendido en la ventana / días de la ventana
//	días restantes = stock / promedio (0 si no hay ventas)
//	umbral crítico = umbral de días mínimos + días de tránsito del proveedor
//
// Se sugiere pedir si los días restantes caen en o bajo el umbral (con
// ventas), o si el stock está agotado y existe un mínimo sugerido (sin
// ventas). La cantidad cubre los días de cobertura deseados más el tránsito,
// inflada por el factor de seguridad.
func (uc *ReplenishmentUseCase) Sugerencias(ctx context.Context, params ParametrosSugerencia) ([]dto.SugerenciaReposicionDTO, error) {
	params.Normalizar()

	filas, err := uc.reporteRepo.ProductosConVentas(ctx, params.DiasPeriodoAnalisis)
	if err != nil {
		return nil, err
	}

	sugerencias := make([]dto.SugerenciaReposicionDTO, 0)
	for _, fila := range filas {
		promedio := float64(fila.TotalVendido) / float64(params.DiasPeriodoAnalisis)

		diasTransito := fila.DiasTransito
		if diasTransito <= 0 {
			diasTransito = entity.DiasTransitoPorDefecto
		}
		factor, _ := fila.FactorSeguridad.Float64()
		if factor <= 0 {
			factor, _ = entity.FactorSeguridadPorDefecto.Float64()
		}

		diasRestantes := 0.0
		if promedio > 0 {
			diasRestantes = float64(fila.Stock) / promedio
		}
		umbralCritico := params.UmbralDiasStockMinimo + diasTransito

		conVentas := diasRestantes <= float64(umbralCritico) && promedio > 0
		sinVentas := fila.Stock <= 0 && fila.StockMinimoSugerido > 0 && promedio == 0
		if !conVentas && !sinVentas {
			continue
		}

		var cantidad int64
		var motivo string
		if promedio > 0 {
			necesaria := int64(math.Ceil(promedio * float64(params.DiasCoberturaDeseados+diasTransito) * factor))
			cantidad = necesaria - fila.Stock
			motivo = fmt.Sprintf("Stock bajo (cubre %d días) y promedio de venta de %.2f unidades/día.",
				int64(math.Round(diasRestantes)), promedio)
		} else {
			cantidad = fila.StockMinimoSugerido - fila.Stock
			motivo = fmt.Sprintf("Stock agotado y se recomienda un mínimo de %d unidades.", fila.StockMinimoSugerido)
		}
		if cantidad <= 0 {
			continue
		}

		proveedor := "Sin Proveedor"
		if fila.ProveedorNombre != nil && *fila.ProveedorNombre != "" {
			proveedor = *fila.ProveedorNombre
		}

		sugerencias = append(sugerencias, dto.SugerenciaReposicionDTO{
			IDProducto:          fila.ProductoID,
			NombreProducto:      fila.Nombre,
			StockActual:         fila.Stock,
			PromedioVentaDiaria: redondear2(promedio),
			DiasStockRestantes:  redondear2(diasRestantes),
			UmbralCritico:       umbralCritico,
			CantidadSugerida:    cantidad,
			ProveedorSugerido:   proveedor,
			Motivo:              motivo,
		})
	}

	uc.log.Debug().Int("sugerencias", len(sugerencias)).Int("dias_analisis", params.DiasPeriodoAnalisis).
		Msg("análisis de reabastecimiento completado")
	return sugerencias, nil
}

func redondear2(x float64) float64 {
	return math.Round(x*100) / 100
}
