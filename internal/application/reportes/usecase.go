// Package reportes contiene los casos de uso de agregaciones de lectura:
// estadísticas del dashboard, ventas por período y ranking de productos.
package reportes

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/danilalessandra/Petstock-Backend/internal/application/dto"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/repository"
	"github.com/danilalessandra/Petstock-Backend/pkg/logger"
)

const (
	topProductosLimit = 5 // número de productos en el widget de más vendidos

	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 30 * time.Second
)

// Cache puerto de caché de respuestas. nil = sin caché.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration)
}

// UseCase agregaciones de lectura para el panel y los reportes.
type UseCase struct {
	repo  repository.ReporteRepository
	cache Cache
	log   *logger.Logger
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(repo repository.ReporteRepository, cache Cache, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, cache: cache, log: log}
}

// DashboardStats construye las métricas del panel principal. Las cinco
// consultas van en paralelo; el resultado se cachea unos segundos porque el
// frontend lo consulta en cada navegación.
func (uc *UseCase) DashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	if uc.cache != nil {
		if raw, ok := uc.cache.Get(ctx, statsCacheKey); ok {
			var cached dto.DashboardStatsResponse
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	now := time.Now()
	hoyInicio := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	hoyFin := hoyInicio.Add(24 * time.Hour)
	mesInicio := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type ventasResult struct {
		total decimal.Decimal
		count int64
		err   error
	}
	type countResult struct {
		n   int64
		err error
	}

	hoyCh := make(chan ventasResult, 1)
	mesCh := make(chan ventasResult, 1)
	productosCh := make(chan countResult, 1)
	proveedoresCh := make(chan countResult, 1)
	bajoStockCh := make(chan countResult, 1)

	go func() {
		total, count, err := uc.repo.VentasEnRango(ctx, hoyInicio, hoyFin)
		hoyCh <- ventasResult{total, count, err}
	}()
	go func() {
		total, count, err := uc.repo.VentasEnRango(ctx, mesInicio, hoyFin)
		mesCh <- ventasResult{total, count, err}
	}()
	go func() {
		n, err := uc.repo.TotalProductos(ctx)
		productosCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.repo.TotalProveedores(ctx)
		proveedoresCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.repo.ProductosBajoStock(ctx)
		bajoStockCh <- countResult{n, err}
	}()

	hoy := <-hoyCh
	mes := <-mesCh
	productos := <-productosCh
	proveedores := <-proveedoresCh
	bajoStock := <-bajoStockCh

	if hoy.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", hoy.err)
	}
	if mes.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", mes.err)
	}
	if productos.err != nil {
		return nil, fmt.Errorf("dashboard: total productos: %w", productos.err)
	}
	if proveedores.err != nil {
		return nil, fmt.Errorf("dashboard: total proveedores: %w", proveedores.err)
	}
	if bajoStock.err != nil {
		return nil, fmt.Errorf("dashboard: productos bajo stock: %w", bajoStock.err)
	}

	stats := &dto.DashboardStatsResponse{
		TotalProductos:     productos.n,
		TotalProveedores:   proveedores.n,
		ProductosBajoStock: bajoStock.n,
		VentasHoy:          hoy.total.Round(2),
		VentasMes:          mes.total.Round(2),
		NumeroVentasMes:    mes.count,
	}

	if uc.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			uc.cache.Set(ctx, statsCacheKey, raw, statsCacheTTL)
		}
	}
	return stats, nil
}

// VentasPorDia ventas agregadas por día calendario en los últimos `dias` días.
func (uc *UseCase) VentasPorDia(ctx context.Context, dias int) ([]dto.VentaPorDiaDTO, error) {
	if dias <= 0 {
		dias = 30
	}
	hasta := time.Now()
	desde := hasta.AddDate(0, 0, -dias)
	list, err := uc.repo.VentasPorDia(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VentaPorDiaDTO, 0, len(list))
	for _, v := range list {
		out = append(out, dto.VentaPorDiaDTO{
			Fecha: v.Fecha.Format("2006-01-02"),
			Total: v.Total.Round(2),
			Count: v.Count,
		})
	}
	return out, nil
}

// ProductosMasVendidos ranking de productos por unidades vendidas.
func (uc *UseCase) ProductosMasVendidos(ctx context.Context, dias, limit int) ([]dto.ProductoVendidoDTO, error) {
	if dias <= 0 {
		dias = 30
	}
	if limit <= 0 {
		limit = topProductosLimit
	}
	hasta := time.Now()
	desde := hasta.AddDate(0, 0, -dias)
	list, err := uc.repo.ProductosMasVendidos(ctx, desde, hasta, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoVendidoDTO, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ProductoVendidoDTO{
			ProductoID:    p.ProductoID,
			Nombre:        p.Nombre,
			TotalVendido:  p.TotalVendido,
			TotalIngresos: p.TotalIngresos.Round(2),
		})
	}
	return out, nil
}
