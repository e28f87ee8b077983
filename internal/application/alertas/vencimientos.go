package alertas

import (
	"context"
	"time"

	"github.com/danilalessandra/Petstock-Backend/internal/domain/repository"
	"github.com/danilalessandra/Petstock-Backend/pkg/logger"
)

// VencimientosUseCase barrido de productos por vencer: emite una alerta por
// cada producto cuya fecha de vencimiento cae dentro del horizonte.
type VencimientosUseCase struct {
	productoRepo repository.ProductoRepository
	notifier     *Notifier
	log          *logger.Logger
	umbralDias   int
}

// NewVencimientosUseCase construye el caso de uso del barrido.
func NewVencimientosUseCase(productoRepo repository.ProductoRepository, notifier *Notifier, log *logger.Logger, umbralDias int) *VencimientosUseCase {
	if umbralDias <= 0 {
		umbralDias = 30
	}
	return &VencimientosUseCase{
		productoRepo: productoRepo,
		notifier:     notifier,
		log:          log,
		umbralDias:   umbralDias,
	}
}

// Chequear busca productos que vencen entre hoy y hoy+umbral y encola una
// alerta por cada uno. Devuelve cuántos encontró.
func (uc *VencimientosUseCase) Chequear(ctx context.Context) (int, error) {
	hasta := time.Now().AddDate(0, 0, uc.umbralDias)
	productos, err := uc.productoRepo.ListPorVencer(hasta)
	if err != nil {
		return 0, err
	}
	for _, p := range productos {
		uc.notifier.AlertaVencimiento(p)
	}
	if len(productos) > 0 {
		uc.log.Info().Int("productos", len(productos)).Msg("productos por vencer detectados")
	} else {
		uc.log.Debug().Msg("sin productos por vencer en el horizonte")
	}
	return len(productos), nil
}

// ProgramarDiario ejecuta Chequear todos los días a la hora local indicada
// hasta que el contexto se cancele. Bloquea; lanzar en una goroutine.
func (uc *VencimientosUseCase) ProgramarDiario(ctx context.Context, hora int) {
	uc.log.Info().Int("hora", hora).Msg("barrido diario de vencimientos programado")
	for {
		espera := hastaProximaHora(time.Now(), hora)
		timer := time.NewTimer(espera)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			uc.log.Info().Msg("ejecutando barrido diario de vencimientos")
			if _, err := uc.Chequear(ctx); err != nil {
				uc.log.Error().Err(err).Msg("barrido de vencimientos falló")
			}
		}
	}
}

// hastaProximaHora calcula la espera hasta la próxima ocurrencia de la hora
// local dada (si ya pasó hoy, mañana).
func hastaProximaHora(ahora time.Time, hora int) time.Duration {
	proxima := time.Date(ahora.Year(), ahora.Month(), ahora.Day(), hora, 0, 0, 0, ahora.Location())
	if !proxima.After(ahora) {
		proxima = proxima.AddDate(0, 0, 1)
	}
	return proxima.Sub(ahora)
}
