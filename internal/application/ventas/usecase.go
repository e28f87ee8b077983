package ventas

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/danilalessandra/Petstock-Backend/internal/application/dto"
	"github.com/danilalessandra/Petstock-Backend/internal/domain"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/entity"
	"github.com/danilalessandra/Petstock-Backend/internal/domain/repository"
	"github.com/danilalessandra/Petstock-Backend/pkg/logger"
)

// UseCase casos de uso de ventas. Toda mutación de stock ocurre dentro de una
// transacción con la fila del producto bloqueada; las alertas se encolan
// después del commit.
type UseCase struct {
	ventaRepo   repository.VentaRepository
	tx          TxRunner
	notificador Notificador
	log         *logger.Logger
}

// NewUseCase construye el caso de uso de ventas.
func NewUseCase(ventaRepo repository.VentaRepository, tx TxRunner, notificador Notificador, log *logger.Logger) *UseCase {
	return &UseCase{ventaRepo: ventaRepo, tx: tx, notificador: notificador, log: log}
}

// Create registra una venta: valida cada línea, descuenta stock con la fila
// bloqueada y crea venta + detalles como unidad atómica. Devuelve
// ErrInsufficientStock si alguna línea excede el stock disponible.
func (uc *UseCase) Create(ctx context.Context, usuarioID string, in dto.CreateVentaRequest) (*dto.VentaResponse, error) {
	if len(in.Detalles) == 0 {
		return nil, domain.ErrInvalidInput
	}
	fecha, err := parseFecha(in.Fecha)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	venta := &entity.Venta{
		ID:        uuid.New().String(),
		Fecha:     fecha,
		UsuarioID: usuarioID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var afectados []*entity.Producto
	err = uc.tx.RunVenta(ctx, func(ventaRepo repository.VentaRepository, productoRepo repository.ProductoRepository) error {
		total := decimal.Zero
		for _, d := range in.Detalles {
			if d.Cantidad <= 0 || d.PrecioUnitario.IsNegative() {
				return domain.ErrInvalidInput
			}
			producto, err := productoRepo.GetForUpdate(d.ProductoID)
			if err != nil {
				return err
			}
			if producto == nil {
				return domain.ErrNotFound
			}
			if producto.Stock < d.Cantidad {
				return domain.ErrInsufficientStock
			}
			detalle := entity.DetalleVenta{
				ID:             uuid.New().String(),
				VentaID:        venta.ID,
				ProductoID:     d.ProductoID,
				Cantidad:       d.Cantidad,
				PrecioUnitario: d.PrecioUnitario,
			}
			venta.Detalles = append(venta.Detalles, detalle)
			total = total.Add(detalle.Subtotal())
		}
		venta.Total = total
		if err := ventaRepo.Create(venta); err != nil {
			return err
		}
		for _, d := range venta.Detalles {
			actualizado, err := productoRepo.AjustarStock(d.ProductoID, -d.Cantidad)
			if err != nil {
				return err
			}
			afectados = append(afectados, actualizado)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, p := range afectados {
		uc.notificador.StockActualizado(p)
	}
	uc.log.Info().Str("venta_id", venta.ID).Str("total", venta.Total.String()).Msg("venta registrada")
	return toVentaResponse(venta), nil
}

// Update reemplaza las líneas de una venta: primero revierte el stock de las
// líneas existentes, luego valida y aplica las nuevas, todo en una transacción.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateVentaRequest) (*dto.VentaResponse, error) {
	if len(in.Detalles) == 0 {
		return nil, domain.ErrInvalidInput
	}

	var resultado *entity.Venta
	var afectados []*entity.Producto
	err := uc.tx.RunVenta(ctx, func(ventaRepo repository.VentaRepository, productoRepo repository.ProductoRepository) error {
		venta, err := ventaRepo.GetByID(id)
		if err != nil {
			return err
		}
		if venta == nil {
			return domain.ErrNotFound
		}

		// Revertir las líneas existentes antes de validar las nuevas
		finales := map[string]*entity.Producto{}
		var orden []string
		for _, d := range venta.Detalles {
			if _, err := productoRepo.GetForUpdate(d.ProductoID); err != nil {
				return err
			}
			p, err := productoRepo.AjustarStock(d.ProductoID, d.Cantidad)
			if err != nil {
				return err
			}
			if _, visto := finales[d.ProductoID]; !visto {
				orden = append(orden, d.ProductoID)
			}
			finales[d.ProductoID] = p
		}

		total := decimal.Zero
		var nuevos []entity.DetalleVenta
		for _, d := range in.Detalles {
			if d.Cantidad <= 0 || d.PrecioUnitario.IsNegative() {
				return domain.ErrInvalidInput
			}
			producto, err := productoRepo.GetForUpdate(d.ProductoID)
			if err != nil {
				return err
			}
			if producto == nil {
				return domain.ErrNotFound
			}
			if producto.Stock < d.Cantidad {
				return domain.ErrInsufficientStock
			}
			detalle := entity.DetalleVenta{
				ID:             uuid.New().String(),
				VentaID:        venta.ID,
				ProductoID:     d.ProductoID,
				Cantidad:       d.Cantidad,
				PrecioUnitario: d.PrecioUnitario,
			}
			nuevos = append(nuevos, detalle)
			total = total.Add(detalle.Subtotal())
		}

		if in.Fecha != nil {
			fecha, err := parseFecha(in.Fecha)
			if err != nil {
				return domain.ErrInvalidInput
			}
			venta.Fecha = fecha
		}
		venta.Detalles = nuevos
		venta.Total = total
		if err := ventaRepo.ReplaceDetalles(venta); err != nil {
			return err
		}
		for _, d := range nuevos {
			p, err := productoRepo.AjustarStock(d.ProductoID, -d.Cantidad)
			if err != nil {
				return err
			}
			if _, visto := finales[d.ProductoID]; !visto {
				orden = append(orden, d.ProductoID)
			}
			finales[d.ProductoID] = p
		}
		for _, id := range orden {
			afectados = append(afectados, finales[id])
		}
		resultado = venta
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, p := range afectados {
		uc.notificador.StockActualizado(p)
	}
	uc.log.Info().Str("venta_id", id).Msg("venta actualizada")
	return toVentaResponse(resultado), nil
}

// Delete elimina una venta devolviendo el stock de cada línea (inverso exacto
// de Create sobre el stock).
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	var afectados []*entity.Producto
	err := uc.tx.RunVenta(ctx, func(ventaRepo repository.VentaRepository, productoRepo repository.ProductoRepository) error {
		venta, err := ventaRepo.GetByID(id)
		if err != nil {
			return err
		}
		if venta == nil {
			return domain.ErrNotFound
		}
		for _, d := range venta.Detalles {
			if _, err := productoRepo.GetForUpdate(d.ProductoID); err != nil {
				return err
			}
			p, err := productoRepo.AjustarStock(d.ProductoID, d.Cantidad)
			if err != nil {
				return err
			}
			afectados = append(afectados, p)
		}
		return ventaRepo.Delete(id)
	})
	if err != nil {
		return err
	}

	for _, p := range afectados {
		uc.notificador.StockActualizado(p)
	}
	uc.log.Info().Str("venta_id", id).Msg("venta eliminada, stock revertido")
	return nil
}

// GetByID obtiene una venta con sus detalles.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.VentaResponse, error) {
	venta, err := uc.ventaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if venta == nil {
		return nil, nil
	}
	return toVentaResponse(venta), nil
}

// List devuelve una página de ventas con los metadatos que espera el frontend.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) (*dto.VentaListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.ventaRepo.List(page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	data := make([]dto.VentaResponse, 0, len(list))
	for _, v := range list {
		data = append(data, *toVentaResponse(v))
	}
	pages := total / int64(page.Limit)
	if total%int64(page.Limit) != 0 {
		pages++
	}
	return &dto.VentaListResponse{
		Total:       total,
		Pages:       pages,
		CurrentPage: page.Page,
		Data:        data,
	}, nil
}

func parseFecha(s *string) (time.Time, error) {
	if s == nil || *s == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, *s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", *s)
}

func toVentaResponse(v *entity.Venta) *dto.VentaResponse {
	if v == nil {
		return nil
	}
	detalles := make([]dto.DetalleVentaResponse, 0, len(v.Detalles))
	for _, d := range v.Detalles {
		detalles = append(detalles, dto.DetalleVentaResponse{
			ID:             d.ID,
			ProductoID:     d.ProductoID,
			Cantidad:       d.Cantidad,
			PrecioUnitario: d.PrecioUnitario,
			Subtotal:       d.Subtotal(),
		})
	}
	return &dto.VentaResponse{
		ID:        v.ID,
		Fecha:     v.Fecha,
		UsuarioID: v.UsuarioID,
		Total:     v.Total,
		Detalles:  detalles,
		CreatedAt: v.CreatedAt,
	}
}
