package compras

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

// UseCase casos de uso de órdenes de compra. El stock solo se mueve en las
// transiciones hacia/desde "recibida"; la creación de órdenes nunca lo toca.
type UseCase struct {
	ordenRepo     repository.OrdenCompraRepository
	proveedorRepo repository.ProveedorRepository
	productoRepo  repository.ProductoRepository
	tx            TxRunner
	notificador   Notificador
	pdf           PDFGenerator
	log           *logger.Logger
	umbralDias    int // horizonte de alerta de vencimiento en recepciones
}

// NewUseCase construye el caso de uso de compras.
func NewUseCase(
	ordenRepo repository.OrdenCompraRepository,
	proveedorRepo repository.ProveedorRepository,
	productoRepo repository.ProductoRepository,
	tx TxRunner,
	notificador Notificador,
	pdf PDFGenerator,
	log *logger.Logger,
	umbralDias int,
) *UseCase {
	if umbralDias <= 0 {
		umbralDias = 30
	}
	return &UseCase{
		ordenRepo:     ordenRepo,
		proveedorRepo: proveedorRepo,
		productoRepo:  productoRepo,
		tx:            tx,
		notificador:   notificador,
		pdf:           pdf,
		log:           log,
		umbralDias:    umbralDias,
	}
}

// Create registra una orden manual: orden + líneas atómicamente, sin tocar
// stock (eso ocurre recién en la recepción).
func (uc *UseCase) Create(ctx context.Context, in dto.CreateOrdenCompraRequest) (*dto.OrdenCompraResponse, error) {
	if len(in.Detalles) == 0 {
		return nil, domain.ErrInvalidInput
	}
	proveedor, err := uc.proveedorRepo.GetByID(in.ProveedorID)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, domain.ErrNotFound
	}
	fecha, err := parseFecha(in.Fecha)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	estado := in.Estado
	if estado == "" {
		estado = entity.EstadoPendiente
	}

	now := time.Now()
	orden := &entity.OrdenCompra{
		ID:          uuid.New().String(),
		ProveedorID: in.ProveedorID,
		Fecha:       fecha,
		Estado:      estado,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	total := decimal.Zero
	for _, d := range in.Detalles {
		if d.Cantidad <= 0 || d.Precio.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		detalle := entity.DetalleOrdenCompra{
			ID:            uuid.New().String(),
			OrdenCompraID: orden.ID,
			ProductoID:    d.ProductoID,
			Cantidad:      d.Cantidad,
			Precio:        d.Precio,
		}
		orden.Detalles = append(orden.Detalles, detalle)
		total = total.Add(detalle.Subtotal())
	}
	orden.Total = total

	err = uc.tx.RunOrden(ctx, func(ordenRepo repository.OrdenCompraRepository, _ repository.ProductoRepository) error {
		return ordenRepo.Create(orden)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("orden_id", orden.ID).Str("proveedor_id", orden.ProveedorID).Msg("orden de compra creada")
	return uc.toResponse(orden), nil
}

// GenerarDesdeSugerencias agrupa los productos seleccionados por proveedor y
// crea una orden pendiente por cada grupo, todas en una sola transacción. Los
// productos sin proveedor se omiten con un warning. El precio unitario sale
// del precio actual del producto.
func (uc *UseCase) GenerarDesdeSugerencias(ctx context.Context, in dto.GenerarOrdenesRequest) (*dto.GenerarOrdenesResponse, error) {
	if len(in.ProductosSeleccionados) == 0 {
		return nil, domain.ErrInvalidInput
	}

	var ordenes []*entity.OrdenCompra
	err := uc.tx.RunOrden(ctx, func(ordenRepo repository.OrdenCompraRepository, productoRepo repository.ProductoRepository) error {
		// proveedor_id -> orden en construcción
		grupos := map[string]*entity.OrdenCompra{}
		var ordenProveedores []string
		now := time.Now()

		for _, sel := range in.ProductosSeleccionados {
			if sel.CantidadAPedir <= 0 {
				return domain.ErrInvalidInput
			}
			producto, err := productoRepo.GetByID(sel.ID)
			if err != nil {
				return err
			}
			if producto == nil {
				return domain.ErrNotFound
			}
			if producto.ProveedorID == nil {
				uc.log.Warn().Str("producto", producto.Nombre).Msg("producto sin proveedor omitido de la orden generada")
				continue
			}
			orden, ok := grupos[*producto.ProveedorID]
			if !ok {
				orden = &entity.OrdenCompra{
					ID:          uuid.New().String(),
					ProveedorID: *producto.ProveedorID,
					Fecha:       now,
					Estado:      entity.EstadoPendiente,
					CreatedAt:   now,
					UpdatedAt:   now,
				}
				grupos[*producto.ProveedorID] = orden
				ordenProveedores = append(ordenProveedores, *producto.ProveedorID)
			}
			detalle := entity.DetalleOrdenCompra{
				ID:            uuid.New().String(),
				OrdenCompraID: orden.ID,
				ProductoID:    producto.ID,
				Cantidad:      sel.CantidadAPedir,
				Precio:        producto.Precio,
			}
			orden.Detalles = append(orden.Detalles, detalle)
			orden.Total = orden.Total.Add(detalle.Subtotal())
		}

		if len(ordenProveedores) == 0 {
			return domain.ErrInvalidInput
		}
		for _, provID := range ordenProveedores {
			if err := ordenRepo.Create(grupos[provID]); err != nil {
				return err
			}
			ordenes = append(ordenes, grupos[provID])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.GenerarOrdenesResponse{Message: "Órdenes de compra generadas exitosamente desde sugerencias."}
	for _, o := range ordenes {
		resp.Ordenes = append(resp.Ordenes, *uc.toResponse(o))
	}
	uc.log.Info().Int("ordenes", len(ordenes)).Msg("órdenes generadas desde sugerencias")
	return resp, nil
}

// Update actualiza cabecera y concilia líneas. Efectos de la transición de
// estado sobre las líneas EXISTENTES (antes de conciliar):
//   - recibida -> otro: revierte stock, con chequeo de stock bajo.
//   - otro -> recibida: suma stock, sin chequeo de stock bajo.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateOrdenCompraRequest) (*dto.OrdenCompraResponse, error) {
	var resultado *entity.OrdenCompra
	var revertidos, recibidos []*entity.Producto

	err := uc.tx.RunOrden(ctx, func(ordenRepo repository.OrdenCompraRepository, productoRepo repository.ProductoRepository) error {
		orden, err := ordenRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if orden == nil {
			return domain.ErrNotFound
		}

		estadoNuevo := orden.Estado
		if in.Estado != nil {
			estadoNuevo = *in.Estado
		}
		eraRecibida := orden.Recibida()
		seraRecibida := entity.EsEstadoRecibida(estadoNuevo)

		switch {
		case eraRecibida && !seraRecibida:
			for _, d := range orden.Detalles {
				if _, err := productoRepo.GetForUpdate(d.ProductoID); err != nil {
					return err
				}
				p, err := productoRepo.AjustarStock(d.ProductoID, -d.Cantidad)
				if err != nil {
					return err
				}
				revertidos = append(revertidos, p)
			}
		case !eraRecibida && seraRecibida:
			for _, d := range orden.Detalles {
				if _, err := productoRepo.GetForUpdate(d.ProductoID); err != nil {
					return err
				}
				p, err := productoRepo.AjustarStock(d.ProductoID, d.Cantidad)
				if err != nil {
					return err
				}
				recibidos = append(recibidos, p)
			}
		}

		if in.Detalles != nil {
			if err := uc.conciliarDetalles(ordenRepo, orden, in.Detalles); err != nil {
				return err
			}
		}

		if in.ProveedorID != nil {
			orden.ProveedorID = *in.ProveedorID
		}
		if in.Fecha != nil {
			fecha, err := parseFecha(in.Fecha)
			if err != nil {
				return domain.ErrInvalidInput
			}
			orden.Fecha = fecha
		}
		orden.Estado = estadoNuevo
		orden.Total = totalDe(orden.Detalles)
		if err := ordenRepo.UpdateCabecera(orden); err != nil {
			return err
		}
		resultado = orden
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, p := range revertidos {
		uc.notificador.StockActualizado(p)
	}
	for _, p := range recibidos {
		uc.notificador.InventarioActualizado(p)
	}
	uc.log.Info().Str("orden_id", id).Str("estado", resultado.Estado).Msg("orden de compra actualizada")
	return uc.toResponse(resultado), nil
}

// conciliarDetalles sincroniza las líneas de la orden contra las entrantes:
// sin id = insertar, id existente = actualizar, existente ausente = borrar.
func (uc *UseCase) conciliarDetalles(ordenRepo repository.OrdenCompraRepository, orden *entity.OrdenCompra, entrantes []dto.DetalleOrdenRequest) error {
	existentes := map[string]entity.DetalleOrdenCompra{}
	for _, d := range orden.Detalles {
		existentes[d.ID] = d
	}

	vistos := map[string]bool{}
	var finales []entity.DetalleOrdenCompra
	for _, in := range entrantes {
		if in.Cantidad <= 0 || in.Precio.IsNegative() {
			return domain.ErrInvalidInput
		}
		if in.ID != nil {
			actual, ok := existentes[*in.ID]
			if !ok {
				return domain.ErrNotFound
			}
			vistos[*in.ID] = true
			if actual.ProductoID != in.ProductoID || actual.Cantidad != in.Cantidad || !actual.Precio.Equal(in.Precio) {
				actual.ProductoID = in.ProductoID
				actual.Cantidad = in.Cantidad
				actual.Precio = in.Precio
				if err := ordenRepo.UpdateDetalle(actual); err != nil {
					return err
				}
			}
			finales = append(finales, actual)
			continue
		}
		nuevo := entity.DetalleOrdenCompra{
			ID:            uuid.New().String(),
			OrdenCompraID: orden.ID,
			ProductoID:    in.ProductoID,
			Cantidad:      in.Cantidad,
			Precio:        in.Precio,
		}
		if err := ordenRepo.InsertDetalle(nuevo); err != nil {
			return err
		}
		finales = append(finales, nuevo)
	}

	for id := range existentes {
		if !vistos[id] {
			if err := ordenRepo.DeleteDetalle(id); err != nil {
				return err
			}
		}
	}
	orden.Detalles = finales
	return nil
}

// ConfirmarRecepcion marca la orden como recibida sumando stock por cada
// línea. Rechaza con ErrAlreadyReceived si ya estaba recibida: la recepción
// se aplica exactamente una vez.
func (uc *UseCase) ConfirmarRecepcion(ctx context.Context, id string) (*dto.OrdenCompraResponse, error) {
	var resultado *entity.OrdenCompra
	var afectados []*entity.Producto

	err := uc.tx.RunOrden(ctx, func(ordenRepo repository.OrdenCompraRepository, productoRepo repository.ProductoRepository) error {
		orden, err := ordenRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if orden == nil {
			return domain.ErrNotFound
		}
		if orden.Recibida() {
			return domain.ErrAlreadyReceived
		}
		for _, d := range orden.Detalles {
			if _, err := productoRepo.GetForUpdate(d.ProductoID); err != nil {
				return err
			}
			p, err := productoRepo.AjustarStock(d.ProductoID, d.Cantidad)
			if err != nil {
				return err
			}
			afectados = append(afectados, p)
		}
		if err := ordenRepo.UpdateEstado(id, entity.EstadoRecibida); err != nil {
			return err
		}
		orden.Estado = entity.EstadoRecibida
		resultado = orden
		return nil
	})
	if err != nil {
		return nil, err
	}

	horizonte := time.Now().AddDate(0, 0, uc.umbralDias)
	for _, p := range afectados {
		uc.notificador.StockActualizado(p)
		if p.FechaVencimiento != nil && !p.FechaVencimiento.After(horizonte) && !p.FechaVencimiento.Before(hoy()) {
			uc.notificador.AlertaVencimiento(p)
		}
	}
	uc.log.Info().Str("orden_id", id).Msg("recepción de orden confirmada, stock incrementado")
	return uc.toResponse(resultado), nil
}

// Delete elimina la orden y sus líneas. No revierte stock, ni siquiera en
// órdenes recibidas.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	orden, err := uc.ordenRepo.GetByID(id)
	if err != nil {
		return err
	}
	if orden == nil {
		return domain.ErrNotFound
	}
	if err := uc.ordenRepo.Delete(id); err != nil {
		return err
	}
	uc.log.Info().Str("orden_id", id).Msg("orden de compra eliminada")
	return nil
}

// GetByID obtiene una orden con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.OrdenCompraResponse, error) {
	orden, err := uc.ordenRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, nil
	}
	return uc.toResponse(orden), nil
}

// List lista todas las órdenes.
func (uc *UseCase) List(ctx context.Context) ([]dto.OrdenCompraResponse, error) {
	list, err := uc.ordenRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrdenCompraResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *uc.toResponse(o))
	}
	return out, nil
}

// PDF genera el documento imprimible de la orden.
func (uc *UseCase) PDF(ctx context.Context, id string) ([]byte, error) {
	orden, err := uc.ordenRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if orden == nil {
		return nil, domain.ErrNotFound
	}
	proveedor, err := uc.proveedorRepo.GetByID(orden.ProveedorID)
	if err != nil {
		return nil, err
	}
	nombres := map[string]string{}
	for _, d := range orden.Detalles {
		if _, ok := nombres[d.ProductoID]; ok {
			continue
		}
		p, err := uc.productoRepo.GetByID(d.ProductoID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			nombres[d.ProductoID] = p.Nombre
		}
	}
	return uc.pdf.OrdenCompraPDF(orden, proveedor, nombres)
}

func totalDe(detalles []entity.DetalleOrdenCompra) decimal.Decimal {
	total := decimal.Zero
	for _, d := range detalles {
		total = total.Add(d.Subtotal())
	}
	return total
}

func hoy() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
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

func (uc *UseCase) toResponse(o *entity.OrdenCompra) *dto.OrdenCompraResponse {
	if o == nil {
		return nil
	}
	detalles := make([]dto.DetalleOrdenResponse, 0, len(o.Detalles))
	for _, d := range o.Detalles {
		detalles = append(detalles, dto.DetalleOrdenResponse{
			ID:         d.ID,
			ProductoID: d.ProductoID,
			Cantidad:   d.Cantidad,
			Precio:     d.Precio,
			Subtotal:   d.Subtotal(),
		})
	}
	return &dto.OrdenCompraResponse{
		ID:          o.ID,
		ProveedorID: o.ProveedorID,
		Fecha:       o.Fecha,
		Estado:      o.Estado,
		Total:       o.Total,
		Detalles:    detalles,
		CreatedAt:   o.CreatedAt,
	}
}
