package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/danilalessandra/Petstock-Backend/internal/application/alertas"
	"github.com/danilalessandra/Petstock-Backend/internal/application/dto"
	"github.com/danilalessandra/Petstock-Backend/internal/application/inventario"
	"github.com/danilalessandra/Petstock-Backend/internal/domain"
)

// InventarioHandler maneja movimientos de inventario, sugerencias de
// reabastecimiento y el chequeo manual de vencimientos (protegido).
type InventarioHandler struct {
	movimientos  *inventario.MovimientoUseCase
	sugerencias  *inventario.ReplenishmentUseCase
	vencimientos *alertas.VencimientosUseCase
}

// NewInventarioHandler construye el handler.
func NewInventarioHandler(
	movimientos *inventario.MovimientoUseCase,
	sugerencias *inventario.ReplenishmentUseCase,
	vencimientos *alertas.VencimientosUseCase,
) *InventarioHandler {
	return &InventarioHandler{
		movimientos:  movimientos,
		sugerencias:  sugerencias,
		vencimientos: vencimientos,
	}
}

// CreateMovimiento godoc
// @Summary      Registrar movimiento de inventario (solo bitácora, no muta stock)
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovimientoRequest  true  "producto_id, tipo, cantidad"
// @Success      201   {object}  dto.MovimientoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos [post]
func (h *InventarioHandler) CreateMovimiento(c *fiber.Ctx) error {
	var in dto.CreateMovimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.movimientos.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo debe ser entrada o salida y cantidad positiva"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovimientos godoc
// @Summary      Listar movimientos de inventario
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        producto_id  query  string  false  "Filtrar por producto"
// @Success      200  {array}  dto.MovimientoResponse
// @Router       /api/inventario/movimientos [get]
func (h *InventarioHandler) ListMovimientos(c *fiber.Ctx) error {
	productoID := c.Query("producto_id")
	var (
		out []dto.MovimientoResponse
		err error
	)
	if productoID != "" {
		out, err = h.movimientos.ListByProducto(c.Context(), productoID)
	} else {
		out, err = h.movimientos.List(c.Context())
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetMovimiento godoc
// @Summary      Obtener movimiento de inventario por ID
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovimientoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos/{id} [get]
func (h *InventarioHandler) GetMovimiento(c *fiber.Ctx) error {
	out, err := h.movimientos.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// UpdateMovimiento godoc
// @Summary      Corregir un movimiento de inventario registrado
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.UpdateMovimientoRequest  true  "Campos a corregir"
// @Success      200   {object}  dto.MovimientoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos/{id} [put]
func (h *InventarioHandler) UpdateMovimiento(c *fiber.Ctx) error {
	var in dto.UpdateMovimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.movimientos.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo debe ser entrada o salida y cantidad positiva"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// DeleteMovimiento godoc
// @Summary      Eliminar un movimiento de inventario
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MensajeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos/{id} [delete]
func (h *InventarioHandler) DeleteMovimiento(c *fiber.Ctx) error {
	if err := h.movimientos.Delete(c.Context(), c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MensajeResponse{Message: "movimiento eliminado"})
}

// Sugerencias godoc
// @Summary      Sugerencias de reabastecimiento según ventas históricas
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        dias_periodo_analisis    query  int  false  "Ventana de análisis en días"      default(90)
// @Param        umbral_dias_stock_minimo query  int  false  "Umbral de días de stock crítico"  default(14)
// @Param        dias_cobertura_deseados  query  int  false  "Cobertura deseada tras el pedido" default(30)
// @Success      200  {array}  dto.SugerenciaReposicionDTO
// @Router       /api/inventario/sugerencias-reabastecimiento [get]
func (h *InventarioHandler) Sugerencias(c *fiber.Ctx) error {
	params := inventario.ParametrosSugerencia{
		DiasPeriodoAnalisis:   c.QueryInt("dias_periodo_analisis", 0),
		UmbralDiasStockMinimo: c.QueryInt("umbral_dias_stock_minimo", 0),
		DiasCoberturaDeseados: c.QueryInt("dias_cobertura_deseados", 0),
	}
	out, err := h.sugerencias.Sugerencias(c.Context(), params)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ChequearVencimientos godoc
// @Summary      Ejecutar ahora el barrido de productos por vencer
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/inventario/chequeo-vencimientos [post]
func (h *InventarioHandler) ChequearVencimientos(c *fiber.Ctx) error {
	n, err := h.vencimientos.Chequear(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"productos_alertados": n})
}
