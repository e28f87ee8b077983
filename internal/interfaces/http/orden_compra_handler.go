package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/danilalessandra/Petstock-Backend/internal/application/compras"
	"github.com/danilalessandra/Petstock-Backend/internal/application/dto"
	"github.com/danilalessandra/Petstock-Backend/internal/domain"
)

// OrdenCompraHandler maneja las peticiones HTTP para órdenes de compra (protegido).
type OrdenCompraHandler struct {
	uc *compras.UseCase
}

// NewOrdenCompraHandler construye el handler.
func NewOrdenCompraHandler(uc *compras.UseCase) *OrdenCompraHandler {
	return &OrdenCompraHandler{uc: uc}
}

// Create godoc
// @Summary      Crear orden de compra (no afecta stock)
// @Tags         ordenes-compra
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrdenCompraRequest  true  "Proveedor y líneas"
// @Success      201   {object}  dto.OrdenCompraResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ordenes-compra [post]
func (h *OrdenCompraHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrdenCompraRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProveedorID == "" || len(in.Detalles) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "proveedor_id y detalles son requeridos"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return ordenError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GenerarDesdeSugerencias godoc
// @Summary      Generar órdenes desde sugerencias de reabastecimiento (agrupa por proveedor)
// @Tags         ordenes-compra
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerarOrdenesRequest  true  "Productos seleccionados con cantidad a pedir"
// @Success      201   {object}  dto.GenerarOrdenesResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/ordenes-compra/generar-desde-sugerencias [post]
func (h *OrdenCompraHandler) GenerarDesdeSugerencias(c *fiber.Ctx) error {
	var in dto.GenerarOrdenesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.ProductosSeleccionados) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productosSeleccionados es requerido"})
	}
	out, err := h.uc.GenerarDesdeSugerencias(c.Context(), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ningún producto seleccionado tiene proveedor asignado"})
		}
		return ordenError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden de compra por ID
// @Tags         ordenes-compra
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrdenCompraResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ordenes-compra/{id} [get]
func (h *OrdenCompraHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes de compra
// @Tags         ordenes-compra
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.OrdenCompraResponse
// @Router       /api/ordenes-compra [get]
func (h *OrdenCompraHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar orden de compra (cabecera, líneas y transición de estado)
// @Tags         ordenes-compra
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateOrdenCompraRequest  true  "Cambios"
// @Success      200   {object}  dto.OrdenCompraResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ordenes-compra/{id} [put]
func (h *OrdenCompraHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrdenCompraRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return ordenError(c, err)
	}
	return c.JSON(out)
}

// ConfirmarRecepcion godoc
// @Summary      Confirmar recepción de mercadería (suma stock y marca recibida)
// @Tags         ordenes-compra
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrdenCompraResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ordenes-compra/{id}/confirmar-recepcion [post]
func (h *OrdenCompraHandler) ConfirmarRecepcion(c *fiber.Ctx) error {
	out, err := h.uc.ConfirmarRecepcion(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrAlreadyReceived {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "ALREADY_RECEIVED", Message: "la orden ya fue recibida anteriormente"})
		}
		return ordenError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Descargar la orden de compra en PDF
// @Tags         ordenes-compra
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ordenes-compra/{id}/pdf [get]
func (h *OrdenCompraHandler) PDF(c *fiber.Ctx) error {
	raw, err := h.uc.PDF(c.Context(), c.Params("id"))
	if err != nil {
		return ordenError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="orden-compra.pdf"`)
	return c.Send(raw)
}

// Delete godoc
// @Summary      Eliminar orden de compra (no revierte stock)
// @Tags         ordenes-compra
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.MensajeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ordenes-compra/{id} [delete]
func (h *OrdenCompraHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return ordenError(c, err)
	}
	return c.JSON(dto.MensajeResponse{Message: "orden eliminada"})
}

func ordenError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden, proveedor o producto no encontrado"})
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos de la orden inválidos"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
