package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/danilalessandra/Petstock-Backend/internal/application/dto"
	"github.com/danilalessandra/Petstock-Backend/internal/application/ventas"
	"github.com/danilalessandra/Petstock-Backend/internal/domain"
)

// VentaHandler maneja las peticiones HTTP para ventas (protegido).
type VentaHandler struct {
	uc *ventas.UseCase
}

// NewVentaHandler construye el handler.
func NewVentaHandler(uc *ventas.UseCase) *VentaHandler {
	return &VentaHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta (descuenta stock de forma atómica)
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVentaRequest  true  "Líneas de la venta"
// @Success      201   {object}  dto.VentaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ventas [post]
func (h *VentaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVentaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Detalles) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la venta necesita al menos una línea"})
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return ventaError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.VentaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [get]
func (h *VentaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ventas paginadas (más recientes primero)
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"            default(1)
// @Param        limit  query  int  false  "Tamaño de página"  default(10)
// @Success      200    {object}  dto.VentaListResponse
// @Router       /api/ventas [get]
func (h *VentaHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 10),
	}
	out, err := h.uc.List(c.Context(), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Reemplazar líneas de una venta (revierte y reaplica stock)
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la venta"
// @Param        body  body  dto.UpdateVentaRequest  true  "Nuevas líneas"
// @Success      200   {object}  dto.VentaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [put]
func (h *VentaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateVentaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Detalles) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la venta necesita al menos una línea"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return ventaError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Anular venta (restituye el stock vendido)
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.MensajeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [delete]
func (h *VentaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return ventaError(c, err)
	}
	return c.JSON(dto.MensajeResponse{Message: "venta eliminada"})
}

func ventaError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta o producto no encontrado"})
	case domain.ErrInsufficientStock:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente para la venta"})
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos de la venta inválidos"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
