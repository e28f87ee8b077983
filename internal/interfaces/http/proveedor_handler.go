package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/danilalessandra/Petstock-Backend/internal/application/dto"
	"github.com/danilalessandra/Petstock-Backend/internal/application/usecase"
	"github.com/danilalessandra/Petstock-Backend/internal/domain"
)

// ProveedorHandler maneja las peticiones HTTP para proveedores (protegido).
type ProveedorHandler struct {
	uc *usecase.ProveedorUseCase
}

// NewProveedorHandler construye el handler.
func NewProveedorHandler(uc *usecase.ProveedorUseCase) *ProveedorHandler {
	return &ProveedorHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         proveedores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProveedorRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.ProveedorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/proveedores [post]
func (h *ProveedorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProveedorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener proveedor por ID
// @Tags         proveedores
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.ProveedorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proveedores/{id} [get]
func (h *ProveedorHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proveedor no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar proveedores
// @Tags         proveedores
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProveedorResponse
// @Router       /api/proveedores [get]
func (h *ProveedorHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar proveedor
// @Tags         proveedores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del proveedor"
// @Param        body  body  dto.UpdateProveedorRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ProveedorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/proveedores/{id} [put]
func (h *ProveedorHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.UpdateProveedorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(id, in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proveedor no encontrado"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar proveedor
// @Tags         proveedores
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.MensajeResponse
// @Router       /api/proveedores/{id} [delete]
func (h *ProveedorHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.uc.Delete(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.MensajeResponse{Message: "proveedor eliminado"})
}
