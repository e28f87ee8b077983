package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/danilalessandra/Petstock-Backend/internal/application/dto"
	"github.com/danilalessandra/Petstock-Backend/internal/application/reportes"
)

// ReporteHandler agregaciones de lectura para el panel (protegido).
type ReporteHandler struct {
	uc *reportes.UseCase
}

// NewReporteHandler construye el handler.
func NewReporteHandler(uc *reportes.UseCase) *ReporteHandler {
	return &ReporteHandler{uc: uc}
}

// DashboardStats godoc
// @Summary      Métricas del panel principal
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsResponse
// @Router       /api/dashboard/stats [get]
func (h *ReporteHandler) DashboardStats(c *fiber.Ctx) error {
	out, err := h.uc.DashboardStats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// VentasPorDia godoc
// @Summary      Ventas agregadas por día
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        dias  query  int  false  "Días hacia atrás"  default(30)
// @Success      200   {array}  dto.VentaPorDiaDTO
// @Router       /api/reportes/ventas-por-dia [get]
func (h *ReporteHandler) VentasPorDia(c *fiber.Ctx) error {
	out, err := h.uc.VentasPorDia(c.Context(), c.QueryInt("dias", 30))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ProductosMasVendidos godoc
// @Summary      Ranking de productos más vendidos
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        dias   query  int  false  "Días hacia atrás"  default(30)
// @Param        limit  query  int  false  "Tamaño del ranking" default(5)
// @Success      200    {array}  dto.ProductoVendidoDTO
// @Router       /api/reportes/productos-mas-vendidos [get]
func (h *ReporteHandler) ProductosMasVendidos(c *fiber.Ctx) error {
	out, err := h.uc.ProductosMasVendidos(c.Context(), c.QueryInt("dias", 30), c.QueryInt("limit", 5))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
