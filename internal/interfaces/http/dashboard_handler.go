package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Terrenos-api/internal/application/analytics"
	"github.com/jhoicas/Terrenos-api/internal/application/dto"
	"github.com/jhoicas/Terrenos-api/internal/domain"
)

// DashboardHandler expone el reporte de conciliación financiera (protegido).
type DashboardHandler struct {
	uc *analytics.FinanceReportUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.FinanceReportUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Finance godoc
// @Summary      Reporte financiero del período
// @Description  Totales de ingresos y recaudo por categorías disyuntas, cartera vencida y desgloses por vendedor y ubicación.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD (default: primer día del mes)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (default: hoy)"
// @Success      200  {object}  dto.FinanceReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/finance [get]
func (h *DashboardHandler) Finance(c *fiber.Ctx) error {
	var req dto.FinanceReportRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.FinanceReport(c.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
