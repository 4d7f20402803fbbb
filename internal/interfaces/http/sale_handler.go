package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Terrenos-api/internal/application/dto"
	"github.com/jhoicas/Terrenos-api/internal/application/sales"
	"github.com/jhoicas/Terrenos-api/internal/domain"
)

// SaleHandler maneja el ciclo de vida de ventas: crear, confirmar, cancelar y
// consultar (protegido).
type SaleHandler struct {
	createUC  *sales.CreateSaleUseCase
	confirmUC *sales.ConfirmSaleUseCase
	cancelUC  *sales.CancelSaleUseCase
	getUC     *sales.GetSaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(
	createUC *sales.CreateSaleUseCase,
	confirmUC *sales.ConfirmSaleUseCase,
	cancelUC *sales.CancelSaleUseCase,
	getUC *sales.GetSaleUseCase,
) *SaleHandler {
	return &SaleHandler{createUC: createUC, confirmUC: confirmUC, cancelUC: cancelUC, getUC: getUC}
}

// Create godoc
// @Summary      Crear venta (reserva el lote)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Datos de la venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.createUC.CreateSale(c.Context(), GetUserID(c), in)
	if err != nil {
		return saleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Confirm godoc
// @Summary      Confirmar venta (materializa el plan de cuotas)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/confirm [post]
func (h *SaleHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.confirmUC.ConfirmSale(c.Context(), c.Params("id"))
	if err != nil {
		return saleError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar venta (libera el lote y elimina las cuotas)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/cancel [post]
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	if err := h.cancelUC.CancelSale(c.Context(), c.Params("id")); err != nil {
		return saleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.getUC.GetSale(c.Context(), c.Params("id"))
	if err != nil {
		return saleError(c, err)
	}
	return c.JSON(out)
}

// ListInstallments godoc
// @Summary      Listar cuotas de una venta (estado efectivo al momento de la consulta)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {array}  dto.InstallmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/installments [get]
func (h *SaleHandler) ListInstallments(c *fiber.Ctx) error {
	out, err := h.getUC.ListInstallments(c.Context(), c.Params("id"))
	if err != nil {
		return saleError(c, err)
	}
	return c.JSON(out)
}

// saleError mapea errores de dominio de ventas a códigos HTTP.
func saleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrPieceNotAvailable):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "PIECE_NOT_AVAILABLE", Message: "el lote no está disponible"})
	case errors.Is(err, domain.ErrSaleNotPending):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SALE_NOT_PENDING", Message: "la venta no está pendiente"})
	case errors.Is(err, domain.ErrSaleCancelled):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SALE_CANCELLED", Message: "la venta está cancelada"})
	case errors.Is(err, domain.ErrNoPriceSource),
		errors.Is(err, domain.ErrNonPositivePrice),
		errors.Is(err, domain.ErrInvalidOffer),
		errors.Is(err, domain.ErrDepositExceedsPrice),
		errors.Is(err, domain.ErrNegativeRemaining),
		errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
