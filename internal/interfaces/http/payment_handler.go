package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Terrenos-api/internal/application/dto"
	"github.com/jhoicas/Terrenos-api/internal/application/payments"
	"github.com/jhoicas/Terrenos-api/internal/domain"
)

// PaymentHandler registra abonos contra cuotas (protegido).
type PaymentHandler struct {
	uc *payments.RecordPaymentUseCase
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *payments.RecordPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar abono contra una cuota
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordPaymentRequest  true  "installment_id y amount"
// @Success      200   {object}  dto.RecordPaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payments [post]
func (h *PaymentHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.RecordPayment(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cuota no encontrada"})
		case errors.Is(err, domain.ErrInstallmentPaid):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_PAID", Message: "la cuota ya está pagada"})
		case errors.Is(err, domain.ErrOverpayment):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "OVERPAYMENT", Message: "el abono excede el saldo de la cuota"})
		case errors.Is(err, domain.ErrVersionConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "VERSION_CONFLICT", Message: "la cuota fue modificada por otra operación; reintente"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "installment_id y amount positivo son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
