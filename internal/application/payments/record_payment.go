package payments

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Terrenos-api/internal/application/dto"
	"github.com/jhoicas/Terrenos-api/internal/domain"
	"github.com/jhoicas/Terrenos-api/internal/domain/entity"
	"github.com/jhoicas/Terrenos-api/internal/domain/ledger"
	"github.com/jhoicas/Terrenos-api/internal/domain/repository"
)

// TxRunner ejecuta la función dentro de una transacción con el repositorio de
// cuotas atado a ella. El abono se hace con bloqueo de fila más predicado
// optimista sobre la versión.
type TxRunner interface {
	RunInstallment(ctx context.Context, fn func(instRepo repository.InstallmentRepository) error) error
}

// RecordPaymentUseCase registra abonos contra cuotas. Los abonos parciales se
// acumulan; la cuota pasa a pagada solo cuando el acumulado cubre el monto.
type RecordPaymentUseCase struct {
	txRunner TxRunner
}

// NewRecordPaymentUseCase construye el caso de uso.
func NewRecordPaymentUseCase(txRunner TxRunner) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{txRunner: txRunner}
}

// RecordPayment aplica el abono sobre la cuota. Si otra transacción modificó
// la cuota entre la lectura y la escritura devuelve domain.ErrVersionConflict.
func (uc *RecordPaymentUseCase) RecordPayment(ctx context.Context, in dto.RecordPaymentRequest) (*dto.RecordPaymentResponse, error) {
	if in.InstallmentID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	paidAt := time.Now()
	if in.PaidAt != nil {
		paidAt = *in.PaidAt
	}

	var updated *entity.InstallmentPayment
	err := uc.txRunner.RunInstallment(ctx, func(instRepo repository.InstallmentRepository) error {
		row, err := instRepo.GetForUpdate(in.InstallmentID)
		if err != nil || row == nil {
			return domain.ErrNotFound
		}
		expectedVersion := row.Version
		if err := ledger.ApplyPayment(row, in.Amount, paidAt); err != nil {
			return err
		}
		row.Version = expectedVersion + 1
		row.UpdatedAt = paidAt
		if err := instRepo.UpdatePayment(row, expectedVersion); err != nil {
			return err
		}
		updated = row
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := dto.InstallmentResponse{
		ID:          updated.ID,
		SaleID:      updated.SaleID,
		Number:      updated.Number,
		AmountDue:   updated.AmountDue,
		AmountPaid:  updated.AmountPaid,
		Outstanding: updated.Outstanding(),
		DueDate:     updated.DueDate,
		PaidDate:    updated.PaidDate,
		Status:      ledger.StatusAt(updated, paidAt),
	}
	return &dto.RecordPaymentResponse{Installment: resp}, nil
}
