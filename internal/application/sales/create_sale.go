package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Terrenos-api/internal/application/dto"
	"github.com/jhoicas/Terrenos-api/internal/domain"
	"github.com/jhoicas/Terrenos-api/internal/domain/entity"
	"github.com/jhoicas/Terrenos-api/internal/domain/plan"
	"github.com/jhoicas/Terrenos-api/internal/domain/pricing"
	"github.com/jhoicas/Terrenos-api/internal/domain/repository"
)

// CreateSaleUseCase crea una venta: calcula el precio con el motor de precios,
// valida las condiciones de pago y reserva el lote, todo en una transacción.
// Un error de precio o de configuración de la oferta rechaza la operación
// completa antes de persistir nada.
type CreateSaleUseCase struct {
	txRunner   TxRunner
	clientRepo repository.ClientRepository
	batchRepo  repository.BatchRepository
	pieceRepo  repository.PieceRepository
	offerRepo  repository.OfferRepository
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner TxRunner,
	clientRepo repository.ClientRepository,
	batchRepo repository.BatchRepository,
	pieceRepo repository.PieceRepository,
	offerRepo repository.OfferRepository,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:   txRunner,
		clientRepo: clientRepo,
		batchRepo:  batchRepo,
		pieceRepo:  pieceRepo,
		offerRepo:  offerRepo,
	}
}

// CreateSale valida referencias, fija el precio y persiste la venta pendiente
// reservando el lote.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, sellerID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.ClientID == "" || in.PieceID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.DepositAmount.IsNegative() || in.CompanyFee.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil || client == nil {
		return nil, domain.ErrNotFound
	}
	piece, err := uc.pieceRepo.GetByID(in.PieceID)
	if err != nil || piece == nil {
		return nil, domain.ErrNotFound
	}
	batch, err := uc.batchRepo.GetByID(piece.BatchID)
	if err != nil || batch == nil {
		return nil, domain.ErrNotFound
	}

	// Oferta solo para ventas financiadas (obligatoria en ese caso)
	var offer *entity.InstallmentOffer
	switch in.PaymentMethod {
	case entity.PaymentMethodInstallment:
		if in.PaymentOfferID == "" {
			return nil, domain.ErrInvalidInput
		}
		offer, err = uc.offerRepo.GetByID(in.PaymentOfferID)
		if err != nil || offer == nil {
			return nil, domain.ErrNotFound
		}
	case entity.PaymentMethodFull:
	case entity.PaymentMethodPromise:
		if in.PartialPaymentAmount == nil || !in.PartialPaymentAmount.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	// Precio: oferta (cuotas) → precio directo del lote → contado de la etapa.
	// Un error aquí rechaza la venta antes de tocar la BD.
	priceIn := pricing.PriceInput{
		SurfaceM2:     piece.SurfaceM2,
		PaymentMethod: in.PaymentMethod,
	}
	if offer != nil {
		priceIn.OfferPriceM2 = &offer.PriceM2
	}
	priceIn.DirectPrice = piece.DirectPrice
	if batch.CashPriceM2.GreaterThan(decimal.Zero) {
		priceIn.BatchCashPriceM2 = &batch.CashPriceM2
	}
	salePrice, err := pricing.SalePrice(priceIn)
	if err != nil {
		return nil, err
	}
	if in.DepositAmount.GreaterThan(salePrice) {
		return nil, domain.ErrDepositExceedsPrice
	}

	now := time.Now()
	saleDate := now
	if in.SaleDate != nil {
		saleDate = *in.SaleDate
	}

	// Variante de condiciones de pago. Para cuotas se construye el plan ya
	// mismo: valida la oferta (fail fast) y materializa la prima restante en
	// la venta para que los reportes no dependan de releer la oferta.
	var terms entity.PaymentTerms
	switch in.PaymentMethod {
	case entity.PaymentMethodFull:
		terms = entity.FullPaymentTerms{}
	case entity.PaymentMethodInstallment:
		p, err := plan.Build(plan.BuildInput{
			SalePrice:     salePrice,
			DepositAmount: in.DepositAmount,
			Offer:         offer,
			SaleDate:      saleDate,
			StartDate:     in.InstallmentStartDate,
		})
		if err != nil {
			return nil, err
		}
		terms = entity.InstallmentTerms{
			OfferID:             offer.ID,
			StartDate:           in.InstallmentStartDate,
			AdvanceAfterDeposit: p.AdvanceAfterDeposit,
		}
	case entity.PaymentMethodPromise:
		terms = entity.PromiseTerms{PartialAmount: *in.PartialPaymentAmount}
	}

	sale := &entity.Sale{
		ID:            uuid.New().String(),
		ClientID:      in.ClientID,
		SellerID:      sellerID,
		BatchID:       piece.BatchID,
		PieceID:       in.PieceID,
		SalePrice:     salePrice,
		DepositAmount: in.DepositAmount,
		CompanyFee:    in.CompanyFee,
		Status:        entity.SaleStatusPending,
		SaleDate:      saleDate,
		Terms:         terms,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// Transacción: reserva el lote (con bloqueo de fila) y persiste la venta.
	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		pieceRepo repository.PieceRepository,
		_ repository.InstallmentRepository,
	) error {
		locked, err := pieceRepo.GetForUpdate(in.PieceID)
		if err != nil || locked == nil {
			return domain.ErrNotFound
		}
		if locked.Status != entity.PieceStatusAvailable {
			return domain.ErrPieceNotAvailable
		}
		if err := pieceRepo.UpdateStatus(in.PieceID, entity.PieceStatusReserved); err != nil {
			return err
		}
		return saleRepo.Create(sale)
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

func toSaleResponse(sale *entity.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            sale.ID,
		ClientID:      sale.ClientID,
		SellerID:      sale.SellerID,
		BatchID:       sale.BatchID,
		PieceID:       sale.PieceID,
		PaymentMethod: sale.PaymentMethod(),
		SalePrice:     sale.SalePrice,
		DepositAmount: sale.DepositAmount,
		CompanyFee:    sale.CompanyFee,
		Status:        sale.Status,
		SaleDate:      sale.SaleDate,
	}
	switch terms := sale.Terms.(type) {
	case entity.InstallmentTerms:
		resp.PaymentOfferID = terms.OfferID
		advance := terms.AdvanceAfterDeposit
		resp.AdvanceAfterDeposit = &advance
	case entity.PromiseTerms:
		partial := terms.PartialAmount
		resp.PartialPaymentAmount = &partial
	}
	return resp
}
