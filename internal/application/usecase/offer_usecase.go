package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Terrenos-api/internal/application/dto"
	"github.com/jhoicas/Terrenos-api/internal/domain"
	"github.com/jhoicas/Terrenos-api/internal/domain/entity"
	"github.com/jhoicas/Terrenos-api/internal/domain/repository"
)

// OfferUseCase casos de uso para ofertas de financiamiento. Las ofertas son
// inmutables en sus parámetros de cálculo: una venta creada con una oferta
// conserva su plan aunque la oferta se desactive después.
type OfferUseCase struct {
	repo repository.OfferRepository
}

// NewOfferUseCase construye el caso de uso.
func NewOfferUseCase(repo repository.OfferRepository) *OfferUseCase {
	return &OfferUseCase{repo: repo}
}

// Create crea una oferta validando su configuración de cálculo.
func (uc *OfferUseCase) Create(in dto.CreateOfferRequest) (*dto.OfferResponse, error) {
	if !in.PriceM2.GreaterThan(decimal.Zero) {
		return nil, domain.ErrNonPositivePrice
	}
	switch in.AdvanceMode {
	case entity.AdvanceModeFixed:
		if in.AdvanceValue.IsNegative() {
			return nil, domain.ErrInvalidOffer
		}
	case entity.AdvanceModePercent:
		if in.AdvanceValue.IsNegative() || in.AdvanceValue.GreaterThan(decimal.NewFromInt(100)) {
			return nil, domain.ErrInvalidOffer
		}
	default:
		return nil, domain.ErrInvalidOffer
	}
	switch in.CalcMode {
	case entity.CalcModeMonths:
		if in.Months <= 0 {
			return nil, domain.ErrInvalidOffer
		}
	case entity.CalcModeMonthlyAmount:
		if !in.MonthlyAmount.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidOffer
		}
	default:
		return nil, domain.ErrInvalidOffer
	}

	now := time.Now()
	offer := &entity.InstallmentOffer{
		ID:            uuid.New().String(),
		Name:          in.Name,
		PriceM2:       in.PriceM2,
		AdvanceMode:   in.AdvanceMode,
		AdvanceValue:  in.AdvanceValue,
		CalcMode:      in.CalcMode,
		Months:        in.Months,
		MonthlyAmount: in.MonthlyAmount,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(offer); err != nil {
		return nil, err
	}
	return toOfferResponse(offer), nil
}

// GetByID obtiene una oferta por ID.
func (uc *OfferUseCase) GetByID(id string) (*dto.OfferResponse, error) {
	offer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, nil
	}
	return toOfferResponse(offer), nil
}

// Update renombra o activa/desactiva la oferta. Los parámetros de cálculo no
// se editan: para cambiar condiciones se crea una oferta nueva.
func (uc *OfferUseCase) Update(id string, in dto.UpdateOfferRequest) (*dto.OfferResponse, error) {
	offer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, nil
	}
	if in.Name != nil {
		offer.Name = *in.Name
	}
	if in.Active != nil {
		offer.Active = *in.Active
	}
	offer.UpdatedAt = time.Now()
	if err := uc.repo.Update(offer); err != nil {
		return nil, err
	}
	return toOfferResponse(offer), nil
}

// List lista ofertas; con onlyActive filtra las desactivadas.
func (uc *OfferUseCase) List(onlyActive bool) ([]dto.OfferResponse, error) {
	list, err := uc.repo.List(onlyActive)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OfferResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOfferResponse(o))
	}
	return items, nil
}

func toOfferResponse(o *entity.InstallmentOffer) *dto.OfferResponse {
	if o == nil {
		return nil
	}
	return &dto.OfferResponse{
		ID:            o.ID,
		Name:          o.Name,
		PriceM2:       o.PriceM2,
		AdvanceMode:   o.AdvanceMode,
		AdvanceValue:  o.AdvanceValue,
		CalcMode:      o.CalcMode,
		Months:        o.Months,
		MonthlyAmount: o.MonthlyAmount,
		Active:        o.Active,
	}
}
