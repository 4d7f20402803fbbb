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

// BatchUseCase casos de uso para etapas y sus lotes.
type BatchUseCase struct {
	batchRepo repository.BatchRepository
	pieceRepo repository.PieceRepository
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(batchRepo repository.BatchRepository, pieceRepo repository.PieceRepository) *BatchUseCase {
	return &BatchUseCase{batchRepo: batchRepo, pieceRepo: pieceRepo}
}

// Create crea una nueva etapa.
func (uc *BatchUseCase) Create(in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	if in.CashPriceM2.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	batch := &entity.Batch{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Location:    in.Location,
		CashPriceM2: in.CashPriceM2,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.batchRepo.Create(batch); err != nil {
		return nil, err
	}
	return toBatchResponse(batch), nil
}

// GetByID obtiene una etapa por ID.
func (uc *BatchUseCase) GetByID(id string) (*dto.BatchResponse, error) {
	batch, err := uc.batchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}
	return toBatchResponse(batch), nil
}

// Update actualiza una etapa. Cambiar el precio contado por m² solo afecta a
// ventas futuras: las ya creadas conservan su precio calculado.
func (uc *BatchUseCase) Update(id string, in dto.UpdateBatchRequest) (*dto.BatchResponse, error) {
	batch, err := uc.batchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, nil
	}
	if in.Name != nil {
		batch.Name = *in.Name
	}
	if in.Location != nil {
		batch.Location = *in.Location
	}
	if in.CashPriceM2 != nil {
		if in.CashPriceM2.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		batch.CashPriceM2 = *in.CashPriceM2
	}
	batch.UpdatedAt = time.Now()
	if err := uc.batchRepo.Update(batch); err != nil {
		return nil, err
	}
	return toBatchResponse(batch), nil
}

// List lista todas las etapas.
func (uc *BatchUseCase) List() ([]dto.BatchResponse, error) {
	list, err := uc.batchRepo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.BatchResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBatchResponse(b))
	}
	return items, nil
}

// AddPiece registra un lote dentro de la etapa, disponible para la venta.
func (uc *BatchUseCase) AddPiece(batchID string, in dto.CreatePieceRequest) (*dto.PieceResponse, error) {
	batch, err := uc.batchRepo.GetByID(batchID)
	if err != nil || batch == nil {
		return nil, domain.ErrNotFound
	}
	if !in.SurfaceM2.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.DirectPrice != nil && !in.DirectPrice.GreaterThan(decimal.Zero) {
		return nil, domain.ErrNonPositivePrice
	}
	now := time.Now()
	piece := &entity.Piece{
		ID:          uuid.New().String(),
		BatchID:     batchID,
		Number:      in.Number,
		SurfaceM2:   in.SurfaceM2,
		DirectPrice: in.DirectPrice,
		Status:      entity.PieceStatusAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.pieceRepo.Create(piece); err != nil {
		return nil, err
	}
	return toPieceResponse(piece), nil
}

// ListPieces lista los lotes de una etapa.
func (uc *BatchUseCase) ListPieces(batchID string) ([]dto.PieceResponse, error) {
	list, err := uc.pieceRepo.ListByBatch(batchID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PieceResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPieceResponse(p))
	}
	return items, nil
}

func toBatchResponse(b *entity.Batch) *dto.BatchResponse {
	if b == nil {
		return nil
	}
	return &dto.BatchResponse{
		ID:          b.ID,
		Name:        b.Name,
		Location:    b.Location,
		CashPriceM2: b.CashPriceM2,
		CreatedAt:   b.CreatedAt,
	}
}

func toPieceResponse(p *entity.Piece) *dto.PieceResponse {
	if p == nil {
		return nil
	}
	return &dto.PieceResponse{
		ID:          p.ID,
		BatchID:     p.BatchID,
		Number:      p.Number,
		SurfaceM2:   p.SurfaceM2,
		DirectPrice: p.DirectPrice,
		Status:      p.Status,
	}
}
