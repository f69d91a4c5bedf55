package stocks

import (
	"context"
	"fmt"
	"strings"

	"github.com/jayeuse/Inventory-System-sub000/internal/repository"
	"github.com/jayeuse/Inventory-System-sub000/pkg/models"
	"github.com/jayeuse/Inventory-System-sub000/pkg/validator"
	"go.uber.org/zap"
)

const (
	StocksPath  = "/api/product-stocks/"
	BatchesPath = "/api/product-batches/"
)

type StockService struct {
	stocks  repository.Store[models.Stock]
	batches repository.Store[models.Batch]
	logger  *zap.Logger
}

func NewStockService(stocks repository.Store[models.Stock], batches repository.Store[models.Batch], logger *zap.Logger) *StockService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockService{stocks: stocks, batches: batches, logger: logger}
}

func (s *StockService) List(ctx context.Context) ([]models.Stock, error) {
	return s.stocks.List(ctx, nil)
}

func (s *StockService) ListAll(ctx context.Context) ([]models.Stock, error) {
	return s.stocks.ListAll(ctx, nil)
}

// ListBatches returns the batches of one stock record.
func (s *StockService) ListBatches(ctx context.Context, stockID string) ([]models.Batch, error) {
	if strings.TrimSpace(stockID) == "" {
		return nil, fmt.Errorf("%w: stock id is required", validator.ErrInvalidInput)
	}
	batches, err := s.batches.List(ctx, repository.Params{"stock_id": stockID})
	if err != nil {
		return nil, fmt.Errorf("list batches of %s: %w", stockID, err)
	}
	return batches, nil
}

func (s *StockService) GetBatch(ctx context.Context, batchID string) (*models.Batch, error) {
	return s.batches.Get(ctx, batchID)
}

// UpdateBatch corrects on hand quantity or expiry of a batch. A remark is
// required so the adjustment shows up in the transaction log.
func (s *StockService) UpdateBatch(ctx context.Context, batchID string, changes models.BatchChanges) (*models.Batch, error) {
	if err := validator.Validate(changes); err != nil {
		return nil, err
	}
	if changes.OnHand == nil && changes.ExpiryDate == nil {
		return nil, fmt.Errorf("%w: nothing to update", validator.ErrInvalidInput)
	}
	changes.Remarks = strings.TrimSpace(changes.Remarks)
	if changes.Remarks == "" {
		return nil, fmt.Errorf("%w: please provide remarks for this adjustment", validator.ErrInvalidInput)
	}

	batch, err := s.batches.Update(ctx, batchID, changes)
	if err != nil {
		return nil, fmt.Errorf("update batch %s: %w", batchID, err)
	}
	s.logger.Info("Batch updated", zap.String("batch_id", batchID))
	return batch, nil
}
