package transactions

import (
	"context"

	"github.com/jayeuse/Inventory-System-sub000/internal/repository"
	"github.com/jayeuse/Inventory-System-sub000/pkg/models"
)

const Path = "/api/transactions/"

// TransactionService reads the stock movement log. Transactions are
// written by the backend as a side effect of receiving and adjusting stock.
type TransactionService struct {
	store repository.Store[models.Transaction]
}

func NewTransactionService(store repository.Store[models.Transaction]) *TransactionService {
	return &TransactionService{store: store}
}

func (s *TransactionService) List(ctx context.Context) ([]models.Transaction, error) {
	return s.store.List(ctx, nil)
}

func (s *TransactionService) ListAll(ctx context.Context) ([]models.Transaction, error) {
	return s.store.ListAll(ctx, nil)
}
