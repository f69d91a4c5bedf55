package suppliers

import (
	"context"
	"fmt"

	"github.com/jayeuse/Inventory-System-sub000/internal/repository"
	"github.com/jayeuse/Inventory-System-sub000/pkg/models"
	"github.com/jayeuse/Inventory-System-sub000/pkg/validator"
	"go.uber.org/zap"
)

const Path = "/api/suppliers/"

type SupplierService struct {
	store  repository.Store[models.Supplier]
	logger *zap.Logger
}

func NewSupplierService(store repository.Store[models.Supplier], logger *zap.Logger) *SupplierService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SupplierService{store: store, logger: logger}
}

func query(showArchived bool) repository.QueryBuilder {
	if showArchived {
		return repository.Params{"show_archived": "true"}
	}
	return nil
}

func (s *SupplierService) List(ctx context.Context, showArchived bool) ([]models.Supplier, error) {
	return s.store.List(ctx, query(showArchived))
}

func (s *SupplierService) ListAll(ctx context.Context, showArchived bool) ([]models.Supplier, error) {
	return s.store.ListAll(ctx, query(showArchived))
}

func (s *SupplierService) Create(ctx context.Context, req models.SupplierRequest) (*models.Supplier, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	supplier, err := s.store.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create supplier: %w", err)
	}
	s.logger.Info("Supplier created", zap.String("supplier_id", supplier.SupplierID))
	return supplier, nil
}

func (s *SupplierService) Update(ctx context.Context, id string, req models.SupplierRequest) (*models.Supplier, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	supplier, err := s.store.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update supplier %s: %w", id, err)
	}
	return supplier, nil
}

func (s *SupplierService) Archive(ctx context.Context, id, reason string) error {
	if err := s.store.Archive(ctx, id, reason); err != nil {
		return fmt.Errorf("archive supplier %s: %w", id, err)
	}
	return nil
}

func (s *SupplierService) Unarchive(ctx context.Context, id, reason string) error {
	if err := s.store.Unarchive(ctx, id, reason); err != nil {
		return fmt.Errorf("unarchive supplier %s: %w", id, err)
	}
	return nil
}
