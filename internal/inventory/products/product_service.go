package products

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jayeuse/Inventory-System-sub000/internal/repository"
	"github.com/jayeuse/Inventory-System-sub000/pkg/models"
	"github.com/jayeuse/Inventory-System-sub000/pkg/validator"
	"go.uber.org/zap"
)

const Path = "/api/products/"

type ListOptions struct {
	ShowArchived bool
	Category     string
}

func (o ListOptions) BuildQuery() url.Values {
	params := repository.Params{"category": o.Category}
	if o.ShowArchived {
		params["show_archived"] = "true"
	}
	return params.BuildQuery()
}

type ProductService struct {
	store  repository.Store[models.Product]
	logger *zap.Logger
}

func NewProductService(store repository.Store[models.Product], logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{store: store, logger: logger}
}

func (s *ProductService) List(ctx context.Context, opts ListOptions) ([]models.Product, error) {
	return s.store.List(ctx, opts)
}

func (s *ProductService) ListAll(ctx context.Context, opts ListOptions) ([]models.Product, error) {
	return s.store.ListAll(ctx, opts)
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.store.Get(ctx, id)
}

func (s *ProductService) Create(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	if req.PricePerUnit.IsNegative() {
		return nil, fmt.Errorf("%w: price per unit cannot be negative", validator.ErrInvalidInput)
	}

	product, err := s.store.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.logger.Info("Product created", zap.String("product_id", product.ProductID))
	return product, nil
}

// Update sends only the changed fields. With nothing to change it returns the
// current record without a PATCH.
func (s *ProductService) Update(ctx context.Context, id string, changes models.ProductChanges) (*models.Product, error) {
	if err := validator.Validate(changes); err != nil {
		return nil, err
	}
	if changes.PricePerUnit != nil && changes.PricePerUnit.IsNegative() {
		return nil, fmt.Errorf("%w: price per unit cannot be negative", validator.ErrInvalidInput)
	}
	if !changes.HasChanges() {
		return s.store.Get(ctx, id)
	}

	product, err := s.store.Update(ctx, id, changes)
	if err != nil {
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}
	return product, nil
}

func (s *ProductService) Archive(ctx context.Context, id, reason string) error {
	if err := s.store.Archive(ctx, id, reason); err != nil {
		return fmt.Errorf("archive product %s: %w", id, err)
	}
	s.logger.Info("Product archived", zap.String("product_id", id))
	return nil
}

func (s *ProductService) Unarchive(ctx context.Context, id, reason string) error {
	if err := s.store.Unarchive(ctx, id, reason); err != nil {
		return fmt.Errorf("unarchive product %s: %w", id, err)
	}
	s.logger.Info("Product restored", zap.String("product_id", id))
	return nil
}
