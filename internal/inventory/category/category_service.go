package category

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jayeuse/Inventory-System-sub000/internal/repository"
	"github.com/jayeuse/Inventory-System-sub000/pkg/models"
	"github.com/jayeuse/Inventory-System-sub000/pkg/validator"
	"go.uber.org/zap"
)

const (
	CategoriesPath    = "/api/categories/"
	SubcategoriesPath = "/api/subcategories/"
)

type subcategoryQuery struct {
	categoryID   string
	showArchived bool
}

func (q subcategoryQuery) BuildQuery() url.Values {
	params := repository.Params{"category": q.categoryID}
	if q.showArchived {
		params["show_archived"] = "true"
	}
	return params.BuildQuery()
}

type CategoryService struct {
	categories    repository.Store[models.Category]
	subcategories repository.Store[models.Subcategory]
	logger        *zap.Logger
}

func NewCategoryService(categories repository.Store[models.Category], subcategories repository.Store[models.Subcategory], logger *zap.Logger) *CategoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryService{categories: categories, subcategories: subcategories, logger: logger}
}

func archivedQuery(showArchived bool) repository.QueryBuilder {
	if showArchived {
		return repository.Params{"show_archived": "true"}
	}
	return nil
}

func (s *CategoryService) List(ctx context.Context, showArchived bool) ([]models.Category, error) {
	return s.categories.List(ctx, archivedQuery(showArchived))
}

func (s *CategoryService) ListAll(ctx context.Context, showArchived bool) ([]models.Category, error) {
	return s.categories.ListAll(ctx, archivedQuery(showArchived))
}

func (s *CategoryService) Create(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	created, err := s.categories.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	s.logger.Info("Category created", zap.String("category_id", created.CategoryID))
	return created, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, req models.CategoryRequest) (*models.Category, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	updated, err := s.categories.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update category %s: %w", id, err)
	}
	return updated, nil
}

func (s *CategoryService) Archive(ctx context.Context, id, reason string) error {
	if err := s.categories.Archive(ctx, id, reason); err != nil {
		return fmt.Errorf("archive category %s: %w", id, err)
	}
	return nil
}

func (s *CategoryService) Unarchive(ctx context.Context, id, reason string) error {
	if err := s.categories.Unarchive(ctx, id, reason); err != nil {
		return fmt.Errorf("unarchive category %s: %w", id, err)
	}
	return nil
}

// ListSubcategories lists the children of categoryID, or every subcategory when it is empty.
func (s *CategoryService) ListSubcategories(ctx context.Context, categoryID string, showArchived bool) ([]models.Subcategory, error) {
	subcategories, err := s.subcategories.List(ctx, subcategoryQuery{categoryID: categoryID, showArchived: showArchived})
	if err != nil {
		return nil, err
	}
	if categoryID == "" {
		return subcategories, nil
	}
	// older backends ignore the category parameter
	filtered := make([]models.Subcategory, 0, len(subcategories))
	for _, sub := range subcategories {
		if sub.CategoryID == categoryID {
			filtered = append(filtered, sub)
		}
	}
	return filtered, nil
}

func (s *CategoryService) CreateSubcategory(ctx context.Context, req models.SubcategoryRequest) (*models.Subcategory, error) {
	if err := validator.Validate(req); err != nil {
		return nil, err
	}
	created, err := s.subcategories.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create subcategory: %w", err)
	}
	s.logger.Info("Subcategory created",
		zap.String("subcategory_id", created.SubcategoryID),
		zap.String("category_id", req.CategoryID),
	)
	return created, nil
}

func (s *CategoryService) ArchiveSubcategory(ctx context.Context, id, reason string) error {
	if err := s.subcategories.Archive(ctx, id, reason); err != nil {
		return fmt.Errorf("archive subcategory %s: %w", id, err)
	}
	return nil
}

func (s *CategoryService) UnarchiveSubcategory(ctx context.Context, id, reason string) error {
	if err := s.subcategories.Unarchive(ctx, id, reason); err != nil {
		return fmt.Errorf("unarchive subcategory %s: %w", id, err)
	}
	return nil
}
