package products

import (
	"context"
	"errors"
	"testing"

	"github.com/jayeuse/Inventory-System-sub000/internal/repository/repositorytest"
	"github.com/jayeuse/Inventory-System-sub000/pkg/models"
	"github.com/jayeuse/Inventory-System-sub000/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validRequest() models.ProductRequest {
	return models.ProductRequest{
		BrandName:         "Biogesic",
		GenericName:       "Paracetamol",
		Category:          "CAT-1",
		PricePerUnit:      decimal.RequireFromString("4.50"),
		UnitOfMeasurement: "tablet",
		LowStockThreshold: 20,
	}
}

func TestListOptionsQuery(t *testing.T) {
	assert.Equal(t, "", ListOptions{}.BuildQuery().Encode())
	assert.Equal(t, "category=CAT-1&show_archived=true", ListOptions{ShowArchived: true, Category: "CAT-1"}.BuildQuery().Encode())
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		request   func() models.ProductRequest
		setupMock func(store *repositorytest.MockStore[models.Product])
		wantErr   error
	}{
		{
			name:    "valid product",
			request: validRequest,
			setupMock: func(store *repositorytest.MockStore[models.Product]) {
				store.On("Create", ctx, mock.AnythingOfType("models.ProductRequest")).
					Return(&models.Product{ProductID: "P-1"}, nil)
			},
		},
		{
			name: "missing brand name",
			request: func() models.ProductRequest {
				req := validRequest()
				req.BrandName = ""
				return req
			},
			setupMock: func(store *repositorytest.MockStore[models.Product]) {},
			wantErr:   validator.ErrInvalidInput,
		},
		{
			name: "negative price",
			request: func() models.ProductRequest {
				req := validRequest()
				req.PricePerUnit = decimal.NewFromInt(-1)
				return req
			},
			setupMock: func(store *repositorytest.MockStore[models.Product]) {},
			wantErr:   validator.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(repositorytest.MockStore[models.Product])
			tt.setupMock(store)
			service := NewProductService(store, nil)

			product, err := service.Create(ctx, tt.request())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "P-1", product.ProductID)
			store.AssertExpectations(t)
		})
	}
}

func TestUpdateWithoutChangesSkipsPatch(t *testing.T) {
	ctx := context.Background()
	store := new(repositorytest.MockStore[models.Product])
	store.On("Get", ctx, "P-1").Return(&models.Product{ProductID: "P-1"}, nil)
	service := NewProductService(store, nil)

	product, err := service.Update(ctx, "P-1", models.ProductChanges{})
	require.NoError(t, err)
	assert.Equal(t, "P-1", product.ProductID)
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateSendsChanges(t *testing.T) {
	ctx := context.Background()
	name := "Biogesic Forte"
	changes := models.ProductChanges{BrandName: &name}

	store := new(repositorytest.MockStore[models.Product])
	store.On("Update", ctx, "P-1", changes).Return(&models.Product{ProductID: "P-1", BrandName: name}, nil)
	service := NewProductService(store, nil)

	product, err := service.Update(ctx, "P-1", changes)
	require.NoError(t, err)
	assert.Equal(t, name, product.BrandName)
	store.AssertExpectations(t)
}

func TestArchiveWrapsErrors(t *testing.T) {
	ctx := context.Background()
	store := new(repositorytest.MockStore[models.Product])
	store.On("Archive", ctx, "P-1", "expired stock").Return(errors.New("500"))
	store.On("Unarchive", ctx, "P-1", "restocked").Return(nil)
	service := NewProductService(store, nil)

	assert.ErrorContains(t, service.Archive(ctx, "P-1", "expired stock"), "archive product P-1")
	assert.NoError(t, service.Unarchive(ctx, "P-1", "restocked"))
	store.AssertExpectations(t)
}
