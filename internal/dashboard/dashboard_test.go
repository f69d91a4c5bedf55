package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/jayeuse/Inventory-System-sub000/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockGetter struct {
	mock.Mock
}

func (m *MockGetter) Get(ctx context.Context, path string, out interface{}) error {
	return m.Called(ctx, path, out).Error(0)
}

func TestBucket(t *testing.T) {
	counts := []models.StatusCount{
		{StatusLabel: "Normal", Count: 5},
		{StatusLabel: "Near Expiry", Count: 2},
		{StatusLabel: "Expired", Count: 1},
		{StatusLabel: "Low Stock", Count: 3},
		{StatusLabel: "Out of Stock", Count: 4},
		{StatusLabel: "Quarantined", Count: 6},
	}

	assert.Equal(t, models.StockStatusBuckets{
		Normal:     11,
		NearExpiry: 2,
		Expired:    1,
		LowStock:   3,
		OutOfStock: 4,
	}, Bucket(counts))
}

func TestSnapshotKeepsOtherSectionsOnFailure(t *testing.T) {
	ctx := context.Background()
	getter := new(MockGetter)
	getter.On("Get", ctx, StatsPath, mock.Anything).Run(func(args mock.Arguments) {
		*args.Get(2).(*models.DashboardStats) = models.DashboardStats{TotalProducts: 42, PendingOrders: 3}
	}).Return(nil)
	getter.On("Get", ctx, CategoriesPath, mock.Anything).Run(func(args mock.Arguments) {
		*args.Get(2).(*[]models.CategoryCount) = []models.CategoryCount{{Count: 7}}
	}).Return(nil)
	getter.On("Get", ctx, TopSuppliersPath+"?top=3", mock.Anything).Return(errors.New("HTTP 500"))
	getter.On("Get", ctx, StockStatusPath, mock.Anything).Run(func(args mock.Arguments) {
		*args.Get(2).(*[]models.StatusCount) = []models.StatusCount{{StatusLabel: "low stock", Count: 2}}
	}).Return(nil)

	snapshot := NewDashboardService(getter, nil).Snapshot(ctx, 0)

	assert.Equal(t, 42, snapshot.Stats.TotalProducts)
	assert.Equal(t, "Uncategorized", snapshot.Categories[0].CategoryName)
	assert.Empty(t, snapshot.TopSuppliers)
	assert.NotNil(t, snapshot.TopSuppliers)
	assert.Equal(t, 2, snapshot.StockStatus.LowStock)
	assert.Contains(t, snapshot.Errors, "top_suppliers")
	assert.Len(t, snapshot.Errors, 1)
}
