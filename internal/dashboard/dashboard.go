package dashboard

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/jayeuse/Inventory-System-sub000/internal/alerts"
	"github.com/jayeuse/Inventory-System-sub000/pkg/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	StatsPath        = "/api/dashboard/stats/"
	CategoriesPath   = "/api/dashboard/categories/"
	TopSuppliersPath = "/api/dashboard/top-suppliers/"
	StockStatusPath  = "/api/dashboard/stock-status/"

	DefaultTopSuppliers = 3
)

// Snapshot holds every chart of the dashboard. A section whose fetch
// failed keeps its zero value and its error is listed in Errors.
type Snapshot struct {
	Stats        models.DashboardStats     `json:"stats"`
	Categories   []models.CategoryCount    `json:"categories"`
	TopSuppliers []models.SupplierCount    `json:"top_suppliers"`
	StockStatus  models.StockStatusBuckets `json:"stock_status"`
	Errors       map[string]string         `json:"errors,omitempty"`
}

type DashboardService struct {
	client alerts.Getter
	logger *zap.Logger
}

func NewDashboardService(client alerts.Getter, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{client: client, logger: logger}
}

func (s *DashboardService) Stats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	err := s.client.Get(ctx, StatsPath, &stats)
	return stats, err
}

// Categories labels unnamed rows "Uncategorized".
func (s *DashboardService) Categories(ctx context.Context) ([]models.CategoryCount, error) {
	var counts []models.CategoryCount
	if err := s.client.Get(ctx, CategoriesPath, &counts); err != nil {
		return nil, err
	}
	for i := range counts {
		if counts[i].CategoryName == "" {
			counts[i].CategoryName = "Uncategorized"
		}
	}
	return counts, nil
}

// TopSuppliers asks for the n suppliers with the most products.
func (s *DashboardService) TopSuppliers(ctx context.Context, n int) ([]models.SupplierCount, error) {
	if n <= 0 {
		n = DefaultTopSuppliers
	}
	path := TopSuppliersPath + "?" + url.Values{"top": []string{strconv.Itoa(n)}}.Encode()

	var counts []models.SupplierCount
	if err := s.client.Get(ctx, path, &counts); err != nil {
		return nil, err
	}
	for i := range counts {
		if counts[i].SupplierName == "" {
			counts[i].SupplierName = "Unknown"
		}
	}
	return counts, nil
}

func (s *DashboardService) StockStatus(ctx context.Context) (models.StockStatusBuckets, error) {
	var counts []models.StatusCount
	if err := s.client.Get(ctx, StockStatusPath, &counts); err != nil {
		return models.StockStatusBuckets{}, err
	}
	return Bucket(counts), nil
}

// Bucket folds status labels into the five chart buckets by substring.
// "near" is checked before "expired" so "Near Expiry" is not counted as
// expired; unknown labels count as normal.
func Bucket(counts []models.StatusCount) models.StockStatusBuckets {
	var buckets models.StockStatusBuckets
	for _, item := range counts {
		label := strings.ToLower(item.StatusLabel)
		switch {
		case strings.Contains(label, "normal"):
			buckets.Normal += item.Count
		case strings.Contains(label, "near"):
			buckets.NearExpiry += item.Count
		case strings.Contains(label, "expired"):
			buckets.Expired += item.Count
		case strings.Contains(label, "low"):
			buckets.LowStock += item.Count
		case strings.Contains(label, "out"):
			buckets.OutOfStock += item.Count
		default:
			buckets.Normal += item.Count
		}
	}
	return buckets
}

// Snapshot fetches all four sections in parallel.
func (s *DashboardService) Snapshot(ctx context.Context, top int) *Snapshot {
	snapshot := &Snapshot{Categories: []models.CategoryCount{}, TopSuppliers: []models.SupplierCount{}}
	errs := make([]error, 4)

	var g errgroup.Group
	g.Go(func() error {
		stats, err := s.Stats(ctx)
		if err == nil {
			snapshot.Stats = stats
		}
		errs[0] = err
		return nil
	})
	g.Go(func() error {
		categories, err := s.Categories(ctx)
		if err == nil && categories != nil {
			snapshot.Categories = categories
		}
		errs[1] = err
		return nil
	})
	g.Go(func() error {
		suppliers, err := s.TopSuppliers(ctx, top)
		if err == nil && suppliers != nil {
			snapshot.TopSuppliers = suppliers
		}
		errs[2] = err
		return nil
	})
	g.Go(func() error {
		buckets, err := s.StockStatus(ctx)
		if err == nil {
			snapshot.StockStatus = buckets
		}
		errs[3] = err
		return nil
	})
	_ = g.Wait()

	for i, name := range []string{"stats", "categories", "top_suppliers", "stock_status"} {
		if errs[i] == nil {
			continue
		}
		if snapshot.Errors == nil {
			snapshot.Errors = map[string]string{}
		}
		snapshot.Errors[name] = errs[i].Error()
		s.logger.Error("Error fetching dashboard section", zap.String("section", name), zap.Error(errs[i]))
	}
	return snapshot
}
