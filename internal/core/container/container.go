package container

import (
	"context"
	"encoding/json"

	"github.com/jayeuse/Inventory-System-sub000/internal/alerts"
	"github.com/jayeuse/Inventory-System-sub000/internal/apiclient"
	"github.com/jayeuse/Inventory-System-sub000/internal/auth"
	"github.com/jayeuse/Inventory-System-sub000/internal/catalog"
	"github.com/jayeuse/Inventory-System-sub000/internal/config"
	"github.com/jayeuse/Inventory-System-sub000/internal/currency"
	"github.com/jayeuse/Inventory-System-sub000/internal/dashboard"
	"github.com/jayeuse/Inventory-System-sub000/internal/export"
	"github.com/jayeuse/Inventory-System-sub000/internal/inventory/category"
	"github.com/jayeuse/Inventory-System-sub000/internal/inventory/orders"
	"github.com/jayeuse/Inventory-System-sub000/internal/inventory/products"
	"github.com/jayeuse/Inventory-System-sub000/internal/inventory/stocks"
	"github.com/jayeuse/Inventory-System-sub000/internal/inventory/suppliers"
	"github.com/jayeuse/Inventory-System-sub000/internal/inventory/transactions"
	"github.com/jayeuse/Inventory-System-sub000/internal/repository"
	"github.com/jayeuse/Inventory-System-sub000/internal/users"
	"github.com/jayeuse/Inventory-System-sub000/pkg/models"
	"go.uber.org/zap"
)

// Container holds every service bound to one backend session. The CLI builds
// one per process, the console server one per signed-in browser session.
type Container struct {
	Client       *apiclient.Client
	Repository   *repository.Repository
	Auth         *auth.Service
	Products     *products.ProductService
	Categories   *category.CategoryService
	Suppliers    *suppliers.SupplierService
	Stocks       *stocks.StockService
	Orders       *orders.OrderService
	Transactions *transactions.TransactionService
	Users        *users.UserService
	Alerts       *alerts.AlertService
	Dashboard    *dashboard.DashboardService
	Catalog      *catalog.Catalog
	Logger       *zap.Logger
}

// New creates a fresh backend client from cfg and wires the services on it.
func New(cfg *config.Config, display currency.Code, logger *zap.Logger) (*Container, error) {
	client, err := apiclient.New(cfg.APIURL, cfg.HTTPTimeout, logger)
	if err != nil {
		return nil, err
	}
	return NewAppContainer(client, catalog.Options{PageSize: cfg.PageSize, Currency: display, Logger: logger}), nil
}

func NewAppContainer(client *apiclient.Client, opts catalog.Options) *Container {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	repo := repository.NewRepository(client)

	c := &Container{
		Client:     repo.Client,
		Repository: repo,
		Logger:     logger,
		Auth:       auth.NewService(client, logger),
		Products: products.NewProductService(
			repository.NewCollection[models.Product](repo, products.Path), logger),
		Categories: category.NewCategoryService(
			repository.NewCollection[models.Category](repo, category.CategoriesPath),
			repository.NewCollection[models.Subcategory](repo, category.SubcategoriesPath),
			logger),
		Suppliers: suppliers.NewSupplierService(
			repository.NewCollection[models.Supplier](repo, suppliers.Path), logger),
		Stocks: stocks.NewStockService(
			repository.NewCollection[models.Stock](repo, stocks.StocksPath),
			repository.NewCollection[models.Batch](repo, stocks.BatchesPath),
			logger),
		Orders: orders.NewOrderService(
			repository.NewCollection[models.Order](repo, orders.OrdersPath),
			repository.NewCollection[models.ReceiveResult](repo, orders.ReceivesPath),
			logger),
		Transactions: transactions.NewTransactionService(
			repository.NewCollection[models.Transaction](repo, transactions.Path)),
		Users: users.NewUserService(
			repository.NewCollection[models.UserInfo](repo, users.Path), logger),
		Alerts:    alerts.NewAlertService(client, logger),
		Dashboard: dashboard.NewDashboardService(client, logger),
	}

	opts.Logger = logger
	c.Catalog = catalog.New(catalog.Services{
		Products:     c.Products,
		Categories:   c.Categories,
		Suppliers:    c.Suppliers,
		Stocks:       c.Stocks,
		Orders:       c.Orders,
		Transactions: c.Transactions,
		Users:        c.Users,
		Alerts:       c.Alerts,
	}, opts)
	return c
}

func (c *Container) raw(path string) export.Collection {
	collection := repository.NewCollection[json.RawMessage](c.Repository, path)
	return func(ctx context.Context) ([]json.RawMessage, error) {
		return collection.ListAll(ctx, nil)
	}
}

// BackupSources lists the collections included in a full JSON backup.
func (c *Container) BackupSources() export.BackupSources {
	return export.BackupSources{
		Products:   c.raw(products.Path),
		Suppliers:  c.raw(suppliers.Path),
		Categories: c.raw(category.CategoriesPath),
		Inventory:  c.raw(stocks.StocksPath),
		Orders:     c.raw(orders.OrdersPath),
	}
}
