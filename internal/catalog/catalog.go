// Package catalog binds every backend collection to its list view: search
// fields, filters, table and export columns, and PDF layout.
package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/jayeuse/Inventory-System-sub000/internal/alerts"
	"github.com/jayeuse/Inventory-System-sub000/internal/currency"
	"github.com/jayeuse/Inventory-System-sub000/internal/inventory/category"
	"github.com/jayeuse/Inventory-System-sub000/internal/inventory/orders"
	"github.com/jayeuse/Inventory-System-sub000/internal/inventory/products"
	"github.com/jayeuse/Inventory-System-sub000/internal/inventory/stocks"
	"github.com/jayeuse/Inventory-System-sub000/internal/inventory/suppliers"
	"github.com/jayeuse/Inventory-System-sub000/internal/inventory/transactions"
	"github.com/jayeuse/Inventory-System-sub000/internal/listview"
	"github.com/jayeuse/Inventory-System-sub000/internal/users"
	"github.com/jayeuse/Inventory-System-sub000/pkg/roles"
	"go.uber.org/zap"
)

const (
	Products     = "products"
	Stocks       = "stocks"
	Categories   = "categories"
	Suppliers    = "suppliers"
	Orders       = "orders"
	Transactions = "transactions"
	Users        = "users"
	Alerts       = "alerts"
)

type Services struct {
	Products     *products.ProductService
	Categories   *category.CategoryService
	Suppliers    *suppliers.SupplierService
	Stocks       *stocks.StockService
	Orders       *orders.OrderService
	Transactions *transactions.TransactionService
	Users        *users.UserService
	Alerts       *alerts.AlertService
}

// Archiver is implemented by the services whose records can be archived.
type Archiver interface {
	Archive(ctx context.Context, id, reason string) error
	Unarchive(ctx context.Context, id, reason string) error
}

type entry struct {
	resource listview.Resource
	archiver Archiver
	// role needed to read the list
	role roles.Role
}

type Catalog struct {
	entries map[string]entry
}

type Options struct {
	PageSize int
	// Currency is the display currency for prices in tables.
	Currency currency.Code
	Logger   *zap.Logger
}

// New builds the catalog. Services left nil are simply not listed.
func New(s Services, opts Options) *Catalog {
	if opts.PageSize <= 0 {
		opts.PageSize = 8
	}
	if opts.Currency == "" {
		opts.Currency = currency.Base
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	c := &Catalog{entries: map[string]entry{}}
	if s.Products != nil {
		c.entries[Products] = entry{productBinding(s.Products, opts), s.Products, roles.Clerk}
	}
	if s.Stocks != nil {
		c.entries[Stocks] = entry{stockBinding(s.Stocks, opts), nil, roles.Clerk}
	}
	if s.Categories != nil {
		c.entries[Categories] = entry{categoryBinding(s.Categories, opts), s.Categories, roles.Clerk}
	}
	if s.Suppliers != nil {
		c.entries[Suppliers] = entry{supplierBinding(s.Suppliers, opts), s.Suppliers, roles.Clerk}
	}
	if s.Orders != nil {
		c.entries[Orders] = entry{orderBinding(s.Orders, opts), nil, roles.Clerk}
	}
	if s.Transactions != nil {
		c.entries[Transactions] = entry{transactionBinding(s.Transactions, opts), nil, roles.Clerk}
	}
	if s.Users != nil {
		c.entries[Users] = entry{userBinding(s.Users, opts), nil, roles.Admin}
	}
	if s.Alerts != nil {
		c.entries[Alerts] = entry{alertBinding(s.Alerts, opts), nil, roles.Clerk}
	}
	return c
}

func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Catalog) Resource(name string) (listview.Resource, error) {
	e, ok := c.entries[name]
	if !ok {
		return nil, fmt.Errorf("unknown resource %q (available: %v)", name, c.Names())
	}
	return e.resource, nil
}

// Archiver returns the archive operations of a resource, false when its
// records cannot be archived.
func (c *Catalog) Archiver(name string) (Archiver, bool) {
	e, ok := c.entries[name]
	if !ok || e.archiver == nil {
		return nil, false
	}
	return e.archiver, true
}

// RequiredRole is the least role allowed to read a resource.
func (c *Catalog) RequiredRole(name string) roles.Role {
	if e, ok := c.entries[name]; ok {
		return e.role
	}
	return roles.Admin
}
