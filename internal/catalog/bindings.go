package catalog

import (
	"context"
	"io"
	"strconv"

	"github.com/jayeuse/Inventory-System-sub000/internal/alerts"
	"github.com/jayeuse/Inventory-System-sub000/internal/currency"
	"github.com/jayeuse/Inventory-System-sub000/internal/export"
	"github.com/jayeuse/Inventory-System-sub000/internal/inventory/category"
	"github.com/jayeuse/Inventory-System-sub000/internal/inventory/orders"
	"github.com/jayeuse/Inventory-System-sub000/internal/inventory/products"
	"github.com/jayeuse/Inventory-System-sub000/internal/inventory/stocks"
	"github.com/jayeuse/Inventory-System-sub000/internal/inventory/suppliers"
	"github.com/jayeuse/Inventory-System-sub000/internal/inventory/transactions"
	"github.com/jayeuse/Inventory-System-sub000/internal/listview"
	"github.com/jayeuse/Inventory-System-sub000/internal/users"
	"github.com/jayeuse/Inventory-System-sub000/pkg/metadata"
	"github.com/jayeuse/Inventory-System-sub000/pkg/models"
)

var statusOptions = []string{models.StatusActive, models.StatusArchived}

func itoa(v int) string { return strconv.Itoa(v) }

func statusFilter[T any](value func(T) string) listview.Filter[T] {
	return listview.Filter[T]{Name: "status", Label: "Status", Value: value, Options: statusOptions}
}

func productBinding(s *products.ProductService, opts Options) *listview.Binding[models.Product] {
	all := products.ListOptions{ShowArchived: true}
	return &listview.Binding[models.Product]{
		Key:     Products,
		Heading: "Products",
		Spec: listview.Spec[models.Product]{
			PageSize: opts.PageSize,
			Search: []listview.Field[models.Product]{
				func(p models.Product) string { return p.ProductID },
				func(p models.Product) string { return p.BrandName },
				func(p models.Product) string { return p.GenericName },
			},
			Filters: []listview.Filter[models.Product]{
				{Name: "category", Label: "Category", Value: func(p models.Product) string { return p.CategoryName }},
				statusFilter(func(p models.Product) string { return p.Status }),
			},
		},
		Fetch:    func(ctx context.Context) ([]models.Product, error) { return s.List(ctx, all) },
		FetchAll: func(ctx context.Context) ([]models.Product, error) { return s.ListAll(ctx, all) },
		Columns: []listview.Column[models.Product]{
			{Header: "Product ID", Value: func(p models.Product) string { return p.ProductID }},
			{Header: "Brand Name", Value: func(p models.Product) string { return p.BrandName }, MaxLen: 32},
			{Header: "Generic Name", Value: func(p models.Product) string { return p.GenericName }, MaxLen: 32},
			{Header: "Category", Value: func(p models.Product) string { return p.CategoryName }, MaxLen: 24},
			{Header: "Subcategory", Value: func(p models.Product) string { return p.SubcategoryName }, MaxLen: 24},
			{Header: "Unit Price", Value: func(p models.Product) string {
				return currency.Format(p.PricePerUnit, opts.Currency, currency.FormatOptions{}) + " / " + p.UnitOfMeasurement
			}},
			{Header: "Low Stock", Value: func(p models.Product) string { return itoa(p.LowStockThreshold) + " units" }},
			{Header: "Expiry Threshold", Value: func(p models.Product) string { return itoa(p.ExpiryThresholdDays) + " days" }},
			{Header: "Status", Value: func(p models.Product) string { return p.Status }},
			{Header: "Last Updated", Value: func(p models.Product) string { return p.LastUpdated }, MaxLen: 30},
		},
		CSVColumns: []export.Column[models.Product]{
			{Header: "Product ID", Value: func(p models.Product) string { return p.ProductID }},
			{Header: "Brand Name", Value: func(p models.Product) string { return p.BrandName }},
			{Header: "Generic Name", Value: func(p models.Product) string { return p.GenericName }},
			{Header: "Category", Value: func(p models.Product) string { return p.CategoryName }},
			{Header: "Subcategory", Value: func(p models.Product) string { return p.SubcategoryName }},
			{Header: "Price (PHP)", Value: func(p models.Product) string { return p.PricePerUnit.StringFixed(2) }},
			{Header: "Unit", Value: func(p models.Product) string { return p.UnitOfMeasurement }},
			{Header: "Low Stock Threshold", Value: func(p models.Product) string { return itoa(p.LowStockThreshold) }},
			{Header: "Expiry Threshold (Days)", Value: func(p models.Product) string { return itoa(p.ExpiryThresholdDays) }},
			{Header: "Status", Value: func(p models.Product) string { return p.Status }},
			{Header: "Last Updated", Value: func(p models.Product) string { return p.LastUpdated }},
		},
		Logger: opts.Logger,
	}
}

var stockStatusOptions = []string{
	string(metadata.StockNormal),
	string(metadata.StockLow),
	string(metadata.StockNearExpiry),
	string(metadata.StockOut),
	string(metadata.StockExpired),
}

func stockBinding(s *stocks.StockService, opts Options) *listview.Binding[models.Stock] {
	columns := []export.Column[models.Stock]{
		{Header: "Stock ID", Value: func(st models.Stock) string { return st.StockID }},
		{Header: "Product ID", Value: func(st models.Stock) string { return st.ProductID }},
		{Header: "Product Name", Value: func(st models.Stock) string { return stockName(st) }},
		{Header: "Total On Hand", Value: func(st models.Stock) string { return itoa(st.TotalOnHand) }},
		{Header: "Status", Value: func(st models.Stock) string { return st.Status }},
	}
	return &listview.Binding[models.Stock]{
		Key:     Stocks,
		Heading: "Stock",
		Spec: listview.Spec[models.Stock]{
			PageSize: opts.PageSize,
			Search: []listview.Field[models.Stock]{
				func(st models.Stock) string { return st.StockID },
				func(st models.Stock) string { return st.ProductID },
				stockName,
			},
			Filters: []listview.Filter[models.Stock]{{
				Name:    "status",
				Label:   "Status",
				Value:   func(st models.Stock) string { return st.Status },
				Match:   listview.NormalizedEqual,
				Options: stockStatusOptions,
			}},
		},
		Fetch:    s.List,
		FetchAll: s.ListAll,
		Columns: []listview.Column[models.Stock]{
			{Header: "Stock ID", Value: func(st models.Stock) string { return st.StockID }},
			{Header: "Product ID", Value: func(st models.Stock) string { return st.ProductID }},
			{Header: "Product Name", Value: stockName, MaxLen: 32},
			{Header: "Total On Hand", Value: func(st models.Stock) string { return itoa(st.TotalOnHand) }},
			{Header: "Status", Value: func(st models.Stock) string { return st.Status }},
		},
		CSVColumns: columns,
		Logger:     opts.Logger,
	}
}

func stockName(st models.Stock) string {
	if st.ProductName != "" {
		return st.ProductName
	}
	return st.BrandName
}

func categoryBinding(s *category.CategoryService, opts Options) *listview.Binding[models.Category] {
	return &listview.Binding[models.Category]{
		Key:     Categories,
		Heading: "Categories",
		Spec: listview.Spec[models.Category]{
			PageSize: opts.PageSize,
			Search: []listview.Field[models.Category]{
				func(c models.Category) string { return c.CategoryID },
				func(c models.Category) string { return c.Name },
				func(c models.Category) string { return c.Description },
			},
			Filters: []listview.Filter[models.Category]{
				statusFilter(func(c models.Category) string { return c.Status }),
			},
		},
		Fetch:    func(ctx context.Context) ([]models.Category, error) { return s.List(ctx, true) },
		FetchAll: func(ctx context.Context) ([]models.Category, error) { return s.ListAll(ctx, true) },
		Columns: []listview.Column[models.Category]{
			{Header: "Category ID", Value: func(c models.Category) string { return c.CategoryID }},
			{Header: "Category Name", Value: func(c models.Category) string { return c.Name }, MaxLen: 24},
			{Header: "Description", Value: func(c models.Category) string { return c.Description }, MaxLen: 40},
			{Header: "Products", Value: func(c models.Category) string { return itoa(c.ProductCount) }},
			{Header: "Status", Value: func(c models.Category) string { return c.Status }},
		},
		CSVColumns: []export.Column[models.Category]{
			{Header: "Category ID", Value: func(c models.Category) string { return c.CategoryID }},
			{Header: "Category Name", Value: func(c models.Category) string { return c.Name }},
			{Header: "Description", Value: func(c models.Category) string { return c.Description }},
			{Header: "Product Count", Value: func(c models.Category) string { return itoa(c.ProductCount) }},
			{Header: "Status", Value: func(c models.Category) string { return c.Status }},
		},
		Logger: opts.Logger,
	}
}

func supplierBinding(s *suppliers.SupplierService, opts Options) *listview.Binding[models.Supplier] {
	return &listview.Binding[models.Supplier]{
		Key:     Suppliers,
		Heading: "Suppliers",
		Spec: listview.Spec[models.Supplier]{
			PageSize: opts.PageSize,
			Search: []listview.Field[models.Supplier]{
				func(sp models.Supplier) string { return sp.SupplierName },
				func(sp models.Supplier) string { return sp.SupplierID },
				func(sp models.Supplier) string { return sp.ContactPerson },
			},
			Filters: []listview.Filter[models.Supplier]{
				statusFilter(func(sp models.Supplier) string { return sp.Status }),
			},
		},
		Fetch:    func(ctx context.Context) ([]models.Supplier, error) { return s.List(ctx, true) },
		FetchAll: func(ctx context.Context) ([]models.Supplier, error) { return s.ListAll(ctx, true) },
		Columns: []listview.Column[models.Supplier]{
			{Header: "Supplier ID", Value: func(sp models.Supplier) string { return sp.SupplierID }},
			{Header: "Supplier Name", Value: func(sp models.Supplier) string { return sp.SupplierName }, MaxLen: 28},
			{Header: "Contact Person", Value: func(sp models.Supplier) string { return sp.ContactPerson }, MaxLen: 24},
			{Header: "Phone", Value: func(sp models.Supplier) string { return sp.PhoneNumber }},
			{Header: "Email", Value: func(sp models.Supplier) string { return sp.Email }, MaxLen: 28},
			{Header: "Product", Value: func(sp models.Supplier) string { return sp.ProductName }, MaxLen: 24},
			{Header: "Status", Value: func(sp models.Supplier) string { return sp.Status }},
		},
		CSVColumns: []export.Column[models.Supplier]{
			{Header: "Supplier ID", Value: func(sp models.Supplier) string { return sp.SupplierID }},
			{Header: "Supplier Name", Value: func(sp models.Supplier) string { return sp.SupplierName }},
			{Header: "Contact Number", Value: func(sp models.Supplier) string { return sp.PhoneNumber }},
			{Header: "Email", Value: func(sp models.Supplier) string { return sp.Email }},
			{Header: "Address", Value: func(sp models.Supplier) string { return sp.Address }},
			{Header: "Status", Value: func(sp models.Supplier) string { return sp.Status }},
			{Header: "Products Supplied", Value: func(sp models.Supplier) string { return itoa(sp.ProductCount) }},
		},
		Logger: opts.Logger,
	}
}

var orderStatusOptions = []string{models.OrderPending, "partial", models.OrderReceived, models.OrderCancelled}

func orderBinding(s *orders.OrderService, opts Options) *listview.Binding[models.Order] {
	return &listview.Binding[models.Order]{
		Key:     Orders,
		Heading: "Orders",
		Spec: listview.Spec[models.Order]{
			PageSize: opts.PageSize,
			Search: []listview.Field[models.Order]{
				func(o models.Order) string { return o.OrderID },
				func(o models.Order) string { return o.OrderedBy },
			},
			Filters: []listview.Filter[models.Order]{{
				Name:    "status",
				Label:   "Status",
				Value:   func(o models.Order) string { return o.Status },
				Match:   listview.PartialOrEqual,
				Options: orderStatusOptions,
			}},
		},
		Fetch:    s.List,
		FetchAll: s.ListAll,
		Columns: []listview.Column[models.Order]{
			{Header: "Order ID", Value: func(o models.Order) string { return o.OrderID }},
			{Header: "Ordered By", Value: func(o models.Order) string { return o.OrderedBy }, MaxLen: 20},
			{Header: "Date Ordered", Value: func(o models.Order) string { return export.FormatDate(o.DateOrdered) }},
			{Header: "Items", Value: func(o models.Order) string { return itoa(len(o.Items)) }},
			{Header: "Status", Value: func(o models.Order) string { return o.Status }},
			{Header: "Date Received", Value: func(o models.Order) string { return export.FormatDate(o.DateReceived) }},
		},
		CSVColumns: []export.Column[models.Order]{
			{Header: "Order ID", Value: func(o models.Order) string { return o.OrderID }},
			{Header: "Order Date", Value: func(o models.Order) string { return o.DateOrdered }},
			{Header: "Ordered By", Value: func(o models.Order) string { return o.OrderedBy }},
			{Header: "Total Items", Value: func(o models.Order) string { return itoa(o.TotalOrdered()) }},
			{Header: "Status", Value: func(o models.Order) string { return o.Status }},
			{Header: "Remarks", Value: func(o models.Order) string { return o.Remarks }},
		},
		Report: orderReport,
		Logger: opts.Logger,
	}
}

// orderReport renders one block per order with its items indented below.
func orderReport(w io.Writer, records []models.Order, meta export.ReportMeta) error {
	sections := make([]export.Section, 0, len(records))
	for _, o := range records {
		items := export.Table{
			Headers: []string{"Order Item ID", "Product ID", "Product Name", "Qty Ordered", "Qty Received"},
			Widths:  []float64{0.2, 0.16, 0.36, 0.14, 0.14},
		}
		for _, item := range o.Items {
			items.Rows = append(items.Rows, []string{
				item.OrderItemID,
				item.ProductID,
				dash(item.Label()),
				itoa(item.QuantityOrdered),
				itoa(item.QuantityReceived),
			})
		}
		sections = append(sections, export.Section{
			Heading: "Order ID: " + o.OrderID,
			Details: export.Table{
				Headers: []string{"Ordered By", "Date Ordered", "Status", "Date Received"},
				Rows: [][]string{{
					dash(o.OrderedBy),
					export.FormatDate(o.DateOrdered),
					dash(o.Status),
					export.FormatDate(o.DateReceived),
				}},
			},
			Items:     items,
			EmptyText: "No order items",
		})
	}
	return export.WriteSectionsPDF(w, meta, sections)
}

func dash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

var transactionTypeOptions = []string{models.TransactionIn, models.TransactionOut, models.TransactionAdjust}

func transactionBinding(s *transactions.TransactionService, opts Options) *listview.Binding[models.Transaction] {
	return &listview.Binding[models.Transaction]{
		Key:     Transactions,
		Heading: "Transactions",
		Spec: listview.Spec[models.Transaction]{
			PageSize: opts.PageSize,
			Search: []listview.Field[models.Transaction]{
				func(t models.Transaction) string { return t.TransactionID },
				func(t models.Transaction) string { return t.ProductName },
				func(t models.Transaction) string { return t.BatchID },
				func(t models.Transaction) string { return t.PerformedBy },
			},
			Filters: []listview.Filter[models.Transaction]{{
				Name:    "type",
				Label:   "Type",
				Value:   func(t models.Transaction) string { return t.TransactionType },
				Options: transactionTypeOptions,
			}},
		},
		Fetch:    s.List,
		FetchAll: s.ListAll,
		Columns: []listview.Column[models.Transaction]{
			{Header: "Transaction ID", Value: func(t models.Transaction) string { return t.TransactionID }},
			{Header: "Type", Value: func(t models.Transaction) string { return metadata.TransactionLabel(t.TransactionType) }},
			{Header: "Product", Value: func(t models.Transaction) string { return t.ProductName }},
			{Header: "Batch ID", Value: func(t models.Transaction) string { return t.BatchID }},
			{Header: "Qty Change", Value: func(t models.Transaction) string { return nonZero(t.QuantityChange) }},
			{Header: "On Hand", Value: func(t models.Transaction) string { return nonZero(t.OnHand) }},
			{Header: "Remarks", Value: func(t models.Transaction) string { return t.Remarks }, MaxLen: 15},
			{Header: "Performed By", Value: func(t models.Transaction) string { return t.PerformedBy }},
			{Header: "Date", Value: func(t models.Transaction) string { return t.DateOfTransaction }},
		},
		CSVColumns: []export.Column[models.Transaction]{
			{Header: "Transaction ID", Value: func(t models.Transaction) string { return t.TransactionID }},
			{Header: "Type", Value: func(t models.Transaction) string { return t.TransactionType }},
			{Header: "Product", Value: func(t models.Transaction) string { return t.ProductName }},
			{Header: "Quantity", Value: func(t models.Transaction) string { return itoa(t.QuantityChange) }},
			{Header: "Performed By", Value: func(t models.Transaction) string { return t.PerformedBy }},
			{Header: "Date", Value: func(t models.Transaction) string { return t.DateOfTransaction }},
			{Header: "Remarks", Value: func(t models.Transaction) string { return t.Remarks }},
		},
		Report: transactionReport,
		Logger: opts.Logger,
	}
}

// nonZero renders 0 as empty, which the table shows as "-".
func nonZero(v int) string {
	if v == 0 {
		return ""
	}
	return itoa(v)
}

func transactionReport(w io.Writer, records []models.Transaction, meta export.ReportMeta) error {
	table := export.Table{
		Headers: []string{"Txn ID", "Type", "Product Name", "Batch ID", "Qty Chg", "On Hand", "Remarks", "By", "Date"},
		Widths:  []float64{0.11, 0.09, 0.19, 0.11, 0.07, 0.08, 0.15, 0.09, 0.11},
	}
	for _, t := range records {
		table.Rows = append(table.Rows, []string{
			dash(t.TransactionID),
			metadata.TransactionLabel(t.TransactionType),
			dash(t.ProductName),
			dash(t.BatchID),
			itoa(t.QuantityChange),
			itoa(t.OnHand),
			dash(t.Remarks),
			dash(t.PerformedBy),
			export.FormatDate(t.DateOfTransaction),
		})
	}
	return export.WriteTablePDF(w, meta, table)
}

func userBinding(s *users.UserService, opts Options) *listview.Binding[models.UserInfo] {
	return &listview.Binding[models.UserInfo]{
		Key:     Users,
		Heading: "Users",
		Spec: listview.Spec[models.UserInfo]{
			PageSize: opts.PageSize,
			Search: []listview.Field[models.UserInfo]{
				models.UserInfo.Name,
				func(u models.UserInfo) string { return u.User.Username },
				func(u models.UserInfo) string { return u.User.Email },
				func(u models.UserInfo) string { return u.UserInfoID },
			},
			Filters: []listview.Filter[models.UserInfo]{
				{
					Name:    "role",
					Label:   "Role",
					Value:   func(u models.UserInfo) string { return u.Role.String() },
					Options: []string{"Admin", "Staff", "Clerk"},
				},
				{
					Name:    "active",
					Label:   "Account",
					Value:   models.UserInfo.ActiveLabel,
					Options: []string{"active", "inactive"},
				},
			},
		},
		Fetch:    s.List,
		FetchAll: s.ListAll,
		Columns: []listview.Column[models.UserInfo]{
			{Header: "User ID", Value: func(u models.UserInfo) string { return u.UserInfoID }, MaxLen: 15},
			{Header: "Full Name", Value: models.UserInfo.Name, MaxLen: 25},
			{Header: "Username", Value: func(u models.UserInfo) string { return u.User.Username }, MaxLen: 18},
			{Header: "Email", Value: func(u models.UserInfo) string { return u.User.Email }, MaxLen: 28},
			{Header: "Role", Value: func(u models.UserInfo) string { return u.Role.String() }},
			{Header: "Created", Value: func(u models.UserInfo) string { return u.CreatedAtFormatted }, MaxLen: 18},
		},
		Logger: opts.Logger,
	}
}

var alertTypeOptions = []string{models.AlertLowStock, models.AlertOutOfStock, models.AlertNearExpiry, models.AlertExpired}

func alertBinding(s *alerts.AlertService, opts Options) *listview.Binding[models.Alert] {
	return &listview.Binding[models.Alert]{
		Key:     Alerts,
		Heading: "Inventory Alerts",
		Spec: listview.Spec[models.Alert]{
			PageSize: opts.PageSize,
			Search: []listview.Field[models.Alert]{
				func(a models.Alert) string { return a.ProductName },
				func(a models.Alert) string { return a.ProductID },
				func(a models.Alert) string { return a.Message },
			},
			Filters: []listview.Filter[models.Alert]{{
				Name:    "type",
				Label:   "Type",
				Value:   func(a models.Alert) string { return a.Type },
				Options: alertTypeOptions,
			}},
		},
		Fetch: s.List,
		Columns: []listview.Column[models.Alert]{
			{Header: "Type", Value: func(a models.Alert) string { return metadata.AlertLabel(a.Type) }},
			{Header: "Severity", Value: func(a models.Alert) string { return a.Severity }},
			{Header: "Product", Value: func(a models.Alert) string { return a.ProductName }, MaxLen: 32},
			{Header: "Stock ID", Value: func(a models.Alert) string { return a.StockID }},
			{Header: "Message", Value: func(a models.Alert) string { return a.Message }, MaxLen: 48},
		},
		Logger: opts.Logger,
	}
}
