package listview

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jayeuse/Inventory-System-sub000/internal/export"
	"go.uber.org/zap"
)

// Table is a rendered page without its record type, served by the console
// and printed by the CLI.
type Table struct {
	Resource   string            `json:"resource"`
	Title      string            `json:"title"`
	Headers    []string          `json:"headers"`
	Rows       []Row             `json:"rows"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	Total      int               `json:"total"`
	PageSize   int               `json:"page_size"`
	Search     string            `json:"search,omitempty"`
	Filters    map[string]string `json:"filters,omitempty"`
}

type FilterInfo struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Options []string `json:"options,omitempty"`
}

// Resource is a list view bound to a backend collection.
type Resource interface {
	Name() string
	Title() string
	Filters() []FilterInfo
	Table(ctx context.Context, q Query, pad bool) (Table, error)
	// Matrix returns the export headers and every matching row.
	Matrix(ctx context.Context, q Query) ([]string, [][]string, error)
	Export(ctx context.Context, q Query, format export.Format, w io.Writer) error
	// Browse returns an interactive controller seeded with q.
	Browse(q Query) Browser
}

// Browser is the type-erased controller used by interactive front ends.
type Browser interface {
	Refresh(ctx context.Context) error
	Table(pad bool) Table
	SetSearch(term string)
	SetFilter(name, value string)
	ClearFilters()
	Next()
	Prev()
	Goto(page int)
}

// ReportFunc renders a PDF for the filtered records.
type ReportFunc[T any] func(w io.Writer, records []T, meta export.ReportMeta) error

// Binding wires an entity type into a Resource.
type Binding[T any] struct {
	Key     string
	Heading string
	Spec    Spec[T]
	// Fetch is the single GET used for tables.
	Fetch FetchFunc[T]
	// FetchAll follows pagination for exports; defaults to Fetch.
	FetchAll   FetchFunc[T]
	Columns    []Column[T]
	CSVColumns []export.Column[T]
	Report     ReportFunc[T]
	Logger     *zap.Logger
	Now        func() time.Time

	guard export.Guard
}

func (b *Binding[T]) Name() string  { return b.Key }
func (b *Binding[T]) Title() string { return b.Heading }

func (b *Binding[T]) Filters() []FilterInfo {
	infos := make([]FilterInfo, len(b.Spec.Filters))
	for i, filter := range b.Spec.Filters {
		label := filter.Label
		if label == "" {
			label = filter.Name
		}
		infos[i] = FilterInfo{Name: filter.Name, Label: label, Options: filter.Options}
	}
	return infos
}

func (b *Binding[T]) logger() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}

func (b *Binding[T]) now() time.Time {
	if b.Now == nil {
		return time.Now()
	}
	return b.Now()
}

func (b *Binding[T]) table(page Page[T], q Query, pad bool) Table {
	return Table{
		Resource:   b.Key,
		Title:      b.Heading,
		Headers:    Headers(b.Columns),
		Rows:       Render(page, b.Columns, pad),
		Page:       page.Page,
		TotalPages: page.TotalPages,
		Total:      page.Total,
		PageSize:   page.PageSize,
		Search:     q.Search,
		Filters:    activeFilters(q),
	}
}

func activeFilters(q Query) map[string]string {
	active := map[string]string{}
	for name, value := range q.Filters {
		if Active(value) {
			active[name] = value
		}
	}
	if len(active) == 0 {
		return nil
	}
	return active
}

func (b *Binding[T]) Table(ctx context.Context, q Query, pad bool) (Table, error) {
	records, err := b.Fetch(ctx)
	if err != nil {
		b.logger().Error("Failed to load list", zap.String("list", b.Key), zap.Error(err))
		return Table{}, fmt.Errorf("load %s: %w", b.Key, err)
	}
	page := Paginate(b.Spec.Apply(records, q), q.Page, b.Spec.PageSize)
	return b.table(page, q, pad), nil
}

func (b *Binding[T]) filtered(ctx context.Context, q Query) ([]T, error) {
	fetch := b.FetchAll
	if fetch == nil {
		fetch = b.Fetch
	}
	records, err := fetch(ctx)
	if err != nil {
		b.logger().Error("Failed to load export data", zap.String("list", b.Key), zap.Error(err))
		return nil, fmt.Errorf("load %s: %w", b.Key, err)
	}
	return b.Spec.Apply(records, q), nil
}

func (b *Binding[T]) csvColumns() []export.Column[T] {
	if len(b.CSVColumns) > 0 {
		return b.CSVColumns
	}
	columns := make([]export.Column[T], len(b.Columns))
	for i, column := range b.Columns {
		columns[i] = export.Column[T]{Header: column.Header, Value: column.Value}
	}
	return columns
}

func (b *Binding[T]) Matrix(ctx context.Context, q Query) ([]string, [][]string, error) {
	records, err := b.filtered(ctx, q)
	if err != nil {
		return nil, nil, err
	}
	columns := b.csvColumns()
	return export.Headers(columns), export.Matrix(columns, records), nil
}

// Exporting reports whether an export of this binding is running.
func (b *Binding[T]) Exporting() bool {
	return b.guard.Running()
}

// Meta describes the active search and filters for a report header.
func (b *Binding[T]) Meta(q Query) export.ReportMeta {
	meta := export.ReportMeta{Title: b.Heading + " Report", Generated: b.now(), Search: q.Search}
	for _, filter := range b.Spec.Filters {
		if value := q.Filter(filter.Name); Active(value) {
			label := filter.Label
			if label == "" {
				label = filter.Name
			}
			meta.Filters = append(meta.Filters, export.FilterLine{Label: label, Value: value})
		}
	}
	return meta
}

// Export writes every record matching q. Exports of one binding never overlap.
func (b *Binding[T]) Export(ctx context.Context, q Query, format export.Format, w io.Writer) error {
	return b.guard.Run(func() error {
		records, err := b.filtered(ctx, q)
		if err != nil {
			return err
		}

		switch format {
		case export.FormatCSV:
			err = export.WriteCSV(w, b.csvColumns(), records)
		case export.FormatJSON:
			err = json.NewEncoder(w).Encode(records)
		case export.FormatPDF:
			if b.Report != nil {
				err = b.Report(w, records, b.Meta(q))
			} else {
				err = export.WriteTablePDF(w, b.Meta(q), b.pdfTable(records))
			}
		default:
			return fmt.Errorf("%w for %s: %s", export.ErrUnsupported, b.Key, format)
		}
		if err != nil {
			return err
		}

		b.logger().Info("Exported list",
			zap.String("list", b.Key),
			zap.String("format", string(format)),
			zap.Int("records", len(records)),
		)
		return nil
	})
}

func (b *Binding[T]) pdfTable(records []T) export.Table {
	columns := b.csvColumns()
	return export.Table{Headers: export.Headers(columns), Rows: export.Matrix(columns, records)}
}

func (b *Binding[T]) Browse(q Query) Browser {
	return &browser[T]{
		binding:    b,
		Controller: NewController(b.Key, b.Spec, b.Fetch, StateFromQuery(q), b.Logger),
	}
}

type browser[T any] struct {
	*Controller[T]
	binding *Binding[T]
}

func (br *browser[T]) Table(pad bool) Table {
	page := br.View()
	return br.binding.table(page, br.Query(), pad)
}
