package listview

import "strings"

const (
	Ellipsis    = "..."
	EmptyCell   = "-"
	placeholder = "-"
)

type Column[T any] struct {
	Header string
	Value  func(T) string
	// MaxLen truncates longer values; zero means no limit.
	MaxLen int
}

type Row struct {
	Cells       []string `json:"cells"`
	Placeholder bool     `json:"placeholder,omitempty"`
}

func Headers[T any](columns []Column[T]) []string {
	headers := make([]string, len(columns))
	for i, column := range columns {
		headers[i] = column.Header
	}
	return headers
}

// Truncate keeps the first max runes of a longer value and appends "...".
func Truncate(value string, max int) string {
	if max <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max]) + Ellipsis
}

// Render converts a page into row descriptors. With pad set, short pages are
// filled with placeholder rows up to the page size.
func Render[T any](page Page[T], columns []Column[T], pad bool) []Row {
	rows := make([]Row, 0, page.PageSize)
	for _, record := range page.Records {
		cells := make([]string, len(columns))
		for i, column := range columns {
			value := strings.TrimSpace(column.Value(record))
			if value == "" {
				value = EmptyCell
			}
			cells[i] = Truncate(value, column.MaxLen)
		}
		rows = append(rows, Row{Cells: cells})
	}

	if pad {
		for len(rows) < page.PageSize {
			cells := make([]string, len(columns))
			for i := range cells {
				cells[i] = placeholder
			}
			rows = append(rows, Row{Cells: cells, Placeholder: true})
		}
	}
	return rows
}
