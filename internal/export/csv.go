package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

const utf8BOM = "\ufeff"

// Column maps a record to one CSV cell.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

func Headers[T any](columns []Column[T]) []string {
	headers := make([]string, len(columns))
	for i, column := range columns {
		headers[i] = column.Header
	}
	return headers
}

// Matrix renders records into string rows, header excluded.
func Matrix[T any](columns []Column[T], records []T) [][]string {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		row := make([]string, len(columns))
		for i, column := range columns {
			row[i] = column.Value(record)
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteCSV writes a BOM prefixed CSV. An empty record set still produces the header row.
func WriteCSV[T any](w io.Writer, columns []Column[T], records []T) error {
	return WriteRows(w, Headers(columns), Matrix(columns, records))
}

func WriteRows(w io.Writer, headers []string, rows [][]string) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("write csv bom: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}
