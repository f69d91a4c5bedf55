package export

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

type Format string

const (
	FormatCSV    Format = "csv"
	FormatPDF    Format = "pdf"
	FormatJSON   Format = "json"
	FormatSheets Format = "sheets"
)

var (
	ErrExportInProgress = errors.New("an export is already running")
	ErrUnsupported      = errors.New("export format not supported")
)

func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatSheets:
		return FormatSheets, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupported, value)
	}
}

// ContentType is the MIME type served for a generated file.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// Filename builds "<name>_YYYY-MM-DD.<ext>".
func Filename(name string, format Format, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", name, now.Format("2006-01-02"), format)
}

// Guard allows a single export at a time; a second Run while one is active
// fails with ErrExportInProgress instead of waiting.
type Guard struct {
	running atomic.Bool
}

func (g *Guard) Run(fn func() error) error {
	if !g.running.CompareAndSwap(false, true) {
		return ErrExportInProgress
	}
	defer g.running.Store(false)
	return fn()
}

func (g *Guard) Running() bool {
	return g.running.Load()
}
