package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Letter portrait, millimetres.
const (
	pageMargin    = 14.0
	bottomMargin  = 18.0
	sectionBreakY = 240.0
	rowHeight     = 7.0
)

type rgb struct{ r, g, b int }

var (
	accent      = rgb{139, 95, 191}
	accentLight = rgb{184, 169, 209}
	detailFill  = rgb{232, 226, 240}
	stripeFill  = rgb{245, 242, 249}
)

type FilterLine struct {
	Label string
	Value string
}

// ReportMeta is rendered at the top of every report.
type ReportMeta struct {
	Title     string
	Generated time.Time
	Search    string
	Filters   []FilterLine
}

// Table is a header row plus body rows. Widths may be nil for equal columns.
type Table struct {
	Headers []string
	Widths  []float64
	Rows    [][]string
}

// Section is one grouped block of a report, e.g. an order and its items.
type Section struct {
	Heading   string
	Details   Table
	Items     Table
	EmptyText string
}

type tableStyle struct {
	left     float64
	width    float64
	headFill rgb
	headText rgb
	headSize float64
	bodySize float64
	striped  bool
}

type report struct {
	pdf       *gofpdf.Fpdf
	translate func(string) string
	pageW     float64
	pageH     float64
}

func newReport(meta ReportMeta) *report {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(pageMargin, 15, pageMargin)
	pdf.SetAutoPageBreak(true, bottomMargin)
	pdf.AliasNbPages("")

	r := &report{pdf: pdf, translate: pdf.UnicodeTranslatorFromDescriptor("")}
	r.pageW, r.pageH = pdf.GetPageSize()

	pdf.SetFooterFunc(func() {
		pdf.SetY(-10)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 4, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	r.header(meta)
	return r
}

func (r *report) header(meta ReportMeta) {
	pdf := r.pdf
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 8, r.translate(meta.Title), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	generated := meta.Generated
	if generated.IsZero() {
		generated = time.Now()
	}
	pdf.CellFormat(0, 6, "Generated: "+generated.Format("January 2, 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 9)
	if meta.Search != "" {
		pdf.CellFormat(0, 5, r.translate(fmt.Sprintf("Search Filter: %q", meta.Search)), "", 1, "L", false, 0, "")
	}
	for _, line := range meta.Filters {
		pdf.CellFormat(0, 5, r.translate(fmt.Sprintf("%s Filter: %s", line.Label, line.Value)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
}

func (r *report) contentWidth() float64 {
	return r.pageW - 2*pageMargin
}

func (r *report) widths(t Table, total float64) []float64 {
	if len(t.Widths) == len(t.Headers) {
		return t.Widths
	}
	widths := make([]float64, len(t.Headers))
	for i := range widths {
		widths[i] = total / float64(len(t.Headers))
	}
	return widths
}

// fit shortens text with "..." until it fits the cell.
func (r *report) fit(text string, width float64) string {
	text = r.translate(text)
	limit := width - 2
	if r.pdf.GetStringWidth(text) <= limit {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && r.pdf.GetStringWidth(string(runes)+"...") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

func (r *report) tableHead(t Table, widths []float64, style tableStyle) {
	pdf := r.pdf
	pdf.SetX(style.left)
	pdf.SetFont("Helvetica", "B", style.headSize)
	pdf.SetFillColor(style.headFill.r, style.headFill.g, style.headFill.b)
	pdf.SetTextColor(style.headText.r, style.headText.g, style.headText.b)
	for i, header := range t.Headers {
		pdf.CellFormat(widths[i], rowHeight, r.fit(header, widths[i]), "", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
}

func (r *report) table(t Table, style tableStyle) {
	pdf := r.pdf
	widths := r.widths(t, style.width)
	r.tableHead(t, widths, style)

	pdf.SetTextColor(40, 40, 40)
	for index, row := range t.Rows {
		if pdf.GetY()+rowHeight > r.pageH-bottomMargin {
			pdf.AddPage()
			r.tableHead(t, widths, style)
			pdf.SetTextColor(40, 40, 40)
		}
		pdf.SetFont("Helvetica", "", style.bodySize)
		fill := style.striped && index%2 == 1
		if fill {
			pdf.SetFillColor(stripeFill.r, stripeFill.g, stripeFill.b)
		}
		pdf.SetX(style.left)
		for i := range t.Headers {
			value := ""
			if i < len(row) {
				value = row[i]
			}
			pdf.CellFormat(widths[i], rowHeight-1, r.fit(value, widths[i]), "", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.SetTextColor(0, 0, 0)
}

func (r *report) section(s Section) {
	pdf := r.pdf
	if pdf.GetY() > sectionBreakY {
		pdf.AddPage()
	}
	width := r.contentWidth()
	startY := pdf.GetY()
	startPage := pdf.PageNo()

	pdf.SetFillColor(accent.r, accent.g, accent.b)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetX(pageMargin)
	pdf.CellFormat(width, 8, r.fit(s.Heading, width), "", 1, "L", true, 0, "")

	r.table(s.Details, tableStyle{
		left: pageMargin, width: width,
		headFill: detailFill, headText: rgb{30, 30, 30},
		headSize: 9, bodySize: 8,
	})
	pdf.Ln(2)

	if len(s.Items.Rows) > 0 {
		r.table(s.Items, tableStyle{
			left: pageMargin + 10, width: width - 10,
			headFill: accentLight, headText: rgb{255, 255, 255},
			headSize: 8, bodySize: 7, striped: true,
		})
		pdf.Ln(3)
	} else {
		pdf.SetTextColor(100, 100, 100)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetX(pageMargin + 10)
		pdf.CellFormat(0, 8, r.translate(s.EmptyText), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	// the border only makes sense when the block did not spill onto a new page
	if pdf.PageNo() == startPage {
		pdf.SetDrawColor(accent.r, accent.g, accent.b)
		pdf.SetLineWidth(0.5)
		pdf.Rect(pageMargin, startY, width, pdf.GetY()-startY, "D")
	}
	pdf.Ln(5)
}

func (r *report) output(w io.Writer) error {
	if err := r.pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := r.pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// WriteTablePDF renders a single striped table report.
func WriteTablePDF(w io.Writer, meta ReportMeta, t Table) error {
	r := newReport(meta)
	r.table(t, tableStyle{
		left: pageMargin, width: r.contentWidth(),
		headFill: accent, headText: rgb{255, 255, 255},
		headSize: 10, bodySize: 9, striped: true,
	})
	if len(t.Rows) == 0 {
		r.pdf.SetFont("Helvetica", "I", 9)
		r.pdf.CellFormat(0, 8, "No records found", "", 1, "C", false, 0, "")
	}
	return r.output(w)
}

// WriteSectionsPDF renders one bordered block per section.
func WriteSectionsPDF(w io.Writer, meta ReportMeta, sections []Section) error {
	r := newReport(meta)
	for _, s := range sections {
		if s.EmptyText == "" {
			s.EmptyText = "No items"
		}
		r.section(s)
	}
	if len(sections) == 0 {
		r.pdf.SetFont("Helvetica", "I", 9)
		r.pdf.CellFormat(0, 8, "No records found", "", 1, "C", false, 0, "")
	}
	return r.output(w)
}

// FormatDate renders an ISO date as "January 2, 2006"; anything unparsable is returned as is.
func FormatDate(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || value == "-" {
		return "-"
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.Format("January 2, 2006")
		}
	}
	return value
}
