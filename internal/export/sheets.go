package export

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

var ErrMissingCredentials = errors.New("google sheets credentials are not configured")

// ValuesWriter writes a block of cells starting at a range.
type ValuesWriter interface {
	Write(ctx context.Context, spreadsheetID, writeRange string, values [][]interface{}) (int64, error)
}

type SheetsValuesWriter struct {
	service *sheets.Service
}

// NewSheetsService prefers inline credentials JSON and falls back to the credentials file.
func NewSheetsService(ctx context.Context, credentialsJSON, credentialsFile string, logger *zap.Logger) (*sheets.Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var payload []byte
	switch {
	case credentialsJSON != "":
		logger.Debug("Using Google credentials from environment")
		payload = []byte(credentialsJSON)
	case credentialsFile != "":
		logger.Debug("Using Google credentials file", zap.String("file", credentialsFile))
		b, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read google credentials: %w", err)
		}
		payload = b
	default:
		return nil, ErrMissingCredentials
	}

	credentials, err := google.CredentialsFromJSON(ctx, payload, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("load google credentials: %w", err)
	}

	client := oauth2.NewClient(ctx, credentials.TokenSource)
	service, err := sheets.New(client)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}
	return service, nil
}

func NewSheetsValuesWriter(service *sheets.Service) *SheetsValuesWriter {
	return &SheetsValuesWriter{service: service}
}

func (s *SheetsValuesWriter) Write(ctx context.Context, spreadsheetID, writeRange string, values [][]interface{}) (int64, error) {
	resp, err := s.service.Spreadsheets.Values.
		Update(spreadsheetID, writeRange, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("update spreadsheet: %w", err)
	}
	return resp.UpdatedCells, nil
}

// SheetExporter pushes a header plus rows to a spreadsheet.
type SheetExporter struct {
	writer ValuesWriter
	logger *zap.Logger
}

func NewSheetExporter(writer ValuesWriter, logger *zap.Logger) *SheetExporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SheetExporter{writer: writer, logger: logger}
}

// Export writes to "<sheet>!A1". An empty sheet name targets the first sheet.
func (e *SheetExporter) Export(ctx context.Context, spreadsheetID, sheet string, headers []string, rows [][]string) (int64, error) {
	if spreadsheetID == "" {
		return 0, errors.New("spreadsheet id is required")
	}
	writeRange := "A1"
	if sheet != "" {
		writeRange = sheet + "!A1"
	}

	values := make([][]interface{}, 0, len(rows)+1)
	values = append(values, toCells(headers))
	for _, row := range rows {
		values = append(values, toCells(row))
	}

	updated, err := e.writer.Write(ctx, spreadsheetID, writeRange, values)
	if err != nil {
		return 0, err
	}
	e.logger.Info("Exported rows to spreadsheet",
		zap.String("spreadsheet", spreadsheetID),
		zap.String("range", writeRange),
		zap.Int("rows", len(rows)),
	)
	return updated, nil
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, value := range row {
		cells[i] = value
	}
	return cells
}
