package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/jayeuse/Inventory-System-sub000/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		qf            queryFlags
		format        string
		output        string
		spreadsheetID string
		sheet         string
	)
	cmd := &cobra.Command{
		Use:   "export <resource>",
		Short: "Export every matching record as csv, pdf, json or to a Google spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.resource(args[0])
			if err != nil {
				return err
			}
			q, err := qf.query()
			if err != nil {
				return err
			}
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if f == export.FormatSheets {
				headers, rows, err := res.Matrix(ctx, q)
				if err != nil {
					return err
				}
				service, err := export.NewSheetsService(ctx, a.cfg.SheetsCredentialsJSON, a.cfg.SheetsCredentialsFile, a.logger)
				if err != nil {
					return err
				}
				updated, err := export.NewSheetExporter(export.NewSheetsValuesWriter(service), a.logger).
					Export(ctx, spreadsheetID, sheet, headers, rows)
				if err != nil {
					a.notifier.Error("Failed to export to spreadsheet")
					return err
				}
				a.notifier.Success(fmt.Sprintf("Exported %d rows (%d cells updated)", len(rows), updated))
				return nil
			}

			if output == "" {
				output = export.Filename(res.Name(), f, time.Now())
			}
			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := res.Export(ctx, q, f, file); err != nil {
				file.Close()
				_ = os.Remove(output)
				a.notifier.Error(fmt.Sprintf("Failed to export %s", res.Title()))
				return err
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			a.notifier.Success(fmt.Sprintf("%s exported to %s", res.Title(), output))
			return nil
		},
	}
	qf.register(cmd)
	cmd.Flags().StringVar(&format, "format", string(export.FormatCSV), "csv, pdf, json or sheets")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <resource>_<date>.<format>)")
	cmd.Flags().StringVar(&spreadsheetID, "spreadsheet-id", "", "target spreadsheet for --format sheets")
	cmd.Flags().StringVar(&sheet, "sheet", "", "target sheet name for --format sheets")
	return cmd
}

func newBackupCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write products, suppliers, categories, stock and orders to one JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			now := time.Now()
			backup := export.BuildBackup(cmd.Context(), a.services.BackupSources(), now, a.logger)

			if output == "" {
				output = export.Filename("inventory_backup", export.FormatJSON, now)
			}
			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			defer file.Close()
			if err := export.WriteJSON(file, backup); err != nil {
				return err
			}
			a.notifier.Success(fmt.Sprintf("Backup of %d records saved to %s", backup.Summary.Total(), output))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default inventory_backup_<date>.json)")
	return cmd
}
