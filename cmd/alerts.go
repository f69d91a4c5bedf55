package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/jayeuse/Inventory-System-sub000/internal/alerts"
	"github.com/jayeuse/Inventory-System-sub000/internal/currency"
	"github.com/jayeuse/Inventory-System-sub000/internal/dashboard"
	"github.com/jayeuse/Inventory-System-sub000/pkg/metadata"
	"github.com/jayeuse/Inventory-System-sub000/pkg/models"
	"github.com/spf13/cobra"
)

func printAlerts(out io.Writer, resp *models.AlertsResponse, alertType string) {
	badge := alerts.BadgeText(resp.Summary.Total)
	if badge == "" {
		badge = "0"
	}
	fmt.Fprintf(out, "[%s] Alerts: %d critical, %d warning (%s)\n",
		badge, resp.Summary.Critical, resp.Summary.Warning, time.Now().Format("15:04:05"))

	filtered := alerts.Filter(resp.Alerts, alertType)
	if len(filtered) == 0 {
		fmt.Fprintln(out, "No alerts")
		return
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Type\tSeverity\tProduct\tMessage")
	for _, alert := range filtered {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", metadata.AlertLabel(alert.Type), alert.Severity, alert.ProductName, alert.Message)
	}
	_ = w.Flush()
}

func newAlertsCmd(a *app) *cobra.Command {
	var (
		alertType string
		watch     bool
		interval  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Show stock and expiry alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			ctx := cmd.Context()
			deliver := func(resp *models.AlertsResponse) { printAlerts(a.out, resp, alertType) }

			if !watch {
				resp, err := a.services.Alerts.Fetch(ctx)
				if err != nil {
					return err
				}
				deliver(resp)
				return nil
			}

			if interval <= 0 {
				interval = a.cfg.AlertsInterval
			}
			alerts.NewWatcher(a.services.Alerts, interval, a.logger).Run(ctx, deliver)
			return nil
		},
	}
	cmd.Flags().StringVar(&alertType, "type", alerts.FilterAll, "low_stock, out_of_stock, near_expiry, expired or all")
	cmd.Flags().BoolVar(&watch, "watch", false, "keep refreshing until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", 0, "refresh interval for --watch (env ALERTS_INTERVAL)")
	return cmd
}

func newDashboardCmd(a *app) *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Print the dashboard figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			snapshot := a.services.Dashboard.Snapshot(cmd.Context(), top)

			fmt.Fprintf(a.out, "Products: %d   Pending orders: %d\n\n", snapshot.Stats.TotalProducts, snapshot.Stats.PendingOrders)

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "Category\tProducts")
			for _, category := range snapshot.Categories {
				fmt.Fprintf(w, "%s\t%d\n", category.CategoryName, category.Count)
			}
			fmt.Fprintln(w, "\nTop supplier\tProducts supplied")
			for _, supplier := range snapshot.TopSuppliers {
				fmt.Fprintf(w, "%s\t%d\n", supplier.SupplierName, supplier.ProductsSupplied)
			}
			status := snapshot.StockStatus
			fmt.Fprintln(w, "\nStock status\tCount")
			fmt.Fprintf(w, "Normal\t%d\nLow stock\t%d\nOut of stock\t%d\nNear expiry\t%d\nExpired\t%d\n",
				status.Normal, status.LowStock, status.OutOfStock, status.NearExpiry, status.Expired)
			_ = w.Flush()

			for section, message := range snapshot.Errors {
				a.notifier.Warning(fmt.Sprintf("%s unavailable: %s", section, message))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&top, "top", dashboard.DefaultTopSuppliers, "number of suppliers to rank")
	return cmd
}

func newCurrencyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "currency [code]",
		Short: "Show or change the display currency",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 1 {
				code, err := currency.SavePreference(a.cfg.PreferencesFile, args[0])
				if err != nil {
					return err
				}
				c := currency.Lookup(code)
				a.notifier.Success(fmt.Sprintf("Currency changed to %s (%s)", c.Name, currency.RateDisplay(code)))
				return nil
			}

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			for _, c := range currency.Available() {
				marker := " "
				if c.Code == a.currency {
					marker = "*"
				}
				fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\n", marker, c.Code, c.Symbol, c.Name, currency.RateDisplay(c.Code))
			}
			return w.Flush()
		},
	}
}
