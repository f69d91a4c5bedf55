package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jayeuse/Inventory-System-sub000/internal/config"
	"github.com/jayeuse/Inventory-System-sub000/internal/core/container"
	"github.com/jayeuse/Inventory-System-sub000/internal/core/logger"
	"github.com/jayeuse/Inventory-System-sub000/internal/currency"
	"github.com/jayeuse/Inventory-System-sub000/internal/notify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is the state shared by every subcommand, filled in before each run.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	services *container.Container
	notifier *notify.Notifier
	currency currency.Code
	out      io.Writer
	in       io.Reader
}

type rootFlags struct {
	apiURL      string
	sessionFile string
	pageSize    int
	currency    string
	debug       bool
}

func (a *app) setup(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flags.apiURL != "" {
		cfg.APIURL = flags.apiURL
	}
	if flags.sessionFile != "" {
		cfg.SessionFile = flags.sessionFile
	}
	if flags.pageSize > 0 {
		cfg.PageSize = flags.pageSize
	}
	if flags.debug {
		cfg.LogLevel = "debug"
	}

	a.cfg = cfg
	a.logger = logger.NewLogger(cfg.LogLevel)
	a.out = cmd.OutOrStdout()
	a.in = cmd.InOrStdin()

	a.currency = currency.LoadPreference(cfg.PreferencesFile)
	if flags.currency != "" {
		if a.currency, err = currency.Parse(flags.currency); err != nil {
			return err
		}
	}

	a.notifier = notify.Default()
	a.notifier.SetSink(notify.NewWriterSink(cmd.ErrOrStderr()))
	a.notifier.SetPrompter(&notify.TerminalPrompter{In: a.in, Out: cmd.ErrOrStderr()})

	a.services, err = container.New(cfg, a.currency, a.logger)
	if err != nil {
		return err
	}
	if err := a.services.Client.LoadSession(cfg.SessionFile); err != nil {
		a.logger.Warn("Ignoring unreadable session file", zap.String("path", cfg.SessionFile), zap.Error(err))
	}
	return nil
}

func (a *app) requireSession() error {
	if !a.services.Client.HasSession() {
		return fmt.Errorf("not signed in to %s, run `pharmconsole login` first", a.cfg.APIURL)
	}
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:           "pharmconsole",
		Short:         "Pharmacy inventory console",
		Long:          `Browse, export and maintain the pharmacy inventory backend from the terminal, or serve it to browsers with "serve".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, flags)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.apiURL, "api-url", "", "inventory backend base URL (env INVENTORY_API_URL)")
	pf.StringVar(&flags.sessionFile, "session-file", "", "where the backend session cookies are kept (env SESSION_FILE)")
	pf.IntVar(&flags.pageSize, "page-size", 0, "rows per page (env PAGE_SIZE)")
	pf.StringVar(&flags.currency, "currency", "", "display currency for prices, overrides the saved preference")
	pf.BoolVar(&flags.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newListCmd(a),
		newBrowseCmd(a),
		newExportCmd(a),
		newBackupCmd(a),
		newArchiveCmd(a, true),
		newArchiveCmd(a, false),
		newReceiveCmd(a),
		newAlertsCmd(a),
		newDashboardCmd(a),
		newCurrencyCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

func Execute(ctx context.Context) {
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
