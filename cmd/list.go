package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jayeuse/Inventory-System-sub000/internal/listview"
	"github.com/spf13/cobra"
)

type queryFlags struct {
	search  string
	filters []string
	page    int
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.search, "search", "", "case-insensitive search term")
	cmd.Flags().StringArrayVar(&f.filters, "filter", nil, "filter as name=value, repeatable (\"all\" clears it)")
	cmd.Flags().IntVar(&f.page, "page", 1, "page number")
}

func (f *queryFlags) query() (listview.Query, error) {
	q := listview.Query{Search: f.search, Page: f.page, Filters: map[string]string{}}
	for _, raw := range f.filters {
		name, value, ok := strings.Cut(raw, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return q, fmt.Errorf("invalid filter %q, expected name=value", raw)
		}
		q.Filters[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	return q, nil
}

// resource looks up a list the signed in user may read.
func (a *app) resource(name string) (listview.Resource, error) {
	if err := a.requireSession(); err != nil {
		return nil, err
	}
	return a.services.Catalog.Resource(name)
}

func printTable(out io.Writer, table listview.Table) {
	fmt.Fprintf(out, "%s\n\n", table.Title)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(table.Headers, "\t"))
	for _, row := range table.Rows {
		fmt.Fprintln(w, strings.Join(row.Cells, "\t"))
	}
	_ = w.Flush()

	fmt.Fprintf(out, "\nPage %d of %d, %d records", table.Page, table.TotalPages, table.Total)
	if table.Search != "" {
		fmt.Fprintf(out, ", search %q", table.Search)
	}
	for name, value := range table.Filters {
		fmt.Fprintf(out, ", %s=%s", name, value)
	}
	fmt.Fprintln(out)
}

func newListCmd(a *app) *cobra.Command {
	var (
		qf     queryFlags
		noPad  bool
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "Print one page of a list (products, stocks, categories, suppliers, orders, transactions, users, alerts)",
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

			table, err := res.Table(cmd.Context(), q, !noPad)
			if err != nil {
				a.notifier.Error(fmt.Sprintf("Failed to load %s", res.Title()))
				return err
			}
			if asJSON {
				encoder := json.NewEncoder(a.out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(table)
			}
			printTable(a.out, table)
			return nil
		},
	}
	qf.register(cmd)
	cmd.Flags().BoolVar(&noPad, "no-pad", false, "do not fill short pages with placeholder rows")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the page as JSON")
	return cmd
}

const browseHelp = `n next  p previous  g N go to page  /term search  f name=value filter
c clear filters  r refresh  q quit`

func newBrowseCmd(a *app) *cobra.Command {
	var qf queryFlags
	cmd := &cobra.Command{
		Use:   "browse <resource>",
		Short: "Page through a list interactively",
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

			ctx := cmd.Context()
			browser := res.Browse(q)
			if err := browser.Refresh(ctx); err != nil {
				a.notifier.Error(fmt.Sprintf("Failed to load %s", res.Title()))
			}

			p := newPrompter(a.in, a.out)
			for {
				printTable(a.out, browser.Table(true))
				fmt.Fprintln(a.out, browseHelp)

				line, err := p.ask("> ")
				if err != nil {
					return nil
				}
				switch {
				case line == "q":
					return nil
				case line == "n":
					browser.Next()
				case line == "p":
					browser.Prev()
				case line == "c":
					browser.ClearFilters()
				case line == "r":
					if err := browser.Refresh(ctx); err != nil {
						a.notifier.Error(fmt.Sprintf("Failed to load %s", res.Title()))
					}
				case strings.HasPrefix(line, "g "):
					page, convErr := strconv.Atoi(strings.TrimSpace(line[2:]))
					if convErr != nil {
						fmt.Fprintln(a.out, "usage: g <page>")
						continue
					}
					browser.Goto(page)
				case strings.HasPrefix(line, "/"):
					browser.SetSearch(line[1:])
				case strings.HasPrefix(line, "f "):
					name, value, ok := strings.Cut(strings.TrimSpace(line[2:]), "=")
					if !ok {
						fmt.Fprintln(a.out, "usage: f name=value")
						continue
					}
					browser.SetFilter(strings.TrimSpace(name), strings.TrimSpace(value))
				default:
					fmt.Fprintf(a.out, "unknown command %q\n", line)
				}
			}
		},
	}
	qf.register(cmd)
	return cmd
}
