package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"malladmin/internal/page"
)

func newListCmd(opts *globalOptions) *cobra.Command {
	var (
		q      page.Query
		output string
		csv    bool
	)

	cmd := &cobra.Command{
		Use:   "list <kind>",
		Short: "Show a list page",
		Long: `Show a list page, optionally filtered.

Examples:
  malladmin list tenant --search electronics
  malladmin list payment --tab paid --locale hi
  malladmin list sale --csv > sales.csv`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: kindArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts, nil)
			if err != nil {
				return err
			}
			p, err := a.site.Page(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if csv {
				return p.ExportCSV(cmd.Context(), out, q, a.locale)
			}

			view, err := p.View(cmd.Context(), q, a.locale)
			if err != nil {
				return err
			}
			if output == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}

			fmt.Fprintln(out, view.Title)
			if len(view.Tabs) > 0 {
				tabs := make([]string, 0, len(view.Tabs))
				for _, t := range view.Tabs {
					label := fmt.Sprintf("%s (%d)", t.Label, t.Count)
					if t.Active {
						label = "[" + label + "]"
					}
					tabs = append(tabs, label)
				}
				fmt.Fprintln(out, strings.Join(tabs, "  "))
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			headers := make([]string, 0, len(view.Columns))
			for _, c := range view.Columns {
				headers = append(headers, c.Label)
			}
			fmt.Fprintln(tw, strings.Join(headers, "\t"))
			for _, r := range view.Rows {
				fmt.Fprintln(tw, strings.Join(r.Cells, "\t"))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if view.Empty != "" {
				fmt.Fprintln(out, view.Empty)
			}
			fmt.Fprintln(out, view.Summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&q.Search, "search", "", "case-insensitive search over the kind's search fields")
	cmd.Flags().StringVar(&q.Tab, "tab", "", "status tab (payment and issue lists)")
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "maximum rows (0 means all)")
	cmd.Flags().IntVar(&q.Offset, "offset", 0, "rows to skip")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format (table, json)")
	cmd.Flags().BoolVar(&csv, "csv", false, "write CSV instead of a table")
	return cmd
}
