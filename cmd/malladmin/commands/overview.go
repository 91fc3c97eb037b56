package commands

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newOverviewCmd(opts *globalOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Show the dashboard stat cards and recent transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), opts, nil)
			if err != nil {
				return err
			}
			o, err := a.site.Overview(cmd.Context(), a.locale)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(o)
			}

			fmt.Fprintln(out, o.Title)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, s := range o.Stats {
				fmt.Fprintf(tw, "%s\t%s\n", s.Label, s.Value)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if o.Recent == nil {
				return nil
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, o.Recent.Title)
			headers := make([]string, 0, len(o.Recent.Columns))
			for _, c := range o.Recent.Columns {
				headers = append(headers, c.Label)
			}
			fmt.Fprintln(tw, strings.Join(headers, "\t"))
			for _, r := range o.Recent.Rows {
				fmt.Fprintln(tw, strings.Join(r.Cells, "\t"))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format (table, json)")
	return cmd
}
