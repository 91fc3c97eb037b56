package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newSchemasCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schemas",
		Short: "List entity kinds and their fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), opts, nil)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, kind := range a.site.Kinds() {
				p, err := a.site.Page(kind)
				if err != nil {
					return err
				}
				d := p.Describe(a.locale)
				fmt.Fprintf(tw, "%s\t%s\n", d.Kind, d.Title)
				for _, f := range d.Fields {
					var flags []string
					if f.Required {
						flags = append(flags, "required")
					}
					if f.Positive {
						flags = append(flags, "positive")
					}
					for _, o := range f.Options {
						flags = append(flags, o.Value)
					}
					fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", f.Key, f.Label, f.Kind, strings.Join(flags, ","))
				}
			}
			return tw.Flush()
		},
	}
}
