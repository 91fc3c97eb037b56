package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"malladmin/internal/form"
)

func newAddCmd(opts *globalOptions) *cobra.Command {
	var set []string

	cmd := &cobra.Command{
		Use:   "add <kind>",
		Short: "Add a record",
		Long: `Add a record through the add form. Unset fields take their defaults.

Example:
  malladmin add tenant --set name="Test Store" --set category=Electronics \
    --set location="Ground Floor, G-01" --set gstin=29AADCT4567R1Z9`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: kindArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commit(cmd, opts, args[0], "", set)
		},
	}
	cmd.Flags().StringArrayVar(&set, "set", nil, "field value as key=value (repeatable)")
	return cmd
}

func newEditCmd(opts *globalOptions) *cobra.Command {
	var set []string

	cmd := &cobra.Command{
		Use:   "edit <kind> <id>",
		Short: "Edit a record",
		Long: `Edit a record through the edit form. Only the given fields change.

Example:
  malladmin edit inventory I001 --set quantity=30`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: kindArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commit(cmd, opts, args[0], args[1], set)
		},
	}
	cmd.Flags().StringArrayVar(&set, "set", nil, "field value as key=value (repeatable)")
	return cmd
}

func newDeleteCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "delete <kind> <id>",
		Short:             "Delete a record",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: kindArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts, printNotifier(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			p, err := a.site.Page(args[0])
			if err != nil {
				return err
			}
			return p.Delete(cmd.Context(), a.locale, args[1])
		},
	}
}

func commit(cmd *cobra.Command, opts *globalOptions, kind, id string, set []string) error {
	values, err := parseSet(set)
	if err != nil {
		return err
	}
	a, err := newApp(cmd.Context(), opts, printNotifier(cmd.OutOrStdout()))
	if err != nil {
		return err
	}
	p, err := a.site.Page(kind)
	if err != nil {
		return err
	}

	out, err := p.Commit(cmd.Context(), a.locale, id, values)
	if err != nil {
		printFieldErrors(cmd.ErrOrStderr(), out)
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", out.Record.ID, p.Describe(a.locale).Title)
	return nil
}

func printFieldErrors(w io.Writer, out form.Outcome) {
	for _, fe := range out.Result.Errors() {
		fmt.Fprintf(w, "%s: %s\n", fe.Field, fe.Message)
	}
}
