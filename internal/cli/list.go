package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type listOptions struct {
	Format string
}

func newListCommand() *cobra.Command {
	opts := listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every available product, one per alias set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Format, "format", formatText, "Output format (text|json)")
	return cmd
}

func runList(ctx context.Context, cmd *cobra.Command, opts listOptions) error {
	format := resolveString(cmd, opts.Format, "format", "format")
	if err := checkFormat(format); err != nil {
		return err
	}
	service, err := newAppService(ctx)
	if err != nil {
		return err
	}
	defer service.Close()

	products := service.List(ctx).Products
	if format == formatJSON {
		return writeJSON(cmd.OutOrStdout(), products)
	}
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tNAME\tBRAND\tPRICE")
	for _, p := range products {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%.2f\n", p.ID, p.Name, p.Brand, p.Price)
	}
	return writer.Flush()
}
