package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"storefront-catalog/internal/app"
)

type mappingOptions struct {
	Format string
}

func newMappingCommand() *cobra.Command {
	opts := mappingOptions{}
	cmd := &cobra.Command{
		Use:   "mapping ID",
		Short: "Show the alias set of an ID and the sources holding it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMapping(cmd.Context(), cmd, opts, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.Format, "format", formatText, "Output format (text|json)")
	return cmd
}

func runMapping(ctx context.Context, cmd *cobra.Command, opts mappingOptions, id string) error {
	format := resolveString(cmd, opts.Format, "format", "format")
	if err := checkFormat(format); err != nil {
		return err
	}
	service, err := newAppService(ctx)
	if err != nil {
		return err
	}
	defer service.Close()

	info, err := service.Mapping(ctx, app.MappingRequest{ID: id})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if format == formatJSON {
		return writeJSON(out, info)
	}
	fmt.Fprintf(out, "id: %s\n", info.OriginalID)
	fmt.Fprintf(out, "aliases: %s\n", strings.Join(info.Aliases, ", "))
	if !info.Found {
		fmt.Fprintln(out, "sources: none")
		return nil
	}
	fmt.Fprintf(out, "sources: %s\n", strings.Join(info.Sources, ", "))
	return nil
}
