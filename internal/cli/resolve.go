package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"storefront-catalog/internal/app"
)

type resolveOptions struct {
	Format string
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve ID [ID...]",
		Short: "Resolve product IDs to canonical products",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd.Context(), cmd, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.Format, "format", formatText, "Output format (text|json)")
	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts resolveOptions, ids []string) error {
	format := resolveString(cmd, opts.Format, "format", "format")
	if err := checkFormat(format); err != nil {
		return err
	}
	service, err := newAppService(ctx)
	if err != nil {
		return err
	}
	defer service.Close()

	results, err := service.Resolve(ctx, app.ResolveRequest{IDs: ids})
	if err != nil {
		return err
	}
	missing := []string{}
	out := cmd.OutOrStdout()
	if format == formatJSON {
		if err := writeJSON(out, results); err != nil {
			return err
		}
	}
	for _, result := range results {
		if !result.Found {
			missing = append(missing, result.ID)
			if format == formatText {
				fmt.Fprintf(out, "%s: not found\n", result.ID)
			}
			continue
		}
		if format == formatText {
			p := result.Product
			fmt.Fprintf(out, "%s: %s [%s] %s %.2f (%d images)\n", result.ID, p.ID, p.Brand, p.Name, p.Price, len(p.Images))
		}
	}
	if len(missing) > 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("product not found: " + strings.Join(missing, ", "))
	}
	return nil
}
