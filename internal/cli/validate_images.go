package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"storefront-catalog/internal/app"
)

type validateImagesOptions struct {
	Format string
	Strict bool
}

func newValidateImagesCommand() *cobra.Command {
	opts := validateImagesOptions{}
	cmd := &cobra.Command{
		Use:   "validate-images [ID...]",
		Short: "Check that product images match the product family",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidateImages(cmd.Context(), cmd, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.Format, "format", formatText, "Output format (text|json)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Exit non-zero when any product fails validation")
	_ = viper.BindPFlag("validate.strict", cmd.Flags().Lookup("strict"))
	return cmd
}

func runValidateImages(ctx context.Context, cmd *cobra.Command, opts validateImagesOptions, ids []string) error {
	format := resolveString(cmd, opts.Format, "format", "format")
	if err := checkFormat(format); err != nil {
		return err
	}
	service, err := newAppService(ctx)
	if err != nil {
		return err
	}
	defer service.Close()

	result := service.ValidateImages(ctx, app.ValidateImagesRequest{IDs: ids})
	out := cmd.OutOrStdout()
	if format == formatJSON {
		if err := writeJSON(out, result.Reports); err != nil {
			return err
		}
	} else {
		for _, report := range result.Reports {
			if report.Validation.Valid {
				fmt.Fprintf(out, "ok      %s\n", report.ID)
				continue
			}
			fmt.Fprintf(out, "invalid %s: %s\n", report.ID, strings.Join(report.Validation.Issues, "; "))
			for _, recommendation := range report.Validation.Recommendations {
				fmt.Fprintf(out, "        - %s\n", recommendation)
			}
		}
		fmt.Fprintf(out, "%d checked, %d invalid\n", len(result.Reports), result.Invalid)
	}
	if result.Invalid > 0 && resolveBool(cmd, opts.Strict, "validate.strict", "strict") {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("image validation failed for " + strconv.Itoa(result.Invalid) + " products")
	}
	return nil
}
