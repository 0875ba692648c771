package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"storefront-catalog/internal/server"
	"storefront-catalog/internal/shared"
)

const defaultServerAddr = ":8089"

type serveOptions struct {
	Addr string
}

func newServeCommand() *cobra.Command {
	opts := serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog debug API and metrics over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Addr, "addr", defaultServerAddr, "Listen address")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, opts serveOptions) error {
	service, err := newAppService(ctx)
	if err != nil {
		return err
	}
	defer service.Close()

	addr := shared.FirstNonEmpty(resolveString(cmd, opts.Addr, "server.addr", "addr"), defaultServerAddr)
	return server.Serve(ctx, addr, server.NewRouter(service))
}
