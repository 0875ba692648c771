package cli

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/viper"

	"storefront-catalog/internal/app"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func newAppService(ctx context.Context) (*app.Service, error) {
	timeout := viper.GetDuration("database.timeout")
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return app.NewService(ctx, app.Config{
		CatalogDir:      viper.GetString("catalog_dir"),
		DatabaseDSN:     viper.GetString("database.dsn"),
		DatabaseTimeout: timeout,
		MigrateDatabase: viper.GetBool("database.migrate"),
	})
}

func checkFormat(format string) error {
	if format != formatText && format != formatJSON {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unsupported output format: " + format)
	}
	return nil
}

func writeJSON(out io.Writer, payload any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode output").
			WithCause(err)
	}
	return nil
}
