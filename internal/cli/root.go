package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

const envPrefix = "STOREFRONT_CATALOG"

type RootConfig struct {
	ConfigFile      string
	EnvFile         string
	LogLevel        string
	CatalogDir      string
	DatabaseDSN     string
	DatabaseTimeout time.Duration
	DatabaseMigrate bool
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	root := newRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(exitCodeForError(err))
	}
}

func newRootCommand() *cobra.Command {
	cfg := RootConfig{}
	cmd := &cobra.Command{
		Use:          "storefront-catalog",
		Short:        "Resolve storefront product IDs across catalog sources",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := initConfig(cfg.ConfigFile, cfg.EnvFile); err != nil {
				return err
			}
			setupLogging(viper.GetString("log_level"))
			return nil
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfg.ConfigFile, "config", "", "Config file path")
	flags.StringVar(&cfg.EnvFile, "env-file", "", "Dotenv file to load before reading the environment")
	flags.StringVar(&cfg.LogLevel, "log-level", "info", "Log level")
	flags.StringVar(&cfg.CatalogDir, "catalog-dir", "", "Directory of catalog YAML files (default: compiled-in catalogs)")
	flags.StringVar(&cfg.DatabaseDSN, "database-dsn", "", "Postgres DSN for the database product source")
	flags.DurationVar(&cfg.DatabaseTimeout, "database-timeout", 2*time.Second, "Per-query deadline for the database source")
	flags.BoolVar(&cfg.DatabaseMigrate, "database-migrate", false, "Create the products table before serving")
	_ = viper.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("catalog_dir", flags.Lookup("catalog-dir"))
	_ = viper.BindPFlag("database.dsn", flags.Lookup("database-dsn"))
	_ = viper.BindPFlag("database.timeout", flags.Lookup("database-timeout"))
	_ = viper.BindPFlag("database.migrate", flags.Lookup("database-migrate"))

	cmd.AddCommand(newResolveCommand())
	cmd.AddCommand(newMappingCommand())
	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newValidateImagesCommand())
	cmd.AddCommand(newServeCommand())
	return cmd
}

func initConfig(configFile string, envFile string) error {
	if err := loadEnvFile(envFile); err != nil {
		return err
	}
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read config file").
				WithCause(err)
		}
		return nil
	}

	viper.SetConfigName("storefront-catalog")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/storefront-catalog")
	if err := viper.ReadInConfig(); err != nil {
		return nil
	}
	return nil
}

// loadEnvFile reads an explicit dotenv file, or ./.env when present.
// Variables already set in the environment win.
func loadEnvFile(envFile string) error {
	if envFile == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to load env file: " + envFile).
			WithCause(err)
	}
	return nil
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.DefaultContextLogger = &log.Logger
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func exitCodeForError(err error) int {
	code := errbuilder.CodeOf(err)
	message := errorMessage(err)
	switch code {
	case errbuilder.CodeInvalidArgument, errbuilder.CodeAlreadyExists:
		return 2
	case errbuilder.CodeFailedPrecondition:
		if strings.HasPrefix(message, "image validation failed") {
			return 3
		}
		return 4
	case errbuilder.CodeNotFound:
		if strings.HasPrefix(message, "product not found") {
			return 6
		}
		return 5
	case errbuilder.CodeInternal:
		return 5
	default:
		return 1
	}
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
