package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mveges/grocery/internal/bootstrap"
	"github.com/mveges/grocery/internal/infrastructure/config"
	"github.com/mveges/grocery/internal/infrastructure/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Output formats
const (
	outputTable = "table"
	outputJSON  = "json"
)

// globalFlags are shared by every subcommand
type globalFlags struct {
	configFile string
	storage    string
	sqlitePath string
	seedFile   string
	output     string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "storectl",
		Short: "Manage customers and products of the grocery store",
		Long: `storectl registers customers, adds products and shows the store overview.

Available subcommands:
  customer - register, list and show customers
  product  - add, list and show products
  store    - show store settings, counters and membership discounts`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if flags.output != outputTable && flags.output != outputJSON {
				return fmt.Errorf("--output must be %q or %q, got %q", outputTable, outputJSON, flags.output)
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "config file (default: ./config.toml or /etc/grocery/config.toml)")
	pf.StringVar(&flags.storage, "storage", "", "storage driver override: memory, sqlite or postgres")
	pf.StringVar(&flags.sqlitePath, "sqlite-path", "", "sqlite database file override")
	pf.StringVar(&flags.seedFile, "seed", "", "YAML fixture to load before running the command")
	pf.StringVarP(&flags.output, "output", "o", outputTable, "output format: table or json")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log to stderr at debug level")

	root.AddCommand(
		newCustomerCmd(flags),
		newProductCmd(flags),
		newStoreCmd(flags),
	)
	return root
}

// withApp opens the store for the duration of fn
func withApp(ctx context.Context, cmd *cobra.Command, flags *globalFlags, fn func(app *bootstrap.App) error) error {
	cfg, err := config.LoadFile(flags.configFile)
	if err != nil {
		return err
	}
	if flags.storage != "" {
		cfg.Storage.Driver = flags.storage
	}
	if flags.sqlitePath != "" {
		cfg.Storage.SQLitePath = flags.sqlitePath
	}
	cfg.Seed.File = flags.seedFile
	// The CLI has no HTTP surface to trace
	cfg.Telemetry.Enabled = false

	log := zap.NewNop()
	if flags.verbose {
		log, err = logger.New(logger.Config{Level: "debug", Format: "console", Output: "stderr"})
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
	}

	app, err := bootstrap.Build(ctx, cfg, log, bootstrap.Options{})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(context.WithoutCancel(ctx)); cerr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: closing store: %v\n", cerr)
		}
	}()

	return fn(app)
}

// render prints v as indented JSON, or calls table for the table format
func render(w io.Writer, flags *globalFlags, v any, table func(w io.Writer) error) error {
	if flags.output == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return table(w)
}
