package main

import (
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/vsinha/reorder/pkg/infrastructure/config"
	"github.com/vsinha/reorder/pkg/infrastructure/logging"
	"github.com/vsinha/reorder/pkg/interfaces/cli/commands"
)

// globalFlags are shared by every subcommand
type globalFlags struct {
	configFile string
	envFile    string
	verbose    bool
}

// runtime is the per-invocation state built before a subcommand runs
type runtime struct {
	settings *config.Config
	logger   *log.Logger
	closer   io.Closer
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}
	rt := &runtime{}

	root := &cobra.Command{
		Use:   "reorder",
		Short: "Reorder decisions against a reference table of average consumption",
		Long: `reorder keeps a reference table of item codes and average consumption
in a SQL store, loaded from a spreadsheet, and answers whether stock plus
a requested quantity stays within twice the average consumption.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(config.LoadOptions{
				ConfigFile: flags.configFile,
				EnvFile:    flags.envFile,
			})
			if err != nil {
				return err
			}
			if flags.verbose {
				settings.Verbose = true
			}

			logger, closer, err := logging.Setup(settings.LogFile, settings.Verbose)
			if err != nil {
				return err
			}

			rt.settings = settings
			rt.logger = logger
			rt.closer = closer
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if rt.closer != nil {
				return rt.closer.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flags.configFile, "config", "", "Path to a YAML config file")
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "Path to a dotenv file (default .env)")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")

	root.AddCommand(
		newSyncCommand(rt),
		newDecideCommand(rt),
		newItemsCommand(rt),
	)
	return root
}

func newSyncCommand(rt *runtime) *cobra.Command {
	cfg := commands.SyncConfig{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Load the input spreadsheet into the reference table",
		Example: `  reorder sync --strategy replace
  reorder sync --strategy upsert --file data/ro_items.xlsx
  reorder sync --strategy append --table ro_items_archive --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Settings = rt.settings
			cfg.Logger = rt.logger
			cfg.Out = cmd.OutOrStdout()
			return commands.NewSyncCommand(cfg).Execute(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&cfg.Strategy, "strategy", "replace", "Sync strategy: replace, append, or upsert")
	cmd.Flags().StringVar(&cfg.Table, "table", "", "Target table (default from config, ro_items)")
	cmd.Flags().StringVar(&cfg.File, "file", "", "Input file; skips the data directory lookup")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "Parse and normalize without writing")
	return cmd
}

func newDecideCommand(rt *runtime) *cobra.Command {
	cfg := commands.DecideConfig{}

	cmd := &cobra.Command{
		Use:     "decide",
		Short:   "Decide whether an item needs a reorder",
		Example: `  reorder decide --item A1 --stock 10 --requested 11`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Settings = rt.settings
			cfg.Logger = rt.logger
			cfg.Out = cmd.OutOrStdout()
			return commands.NewDecideCommand(cfg).Execute(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&cfg.ItemCode, "item", "", "Item code to evaluate")
	cmd.Flags().StringVar(&cfg.Stock, "stock", "", "Current stock quantity")
	cmd.Flags().StringVar(&cfg.Requested, "requested", "", "Requested quantity")
	cmd.Flags().StringVar(&cfg.Format, "format", "text", "Output format: text, json")
	return cmd
}

func newItemsCommand(rt *runtime) *cobra.Command {
	cfg := commands.ItemsConfig{}

	cmd := &cobra.Command{
		Use:   "items",
		Short: "Print the full reference table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Settings = rt.settings
			cfg.Logger = rt.logger
			cfg.Out = cmd.OutOrStdout()
			return commands.NewItemsCommand(cfg).Execute(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&cfg.Format, "format", "text", "Output format: text, json, csv")
	return cmd
}
