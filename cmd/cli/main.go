package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"slotsense/internal/analysis"
	"slotsense/internal/config"
	"slotsense/internal/logging"
	"slotsense/internal/rates"
)

// cli carries what every subcommand needs once the root pre-run has loaded it
type cli struct {
	cfg    *config.Config
	logger *zap.Logger
	engine *analysis.Engine
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	app := &cli{}

	rootCmd := &cobra.Command{
		Use:           "slotsense",
		Short:         "Estimate a slot machine's setting from session counters",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(app),
		newScenariosCmd(app),
		newClassifyCmd(),
		newGenerateCmd(),
		newExportCmd(app),
		newImportCmd(app),
		newReportCmd(),
		newHistoryCmd(app),
		newBatchCmd(app),
		newMigrateCmd(app),
	)
	return rootCmd
}

func (a *cli) setup() error {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger.Named("cli")
	a.engine = analysis.NewEngine(rates.Default(),
		analysis.WithLogger(a.logger),
		analysis.WithBatchWorkers(cfg.Analysis.BatchWorkers))
	return nil
}
