package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/adalundhe/spawnjoin/core/concurrency"
	"github.com/adalundhe/spawnjoin/core/config"
	"github.com/adalundhe/spawnjoin/core/storage"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	runWorkers   int
	runLogLevel  string
	runLogFormat string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Spawn the workers and wait for all of them",
	Long: `Spawn the configured number of workers. Each prints
"this is thread number <i>" to stdout. The command returns after every
worker has finished; a worker that fails is logged and otherwise ignored.

Examples:
  spawnjoin run
  spawnjoin run --workers 4
  spawnjoin run --log-level debug --log-format json`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVarP(&runWorkers, "workers", "n", concurrency.DefaultWorkers, "Number of workers to spawn")
	runCmd.Flags().StringVar(&runLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&runLogFormat, "log-format", config.LogFormatText, "Log format (text, json)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyRunFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(cfg.Log, cmd.ErrOrStderr()).With("run_id", uuid.NewString())
	logger.Info("starting workers", "workers", cfg.Runner.Workers)

	concurrency.NewFanOut(concurrency.FanOutConfig{
		Workers: cfg.Runner.Workers,
		Action:  concurrency.PrintThreadNumber(cmd.OutOrStdout()),
		Logger:  logger,
	}).Run()

	logger.Info("all workers joined", "workers", cfg.Runner.Workers)
	return nil
}

// applyRunFlags overrides config values only for flags given on the command line.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("workers") {
		cfg.Runner.Workers = runWorkers
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = runLogLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = runLogFormat
	}
}

// loadConfig returns a private copy of the effective config.
func loadConfig() (*config.Config, error) {
	dirs, err := storage.ResolveDirs()
	if err != nil {
		return nil, fmt.Errorf("resolve dirs: %w", err)
	}

	m := config.NewManager(dirs, ".")
	if err := m.LoadWithFile(configPath); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg := *m.Get()
	return &cfg, nil
}

func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if strings.EqualFold(cfg.Format, config.LogFormatJSON) {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
