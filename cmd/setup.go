package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"odbccsv/dbexport"
	"odbccsv/internal/config"
	"odbccsv/internal/log"
)

// newEnvironment is a package-level variable to allow test injection.
var newEnvironment = dbexport.NewEnvironment

// withExporter resolves the configuration, builds the logger, the process
// Environment and an Exporter, and calls fn with them and a context that is
// cancelled on SIGINT/SIGTERM. Metrics are written afterwards when requested.
func withExporter(cmd *cobra.Command, fn func(ctx context.Context, x *dbexport.Exporter, logger *zap.Logger) error) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := log.New(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer logger.Sync()

	reg := prometheus.NewRegistry()
	x, err := dbexport.NewExporter(newEnvironment(cfg.Driver), dbexport.Options{
		TempDir:        cfg.TempDir,
		BatchSize:      cfg.BatchSize,
		MaxColumnWidth: cfg.MaxColumnWidth,
		Encoding:       cfg.Encoding,
		RemovePartial:  cfg.RemovePartial,
		Logger:         logger,
		Metrics:        dbexport.NewMetrics(reg),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runErr := fn(ctx, x, logger)

	if cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, reg); err != nil {
			logger.Warn("error writing metrics file", zap.String("path", cfg.MetricsFile), zap.Error(err))
		}
	}
	return runErr
}

// resolveConfig loads the config file and environment, then applies the flags
// that were set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(rootOpts.ConfigFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("driver") {
		cfg.Driver = rootOpts.Driver
	}
	if flags.Changed("max-column-width") {
		if rootOpts.MaxColumnWidth <= 0 {
			return nil, fmt.Errorf("invalid --max-column-width %d: must be positive", rootOpts.MaxColumnWidth)
		}
		cfg.MaxColumnWidth = rootOpts.MaxColumnWidth
	}
	if flags.Changed("temp-dir") {
		cfg.TempDir = rootOpts.TempDir
	}
	if flags.Changed("encoding") {
		cfg.Encoding = rootOpts.Encoding
	}
	if flags.Changed("remove-partial") {
		cfg.RemovePartial = rootOpts.RemovePartial
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = rootOpts.LogLevel
	}
	if rootOpts.Verbose {
		cfg.LogLevel = "debug"
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = rootOpts.MetricsFile
	}
	return cfg, nil
}
