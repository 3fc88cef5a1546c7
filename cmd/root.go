// Package cmd contains the command-line interface of odbccsv.
//
// Settings come from, in increasing priority: built-in defaults, the YAML
// file given with --config, the environment (ODBCCSV_*, optionally from a
// .env file) and the flags below.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// exitFunc is replaced in tests.
var exitFunc = os.Exit

type globalOptions struct {
	ConfigFile     string
	Driver         string
	MaxColumnWidth int
	TempDir        string
	Encoding       string
	RemovePartial  bool
	LogLevel       string
	Verbose        bool
	MetricsFile    string
}

var rootOpts = &globalOptions{}

var rootCmd = &cobra.Command{
	Use:   "odbccsv",
	Short: "Export the result of a SQL query to CSV",
	Long: `A CLI tool that runs one SQL query over ODBC (or another database/sql driver)
and streams the result set, in bounded batches, into a CSV file in the temp directory.`,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootOpts.ConfigFile, "config", "", "YAML config file")
	f.StringVar(&rootOpts.Driver, "driver", "", "database/sql driver: odbc, sqlserver, sqlite3, duckdb (env: ODBCCSV_DRIVER)")
	f.IntVar(&rootOpts.MaxColumnWidth, "max-column-width", 0, "maximum bytes kept per field (env: ODBCCSV_MAX_COLUMN_WIDTH)")
	f.StringVar(&rootOpts.TempDir, "temp-dir", "", "output directory (env: ODBCCSV_TEMP_DIR)")
	f.StringVar(&rootOpts.Encoding, "encoding", "", "source text encoding, e.g. utf-8, windows-1252 (env: ODBCCSV_ENCODING)")
	f.BoolVar(&rootOpts.RemovePartial, "remove-partial", false, "delete the output file when an export fails (env: ODBCCSV_REMOVE_PARTIAL)")
	f.StringVar(&rootOpts.LogLevel, "log-level", "", "debug, info, warn or error (env: ODBCCSV_LOG_LEVEL)")
	f.BoolVar(&rootOpts.Verbose, "verbose", false, "shorthand for --log-level=debug")
	f.StringVar(&rootOpts.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file after the export (env: ODBCCSV_METRICS_FILE)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		exitFunc(1)
	}
}
