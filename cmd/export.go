package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"odbccsv/dbexport"
)

var errExportFailed = errors.New("export failed")

var exportCmd = &cobra.Command{
	Use:   "export <connection-string> <query> [batch-size] [output-name]",
	Short: "Run a query and write its result set to a CSV file",
	Long: `Run a query and write its result set to {temp-dir}/{output-name}.csv.

The result is printed to stdout as {"success": bool, "msg": string, "fname": string|null}.
A missing or invalid batch size falls back to the configured default (5000).
Without an output name a random one is generated.`,
	Example: `  odbccsv export "Driver={iSeries Access ODBC Driver};System=10.0.0.1;Uid=USR;Pwd=PWD" "SELECT * FROM LIB.TABLE" 10000 report`,
	// argument errors are part of the result envelope, not cobra usage errors
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withExporter(cmd, func(ctx context.Context, x *dbexport.Exporter, logger *zap.Logger) error {
			res := dbexport.Run(ctx, x, args)
			fmt.Fprintln(cmd.OutOrStdout(), res.JSON())
			if !res.Success {
				if hint := driverHint(res.Msg); hint != "" {
					logger.Warn(hint)
				}
				return errExportFailed
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
