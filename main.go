// odbccsv exports the result set of one SQL query to a CSV file.
//
// Usage:
//
//	odbccsv export <connection-string> <query> [batch-size] [output-name]
//	  Run the query and write {temp-dir}/{output-name}.csv, printing
//	  {"success": bool, "msg": string, "fname": string|null} to stdout
//	odbccsv version
//	  Print the version
//
// The default driver is ODBC; --driver selects sqlserver, sqlite3 or duckdb.
package main

import (
	"odbccsv/cmd"

	_ "github.com/alexbrainman/odbc"
	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/marcboeker/go-duckdb"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	cmd.Execute()
}
