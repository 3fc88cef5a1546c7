// Package main builds odbccsv as a shared library for embedding hosts.
//
// Build:
//
//	go build -buildmode=c-shared -o libodbccsv.so ./cmd/libodbccsv
//
// Exported functions:
//
//	char *odbc_csv(char **argv, int argc);  // JSON result envelope
//	void odbc_csv_free(char *s);            // release a returned string
//
// argv is [connectionString, query, batchSize?, outputName?]. The returned
// string is always {"success": bool, "msg": string, "fname": string|null}.
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"context"
	"os"
	"sync"
	"unsafe"

	_ "github.com/alexbrainman/odbc"
	"go.uber.org/zap"

	"odbccsv/dbexport"
	"odbccsv/internal/log"
)

// The library process owns one Environment; every call opens its own connection.
var (
	env = dbexport.NewEnvironment(dbexport.DefaultDriver)

	exporterOnce sync.Once
	exporter     *dbexport.Exporter
	exporterErr  error
)

func getExporter() (*dbexport.Exporter, error) {
	exporterOnce.Do(func() {
		level := os.Getenv("ODBCCSV_LOG_LEVEL")
		if level == "" {
			level = "warn"
		}
		logger, err := log.New(level, os.Stderr)
		if err != nil {
			logger = zap.NewNop()
		}
		exporter, exporterErr = dbexport.NewExporter(env, dbexport.Options{
			Encoding: os.Getenv("ODBCCSV_ENCODING"),
			Logger:   logger,
		})
	})
	return exporter, exporterErr
}

//export odbc_csv
func odbc_csv(argv **C.char, argc C.int) *C.char {
	args := make([]string, 0, int(argc))
	if argv != nil && argc > 0 {
		for _, p := range unsafe.Slice(argv, int(argc)) {
			args = append(args, C.GoString(p))
		}
	}
	x, err := getExporter()
	if err != nil {
		return C.CString(dbexport.Failure(err).JSON())
	}
	return C.CString(dbexport.Handle(context.Background(), x, args))
}

//export odbc_csv_free
func odbc_csv_free(s *C.char) {
	C.free(unsafe.Pointer(s))
}

func main() {}
