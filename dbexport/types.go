package dbexport

import (
	"context"
	"database/sql"
	"reflect"
)

// Queryer is satisfied by *sql.DB, *sql.Conn and *Connection.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Cursor is the part of *sql.Rows a RowBatch fills from.
// Used for dependency injection in batch tests.
type Cursor interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// ColumnType is the part of *sql.ColumnType the schema is derived from.
type ColumnType interface {
	Name() string
	DatabaseTypeName() string
	Length() (int64, bool)
	DecimalSize() (precision, scale int64, ok bool)
	ScanType() reflect.Type
}

// RowSink receives the header and the rows of one result set.
type RowSink interface {
	WriteHeader(names []string) error
	WriteRow(fields [][]byte) error
	Flush() error
}
