package dbexport

import (
	"reflect"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultMaxColumnWidth is the upper bound, in bytes, of one text field.
const DefaultMaxColumnWidth = 4096

// ColumnSchema holds the column names of a result set, in projection order,
// and the text width reserved for each column in a RowBatch.
type ColumnSchema struct {
	Names  []string
	Widths []int
}

// Len returns the number of columns.
func (s ColumnSchema) Len() int { return len(s.Names) }

// NewColumnSchema derives the schema from driver metadata. Every width is
// clamped to [1, limit]; limit <= 0 means DefaultMaxColumnWidth.
func NewColumnSchema[T ColumnType](types []T, limit int) ColumnSchema {
	if limit <= 0 {
		limit = DefaultMaxColumnWidth
	}
	s := ColumnSchema{
		Names:  make([]string, len(types)),
		Widths: make([]int, len(types)),
	}
	for i, ct := range types {
		s.Names[i] = ct.Name()
		s.Widths[i] = columnWidth(ct, limit)
	}
	return s
}

var timeType = reflect.TypeOf(time.Time{})

// columnWidth is the display width of a column rendered as text.
func columnWidth(ct ColumnType, limit int) int {
	w := limit
	if n, ok := ct.Length(); ok && n > 0 && n < int64(limit) {
		// declared lengths are in characters
		w = int(n) * utf8.UTFMax
	} else if p, _, ok := ct.DecimalSize(); ok && p > 0 {
		// sign and decimal point
		w = int(p) + 2
	} else if dw, ok := typeWidth(ct.DatabaseTypeName(), ct.ScanType()); ok {
		w = dw
	}
	return min(max(w, 1), limit)
}

func typeWidth(dbType string, st reflect.Type) (int, bool) {
	switch strings.ToUpper(dbType) {
	case "BIT", "BOOL", "BOOLEAN":
		return 5, true
	case "TINYINT", "SMALLINT", "INT", "INTEGER", "BIGINT", "INT2", "INT4", "INT8":
		return 20, true
	case "REAL", "FLOAT", "DOUBLE", "FLOAT4", "FLOAT8":
		return 32, true
	case "DATE", "TIME", "DATETIME", "DATETIME2", "TIMESTAMP", "SMALLDATETIME", "DATETIMEOFFSET":
		return 35, true
	}
	if st == nil {
		return 0, false
	}
	for st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	switch st.Kind() {
	case reflect.Bool:
		return 5, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return 20, true
	case reflect.Float32, reflect.Float64:
		return 32, true
	}
	if st == timeType {
		return 35, true
	}
	return 0, false
}
