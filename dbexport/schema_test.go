package dbexport

import (
	"reflect"
	"testing"
	"time"
)

type fakeColumn struct {
	name      string
	dbType    string
	length    int64
	hasLength bool
	precision int64
	hasDec    bool
	scanType  reflect.Type
}

func (c fakeColumn) Name() string             { return c.name }
func (c fakeColumn) DatabaseTypeName() string { return c.dbType }
func (c fakeColumn) Length() (int64, bool)    { return c.length, c.hasLength }
func (c fakeColumn) DecimalSize() (int64, int64, bool) {
	return c.precision, 0, c.hasDec
}
func (c fakeColumn) ScanType() reflect.Type { return c.scanType }

func TestNewColumnSchema_Widths(t *testing.T) {
	cols := []fakeColumn{
		{name: "code", dbType: "VARCHAR", length: 10, hasLength: true, scanType: reflect.TypeOf("")},
		{name: "big", dbType: "VARCHAR", length: 5000, hasLength: true},
		{name: "wide", dbType: "NVARCHAR", length: 2000, hasLength: true},
		{name: "amount", dbType: "DECIMAL", precision: 10, hasDec: true},
		{name: "id", dbType: "INTEGER"},
		{name: "n", scanType: reflect.TypeOf(int64(0))},
		{name: "flag", scanType: reflect.TypeOf(true)},
		{name: "at", scanType: reflect.TypeOf(time.Time{})},
		{name: "ratio", dbType: "double"},
		{name: "blob"},
	}
	want := []int{40, 4096, 4096, 12, 20, 20, 5, 35, 32, 4096}

	s := NewColumnSchema(cols, 0)
	if s.Len() != len(cols) {
		t.Fatalf("Len() = %d, want %d", s.Len(), len(cols))
	}
	for i, c := range cols {
		if s.Names[i] != c.name {
			t.Errorf("column %d: name %q, want %q", i, s.Names[i], c.name)
		}
		if s.Widths[i] != want[i] {
			t.Errorf("column %s: width %d, want %d", c.name, s.Widths[i], want[i])
		}
	}
}

func TestNewColumnSchema_Limit(t *testing.T) {
	cols := []fakeColumn{
		{name: "id", dbType: "INTEGER"},
		{name: "text"},
		{name: "one", dbType: "CHAR", length: 1, hasLength: true},
	}
	s := NewColumnSchema(cols, 10)
	want := []int{10, 10, 4}
	if !reflect.DeepEqual(s.Widths, want) {
		t.Errorf("widths = %v, want %v", s.Widths, want)
	}
}
