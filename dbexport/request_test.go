package dbexport

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseArgs(t *testing.T) {
	cases := []struct {
		name string
		argv []string
		want ExportRequest
	}{
		{"required only", []string{"DSN=a", "SELECT 1"}, ExportRequest{ConnectionString: "DSN=a", Query: "SELECT 1"}},
		{"batch size", []string{"DSN=a", "SELECT 1", "250"}, ExportRequest{ConnectionString: "DSN=a", Query: "SELECT 1", BatchSize: 250}},
		{"unparsable batch size", []string{"DSN=a", "SELECT 1", "lots"}, ExportRequest{ConnectionString: "DSN=a", Query: "SELECT 1"}},
		{"zero batch size", []string{"DSN=a", "SELECT 1", "0"}, ExportRequest{ConnectionString: "DSN=a", Query: "SELECT 1"}},
		{"negative batch size", []string{"DSN=a", "SELECT 1", "-5"}, ExportRequest{ConnectionString: "DSN=a", Query: "SELECT 1"}},
		{"output name", []string{"DSN=a", "SELECT 1", "", "report"}, ExportRequest{ConnectionString: "DSN=a", Query: "SELECT 1", OutputName: "report"}},
		{"extra args ignored", []string{"DSN=a", "SELECT 1", "10", "r", "x"}, ExportRequest{ConnectionString: "DSN=a", Query: "SELECT 1", BatchSize: 10, OutputName: "r"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseArgs(c.argv)
			if err != nil {
				t.Fatalf("ParseArgs: %v", err)
			}
			if got != c.want {
				t.Errorf("got %+v, want %+v", got, c.want)
			}
		})
	}
}

func TestParseArgs_Errors(t *testing.T) {
	for _, argv := range [][]string{nil, {"DSN=a"}, {"", "SELECT 1"}, {"DSN=a", ""}} {
		if _, err := ParseArgs(argv); KindOf(err) != KindArgument {
			t.Errorf("ParseArgs(%q): expected KindArgument, got %v", argv, err)
		}
	}
}

func TestHandle_TooFewArgumentsDoesNotConnect(t *testing.T) {
	env := NewEnvironment("sqlmock")
	env.open = func(driver, dsn string) (*sql.DB, error) {
		t.Fatal("connection attempted for invalid arguments")
		return nil, nil
	}
	x, err := NewExporter(env, Options{})
	if err != nil {
		t.Fatalf("NewExporter: %v", err)
	}
	out := Handle(context.Background(), x, []string{"DSN=a"})

	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if got["success"] != false {
		t.Errorf("success = %v", got["success"])
	}
	if v, ok := got["fname"]; !ok || v != nil {
		t.Errorf("expected fname to be null, got %v (present=%v)", v, ok)
	}
	if msg, _ := got["msg"].(string); !strings.HasPrefix(msg, "Error: not enough arguments") {
		t.Errorf("msg = %q", msg)
	}
}

func TestResult_JSON(t *testing.T) {
	ok := Success("/tmp/report.csv").JSON()
	if ok != `{"success":true,"msg":"Success: /tmp/report.csv","fname":"/tmp/report.csv"}` {
		t.Errorf("success envelope = %s", ok)
	}
	fail := Failure(newError(KindEmptyResult, nil, "query came back empty")).JSON()
	if fail != `{"success":false,"msg":"Error: query came back empty","fname":null}` {
		t.Errorf("failure envelope = %s", fail)
	}
}
