package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		"ODBCCSV_DRIVER", "ODBCCSV_BATCH_SIZE", "ODBCCSV_MAX_COLUMN_WIDTH", "ODBCCSV_TEMP_DIR",
		"ODBCCSV_ENCODING", "ODBCCSV_REMOVE_PARTIAL", "ODBCCSV_LOG_LEVEL", "ODBCCSV_METRICS_FILE",
	} {
		t.Setenv(v, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("got %+v, want defaults %+v", cfg, Default())
	}
	if cfg.Driver != "odbc" || cfg.BatchSize != 5000 || cfg.MaxColumnWidth != 4096 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "odbccsv.yaml")
	content := "driver: sqlserver\nbatch_size: 1000\nencoding: windows-1252\nremove_partial: true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ODBCCSV_BATCH_SIZE", "250")
	t.Setenv("ODBCCSV_TEMP_DIR", "/var/tmp/exports")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Driver != "sqlserver" || cfg.Encoding != "windows-1252" || !cfg.RemovePartial {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.BatchSize != 250 || cfg.TempDir != "/var/tmp/exports" {
		t.Errorf("env values not applied: %+v", cfg)
	}
	if cfg.MaxColumnWidth != 4096 {
		t.Errorf("default lost: %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(bad, []byte("batch_size: [not, a, number]\n"), 0644)
	if _, err := Load(bad); err == nil {
		t.Error("expected error for malformed YAML")
	}

	t.Setenv("ODBCCSV_MAX_COLUMN_WIDTH", "wide")
	if _, err := Load(""); err == nil {
		t.Error("expected error for non-numeric env value")
	}
	t.Setenv("ODBCCSV_MAX_COLUMN_WIDTH", "")

	t.Setenv("ODBCCSV_REMOVE_PARTIAL", "maybe")
	if _, err := Load(""); err == nil {
		t.Error("expected error for non-boolean env value")
	}
}
