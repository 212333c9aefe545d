package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Memily89/smart-sales-memily89/constants"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "no-such-config.yaml"))
	if err != nil {
		t.Fatal("unexpected error: ", err)
	}
	if cfg.PreparedDir != constants.DefaultPreparedDir {
		t.Fatalf("unexpected prepared dir: %v", cfg.PreparedDir)
	}
	if cfg.BatchSize != constants.LoadBatchNumRowsDefault {
		t.Fatalf("unexpected batch size: %v", cfg.BatchSize)
	}
	if len(cfg.FilterRules[constants.TableSales]) != 3 {
		t.Fatalf("expected the default sales cleaning rules; got %v", cfg.FilterRules)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	body := `prepared_dir: /srv/prepared
warehouse_dsn: /srv/warehouse.db
batch_size: 100
filter_rules:
  sales:
    - '{">=": [{"var": "sale_amount"}, 0]}'
`
	name := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(name, []byte(body), 0644); err != nil {
		t.Fatal("unable to write config: ", err)
	}
	cfg, err := Load(name)
	if err != nil {
		t.Fatal("unexpected error: ", err)
	}
	if cfg.PreparedDir != "/srv/prepared" || cfg.WarehouseDsn != "/srv/warehouse.db" || cfg.BatchSize != 100 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	// Untouched keys keep their defaults.
	if cfg.CubePath != constants.DefaultCubePath {
		t.Fatalf("unexpected cube path: %v", cfg.CubePath)
	}
	if len(cfg.FilterRules["sales"]) != 1 {
		t.Fatalf("file filter rules not applied: %v", cfg.FilterRules)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SS_PREPARED_DIR", "/env/prepared")
	t.Setenv("SS_BATCH_SIZE", "42")
	cfg, err := Load(filepath.Join(t.TempDir(), "no-such-config.yaml"))
	if err != nil {
		t.Fatal("unexpected error: ", err)
	}
	if cfg.PreparedDir != "/env/prepared" {
		t.Fatalf("env prepared dir not applied: %v", cfg.PreparedDir)
	}
	if cfg.BatchSize != 42 {
		t.Fatalf("env batch size not applied: %v", cfg.BatchSize)
	}
}

func TestMustLoadExplicitMissingFile(t *testing.T) {
	_, err := MustLoad(filepath.Join(t.TempDir(), "no-such-config.yaml"))
	var fnf FileNotFoundError
	if !errors.As(err, &fnf) {
		t.Fatalf("expected FileNotFoundError for an explicitly named file; got %v", err)
	}
}

func TestLoadBadYaml(t *testing.T) {
	name := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(name, []byte(":\n\t-bad"), 0644); err != nil {
		t.Fatal("unable to write config: ", err)
	}
	if _, err := Load(name); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}
