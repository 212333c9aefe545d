package config

import (
	"fmt"
	"os"
	"path"
	"strconv"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	yaml "gopkg.in/yaml.v2"

	"github.com/Memily89/smart-sales-memily89/constants"
)

// FileNotFoundError denotes failing to find a configuration file.
type FileNotFoundError struct {
	name string
}

func (f FileNotFoundError) Error() string {
	return fmt.Sprintf("config file %q not found", f.name)
}

// RunConfig holds the per-run settings. File values override the built-in
// defaults; command-line flags override file values; environment variables
// (SS_*) sit between the two.
type RunConfig struct {
	PreparedDir  string              `mapstructure:"prepared_dir" yaml:"prepared_dir"`
	WarehouseDsn string              `mapstructure:"warehouse_dsn" yaml:"warehouse_dsn"`
	CubePath     string              `mapstructure:"cube_path" yaml:"cube_path"`
	BatchSize    int                 `mapstructure:"batch_size" yaml:"batch_size"`
	FilterRules  map[string][]string `mapstructure:"filter_rules" yaml:"filter_rules"`
}

// Defaults mirrors the historical on-disk layout and the business-rule
// cleaning the data-prep stage always applied.
func Defaults() RunConfig {
	return RunConfig{
		PreparedDir:  constants.DefaultPreparedDir,
		WarehouseDsn: constants.DefaultWarehousePath,
		CubePath:     constants.DefaultCubePath,
		BatchSize:    constants.LoadBatchNumRowsDefault,
		FilterRules: map[string][]string{
			constants.TableSales: {
				`{">": [{"var": "transaction_id"}, 0]}`,
				`{">=": [{"var": "sale_amount"}, 0]}`,
				`{"or": [{"==": [{"var": "discount_percent"}, null]}, {"<=": [0, {"var": "discount_percent"}, 100]}]}`,
			},
		},
	}
}

// DefaultPath returns ~/.smart-sales/config.yaml.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return path.Join(home, constants.ConfigDirName, constants.ConfigFileFullName), nil
}

// Load reads the YAML config at fileName over the defaults, then applies any
// SS_* environment overrides. A missing file is not an error: the defaults
// stand.
func Load(fileName string) (RunConfig, error) {
	cfg := Defaults()
	b, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnvOverrides(cfg), nil
		}
		return cfg, err
	}
	data := make(map[string]interface{})
	if err = yaml.Unmarshal(b, &data); err != nil {
		return cfg, fmt.Errorf("unable to parse config file %q: %v", fileName, err)
	}
	if err = mapstructure.Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("unable to decode config file %q: %v", fileName, err)
	}
	return applyEnvOverrides(cfg), nil
}

// MustLoad is Load against DefaultPath unless fileName is given. A file the
// user asked for by name must exist; the default file may be absent.
func MustLoad(fileName string) (RunConfig, error) {
	if fileName != "" {
		if _, err := os.Stat(fileName); err != nil {
			return Defaults(), FileNotFoundError{name: fileName}
		}
		return Load(fileName)
	}
	fileName, err := DefaultPath()
	if err != nil {
		return Defaults(), err
	}
	return Load(fileName)
}

func applyEnvOverrides(cfg RunConfig) RunConfig {
	if v := getenv("PREPARED_DIR"); v != "" {
		cfg.PreparedDir = v
	}
	if v := getenv("WAREHOUSE_DSN"); v != "" {
		cfg.WarehouseDsn = v
	}
	if v := getenv("CUBE_PATH"); v != "" {
		cfg.CubePath = v
	}
	if v := getenv("BATCH_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.BatchSize = n
		}
	}
	return cfg
}

func getenv(key string) string {
	return os.Getenv(constants.EnvVarPrefix + "_" + key)
}
