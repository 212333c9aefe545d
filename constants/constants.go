package constants

// Pipeline

const (
	ChanSize                     = 20000
	StatsCaptureFrequencySeconds = 5
	LoadBatchNumRowsDefault      = 500
	DateFormatISO                = "2006-01-02" // storage format for DATE columns in the warehouse.
	DateFormatISORegex           = "[0-9]{4}-[0-9]{2}-[0-9]{2}"
	QuarterFormatRegex           = "^[0-9]{4}Q[1-4]$" // e.g. 2025Q1
	EnvVarPrefix                 = "SS"               // prefix for environment variables.
)

// Tables and files

const (
	TableCustomers        = "customers"
	TableProducts         = "products"
	TableSales            = "sales"
	RawFileSuffix         = ".csv"
	PreparedFileSuffix    = "_prepared.csv" // legacy name used by the original data-prep scripts.
	DefaultPreparedDir    = "data/prepared"
	DefaultRawDir         = "data/raw"
	DefaultWarehousePath  = "data/warehouse/smart_sales.db"
	DefaultCubePath       = "data/olap_cubing_outputs/multidimensional_olap_cube.csv"
	ConnectionTypeSqlite3 = "sqlite3"
)

// Config

const (
	ConfigDirName      = ".smart-sales"
	ConfigFileFullName = "config.yaml"
)
