package actions

import (
	"github.com/Memily89/smart-sales-memily89/config"
	"github.com/Memily89/smart-sales-memily89/logger"
	"github.com/Memily89/smart-sales-memily89/olap"
	"github.com/Memily89/smart-sales-memily89/rdbms"
	"github.com/Memily89/smart-sales-memily89/stats"
)

type CubeConfig struct {
	Log      logger.Logger
	Cfg      config.RunConfig
	UseGzip  bool
	XlsxPath string // optional spreadsheet copy of the cube.
}

// CubeResult reports where the cube landed and how big it is.
type CubeResult struct {
	CsvPath  string
	XlsxPath string
	Rows     int
}

// RunCube aggregates the warehouse into the OLAP cube and writes it out.
func RunCube(cfg *CubeConfig) (*CubeResult, error) {
	guid := NewRunGuid()
	log := cfg.Log
	log.Info("Starting cube run ", guid, " against ", cfg.Cfg.WarehouseDsn)
	details, err := rdbms.NewConnectionDetails(cfg.Cfg.WarehouseDsn)
	if err != nil {
		return nil, err
	}
	conn, err := rdbms.NewSqliteConnection(log, details)
	if err != nil {
		return nil, err
	}
	defer func() { _ = conn.Close() }()
	rows, err := olap.BuildCube(&olap.CubeConfig{
		Log:         log,
		Name:        "Cube builder",
		Conn:        conn,
		StepWatcher: stats.NewStepWatcher(log, "cube aggregate"),
	})
	if err != nil {
		return nil, err
	}
	csvPath, err := olap.WriteCubeCSV(log, rows, cfg.Cfg.CubePath, cfg.UseGzip)
	if err != nil {
		return nil, err
	}
	result := &CubeResult{CsvPath: csvPath, Rows: len(rows)}
	if cfg.XlsxPath != "" {
		if err = olap.WriteCubeXLSX(rows, cfg.XlsxPath); err != nil {
			return nil, err
		}
		result.XlsxPath = cfg.XlsxPath
	}
	log.Info("Cube run ", guid, " wrote ", len(rows), " rows to ", csvPath)
	return result, nil
}
