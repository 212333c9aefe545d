package actions

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/Memily89/smart-sales-memily89/components"
	"github.com/Memily89/smart-sales-memily89/config"
	"github.com/Memily89/smart-sales-memily89/constants"
	"github.com/Memily89/smart-sales-memily89/logger"
	"github.com/Memily89/smart-sales-memily89/rdbms"
	"github.com/Memily89/smart-sales-memily89/schema"
	"github.com/Memily89/smart-sales-memily89/stats"
)

type LoadConfig struct {
	Log    logger.Logger
	Cfg    config.RunConfig
	Tables []string // subset of table names to load; empty means all.
}

// LoadResult reports per-table outcome counts for the run.
type LoadResult struct {
	Tables map[string]*stats.TableStats
}

// RunLoad extracts each prepared CSV, transforms it against its schema and
// loads it into the warehouse. Tables are independent: a failure aborts that
// table's pipeline and leaves its previous warehouse contents intact, while
// the remaining tables still run. The first error is returned after all
// tables complete.
func RunLoad(cfg *LoadConfig) (*LoadResult, error) {
	guid := NewRunGuid()
	log := cfg.Log
	log.Info("Starting load run ", guid, " from ", cfg.Cfg.PreparedDir)
	details, err := rdbms.NewConnectionDetails(cfg.Cfg.WarehouseDsn)
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(details.Dsn); dir != "." && details.Dsn != ":memory:" {
		if err = os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrap(err, "create warehouse directory")
		}
	}
	conn, err := rdbms.NewSqliteConnection(log, details)
	if err != nil {
		return nil, err
	}
	defer func() { _ = conn.Close() }()

	result := &LoadResult{Tables: make(map[string]*stats.TableStats)}
	var firstErr error
	for _, s := range schema.All() {
		if !tableWanted(cfg.Tables, s.Table) {
			continue
		}
		ts := stats.NewTableStats(s.Table)
		result.Tables[s.Table] = ts
		if err := loadTable(log, cfg.Cfg, conn, s, ts); err != nil {
			log.Error("load of table ", s.Table, " failed: ", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		ts.LogSummary(log)
	}
	log.Info("Load run ", guid, " complete")
	return result, firstErr
}

// loadTable runs the reader -> transformer -> writer chain for one table.
func loadTable(log logger.Logger, cfg config.RunConfig, conn rdbms.Connector, s *schema.Schema, ts *stats.TableStats) error {
	panicErrs := make(chan error, 1)
	panicHandler := GetPanicHandlerFunc(log, panicErrs)
	waiter := &waitCounter{}
	header, rawChan, err := components.NewCsvFileReader(&components.CsvFileReaderConfig{
		Log:            log,
		Name:           "CSV reader for " + s.Table,
		Dir:            cfg.PreparedDir,
		Table:          s.Table,
		TableStats:     ts,
		StepWatcher:    stats.NewStepWatcher(log, s.Table+" extract"),
		WaitCounter:    waiter,
		PanicHandlerFn: panicHandler,
	})
	if err != nil {
		return err
	}
	recordChan, err := components.NewRecordTransformer(&components.RecordTransformerConfig{
		Log:            log,
		Name:           "Transformer for " + s.Table,
		InputChan:      rawChan,
		Header:         header,
		Schema:         s,
		FilterRules:    cfg.FilterRules[s.Table],
		DedupeKey:      schema.DedupeKeys[s.Table],
		TableStats:     ts,
		StepWatcher:    stats.NewStepWatcher(log, s.Table+" transform"),
		WaitCounter:    waiter,
		PanicHandlerFn: panicHandler,
	})
	if err != nil {
		// Drain the reader so its goroutine can finish.
		go func() {
			for range rawChan {
			}
		}()
		return err
	}
	err = <-components.NewTableWriter(&components.TableWriterConfig{
		Log:            log,
		Name:           "Table writer for " + s.Table,
		InputChan:      recordChan,
		Schema:         s,
		Conn:           conn,
		BatchSize:      cfg.BatchSize,
		TableStats:     ts,
		StepWatcher:    stats.NewStepWatcher(log, s.Table+" load"),
		WaitCounter:    waiter,
		PanicHandlerFn: panicHandler,
	})
	if err != nil {
		// Drain so the upstream goroutines can finish before we return.
		go func() {
			for range recordChan {
			}
		}()
	}
	waiter.Wait()
	if err != nil {
		return err
	}
	select {
	case perr := <-panicErrs:
		return perr
	default:
	}
	return nil
}

func tableWanted(wanted []string, table string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		if strings.EqualFold(w, table) {
			return true
		}
	}
	return false
}

// KnownTables lists the loadable table names for flag validation.
func KnownTables() []string {
	return []string{constants.TableCustomers, constants.TableProducts, constants.TableSales}
}
