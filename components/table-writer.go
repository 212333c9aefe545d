package components

import (
	"sync/atomic"
	"time"

	om "github.com/cevaris/ordered_map"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/Memily89/smart-sales-memily89/constants"
	"github.com/Memily89/smart-sales-memily89/logger"
	"github.com/Memily89/smart-sales-memily89/rdbms"
	"github.com/Memily89/smart-sales-memily89/schema"
	"github.com/Memily89/smart-sales-memily89/stats"
	"github.com/Memily89/smart-sales-memily89/stream"
)

type TableWriterConfig struct {
	Log            logger.Logger
	Name           string
	InputChan      chan stream.Record // schema-conformant records from the transformer.
	Schema         *schema.Schema
	Conn           rdbms.Connector
	BatchSize      int // rows per INSERT statement; defaults to constants.LoadBatchNumRowsDefault.
	TableStats     *stats.TableStats
	StepWatcher    *stats.StepWatcher
	WaitCounter    ComponentWaiter
	PanicHandlerFn PanicHandlerFunc
}

// NewTableWriter persists transformed records into the warehouse table.
// Policy is replace: the whole load happens inside one transaction that
// clears the table and inserts every batch; a crash or write failure rolls
// the table back to its previous contents, never a mixed state. Re-running
// against the same input therefore yields identical table contents.
// The terminal error (nil on success, schema.LoadError otherwise) is
// delivered on the returned channel when the input is exhausted.
func NewTableWriter(cfg *TableWriterConfig) chan error {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = constants.LoadBatchNumRowsDefault
	}
	errChan := make(chan error, 1)
	go func() {
		if cfg.PanicHandlerFn != nil {
			defer cfg.PanicHandlerFn()
		}
		if cfg.WaitCounter != nil {
			cfg.WaitCounter.Add()
			defer cfg.WaitCounter.Done()
		}
		defer close(errChan)
		rowCount := int64(0)
		if cfg.StepWatcher != nil {
			cfg.StepWatcher.StartWatching(&rowCount)
			defer cfg.StepWatcher.StopWatching()
		}
		cfg.Log.Info(cfg.Name, " is running")
		errChan <- cfg.write(&rowCount)
	}()
	return errChan
}

func (cfg *TableWriterConfig) write(rowCount *int64) error {
	table := cfg.Schema.Table
	colNames := cfg.Schema.ColumnNames()
	// Ensure the table exists before opening the load transaction.
	if _, err := cfg.Conn.Exec(cfg.Schema.SqliteDDL()); err != nil {
		return schema.LoadError{Table: table, Err: errors.Wrap(err, "create table")}
	}
	tx, err := cfg.Conn.Begin()
	if err != nil {
		return schema.LoadError{Table: table, Err: errors.Wrap(err, "begin transaction")}
	}
	// Replace policy: clear-then-insert inside the same transaction.
	if _, err = tx.Exec("delete from " + table); err != nil {
		_ = tx.Rollback()
		return schema.LoadError{Table: table, Err: errors.Wrap(err, "clear table")}
	}
	targetCols := om.NewOrderedMap()
	for _, name := range colNames {
		targetCols.Set(name, name)
	}
	gen := rdbms.NewInsertGenerator(&rdbms.SqlStatementGeneratorConfig{
		Log:         cfg.Log,
		OutputTable: table,
		TargetCols:  targetCols,
	})
	gen.InitBatch(cfg.BatchSize)
	loaded := int64(0)
	flush := func() error {
		if gen.NumRowsInBatch() == 0 {
			return nil
		}
		if _, err := tx.Exec(gen.GetStatement(), gen.GetValues()...); err != nil {
			return err
		}
		loaded += int64(gen.NumRowsInBatch())
		gen.InitBatch(cfg.BatchSize)
		return nil
	}
	for rec := range cfg.InputChan { // for each transformed row...
		values := make([]interface{}, 0, len(colNames))
		for _, name := range colNames {
			values = append(values, bindValue(rec.GetData(name)))
		}
		full, err := gen.AddValuesToBatch(values)
		if err != nil {
			_ = tx.Rollback()
			return schema.LoadError{Table: table, Err: err}
		}
		atomic.AddInt64(rowCount, 1)
		if full {
			if err = flush(); err != nil {
				_ = tx.Rollback()
				return schema.LoadError{Table: table, Err: errors.Wrap(err, "insert batch")}
			}
		}
	}
	if err = flush(); err != nil {
		_ = tx.Rollback()
		return schema.LoadError{Table: table, Err: errors.Wrap(err, "insert batch")}
	}
	if err = tx.Commit(); err != nil {
		_ = tx.Rollback()
		return schema.LoadError{Table: table, Err: errors.Wrap(err, "commit")}
	}
	if cfg.TableStats != nil {
		cfg.TableStats.AddLoaded(loaded)
	}
	cfg.Log.Info(cfg.Name, " committed ", loaded, " rows into ", table)
	return nil
}

// bindValue converts record values to driver-friendly bind values.
// Dates are stored as ISO-8601 text so they sort and compare in SQL.
func bindValue(v interface{}) interface{} {
	switch val := v.(type) {
	case time.Time:
		return val.Format(constants.DateFormatISO)
	case decimal.Decimal:
		return val.String()
	default:
		return v
	}
}
