package components

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/Memily89/smart-sales-memily89/constants"
	"github.com/Memily89/smart-sales-memily89/logger"
	"github.com/Memily89/smart-sales-memily89/schema"
	"github.com/Memily89/smart-sales-memily89/stats"
	"github.com/Memily89/smart-sales-memily89/stream"
)

type CsvFileReaderConfig struct {
	Log            logger.Logger
	Name           string
	Dir            string // prepared-data directory holding <table>.csv files.
	Table          string // table name used to find the source file by convention.
	TableStats     *stats.TableStats
	StepWatcher    *stats.StepWatcher
	WaitCounter    ComponentWaiter
	PanicHandlerFn PanicHandlerFunc
}

// NewCsvFileReader discovers the source CSV for cfg.Table in cfg.Dir and
// emits one raw (all-string) stream.Record per data row onto outputChan.
// The header row is returned synchronously so the downstream transformer can
// validate it before any rows flow.
// Inputs are fixed UTF-8, comma-delimited with a header row.
func NewCsvFileReader(cfg *CsvFileReaderConfig) (header []string, outputChan chan stream.Record, err error) {
	if _, err = os.Stat(cfg.Dir); err != nil {
		return nil, nil, schema.SourceNotFoundError{Path: cfg.Dir, Err: err}
	}
	fileName, err := findSourceFile(cfg.Dir, cfg.Table)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(fileName)
	if err != nil {
		return nil, nil, schema.SourceNotFoundError{Path: fileName, Err: err}
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // short rows are a record-level decision, not a file-level abort.
	rawHeader, err := r.Read()
	if err != nil {
		_ = f.Close()
		return nil, nil, schema.SourceNotFoundError{Path: fileName, Err: err}
	}
	header = cleanHeader(rawHeader)
	outputChan = make(chan stream.Record, constants.ChanSize)
	go func() {
		if cfg.PanicHandlerFn != nil {
			defer cfg.PanicHandlerFn()
		}
		if cfg.WaitCounter != nil {
			cfg.WaitCounter.Add()
			defer cfg.WaitCounter.Done()
		}
		defer func() {
			_ = f.Close()
			close(outputChan)
		}()
		rowCount := int64(0)
		if cfg.StepWatcher != nil {
			cfg.StepWatcher.StartWatching(&rowCount)
			defer cfg.StepWatcher.StopWatching()
		}
		cfg.Log.Info(cfg.Name, " is running; reading ", fileName)
		for { // for each row of input...
			fields, err := r.Read()
			if err == io.EOF {
				break
			}
			if err != nil { // a structurally broken line is terminal for that record only.
				cfg.Log.Warn(cfg.Name, " skipping malformed CSV line: ", err)
				if cfg.TableStats != nil {
					cfg.TableStats.IncrRead()
					cfg.TableStats.IncrRejected()
				}
				continue
			}
			rec := stream.NewRecord()
			for idx, name := range header {
				if idx < len(fields) {
					rec.SetData(name, fields[idx])
				} else { // short row: missing trailing fields are empty.
					rec.SetData(name, "")
				}
			}
			if cfg.TableStats != nil {
				cfg.TableStats.IncrRead()
			}
			outputChan <- rec
			atomic.AddInt64(&rowCount, 1)
		}
		cfg.Log.Info(cfg.Name, " complete")
	}()
	return header, outputChan, nil
}

// findSourceFile locates <dir>/<table>.csv, falling back to the legacy
// <table>_prepared.csv name written by the original data-prep scripts.
func findSourceFile(dir, table string) (string, error) {
	candidates := []string{
		filepath.Join(dir, table+constants.RawFileSuffix),
		filepath.Join(dir, table+constants.PreparedFileSuffix),
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", schema.SourceNotFoundError{Path: candidates[0]}
}

// cleanHeader trims whitespace and a possible UTF-8 BOM from header names.
func cleanHeader(header []string) []string {
	out := make([]string, len(header))
	for idx, h := range header {
		h = strings.TrimPrefix(h, "\uFEFF")
		out[idx] = strings.TrimSpace(h)
	}
	return out
}
