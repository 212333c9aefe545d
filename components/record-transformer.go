package components

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/diegoholiveira/jsonlogic/v3"
	"github.com/shopspring/decimal"

	"github.com/Memily89/smart-sales-memily89/constants"
	"github.com/Memily89/smart-sales-memily89/logger"
	"github.com/Memily89/smart-sales-memily89/schema"
	"github.com/Memily89/smart-sales-memily89/stats"
	"github.com/Memily89/smart-sales-memily89/stream"
)

type RecordTransformerConfig struct {
	Log            logger.Logger
	Name           string
	InputChan      chan stream.Record // raw all-string records keyed by source column name.
	Header         []string           // source header as returned by the reader.
	Schema         *schema.Schema
	FilterRules    []string // jsonlogic rules; a record must evaluate true under every rule to survive.
	DedupeKey      string   // target column used for duplicate suppression; empty disables dedupe.
	TableStats     *stats.TableStats
	StepWatcher    *stats.StepWatcher
	WaitCounter    ComponentWaiter
	PanicHandlerFn PanicHandlerFunc
}

// NewRecordTransformer turns raw records into schema-conformant ones:
// source columns are renamed per the schema's rename table, columns outside
// the schema are discarded, values are coerced to their declared types and
// the per-column reject/null policy is applied on coercion failure.
// Schema columns absent from the source are carried as nulls so every output
// record's field set is exactly the schema's column set. A column with a
// declared fill value never emits a null; the fill stands in instead.
// The header is validated up front; a missing required column returns
// schema.SchemaMismatchError before any rows flow.
func NewRecordTransformer(cfg *RecordTransformerConfig) (outputChan chan stream.Record, err error) {
	if err = cfg.Schema.ValidateHeader(cfg.Header); err != nil {
		return nil, err
	}
	// Validate filter rules before launching.
	for _, rule := range cfg.FilterRules {
		if !jsonlogic.IsValid(strings.NewReader(rule)) {
			return nil, fmt.Errorf("invalid filter rule for table %v: %v", cfg.Schema.Table, rule)
		}
	}
	// Resolve the source -> target mapping once.
	type mapping struct {
		source string
		column schema.Column
	}
	mappings := make([]mapping, 0, len(cfg.Header))
	mapped := make(map[string]bool)
	for _, src := range cfg.Header {
		tgt, ok := cfg.Schema.Rename(src)
		if !ok { // not part of the schema; discard the column.
			continue
		}
		col, _ := cfg.Schema.Column(tgt)
		mappings = append(mappings, mapping{source: src, column: col})
		mapped[tgt] = true
	}
	// Schema columns the source never carries are nulled (or filled) on
	// every record.
	missing := make([]schema.Column, 0)
	for _, name := range cfg.Schema.ColumnNames() {
		if !mapped[name] {
			col, _ := cfg.Schema.Column(name)
			missing = append(missing, col)
		}
	}
	outputChan = make(chan stream.Record, constants.ChanSize)
	go func() {
		if cfg.PanicHandlerFn != nil {
			defer cfg.PanicHandlerFn()
		}
		if cfg.WaitCounter != nil {
			cfg.WaitCounter.Add()
			defer cfg.WaitCounter.Done()
		}
		defer close(outputChan)
		rowCount := int64(0)
		if cfg.StepWatcher != nil {
			cfg.StepWatcher.StartWatching(&rowCount)
			defer cfg.StepWatcher.StopWatching()
		}
		cfg.Log.Info(cfg.Name, " is running")
		seenKeys := make(map[string]bool)
	rowLoop:
		for rec := range cfg.InputChan { // for each raw row...
			out := stream.NewRecord()
			for _, m := range mappings {
				raw := rec.GetDataAsString(m.source)
				val, cerr := m.column.Coerce(cfg.Schema.Table, raw)
				if cerr != nil {
					switch m.column.OnBadValue {
					case schema.PolicyNull:
						val = nil
						if cfg.TableStats != nil {
							cfg.TableStats.IncrNulled()
						}
					default: // PolicyReject: the record is a terminal loss.
						cfg.Log.Debug(cfg.Name, " rejecting record: ", cerr)
						if cfg.TableStats != nil {
							cfg.TableStats.IncrRejected()
						}
						continue rowLoop
					}
				}
				if val == nil && m.column.Fill != nil {
					val = m.column.Fill
				}
				out.SetData(m.column.Name, val)
			}
			for _, col := range missing {
				out.SetData(col.Name, col.Fill) // Fill is nil unless declared.
			}
			// Business-rule filters.
			for _, rule := range cfg.FilterRules {
				keep, ferr := applyFilterRule(out, rule)
				if ferr != nil {
					cfg.Log.Panic(cfg.Name, " error applying filter rule: ", ferr)
				}
				if !keep {
					if cfg.TableStats != nil {
						cfg.TableStats.IncrFiltered()
					}
					continue rowLoop
				}
			}
			// Duplicate suppression: first record per key wins.
			if cfg.DedupeKey != "" {
				key := out.GetDataAsString(cfg.DedupeKey)
				if seenKeys[key] {
					if cfg.TableStats != nil {
						cfg.TableStats.IncrDuplicates()
					}
					continue rowLoop
				}
				seenKeys[key] = true
			}
			if cfg.TableStats != nil {
				cfg.TableStats.IncrAccepted()
			}
			outputChan <- out
			atomic.AddInt64(&rowCount, 1)
		}
		cfg.Log.Info(cfg.Name, " complete")
	}()
	return outputChan, nil
}

// applyFilterRule evaluates a jsonlogic rule against the record and reports
// whether the record should be kept.
func applyFilterRule(rec stream.Record, rule string) (bool, error) {
	jsonData, err := json.Marshal(jsonSafeMap(rec))
	if err != nil {
		return false, fmt.Errorf("error marshalling record before applying filter rule: %v", err)
	}
	var result bytes.Buffer
	if err = jsonlogic.Apply(strings.NewReader(rule), bytes.NewReader(jsonData), &result); err != nil {
		return false, fmt.Errorf("error applying filter rule: %v", err)
	}
	return strings.TrimSpace(result.String()) == "true", nil
}

// jsonSafeMap renders record values as JSON primitives so rules can compare
// numbers numerically (decimals marshal as quoted strings by default).
func jsonSafeMap(rec stream.Record) map[string]interface{} {
	out := make(map[string]interface{}, rec.GetDataLen())
	for k, v := range rec.GetDataMap() {
		switch val := v.(type) {
		case decimal.Decimal:
			out[k] = val.InexactFloat64()
		case time.Time:
			out[k] = val.Format(constants.DateFormatISO)
		default:
			out[k] = v
		}
	}
	return out
}
