package stats

import (
	"sync/atomic"

	"github.com/Memily89/smart-sales-memily89/logger"
)

// TableStats counts record outcomes for one table's ETL pass.
// Counters are atomic since the reader and transformer run in separate
// goroutines within a table's pipeline.
type TableStats struct {
	Table      string
	read       int64 // raw records read from the source file.
	accepted   int64 // records that passed coercion and filters.
	rejected   int64 // records dropped by a reject-policy coercion failure.
	nulled     int64 // fields substituted with null by a null-policy failure.
	filtered   int64 // records dropped by a configured filter rule.
	duplicates int64 // records dropped by key-based dedupe.
	loaded     int64 // rows committed to the warehouse.
}

func NewTableStats(table string) *TableStats {
	return &TableStats{Table: table}
}

func (t *TableStats) IncrRead()       { atomic.AddInt64(&t.read, 1) }
func (t *TableStats) IncrAccepted()   { atomic.AddInt64(&t.accepted, 1) }
func (t *TableStats) IncrRejected()   { atomic.AddInt64(&t.rejected, 1) }
func (t *TableStats) IncrNulled()     { atomic.AddInt64(&t.nulled, 1) }
func (t *TableStats) IncrFiltered()   { atomic.AddInt64(&t.filtered, 1) }
func (t *TableStats) IncrDuplicates() { atomic.AddInt64(&t.duplicates, 1) }

func (t *TableStats) AddLoaded(n int64) { atomic.AddInt64(&t.loaded, n) }

func (t *TableStats) Read() int64       { return atomic.LoadInt64(&t.read) }
func (t *TableStats) Accepted() int64   { return atomic.LoadInt64(&t.accepted) }
func (t *TableStats) Rejected() int64   { return atomic.LoadInt64(&t.rejected) }
func (t *TableStats) Nulled() int64     { return atomic.LoadInt64(&t.nulled) }
func (t *TableStats) Filtered() int64   { return atomic.LoadInt64(&t.filtered) }
func (t *TableStats) Duplicates() int64 { return atomic.LoadInt64(&t.duplicates) }
func (t *TableStats) Loaded() int64     { return atomic.LoadInt64(&t.loaded) }

// LogSummary emits the per-table record counts required for observability of
// accept/reject decisions.
func (t *TableStats) LogSummary(log logger.Logger) {
	log.Info("table ", t.Table,
		": read=", t.Read(),
		" accepted=", t.Accepted(),
		" rejected=", t.Rejected(),
		" nulledFields=", t.Nulled(),
		" filtered=", t.Filtered(),
		" duplicates=", t.Duplicates(),
		" loaded=", t.Loaded())
}
