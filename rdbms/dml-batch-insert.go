package rdbms

import (
	"fmt"
	"strings"

	om "github.com/cevaris/ordered_map"
	"github.com/pkg/errors"

	"github.com/Memily89/smart-sales-memily89/logger"
)

// SqlStatementGeneratorConfig configures batch SQL generation for one table.
type SqlStatementGeneratorConfig struct {
	Log         logger.Logger
	OutputTable string
	TargetCols  *om.OrderedMap // ordered map of: key = record field name; value = target table column name
}

// SqlInsertTxtBatch generates multi-row INSERT statements with `?` binds for
// batches of rows supplied. The statement text is cached while the batch size
// is unchanged so only the final short batch pays for regeneration.
type SqlInsertTxtBatch struct {
	SqlStatementGeneratorConfig
	sqlStmt                string
	sqlStmtTemplate        string
	sqlValues              []interface{} // data values for all rows in the batch.
	batchSize              int
	rowsInBatch            int
	previousNumRowsInBatch int
	colList                []string
}

// NewInsertGenerator creates a SqlStmtGenerator that emits batched INSERTs.
func NewInsertGenerator(cfg *SqlStatementGeneratorConfig) SqlStmtGenerator {
	cfg.Log.Debug("creating insert generator for table ", cfg.OutputTable)
	o := &SqlInsertTxtBatch{SqlStatementGeneratorConfig: *cfg}
	o.setupSqlStatement()
	return o
}

func (o *SqlInsertTxtBatch) setupSqlStatement() {
	// Build the list of column names.
	o.colList = make([]string, 0, o.TargetCols.Len())
	iter := o.TargetCols.IterFunc()
	for kv, ok := iter(); ok; kv, ok = iter() {
		o.colList = append(o.colList, kv.Value.(string))
	}
	// Populate the SQL template.
	o.sqlStmtTemplate = fmt.Sprintf("insert into %v (%v) values <VALUES>",
		o.OutputTable, strings.Join(o.colList, ","))
	o.Log.Debug("setup INSERT generator with SQL (VALUES pending): ", o.sqlStmtTemplate)
}

func (o *SqlInsertTxtBatch) InitBatch(batchSize int) {
	if o.previousNumRowsInBatch != batchSize { // if we have a new batch size and need to generate SQL...
		o.sqlStmt = o.sqlStmtTemplate // reset the sqlStmt from our template.
	}
	o.batchSize = batchSize
	o.rowsInBatch = 0
	// Allocate a new buffer to hold all values (args) to exec.
	o.sqlValues = make([]interface{}, 0, o.batchSize*len(o.colList))
}

func (o *SqlInsertTxtBatch) AddValuesToBatch(values []interface{}) (batchIsFull bool, err error) {
	if o.rowsInBatch >= o.batchSize {
		return true, errors.New("no more rows allowed in INSERT batch")
	}
	if len(values) != len(o.colList) {
		return false, errors.Errorf("the number of values supplied (%v) does not match the number of table columns (%v)",
			len(values), len(o.colList))
	}
	o.sqlValues = append(o.sqlValues, values...)
	o.rowsInBatch++
	return o.rowsInBatch >= o.batchSize, nil
}

func (o *SqlInsertTxtBatch) GetValues() []interface{} {
	return o.sqlValues
}

func (o *SqlInsertTxtBatch) NumRowsInBatch() int {
	return o.rowsInBatch
}

func (o *SqlInsertTxtBatch) GetStatement() string {
	if o.previousNumRowsInBatch != o.rowsInBatch { // if the row count changed and we need to generate SQL...
		oneRow := "(" + strings.TrimLeft(strings.Repeat(",?", len(o.colList)), ",") + ")"
		allRows := strings.Builder{}
		for idx := 0; idx < o.rowsInBatch; idx++ {
			if idx > 0 {
				allRows.WriteString(",")
			}
			allRows.WriteString(oneRow)
		}
		o.sqlStmt = strings.Replace(o.sqlStmtTemplate, "<VALUES>", allRows.String(), 1)
		o.previousNumRowsInBatch = o.rowsInBatch
	} // else the batch is the same shape and we can use cached SQL...
	o.Log.Trace("SQL batch INSERT generated statement: ", o.sqlStmt)
	return o.sqlStmt
}
