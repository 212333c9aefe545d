package stats

import (
	"sync/atomic"
	"time"

	"github.com/Memily89/smart-sales-memily89/logger"
)

// StepWatcher captures throughput for a given pipeline step.
// The step calls StartWatching() with a pointer to its row counter and
// StopWatching() when its input is exhausted.
type StepWatcher struct {
	log         logger.Logger
	stepName    string
	rowCountPtr *int64 // ptr to rowCount held in the step we are watching.
	startTime   time.Time
	totalRows   int64
	elapsed     time.Duration
}

func NewStepWatcher(log logger.Logger, stepName string) *StepWatcher {
	return &StepWatcher{log: log, stepName: stepName}
}

func (n *StepWatcher) StartWatching(rowCountPtr *int64) {
	n.rowCountPtr = rowCountPtr
	n.startTime = time.Now()
}

func (n *StepWatcher) StopWatching() {
	if n.rowCountPtr == nil {
		return
	}
	n.totalRows = atomic.LoadInt64(n.rowCountPtr)
	n.elapsed = time.Since(n.startTime)
	n.log.Info(n.stepName, " processed ", n.totalRows, " rows in ", n.elapsed.Round(time.Millisecond),
		" (", n.RowsPerSec(), " rows/sec)")
}

func (n *StepWatcher) TotalRows() int64 {
	return n.totalRows
}

func (n *StepWatcher) RowsPerSec() int64 {
	secs := n.elapsed.Seconds()
	if secs <= 0 {
		return n.totalRows
	}
	return int64(float64(n.totalRows) / secs)
}
