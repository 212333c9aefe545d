package stats

import (
	"testing"

	"github.com/Memily89/smart-sales-memily89/logger"
)

func TestStepWatcher_TotalRows(t *testing.T) {
	log := logger.NewLogger("smart-sales", "info", false)
	w := NewStepWatcher(log, "Test Step")
	rowCount := int64(0)
	w.StartWatching(&rowCount)
	rowCount = 42
	w.StopWatching()
	if got := w.TotalRows(); got != 42 {
		t.Fatalf("TestStepWatcher_TotalRows: expected = 42; got = %v", got)
	}
	if got := w.RowsPerSec(); got < 0 {
		t.Fatalf("TestStepWatcher_TotalRows: expected a non-negative rate; got = %v", got)
	}
}

func TestStepWatcher_StopWithoutStart(t *testing.T) {
	log := logger.NewLogger("smart-sales", "info", false)
	w := NewStepWatcher(log, "Test Step")
	w.StopWatching() // no row counter registered.
	if got := w.TotalRows(); got != 0 {
		t.Fatalf("TestStepWatcher_StopWithoutStart: expected = 0; got = %v", got)
	}
}

func TestStepWatcher_RowsPerSecZeroElapsed(t *testing.T) {
	log := logger.NewLogger("smart-sales", "info", false)
	w := NewStepWatcher(log, "Test Step")
	w.totalRows = 10
	// Elapsed never measured: the rate falls back to the row total.
	if got := w.RowsPerSec(); got != 10 {
		t.Fatalf("TestStepWatcher_RowsPerSecZeroElapsed: expected = 10; got = %v", got)
	}
}
