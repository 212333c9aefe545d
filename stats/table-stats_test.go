package stats

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/Memily89/smart-sales-memily89/logger"
)

func TestTableStats_Counters(t *testing.T) {
	ts := NewTableStats("sales")
	incr := func(fn func(), n int) {
		for i := 0; i < n; i++ {
			fn()
		}
	}
	incr(ts.IncrRead, 6)
	incr(ts.IncrAccepted, 3)
	incr(ts.IncrRejected, 1)
	incr(ts.IncrNulled, 2)
	incr(ts.IncrFiltered, 1)
	incr(ts.IncrDuplicates, 1)
	ts.AddLoaded(3)
	tests := []struct {
		name     string
		got      int64
		expected int64
	}{
		{"read", ts.Read(), 6},
		{"accepted", ts.Accepted(), 3},
		{"rejected", ts.Rejected(), 1},
		{"nulled", ts.Nulled(), 2},
		{"filtered", ts.Filtered(), 1},
		{"duplicates", ts.Duplicates(), 1},
		{"loaded", ts.Loaded(), 3},
	}
	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Fatalf("TestTableStats_Counters: expected %v = %v; got = %v", tt.name, tt.expected, tt.got)
		}
	}
}

// Counters are bumped from the reader and transformer goroutines at once.
func TestTableStats_ConcurrentIncrements(t *testing.T) {
	ts := NewTableStats("sales")
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 250; i++ {
				ts.IncrRead()
			}
		}()
	}
	wg.Wait()
	if got := ts.Read(); got != 1000 {
		t.Fatalf("TestTableStats_ConcurrentIncrements: expected read = 1000; got = %v", got)
	}
}

func TestTableStats_LogSummary(t *testing.T) {
	ts := NewTableStats("products")
	ts.IncrRead()
	ts.IncrAccepted()
	ts.AddLoaded(1)
	log := logger.NewLogger("smart-sales", "info", false)
	var buf bytes.Buffer
	log.SetOutput(&buf)
	ts.LogSummary(log)
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatal("expected a JSON log entry: ", err)
	}
	msg, _ := entry["msg"].(string)
	for _, want := range []string{"table products", "read=1", "accepted=1", "loaded=1"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("TestTableStats_LogSummary: expected %q in summary; got %q", want, msg)
		}
	}
}
