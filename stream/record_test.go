package stream

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestRecord_GetSortedDataMapKeys(t *testing.T) {
	// Test that record keys are returned in alphabetical order.
	r1 := NewRecord()
	r1.SetData("keyA", "valueA")
	r1.SetData("keyC", "valueC")
	r1.SetData("keyB", "valueB")
	got := r1.GetSortedDataMapKeys()
	expected := []string{"keyA", "keyB", "keyC"}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("TestRecord_GetSortedDataMapKeys failed: expected = %v; got = %v", expected, got)
	}
}

func TestRecord_GetDataAsString(t *testing.T) {
	r1 := NewRecord()
	r1.SetData("region", "West")
	r1.SetData("sale_date", time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC))
	r1.SetData("sale_amount", decimal.RequireFromString("19.99"))
	r1.SetData("units", int64(3))
	r1.SetData("campaign_id", nil)
	tests := []struct {
		key      string
		expected string
	}{
		{"region", "West"},
		{"sale_date", "2025-03-31"},
		{"sale_amount", "19.99"},
		{"units", "3"},
		{"campaign_id", ""},
	}
	for _, tt := range tests {
		if got := r1.GetDataAsString(tt.key); got != tt.expected {
			t.Fatalf("TestRecord_GetDataAsString(%q) failed: expected = %v; got = %v", tt.key, tt.expected, got)
		}
	}
}
