package components

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Memily89/smart-sales-memily89/logger"
	"github.com/Memily89/smart-sales-memily89/schema"
	"github.com/Memily89/smart-sales-memily89/stats"
)

func TestNewCsvFileReader(t *testing.T) {
	log := logger.NewLogger("smart-sales", "info", false)
	dir := t.TempDir()
	csvBody := "ProductID,ProductName,Category,UnitPrice\n" +
		"1,Widget A1,Widgets,19.99\n" +
		"2,Widget B2,Widgets,5.00\n"
	if err := os.WriteFile(filepath.Join(dir, "products.csv"), []byte(csvBody), 0644); err != nil {
		t.Fatal("unable to write test CSV: ", err)
	}
	ts := stats.NewTableStats("products")
	header, outputChan, err := NewCsvFileReader(&CsvFileReaderConfig{
		Log:        log,
		Name:       "Test CSV Reader",
		Dir:        dir,
		Table:      "products",
		TableStats: ts,
	})
	if err != nil {
		t.Fatal("unexpected error: ", err)
	}
	if len(header) != 4 || header[0] != "ProductID" || header[3] != "UnitPrice" {
		t.Fatalf("unexpected header: %v", header)
	}
	count := 0
	for rec := range outputChan {
		count++
		if count == 1 && rec.GetData("ProductName") != "Widget A1" {
			t.Fatalf("unexpected first record: %v", rec.GetDataMap())
		}
	}
	if count != 2 {
		t.Fatalf("expected 2 records; got %v", count)
	}
	if ts.Read() != 2 {
		t.Fatalf("expected read count 2; got %v", ts.Read())
	}
}

func TestNewCsvFileReader_LegacyPreparedName(t *testing.T) {
	log := logger.NewLogger("smart-sales", "info", false)
	dir := t.TempDir()
	csvBody := "CustomerID,Name,Region\n10,Jo,West\n"
	if err := os.WriteFile(filepath.Join(dir, "customers_prepared.csv"), []byte(csvBody), 0644); err != nil {
		t.Fatal("unable to write test CSV: ", err)
	}
	_, outputChan, err := NewCsvFileReader(&CsvFileReaderConfig{
		Log:   log,
		Name:  "Test CSV Reader",
		Dir:   dir,
		Table: "customers",
	})
	if err != nil {
		t.Fatal("expected the legacy _prepared.csv name to be discovered: ", err)
	}
	count := 0
	for range outputChan {
		count++
	}
	if count != 1 {
		t.Fatalf("expected 1 record; got %v", count)
	}
}

func TestNewCsvFileReader_SourceNotFound(t *testing.T) {
	log := logger.NewLogger("smart-sales", "info", false)
	// Missing file in an existing directory.
	_, _, err := NewCsvFileReader(&CsvFileReaderConfig{
		Log:   log,
		Name:  "Test CSV Reader",
		Dir:   t.TempDir(),
		Table: "sales",
	})
	var snf schema.SourceNotFoundError
	if !errors.As(err, &snf) {
		t.Fatalf("expected SourceNotFoundError for missing file; got %v", err)
	}
	// Missing directory.
	_, _, err = NewCsvFileReader(&CsvFileReaderConfig{
		Log:   log,
		Name:  "Test CSV Reader",
		Dir:   "/no/such/dir",
		Table: "sales",
	})
	if !errors.As(err, &snf) {
		t.Fatalf("expected SourceNotFoundError for missing directory; got %v", err)
	}
}

func TestNewCsvFileReader_ShortRow(t *testing.T) {
	log := logger.NewLogger("smart-sales", "info", false)
	dir := t.TempDir()
	csvBody := "CustomerID,Name,Region\n10,Jo\n"
	if err := os.WriteFile(filepath.Join(dir, "customers.csv"), []byte(csvBody), 0644); err != nil {
		t.Fatal("unable to write test CSV: ", err)
	}
	_, outputChan, err := NewCsvFileReader(&CsvFileReaderConfig{
		Log:   log,
		Name:  "Test CSV Reader",
		Dir:   dir,
		Table: "customers",
	})
	if err != nil {
		t.Fatal("unexpected error: ", err)
	}
	for rec := range outputChan {
		// Missing trailing fields arrive as empty strings.
		if rec.GetData("Region") != "" {
			t.Fatalf("expected empty Region; got %v", rec.GetData("Region"))
		}
	}
}
