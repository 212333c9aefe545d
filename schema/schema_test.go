package schema

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestSchema_ColumnNamesOrder(t *testing.T) {
	s := Sales()
	got := s.ColumnNames()
	expected := []string{"transaction_id", "sale_date", "customer_id", "product_id", "store_id",
		"campaign_id", "sale_amount", "units", "discount_percent", "payment_type"}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("TestSchema_ColumnNamesOrder: expected = %v; got = %v", expected, got)
	}
}

func TestSchema_Rename(t *testing.T) {
	s := Sales()
	tests := []struct {
		source string
		target string
		ok     bool
	}{
		{"TransactionID", "transaction_id", true},
		{"SaleAmount", "sale_amount", true},
		{"sale_amount", "sale_amount", true}, // already target-named.
		{"SALE_AMOUNT", "sale_amount", true}, // case-insensitive fallback.
		{"Quantity", "units", true},
		{"SomethingElse", "", false}, // not part of the schema; discarded.
	}
	for _, tt := range tests {
		got, ok := s.Rename(tt.source)
		if ok != tt.ok || got != tt.target {
			t.Fatalf("Rename(%q): expected (%q, %v); got (%q, %v)", tt.source, tt.target, tt.ok, got, ok)
		}
	}
}

func TestSchema_ValidateHeader(t *testing.T) {
	s := Sales()
	ok := []string{"TransactionID", "SaleDate", "CustomerID", "ProductID", "StoreID", "CampaignID",
		"SaleAmount", "DiscountPercent", "PaymentType"}
	if err := s.ValidateHeader(ok); err != nil {
		t.Fatalf("ValidateHeader: expected nil error for complete header; got %v", err)
	}
	// Drop the required SaleAmount column.
	missing := []string{"TransactionID", "SaleDate", "CustomerID", "ProductID"}
	err := s.ValidateHeader(missing)
	var sme SchemaMismatchError
	if !errors.As(err, &sme) {
		t.Fatalf("ValidateHeader: expected SchemaMismatchError; got %v", err)
	}
	if sme.Table != "sales" || sme.Column != "sale_amount" {
		t.Fatalf("ValidateHeader: unexpected error detail: %+v", sme)
	}
}

func TestColumn_Coerce(t *testing.T) {
	s := Sales()
	colDate, _ := s.Column("sale_date")
	colAmount, _ := s.Column("sale_amount")
	colUnits, _ := s.Column("units")

	// Dates in the formats carried by the raw extracts.
	for _, raw := range []string{"2025-03-31", "2025-03-31 10:30:00", "03/31/2025"} {
		v, err := colDate.Coerce("sales", raw)
		if err != nil {
			t.Fatalf("Coerce(%q): unexpected error %v", raw, err)
		}
		want := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
		if !v.(time.Time).Equal(want) {
			t.Fatalf("Coerce(%q): expected %v; got %v", raw, want, v)
		}
	}

	// Decimal coercion keeps exact values.
	v, err := colAmount.Coerce("sales", " 19.99 ")
	if err != nil {
		t.Fatalf("Coerce decimal: unexpected error %v", err)
	}
	if !v.(decimal.Decimal).Equal(decimal.RequireFromString("19.99")) {
		t.Fatalf("Coerce decimal: expected 19.99; got %v", v)
	}

	// Bad numeric value yields a CoercionError.
	_, err = colUnits.Coerce("sales", "three")
	var ce CoercionError
	if !errors.As(err, &ce) {
		t.Fatalf("Coerce: expected CoercionError; got %v", err)
	}
	if ce.Column != "units" {
		t.Fatalf("Coerce: unexpected error detail: %+v", ce)
	}

	// Empty values are treated as unconvertible so the column policy applies.
	if _, err = colAmount.Coerce("sales", ""); err == nil {
		t.Fatal("Coerce: expected error for empty required decimal")
	}

	// Empty optional text is a null, not an error.
	colPay, _ := s.Column("payment_type")
	v, err = colPay.Coerce("sales", "")
	if err != nil || v != nil {
		t.Fatalf("Coerce: expected nil value for empty optional text; got %v, %v", v, err)
	}
}

func TestSchema_SqliteDDL(t *testing.T) {
	got := Products().SqliteDDL()
	expected := "create table if not exists products (product_id integer not null, " +
		"product_name text not null, category text not null, unit_price numeric not null, " +
		"stock_quantity integer)"
	if got != expected {
		t.Fatalf("SqliteDDL: expected = %v; got = %v", expected, got)
	}
}

func TestByTable(t *testing.T) {
	for _, name := range []string{"customers", "products", "sales"} {
		s, ok := ByTable(name)
		if !ok || s.Table != name {
			t.Fatalf("ByTable(%q): expected built-in schema", name)
		}
	}
	if _, ok := ByTable("unknown"); ok {
		t.Fatal("ByTable: expected no schema for unknown table")
	}
}
