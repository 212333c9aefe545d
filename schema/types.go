package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Memily89/smart-sales-memily89/constants"
)

// ColumnType is the declared semantic type of a warehouse column.
type ColumnType string

const (
	TypeInteger ColumnType = "integer"
	TypeDecimal ColumnType = "decimal"
	TypeDate    ColumnType = "date"
	TypeString  ColumnType = "string"
)

// Policy decides the fate of a record when a value cannot be coerced to the
// column's declared type. The policy is explicit on every column definition;
// there is no implicit default.
type Policy string

const (
	PolicyReject Policy = "reject" // drop the whole record.
	PolicyNull   Policy = "null"   // keep the record with a null in this column.
)

// Column is one declared (name, type) pair of a Schema.
type Column struct {
	Name       string     `json:"name" yaml:"name"`
	Type       ColumnType `json:"type" yaml:"type"`
	Required   bool       `json:"required" yaml:"required"`     // the source file must carry this column.
	OnBadValue Policy     `json:"onBadValue" yaml:"onBadValue"` // reject|null on coercion failure.
	// Fill replaces a null value after coercion and policy handling.
	// It must hold the column's coerced Go type. Nil means nulls stand.
	Fill interface{} `json:"fill,omitempty" yaml:"fill,omitempty"`
}

// SourceNotFoundError denotes a missing input directory or source file.
type SourceNotFoundError struct {
	Path string
	Err  error
}

func (e SourceNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("source %q not found: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("source %q not found", e.Path)
}

func (e SourceNotFoundError) Unwrap() error { return e.Err }

// SchemaMismatchError denotes a required column absent from a raw source
// file. It is fatal for that table but not for sibling tables.
type SchemaMismatchError struct {
	Table  string
	Column string
}

func (e SchemaMismatchError) Error() string {
	return fmt.Sprintf("table %q: required column %q not found in source header", e.Table, e.Column)
}

// CoercionError denotes one field value that cannot be converted to its
// declared type. Recoverable at record granularity per the column policy.
type CoercionError struct {
	Table  string
	Column string
	Value  string
	Type   ColumnType
	Err    error
}

func (e CoercionError) Error() string {
	return fmt.Sprintf("table %q column %q: cannot coerce %q to %v: %v", e.Table, e.Column, e.Value, e.Type, e.Err)
}

func (e CoercionError) Unwrap() error { return e.Err }

// LoadError wraps a storage failure during warehouse writes.
type LoadError struct {
	Table string
	Err   error
}

func (e LoadError) Error() string {
	return fmt.Sprintf("loading table %q: %v", e.Table, e.Err)
}

func (e LoadError) Unwrap() error { return e.Err }

// dateFormats are tried in order when coercing DATE values.
// The original raw extracts carried both ISO and US-style dates.
var dateFormats = []string{
	constants.DateFormatISO,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"2006/01/02",
}

// Coerce converts a raw string field to the Go value for this column type:
// int64, decimal.Decimal, time.Time or string. An empty raw value is treated
// the same as an unconvertible one so the column policy applies.
func (c Column) Coerce(table, raw string) (interface{}, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		if c.Type == TypeString && !c.Required {
			return nil, nil // empty optional text is a null, not an error.
		}
		return nil, CoercionError{Table: table, Column: c.Name, Value: raw, Type: c.Type,
			Err: fmt.Errorf("empty value")}
	}
	switch c.Type {
	case TypeInteger:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, CoercionError{Table: table, Column: c.Name, Value: raw, Type: c.Type, Err: err}
		}
		return v, nil
	case TypeDecimal:
		v, err := decimal.NewFromString(s)
		if err != nil {
			return nil, CoercionError{Table: table, Column: c.Name, Value: raw, Type: c.Type, Err: err}
		}
		return v, nil
	case TypeDate:
		for _, f := range dateFormats {
			if t, err := time.Parse(f, s); err == nil {
				// Normalise to a date in UTC; time-of-day is not warehoused.
				return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
			}
		}
		return nil, CoercionError{Table: table, Column: c.Name, Value: raw, Type: c.Type,
			Err: fmt.Errorf("unrecognised date format")}
	case TypeString:
		return s, nil
	default:
		return nil, CoercionError{Table: table, Column: c.Name, Value: raw, Type: c.Type,
			Err: fmt.Errorf("unknown column type")}
	}
}

// sqliteType maps a ColumnType to the affinity used in warehouse DDL.
func (t ColumnType) sqliteType() string {
	switch t {
	case TypeInteger:
		return "integer"
	case TypeDecimal:
		return "numeric"
	case TypeDate:
		return "text" // ISO-8601 strings sort and compare correctly.
	default:
		return "text"
	}
}
