package schema

import (
	"fmt"
	"strings"

	om "github.com/cevaris/ordered_map"
)

// Schema is the declared column/type contract for one warehouse table.
// Column order is fixed at build time and drives DDL, INSERT column lists and
// CSV output, so it lives in an ordered map rather than a plain map.
type Schema struct {
	Table   string
	columns *om.OrderedMap // key = target column name; value = Column
	renames *om.OrderedMap // key = source column name; value = target column name
}

// NewSchema builds a Schema from ordered column definitions and a rename
// table mapping raw source column names onto target names.
func NewSchema(table string, cols []Column, renames map[string]string) *Schema {
	s := &Schema{
		Table:   table,
		columns: om.NewOrderedMap(),
		renames: om.NewOrderedMap(),
	}
	for _, c := range cols {
		if c.OnBadValue == "" {
			panic(fmt.Sprintf("schema %q column %q: missing OnBadValue policy", table, c.Name))
		}
		s.columns.Set(c.Name, c)
	}
	for src, tgt := range renames {
		s.renames.Set(src, tgt)
	}
	return s
}

// ColumnNames returns the target column names in declaration order.
func (s *Schema) ColumnNames() []string {
	names := make([]string, 0, s.columns.Len())
	iter := s.columns.IterFunc()
	for kv, ok := iter(); ok; kv, ok = iter() {
		names = append(names, kv.Key.(string))
	}
	return names
}

// Columns returns the column definitions in declaration order.
func (s *Schema) Columns() []Column {
	cols := make([]Column, 0, s.columns.Len())
	iter := s.columns.IterFunc()
	for kv, ok := iter(); ok; kv, ok = iter() {
		cols = append(cols, kv.Value.(Column))
	}
	return cols
}

// Column looks up a column definition by target name.
func (s *Schema) Column(name string) (Column, bool) {
	v, ok := s.columns.Get(name)
	if !ok {
		return Column{}, false
	}
	return v.(Column), true
}

// Rename maps a raw source column name onto its target column name.
// Lookup order: explicit rename table, then a case-insensitive match against
// the target names. ok is false when the source column is not part of the
// schema and should be discarded.
func (s *Schema) Rename(source string) (string, bool) {
	src := strings.TrimSpace(source)
	if v, ok := s.renames.Get(src); ok {
		return v.(string), true
	}
	lower := strings.ToLower(src)
	if _, ok := s.columns.Get(lower); ok {
		return lower, true
	}
	return "", false
}

// ValidateHeader checks that every required column can be satisfied by the
// supplied source header. Returns SchemaMismatchError naming the first
// missing required column.
func (s *Schema) ValidateHeader(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		if tgt, ok := s.Rename(h); ok {
			present[tgt] = true
		}
	}
	iter := s.columns.IterFunc()
	for kv, ok := iter(); ok; kv, ok = iter() {
		col := kv.Value.(Column)
		if col.Required && !present[col.Name] {
			return SchemaMismatchError{Table: s.Table, Column: col.Name}
		}
	}
	return nil
}

// SqliteDDL returns the CREATE TABLE statement for the warehouse table.
func (s *Schema) SqliteDDL() string {
	defs := make([]string, 0, s.columns.Len())
	iter := s.columns.IterFunc()
	for kv, ok := iter(); ok; kv, ok = iter() {
		col := kv.Value.(Column)
		d := fmt.Sprintf("%v %v", col.Name, col.Type.sqliteType())
		if col.Required {
			d += " not null"
		}
		defs = append(defs, d)
	}
	return fmt.Sprintf("create table if not exists %v (%v)", s.Table, strings.Join(defs, ", "))
}
