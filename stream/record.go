package stream

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Memily89/smart-sales-memily89/constants"
)

// NewRecord creates a new Record and returns it by value as we expect these
// records to go over channels by value too.
func NewRecord() Record {
	return Record{
		data: make(map[string]interface{}),
	}
}

// Record is used to communicate rows between pipeline components.
// Values may be nil interfaces to represent null warehouse values.
type Record struct {
	data map[string]interface{}
}

func (sr Record) SetData(name string, value interface{}) {
	sr.data[name] = value
}

// GetData fetches the value stored against name.
// It panics when the field does not exist since that means a broken pipeline
// definition rather than bad input data.
func (sr Record) GetData(name string) interface{} {
	val, ok := sr.data[name]
	if !ok {
		panic(fmt.Sprintf("invalid key name %q supplied while trying to fetch value from record: %v", name, sr.data))
	}
	return val
}

// GetDataOk fetches the value stored against name without panicking.
func (sr Record) GetDataOk(name string) (interface{}, bool) {
	val, ok := sr.data[name]
	return val, ok
}

func (sr Record) GetDataMap() map[string]interface{} {
	return sr.data
}

func (sr Record) GetDataLen() int {
	return len(sr.data)
}

// GetDataAsString converts the value stored against name to a string suitable
// for CSV output. Dates use the warehouse DATE format; nulls become "".
func (sr Record) GetDataAsString(name string) string {
	v, ok := sr.data[name]
	if !ok {
		panic(fmt.Sprintf("unexpected field %q does not exist in the record (bad pipeline definition?)", name))
	}
	return StringFromInterface(v)
}

// GetSortedDataMapKeys will return a slice of the keys found in the record,
// sorted alphabetically.
func (sr Record) GetSortedDataMapKeys() []string {
	retval := make([]string, 0, len(sr.data))
	for k := range sr.data {
		retval = append(retval, k)
	}
	sort.Strings(retval)
	return retval
}

// StringFromInterface converts a record value to its canonical string form.
func StringFromInterface(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		return val.Format(constants.DateFormatISO)
	case decimal.Decimal:
		return val.String()
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
