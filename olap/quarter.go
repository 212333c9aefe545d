package olap

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/Memily89/smart-sales-memily89/constants"
)

// Quarter is a calendar quarter, rendered as e.g. "2025Q1".
type Quarter struct {
	Year int
	Q    int // 1..4
}

var quarterRegex = regexp.MustCompile(constants.QuarterFormatRegex)

// QuarterOfDate returns the calendar quarter containing t.
func QuarterOfDate(t time.Time) Quarter {
	return Quarter{Year: t.Year(), Q: (int(t.Month())-1)/3 + 1}
}

// QuarterOfISODate parses an ISO-8601 date as stored in the warehouse and
// returns its quarter.
func QuarterOfISODate(s string) (Quarter, error) {
	t, err := time.Parse(constants.DateFormatISO, s)
	if err != nil {
		return Quarter{}, fmt.Errorf("bad warehouse date %q: %v", s, err)
	}
	return QuarterOfDate(t), nil
}

// ParseQuarter parses the "YYYYQn" rendering.
func ParseQuarter(s string) (Quarter, error) {
	if !quarterRegex.MatchString(s) {
		return Quarter{}, fmt.Errorf("bad quarter %q: want YYYYQn", s)
	}
	year, _ := strconv.Atoi(s[:4])
	q, _ := strconv.Atoi(s[5:])
	return Quarter{Year: year, Q: q}, nil
}

func (q Quarter) String() string {
	return fmt.Sprintf("%04dQ%d", q.Year, q.Q)
}

// Before reports whether q precedes other in calendar order.
func (q Quarter) Before(other Quarter) bool {
	if q.Year != other.Year {
		return q.Year < other.Year
	}
	return q.Q < other.Q
}
