package constants

import (
	"regexp"
	"testing"
	"time"
)

func TestDateFormat(t *testing.T) {
	// Check that the global regexp can match constant DateFormatISO.
	re := regexp.MustCompile(DateFormatISORegex)
	if !re.MatchString(time.Now().Format(DateFormatISO)) {
		t.Fatal("Mismatch between DateFormatISO and regexp in constant DateFormatISORegex.")
	}
	// Check that the quarter regexp matches the format written to the cube.
	re = regexp.MustCompile(QuarterFormatRegex)
	if !re.MatchString("2025Q1") {
		t.Fatal("Unexpected quarter format - expected YYYYQn to match.")
	}
	if re.MatchString("2025Q5") {
		t.Fatal("Quarter regexp should reject quarter numbers above 4.")
	}
}
