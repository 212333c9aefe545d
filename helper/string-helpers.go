package helper

import "strings"

// CsvToStringSliceTrimSpaces converts a string of the form 'f1, f2, f3' into
// a slice of trimmed string values. An empty input gives an empty slice.
func CsvToStringSliceTrimSpaces(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	tokens := strings.Split(s, ",")
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// StringInSlice reports whether s appears in vals, ignoring case.
func StringInSlice(s string, vals []string) bool {
	for _, v := range vals {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
