package timeline

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultRemoveSuffixes are stripped from column names when auto-labeling.
var DefaultRemoveSuffixes = []string{"_utc", "_at", "_time", "_date"}

// Name patterns that mark a column as timestamp-bearing. Names containing
// "invalid" are always excluded.
var (
	detectSuffixes   = []string{"_utc", "_at", "_time", "_date"}
	detectSubstrings = []string{"timestamp", "datetime"}
	detectPrefixes   = []string{"date", "time"}
)

var titleCaser = cases.Title(language.English)

// DetectTimestampColumns returns the columns whose names match the
// timestamp naming patterns, preserving input order.
func DetectTimestampColumns(columns []string) []string {
	var out []string
	for _, col := range columns {
		if isTimestampName(col) {
			out = append(out, col)
		}
	}
	return out
}

func isTimestampName(name string) bool {
	n := strings.ToLower(strings.TrimSpace(name))
	if strings.Contains(n, "invalid") {
		return false
	}
	for _, s := range detectSuffixes {
		if strings.HasSuffix(n, s) {
			return true
		}
	}
	for _, s := range detectSubstrings {
		if strings.Contains(n, s) {
			return true
		}
	}
	for _, p := range detectPrefixes {
		if strings.HasPrefix(n, p) {
			return true
		}
	}
	return false
}

// CleanLabel converts a column name to a display label: the first matching
// suffix is removed, separators become spaces, and the result is
// title-cased.
func CleanLabel(column string, removeSuffixes []string) string {
	name := column
	for _, suffix := range removeSuffixes {
		if strings.HasSuffix(name, suffix) {
			name = strings.TrimSuffix(name, suffix)
			break
		}
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return titleCaser.String(strings.TrimSpace(name))
}
