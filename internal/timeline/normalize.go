package timeline

import (
	"strings"
	"time"
)

// ErrorPolicy selects what Normalize does with a value it cannot parse.
type ErrorPolicy int

const (
	// Coerce turns unparseable values into Missing.
	Coerce ErrorPolicy = iota
	// Raise returns a *ParseError for unparseable values.
	Raise
	// PassThrough returns the raw value unchanged. The caller owns what
	// happens to it; pass-through values never reach clustering.
	PassThrough
)

// DisplayLayout is the canonical display form, millisecond precision.
const DisplayLayout = "2006-01-02 15:04:05.000"

// timestampLayouts is the ordered fallback chain for raw strings. Layouts
// carrying zone information come first so offsets are honored before the
// naive forms. Fractional seconds after a seconds field are accepted by
// every layout.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"02-Jan-2006 15:04:05",
	"02-Jan-2006",
	"Jan 02, 2006 15:04:05",
	"Jan 02, 2006",
}

// Canonical converts t to the canonical timezone-naive form: the same
// absolute instant expressed in UTC, truncated to millisecond precision.
func Canonical(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// FormatTimestamp renders a canonical instant for label display.
func FormatTimestamp(t time.Time) string {
	return t.Format(DisplayLayout)
}

// ParseTimestamp runs the layout fallback chain over a raw string. Zoned
// inputs are converted to UTC; zone-less inputs are taken as UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return Canonical(t), true
		}
	}
	return time.Time{}, false
}

// Normalize resolves a record field to its canonical timestamp. Missing
// stays missing, parsed values are re-canonicalized, and raw strings go
// through the layout chain. The policy decides what an unparseable value
// becomes.
func Normalize(field string, v Value, policy ErrorPolicy) (Value, error) {
	switch v.Kind() {
	case KindMissing:
		return v, nil
	case KindParsed:
		return Parsed(v.Time()), nil
	}
	raw := strings.TrimSpace(v.Raw())
	if raw == "" {
		return Missing(), nil
	}
	if t, ok := ParseTimestamp(raw); ok {
		return Parsed(t), nil
	}
	switch policy {
	case Raise:
		return Missing(), &ParseError{Field: field, Raw: v.Raw()}
	case PassThrough:
		return v, nil
	default:
		return Missing(), nil
	}
}
