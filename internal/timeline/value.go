package timeline

import "time"

// Kind discriminates the states a record field can be in.
type Kind int

const (
	// KindMissing marks an absent or empty field.
	KindMissing Kind = iota
	// KindRaw marks an unparsed string value.
	KindRaw
	// KindParsed marks a canonical timestamp.
	KindParsed
)

// Value is a tagged field value: absent, an unparsed string, or a canonical
// timestamp. Normalize is the only code that turns Raw into Parsed.
type Value struct {
	kind Kind
	raw  string
	ts   time.Time
}

// Missing returns the absent value.
func Missing() Value { return Value{kind: KindMissing} }

// Raw wraps an unparsed string value.
func Raw(s string) Value { return Value{kind: KindRaw, raw: s} }

// Parsed wraps a timestamp, canonicalizing it on the way in.
func Parsed(t time.Time) Value { return Value{kind: KindParsed, ts: Canonical(t)} }

// Kind returns the value's state tag.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the value is absent.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// IsParsed reports whether the value holds a canonical timestamp.
func (v Value) IsParsed() bool { return v.kind == KindParsed }

// Raw returns the unparsed string, or "" for other kinds.
func (v Value) Raw() string { return v.raw }

// Time returns the canonical timestamp, or the zero time for other kinds.
func (v Value) Time() time.Time { return v.ts }

// Record maps column names to field values. Looking up an absent column is
// a valid state, not an error.
type Record map[string]Value

// Field returns the named field, or Missing when the record has no such
// column.
func (r Record) Field(name string) Value {
	if v, ok := r[name]; ok {
		return v
	}
	return Missing()
}
