package timeline

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimestampLayouts(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-03-15T10:30:00Z", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-03-15T10:30:00.250Z", time.Date(2024, 3, 15, 10, 30, 0, 250e6, time.UTC)},
		{"2024-03-15T10:30:00", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-03-15 10:30:00", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-03-15 10:30:00.123", time.Date(2024, 3, 15, 10, 30, 0, 123e6, time.UTC)},
		{"2024-03-15 10:30", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"2024-03-15", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"03/15/2024 10:30:00", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"03/15/2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"15-Mar-2024 10:30:00", time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)},
		{"15-Mar-2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"Mar 15, 2024", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"  2024-03-15  ", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, ok := ParseTimestamp(tt.input)
		if !ok {
			t.Errorf("ParseTimestamp(%q) failed", tt.input)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	for _, input := range []string{"not-a-date", "2024-13-45", "hello", "1234567"} {
		if _, ok := ParseTimestamp(input); ok {
			t.Errorf("ParseTimestamp(%q) succeeded, want failure", input)
		}
	}
}

func TestParseTimestampZoneConversion(t *testing.T) {
	// The same instant in two zones normalizes to one canonical value.
	utc, ok := ParseTimestamp("2024-05-01T12:00:00Z")
	if !ok {
		t.Fatal("failed to parse UTC input")
	}
	offset, ok := ParseTimestamp("2024-05-01T14:00:00+02:00")
	if !ok {
		t.Fatal("failed to parse offset input")
	}
	if !utc.Equal(offset) {
		t.Errorf("zone conversion mismatch: %v != %v", utc, offset)
	}
	if offset.Location() != time.UTC {
		t.Errorf("canonical value not in UTC: %v", offset.Location())
	}
}

func TestCanonicalTruncatesToMillisecond(t *testing.T) {
	in := time.Date(2024, 5, 1, 12, 0, 0, 123456789, time.UTC)
	got := Canonical(in)
	if got.Nanosecond() != 123000000 {
		t.Errorf("Canonical nanoseconds = %d, want 123000000", got.Nanosecond())
	}
}

func TestFormatTimestamp(t *testing.T) {
	in := time.Date(2024, 5, 1, 9, 8, 7, 42e6, time.UTC)
	if got, want := FormatTimestamp(in), "2024-05-01 09:08:07.042"; got != want {
		t.Errorf("FormatTimestamp = %q, want %q", got, want)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	in := time.Date(2024, 5, 1, 12, 30, 45, 123e6, time.UTC)
	back, ok := ParseTimestamp(FormatTimestamp(in))
	if !ok {
		t.Fatal("round trip parse failed")
	}
	if !back.Equal(in) {
		t.Errorf("round trip changed value: %v != %v", back, in)
	}
}

func TestNormalizeMissingStaysMissing(t *testing.T) {
	for _, policy := range []ErrorPolicy{Coerce, Raise, PassThrough} {
		got, err := Normalize("f", Missing(), policy)
		if err != nil {
			t.Fatalf("policy %v: %v", policy, err)
		}
		if !got.IsMissing() {
			t.Errorf("policy %v: got %v, want Missing", policy, got.Kind())
		}
	}
}

func TestNormalizeBlankBecomesMissing(t *testing.T) {
	got, err := Normalize("f", Raw("   "), Raise)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !got.IsMissing() {
		t.Errorf("blank raw value: got %v, want Missing", got.Kind())
	}
}

func TestNormalizeParsedIsCanonicalized(t *testing.T) {
	loc := time.FixedZone("plus2", 2*3600)
	in := Parsed(time.Date(2024, 5, 1, 14, 0, 0, 999999999, loc))
	got, err := Normalize("f", in, Raise)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := time.Date(2024, 5, 1, 12, 0, 0, 999e6, time.UTC)
	if !got.Time().Equal(want) {
		t.Errorf("got %v, want %v", got.Time(), want)
	}
}

func TestNormalizePolicies(t *testing.T) {
	const bad = "not-a-timestamp"

	got, err := Normalize("created_at", Raw(bad), Coerce)
	if err != nil {
		t.Fatalf("coerce: %v", err)
	}
	if !got.IsMissing() {
		t.Errorf("coerce: got %v, want Missing", got.Kind())
	}

	_, err = Normalize("created_at", Raw(bad), Raise)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("raise: got %v, want *ParseError", err)
	}
	if parseErr.Field != "created_at" || parseErr.Raw != bad {
		t.Errorf("raise: error carries %q/%q, want created_at/%q", parseErr.Field, parseErr.Raw, bad)
	}

	got, err = Normalize("created_at", Raw(bad), PassThrough)
	if err != nil {
		t.Fatalf("pass: %v", err)
	}
	if got.Kind() != KindRaw || got.Raw() != bad {
		t.Errorf("pass: got %v %q, want raw %q", got.Kind(), got.Raw(), bad)
	}
}
