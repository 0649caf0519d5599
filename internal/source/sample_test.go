package source

import (
	"bytes"
	"testing"

	"timelineviz/internal/timeline"
)

func TestGenerateSample(t *testing.T) {
	var buf bytes.Buffer
	if err := GenerateSample(&buf, 10, "Order", nil, 42); err != nil {
		t.Fatalf("GenerateSample: %v", err)
	}

	table, err := ReadTable(&buf)
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	want := append([]string{"order_id"}, DefaultSampleColumns...)
	if len(table.Columns) != len(want) {
		t.Fatalf("got columns %v, want %v", table.Columns, want)
	}
	for i, c := range want {
		if table.Columns[i] != c {
			t.Errorf("column %d = %q, want %q", i, table.Columns[i], c)
		}
	}
	if len(table.Rows) != 10 {
		t.Fatalf("got %d rows, want 10", len(table.Rows))
	}

	// Every generated timestamp must survive normalization.
	for i, row := range table.Rows {
		if row.Field("order_id").IsMissing() {
			t.Errorf("row %d has no id", i)
		}
		for _, col := range DefaultSampleColumns {
			v := row.Field(col)
			if v.IsMissing() {
				continue
			}
			if _, ok := timeline.ParseTimestamp(v.Raw()); !ok {
				t.Errorf("row %d column %s: unparseable value %q", i, col, v.Raw())
			}
		}
	}
}

func TestGenerateSampleDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	if err := GenerateSample(&a, 5, "Order", nil, 7); err != nil {
		t.Fatal(err)
	}
	if err := GenerateSample(&b, 5, "Order", nil, 7); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("same seed produced different data")
	}
}

func TestGenerateSampleRejectsBadSize(t *testing.T) {
	var buf bytes.Buffer
	if err := GenerateSample(&buf, 0, "Order", nil, 1); err == nil {
		t.Error("expected error for zero size")
	}
}
