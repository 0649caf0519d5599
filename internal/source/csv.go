package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"timelineviz/internal/timeline"
)

// Table is a loaded CSV: ordered column names plus one Record per row.
type Table struct {
	Columns []string
	Rows    []timeline.Record
}

// ReadCSV loads a CSV file into a Table. Empty cells become Missing, rows
// whose field count does not match the header are skipped with a warning.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer f.Close()
	return ReadTable(f)
}

// ReadTable reads CSV data from r. A completely empty input yields an
// empty table, not an error.
func ReadTable(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return &Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}

	cols := make([]string, len(header))
	for i, c := range header {
		cols[i] = strings.TrimSpace(c)
	}

	t := &Table{Columns: cols}
	line := 1
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			slog.Warn("skipping malformed CSV row", "line", line, "err", err)
			continue
		}
		if len(rec) != len(cols) {
			slog.Warn("skipping CSV row with mismatched column count",
				"line", line, "want", len(cols), "got", len(rec))
			continue
		}
		row := make(timeline.Record, len(cols))
		for i, c := range cols {
			cell := strings.TrimSpace(rec[i])
			if cell == "" {
				row[c] = timeline.Missing()
			} else {
				row[c] = timeline.Raw(cell)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Entity is one record to render plus its identifier.
type Entity struct {
	ID     string
	Record timeline.Record
}

// Entities lists the table's renderable entities. With an id column the
// first row per distinct id wins; without one each row is its own entity
// named row_<index>. Rows with an empty id also fall back to row_<index>.
// max > 0 truncates the list.
func (t *Table) Entities(idColumn string, max int) ([]Entity, error) {
	if idColumn != "" && !t.HasColumn(idColumn) {
		return nil, &timeline.ConfigError{
			Setting: "id_column",
			Reason:  fmt.Sprintf("column %q not found", idColumn),
		}
	}

	var out []Entity
	seenIDs := make(map[string]bool)
	taken := make(map[string]bool)
	for i, row := range t.Rows {
		id := ""
		if idColumn != "" {
			id = strings.TrimSpace(row.Field(idColumn).Raw())
		}
		if id != "" {
			// First row per distinct id wins.
			if seenIDs[id] {
				continue
			}
			seenIDs[id] = true
		} else {
			id = fmt.Sprintf("row_%d", i)
		}
		// A fallback name can collide with a genuine id, and the other way
		// around. Those are different entities, so disambiguate instead of
		// collapsing them.
		for taken[id] {
			id += "_"
		}
		taken[id] = true
		out = append(out, Entity{ID: id, Record: row})
	}
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out, nil
}
