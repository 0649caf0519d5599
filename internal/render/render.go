// Package render turns normalized records into timeline images.
package render

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"timelineviz/internal/config"
	"timelineviz/internal/timeline"
)

// BuildEvents extracts, normalizes and labels the selected columns of one
// record, sorted ascending by instant. The sort is stable, so events with
// equal timestamps keep the column order. Missing and coerced values are
// dropped; pass-through values are logged and excluded.
func BuildEvents(rec timeline.Record, columns []string, cfg config.Config) ([]timeline.Event, error) {
	policy, err := cfg.ErrorPolicy()
	if err != nil {
		return nil, err
	}
	var events []timeline.Event
	for _, col := range columns {
		v, err := timeline.Normalize(col, rec.Field(col), policy)
		if err != nil {
			return nil, err
		}
		if !v.IsParsed() {
			if v.Kind() == timeline.KindRaw {
				slog.Debug("unparsed timestamp passed through", "column", col, "value", v.Raw())
			}
			continue
		}
		events = append(events, timeline.Event{
			Field: col,
			Label: labelFor(col, cfg),
			When:  v.Time(),
		})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].When.Before(events[j].When)
	})
	return events, nil
}

func labelFor(col string, cfg config.Config) string {
	if lbl, ok := cfg.LabelOverrides[col]; ok {
		return lbl
	}
	return timeline.CleanLabel(col, cfg.RemoveSuffixes)
}

// One renders a single record to an image. The second return value reports
// whether anything was rendered: a record with no valid timestamps is
// skipped, not an error. ThresholdDays 0 means unset and falls back to the
// single-record default of 30 days, matching config.Validate.
func One(rec timeline.Record, columns []string, entityID string, cfg config.Config) ([]byte, bool, error) {
	events, err := BuildEvents(rec, columns, cfg)
	if err != nil {
		return nil, false, err
	}
	if len(events) == 0 {
		return nil, false, nil
	}

	threshold := cfg.ThresholdDays
	if threshold == 0 {
		threshold = config.DefaultSingleThresholdDays
	}
	clusters, err := timeline.FindClusters(events, threshold)
	if err != nil {
		return nil, false, err
	}

	title := fmt.Sprintf("%s Timeline - %s", cfg.EntityName, entityID)
	l := computeLayout(clusters, cfg, title)

	if cfg.Format == "png" {
		data, err := renderPNG(l, cfg)
		if err != nil {
			return nil, false, err
		}
		return data, true, nil
	}
	return renderSVG(l, cfg), true, nil
}

// OutputPath builds the output file name for an entity.
func OutputPath(dir, entityName, entityID, format string) string {
	name := fmt.Sprintf("%s_%s_timeline.%s", strings.ToLower(entityName), sanitizeID(entityID), format)
	return filepath.Join(dir, name)
}

// sanitizeID replaces every non-alphanumeric character so ids are safe in
// file names.
func sanitizeID(id string) string {
	var b strings.Builder
	for _, r := range id {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// WriteFile writes data atomically: a temp file in the target directory is
// renamed into place, so a failed render never leaves a partial image.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".timeline-*")
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if werr == nil {
		werr = cerr
	}
	if werr == nil {
		werr = os.Rename(tmp.Name(), path)
	}
	if werr != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error writing output file: %w", werr)
	}
	return nil
}
