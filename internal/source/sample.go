package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"
)

// DefaultSampleColumns are the timestamp columns the sample generator
// fills when the caller does not name any.
var DefaultSampleColumns = []string{"created_at_utc", "updated_at_utc", "completed_at_utc"}

// GenerateSample writes a CSV of n entities with plausible event
// timestamps: sequential per entity, occasional missing values, and a
// multi-day jump for every third entity so cluster breaks show up. The
// same seed reproduces the same data.
func GenerateSample(w io.Writer, n int, entityName string, columns []string, seed int64) error {
	if n <= 0 {
		return fmt.Errorf("sample size must be positive, got %d", n)
	}
	if len(columns) == 0 {
		columns = DefaultSampleColumns
	}
	if entityName == "" {
		entityName = "Entity"
	}
	idColumn := strings.ToLower(entityName) + "_id"

	rng := rand.New(rand.NewSource(seed))
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{idColumn}, columns...)); err != nil {
		return fmt.Errorf("error writing sample header: %w", err)
	}

	for i := 0; i < n; i++ {
		base := time.Date(2024, time.Month(1+rng.Intn(12)), 1+rng.Intn(28),
			rng.Intn(24), rng.Intn(60), rng.Intn(60), 0, time.UTC)
		row := make([]string, 0, len(columns)+1)
		row = append(row, fmt.Sprintf("%s-%04d", strings.ToUpper(entityName[:1]), i+1))

		current := base
		for j := range columns {
			if j > 0 {
				current = current.Add(time.Duration(15+rng.Intn(105)) * time.Minute)
				if i%3 == 0 && j == len(columns)/2 {
					// Force a gap wide enough to split clusters.
					current = current.AddDate(0, 0, 3+rng.Intn(10))
				}
				if rng.Float64() < 0.1 {
					row = append(row, "")
					continue
				}
			}
			stamped := current.Add(time.Duration(rng.Intn(1000)) * time.Millisecond)
			row = append(row, stamped.UTC().Format("2006-01-02 15:04:05.000"))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("error writing sample row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("error writing sample data: %w", err)
	}
	return nil
}
