package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"timelineviz/internal/config"
	"timelineviz/internal/source"
	"timelineviz/internal/timeline"
)

// All renders every entity in the table and returns the ids processed, in
// entity order. Per-entity rendering failures are contained: the entity is
// skipped with a warning and the batch goes on. Configuration and output
// resource errors abort the whole batch.
func All(ctx context.Context, table *source.Table, cfg config.Config) ([]string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for col := range cfg.LabelOverrides {
		if !table.HasColumn(col) {
			return nil, &timeline.ConfigError{
				Setting: "labels",
				Reason:  fmt.Sprintf("unknown column %q", col),
			}
		}
	}

	columns := selectColumns(table, cfg)
	if len(columns) == 0 {
		slog.Warn("no timestamp columns specified or detected")
		return nil, nil
	}

	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("error creating output directory: %w", err)
		}
	}

	entities, err := table.Entities(cfg.IDColumn, cfg.MaxEntities)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	rendered := make([]bool, len(entities))
	skipped := 0

	g, ctx := errgroup.WithContext(ctx)
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	g.SetLimit(workers)

	for i, ent := range entities {
		i, ent := i, ent
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, ok, err := One(ent.Record, columns, ent.ID, cfg)
			if err != nil {
				var cfgErr *timeline.ConfigError
				if errors.As(err, &cfgErr) {
					return err
				}
				slog.Warn("skipping entity", "id", ent.ID, "err", err)
				mu.Lock()
				skipped++
				mu.Unlock()
				return nil
			}
			if !ok {
				slog.Info("no valid timestamps, skipping", "id", ent.ID)
				mu.Lock()
				skipped++
				mu.Unlock()
				return nil
			}
			if cfg.OutputDir != "" {
				path := OutputPath(cfg.OutputDir, cfg.EntityName, ent.ID, cfg.Format)
				if err := WriteFile(path, data); err != nil {
					return err
				}
				slog.Info("saved timeline", "id", ent.ID, "path", path)
			} else if cfg.Show {
				mu.Lock()
				os.Stdout.Write(data)
				mu.Unlock()
			}
			mu.Lock()
			rendered[i] = true
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var processed []string
	for i, ok := range rendered {
		if ok {
			processed = append(processed, entities[i].ID)
		}
	}
	slog.Info("batch complete", "processed", len(processed), "skipped", skipped)
	return processed, nil
}

// selectColumns combines the explicitly configured timestamp columns with
// the detected ones. Explicit columns come first; columns absent from the
// table are kept and simply yield no events.
func selectColumns(table *source.Table, cfg config.Config) []string {
	cols := append([]string(nil), cfg.TimestampColumns...)
	if cfg.DetectTimestamps {
		for _, d := range timeline.DetectTimestampColumns(table.Columns) {
			if !containsString(cols, d) {
				cols = append(cols, d)
			}
		}
	}
	return cols
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
