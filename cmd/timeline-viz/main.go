// Command timeline-viz renders event timeline images from CSV data.
//
// Each row (or each distinct id) becomes one timeline: its timestamp
// columns are normalized, clustered by gap threshold, and drawn as an SVG
// or PNG file named after the entity.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"timelineviz/internal/config"
	"timelineviz/internal/logging"
	"timelineviz/internal/render"
	"timelineviz/internal/source"
)

func main() {
	var (
		csvPath    = flag.String("csv", "", "Path to the input CSV file (required)")
		configPath = flag.String("config", "", "Path to a YAML config file")
		columns    = flag.String("timestamp-columns", "", "Comma-separated timestamp column names")
		detect     = flag.Bool("detect", true, "Auto-detect timestamp columns by name pattern")
		idColumn   = flag.String("id-column", "", "Column holding the entity id (default: one timeline per row)")
		entityName = flag.String("entity-name", "", "Entity name used in titles and file names")
		outputDir  = flag.String("output-dir", "", "Directory for rendered images (default: write nothing)")
		maxEnt     = flag.Int("max-entities", 0, "Maximum number of entities to render (0 = all)")
		threshold  = flag.Float64("threshold-days", 0, "Gap in days that starts a new cluster")
		width      = flag.Int("width", 0, "Image width in pixels")
		height     = flag.Int("height", 0, "Image height in pixels")
		pointSize  = flag.Int("point-size", 0, "Event marker size in pixels")
		dpi        = flag.Int("dpi", 0, "Raster resolution for PNG output")
		format     = flag.String("format", "", "Output format: svg or png")
		marker     = flag.String("marker", "", "Marker shape: circle, square, diamond or triangle")
		colorsJSON = flag.String("colors", "", "JSON object of color overrides, e.g. '{\"line\":\"#333333\"}'")
		baseColor  = flag.String("base-color", "", "Base color for a derived scheme")
		accent     = flag.String("accent-color", "", "Accent color for a derived scheme")
		labelsJSON = flag.String("labels", "", "JSON object mapping column names to display labels")
		suffixes   = flag.String("remove-suffixes", "", "Comma-separated suffixes stripped from auto-generated labels")
		show       = flag.Bool("show", false, "Write rendered images to stdout when no output directory is set")
		onError    = flag.String("on-error", "", "Unparseable timestamp policy: coerce, raise or pass")
		workers    = flag.Int("workers", 0, "Number of concurrent render workers")
		generate   = flag.Int("generate", 0, "Generate N rows of sample data to the CSV path and exit")
		logLevel   = flag.String("log-level", "info", "Log level: debug, info, warn or error")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -csv <file.csv> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Renders one timeline image per entity from CSV timestamp columns.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logging.Init(level)

	if *csvPath == "" {
		fmt.Fprintf(os.Stderr, "Error: -csv is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	if *generate > 0 {
		name := *entityName
		if name == "" {
			name = "Entity"
		}
		cols := splitList(*columns)
		if err := writeSample(*csvPath, *generate, name, cols); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %d sample rows to %s\n", *generate, *csvPath)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flags override the config file only when set on the command line.
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["timestamp-columns"] {
		cfg.TimestampColumns = splitList(*columns)
	}
	if set["detect"] {
		cfg.DetectTimestamps = *detect
	}
	if set["id-column"] {
		cfg.IDColumn = *idColumn
	}
	if set["entity-name"] {
		cfg.EntityName = *entityName
	}
	if set["output-dir"] {
		cfg.OutputDir = *outputDir
	}
	if set["max-entities"] {
		cfg.MaxEntities = *maxEnt
	}
	if set["threshold-days"] {
		cfg.ThresholdDays = *threshold
	}
	if set["width"] {
		cfg.Width = *width
	}
	if set["height"] {
		cfg.Height = *height
	}
	if set["point-size"] {
		cfg.PointSize = *pointSize
	}
	if set["dpi"] {
		cfg.DPI = *dpi
	}
	if set["format"] {
		cfg.Format = strings.ToLower(*format)
	}
	if set["marker"] {
		cfg.MarkerShape = strings.ToLower(*marker)
	}
	if set["remove-suffixes"] {
		cfg.RemoveSuffixes = splitList(*suffixes)
	}
	if set["show"] {
		cfg.Show = *show
	}
	if set["on-error"] {
		cfg.OnError = *onError
	}
	if set["workers"] {
		cfg.Workers = *workers
	}
	if set["base-color"] || set["accent-color"] {
		cfg.Colors = config.ColorSchemeFromPair(*baseColor, *accent)
	}
	if *colorsJSON != "" {
		overrides := make(map[string]string)
		if err := json.Unmarshal([]byte(*colorsJSON), &overrides); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -colors JSON: %v\n", err)
			os.Exit(1)
		}
		cfg.Colors, err = cfg.Colors.Merge(overrides)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *labelsJSON != "" {
		labels := make(map[string]string)
		if err := json.Unmarshal([]byte(*labelsJSON), &labels); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -labels JSON: %v\n", err)
			os.Exit(1)
		}
		cfg.LabelOverrides = labels
	}

	table, err := source.ReadCSV(*csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	processed, err := render.All(ctx, table, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(processed) == 0 {
		fmt.Fprintln(os.Stderr, "No timelines were generated. Check your timestamp columns and data.")
		os.Exit(1)
	}
	fmt.Printf("Successfully processed %d timelines.\n", len(processed))
}

func writeSample(path string, n int, entityName string, columns []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating sample file: %w", err)
	}
	defer f.Close()
	return source.GenerateSample(f, n, entityName, columns, 42)
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
