package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"timelineviz/internal/timeline"
)

// Threshold defaults differ by entry point: a single-record render breaks
// on month-scale gaps, batch rendering on day-scale gaps.
const (
	DefaultSingleThresholdDays = 30.0
	DefaultBatchThresholdDays  = 1.0
)

// Config controls one rendering run. The zero value is not usable; start
// from Default and override.
type Config struct {
	TimestampColumns []string          `yaml:"timestamp_columns"`
	DetectTimestamps bool              `yaml:"detect_timestamps"`
	IDColumn         string            `yaml:"id_column"`
	EntityName       string            `yaml:"entity_name"`
	OutputDir        string            `yaml:"output_dir"`
	MaxEntities      int               `yaml:"max_entities"`
	ThresholdDays    float64           `yaml:"threshold_days"`
	Width            int               `yaml:"width"`
	Height           int               `yaml:"height"`
	PointSize        int               `yaml:"point_size"`
	DPI              int               `yaml:"dpi"`
	Format           string            `yaml:"format"`
	MarkerShape      string            `yaml:"marker_shape"`
	Colors           ColorScheme       `yaml:"colors"`
	LabelOverrides   map[string]string `yaml:"labels"`
	RemoveSuffixes   []string          `yaml:"remove_suffixes"`
	Show             bool              `yaml:"show"`
	OnError          string            `yaml:"on_error"`
	Workers          int               `yaml:"workers"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		DetectTimestamps: true,
		EntityName:       "Entity",
		ThresholdDays:    DefaultBatchThresholdDays,
		Width:            1500,
		Height:           500,
		PointSize:        10,
		DPI:              150,
		Format:           "svg",
		MarkerShape:      "circle",
		Colors:           DefaultColorScheme(),
		RemoveSuffixes:   append([]string(nil), timeline.DefaultRemoveSuffixes...),
		OnError:          "coerce",
		Workers:          4,
	}
}

// Load reads a YAML config file on top of the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing config file: %w", err)
	}
	return cfg, nil
}

// ErrorPolicy maps the on_error setting to the normalizer policy.
func (c Config) ErrorPolicy() (timeline.ErrorPolicy, error) {
	switch c.OnError {
	case "", "coerce":
		return timeline.Coerce, nil
	case "raise":
		return timeline.Raise, nil
	case "pass":
		return timeline.PassThrough, nil
	}
	return timeline.Coerce, &timeline.ConfigError{
		Setting: "on_error",
		Reason:  fmt.Sprintf("unknown policy %q, want coerce, raise or pass", c.OnError),
	}
}

// Validate checks every setting a render run depends on. It runs before
// any entity is touched so a bad config never produces partial output.
func (c Config) Validate() error {
	// ThresholdDays 0 means unset: the render layer resolves it to the
	// single-record default. The cluster engine still rejects any
	// non-positive value that reaches it.
	if c.ThresholdDays < 0 {
		return &timeline.ConfigError{Setting: "threshold_days", Reason: "must not be negative"}
	}
	if c.Width <= 0 || c.Height <= 0 {
		return &timeline.ConfigError{Setting: "width/height", Reason: "must be positive"}
	}
	if c.PointSize <= 0 {
		return &timeline.ConfigError{Setting: "point_size", Reason: "must be positive"}
	}
	switch c.Format {
	case "svg", "png":
	default:
		return &timeline.ConfigError{Setting: "format", Reason: fmt.Sprintf("unknown format %q, want svg or png", c.Format)}
	}
	switch c.MarkerShape {
	case "circle", "square", "diamond", "triangle":
	default:
		return &timeline.ConfigError{Setting: "marker_shape", Reason: fmt.Sprintf("unknown shape %q", c.MarkerShape)}
	}
	if _, err := c.ErrorPolicy(); err != nil {
		return err
	}
	return c.Colors.Validate()
}
