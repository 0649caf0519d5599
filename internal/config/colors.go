package config

import (
	"fmt"
	"regexp"

	"timelineviz/internal/timeline"
)

// ColorScheme names the eight colors every rendered timeline uses. All
// eight must be set; the construction helpers guarantee that.
type ColorScheme struct {
	Line      string `yaml:"line" json:"line"`
	PointEdge string `yaml:"point_edge" json:"point_edge"`
	PointFace string `yaml:"point_face" json:"point_face"`
	Connector string `yaml:"connector" json:"connector"`
	LabelBG   string `yaml:"label_bg" json:"label_bg"`
	LabelEdge string `yaml:"label_edge" json:"label_edge"`
	Slashes   string `yaml:"slashes" json:"slashes"`
	Title     string `yaml:"title" json:"title"`
}

const (
	defaultBaseColor   = "#0046be"
	defaultAccentColor = "#ffe000"
	defaultLabelBG     = "#f5f5f5"
)

// DefaultColorScheme returns the stock blue and yellow scheme.
func DefaultColorScheme() ColorScheme {
	return ColorSchemeFromPair(defaultBaseColor, defaultAccentColor)
}

// ColorSchemeFromPair builds a full scheme from a base color, used for
// lines and text, and an accent color for the point faces. Empty arguments
// fall back to the stock colors.
func ColorSchemeFromPair(base, accent string) ColorScheme {
	if base == "" {
		base = defaultBaseColor
	}
	if accent == "" {
		accent = defaultAccentColor
	}
	return ColorScheme{
		Line:      base,
		PointEdge: base,
		PointFace: accent,
		Connector: base,
		LabelBG:   defaultLabelBG,
		LabelEdge: base,
		Slashes:   base,
		Title:     base,
	}
}

func (c ColorScheme) byName() map[string]string {
	return map[string]string{
		"line":       c.Line,
		"point_edge": c.PointEdge,
		"point_face": c.PointFace,
		"connector":  c.Connector,
		"label_bg":   c.LabelBG,
		"label_edge": c.LabelEdge,
		"slashes":    c.Slashes,
		"title":      c.Title,
	}
}

// colorNames fixes the order Validate reports problems in.
var colorNames = []string{
	"line", "point_edge", "point_face", "connector",
	"label_bg", "label_edge", "slashes", "title",
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks that all eight colors are present and well-formed hex.
func (c ColorScheme) Validate() error {
	values := c.byName()
	for _, name := range colorNames {
		v := values[name]
		if v == "" {
			return &timeline.ConfigError{Setting: "colors." + name, Reason: "missing"}
		}
		if !hexColor.MatchString(v) {
			return &timeline.ConfigError{
				Setting: "colors." + name,
				Reason:  fmt.Sprintf("%q is not a #rrggbb color", v),
			}
		}
	}
	return nil
}

// Merge applies name to color overrides on top of c. An unknown name is a
// configuration error.
func (c ColorScheme) Merge(overrides map[string]string) (ColorScheme, error) {
	out := c
	for name, v := range overrides {
		switch name {
		case "line":
			out.Line = v
		case "point_edge":
			out.PointEdge = v
		case "point_face":
			out.PointFace = v
		case "connector":
			out.Connector = v
		case "label_bg":
			out.LabelBG = v
		case "label_edge":
			out.LabelEdge = v
		case "slashes":
			out.Slashes = v
		case "title":
			out.Title = v
		default:
			return out, &timeline.ConfigError{
				Setting: "colors",
				Reason:  fmt.Sprintf("unknown color %q", name),
			}
		}
	}
	return out, nil
}
