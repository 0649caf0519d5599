package render

import (
	"fmt"
	"strings"

	"timelineviz/internal/config"
)

const (
	svgFontFamily = "Arial, sans-serif"
	svgLabelSize  = 11.0
	svgStampSize  = 10.0
	svgTickSize   = 9.0
	// approximate glyph width as a fraction of font size, used to size
	// label boxes without font metrics
	svgCharWidth = 0.6
)

// renderSVG draws the timeline geometry as a standalone SVG document.
func renderSVG(l layoutGeom, cfg config.Config) []byte {
	var svg strings.Builder
	colors := cfg.Colors

	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">
`, int(l.Width), int(l.Height), int(l.Width), int(l.Height)))
	svg.WriteString(`<rect width="100%" height="100%" fill="#ffffff"/>` + "\n")

	svg.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-family="%s" font-size="18" font-weight="bold" fill="%s">%s</text>`+"\n",
		marginX, marginTop/2, svgFontFamily, colors.Title, escapeXML(l.Title)))

	for _, band := range l.Bands {
		svg.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>`+"\n",
			band.X0, l.BaselineY, band.X1, l.BaselineY, colors.Line))

		tickY := l.Height - marginBottom + 20
		svg.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-family="%s" font-size="%.0f" fill="%s" text-anchor="start">%s</text>`+"\n",
			band.X0, tickY, svgFontFamily, svgTickSize, colors.Line, escapeXML(band.StartLabel)))
		if band.EndLabel != band.StartLabel {
			svg.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-family="%s" font-size="%.0f" fill="%s" text-anchor="end">%s</text>`+"\n",
				band.X1, tickY, svgFontFamily, svgTickSize, colors.Line, escapeXML(band.EndLabel)))
		}

		for _, p := range band.Points {
			labelY := l.labelY(p.Above)
			svg.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1.2"/>`+"\n",
				p.X, l.BaselineY, p.X, labelY, colors.Connector))
			drawMarker(&svg, cfg.MarkerShape, p.X, l.BaselineY, float64(cfg.PointSize), colors)
			drawLabelBox(&svg, p, labelY, colors)
		}
	}

	for _, bx := range l.Breaks {
		drawBreakMarker(&svg, bx, l.BaselineY, colors.Slashes)
	}

	svg.WriteString("</svg>\n")
	return []byte(svg.String())
}

// drawLabelBox draws the two-line event label, column name over timestamp,
// inside a rounded box anchored at the connector end.
func drawLabelBox(svg *strings.Builder, p pointGeom, labelY float64, colors config.ColorScheme) {
	labelW := float64(len(p.Label)) * svgLabelSize * svgCharWidth
	stampW := float64(len(p.Stamp)) * svgStampSize * svgCharWidth
	boxW := maxFloat(labelW, stampW) + 12
	boxH := svgLabelSize + svgStampSize + 12

	boxY := labelY - boxH
	if !p.Above {
		boxY = labelY
	}
	boxX := p.X - boxW/2

	svg.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="4" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		boxX, boxY, boxW, boxH, colors.LabelBG, colors.LabelEdge))
	svg.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-family="%s" font-size="%.0f" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`+"\n",
		p.X, boxY+svgLabelSize+3, svgFontFamily, svgLabelSize, colors.Title, escapeXML(p.Label)))
	svg.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-family="%s" font-size="%.0f" fill="%s" text-anchor="middle">%s</text>`+"\n",
		p.X, boxY+svgLabelSize+svgStampSize+6, svgFontFamily, svgStampSize, colors.Title, escapeXML(p.Stamp)))
}

// drawMarker draws an event marker of the configured shape centered on the
// baseline. Unknown shapes fall back to a circle.
func drawMarker(svg *strings.Builder, shape string, x, y, size float64, colors config.ColorScheme) {
	half := size / 2
	switch shape {
	case "square":
		svg.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
			x-half, y-half, size, size, colors.PointFace, colors.PointEdge))
	case "diamond":
		svg.WriteString(fmt.Sprintf(`<polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
			x, y-half, x+half, y, x, y+half, x-half, y, colors.PointFace, colors.PointEdge))
	case "triangle":
		svg.WriteString(fmt.Sprintf(`<polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
			x, y-half, x+half, y+half, x-half, y+half, colors.PointFace, colors.PointEdge))
	default:
		svg.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
			x, y, half, colors.PointFace, colors.PointEdge))
	}
}

// drawBreakMarker draws the pair of slanted slashes that mark a discarded
// time span between clusters.
func drawBreakMarker(svg *strings.Builder, x, y float64, color string) {
	const slashH = 10.0
	const slashW = 5.0
	for _, dx := range []float64{-3, 3} {
		svg.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>`+"\n",
			x+dx-slashW/2, y+slashH/2, x+dx+slashW/2, y-slashH/2, color))
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// escapeXML escapes the five XML special characters in text content.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
