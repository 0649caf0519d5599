package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"timelineviz/internal/config"
)

const (
	pngLabelSize = 11.0
	pngStampSize = 10.0
	pngTickSize  = 9.0
)

// renderPNG draws the timeline geometry onto a raster surface and encodes
// it as PNG.
func renderPNG(l layoutGeom, cfg config.Config) ([]byte, error) {
	r, err := chart.PNG(int(l.Width), int(l.Height))
	if err != nil {
		return nil, fmt.Errorf("error creating PNG surface: %w", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("error loading font: %w", err)
	}
	r.SetDPI(float64(cfg.DPI))
	r.SetFont(font)

	colors := cfg.Colors
	fillRect(r, 0, 0, l.Width, l.Height, drawing.ColorWhite)

	r.SetFontColor(hexColor(colors.Title))
	r.SetFontSize(14)
	r.Text(l.Title, int(marginX), int(marginTop/2))

	for _, band := range l.Bands {
		strokeLine(r, band.X0, l.BaselineY, band.X1, l.BaselineY, hexColor(colors.Line), 2)

		tickY := l.Height - marginBottom + 20
		r.SetFontColor(hexColor(colors.Line))
		r.SetFontSize(pngTickSize)
		r.Text(band.StartLabel, int(band.X0), int(tickY))
		if band.EndLabel != band.StartLabel {
			box := r.MeasureText(band.EndLabel)
			r.Text(band.EndLabel, int(band.X1)-box.Width(), int(tickY))
		}

		for _, p := range band.Points {
			labelY := l.labelY(p.Above)
			strokeLine(r, p.X, l.BaselineY, p.X, labelY, hexColor(colors.Connector), 1.2)
			drawRasterMarker(r, cfg.MarkerShape, p.X, l.BaselineY, float64(cfg.PointSize), colors)
			drawRasterLabel(r, p, labelY, colors)
		}
	}

	for _, bx := range l.Breaks {
		const slashH = 10.0
		const slashW = 5.0
		for _, dx := range []float64{-3, 3} {
			strokeLine(r, bx+dx-slashW/2, l.BaselineY+slashH/2, bx+dx+slashW/2, l.BaselineY-slashH/2, hexColor(colors.Slashes), 2)
		}
	}

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, fmt.Errorf("error encoding PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func drawRasterLabel(r chart.Renderer, p pointGeom, labelY float64, colors config.ColorScheme) {
	r.SetFontSize(pngLabelSize)
	labelBox := r.MeasureText(p.Label)
	r.SetFontSize(pngStampSize)
	stampBox := r.MeasureText(p.Stamp)

	boxW := float64(labelBox.Width())
	if float64(stampBox.Width()) > boxW {
		boxW = float64(stampBox.Width())
	}
	boxW += 12
	boxH := float64(labelBox.Height()+stampBox.Height()) + 12

	boxY := labelY - boxH
	if !p.Above {
		boxY = labelY
	}
	boxX := p.X - boxW/2

	r.SetFillColor(hexColor(colors.LabelBG))
	r.SetStrokeColor(hexColor(colors.LabelEdge))
	r.SetStrokeWidth(1)
	r.MoveTo(int(boxX), int(boxY))
	r.LineTo(int(boxX+boxW), int(boxY))
	r.LineTo(int(boxX+boxW), int(boxY+boxH))
	r.LineTo(int(boxX), int(boxY+boxH))
	r.Close()
	r.FillStroke()

	r.SetFontColor(hexColor(colors.Title))
	r.SetFontSize(pngLabelSize)
	r.Text(p.Label, int(p.X)-labelBox.Width()/2, int(boxY)+labelBox.Height()+3)
	r.SetFontSize(pngStampSize)
	r.Text(p.Stamp, int(p.X)-stampBox.Width()/2, int(boxY)+labelBox.Height()+stampBox.Height()+6)
}

func drawRasterMarker(r chart.Renderer, shape string, x, y, size float64, colors config.ColorScheme) {
	half := size / 2
	r.SetFillColor(hexColor(colors.PointFace))
	r.SetStrokeColor(hexColor(colors.PointEdge))
	r.SetStrokeWidth(1.5)
	switch shape {
	case "square":
		r.MoveTo(int(x-half), int(y-half))
		r.LineTo(int(x+half), int(y-half))
		r.LineTo(int(x+half), int(y+half))
		r.LineTo(int(x-half), int(y+half))
		r.Close()
		r.FillStroke()
	case "diamond":
		r.MoveTo(int(x), int(y-half))
		r.LineTo(int(x+half), int(y))
		r.LineTo(int(x), int(y+half))
		r.LineTo(int(x-half), int(y))
		r.Close()
		r.FillStroke()
	case "triangle":
		r.MoveTo(int(x), int(y-half))
		r.LineTo(int(x+half), int(y+half))
		r.LineTo(int(x-half), int(y+half))
		r.Close()
		r.FillStroke()
	default:
		r.Circle(half, int(x), int(y))
		r.FillStroke()
	}
}

func strokeLine(r chart.Renderer, x0, y0, x1, y1 float64, c drawing.Color, width float64) {
	r.SetStrokeColor(c)
	r.SetStrokeWidth(width)
	r.MoveTo(int(x0), int(y0))
	r.LineTo(int(x1), int(y1))
	r.Stroke()
}

func fillRect(r chart.Renderer, x0, y0, x1, y1 float64, c drawing.Color) {
	r.SetFillColor(c)
	r.MoveTo(int(x0), int(y0))
	r.LineTo(int(x1), int(y0))
	r.LineTo(int(x1), int(y1))
	r.LineTo(int(x0), int(y1))
	r.Close()
	r.Fill()
}

// hexColor converts a #rrggbb string to a drawing color.
func hexColor(s string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(s, "#"))
}
