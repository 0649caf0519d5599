package render

import (
	"time"

	"timelineviz/internal/config"
	"timelineviz/internal/timeline"
)

// Canvas geometry shared by both output surfaces.
const (
	marginX      = 60.0
	marginTop    = 70.0
	marginBottom = 50.0
	// bandGap is the horizontal gap between cluster bands; the break
	// markers are drawn in its middle.
	bandGap = 24.0
	// labelReach is the share of the half-plot height labels sit at.
	labelReach = 2.0 / 3.0
)

type pointGeom struct {
	X     float64
	Above bool
	Label string
	Stamp string
}

type bandGeom struct {
	X0, X1     float64
	StartLabel string
	EndLabel   string
	Points     []pointGeom
}

type layoutGeom struct {
	Width, Height float64
	BaselineY     float64
	Title         string
	Bands         []bandGeom
	Breaks        []float64
}

func (l layoutGeom) labelY(above bool) float64 {
	half := (l.Height - marginTop - marginBottom) / 2
	if above {
		return l.BaselineY - half*labelReach
	}
	return l.BaselineY + half*labelReach
}

// computeLayout maps clusters to pixel geometry. Horizontal space is split
// between clusters by width ratio with a fixed gap between bands, and each
// cluster gets its own time scale padded on both sides so points never sit
// on a band edge.
func computeLayout(clusters []timeline.Cluster, cfg config.Config, title string) layoutGeom {
	w := float64(cfg.Width)
	h := float64(cfg.Height)
	l := layoutGeom{
		Width:     w,
		Height:    h,
		BaselineY: marginTop + (h-marginTop-marginBottom)/2,
		Title:     title,
	}

	total := 0
	for _, c := range clusters {
		total += c.WidthRatio()
	}
	if total == 0 {
		return l
	}

	inner := w - 2*marginX
	if inner < 1 {
		inner = 1
	}
	gap := bandGap
	if n := float64(len(clusters) - 1); n > 0 && gap*n > inner/2 {
		// Narrow canvas: shrink the gaps so the bands keep at least half
		// the inner width.
		gap = inner / (2 * n)
	}
	avail := inner - gap*float64(len(clusters)-1)

	x := marginX
	for i, c := range clusters {
		bw := avail * float64(c.WidthRatio()) / float64(total)
		band := bandGeom{
			X0:         x,
			X1:         x + bw,
			StartLabel: c.Start().Format("2006-01-02"),
			EndLabel:   c.End().Format("2006-01-02"),
		}
		pad := c.PaddingDays()
		startDay := dayNumber(c.Start()) - pad
		span := dayNumber(c.End()) + pad - startDay
		for j, ev := range c.Events {
			frac := (dayNumber(ev.When) - startDay) / span
			band.Points = append(band.Points, pointGeom{
				X:     band.X0 + frac*bw,
				Above: timeline.Above(j),
				Label: ev.Label,
				Stamp: timeline.FormatTimestamp(ev.When),
			})
		}
		l.Bands = append(l.Bands, band)
		if i < len(clusters)-1 {
			l.Breaks = append(l.Breaks, x+bw+gap/2)
		}
		x += bw + gap
	}
	return l
}

// dayNumber maps an instant to fractional days since the Unix epoch.
func dayNumber(t time.Time) float64 {
	return float64(t.UnixMilli()) / (24 * 60 * 60 * 1000)
}
