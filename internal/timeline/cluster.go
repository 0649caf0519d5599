package timeline

import "time"

const (
	// singlePointPaddingDays keeps a one-event cluster visible with margin.
	singlePointPaddingDays = 0.1
	// spanPaddingFraction is the share of a cluster's time span added as
	// x-axis padding on each side.
	spanPaddingFraction = 0.15
	// baseLabelOffset is the baseline-relative label position, alternated
	// above and below the line.
	baseLabelOffset = 0.8
)

// Event is one normalized timestamp selected from a record.
type Event struct {
	Field string
	Label string
	When  time.Time
}

// Cluster is a non-empty run of events whose consecutive gaps stay within
// the break threshold. Clusters are ordered and non-overlapping; together
// they partition the event sequence.
type Cluster struct {
	Events []Event
}

// Start returns the instant of the earliest event.
func (c Cluster) Start() time.Time { return c.Events[0].When }

// End returns the instant of the latest event.
func (c Cluster) End() time.Time { return c.Events[len(c.Events)-1].When }

// SpanDays is the cluster's time span in fractional days.
func (c Cluster) SpanDays() float64 {
	return c.End().Sub(c.Start()).Hours() / 24
}

// WidthRatio is the cluster's share of horizontal space relative to its
// siblings: clusters with more events get proportionally more room.
func (c Cluster) WidthRatio() int { return len(c.Events) }

// PaddingDays is the x-axis padding on each side of the cluster. A cluster
// whose events all share one instant has zero span and gets the fixed
// padding, so its time scale never degenerates.
func (c Cluster) PaddingDays() float64 {
	if span := c.SpanDays(); span > 0 {
		return span * spanPaddingFraction
	}
	return singlePointPaddingDays
}

// Above reports whether the i-th label within a cluster sits above the
// baseline. The alternation is fixed, not collision-aware.
func Above(i int) bool { return i%2 == 0 }

// LabelOffset is the signed baseline-relative label position for the i-th
// event within a cluster.
func LabelOffset(i int) float64 {
	if Above(i) {
		return baseLabelOffset
	}
	return -baseLabelOffset
}

// GapDays is the gap between two events in fractional days.
func GapDays(a, b Event) float64 {
	return b.When.Sub(a.When).Hours() / 24
}

// FindClusters partitions events into clusters in a single left-to-right
// pass: a gap strictly greater than thresholdDays starts a new cluster.
// Events must already be sorted ascending by When; the caller sorts once,
// stably, so ties keep their original field order.
func FindClusters(events []Event, thresholdDays float64) ([]Cluster, error) {
	if len(events) == 0 {
		return nil, nil
	}
	if thresholdDays <= 0 {
		return nil, &ConfigError{Setting: "threshold_days", Reason: "must be positive"}
	}

	var clusters []Cluster
	start := 0
	for i := 1; i < len(events); i++ {
		if GapDays(events[i-1], events[i]) > thresholdDays {
			clusters = append(clusters, Cluster{Events: events[start:i]})
			start = i
		}
	}
	clusters = append(clusters, Cluster{Events: events[start:]})
	return clusters, nil
}
