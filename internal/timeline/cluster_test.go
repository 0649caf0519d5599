package timeline

import (
	"errors"
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func eventsAt(times ...time.Time) []Event {
	out := make([]Event, len(times))
	for i, t := range times {
		out[i] = Event{Field: "f", Label: "F", When: t}
	}
	return out
}

func TestFindClustersPartition(t *testing.T) {
	events := eventsAt(day(1), day(2), day(3), day(10), day(11), day(25))
	clusters, err := FindClusters(events, 5)
	if err != nil {
		t.Fatalf("FindClusters: %v", err)
	}

	var flat []Event
	for _, c := range clusters {
		if len(c.Events) == 0 {
			t.Fatal("empty cluster in result")
		}
		flat = append(flat, c.Events...)
	}
	if len(flat) != len(events) {
		t.Fatalf("partition lost events: got %d, want %d", len(flat), len(events))
	}
	for i := range flat {
		if !flat[i].When.Equal(events[i].When) {
			t.Errorf("event %d out of order: got %v, want %v", i, flat[i].When, events[i].When)
		}
	}
}

func TestFindClustersGapProperties(t *testing.T) {
	events := eventsAt(day(1), day(2), day(3), day(10), day(11), day(25))
	const threshold = 5.0
	clusters, err := FindClusters(events, threshold)
	if err != nil {
		t.Fatalf("FindClusters: %v", err)
	}

	for ci, c := range clusters {
		for i := 1; i < len(c.Events); i++ {
			if gap := GapDays(c.Events[i-1], c.Events[i]); gap > threshold {
				t.Errorf("cluster %d has internal gap %.1f > threshold", ci, gap)
			}
		}
	}
	for i := 1; i < len(clusters); i++ {
		gap := clusters[i].Start().Sub(clusters[i-1].End()).Hours() / 24
		if gap <= threshold {
			t.Errorf("gap between clusters %d and %d is %.1f, want > threshold", i-1, i, gap)
		}
	}
}

func TestFindClustersTwoGroups(t *testing.T) {
	events := eventsAt(day(1), day(2), day(10), day(11))
	clusters, err := FindClusters(events, 5)
	if err != nil {
		t.Fatalf("FindClusters: %v", err)
	}
	if len(clusters) != 2 {
		t.Fatalf("got %d clusters, want 2", len(clusters))
	}
	if len(clusters[0].Events) != 2 || len(clusters[1].Events) != 2 {
		t.Errorf("cluster sizes %d/%d, want 2/2", len(clusters[0].Events), len(clusters[1].Events))
	}
	if !clusters[0].Start().Equal(day(1)) || !clusters[0].End().Equal(day(2)) {
		t.Errorf("first cluster spans %v to %v", clusters[0].Start(), clusters[0].End())
	}
	if !clusters[1].Start().Equal(day(10)) || !clusters[1].End().Equal(day(11)) {
		t.Errorf("second cluster spans %v to %v", clusters[1].Start(), clusters[1].End())
	}
}

func TestFindClustersGapEqualToThreshold(t *testing.T) {
	// Only a gap strictly greater than the threshold splits.
	events := eventsAt(day(1), day(6))
	clusters, err := FindClusters(events, 5)
	if err != nil {
		t.Fatalf("FindClusters: %v", err)
	}
	if len(clusters) != 1 {
		t.Fatalf("gap equal to threshold split into %d clusters, want 1", len(clusters))
	}
}

func TestFindClustersSingleEvent(t *testing.T) {
	clusters, err := FindClusters(eventsAt(day(1)), 5)
	if err != nil {
		t.Fatalf("FindClusters: %v", err)
	}
	if len(clusters) != 1 || len(clusters[0].Events) != 1 {
		t.Fatalf("got %+v, want one cluster with one event", clusters)
	}
}

func TestFindClustersEmpty(t *testing.T) {
	clusters, err := FindClusters(nil, 5)
	if err != nil {
		t.Fatalf("FindClusters: %v", err)
	}
	if clusters != nil {
		t.Fatalf("got %+v, want nil", clusters)
	}

	// The empty-input short circuit applies even with a bad threshold.
	if _, err := FindClusters(nil, -1); err != nil {
		t.Fatalf("empty input with bad threshold: %v", err)
	}
}

func TestFindClustersBadThreshold(t *testing.T) {
	for _, threshold := range []float64{0, -1} {
		_, err := FindClusters(eventsAt(day(1), day(2)), threshold)
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("threshold %v: got %v, want *ConfigError", threshold, err)
		}
	}
}

func TestClusterPadding(t *testing.T) {
	multi := Cluster{Events: eventsAt(day(1), day(11))}
	if got, want := multi.PaddingDays(), 1.5; got != want {
		t.Errorf("multi-event padding = %v, want %v (15%% of span)", got, want)
	}
	single := Cluster{Events: eventsAt(day(1))}
	if got := single.PaddingDays(); got != 0.1 {
		t.Errorf("single-event padding = %v, want 0.1", got)
	}
	// Multiple events at the same instant: zero span must not mean zero
	// padding.
	tied := Cluster{Events: eventsAt(day(1), day(1), day(1))}
	if got := tied.PaddingDays(); got != 0.1 {
		t.Errorf("zero-span padding = %v, want 0.1", got)
	}
}

func TestClusterWidthRatio(t *testing.T) {
	c := Cluster{Events: eventsAt(day(1), day(2), day(3))}
	if c.WidthRatio() != 3 {
		t.Errorf("WidthRatio = %d, want 3", c.WidthRatio())
	}
}

func TestLabelAlternation(t *testing.T) {
	for i := 0; i < 6; i++ {
		wantAbove := i%2 == 0
		if Above(i) != wantAbove {
			t.Errorf("Above(%d) = %v, want %v", i, Above(i), wantAbove)
		}
		offset := LabelOffset(i)
		if wantAbove && offset != 0.8 {
			t.Errorf("LabelOffset(%d) = %v, want 0.8", i, offset)
		}
		if !wantAbove && offset != -0.8 {
			t.Errorf("LabelOffset(%d) = %v, want -0.8", i, offset)
		}
	}
}
