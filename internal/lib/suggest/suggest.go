// Package suggest computes free time inside a proposal window from the busy
// intervals of its participants.
package suggest

import (
	"fmt"
	"sort"

	"studyPlanner/internal/lib/lifecycle"
	"studyPlanner/internal/models"
)

// CalcSuggestedTimes returns the maximal disjoint sub-intervals of window
// not covered by any busy interval, ordered by start. Gaps shorter than
// minDuration are dropped. All intervals are half-open, so busy intervals
// that only touch are merged and produce no zero-length gap.
func CalcSuggestedTimes(busy []models.Interval, window models.Interval, minDuration int64) ([]models.Interval, error) {
	if err := lifecycle.ValidateInterval("window", window); err != nil {
		return nil, err
	}
	if minDuration < 0 {
		return nil, models.NewValidationError("min_duration", "must not be negative")
	}
	for i, b := range busy {
		if err := lifecycle.ValidateInterval(fmt.Sprintf("existing_times[%d]", i), b); err != nil {
			return nil, err
		}
	}

	merged := Merge(Clip(busy, window))

	free := make([]models.Interval, 0, len(merged)+1)
	cursor := window.Start
	for _, b := range merged {
		if b.Start > cursor {
			free = appendGap(free, models.Interval{Start: cursor, End: b.Start}, minDuration)
		}
		cursor = b.End
	}
	if cursor < window.End {
		free = appendGap(free, models.Interval{Start: cursor, End: window.End}, minDuration)
	}

	return free, nil
}

func appendGap(free []models.Interval, gap models.Interval, minDuration int64) []models.Interval {
	if gap.Duration() <= 0 || gap.Duration() < minDuration {
		return free
	}
	return append(free, gap)
}

// Clip keeps the intervals overlapping window, cut to its bounds.
func Clip(intervals []models.Interval, window models.Interval) []models.Interval {
	clipped := make([]models.Interval, 0, len(intervals))
	for _, i := range intervals {
		if !i.Overlaps(window) {
			continue
		}
		clipped = append(clipped, models.Interval{
			Start: max(i.Start, window.Start),
			End:   min(i.End, window.End),
		})
	}
	return clipped
}

// Merge sorts intervals by start and joins overlapping or adjacent ones
// into a minimal covering set. The input slice is reordered.
func Merge(intervals []models.Interval) []models.Interval {
	if len(intervals) == 0 {
		return nil
	}

	sort.Slice(intervals, func(a, b int) bool {
		if intervals[a].Start != intervals[b].Start {
			return intervals[a].Start < intervals[b].Start
		}
		return intervals[a].End < intervals[b].End
	})

	merged := []models.Interval{intervals[0]}
	for _, i := range intervals[1:] {
		last := &merged[len(merged)-1]
		if i.Start <= last.End {
			last.End = max(last.End, i.End)
			continue
		}
		merged = append(merged, i)
	}

	return merged
}
