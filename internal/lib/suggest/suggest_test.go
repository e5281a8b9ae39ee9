package suggest

import (
	"math/rand"
	"testing"

	"studyPlanner/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iv(start, end int64) models.Interval {
	return models.Interval{Start: start, End: end}
}

func TestCalcSuggestedTimes(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		busy        []models.Interval
		window      models.Interval
		minDuration int64
		expected    []models.Interval
	}{
		{
			name:     "No busy time returns the window",
			busy:     nil,
			window:   iv(0, 100),
			expected: []models.Interval{iv(0, 100)},
		},
		{
			name:     "Overlapping busy intervals merge",
			busy:     []models.Interval{iv(20, 40), iv(30, 50)},
			window:   iv(0, 100),
			expected: []models.Interval{iv(0, 20), iv(50, 100)},
		},
		{
			name:     "Busy interval covering the window",
			busy:     []models.Interval{iv(0, 100)},
			window:   iv(0, 100),
			expected: []models.Interval{},
		},
		{
			name:     "Adjacent busy intervals leave no gap",
			busy:     []models.Interval{iv(10, 20), iv(20, 30)},
			window:   iv(0, 40),
			expected: []models.Interval{iv(0, 10), iv(30, 40)},
		},
		{
			name:     "Busy time outside the window is ignored",
			busy:     []models.Interval{iv(-50, -10), iv(200, 300), iv(100, 120)},
			window:   iv(0, 100),
			expected: []models.Interval{iv(0, 100)},
		},
		{
			name:     "Busy time crossing the window bounds is clipped",
			busy:     []models.Interval{iv(-10, 10), iv(90, 150)},
			window:   iv(0, 100),
			expected: []models.Interval{iv(10, 90)},
		},
		{
			name:     "Unsorted input",
			busy:     []models.Interval{iv(70, 80), iv(10, 20), iv(40, 50)},
			window:   iv(0, 100),
			expected: []models.Interval{iv(0, 10), iv(20, 40), iv(50, 70), iv(80, 100)},
		},
		{
			name:        "Short gaps are dropped",
			busy:        []models.Interval{iv(5, 40), iv(45, 60)},
			window:      iv(0, 100),
			minDuration: 10,
			expected:    []models.Interval{iv(60, 100)},
		},
		{
			name:        "Gap equal to the minimum is kept",
			busy:        []models.Interval{iv(10, 90)},
			window:      iv(0, 100),
			minDuration: 10,
			expected:    []models.Interval{iv(0, 10), iv(90, 100)},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := CalcSuggestedTimes(tc.busy, tc.window, tc.minDuration)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestCalcSuggestedTimesValidation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		busy        []models.Interval
		window      models.Interval
		minDuration int64
		field       string
	}{
		{name: "Empty window", window: iv(10, 10), field: "window"},
		{name: "Inverted window", window: iv(10, 0), field: "window"},
		{name: "Inverted busy interval", busy: []models.Interval{iv(0, 5), iv(30, 20)}, window: iv(0, 100), field: "existing_times[1]"},
		{name: "Negative minimum", window: iv(0, 100), minDuration: -1, field: "min_duration"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := CalcSuggestedTimes(tc.busy, tc.window, tc.minDuration)
			assert.Nil(t, got)

			var vErr *models.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

// Free and busy time together cover the window exactly, and no two
// suggestions overlap.
func TestCalcSuggestedTimesCoversWindow(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	window := iv(0, 1000)

	for round := 0; round < 200; round++ {
		busy := make([]models.Interval, rng.Intn(12))
		for i := range busy {
			start := int64(rng.Intn(1200)) - 100
			busy[i] = iv(start, start+1+int64(rng.Intn(150)))
		}

		input := append([]models.Interval(nil), busy...)
		free, err := CalcSuggestedTimes(input, window, 0)
		require.NoError(t, err)

		for i := 1; i < len(free); i++ {
			require.LessOrEqual(t, free[i-1].End, free[i].Start, "suggestions overlap or are unordered")
		}

		covered := make([]bool, window.End-window.Start)
		mark := func(i models.Interval, from string) {
			for p := i.Start; p < i.End; p++ {
				require.False(t, covered[p-window.Start], "instant %d covered twice (%s)", p, from)
				covered[p-window.Start] = true
			}
		}
		for _, f := range free {
			mark(f, "free")
		}
		for _, b := range Merge(Clip(busy, window)) {
			mark(b, "busy")
		}
		for p, c := range covered {
			require.True(t, c, "instant %d not covered", p)
		}
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Merge(nil))
	assert.Equal(t,
		[]models.Interval{iv(0, 30), iv(40, 50)},
		Merge([]models.Interval{iv(40, 50), iv(10, 30), iv(0, 15), iv(12, 14)}),
	)
}
