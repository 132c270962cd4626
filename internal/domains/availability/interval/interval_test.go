package interval_test

import (
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"campusroom/internal/domains/availability/interval"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clock(t *testing.T, text string) int {
	t.Helper()

	minutes, err := interval.ToMinutes(text)
	require.NoError(t, err)

	return minutes
}

func span(t *testing.T, start, end string) interval.Interval {
	t.Helper()

	return interval.Interval{Start: clock(t, start), End: clock(t, end)}
}

func TestToMinutes(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "00:00", want: 0},
		{input: "08:00", want: 480},
		{input: "11:30", want: 690},
		{input: "23:59", want: 1439},
		{input: "24:00", want: 1440},
		{input: "24:01", wantErr: true},
		{input: "8:00", wantErr: true},
		{input: "08:60", wantErr: true},
		{input: "08-00", wantErr: true},
		{input: "+8:00", wantErr: true},
		{input: "ab:cd", wantErr: true},
		{input: "", wantErr: true},
		{input: "08:00:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := interval.ToMinutes(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, interval.ErrMalformedTime)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToClockTextRoundTrip(t *testing.T) {
	for minutes := 0; minutes <= interval.MinutesPerDay; minutes += 7 {
		text := interval.ToClockText(minutes)

		back, err := interval.ToMinutes(text)
		require.NoError(t, err, text)
		assert.Equal(t, minutes, back)
	}

	assert.Equal(t, "09:05", interval.ToClockText(545))
}

func TestParse(t *testing.T) {
	window, err := interval.Parse("09:00", "10:30")
	require.NoError(t, err)
	assert.Equal(t, interval.Interval{Start: 540, End: 630}, window)
	assert.Equal(t, "09:00-10:30", window.String())

	_, err = interval.Parse("10:00", "10:00")
	assert.ErrorIs(t, err, interval.ErrInvertedWindow)

	_, err = interval.Parse("11:00", "10:00")
	assert.ErrorIs(t, err, interval.ErrInvertedWindow)

	_, err = interval.Parse("9am", "10:00")
	assert.ErrorIs(t, err, interval.ErrMalformedTime)
}

func TestWeekdayOf(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{date: "2024-09-01", want: 0}, // Sunday
		{date: "2024-09-02", want: 1},
		{date: "2024-09-06", want: 5},
		{date: "2024-09-07", want: 6}, // Saturday
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			date, err := time.Parse("2006-01-02", tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, interval.WeekdayOf(date))
		})
	}
}

func TestOperatingHoursClamp(t *testing.T) {
	hours, err := interval.NewOperatingHours("08:00", "20:00")
	require.NoError(t, err)

	t.Run("wide window is clamped to operating hours", func(t *testing.T) {
		clamped, ok := hours.Clamp(span(t, "07:00", "21:00"))
		require.True(t, ok)
		assert.Equal(t, span(t, "08:00", "20:00"), clamped)
	})

	t.Run("inner window is untouched", func(t *testing.T) {
		clamped, ok := hours.Clamp(span(t, "09:00", "11:00"))
		require.True(t, ok)
		assert.Equal(t, span(t, "09:00", "11:00"), clamped)
	})

	t.Run("window entirely before opening is empty", func(t *testing.T) {
		_, ok := hours.Clamp(span(t, "06:00", "07:30"))
		assert.False(t, ok)
	})

	t.Run("window ending at opening is empty", func(t *testing.T) {
		_, ok := hours.Clamp(span(t, "06:00", "08:00"))
		assert.False(t, ok)
	})

	assert.True(t, hours.Contains(span(t, "08:00", "20:00")))
	assert.False(t, hours.Contains(span(t, "07:59", "09:00")))

	_, err = interval.NewOperatingHours("20:00", "08:00")
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name  string
		input []interval.Interval
		want  []interval.Interval
	}{
		{name: "empty", input: nil, want: []interval.Interval{}},
		{
			name:  "touching intervals coalesce",
			input: []interval.Interval{{Start: 600, End: 660}, {Start: 540, End: 600}},
			want:  []interval.Interval{{Start: 540, End: 660}},
		},
		{
			name:  "nested interval is absorbed",
			input: []interval.Interval{{Start: 540, End: 720}, {Start: 600, End: 630}},
			want:  []interval.Interval{{Start: 540, End: 720}},
		},
		{
			name:  "disjoint intervals stay apart",
			input: []interval.Interval{{Start: 700, End: 720}, {Start: 540, End: 600}},
			want:  []interval.Interval{{Start: 540, End: 600}, {Start: 700, End: 720}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, interval.Merge(tt.input))
		})
	}
}

func TestMergeDoesNotModifyInput(t *testing.T) {
	input := []interval.Interval{{Start: 700, End: 720}, {Start: 540, End: 600}}
	snapshot := slices.Clone(input)

	interval.Merge(input)

	assert.Equal(t, snapshot, input)
}

func TestInvert(t *testing.T) {
	window := interval.Interval{Start: 480, End: 720}

	assert.Equal(t, []interval.Interval{window}, interval.Invert(nil, window))

	assert.Equal(t,
		[]interval.Interval{{Start: 600, End: 720}},
		interval.Invert([]interval.Interval{{Start: 420, End: 600}}, window),
	)

	assert.Empty(t, interval.Invert([]interval.Interval{{Start: 400, End: 800}}, window))

	assert.Equal(t,
		[]interval.Interval{{Start: 480, End: 540}, {Start: 600, End: 660}},
		interval.Invert([]interval.Interval{{Start: 540, End: 600}, {Start: 660, End: 900}}, window),
	)
}

func TestDiscretize(t *testing.T) {
	tests := []struct {
		name     string
		free     interval.Interval
		duration int
		want     []interval.Interval
	}{
		{
			name:     "90 minutes with 120 minute slots yields nothing",
			free:     interval.Interval{Start: 540, End: 630},
			duration: 120,
			want:     []interval.Interval{},
		},
		{
			name:     "exact fit",
			free:     interval.Interval{Start: 480, End: 720},
			duration: 120,
			want:     []interval.Interval{{Start: 480, End: 600}, {Start: 600, End: 720}},
		},
		{
			name:     "remainder is dropped",
			free:     interval.Interval{Start: 480, End: 750},
			duration: 120,
			want:     []interval.Interval{{Start: 480, End: 600}, {Start: 600, End: 720}},
		},
		{
			name:     "non positive duration",
			free:     interval.Interval{Start: 480, End: 750},
			duration: 0,
			want:     []interval.Interval{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, interval.Discretize(tt.free, tt.duration))
		})
	}
}

func TestScenarios(t *testing.T) {
	hours, err := interval.NewOperatingHours("08:00", "20:00")
	require.NoError(t, err)

	t.Run("weekly block leaves the rest of the morning free", func(t *testing.T) {
		busy := []interval.Interval{span(t, "08:00", "10:00")}

		free := interval.Available(busy, span(t, "08:00", "12:00"))

		assert.Equal(t, []interval.Interval{span(t, "10:00", "12:00")}, free)
	})

	t.Run("reservation splits the free block", func(t *testing.T) {
		busy := []interval.Interval{span(t, "08:00", "10:00"), span(t, "11:00", "11:30")}

		free := interval.Available(busy, span(t, "08:00", "12:00"))

		assert.Equal(t, []interval.Interval{span(t, "10:00", "11:00"), span(t, "11:30", "12:00")}, free)
	})

	t.Run("window is clamped before computing", func(t *testing.T) {
		clamped, ok := hours.Clamp(span(t, "07:00", "21:00"))
		require.True(t, ok)

		assert.Equal(t, []interval.Interval{span(t, "08:00", "20:00")}, interval.Available(nil, clamped))
	})

	t.Run("touching busy intervals merge into one block", func(t *testing.T) {
		merged := interval.Merge([]interval.Interval{span(t, "09:00", "10:00"), span(t, "10:00", "11:00")})

		assert.Equal(t, []interval.Interval{span(t, "09:00", "11:00")}, merged)
	})

	t.Run("free interval shorter than slot has no slots", func(t *testing.T) {
		assert.Empty(t, interval.Discretize(span(t, "09:00", "10:30"), 120))
	})
}

func randomBusy(rng *rand.Rand) []interval.Interval {
	count := rng.IntN(8)
	busy := make([]interval.Interval, 0, count)

	for range count {
		start := rng.IntN(interval.MinutesPerDay - 1)
		end := start + 1 + rng.IntN(min(240, interval.MinutesPerDay-start))
		busy = append(busy, interval.Interval{Start: start, End: end})
	}

	return busy
}

func randomWindow(rng *rand.Rand) interval.Interval {
	start := rng.IntN(interval.MinutesPerDay - 1)
	end := start + 1 + rng.IntN(interval.MinutesPerDay-start)

	return interval.Interval{Start: start, End: end}
}

func TestMergeProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for range 2000 {
		busy := randomBusy(rng)
		merged := interval.Merge(busy)

		for idx := 1; idx < len(merged); idx++ {
			require.Less(t, merged[idx-1].End, merged[idx].Start, "output must be sorted, disjoint and non-touching")
		}

		for _, in := range busy {
			containing := 0

			for _, out := range merged {
				if out.Contains(in) {
					containing++
				}
			}

			require.Equal(t, 1, containing, "input %v must lie in exactly one merged block", in)
		}
	}
}

func TestPartitionLaw(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))

	for range 2000 {
		busy := randomBusy(rng)
		window := randomWindow(rng)

		pieces := append(interval.Merge(interval.Clip(busy, window)), interval.Invert(interval.Merge(busy), window)...)
		slices.SortFunc(pieces, func(a, b interval.Interval) int { return a.Start - b.Start })

		cursor := window.Start

		for _, piece := range pieces {
			require.True(t, piece.Valid())
			require.Equal(t, cursor, piece.Start, "pieces must tile %v without gaps or overlap", window)

			cursor = piece.End
		}

		require.Equal(t, window.End, cursor)
	}
}

func TestIsFreeAgreesWithAvailable(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 17))

	for range 2000 {
		busy := randomBusy(rng)
		request := randomWindow(rng)

		free := interval.Available(busy, request)
		pipeline := len(free) == 1 && free[0] == request

		require.Equal(t, pipeline, interval.IsFree(busy, request), "busy=%v request=%v", busy, request)
	}
}

func TestDiscretizeProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(19, 23))

	for range 2000 {
		free := randomWindow(rng)
		duration := 1 + rng.IntN(180)

		slots := interval.Discretize(free, duration)

		require.Len(t, slots, free.Len()/duration)

		for idx, slot := range slots {
			require.Equal(t, duration, slot.Len())
			require.True(t, free.Contains(slot))

			if idx > 0 {
				require.LessOrEqual(t, slots[idx-1].End, slot.Start)
			}
		}
	}
}
