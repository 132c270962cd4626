// Package interval holds the minute-offset arithmetic behind room availability.
//
// Every interval is half-open, [Start, End), measured in minutes since local midnight.
// The functions here are pure; they never touch storage and never allocate more than
// their output.
package interval

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"
)

const (
	MinutesPerHour = 60
	MinutesPerDay  = 24 * MinutesPerHour

	clockTextLength = len("15:04")
)

var (
	ErrMalformedTime  = errors.New("malformed time")
	ErrInvertedWindow = errors.New("inverted window")
)

type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (i Interval) Valid() bool {
	return i.Start < i.End
}

func (i Interval) Len() int {
	return i.End - i.Start
}

// Overlaps uses the half-open test, so intervals that only touch do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && i.End > other.Start
}

func (i Interval) Contains(other Interval) bool {
	return other.Start >= i.Start && other.End <= i.End
}

func (i Interval) String() string {
	return ToClockText(i.Start) + "-" + ToClockText(i.End)
}

// Parse builds an interval from two clock texts and rejects empty or inverted ranges.
func Parse(start, end string) (Interval, error) {
	startMinute, err := ToMinutes(start)
	if err != nil {
		return Interval{}, err
	}

	endMinute, err := ToMinutes(end)
	if err != nil {
		return Interval{}, err
	}

	window := Interval{Start: startMinute, End: endMinute}
	if !window.Valid() {
		return Interval{}, fmt.Errorf("%w: %s must be after %s", ErrInvertedWindow, end, start)
	}

	return window, nil
}

// ToMinutes parses a zero-padded HH:MM clock text. 24:00 is accepted as the end of day.
func ToMinutes(clockText string) (int, error) {
	if len(clockText) != clockTextLength || clockText[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, clockText)
	}

	for idx, char := range clockText {
		if idx != 2 && (char < '0' || char > '9') {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTime, clockText)
		}
	}

	hours, _ := strconv.Atoi(clockText[:2])
	minutes, _ := strconv.Atoi(clockText[3:])

	total := hours*MinutesPerHour + minutes
	if minutes >= MinutesPerHour || total > MinutesPerDay {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, clockText)
	}

	return total, nil
}

func ToClockText(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/MinutesPerHour, minutes%MinutesPerHour)
}

// WeekdayOf maps a calendar date to 0=Sunday .. 6=Saturday. Weekly schedule rows are
// stored with the same numbering, so callers must go through this function.
func WeekdayOf(date time.Time) int {
	return int(date.Weekday())
}

type OperatingHours struct {
	Open  int
	Close int
}

func NewOperatingHours(open, closing string) (OperatingHours, error) {
	window, err := Parse(open, closing)
	if err != nil {
		return OperatingHours{}, fmt.Errorf("invalid operating hours: %w", err)
	}

	return OperatingHours{Open: window.Start, Close: window.End}, nil
}

func (h OperatingHours) Window() Interval {
	return Interval{Start: h.Open, End: h.Close}
}

// Clamp raises the start to opening time and lowers the end to closing time.
// ok is false when nothing of the window survives.
func (h OperatingHours) Clamp(window Interval) (clamped Interval, ok bool) {
	clamped = Interval{Start: max(window.Start, h.Open), End: min(window.End, h.Close)}
	if !clamped.Valid() {
		return Interval{}, false
	}

	return clamped, true
}

func (h OperatingHours) Contains(window Interval) bool {
	return h.Window().Contains(window)
}

// Clip intersects every interval with the window and drops what falls outside.
func Clip(intervals []Interval, window Interval) []Interval {
	clipped := make([]Interval, 0, len(intervals))

	for _, in := range intervals {
		cut := Interval{Start: max(in.Start, window.Start), End: min(in.End, window.End)}
		if cut.Valid() {
			clipped = append(clipped, cut)
		}
	}

	return clipped
}

// Merge sorts by start and coalesces overlapping or touching intervals.
// The input slice is not modified.
func Merge(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return []Interval{}
	}

	sorted := slices.Clone(intervals)
	slices.SortFunc(sorted, func(a, b Interval) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}

		return a.End - b.End
	})

	merged := []Interval{sorted[0]}

	for _, next := range sorted[1:] {
		last := &merged[len(merged)-1]

		if next.Start <= last.End {
			last.End = max(last.End, next.End)

			continue
		}

		merged = append(merged, next)
	}

	return merged
}

// Invert returns the gaps of a merged, sorted busy list inside the window.
// Zero-length gaps are dropped.
func Invert(merged []Interval, window Interval) []Interval {
	free := []Interval{}
	cursor := window.Start

	for _, busy := range merged {
		if busy.End <= cursor {
			continue
		}

		if busy.Start >= window.End {
			break
		}

		if busy.Start > cursor {
			free = append(free, Interval{Start: cursor, End: busy.Start})
		}

		cursor = max(cursor, busy.End)
	}

	if cursor < window.End {
		free = append(free, Interval{Start: cursor, End: window.End})
	}

	return free
}

// Available is the maximal free intervals of window given raw busy intervals.
func Available(busy []Interval, window Interval) []Interval {
	return Invert(Merge(Clip(busy, window)), window)
}

// IsFree reports whether no busy interval overlaps the request.
func IsFree(busy []Interval, request Interval) bool {
	return !slices.ContainsFunc(busy, request.Overlaps)
}

// Discretize cuts consecutive slots of exactly duration minutes from the start of free.
// A trailing remainder shorter than duration is dropped.
func Discretize(free Interval, duration int) []Interval {
	slots := []Interval{}
	if duration <= 0 {
		return slots
	}

	for start := free.Start; start+duration <= free.End; start += duration {
		slots = append(slots, Interval{Start: start, End: start + duration})
	}

	return slots
}
