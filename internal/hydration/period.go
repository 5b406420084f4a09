package hydration

import (
	"fmt"
	"strings"
	"time"
)

// Period selects the aggregation granularity of a history query.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ParsePeriod normalizes a client-supplied period string.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "d":
		return PeriodDay, nil
	case "week", "w":
		return PeriodWeek, nil
	case "month", "m":
		return PeriodMonth, nil
	case "year", "y":
		return PeriodYear, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// Bucket is one aggregation slot of a period query. Empty slots are
// zero-filled, never omitted.
type Bucket struct {
	Goal     int `json:"goal"`
	Consumed int `json:"consumed"`
	Index    int `json:"index"`
}

// Range returns the first and last calendar day covered by the period
// containing anchor. Both bounds are inclusive and date-granular.
func (p Period) Range(anchor time.Time) (time.Time, time.Time) {
	anchor = dateOnly(anchor)
	switch p {
	case PeriodWeek:
		start := mondayOf(anchor)
		return start, start.AddDate(0, 0, 6)
	case PeriodMonth:
		start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		return start, start.AddDate(0, 1, -1)
	case PeriodYear:
		start := time.Date(anchor.Year(), 1, 1, 0, 0, 0, 0, anchor.Location())
		return start, time.Date(anchor.Year(), 12, 31, 0, 0, 0, 0, anchor.Location())
	default: // PeriodDay
		return anchor, anchor
	}
}

// BucketCount returns how many buckets the period containing anchor
// has: 1 for a day, 7 for a week (Monday-first), the number of days in
// the month, or 12 for a year.
func (p Period) BucketCount(anchor time.Time) int {
	switch p {
	case PeriodWeek:
		return 7
	case PeriodMonth:
		return daysInMonth(anchor)
	case PeriodYear:
		return 12
	default:
		return 1
	}
}

// EmptyBuckets builds the zero-filled bucket sequence for the period
// containing anchor, with the canonical indices:
//
//	day   → one bucket indexed by the anchor's month number
//	week  → 0..6, Monday-first
//	month → 1..N day numbers
//	year  → 1..12 month numbers
func (p Period) EmptyBuckets(anchor time.Time) []Bucket {
	n := p.BucketCount(anchor)
	buckets := make([]Bucket, n)
	for i := range buckets {
		buckets[i] = Bucket{Index: p.bucketIndexAt(i, anchor)}
	}
	return buckets
}

// BucketFor returns the bucket slot position for a calendar day within
// the period containing anchor, or -1 if the day falls outside it.
func (p Period) BucketFor(anchor, day time.Time) int {
	start, end := p.Range(anchor)
	day = dateOnly(day)
	if day.Before(start) || day.After(end) {
		return -1
	}
	switch p {
	case PeriodWeek:
		return weekdayIndex(day)
	case PeriodMonth:
		return day.Day() - 1
	case PeriodYear:
		return int(day.Month()) - 1
	default:
		return 0
	}
}

func (p Period) bucketIndexAt(slot int, anchor time.Time) int {
	switch p {
	case PeriodWeek:
		return slot // day-of-week 0=Mon..6=Sun
	case PeriodMonth:
		return slot + 1 // day of month
	case PeriodYear:
		return slot + 1 // month number
	default:
		return int(anchor.Month())
	}
}

// Step moves the anchor by delta periods (negative = backward). Month
// and year anchors are pinned to the first day of the period before
// stepping: AddDate normalizes overflowed days (May 31 minus one month
// would be "April 31", i.e. May 1 again), which from a month-end
// anchor makes the step a no-op.
func (p Period) Step(anchor time.Time, delta int) time.Time {
	anchor = dateOnly(anchor)
	switch p {
	case PeriodWeek:
		return anchor.AddDate(0, 0, 7*delta)
	case PeriodMonth:
		first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		return first.AddDate(0, delta, 0)
	case PeriodYear:
		first := time.Date(anchor.Year(), 1, 1, 0, 0, 0, 0, anchor.Location())
		return first.AddDate(delta, 0, 0)
	default:
		return anchor.AddDate(0, 0, delta)
	}
}

// CanStepForward reports whether moving the anchor forward stays in the
// past. Navigation stops once the anchor reaches the period containing
// now; future periods are never shown.
func (p Period) CanStepForward(anchor, now time.Time) bool {
	_, end := p.Range(anchor)
	return end.Before(dateOnly(now))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// weekdayIndex maps Monday to 0 and Sunday to 6.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func mondayOf(t time.Time) time.Time {
	return dateOnly(t).AddDate(0, 0, -weekdayIndex(t))
}

func daysInMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, 1, -1).Day()
}
