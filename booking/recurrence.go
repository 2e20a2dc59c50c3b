package booking

import (
	"time"

	"github.com/mkamau589/cowork_hub/models"
)

// maxOccurrences bounds recurrence expansion so a far-future end date cannot
// turn one request into an unbounded series.
const maxOccurrences = 366

// Recurrence describes a repeating booking request. Until is inclusive: an
// occurrence starting exactly on Until is still generated.
type Recurrence struct {
	Frequency models.RecurrenceFrequency
	Until     time.Time
}

// Expand generates the ordered occurrence intervals for a recurring request,
// starting at first.Start and stepping by the frequency up to and including
// rec.Until. Every occurrence keeps the duration of the first interval.
//
// Monthly stepping uses calendar-month addition with day clamping: a series
// starting Jan 31 visits Feb 28 (29 in leap years) and then Mar 31. Each
// occurrence is derived from the original start date, not from the previous
// occurrence, so clamping never sticks.
func Expand(first Interval, rec Recurrence) ([]Interval, error) {
	if !first.Valid() {
		return nil, NewValidation("start time must be before end time")
	}
	if rec.Until.Before(first.Start) {
		return nil, NewValidation("recurrence end date is before the first occurrence")
	}

	duration := first.Duration()
	out := []Interval{}
	for i := 0; ; i++ {
		if i >= maxOccurrences {
			return nil, NewValidation("recurrence expands to more than %d occurrences", maxOccurrences)
		}

		var start time.Time
		switch rec.Frequency {
		case models.FrequencyDaily:
			start = first.Start.AddDate(0, 0, i)
		case models.FrequencyWeekly:
			start = first.Start.AddDate(0, 0, 7*i)
		case models.FrequencyMonthly:
			start = addMonthsClamped(first.Start, i)
		default:
			return nil, NewValidation("unknown recurrence frequency %q", rec.Frequency)
		}

		if start.After(rec.Until) {
			break
		}
		out = append(out, Interval{Start: start, End: start.Add(duration)})
	}
	return out, nil
}

// addMonthsClamped adds calendar months, clamping the day of month to the
// target month's last day instead of letting time.AddDate normalize past it.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysInMonth(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
