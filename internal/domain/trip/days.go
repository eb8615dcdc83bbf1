package trip

import (
	"fmt"

	"github.com/google/uuid"
)

// DayLabel returns the ordinal label for the day at index i.
func DayLabel(i int) string {
	return fmt.Sprintf("Day %d", i+1)
}

func newDay(i int, date Date) Day {
	return Day{
		ID:    uuid.NewString(),
		Date:  date,
		Label: DayLabel(i),
		Items: []Item{},
	}
}

// ValidateRange checks that both dates are set and end is not before start.
func ValidateRange(start, end Date) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidInput)
	}
	if end.Before(start) {
		return ErrInvalidDateRange
	}
	return nil
}

// GenerateDays returns one empty day per date in the inclusive range.
func GenerateDays(start, end Date) []Day {
	n := DayCount(start, end)
	days := make([]Day, n)
	for i := range days {
		days[i] = newDay(i, start.AddDays(i))
	}
	return days
}

// Reconcile fits days to a new date range. Days keep their items and labels by
// index. When the start moves every day is redated from the new start; missing
// days are appended empty and surplus days are dropped with their items.
func Reconcile(days []Day, oldStart, newStart, newEnd Date) []Day {
	n := DayCount(newStart, newEnd)
	redate := !oldStart.Equal(newStart)

	out := make([]Day, 0, n)
	for i, d := range days {
		if i == n {
			break
		}
		if redate {
			d.Date = newStart.AddDays(i)
		}
		out = append(out, d)
	}
	for i := len(out); i < n; i++ {
		out = append(out, newDay(i, newStart.AddDays(i)))
	}
	return out
}

// AppendDay adds an empty day after the last one. An empty list starts on
// fallback.
func AppendDay(days []Day, fallback Date) []Day {
	date := fallback
	if len(days) > 0 {
		date = days[len(days)-1].Date.AddDays(1)
	}
	out := make([]Day, len(days), len(days)+1)
	copy(out, days)
	return append(out, newDay(len(days), date))
}

// DeleteDay removes a day and relabels and redates the remaining days
// contiguously from the first remaining day's date.
func DeleteDay(days []Day, dayID string) ([]Day, error) {
	idx := -1
	for i, d := range days {
		if d.ID == dayID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrDayNotFound
	}
	if len(days) == 1 {
		return nil, ErrLastDay
	}

	out := make([]Day, 0, len(days)-1)
	out = append(out, days[:idx]...)
	out = append(out, days[idx+1:]...)

	first := out[0].Date
	for i := range out {
		out[i].Date = first.AddDays(i)
		out[i].Label = DayLabel(i)
	}
	return out, nil
}

// Span returns the first and last dates of a day list.
func Span(days []Day) (Date, Date, bool) {
	if len(days) == 0 {
		return Date{}, Date{}, false
	}
	return days[0].Date, days[len(days)-1].Date, true
}

// ReplaceDay returns a copy of days with the day matching d.ID replaced.
func ReplaceDay(days []Day, d Day) ([]Day, error) {
	out := make([]Day, len(days))
	copy(out, days)
	for i := range out {
		if out[i].ID == d.ID {
			out[i] = d
			return out, nil
		}
	}
	return nil, ErrDayNotFound
}
