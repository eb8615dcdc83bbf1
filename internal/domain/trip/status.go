package trip

import "fmt"

// Phase is where today falls relative to a trip's dates.
type Phase string

const (
	PhaseUpcoming   Phase = "upcoming"
	PhaseInProgress Phase = "in_progress"
	PhaseEnded      Phase = "ended"
)

// Status summarizes a trip relative to today.
type Status struct {
	Phase     Phase `json:"phase"`
	DaysUntil int   `json:"days_until,omitempty"`
}

// StatusOn computes the status of a trip spanning start..end on today.
func StatusOn(start, end, today Date) Status {
	switch {
	case today.After(end):
		return Status{Phase: PhaseEnded}
	case !today.Before(start):
		return Status{Phase: PhaseInProgress}
	default:
		return Status{Phase: PhaseUpcoming, DaysUntil: DaysBetween(today, start)}
	}
}

// Label renders the status for display.
func (s Status) Label() string {
	switch s.Phase {
	case PhaseEnded:
		return "ended"
	case PhaseInProgress:
		return "in progress"
	}
	if s.DaysUntil == 1 {
		return "1 day to go"
	}
	return fmt.Sprintf("%d days to go", s.DaysUntil)
}
