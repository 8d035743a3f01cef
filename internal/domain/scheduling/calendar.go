package scheduling

import "time"

// WindowMode selects the span of a calendar window.
type WindowMode string

const (
	WindowDay   WindowMode = "day"
	WindowWeek  WindowMode = "week"
	WindowMonth WindowMode = "month"
)

// Window is an inclusive civil-date range.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t's civil date falls inside the window.
func (w Window) Contains(t time.Time) bool {
	d := civilDate(t)
	return !d.Before(w.Start) && !d.After(w.End)
}

// civilDate truncates t to midnight in its own location.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WindowAround returns the day, ISO week (Monday through Sunday) or calendar
// month containing ref.
func WindowAround(ref time.Time, mode WindowMode) Window {
	d := civilDate(ref)
	switch mode {
	case WindowWeek:
		// ISO week: shift back to Monday. Sunday counts as the last day
		// of the preceding week.
		diff := int(d.Weekday()) - int(time.Monday)
		if d.Weekday() == time.Sunday {
			diff = 6
		}
		start := d.AddDate(0, 0, -diff)
		return Window{Start: start, End: start.AddDate(0, 0, 6)}
	case WindowMonth:
		start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
		return Window{Start: start, End: start.AddDate(0, 1, -1)}
	default:
		return Window{Start: d, End: d}
	}
}

// AppointmentsInWindow returns the appointments whose date falls inside the
// window, preserving input order.
func AppointmentsInWindow(appts []Appointment, w Window) []Appointment {
	var out []Appointment
	for _, a := range appts {
		if w.Contains(a.Date) {
			out = append(out, a)
		}
	}
	return out
}
