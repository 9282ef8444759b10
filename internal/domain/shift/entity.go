package shift

import "time"

// ShiftTemplate is a named time-of-day window employees are assigned to.
// StartTime and EndTime carry only their clock components; the date part is
// irrelevant and never compared.
type ShiftTemplate struct {
	ID         string
	Name       string
	StartTime  time.Time
	EndTime    time.Time
	IsPartTime bool
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StartOn pins the template's start time-of-day onto a calendar date.
func (s ShiftTemplate) StartOn(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		s.StartTime.Hour(), s.StartTime.Minute(), s.StartTime.Second(), 0, date.Location())
}

// EndOn pins the template's end time-of-day onto a calendar date.
func (s ShiftTemplate) EndOn(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		s.EndTime.Hour(), s.EndTime.Minute(), s.EndTime.Second(), 0, date.Location())
}

// Contains reports whether the time-of-day of at falls inside the
// template's [start, end) window.
func (s ShiftTemplate) Contains(at time.Time) bool {
	start := s.StartOn(at)
	end := s.EndOn(at)
	return !at.Before(start) && at.Before(end)
}

// Overlaps is the half-open interval intersection test used by the
// assignment ledger: [aStart, aEnd) intersects [bStart, bEnd).
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
