package attendance

import "time"

// DeriveStatus computes the read-time status of an assignment occurrence.
// If an attendance row exists its persisted status wins. Without one, the
// occurrence is ABSENT once its day has passed, or once its shift end
// time-of-day has passed on the current day. Upcoming occurrences have no
// status. The result depends on now and must never be persisted.
func DeriveStatus(att *Attendance, date time.Time, shiftEnd time.Time, now time.Time) string {
	if att != nil {
		return att.Status
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())

	if day.Before(today) {
		return StatusAbsent
	}
	if day.Equal(today) {
		endAt := time.Date(day.Year(), day.Month(), day.Day(),
			shiftEnd.Hour(), shiftEnd.Minute(), shiftEnd.Second(), 0, now.Location())
		if now.After(endAt) {
			return StatusAbsent
		}
	}
	return ""
}
