package calendar

import "time"

// Date truncates t to midnight of its calendar day in loc, expressed in UTC.
// Two instants on the same local day always map to the same Date.
func Date(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC midnight.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}

// DaysPast counts whole days from the stored calendar date `date` (UTC
// midnight) to the local day of instant t in loc. Only t is shifted by loc.
func DaysPast(date, t time.Time, loc *time.Location) int {
	return int(Date(t, loc).Sub(Date(date, time.UTC)).Hours() / 24)
}
