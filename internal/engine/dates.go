package engine

import "time"

// FormatDate renders t's calendar date in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// dayOf drops the clock part, keeping t's calendar date at UTC midnight.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StartOfWeek returns the first day of the week containing day, where weeks
// begin on weekStart (0 = Sunday).
func StartOfWeek(day time.Time, weekStart int) time.Time {
	day = dayOf(day)
	weekStart = ((weekStart % 7) + 7) % 7
	wd := int(day.Weekday())
	diff := wd - weekStart
	if wd < weekStart {
		diff += 7
	}
	return day.AddDate(0, 0, -diff)
}

// weekdayOf returns the weekday index of a yyyy-MM-dd date.
func weekdayOf(date string) (int, error) {
	t, err := ParseDate(date)
	if err != nil {
		return 0, err
	}
	return int(t.Weekday()), nil
}

// ElapsedMinutes rounds a timer reading up to whole minutes, counting only
// whole seconds.
func ElapsedMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	secs := int(d / time.Second)
	return (secs + 59) / 60
}
