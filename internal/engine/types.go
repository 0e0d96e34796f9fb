package engine

import "time"

// TaskStatus is the state of one task on one day, derived from its record.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusCompleted  TaskStatus = "completed"
	StatusPostponed  TaskStatus = "postponed"
	StatusInProgress TaskStatus = "in_progress"
)

// DateLayout is the yyyy-MM-dd format every stored date uses.
const DateLayout = time.DateOnly

var weekdayShort = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// WeekdayLabel returns a short English name for weekday index 0-6.
func WeekdayLabel(wd int) string {
	if wd < 0 || wd > 6 {
		return "?"
	}
	return weekdayShort[wd]
}
