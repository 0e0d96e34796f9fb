package engine

import (
	"math"
	"time"

	"weeklytask/internal/storage"
)

type DaySummary struct {
	Date             string
	Weekday          int
	Minutes          int
	Scheduled        int
	Done             int // scheduled tasks completed
	CompletedRecords int
	Progress         int
	Studied          bool // at least one completed record
}

type WeekSummary struct {
	Start        string
	End          string
	Days         []DaySummary
	TotalMinutes int
	StudyDays    int
}

type MonthSummary struct {
	Month          string // yyyy-MM
	Days           []DaySummary
	TotalMinutes   int
	TotalCompleted int
}

type Statistics struct {
	TotalMinutes    int
	TotalDays       int // distinct dates with any record
	TotalCompleted  int
	ConsecutiveDays int // streak of record dates ending today
}

func summarizeDay(d storage.AppData, day time.Time) DaySummary {
	date := FormatDate(day)
	sum := DaySummary{Date: date, Weekday: int(day.Weekday())}
	for _, r := range d.Records {
		if r.Date != date {
			continue
		}
		sum.Minutes += r.Duration
		if r.Completed {
			sum.CompletedRecords++
			sum.Studied = true
		}
	}
	if plan, err := planDay(d, date); err == nil {
		sum.Scheduled = len(plan.Tasks)
		sum.Done = plan.Completed
		sum.Progress = plan.Progress
	}
	return sum
}

// WeekSummary covers the week offset weeks from the one containing now,
// aligned to the configured week start.
func (s *Service) WeekSummary(now time.Time, offset int) WeekSummary {
	start := StartOfWeek(now, s.data.Settings.WeekStart).AddDate(0, 0, 7*offset)
	out := WeekSummary{
		Start: FormatDate(start),
		End:   FormatDate(start.AddDate(0, 0, 6)),
	}
	for i := 0; i < 7; i++ {
		day := summarizeDay(s.data, start.AddDate(0, 0, i))
		out.TotalMinutes += day.Minutes
		if day.Studied {
			out.StudyDays++
		}
		out.Days = append(out.Days, day)
	}
	return out
}

// MonthSummary covers every day of month's calendar month.
func (s *Service) MonthSummary(month time.Time) MonthSummary {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	out := MonthSummary{Month: first.Format("2006-01")}
	for day := first; day.Month() == first.Month(); day = day.AddDate(0, 0, 1) {
		sum := summarizeDay(s.data, day)
		out.TotalMinutes += sum.Minutes
		out.TotalCompleted += sum.CompletedRecords
		out.Days = append(out.Days, sum)
	}
	return out
}

// Statistics aggregates every record of the active grade.
func (s *Service) Statistics(now time.Time) Statistics {
	var st Statistics
	dates := map[string]bool{}
	for _, r := range s.data.Records {
		st.TotalMinutes += r.Duration
		if r.Completed {
			st.TotalCompleted++
		}
		dates[r.Date] = true
	}
	st.TotalDays = len(dates)
	st.ConsecutiveDays = streak(dates, dayOf(now))
	return st
}

// streak counts consecutive days with records, walking back from today.
// No record today means no streak.
func streak(dates map[string]bool, today time.Time) int {
	n := 0
	for day := today; dates[FormatDate(day)]; day = day.AddDate(0, 0, -1) {
		n++
	}
	return n
}

type TaskCategory string

const (
	CategoryRegular   TaskCategory = "regular"
	CategoryIrregular TaskCategory = "irregular" // no weekday recurrence
	CategoryUpcoming  TaskCategory = "upcoming"
	CategoryFinished  TaskCategory = "finished"
)

// TaskProgress sums what has been done on one task across all dates.
type TaskProgress struct {
	Task           storage.Task
	Category       TaskCategory
	Minutes        int
	CompletedCount int
	Progress       int // completed records per TotalAmount, percent; 0 without a total
	Amount         float64
	LastRecordDate string
}

// TaskProgress lists per-task totals in task-list order. A recurring task is
// finished once its completed records reach TotalAmount, and upcoming while
// its start date is after today.
func (s *Service) TaskProgress(now time.Time) []TaskProgress {
	today := FormatDate(now)
	out := make([]TaskProgress, 0, len(s.data.Tasks))
	for _, t := range s.data.Tasks {
		p := TaskProgress{Task: cloneTasks([]storage.Task{t})[0]}
		for _, r := range s.data.Records {
			if r.TaskID != t.ID {
				continue
			}
			p.Minutes += r.Duration
			if r.Completed {
				p.CompletedCount++
			}
			if r.Amount != nil {
				p.Amount += *r.Amount
			}
			if r.Date > p.LastRecordDate {
				p.LastRecordDate = r.Date
			}
		}
		if t.TotalAmount > 0 {
			p.Progress = int(math.Round(float64(p.CompletedCount) / t.TotalAmount * 100))
		}
		switch {
		case len(t.WeekDays) == 0:
			p.Category = CategoryIrregular
		case t.TotalAmount > 0 && float64(p.CompletedCount) >= t.TotalAmount:
			p.Category = CategoryFinished
		case t.StartDate > today:
			p.Category = CategoryUpcoming
		default:
			p.Category = CategoryRegular
		}
		out = append(out, p)
	}
	return out
}
