package engine

import (
	"context"
	"math"
	"slices"

	"weeklytask/internal/storage"
)

type TaskInput struct {
	Title       string
	Color       string
	TotalAmount float64
	Unit        string
	StartDate   string
	EndDate     string
	WeekDays    []int
}

// NewTask builds a task from form input, sorting the weekdays and deriving
// the daily amount.
func NewTask(id string, in TaskInput) storage.Task {
	days := slices.Clone(in.WeekDays)
	if days == nil {
		days = []int{}
	}
	slices.Sort(days)
	days = slices.Compact(days)
	return storage.Task{
		ID:          id,
		Title:       in.Title,
		Color:       in.Color,
		TotalAmount: in.TotalAmount,
		Unit:        in.Unit,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		WeekDays:    days,
		DailyAmount: DailyAmount(in.TotalAmount, in.StartDate, in.EndDate, days),
	}
}

// DailyAmount spreads total over the scheduled days between start and end
// inclusive: ceil(total / ceil(days/7 * len(weekDays))). It is 0 when there
// is nothing to spread or the range cannot be parsed.
func DailyAmount(total float64, startDate, endDate string, weekDays []int) float64 {
	if total == 0 || len(weekDays) == 0 {
		return 0
	}
	start, err := ParseDate(startDate)
	if err != nil {
		return 0
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return 0
	}
	days := math.Ceil(end.Sub(start).Hours()/24) + 1
	available := math.Ceil(days / 7 * float64(len(weekDays)))
	if available <= 0 {
		return 0
	}
	return math.Ceil(total / available)
}

// AddTask appends t to the active grade. The caller supplies the id.
func (s *Service) AddTask(ctx context.Context, t storage.Task) error {
	return s.mutate(ctx, "add task", func(d *storage.AppData) {
		d.Tasks = append(d.Tasks, t)
	})
}

// CreateTask generates an id, builds the task and adds it.
func (s *Service) CreateTask(ctx context.Context, in TaskInput) (storage.Task, error) {
	t := NewTask(s.newID(), in)
	if err := s.AddTask(ctx, t); err != nil {
		return storage.Task{}, err
	}
	return t, nil
}

// AddRecord appends r to the active grade. The caller supplies the id.
func (s *Service) AddRecord(ctx context.Context, r storage.Record) error {
	return s.mutate(ctx, "add record", func(d *storage.AppData) {
		d.Records = append(d.Records, r)
	})
}
