package engine

import (
	"context"
	"slices"

	"weeklytask/internal/storage"
)

// TaskPatch is a partial task update; nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Color       *string
	TotalAmount *float64
	Unit        *string
	StartDate   *string
	EndDate     *string
	WeekDays    []int // nil leaves weekdays unchanged
	DailyAmount *float64
}

func (p TaskPatch) apply(t *storage.Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Color != nil {
		t.Color = *p.Color
	}
	if p.TotalAmount != nil {
		t.TotalAmount = *p.TotalAmount
	}
	if p.Unit != nil {
		t.Unit = *p.Unit
	}
	if p.StartDate != nil {
		t.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		t.EndDate = *p.EndDate
	}
	if p.WeekDays != nil {
		t.WeekDays = slices.Clone(p.WeekDays)
	}
	if p.DailyAmount != nil {
		t.DailyAmount = *p.DailyAmount
	}
}

// UpdateTask merges patch into the task with id. Unknown ids are ignored.
func (s *Service) UpdateTask(ctx context.Context, id string, patch TaskPatch) error {
	return s.mutate(ctx, "update task", func(d *storage.AppData) {
		for i := range d.Tasks {
			if d.Tasks[i].ID == id {
				patch.apply(&d.Tasks[i])
			}
		}
	})
}

// DeleteTask removes the task and every record that references it.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	return s.mutate(ctx, "delete task", func(d *storage.AppData) {
		d.Tasks = slices.DeleteFunc(d.Tasks, func(t storage.Task) bool { return t.ID == id })
		d.Records = slices.DeleteFunc(d.Records, func(r storage.Record) bool { return r.TaskID == id })
	})
}

// RecordPatch is a partial record update; nil fields are left unchanged.
type RecordPatch struct {
	Date      *string
	TaskID    *string
	Duration  *int
	Completed *bool
	Skipped   *bool
	Postponed *bool
	Memo      *string
	Amount    *float64
}

func (p RecordPatch) apply(r *storage.Record) {
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.TaskID != nil {
		r.TaskID = *p.TaskID
	}
	if p.Duration != nil {
		r.Duration = *p.Duration
	}
	if p.Completed != nil {
		r.Completed = *p.Completed
	}
	if p.Skipped != nil {
		r.Skipped = *p.Skipped
	}
	if p.Postponed != nil {
		r.Postponed = *p.Postponed
	}
	if p.Memo != nil {
		r.Memo = *p.Memo
	}
	if p.Amount != nil {
		v := *p.Amount
		r.Amount = &v
	}
}

// UpdateRecord merges patch into the record with id. Unknown ids are ignored.
func (s *Service) UpdateRecord(ctx context.Context, id string, patch RecordPatch) error {
	return s.mutate(ctx, "update record", func(d *storage.AppData) {
		for i := range d.Records {
			if d.Records[i].ID == id {
				patch.apply(&d.Records[i])
			}
		}
	})
}
