package engine

import (
	"context"
	"math"
	"slices"

	"weeklytask/internal/storage"
)

// AddIrregularTask schedules taskID on date outside its weekday recurrence.
// Repeated calls add duplicate entries.
func (s *Service) AddIrregularTask(ctx context.Context, date, taskID string) error {
	return s.mutate(ctx, "add irregular task", func(d *storage.AppData) {
		d.IrregularTasks = append(d.IrregularTasks, storage.IrregularTask{ID: s.newID(), Date: date, TaskID: taskID})
	})
}

// RemoveIrregularTask drops every entry for (date, taskID).
func (s *Service) RemoveIrregularTask(ctx context.Context, date, taskID string) error {
	return s.mutate(ctx, "remove irregular task", func(d *storage.AppData) {
		d.IrregularTasks = slices.DeleteFunc(d.IrregularTasks, func(it storage.IrregularTask) bool {
			return it.Date == date && it.TaskID == taskID
		})
	})
}

// AddTaskOrder appends a display order for date.
func (s *Service) AddTaskOrder(ctx context.Context, date string, taskIDs []string) error {
	return s.mutate(ctx, "add task order", func(d *storage.AppData) {
		d.TaskOrders = append(d.TaskOrders, storage.TaskOrder{ID: s.newID(), Date: date, TaskIDs: slices.Clone(taskIDs)})
	})
}

// RemoveTaskOrder drops every order for date.
func (s *Service) RemoveTaskOrder(ctx context.Context, date string) error {
	return s.mutate(ctx, "remove task order", func(d *storage.AppData) {
		d.TaskOrders = slices.DeleteFunc(d.TaskOrders, func(o storage.TaskOrder) bool { return o.Date == date })
	})
}

// AddTaskToDay puts taskID on date. As an irregular task it is attached to
// that date only; otherwise date's weekday joins the task's recurrence.
// Unknown tasks are ignored.
func (s *Service) AddTaskToDay(ctx context.Context, taskID, date string, irregular bool) error {
	wd, err := weekdayOf(date)
	if err != nil {
		return err
	}
	t := findTask(s.data.Tasks, taskID)
	if t == nil {
		return nil
	}
	if irregular {
		return s.AddIrregularTask(ctx, date, taskID)
	}
	if t.HasWeekDay(wd) {
		return nil
	}
	days := append(slices.Clone(t.WeekDays), wd)
	slices.Sort(days)
	return s.UpdateTask(ctx, taskID, TaskPatch{WeekDays: days})
}

// RemoveTaskFromDay takes taskID off date: an irregular entry is removed if
// present, otherwise date's weekday is dropped from the recurrence.
func (s *Service) RemoveTaskFromDay(ctx context.Context, taskID, date string) error {
	wd, err := weekdayOf(date)
	if err != nil {
		return err
	}
	t := findTask(s.data.Tasks, taskID)
	if t == nil {
		return nil
	}
	for _, it := range s.data.IrregularTasks {
		if it.Date == date && it.TaskID == taskID {
			return s.RemoveIrregularTask(ctx, date, taskID)
		}
	}
	if !t.HasWeekDay(wd) {
		return nil
	}
	days := slices.DeleteFunc(slices.Clone(t.WeekDays), func(d int) bool { return d == wd })
	return s.UpdateTask(ctx, taskID, TaskPatch{WeekDays: days})
}

type PlannedTask struct {
	Task      storage.Task
	Status    TaskStatus
	Record    *storage.Record
	Irregular bool // scheduled only through an irregular entry
}

type DayPlan struct {
	Date      string
	Weekday   int
	Tasks     []PlannedTask
	Completed int
	Progress  int // percent of scheduled tasks completed, rounded
	Minutes   int // all recorded minutes on the date
	Memo      *storage.DailyMemo
}

// DayPlan lists the tasks due on date with their status.
func (s *Service) DayPlan(date string) (DayPlan, error) {
	return planDay(s.data, date)
}

func planDay(d storage.AppData, date string) (DayPlan, error) {
	wd, err := weekdayOf(date)
	if err != nil {
		return DayPlan{}, err
	}

	irregular := map[string]bool{}
	for _, it := range d.IrregularTasks {
		if it.Date == date {
			irregular[it.TaskID] = true
		}
	}

	plan := DayPlan{Date: date, Weekday: wd}
	for _, t := range d.Tasks {
		regular := t.HasWeekDay(wd)
		if !regular && !irregular[t.ID] {
			continue
		}
		p := PlannedTask{Task: t, Status: StatusPending, Irregular: !regular}
		if i := findRecordIndex(d.Records, t.ID, date); i >= 0 {
			r := cloneRecords(d.Records[i : i+1])[0]
			p.Record = &r
			p.Status = statusOf(r)
		}
		if p.Status == StatusCompleted {
			plan.Completed++
		}
		plan.Tasks = append(plan.Tasks, p)
	}
	plan.Tasks = applyTaskOrder(plan.Tasks, latestTaskOrder(d.TaskOrders, date))

	if n := len(plan.Tasks); n > 0 {
		plan.Progress = int(math.Round(float64(plan.Completed) / float64(n) * 100))
	}
	for _, r := range d.Records {
		if r.Date == date {
			plan.Minutes += r.Duration
		}
	}
	for _, m := range d.DailyMemos {
		if m.Date == date {
			memo := m
			plan.Memo = &memo
			break
		}
	}
	return plan, nil
}

func statusOf(r storage.Record) TaskStatus {
	switch {
	case r.Completed:
		return StatusCompleted
	case r.Postponed:
		return StatusPostponed
	default:
		return StatusInProgress
	}
}

func latestTaskOrder(orders []storage.TaskOrder, date string) []string {
	for i := len(orders) - 1; i >= 0; i-- {
		if orders[i].Date == date {
			return orders[i].TaskIDs
		}
	}
	return nil
}

// applyTaskOrder moves tasks named in order to the front, in that order.
// Tasks not named keep their relative position after them.
func applyTaskOrder(tasks []PlannedTask, order []string) []PlannedTask {
	if len(order) == 0 {
		return tasks
	}
	rank := make(map[string]int, len(order))
	for i, id := range order {
		if _, dup := rank[id]; !dup {
			rank[id] = i
		}
	}
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b PlannedTask) int {
		ra, oka := rank[a.Task.ID]
		rb, okb := rank[b.Task.ID]
		switch {
		case oka && okb:
			return ra - rb
		case oka:
			return -1
		case okb:
			return 1
		default:
			return 0
		}
	})
	return out
}
