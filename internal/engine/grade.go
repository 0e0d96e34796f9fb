package engine

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"weeklytask/internal/storage"
)

// SwitchGrade parks the active bundle under the current grade label and
// promotes the bundle stored for newGrade, or a fresh empty one.
//
// The archive step runs whenever a child with a non-empty grade exists, even
// when newGrade equals the current grade. It always overwrites the stored
// bundle for that label. Switching to the same grade therefore only updates
// the start date and week start. newGrade is not validated; an empty label
// is accepted.
func (s *Service) SwitchGrade(ctx context.Context, newGrade, newStartDate string, newWeekStart int) error {
	from := ""
	if s.data.Child != nil {
		from = s.data.Child.Grade
	}
	_, known := s.data.GradeDataMap[newGrade]

	err := s.mutate(ctx, "switch grade", func(d *storage.AppData) {
		switchGrade(d, newGrade, newStartDate, newWeekStart)
	})
	if err != nil {
		return err
	}
	s.log.Info("grade switched",
		zap.String("from", from),
		zap.String("to", newGrade),
		zap.Bool("restored", known),
		zap.String("start_date", newStartDate),
		zap.Int("week_start", newWeekStart),
	)
	return nil
}

func switchGrade(d *storage.AppData, newGrade, newStartDate string, newWeekStart int) {
	if d.GradeDataMap == nil {
		d.GradeDataMap = map[string]storage.GradeData{}
	}
	if d.Child != nil && d.Child.Grade != "" {
		d.GradeDataMap[d.Child.Grade] = cloneGradeData(activeBundle(d, d.Child.StartDate))
	}

	next, ok := d.GradeDataMap[newGrade]
	if !ok {
		next = emptyGradeData(newStartDate)
	}
	promote(d, cloneGradeData(next))

	if d.Child != nil {
		c := *d.Child
		c.Grade = newGrade
		c.StartDate = newStartDate
		d.Child = &c
	}
	d.Settings.CurrentGrade = newGrade
	d.Settings.WeekStart = newWeekStart
}

func activeBundle(d *storage.AppData, startDate string) storage.GradeData {
	return storage.GradeData{
		Tasks:          d.Tasks,
		Records:        d.Records,
		Goals:          d.Goals,
		DailyMemos:     d.DailyMemos,
		IrregularTasks: d.IrregularTasks,
		TaskOrders:     d.TaskOrders,
		StartDate:      startDate,
	}
}

func promote(d *storage.AppData, g storage.GradeData) {
	d.Tasks = g.Tasks
	d.Records = g.Records
	d.Goals = g.Goals
	d.DailyMemos = g.DailyMemos
	d.IrregularTasks = g.IrregularTasks
	d.TaskOrders = g.TaskOrders
}

func emptyGradeData(startDate string) storage.GradeData {
	return storage.GradeData{
		Tasks:          []storage.Task{},
		Records:        []storage.Record{},
		Goals:          storage.Goal{},
		DailyMemos:     []storage.DailyMemo{},
		IrregularTasks: []storage.IrregularTask{},
		TaskOrders:     []storage.TaskOrder{},
		StartDate:      startDate,
	}
}

// GradeSummary describes one grade bundle for listings.
type GradeSummary struct {
	Grade     string
	Active    bool
	StartDate string
	Tasks     int
	Records   int
	Completed int
}

// Grades lists the active grade followed by the archived ones in label order.
// The stale map entry for the active label is not listed separately.
func (s *Service) Grades() []GradeSummary {
	active := s.activeGrade()
	var out []GradeSummary
	if active != "" || s.data.Child != nil {
		start := ""
		if s.data.Child != nil {
			start = s.data.Child.StartDate
		}
		out = append(out, summarizeGrade(active, true, activeBundle(&s.data, start)))
	}

	labels := make([]string, 0, len(s.data.GradeDataMap))
	for label := range s.data.GradeDataMap {
		if label == active && len(out) > 0 {
			continue
		}
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		out = append(out, summarizeGrade(label, false, s.data.GradeDataMap[label]))
	}
	return out
}

// GradeBundle returns a copy of the bundle for grade: the live data when it is
// the active grade, otherwise the archived bundle.
func (s *Service) GradeBundle(grade string) (storage.GradeData, bool) {
	if s.data.Child != nil && grade == s.data.Child.Grade {
		return cloneGradeData(activeBundle(&s.data, s.data.Child.StartDate)), true
	}
	g, ok := s.data.GradeDataMap[grade]
	if !ok {
		return storage.GradeData{}, false
	}
	return cloneGradeData(g), true
}

func (s *Service) activeGrade() string {
	if s.data.Child != nil {
		return s.data.Child.Grade
	}
	return s.data.Settings.CurrentGrade
}

func summarizeGrade(label string, active bool, g storage.GradeData) GradeSummary {
	completed := 0
	for _, r := range g.Records {
		if r.Completed {
			completed++
		}
	}
	return GradeSummary{
		Grade:     label,
		Active:    active,
		StartDate: g.StartDate,
		Tasks:     len(g.Tasks),
		Records:   len(g.Records),
		Completed: completed,
	}
}
