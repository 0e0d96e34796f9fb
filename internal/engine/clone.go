package engine

import (
	"slices"

	"weeklytask/internal/storage"
)

func cloneTasks(in []storage.Task) []storage.Task {
	out := slices.Clone(in)
	for i := range out {
		out[i].WeekDays = slices.Clone(out[i].WeekDays)
	}
	return out
}

func cloneRecords(in []storage.Record) []storage.Record {
	out := slices.Clone(in)
	for i := range out {
		if out[i].Amount != nil {
			v := *out[i].Amount
			out[i].Amount = &v
		}
	}
	return out
}

func cloneTaskOrders(in []storage.TaskOrder) []storage.TaskOrder {
	out := slices.Clone(in)
	for i := range out {
		out[i].TaskIDs = slices.Clone(out[i].TaskIDs)
	}
	return out
}

func cloneGradeData(g storage.GradeData) storage.GradeData {
	return storage.GradeData{
		Tasks:          cloneTasks(g.Tasks),
		Records:        cloneRecords(g.Records),
		Goals:          g.Goals,
		DailyMemos:     slices.Clone(g.DailyMemos),
		IrregularTasks: slices.Clone(g.IrregularTasks),
		TaskOrders:     cloneTaskOrders(g.TaskOrders),
		StartDate:      g.StartDate,
	}
}

func cloneAppData(d storage.AppData) storage.AppData {
	out := d
	if d.Child != nil {
		c := *d.Child
		out.Child = &c
	}
	out.Tasks = cloneTasks(d.Tasks)
	out.Records = cloneRecords(d.Records)
	out.DailyMemos = slices.Clone(d.DailyMemos)
	out.IrregularTasks = slices.Clone(d.IrregularTasks)
	out.TaskOrders = cloneTaskOrders(d.TaskOrders)
	if d.GradeDataMap != nil {
		out.GradeDataMap = make(map[string]storage.GradeData, len(d.GradeDataMap))
		for k, v := range d.GradeDataMap {
			out.GradeDataMap[k] = cloneGradeData(v)
		}
	}
	return out
}
