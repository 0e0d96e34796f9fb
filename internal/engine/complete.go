package engine

import (
	"context"

	"weeklytask/internal/storage"
)

func findRecordIndex(records []storage.Record, taskID, date string) int {
	for i := range records {
		if records[i].TaskID == taskID && records[i].Date == date {
			return i
		}
	}
	return -1
}

// ToggleComplete flips completion of taskID on date. Without a record for
// that pair a completed one with zero duration is created.
func (s *Service) ToggleComplete(ctx context.Context, taskID, date string) (storage.Record, error) {
	var out storage.Record
	err := s.mutate(ctx, "toggle complete", func(d *storage.AppData) {
		if i := findRecordIndex(d.Records, taskID, date); i >= 0 {
			d.Records[i].Completed = !d.Records[i].Completed
			out = d.Records[i]
			return
		}
		out = storage.Record{
			ID:        s.newID(),
			Date:      date,
			TaskID:    taskID,
			Duration:  0,
			Completed: true,
		}
		d.Records = append(d.Records, out)
	})
	return out, err
}

// Postpone appends a postponed record for taskID on date.
func (s *Service) Postpone(ctx context.Context, taskID, date string) (storage.Record, error) {
	r := storage.Record{
		ID:        s.newID(),
		Date:      date,
		TaskID:    taskID,
		Postponed: true,
	}
	err := s.mutate(ctx, "postpone", func(d *storage.AppData) {
		d.Records = append(d.Records, r)
	})
	return r, err
}

// FinishTimer records a finished study session. An existing record for
// (taskID, date) gains the minutes and is marked completed; its memo and
// amount are replaced only when new values are given. Otherwise a completed
// record is created with amount defaulting to 0.
func (s *Service) FinishTimer(ctx context.Context, taskID, date string, minutes int, memo string, amount *float64) (storage.Record, error) {
	var out storage.Record
	err := s.mutate(ctx, "finish timer", func(d *storage.AppData) {
		if i := findRecordIndex(d.Records, taskID, date); i >= 0 {
			r := &d.Records[i]
			r.Duration += minutes
			r.Completed = true
			if memo != "" {
				r.Memo = memo
			}
			if amount != nil {
				v := *amount
				r.Amount = &v
			}
			out = *r
			return
		}
		v := 0.0
		if amount != nil {
			v = *amount
		}
		out = storage.Record{
			ID:        s.newID(),
			Date:      date,
			TaskID:    taskID,
			Duration:  minutes,
			Completed: true,
			Memo:      memo,
			Amount:    &v,
		}
		d.Records = append(d.Records, out)
	})
	return out, err
}

// UpdateTaskMemo sets the one-line memo of a record. An empty id is ignored.
func (s *Service) UpdateTaskMemo(ctx context.Context, recordID, memo string) error {
	if recordID == "" {
		return nil
	}
	return s.UpdateRecord(ctx, recordID, RecordPatch{Memo: &memo})
}

// RecordFor returns the first record for taskID on date.
func (s *Service) RecordFor(taskID, date string) (storage.Record, bool) {
	if i := findRecordIndex(s.data.Records, taskID, date); i >= 0 {
		return cloneRecords(s.data.Records[i : i+1])[0], true
	}
	return storage.Record{}, false
}
