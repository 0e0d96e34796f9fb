package engine

import (
	"context"
	"slices"

	"weeklytask/internal/storage"
)

func (s *Service) AddDailyMemo(ctx context.Context, m storage.DailyMemo) error {
	return s.mutate(ctx, "add daily memo", func(d *storage.AppData) {
		d.DailyMemos = append(d.DailyMemos, m)
	})
}

// UpdateDailyMemo sets the memo for date, creating it when missing, so a date
// written only through here keeps a single memo.
func (s *Service) UpdateDailyMemo(ctx context.Context, date, content string) error {
	return s.mutate(ctx, "update daily memo", func(d *storage.AppData) {
		found := false
		for i := range d.DailyMemos {
			if d.DailyMemos[i].Date == date {
				d.DailyMemos[i].Content = content
				found = true
			}
		}
		if !found {
			d.DailyMemos = append(d.DailyMemos, storage.DailyMemo{ID: s.newID(), Date: date, Content: content})
		}
	})
}

func (s *Service) DeleteDailyMemo(ctx context.Context, id string) error {
	return s.mutate(ctx, "delete daily memo", func(d *storage.AppData) {
		d.DailyMemos = slices.DeleteFunc(d.DailyMemos, func(m storage.DailyMemo) bool { return m.ID == id })
	})
}

// DailyMemo returns the first memo stored for date.
func (s *Service) DailyMemo(date string) (storage.DailyMemo, bool) {
	for _, m := range s.data.DailyMemos {
		if m.Date == date {
			return m, true
		}
	}
	return storage.DailyMemo{}, false
}

// DailyMemos lists memos newest date first.
func (s *Service) DailyMemos() []storage.DailyMemo {
	out := slices.Clone(s.data.DailyMemos)
	slices.SortStableFunc(out, func(a, b storage.DailyMemo) int {
		switch {
		case a.Date > b.Date:
			return -1
		case a.Date < b.Date:
			return 1
		default:
			return 0
		}
	})
	return out
}
