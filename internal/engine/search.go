package engine

import (
	"sort"
	"strings"
)

type SearchKind string

const (
	SearchDailyMemo SearchKind = "daily_memo"
	SearchTaskMemo  SearchKind = "task_memo"
)

// UnknownTaskTitle labels memos whose task no longer exists.
const UnknownTaskTitle = "(unknown task)"

type SearchResult struct {
	Kind      SearchKind
	ID        string
	Date      string
	Content   string
	TaskTitle string
}

// Search finds keyword case-insensitively in daily memos and record memos of
// the active grade, newest date first. A blank keyword matches nothing.
func (s *Service) Search(keyword string) []SearchResult {
	if strings.TrimSpace(keyword) == "" {
		return nil
	}
	kw := strings.ToLower(keyword)

	var out []SearchResult
	for _, m := range s.data.DailyMemos {
		if strings.Contains(strings.ToLower(m.Content), kw) {
			out = append(out, SearchResult{Kind: SearchDailyMemo, ID: m.ID, Date: m.Date, Content: m.Content})
		}
	}
	for _, r := range s.data.Records {
		if r.Memo == "" || !strings.Contains(strings.ToLower(r.Memo), kw) {
			continue
		}
		title := UnknownTaskTitle
		if t := findTask(s.data.Tasks, r.TaskID); t != nil {
			title = t.Title
		}
		out = append(out, SearchResult{Kind: SearchTaskMemo, ID: r.ID, Date: r.Date, Content: r.Memo, TaskTitle: title})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}
