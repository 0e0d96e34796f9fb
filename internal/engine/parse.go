package engine

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// ParseDate parses a yyyy-MM-dd date. Empty input is rejected.
func ParseDate(input string) (time.Time, error) {
	s := strings.TrimSpace(input)
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, ValidationError{Field: "date", Value: input, Reason: "want yyyy-mm-dd"}
	}
	return t, nil
}

// NormalizeDate parses and re-formats a date, defaulting to fallback when
// input is empty. "today", "yesterday" and "tomorrow" are accepted relative
// to fallback.
func NormalizeDate(input, fallback string) (string, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	var offset int
	switch s {
	case "", "today":
		s = fallback
	case "yesterday":
		s, offset = fallback, -1
	case "tomorrow":
		s, offset = fallback, 1
	}
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, offset)), nil
}

var weekdayNames = map[string]int{
	"sun": 0, "sunday": 0, "日": 0,
	"mon": 1, "monday": 1, "月": 1,
	"tue": 2, "tuesday": 2, "火": 2,
	"wed": 3, "wednesday": 3, "水": 3,
	"thu": 4, "thursday": 4, "木": 4,
	"fri": 5, "friday": 5, "金": 5,
	"sat": 6, "saturday": 6, "土": 6,
}

// ParseWeekday parses a weekday index (0-6, Sunday first) or name.
func ParseWeekday(input string) (int, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if wd, ok := weekdayNames[s]; ok {
		return wd, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 6 {
		return 0, ValidationError{Field: "weekday", Value: input, Reason: "want 0-6 or a day name"}
	}
	return n, nil
}

// ParseWeekDays parses a comma separated weekday list into sorted unique indices.
// "daily" and "weekdays" expand to all days and Monday-Friday.
func ParseWeekDays(input string) ([]int, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "":
		return []int{}, nil
	case "daily", "all":
		return []int{0, 1, 2, 3, 4, 5, 6}, nil
	case "weekdays":
		return []int{1, 2, 3, 4, 5}, nil
	case "weekend":
		return []int{0, 6}, nil
	}

	seen := map[int]bool{}
	out := []int{}
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		wd, err := ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		if !seen[wd] {
			seen[wd] = true
			out = append(out, wd)
		}
	}
	sort.Ints(out)
	return out, nil
}

// ParseWeekStart accepts the same forms as ParseWeekday.
func ParseWeekStart(input string) (int, error) {
	wd, err := ParseWeekday(input)
	if err != nil {
		return 0, ValidationError{Field: "week start", Value: input, Reason: "want 0-6 or a day name"}
	}
	return wd, nil
}

// ParseTitle trims a task title and rejects an empty one.
func ParseTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", ValidationError{Field: "title", Reason: "title is required"}
	}
	return t, nil
}
