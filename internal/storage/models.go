package storage

import "time"

// Field names follow the persisted document; older documents written by the
// web app decode unchanged.

type Child struct {
	Name      string `json:"name"`
	Grade     string `json:"grade"`
	StartDate string `json:"startDate"`
}

type Task struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Color       string  `json:"color"`
	TotalAmount float64 `json:"totalAmount"`
	Unit        string  `json:"unit"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	WeekDays    []int   `json:"weekDays"` // 0-6, Sunday first
	DailyAmount float64 `json:"dailyAmount"`
}

// HasWeekDay reports whether the task recurs on weekday wd.
func (t Task) HasWeekDay(wd int) bool {
	for _, d := range t.WeekDays {
		if d == wd {
			return true
		}
	}
	return false
}

type Record struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	TaskID    string   `json:"taskId"`
	Duration  int      `json:"duration"` // minutes
	Completed bool     `json:"completed"`
	Skipped   bool     `json:"skipped"`
	Postponed bool     `json:"postponed"`
	Memo      string   `json:"memo"`
	Amount    *float64 `json:"amount,omitempty"`
}

type DailyMemo struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Content string `json:"content"`
}

type IrregularTask struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	TaskID string `json:"taskId"`
}

type TaskOrder struct {
	ID      string   `json:"id"`
	Date    string   `json:"date"`
	TaskIDs []string `json:"taskIds"`
}

type Goal struct {
	OneYear    string `json:"oneYear"`
	ThreeYears string `json:"threeYears"`
	FiveYears  string `json:"fiveYears"`
}

type Settings struct {
	Notifications         bool   `json:"notifications"`
	WeekStart             int    `json:"weekStart"`
	AgreedToTerms         bool   `json:"agreedToTerms"`
	OnboardingCompleted   bool   `json:"onboardingCompleted"`
	InitialSetupCompleted bool   `json:"initialSetupCompleted"`
	CurrentGrade          string `json:"currentGrade"`
}

// GradeData is the unit of per-grade isolation.
type GradeData struct {
	Tasks          []Task          `json:"tasks"`
	Records        []Record        `json:"records"`
	Goals          Goal            `json:"goals"`
	DailyMemos     []DailyMemo     `json:"dailyMemos"`
	IrregularTasks []IrregularTask `json:"irregularTasks"`
	TaskOrders     []TaskOrder     `json:"taskOrders"`
	StartDate      string          `json:"startDate"`
}

// AppData is the whole persisted document. The active grade's bundle lives
// at the top level; every other grade is parked in GradeDataMap.
type AppData struct {
	Child          *Child               `json:"child"`
	Tasks          []Task               `json:"tasks"`
	Records        []Record             `json:"records"`
	Goals          Goal                 `json:"goals"`
	Settings       Settings             `json:"settings"`
	DailyMemos     []DailyMemo          `json:"dailyMemos"`
	IrregularTasks []IrregularTask      `json:"irregularTasks"`
	TaskOrders     []TaskOrder          `json:"taskOrders"`
	GradeDataMap   map[string]GradeData `json:"gradeDataMap"`
}

// Snapshot is one previously saved version of a document.
type Snapshot struct {
	ID      int64
	Key     string
	Value   string
	SavedAt time.Time
}
