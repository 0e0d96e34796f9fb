package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"weeklytask/internal/engine"
	"weeklytask/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service
	now func() time.Time

	width  int
	height int

	date  string
	plan  engine.DayPlan
	week  engine.WeekSummary
	stats engine.Statistics

	selected int
	timer    *runningTimer

	lastLog string
	loading bool
	err     error
}

// runningTimer is a study session in progress for one task on one day.
type runningTimer struct {
	taskID  string
	title   string
	date    string
	started time.Time
}

type loadedMsg struct {
	plan  engine.DayPlan
	week  engine.WeekSummary
	stats engine.Statistics
	err   error
}

type actionMsg struct {
	log string
	err error
}

type tickMsg time.Time

func newBoardModel(ctx context.Context, svc *engine.Service, date string) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		now:     time.Now,
		date:    date,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	date := m.date
	return func() tea.Msg {
		plan, err := m.svc.DayPlan(date)
		if err != nil {
			return loadedMsg{err: err}
		}
		day, err := engine.ParseDate(date)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{
			plan:  plan,
			week:  m.svc.WeekSummary(day, 0),
			stats: m.svc.Statistics(m.now()),
		}
	}
}

func (m boardModel) toggleCmd(taskID, title string) tea.Cmd {
	date := m.date
	return func() tea.Msg {
		r, err := m.svc.ToggleComplete(m.ctx, taskID, date)
		if err != nil {
			return actionMsg{err: err}
		}
		if r.Completed {
			return actionMsg{log: fmt.Sprintf("Completed %s.", title)}
		}
		return actionMsg{log: fmt.Sprintf("Reopened %s.", title)}
	}
}

func (m boardModel) postponeCmd(taskID, title string) tea.Cmd {
	date := m.date
	return func() tea.Msg {
		if _, err := m.svc.Postpone(m.ctx, taskID, date); err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{log: fmt.Sprintf("Postponed %s.", title)}
	}
}

func (m boardModel) finishCmd(t runningTimer, minutes int) tea.Cmd {
	return func() tea.Msg {
		r, err := m.svc.FinishTimer(m.ctx, t.taskID, t.date, minutes, "", nil)
		if err != nil {
			return actionMsg{err: err}
		}
		return actionMsg{log: fmt.Sprintf("Logged %s on %s (total %s).", ui.Minutes(minutes), t.title, ui.Minutes(r.Duration))}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.plan = msg.plan
		m.week = msg.week
		m.stats = msg.stats
		if m.selected >= len(m.plan.Tasks) {
			m.selected = len(m.plan.Tasks) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		return m, nil
	case actionMsg:
		if msg.err != nil {
			m.lastLog = "Failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = msg.log
		return m, m.loadCmd()
	case tickMsg:
		if m.timer == nil {
			return m, nil
		}
		return m, tickCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = fmt.Sprintf("Refreshed at %s.", m.now().Format("15:04:05"))
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.plan.Tasks)-1 {
				m.selected++
			}
			return m, nil
		case "left", "h":
			return m.moveDay(-1)
		case "right", "l":
			return m.moveDay(1)
		case ".":
			m.date = engine.FormatDate(m.now())
			m.selected = 0
			return m, m.loadCmd()
		case "c", " ":
			p, ok := m.current()
			if !ok {
				return m, nil
			}
			return m, m.toggleCmd(p.Task.ID, p.Task.Title)
		case "p":
			p, ok := m.current()
			if !ok {
				return m, nil
			}
			if p.Status == engine.StatusCompleted {
				m.lastLog = "Already done."
				return m, nil
			}
			return m, m.postponeCmd(p.Task.ID, p.Task.Title)
		case "s":
			return m.toggleTimer()
		}
	}
	return m, nil
}

func (m boardModel) current() (engine.PlannedTask, bool) {
	if m.selected < 0 || m.selected >= len(m.plan.Tasks) {
		return engine.PlannedTask{}, false
	}
	return m.plan.Tasks[m.selected], true
}

func (m boardModel) moveDay(delta int) (tea.Model, tea.Cmd) {
	day, err := engine.ParseDate(m.date)
	if err != nil {
		m.lastLog = err.Error()
		return m, nil
	}
	m.date = engine.FormatDate(day.AddDate(0, 0, delta))
	m.selected = 0
	return m, m.loadCmd()
}

// toggleTimer starts a session on the selected task, or stops the running
// one and records the elapsed whole minutes.
func (m boardModel) toggleTimer() (tea.Model, tea.Cmd) {
	if m.timer != nil {
		t := *m.timer
		m.timer = nil
		minutes := engine.ElapsedMinutes(m.now().Sub(t.started))
		if minutes == 0 {
			m.lastLog = "Timer stopped before a second passed; nothing logged."
			return m, nil
		}
		return m, m.finishCmd(t, minutes)
	}
	p, ok := m.current()
	if !ok {
		m.lastLog = "Select a task to time."
		return m, nil
	}
	m.timer = &runningTimer{taskID: p.Task.ID, title: p.Task.Title, date: m.date, started: m.now()}
	m.lastLog = fmt.Sprintf("Timing %s. Press s to stop.", p.Task.Title)
	return m, tickCmd()
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	leftW := 30
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.loading && m.plan.Date == "" {
		return "Weekly Task | loading…"
	}
	bar := progressBar(m.plan.Completed, len(m.plan.Tasks), 20)
	return fmt.Sprintf("Weekly Task | %s (%s) | %d/%d done %s %d%% | %s studied",
		m.plan.Date, engine.WeekdayLabel(m.plan.Weekday),
		m.plan.Completed, len(m.plan.Tasks), bar, m.plan.Progress, ui.Minutes(m.plan.Minutes))
}

func (m boardModel) renderSidebar() string {
	lines := []string{fmt.Sprintf("Week %s", m.week.Start)}
	for _, d := range m.week.Days {
		mark := " "
		if d.Date == m.date {
			mark = ">"
		}
		lines = append(lines, fmt.Sprintf("%s %s %s %s", mark, engine.WeekdayLabel(d.Weekday), progressBar(d.Done, d.Scheduled, 8), ui.Minutes(d.Minutes)))
	}
	lines = append(lines, fmt.Sprintf("Total %s, %d study days", ui.Minutes(m.week.TotalMinutes), m.week.StudyDays))
	lines = append(lines, fmt.Sprintf("Streak %d days", m.stats.ConsecutiveDays))
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- ←/→ or h/l: day")
	lines = append(lines, "- .: today")
	lines = append(lines, "- c/space: done/undo")
	lines = append(lines, "- p: postpone")
	lines = append(lines, "- s: start/stop timer")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	var out []string
	if m.timer != nil {
		elapsed := m.now().Sub(m.timer.started).Truncate(time.Second)
		out = append(out, fmt.Sprintf("%s %s %s", ui.IconTimer, m.timer.title, elapsed))
		out = append(out, "")
	}
	out = append(out, "Today's tasks")

	if len(m.plan.Tasks) == 0 {
		out = append(out, "(nothing scheduled)")
	}
	for i, p := range m.plan.Tasks {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		extra := ""
		if p.Irregular {
			extra = " *"
		}
		if p.Record != nil && p.Record.Duration > 0 {
			extra += " " + ui.Minutes(p.Record.Duration)
		}
		out = append(out, fmt.Sprintf("%s%s %s%s (%s)", cursor, ui.StatusIcon(string(p.Status)), p.Task.Title, extra, p.Status))
	}

	if m.plan.Memo != nil && m.plan.Memo.Content != "" {
		out = append(out, "")
		out = append(out, ui.IconMemo+" "+m.plan.Memo.Content)
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
