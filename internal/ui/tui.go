// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aylinsezer/campusplan/internal/config"
	"github.com/aylinsezer/campusplan/internal/search"
	"github.com/aylinsezer/campusplan/internal/stats"
	"github.com/aylinsezer/campusplan/internal/task"
)

// RunTUI starts the interactive planner over the configured plan file.
func RunTUI(ctx context.Context, cfg *config.Config) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	f, err := task.Load(cfg.PlanFile)
	if err != nil {
		return err
	}

	m := newModel(cfg, f)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	if fm, ok := final.(*model); ok && fm.saveErr != nil {
		return fm.saveErr
	}
	return nil
}

// IsTTY reports whether w is attached to a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}

// listItem adapts a task to bubbles/list.Item.
type listItem struct {
	t    task.Task
	unit string
}

func (i listItem) line() string {
	dur := fmt.Sprintf("%.0fm", i.t.Duration)
	if i.unit == config.TimeUnitHours {
		dur = fmt.Sprintf("%.1fh", i.t.Duration/60)
	}
	return fmt.Sprintf("%-5s %s %6s %-12s %s", i.t.ID, i.t.DueDate, dur, i.t.Tag, i.t.Title)
}

func (i listItem) Title() string       { return i.line() }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.t.Title + " " + i.t.Tag }

// itemDelegate renders one task per line, highlighting search matches.
type itemDelegate struct {
	re *regexp.Regexp
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(listItem)
	line := it.line()
	if d.re != nil {
		line = d.re.ReplaceAllStringFunc(line, func(s string) string {
			return matchStyle.Render(s)
		})
	}
	if index == m.Index() {
		fmt.Fprint(w, selectedStyle.Render(line))
		return
	}
	fmt.Fprint(w, line)
}

type mode int

const (
	modeList mode = iota
	modeForm
	modeSearch
	modeStats
	modeConfirm
)

type model struct {
	cfg  *config.Config
	file *task.File

	mode    mode
	list    list.Model
	form    *taskForm
	search  textinput.Model
	re      *regexp.Regexp
	badPat  bool
	confirm string // task ID pending deletion
	status  string
	saveErr error

	width, height int
}

func newModel(cfg *config.Config, f *task.File) *model {
	searchInput := textinput.New()
	searchInput.Placeholder = "regex, e.g. ^lab|exam"
	searchInput.CharLimit = 80

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.Title = "Campus Life Planner"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	m := &model{
		cfg:    cfg,
		file:   f,
		list:   l,
		search: searchInput,
	}
	m.reload()
	return m
}

// reload rebuilds the visible list from the collection and the active
// search pattern.
func (m *model) reload() {
	m.file.SortTasks(task.SortByDue, false)
	visible := search.Filter(m.file.Tasks, m.re)
	items := make([]list.Item, 0, len(visible))
	for _, t := range visible {
		items = append(items, listItem{t: t, unit: m.cfg.TimeUnit})
	}
	m.list.SetItems(items)
	m.list.SetDelegate(itemDelegate{re: m.re})
}

func (m *model) save() {
	if err := m.file.Save(m.cfg.PlanFile); err != nil {
		m.saveErr = err
		m.status = errorStyle.Render(err.Error())
		return
	}
	m.saveErr = nil
}

func (m *model) selected() *task.Task {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return nil
	}
	return m.file.GetTask(it.t.ID)
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case formDoneMsg:
		m.applyForm(msg)
		m.mode = modeList
		m.form = nil
		return m, nil

	case formCancelMsg:
		m.mode = modeList
		m.form = nil
		return m, nil
	}

	switch m.mode {
	case modeForm:
		return m, m.form.Update(msg)
	case modeSearch:
		return m.updateSearch(msg)
	case modeConfirm:
		return m.updateConfirm(msg)
	case modeStats:
		if _, ok := msg.(tea.KeyMsg); ok {
			m.mode = modeList
		}
		return m, nil
	}

	return m.updateList(msg)
}

func (m *model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "a":
			m.form = newTaskForm(nil)
			m.mode = modeForm
			return m, nil
		case "e", "enter":
			if t := m.selected(); t != nil {
				m.form = newTaskForm(t)
				m.mode = modeForm
			}
			return m, nil
		case "d":
			if t := m.selected(); t != nil {
				m.confirm = t.ID
				m.mode = modeConfirm
			}
			return m, nil
		case "/":
			m.search.Focus()
			m.mode = modeSearch
			return m, nil
		case "s":
			m.mode = modeStats
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.search.SetValue("")
			m.re = nil
			m.badPat = false
			m.search.Blur()
			m.mode = modeList
			m.reload()
			return m, nil
		case "enter":
			m.search.Blur()
			m.mode = modeList
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	pattern := m.search.Value()
	m.re = search.Compile(pattern, true)
	m.badPat = m.re == nil && strings.TrimSpace(pattern) != ""
	m.reload()
	return m, cmd
}

func (m *model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y":
		if err := m.file.DeleteTask(m.confirm); err == nil {
			m.save()
			m.status = "Deleted " + m.confirm
		}
	}
	m.confirm = ""
	m.mode = modeList
	m.reload()
	return m, nil
}

// applyForm turns a submitted form into an add or an in-place edit.
// The form already validated, so parse errors cannot happen here.
func (m *model) applyForm(msg formDoneMsg) {
	minutes, _ := strconv.ParseFloat(strings.TrimSpace(msg.input.Duration), 64)
	now := time.Now()

	if msg.editID == "" {
		added := m.file.AddTask(task.Task{
			Title:    msg.input.Title,
			Duration: minutes,
			DueDate:  strings.TrimSpace(msg.input.DueDate),
			Tag:      strings.TrimSpace(msg.input.Tag),
		}, now)
		m.status = "Added " + added.ID
	} else {
		_ = m.file.UpdateTask(msg.editID, now, func(t *task.Task) {
			t.Title = msg.input.Title
			t.Duration = minutes
			t.DueDate = strings.TrimSpace(msg.input.DueDate)
			t.Tag = strings.TrimSpace(msg.input.Tag)
		})
		m.status = "Updated " + msg.editID
	}
	m.save()
	m.reload()
}

func (m *model) View() string {
	switch m.mode {
	case modeForm:
		return m.form.View()
	case modeStats:
		return m.statsView()
	case modeConfirm:
		t := m.file.GetTask(m.confirm)
		title := m.confirm
		if t != nil {
			title = fmt.Sprintf("%s %q", t.ID, t.Title)
		}
		return panelStyle.Render(warnStyle.Render("Delete "+title+"?") + "\n\ny: delete • any other key: keep")
	}

	var b strings.Builder
	b.WriteString(m.list.View())
	b.WriteString("\n")

	if m.mode == modeSearch || m.search.Value() != "" {
		b.WriteString("search: " + m.search.View())
		if m.badPat {
			b.WriteString("  " + errorStyle.Render("invalid pattern"))
		}
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(successStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("a: add • e: edit • d: delete • /: search • s: stats • q: quit"))
	return b.String()
}

// statsView renders the dashboard panel.
func (m *model) statsView() string {
	s := stats.Calculate(m.file.Tasks, time.Now())
	usage := stats.CapUsage(s.WeeklyHours, m.cfg.WeeklyCapHours)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Statistics"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Tasks:        %d\n", s.Total)
	fmt.Fprintf(&b, "Total hours:  %.1f\n", s.TotalHours)
	fmt.Fprintf(&b, "Top tag:      %s\n", s.TopTag)
	fmt.Fprintf(&b, "Due last 7d:  %d\n", s.RecentTasks)
	fmt.Fprintf(&b, "Weekly hours: %.1f / %.1f\n\n", s.WeeklyHours, m.cfg.WeeklyCapHours)

	b.WriteString("Cap " + capGauge(usage, 24))
	b.WriteString("\n\n")

	max := 0
	for _, p := range s.Trend {
		if p.Count > max {
			max = p.Count
		}
	}
	for _, p := range s.Trend {
		bar := ""
		if max > 0 {
			bar = strings.Repeat("█", p.Count*16/max)
		}
		fmt.Fprintf(&b, "%s %s %2d %s\n", p.Weekday, p.Date, p.Count, accentStyle.Render(bar))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("any key: back"))
	return panelStyle.Render(b.String())
}

func capGauge(usage stats.Cap, width int) string {
	filled := int(usage.Percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	label := fmt.Sprintf(" %.0f%%", usage.Percent)
	if usage.Over {
		return errorStyle.Render("["+bar+"]") + label + errorStyle.Render(fmt.Sprintf(" over by %.1fh", -usage.Remaining))
	}
	return successStyle.Render("["+bar+"]") + label + fmt.Sprintf(" %.1fh left", usage.Remaining)
}
