package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aylinsezer/campusplan/internal/task"
	"github.com/aylinsezer/campusplan/internal/validate"
)

// formField pairs an input widget with its validation rule name.
type formField struct {
	name  string
	label string
	input textinput.Model
}

// taskForm is the inline add/edit form. Each field is validated when
// focus leaves it, and the whole input again on submit.
type taskForm struct {
	fields []formField
	focus  int
	errs   map[string]string
	editID string // empty when adding
}

// formDoneMsg carries the submitted form back to the main model.
type formDoneMsg struct {
	input  validate.Input
	editID string
}

// formCancelMsg closes the form without changes.
type formCancelMsg struct{}

func newTaskForm(existing *task.Task) *taskForm {
	mk := func(name, label, placeholder, value string) formField {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.SetValue(value)
		ti.CharLimit = 120
		return formField{name: name, label: label, input: ti}
	}

	f := &taskForm{errs: map[string]string{}}
	var title, duration, due, tag string
	if existing != nil {
		f.editID = existing.ID
		title = existing.Title
		duration = strconv.FormatFloat(existing.Duration, 'f', -1, 64)
		due = existing.DueDate
		tag = existing.Tag
	}
	f.fields = []formField{
		mk(validate.FieldTitle, "Title", "Finish lab report", title),
		mk(validate.FieldDuration, "Minutes", "90", duration),
		mk(validate.FieldDate, "Due", "2025-10-20", due),
		mk(validate.FieldTag, "Tag", "coursework", tag),
	}
	f.fields[0].input.Focus()
	return f
}

func (f *taskForm) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.updateFocused(msg)
	}

	switch keyMsg.String() {
	case "esc":
		return func() tea.Msg { return formCancelMsg{} }
	case "tab", "down":
		f.blurCurrent()
		f.focus = (f.focus + 1) % len(f.fields)
		f.fields[f.focus].input.Focus()
		return nil
	case "shift+tab", "up":
		f.blurCurrent()
		f.focus = (f.focus + len(f.fields) - 1) % len(f.fields)
		f.fields[f.focus].input.Focus()
		return nil
	case "enter":
		return f.submit()
	}
	return f.updateFocused(msg)
}

// blurCurrent validates the field being left so feedback shows up
// before submit, mirroring on-blur validation in form UIs.
func (f *taskForm) blurCurrent() {
	field := &f.fields[f.focus]
	field.input.Blur()
	if r := validate.Field(field.name, field.input.Value()); !r.Valid {
		f.errs[field.name] = r.Message
	} else {
		delete(f.errs, field.name)
	}
}

func (f *taskForm) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *taskForm) submit() tea.Cmd {
	in := validate.Input{
		Title:    f.fields[0].input.Value(),
		Duration: f.fields[1].input.Value(),
		DueDate:  f.fields[2].input.Value(),
		Tag:      f.fields[3].input.Value(),
	}
	batch := validate.Task(in)
	if !batch.Valid {
		f.errs = batch.Errors
		return nil
	}
	f.errs = map[string]string{}
	return func() tea.Msg { return formDoneMsg{input: in, editID: f.editID} }
}

func (f *taskForm) View() string {
	var b strings.Builder
	if f.editID != "" {
		b.WriteString(titleStyle.Render("Edit " + f.editID))
	} else {
		b.WriteString(titleStyle.Render("New task"))
	}
	b.WriteString("\n\n")
	for i := range f.fields {
		field := &f.fields[i]
		b.WriteString(accentStyle.Render(field.label))
		b.WriteString("\n")
		b.WriteString(field.input.View())
		b.WriteString("\n")
		if msg, bad := f.errs[field.name]; bad {
			b.WriteString(errorStyle.Render("  " + msg))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab: next field • enter: save • esc: cancel"))
	return panelStyle.Render(b.String())
}
