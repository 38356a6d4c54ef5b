// Package tui provides the interactive time-entry form.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/undocked/timekeep/internal/model"
	"github.com/undocked/timekeep/internal/timecalc"
	"github.com/undocked/timekeep/internal/timesheet"
)

type stage int

const (
	stagePickClient stage = iota
	stagePickProject
	stagePickActivity
	stageDetails
	stageDone
)

// detail field indices within stageDetails.
const (
	fieldDate = iota
	fieldHours
	fieldNotes
	fieldCount
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	crumbStyle  = lipgloss.NewStyle().Faint(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	promptStyle = lipgloss.NewStyle().Bold(true)
)

type choiceItem struct {
	id   string
	desc string
}

func (i choiceItem) Title() string       { return i.id }
func (i choiceItem) Description() string { return i.desc }
func (i choiceItem) FilterValue() string { return i.id }

// FormModel drives the staged entry form: client, project, activity, then
// date, hours, and notes.
type FormModel struct {
	form *timesheet.Form

	stage  stage
	picker list.Model
	inputs [fieldCount]textinput.Model
	focus  int
	errMsg string
	width  int
	height int

	// Submitted is true when the user confirmed the form; the caller reads
	// the entry off the wrapped form afterwards.
	Submitted bool
}

// NewFormModel builds the model around a prepared form. A seeded form skips
// straight to the details stage.
func NewFormModel(form *timesheet.Form) *FormModel {
	delegate := list.NewDefaultDelegate()
	delegate.SetHeight(2)
	delegate.SetSpacing(0)
	picker := list.New(nil, delegate, 0, 0)
	picker.SetShowStatusBar(false)
	picker.SetFilteringEnabled(true)

	m := &FormModel{form: form, picker: picker}

	date := textinput.New()
	date.Prompt = "Date (YYYY-MM-DD): "
	date.PromptStyle = promptStyle
	date.SetValue(model.DateField(form.Date))
	date.CharLimit = 10

	hrs := textinput.New()
	hrs.Prompt = "Hours: "
	hrs.PromptStyle = promptStyle
	if form.Hours > 0 {
		hrs.SetValue(fmt.Sprintf("%g", form.Hours))
	}
	hrs.CharLimit = 5

	notes := textinput.New()
	notes.Prompt = "Notes: "
	notes.PromptStyle = promptStyle
	notes.SetValue(form.Notes)
	notes.CharLimit = 255

	m.inputs = [fieldCount]textinput.Model{date, hrs, notes}

	switch form.State() {
	case timesheet.StateActivityChosen:
		m.enterDetails()
	case timesheet.StateProjectChosen:
		m.enterStage(stagePickActivity)
	case timesheet.StateClientChosen:
		m.enterStage(stagePickProject)
	default:
		m.enterStage(stagePickClient)
	}
	return m
}

func (m *FormModel) enterStage(s stage) {
	m.stage = s
	m.errMsg = ""
	var items []list.Item
	switch s {
	case stagePickClient:
		m.picker.Title = "Select a client"
		for _, c := range m.form.ClientChoices() {
			items = append(items, choiceItem{id: c.Code, desc: c.Name})
		}
	case stagePickProject:
		m.picker.Title = "Select a project"
		for _, p := range m.form.ProjectChoices() {
			items = append(items, choiceItem{id: p.Name, desc: p.Description})
		}
	case stagePickActivity:
		m.picker.Title = "Select an activity"
		for _, a := range m.form.ActivityChoices() {
			items = append(items, choiceItem{id: a.Name, desc: a.Description})
		}
	}
	m.picker.SetItems(items)
	m.picker.ResetSelected()
}

func (m *FormModel) enterDetails() {
	m.stage = stageDetails
	m.errMsg = ""
	m.focus = fieldDate
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.inputs[fieldDate].Focus()
}

func (m *FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listHeight := msg.Height - 6
		if listHeight < 5 {
			listHeight = msg.Height
		}
		m.picker.SetSize(msg.Width-4, listHeight)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m.back()
		}
	}

	if m.stage == stageDetails {
		return m.updateDetails(msg)
	}
	return m.updatePicker(msg)
}

func (m *FormModel) back() (tea.Model, tea.Cmd) {
	switch m.stage {
	case stagePickClient:
		return m, tea.Quit
	case stagePickProject:
		m.enterStage(stagePickClient)
	case stagePickActivity:
		m.enterStage(stagePickProject)
	case stageDetails:
		m.enterStage(stagePickActivity)
	}
	return m, nil
}

func (m *FormModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" && !m.picker.SettingFilter() {
		item, ok := m.picker.SelectedItem().(choiceItem)
		if !ok {
			return m, nil
		}
		var err error
		switch m.stage {
		case stagePickClient:
			err = m.form.SelectClient(item.id)
		case stagePickProject:
			err = m.form.SelectProject(item.id)
		case stagePickActivity:
			err = m.form.SelectActivity(item.id)
		}
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		switch m.stage {
		case stagePickClient:
			m.enterStage(stagePickProject)
		case stagePickProject:
			m.enterStage(stagePickActivity)
		case stagePickActivity:
			m.enterDetails()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m *FormModel) updateDetails(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, nil
		case "enter":
			if m.focus < fieldNotes {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *FormModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[i].Focus()
}

func (m *FormModel) submit() (tea.Model, tea.Cmd) {
	date, err := timecalc.ParseDate(m.inputs[fieldDate].Value())
	if err != nil {
		m.errMsg = "invalid date, use YYYY-MM-DD"
		m.setFocus(fieldDate)
		return m, nil
	}
	hrs, err := timesheet.ParseHours(m.inputs[fieldHours].Value())
	if err != nil {
		m.errMsg = err.Error()
		m.setFocus(fieldHours)
		return m, nil
	}
	m.form.Date = date
	m.form.Hours = hrs
	m.form.Notes = m.inputs[fieldNotes].Value()
	if _, err := m.form.Entry(); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.Submitted = true
	m.stage = stageDone
	return m, tea.Quit
}

func (m *FormModel) crumb() string {
	var parts []string
	if m.form.State() >= timesheet.StateClientChosen {
		parts = append(parts, m.form.Client().Code)
	}
	if m.form.State() >= timesheet.StateProjectChosen {
		parts = append(parts, m.form.Project().Name)
	}
	if m.form.State() >= timesheet.StateActivityChosen {
		parts = append(parts, m.form.Activity().Name)
	}
	if len(parts) == 0 {
		return ""
	}
	crumb := parts[0]
	for _, p := range parts[1:] {
		crumb += " > " + p
	}
	return crumbStyle.Render(crumb)
}

func (m *FormModel) View() string {
	if m.stage == stageDone {
		return ""
	}

	header := titleStyle.Render("New time entry")
	if crumb := m.crumb(); crumb != "" {
		header += "\n" + crumb
	}
	if m.errMsg != "" {
		header += "\n" + errStyle.Render(m.errMsg)
	}

	if m.stage == stageDetails {
		body := header + "\n\n"
		for i := range m.inputs {
			body += m.inputs[i].View() + "\n"
		}
		body += "\n" + crumbStyle.Render("enter to save, esc to go back, ctrl+c to cancel")
		return body
	}

	return header + "\n" + m.picker.View()
}

// Run drives the form to completion and reports whether an entry was
// submitted.
func Run(form *timesheet.Form) (bool, error) {
	m := NewFormModel(form)
	out, err := tea.NewProgram(m).Run()
	if err != nil {
		return false, fmt.Errorf("entry form failed: %w", err)
	}
	final, ok := out.(*FormModel)
	if !ok {
		return false, nil
	}
	return final.Submitted, nil
}
