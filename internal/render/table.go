// Package render formats entries, metrics, and catalog records as terminal
// tables.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/undocked/timekeep/internal/model"
	"github.com/undocked/timekeep/internal/timesheet"
	"github.com/undocked/timekeep/internal/utilization"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	dayStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	passStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	failStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	summaryStyle = lipgloss.NewStyle().Faint(true)
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...)
}

func hours(h float64) string {
	return fmt.Sprintf("%.2f", h)
}

// Entries renders the user's entries grouped by day, with per-day totals and
// a this-week summary line.
func Entries(groups []timesheet.DayGroup, weekTotal float64, totalCount int) string {
	var b strings.Builder
	b.WriteString(summaryStyle.Render(fmt.Sprintf("This week: %.2f hrs   Total entries: %d", weekTotal, totalCount)))
	b.WriteString("\n")

	t := newTable("Date", "Client", "Project", "Activity", "Hours", "Notes", "ID")
	for _, g := range groups {
		t.Row(dayStyle.Render(g.Date), "", "", "", dayStyle.Render(hours(g.Total)), "", "")
		for _, e := range g.Entries {
			notes := e.Notes
			if notes == "" {
				notes = "-"
			}
			t.Row("", e.ClientCode, e.ProjectName, e.ActivityTask, hours(e.Hours), notes, e.ID)
		}
	}
	b.WriteString(t.Render())
	return b.String()
}

// Metrics renders the utilization rows for one month, coloring the
// utilization cell green or red against the target.
func Metrics(monthLabel string, rows []utilization.Result) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Utilization – " + monthLabel))
	b.WriteString("\n")

	t := newTable("Client", "Allocation", "Billable", "Non-Billable", "Total", "Available", "Utilization", "Target")
	for _, r := range rows {
		util := fmt.Sprintf("%.1f%%", r.Utilization)
		if r.BelowTarget() {
			util = failStyle.Render(util)
		} else {
			util = passStyle.Render(util)
		}
		t.Row(
			r.ClientCode,
			fmt.Sprintf("%.0f%%", r.Allocation),
			hours(r.BillableHours),
			hours(r.NonBillableHours),
			hours(r.TotalHours),
			hours(r.AvailableHours),
			util,
			fmt.Sprintf("%.0f%%", r.Target),
		)
	}
	b.WriteString(t.Render())
	return b.String()
}

// Clients renders the client catalog.
func Clients(clients []model.Client) string {
	t := newTable("Code", "Name", "Description", "ID")
	for _, c := range clients {
		t.Row(c.Code, c.Name, c.Description, c.ID)
	}
	return t.Render()
}

// Projects renders the project catalog.
func Projects(projects []model.Project) string {
	t := newTable("Client", "Project", "Description", "Billable", "ID")
	for _, p := range projects {
		t.Row(p.ClientCode, p.Name, p.Description, yesNo(p.Billable), p.ID)
	}
	return t.Render()
}

// Activities renders the activity catalog.
func Activities(activities []model.Activity) string {
	t := newTable("Project", "Activity", "Description", "Billable", "ID")
	for _, a := range activities {
		t.Row(a.ProjectName, a.Name, a.Description, yesNo(a.Billable), a.ID)
	}
	return t.Render()
}

// Assignments renders user-to-client assignments; clientName resolves a code
// to a display name ("Unknown" when the client is gone).
func Assignments(access []model.UserClientAccess, clientName func(code string) string) string {
	t := newTable("User", "Client", "Name", "Team", "Allocation", "ID")
	for _, a := range access {
		t.Row(a.UserEmail, a.ClientCode, clientName(a.ClientCode), a.Team, fmt.Sprintf("%.0f%%", a.AllocationPercent), a.ID)
	}
	return t.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
