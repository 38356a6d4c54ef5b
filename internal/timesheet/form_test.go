package timesheet_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/undocked/timekeep/internal/catalog"
	"github.com/undocked/timekeep/internal/model"
	"github.com/undocked/timekeep/internal/timesheet"
)

const owner = "ada@example.com"

func testCatalog() *catalog.Store {
	return &catalog.Store{
		Clients: []model.Client{
			{ID: "1", Code: "ACME", Name: "Acme Corp"},
			{ID: "2", Code: "GLOBEX", Name: "Globex"},
		},
		Projects: []model.Project{
			{ID: "10", Name: "Platform", ClientCode: "ACME", Billable: true},
			{ID: "11", Name: "Support", ClientCode: "ACME", Billable: true},
			{ID: "12", Name: "Migration", ClientCode: "GLOBEX", Billable: true},
		},
		Activities: []model.Activity{
			{ID: "20", Name: "Development", ProjectName: "Platform", Billable: true},
			{ID: "21", Name: "Code Review", ProjectName: "Platform", Billable: true},
			{ID: "22", Name: "Triage", ProjectName: "Support", Billable: false},
		},
		Access: []model.UserClientAccess{
			{ID: "30", UserEmail: owner, ClientCode: "ACME", Team: model.TeamOnshore, AllocationPercent: 100},
		},
	}
}

func TestFormCascade(t *testing.T) {
	f := timesheet.NewForm(testCatalog(), owner)
	require.Equal(t, timesheet.StateEmpty, f.State())

	// Only assigned clients are offered.
	choices := f.ClientChoices()
	require.Len(t, choices, 1)
	require.Equal(t, "ACME", choices[0].Code)
	require.Nil(t, f.ProjectChoices())
	require.Nil(t, f.ActivityChoices())

	require.NoError(t, f.SelectClient("ACME"))
	require.Equal(t, timesheet.StateClientChosen, f.State())
	require.Len(t, f.ProjectChoices(), 2)

	require.NoError(t, f.SelectProject("Platform"))
	require.Equal(t, timesheet.StateProjectChosen, f.State())
	require.Len(t, f.ActivityChoices(), 2)

	require.NoError(t, f.SelectActivity("Development"))
	require.Equal(t, timesheet.StateActivityChosen, f.State())
}

func TestFormCascadeOrderEnforced(t *testing.T) {
	f := timesheet.NewForm(testCatalog(), owner)

	require.Error(t, f.SelectProject("Platform"))
	require.Error(t, f.SelectActivity("Development"))

	require.Error(t, f.SelectClient("GLOBEX"), "unassigned client must be rejected")
	require.Error(t, f.SelectClient("NOPE"))
	require.Equal(t, timesheet.StateEmpty, f.State())
}

func TestFormReselectionResetsDownstream(t *testing.T) {
	f := timesheet.NewForm(testCatalog(), owner)
	require.NoError(t, f.SelectClient("ACME"))
	require.NoError(t, f.SelectProject("Platform"))
	require.NoError(t, f.SelectActivity("Development"))

	// Choosing another project drops the activity and steps the state back.
	require.NoError(t, f.SelectProject("Support"))
	require.Equal(t, timesheet.StateProjectChosen, f.State())
	require.Empty(t, f.Activity().Name)

	require.Error(t, f.SelectActivity("Development"), "activity of the old project must not resolve")
	require.NoError(t, f.SelectActivity("Triage"))
}

func TestFormEntry(t *testing.T) {
	f := timesheet.NewForm(testCatalog(), owner)
	require.NoError(t, f.SelectClient("ACME"))
	require.NoError(t, f.SelectProject("Platform"))

	_, err := f.Entry()
	require.Error(t, err, "incomplete cascade must not produce an entry")

	require.NoError(t, f.SelectActivity("Development"))
	f.Hours = 7.5
	f.Notes = "sprint work"
	require.True(t, f.Submittable())

	e, err := f.Entry()
	require.NoError(t, err)
	require.Equal(t, owner, e.UserEmail)
	require.Equal(t, "ACME", e.ClientCode)
	require.Equal(t, "Platform", e.ProjectName)
	require.Equal(t, "Development", e.ActivityTask)
	require.Equal(t, 7.5, e.Hours)

	f.Hours = 7.6
	require.False(t, f.Submittable())
	_, err = f.Entry()
	require.ErrorIs(t, err, timesheet.ErrInvalidHours)
}

func TestFormSeed(t *testing.T) {
	f := timesheet.NewForm(testCatalog(), owner)
	src := model.TimeEntry{
		ID:           "99",
		UserEmail:    owner,
		Date:         time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC),
		ClientCode:   "ACME",
		ProjectName:  "Platform",
		ActivityTask: "Development",
		Hours:        6,
		Notes:        "carried over",
	}

	require.NoError(t, f.Seed(src))
	require.Equal(t, timesheet.StateActivityChosen, f.State())
	require.Equal(t, 6.0, f.Hours)
	require.Equal(t, "carried over", f.Notes)
	require.False(t, f.Date.Equal(src.Date), "date must reset, not carry over")
}

func TestFormSeedStopsAtMissingStage(t *testing.T) {
	cat := testCatalog()
	// The source entry references a project that has since been removed.
	cat.Projects = cat.Projects[2:]

	f := timesheet.NewForm(cat, owner)
	src := model.TimeEntry{
		ClientCode:   "ACME",
		ProjectName:  "Platform",
		ActivityTask: "Development",
		Hours:        6,
	}

	require.Error(t, f.Seed(src))
	require.Equal(t, timesheet.StateClientChosen, f.State(), "the resolvable prefix stays selected")
}
