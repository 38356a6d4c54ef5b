package render_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/undocked/timekeep/internal/model"
	"github.com/undocked/timekeep/internal/render"
	"github.com/undocked/timekeep/internal/timesheet"
	"github.com/undocked/timekeep/internal/utilization"
)

func TestEntries(t *testing.T) {
	groups := []timesheet.DayGroup{
		{
			Date:  "2026-08-25",
			Total: 7.5,
			Entries: []model.TimeEntry{
				{ID: "1", Date: time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), ClientCode: "ACME", ProjectName: "Platform", ActivityTask: "Development", Hours: 7.5},
			},
		},
	}

	out := render.Entries(groups, 7.5, 1)
	require.Contains(t, out, "This week: 7.50 hrs")
	require.Contains(t, out, "2026-08-25")
	require.Contains(t, out, "ACME")
	require.Contains(t, out, "Development")
	require.Contains(t, out, "-", "empty notes render as a dash")
}

func TestMetrics(t *testing.T) {
	rows := []utilization.Result{
		{ClientCode: "ACME", BillableHours: 120, TotalHours: 130, AvailableHours: 168, Utilization: 71.43, Target: 80, Allocation: 100},
	}

	out := render.Metrics("2026-07", rows)
	require.Contains(t, out, "Utilization – 2026-07")
	require.Contains(t, out, "71.4%")
	require.Contains(t, out, "80%")
}

func TestAssignmentsResolvesClientNames(t *testing.T) {
	access := []model.UserClientAccess{
		{UserEmail: "ada@example.com", ClientCode: "ACME", Team: model.TeamOnshore, AllocationPercent: 100},
		{UserEmail: "grace@example.com", ClientCode: "GONE", Team: model.TeamOffshore, AllocationPercent: 50},
	}

	out := render.Assignments(access, func(code string) string {
		if code == "ACME" {
			return "Acme Corp"
		}
		return "Unknown"
	})
	require.Contains(t, out, "Acme Corp")
	require.Contains(t, out, "Unknown")
}
