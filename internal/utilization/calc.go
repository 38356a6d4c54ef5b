// Package utilization computes monthly utilization per (user, client) pair:
// billable and non-billable hour totals, available capacity hours, and the
// resulting ratio against a target percentage.
package utilization

import (
	"strings"
	"time"

	"github.com/undocked/timekeep/internal/model"
	"github.com/undocked/timekeep/internal/timecalc"
)

// Result is one metrics row for a (user, client) pair and month.
type Result struct {
	ClientCode       string
	BillableHours    float64
	NonBillableHours float64
	TotalHours       float64
	AvailableHours   float64
	Utilization      float64
	Target           float64
	Allocation       float64
}

// BelowTarget reports whether the row should carry the failing cue.
func (r Result) BelowTarget() bool {
	return r.Utilization < r.Target
}

// Calculator computes utilization over catalog snapshots. It is pure: all
// inputs are plain slices, nothing is fetched.
type Calculator struct {
	Entries    []model.TimeEntry
	Activities []model.Activity
	Holidays   []model.Holiday
}

// Calculate produces the metrics row for one user and client in the given
// month. rule may be nil, in which case the defaults apply (theoretical
// availability, 40 h/week, target 80%, billable hours only).
func (c *Calculator) Calculate(userEmail, clientCode string, year int, month time.Month, rule *model.UtilizationRule, assignment model.UserClientAccess) Result {
	billable, nonBillable := c.splitHours(userEmail, clientCode, year, month)
	total := billable + nonBillable

	var available float64
	switch {
	case rule == nil:
		available = c.theoreticalHours(year, month,
			model.DefaultStandardHoursPerWeek, assignment.AllocationPercent,
			assignment.Team, model.TeamBoth)
	case rule.CalculationMethod == model.MethodTheoretical:
		available = c.theoreticalHours(year, month,
			rule.StandardHoursPerWeek, assignment.AllocationPercent,
			assignment.Team, rule.HolidayCalendar)
	default:
		// Actual Hours Worked: capacity tracks whatever was logged.
		available = total
	}

	countOnlyBillable := true
	target := model.DefaultTargetUtilization
	if rule != nil {
		countOnlyBillable = rule.CountOnlyBillable
		target = rule.TargetUtilization
	}

	productive := total
	if countOnlyBillable {
		productive = billable
	}
	utilization := 0.0
	if available > 0 {
		utilization = productive / available * 100
	}

	return Result{
		ClientCode:       clientCode,
		BillableHours:    billable,
		NonBillableHours: nonBillable,
		TotalHours:       total,
		AvailableHours:   available,
		Utilization:      utilization,
		Target:           target,
		Allocation:       assignment.AllocationPercent,
	}
}

// splitHours totals the month's entries for the user and client, classified
// by the referenced activity's billable flag. Entries whose activity no
// longer exists count as non-billable.
func (c *Calculator) splitHours(userEmail, clientCode string, year int, month time.Month) (billable, nonBillable float64) {
	for _, e := range c.Entries {
		if !strings.EqualFold(e.UserEmail, userEmail) || e.ClientCode != clientCode {
			continue
		}
		if !timecalc.InMonth(e.Date, year, month) {
			continue
		}
		if c.activityBillable(e.ActivityTask, e.ProjectName) {
			billable += e.Hours
		} else {
			nonBillable += e.Hours
		}
	}
	return billable, nonBillable
}

func (c *Calculator) activityBillable(name, projectName string) bool {
	for _, a := range c.Activities {
		if a.Name == name && a.ProjectName == projectName {
			return a.Billable
		}
	}
	return false
}

// theoreticalHours derives capacity from the calendar: business days in the
// month, minus applicable holidays, times hours per day, scaled by the
// allocation percentage.
func (c *Calculator) theoreticalHours(year int, month time.Month, standardHoursPerWeek, allocationPercent float64, userTeam, holidayCalendar string) float64 {
	businessDays := timecalc.BusinessDaysInMonth(year, month)
	workingDays := businessDays - c.applicableHolidays(year, month, userTeam, holidayCalendar)
	hoursPerDay := standardHoursPerWeek / 5
	return float64(workingDays) * hoursPerDay * (allocationPercent / 100)
}

// applicableHolidays counts holidays that fall on a weekday of the month and
// apply to the user. When the rule's calendar is "Both" the holiday must
// match the user's team; otherwise it must match the calendar itself.
// Holidays scoped "Both" always apply. This asymmetry is long-standing
// observed behaviour and is kept as is.
func (c *Calculator) applicableHolidays(year int, month time.Month, userTeam, holidayCalendar string) int {
	count := 0
	for _, h := range c.Holidays {
		if !timecalc.InMonth(h.Date, year, month) || !timecalc.IsWeekday(h.Date) {
			continue
		}
		if holidayCalendar == model.TeamBoth {
			if h.Team == userTeam || h.Team == model.TeamBoth {
				count++
			}
		} else {
			if h.Team == holidayCalendar || h.Team == model.TeamBoth {
				count++
			}
		}
	}
	return count
}
