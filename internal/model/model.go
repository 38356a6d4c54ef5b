// Package model defines the record types stored in the SharePoint lists and
// their field mappings. The lists own the data; these structs are in-memory
// snapshots keyed by the list item id.
package model

import "time"

// Team classifies users and holidays for holiday-calendar selection.
const (
	TeamOnshore  = "Onshore"
	TeamOffshore = "Offshore"
	TeamBoth     = "Both"
)

// Utilization calculation methods, as stored in the rules list.
const (
	MethodTheoretical = "Theoretical Available Hours"
	MethodActual      = "Actual Hours Worked"
)

// Defaults applied when a rule field is missing or zero.
const (
	DefaultTargetUtilization    = 80.0
	DefaultStandardHoursPerWeek = 40.0
	DefaultAllocationPercent    = 100.0
)

// Client is a billing client. Code is the unique key and is immutable after
// creation; projects and assignments reference it by code, not by item id.
type Client struct {
	ID          string
	Code        string
	Name        string
	Description string
}

// Project belongs to a client, referenced by client code.
type Project struct {
	ID          string
	Name        string
	Description string
	ClientCode  string
	Billable    bool
}

// Activity is a task type under a project, referenced by project name.
// Its Billable flag decides how logged hours are classified.
type Activity struct {
	ID          string
	Name        string
	Description string
	ProjectName string
	Billable    bool
}

// UserClientAccess assigns a user to a client. At most one record may exist
// per (email, client code) pair.
type UserClientAccess struct {
	ID                string
	UserEmail         string
	ClientCode        string
	Team              string
	AllocationPercent float64
}

// UtilizationRule configures the utilization calculation for one client.
// A zero-value ClientCode means the rule is not bound to any client and is
// never matched; clients without a rule use the package defaults.
type UtilizationRule struct {
	ID                   string
	ClientCode           string
	TargetUtilization    float64
	CountOnlyBillable    bool
	StandardHoursPerWeek float64
	HolidayCalendar      string
	CalculationMethod    string
}

// Holiday is a non-working day scoped to a team calendar.
type Holiday struct {
	ID   string
	Name string
	Date time.Time
	Team string
}

// TimeEntry is one user's logged hours for a date against a
// (client, project, activity) triple. Hours are in quarter-hour increments.
type TimeEntry struct {
	ID           string
	UserEmail    string
	Date         time.Time
	ClientCode   string
	ProjectName  string
	ActivityTask string
	Hours        float64
	Notes        string
}
