package model

import (
	"strconv"
	"time"
)

// SharePoint internal field names. Several lists reuse the built-in Title
// column for their natural key (client name, activity name, user email).
const (
	fieldTitle        = "Title"
	fieldClientCode   = "ClientCode"
	fieldClientDesc   = "ClientDescription"
	fieldProjectDesc  = "ProjectDescription"
	fieldActivityDesc = "ActivityDescription"
	fieldProjectName  = "ProjectName"
	fieldActivityTask = "ActivityTask"
	fieldBillable     = "Billable"
	fieldTeam         = "Team"
	fieldAllocation   = "AllocationPercent"
	fieldDate         = "Date"
	fieldHours        = "Hours"
	fieldNotes        = "Notes"
	fieldHolidayDate  = "HolidayDate"
	fieldTarget       = "TargetUtilizationPercent"
	fieldCountOnly    = "CountOnlyBillable"
	fieldStdHours     = "StandardHoursPerWeek"
	fieldCalendar     = "HolidayCalendar"
	fieldMethod       = "UtilizationCalculationMethod"
	fieldClientLookup = "ClientCodeLookupId"
)

// str returns the field as a string, "" when absent or of another type.
func str(fields map[string]any, key string) string {
	s, _ := fields[key].(string)
	return s
}

// num parses the field as a float. Zero and unparseable values fall back to
// def, matching how the original forms treated blank numeric columns.
func num(fields map[string]any, key string, def float64) float64 {
	var f float64
	switch v := fields[key].(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case string:
		f, _ = strconv.ParseFloat(v, 64)
	}
	if f == 0 {
		return def
	}
	return f
}

// boolOr returns the field as a bool, def when absent or of another type.
func boolOr(fields map[string]any, key string, def bool) bool {
	if b, ok := fields[key].(bool); ok {
		return b
	}
	return def
}

// date parses a list date field. SharePoint returns either a bare date or an
// RFC 3339 timestamp depending on column settings.
func date(fields map[string]any, key string) time.Time {
	s := str(fields, key)
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// DateField formats t the way list date columns are written.
func DateField(t time.Time) string {
	return t.Format("2006-01-02")
}

// ClientFromFields decodes a Clients list item.
func ClientFromFields(id string, fields map[string]any) Client {
	return Client{
		ID:          id,
		Code:        str(fields, fieldClientCode),
		Name:        str(fields, fieldTitle),
		Description: str(fields, fieldClientDesc),
	}
}

// Fields returns the writable field map for a client.
func (c Client) Fields() map[string]any {
	return map[string]any{
		fieldClientCode: c.Code,
		fieldTitle:      c.Name,
		fieldClientDesc: c.Description,
	}
}

// ProjectFromFields decodes a Projects list item. Billable defaults to false.
func ProjectFromFields(id string, fields map[string]any) Project {
	return Project{
		ID:          id,
		Name:        str(fields, fieldTitle),
		Description: str(fields, fieldProjectDesc),
		ClientCode:  str(fields, fieldClientCode),
		Billable:    boolOr(fields, fieldBillable, false),
	}
}

// Fields returns the writable field map for a project.
func (p Project) Fields() map[string]any {
	return map[string]any{
		fieldClientCode:  p.ClientCode,
		fieldTitle:       p.Name,
		fieldProjectDesc: p.Description,
		fieldBillable:    p.Billable,
	}
}

// ActivityFromFields decodes an Activities list item. An activity with the
// Billable column unset counts as billable.
func ActivityFromFields(id string, fields map[string]any) Activity {
	return Activity{
		ID:          id,
		Name:        str(fields, fieldTitle),
		Description: str(fields, fieldActivityDesc),
		ProjectName: str(fields, fieldProjectName),
		Billable:    boolOr(fields, fieldBillable, true),
	}
}

// Fields returns the writable field map for an activity.
func (a Activity) Fields() map[string]any {
	return map[string]any{
		fieldProjectName:  a.ProjectName,
		fieldTitle:        a.Name,
		fieldActivityDesc: a.Description,
		fieldBillable:     a.Billable,
	}
}

// AccessFromFields decodes a UserClientAccess list item. Team defaults to
// Onshore and allocation to 100%.
func AccessFromFields(id string, fields map[string]any) UserClientAccess {
	team := str(fields, fieldTeam)
	if team == "" {
		team = TeamOnshore
	}
	return UserClientAccess{
		ID:                id,
		UserEmail:         str(fields, fieldTitle),
		ClientCode:        str(fields, fieldClientCode),
		Team:              team,
		AllocationPercent: num(fields, fieldAllocation, DefaultAllocationPercent),
	}
}

// Fields returns the writable field map for an assignment.
func (u UserClientAccess) Fields() map[string]any {
	return map[string]any{
		fieldTitle:      u.UserEmail,
		fieldClientCode: u.ClientCode,
		fieldTeam:       u.Team,
		fieldAllocation: u.AllocationPercent,
	}
}

// RuleFromFields decodes a ClientUtilizationRules list item. The client code
// only binds when the lookup column is populated; otherwise the rule is
// treated as unbound.
func RuleFromFields(id string, fields map[string]any) UtilizationRule {
	code := ""
	if _, ok := fields[fieldClientLookup]; ok {
		code = str(fields, fieldClientCode)
	}
	calendar := str(fields, fieldCalendar)
	if calendar == "" {
		calendar = TeamBoth
	}
	method := str(fields, fieldMethod)
	if method == "" {
		method = MethodTheoretical
	}
	return UtilizationRule{
		ID:                   id,
		ClientCode:           code,
		TargetUtilization:    num(fields, fieldTarget, DefaultTargetUtilization),
		CountOnlyBillable:    boolOr(fields, fieldCountOnly, true),
		StandardHoursPerWeek: num(fields, fieldStdHours, DefaultStandardHoursPerWeek),
		HolidayCalendar:      calendar,
		CalculationMethod:    method,
	}
}

// HolidayFromFields decodes a Holidays list item. Team defaults to Both.
func HolidayFromFields(id string, fields map[string]any) Holiday {
	team := str(fields, fieldTeam)
	if team == "" {
		team = TeamBoth
	}
	return Holiday{
		ID:   id,
		Name: str(fields, fieldTitle),
		Date: date(fields, fieldHolidayDate),
		Team: team,
	}
}

// EntryFromFields decodes a TimeEntries list item.
func EntryFromFields(id string, fields map[string]any) TimeEntry {
	return TimeEntry{
		ID:           id,
		UserEmail:    str(fields, fieldTitle),
		Date:         date(fields, fieldDate),
		ClientCode:   str(fields, fieldClientCode),
		ProjectName:  str(fields, fieldProjectName),
		ActivityTask: str(fields, fieldActivityTask),
		Hours:        num(fields, fieldHours, 0),
		Notes:        str(fields, fieldNotes),
	}
}

// Fields returns the writable field map for a time entry.
func (e TimeEntry) Fields() map[string]any {
	return map[string]any{
		fieldTitle:        e.UserEmail,
		fieldDate:         DateField(e.Date),
		fieldClientCode:   e.ClientCode,
		fieldProjectName:  e.ProjectName,
		fieldActivityTask: e.ActivityTask,
		fieldHours:        e.Hours,
		fieldNotes:        e.Notes,
	}
}
