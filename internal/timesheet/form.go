package timesheet

import (
	"fmt"
	"time"

	"github.com/undocked/timekeep/internal/catalog"
	"github.com/undocked/timekeep/internal/model"
	"github.com/undocked/timekeep/internal/timecalc"
)

// State tracks how far the entry form's selection cascade has progressed.
// Each selection repopulates the next stage's choices and resets everything
// downstream of it.
type State int

const (
	StateEmpty State = iota
	StateClientChosen
	StateProjectChosen
	StateActivityChosen
)

// Form is the entry form's selection cascade over the catalog. The zero
// entry fields (date, hours, notes) are independent of the cascade and can
// be set at any time.
type Form struct {
	cat   *catalog.Store
	owner string
	state State

	client   model.Client
	project  model.Project
	activity model.Activity

	Date  time.Time
	Hours float64
	Notes string
}

// NewForm creates an empty form for the given user. The date defaults to
// today.
func NewForm(cat *catalog.Store, ownerEmail string) *Form {
	return &Form{
		cat:   cat,
		owner: ownerEmail,
		Date:  timecalc.StartOfDay(time.Now()),
	}
}

// State returns the cascade's current state.
func (f *Form) State() State { return f.state }

// Client returns the chosen client; meaningful from StateClientChosen on.
func (f *Form) Client() model.Client { return f.client }

// Project returns the chosen project; meaningful from StateProjectChosen on.
func (f *Form) Project() model.Project { return f.project }

// Activity returns the chosen activity; meaningful from StateActivityChosen on.
func (f *Form) Activity() model.Activity { return f.activity }

// ClientChoices returns the clients the user may log against: the ones they
// are assigned to.
func (f *Form) ClientChoices() []model.Client {
	var out []model.Client
	for _, a := range f.cat.AssignmentsForUser(f.owner) {
		if c, ok := f.cat.ClientByCode(a.ClientCode); ok {
			out = append(out, c)
		}
	}
	return out
}

// ProjectChoices returns the projects of the chosen client; empty before a
// client is chosen.
func (f *Form) ProjectChoices() []model.Project {
	if f.state < StateClientChosen {
		return nil
	}
	return f.cat.ProjectsForClient(f.client.Code)
}

// ActivityChoices returns the activities of the chosen project; empty before
// a project is chosen.
func (f *Form) ActivityChoices() []model.Activity {
	if f.state < StateProjectChosen {
		return nil
	}
	return f.cat.ActivitiesForProject(f.project.Name)
}

// SelectClient chooses a client by code and resets the project and activity
// selections.
func (f *Form) SelectClient(code string) error {
	for _, c := range f.ClientChoices() {
		if c.Code == code {
			f.client = c
			f.project = model.Project{}
			f.activity = model.Activity{}
			f.state = StateClientChosen
			return nil
		}
	}
	return fmt.Errorf("you are not assigned to client %q", code)
}

// SelectProject chooses a project of the current client and resets the
// activity selection.
func (f *Form) SelectProject(name string) error {
	if f.state < StateClientChosen {
		return fmt.Errorf("select a client first")
	}
	for _, p := range f.ProjectChoices() {
		if p.Name == name {
			f.project = p
			f.activity = model.Activity{}
			f.state = StateProjectChosen
			return nil
		}
	}
	return fmt.Errorf("client %q has no project %q", f.client.Code, name)
}

// SelectActivity chooses an activity of the current project.
func (f *Form) SelectActivity(name string) error {
	if f.state < StateProjectChosen {
		return fmt.Errorf("select a project first")
	}
	for _, a := range f.ActivityChoices() {
		if a.Name == name {
			f.activity = a
			f.state = StateActivityChosen
			return nil
		}
	}
	return fmt.Errorf("project %q has no activity %q", f.project.Name, name)
}

// Seed pre-fills the form from a prior entry by running the cascade stages
// in order, each stage only after the previous one succeeded. The date is
// reset to today; hours and notes carry over.
func (f *Form) Seed(src model.TimeEntry) error {
	if err := f.SelectClient(src.ClientCode); err != nil {
		return fmt.Errorf("copying entry: %w", err)
	}
	if err := f.SelectProject(src.ProjectName); err != nil {
		return fmt.Errorf("copying entry: %w", err)
	}
	if err := f.SelectActivity(src.ActivityTask); err != nil {
		return fmt.Errorf("copying entry: %w", err)
	}
	f.Date = timecalc.StartOfDay(time.Now())
	f.Hours = src.Hours
	f.Notes = src.Notes
	return nil
}

// Submittable reports whether the cascade is complete and the entry fields
// pass validation.
func (f *Form) Submittable() bool {
	return f.state >= StateActivityChosen && !f.Date.IsZero() && ValidateHours(f.Hours)
}

// Entry materialises the form into a time entry owned by the form's user.
func (f *Form) Entry() (model.TimeEntry, error) {
	switch {
	case f.state < StateClientChosen:
		return model.TimeEntry{}, fmt.Errorf("please select a client")
	case f.state < StateProjectChosen:
		return model.TimeEntry{}, fmt.Errorf("please select a project")
	case f.state < StateActivityChosen:
		return model.TimeEntry{}, fmt.Errorf("please select an activity")
	case f.Date.IsZero():
		return model.TimeEntry{}, fmt.Errorf("please select a date")
	case !ValidateHours(f.Hours):
		return model.TimeEntry{}, ErrInvalidHours
	}
	return model.TimeEntry{
		UserEmail:    f.owner,
		Date:         f.Date,
		ClientCode:   f.client.Code,
		ProjectName:  f.project.Name,
		ActivityTask: f.activity.Name,
		Hours:        f.Hours,
		Notes:        f.Notes,
	}, nil
}
