// Package catalog keeps an in-memory snapshot of every record collection.
// The external lists own the data; Load replaces the snapshot wholesale and
// every mutation path reloads in full rather than patching incrementally.
package catalog

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/undocked/timekeep/internal/config"
	"github.com/undocked/timekeep/internal/model"
	"github.com/undocked/timekeep/internal/sharepoint"
)

// ListClient is the subset of the data store client the catalog needs.
// *sharepoint.Client satisfies it; tests substitute a fake.
type ListClient interface {
	ListItems(ctx context.Context, listName string) ([]sharepoint.Item, error)
}

// Store holds the loaded collections. Collections are organisational scale
// (dozens to low hundreds of records), so lookups are linear scans.
type Store struct {
	client ListClient
	lists  config.ListNames
	log    *slog.Logger

	Clients    []model.Client
	Projects   []model.Project
	Activities []model.Activity
	Access     []model.UserClientAccess
	Rules      []model.UtilizationRule
	Holidays   []model.Holiday
	Entries    []model.TimeEntry
}

// NewStore creates an empty store over the given client and list names.
func NewStore(client ListClient, lists config.ListNames, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{client: client, lists: lists, log: log}
}

// Load fetches all collections concurrently and replaces the snapshot.
// On error the previous snapshot is kept untouched.
func (s *Store) Load(ctx context.Context) error {
	var (
		clients    []model.Client
		projects   []model.Project
		activities []model.Activity
		access     []model.UserClientAccess
		rules      []model.UtilizationRule
		holidays   []model.Holiday
		entries    []model.TimeEntry
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.client.ListItems(ctx, s.lists.Clients)
		if err != nil {
			return err
		}
		for _, it := range items {
			clients = append(clients, model.ClientFromFields(it.ID, it.Fields))
		}
		return nil
	})
	g.Go(func() error {
		items, err := s.client.ListItems(ctx, s.lists.Projects)
		if err != nil {
			return err
		}
		for _, it := range items {
			projects = append(projects, model.ProjectFromFields(it.ID, it.Fields))
		}
		return nil
	})
	g.Go(func() error {
		items, err := s.client.ListItems(ctx, s.lists.Activities)
		if err != nil {
			return err
		}
		for _, it := range items {
			activities = append(activities, model.ActivityFromFields(it.ID, it.Fields))
		}
		return nil
	})
	g.Go(func() error {
		items, err := s.client.ListItems(ctx, s.lists.UserClientAccess)
		if err != nil {
			return err
		}
		for _, it := range items {
			access = append(access, model.AccessFromFields(it.ID, it.Fields))
		}
		return nil
	})
	g.Go(func() error {
		items, err := s.client.ListItems(ctx, s.lists.UtilizationRules)
		if err != nil {
			return err
		}
		for _, it := range items {
			rules = append(rules, model.RuleFromFields(it.ID, it.Fields))
		}
		return nil
	})
	g.Go(func() error {
		items, err := s.client.ListItems(ctx, s.lists.Holidays)
		if err != nil {
			return err
		}
		for _, it := range items {
			holidays = append(holidays, model.HolidayFromFields(it.ID, it.Fields))
		}
		return nil
	})
	g.Go(func() error {
		items, err := s.client.ListItems(ctx, s.lists.TimeEntries)
		if err != nil {
			return err
		}
		for _, it := range items {
			entries = append(entries, model.EntryFromFields(it.ID, it.Fields))
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	s.Clients = clients
	s.Projects = projects
	s.Activities = activities
	s.Access = access
	s.Rules = rules
	s.Holidays = holidays
	s.Entries = entries

	s.log.Debug("catalog loaded",
		slog.Int("clients", len(clients)),
		slog.Int("projects", len(projects)),
		slog.Int("activities", len(activities)),
		slog.Int("assignments", len(access)),
		slog.Int("entries", len(entries)))
	return nil
}

// ClientByCode finds a client by its code.
func (s *Store) ClientByCode(code string) (model.Client, bool) {
	for _, c := range s.Clients {
		if c.Code == code {
			return c, true
		}
	}
	return model.Client{}, false
}

// ClientByID finds a client by its item id.
func (s *Store) ClientByID(id string) (model.Client, bool) {
	for _, c := range s.Clients {
		if c.ID == id {
			return c, true
		}
	}
	return model.Client{}, false
}

// ProjectsForClient returns the projects referencing the client code.
func (s *Store) ProjectsForClient(code string) []model.Project {
	var out []model.Project
	for _, p := range s.Projects {
		if p.ClientCode == code {
			out = append(out, p)
		}
	}
	return out
}

// ProjectByName finds a project by name.
func (s *Store) ProjectByName(name string) (model.Project, bool) {
	for _, p := range s.Projects {
		if p.Name == name {
			return p, true
		}
	}
	return model.Project{}, false
}

// ActivitiesForProject returns the activities referencing the project name.
func (s *Store) ActivitiesForProject(projectName string) []model.Activity {
	var out []model.Activity
	for _, a := range s.Activities {
		if a.ProjectName == projectName {
			out = append(out, a)
		}
	}
	return out
}

// ActivityFor finds the activity matching a time entry's
// (activity name, project name) pair.
func (s *Store) ActivityFor(name, projectName string) (model.Activity, bool) {
	for _, a := range s.Activities {
		if a.Name == name && a.ProjectName == projectName {
			return a, true
		}
	}
	return model.Activity{}, false
}

// AssignmentsForUser returns the user's client assignments. Emails are
// compared case-insensitively.
func (s *Store) AssignmentsForUser(email string) []model.UserClientAccess {
	var out []model.UserClientAccess
	for _, a := range s.Access {
		if strings.EqualFold(a.UserEmail, email) {
			out = append(out, a)
		}
	}
	return out
}

// AssignmentExists reports whether the (email, client code) pair is already
// assigned.
func (s *Store) AssignmentExists(email, clientCode string) bool {
	for _, a := range s.Access {
		if strings.EqualFold(a.UserEmail, email) && a.ClientCode == clientCode {
			return true
		}
	}
	return false
}

// AccessForClient returns the assignments referencing the client code.
func (s *Store) AccessForClient(code string) []model.UserClientAccess {
	var out []model.UserClientAccess
	for _, a := range s.Access {
		if a.ClientCode == code {
			out = append(out, a)
		}
	}
	return out
}

// RuleForClient returns the utilization rule bound to the client code, or
// nil when the client has none and the defaults apply.
func (s *Store) RuleForClient(code string) *model.UtilizationRule {
	for i := range s.Rules {
		if s.Rules[i].ClientCode != "" && s.Rules[i].ClientCode == code {
			return &s.Rules[i]
		}
	}
	return nil
}

// EntriesForOwner returns the user's time entries, newest first.
func (s *Store) EntriesForOwner(email string) []model.TimeEntry {
	var out []model.TimeEntry
	for _, e := range s.Entries {
		if strings.EqualFold(e.UserEmail, email) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// EntryByID finds one of the user's entries by item id.
func (s *Store) EntryByID(email, id string) (model.TimeEntry, bool) {
	for _, e := range s.Entries {
		if e.ID == id && strings.EqualFold(e.UserEmail, email) {
			return e, true
		}
	}
	return model.TimeEntry{}, false
}
