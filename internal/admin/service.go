// Package admin manages the client/project/activity catalog and
// user-to-client assignments. All reads go through the catalog snapshot;
// callers reload it after mutations.
package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/undocked/timekeep/internal/catalog"
	"github.com/undocked/timekeep/internal/config"
	"github.com/undocked/timekeep/internal/model"
	"github.com/undocked/timekeep/internal/sharepoint"
	"github.com/undocked/timekeep/internal/timesheet"
)

// Business-rule errors, checked before any network call.
var (
	ErrDuplicateAssignment = errors.New("this user is already assigned to this client")
	ErrDuplicateClientCode = errors.New("a client with this code already exists")
)

// StoreClient is the subset of the data store client the admin service
// writes through.
type StoreClient interface {
	CreateItem(ctx context.Context, listName string, fields map[string]any) (sharepoint.Item, error)
	UpdateItem(ctx context.Context, listName, itemID string, fields map[string]any) error
	DeleteItem(ctx context.Context, listName, itemID string) error
}

// Service mutates the catalog's backing lists.
type Service struct {
	client StoreClient
	lists  config.ListNames
	cat    *catalog.Store
	log    *slog.Logger
}

// NewService creates an admin service over the given store client and
// catalog snapshot.
func NewService(client StoreClient, lists config.ListNames, cat *catalog.Store, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{client: client, lists: lists, cat: cat, log: log}
}

// CreateClient stores a new client. The code is its unique key and cannot be
// changed afterwards.
func (s *Service) CreateClient(ctx context.Context, c model.Client) (model.Client, error) {
	if !timesheet.Required(c.Code) || !timesheet.Required(c.Name) || !timesheet.Required(c.Description) {
		return model.Client{}, fmt.Errorf("client code, name and description are required")
	}
	if _, exists := s.cat.ClientByCode(c.Code); exists {
		return model.Client{}, ErrDuplicateClientCode
	}
	item, err := s.client.CreateItem(ctx, s.lists.Clients, c.Fields())
	if err != nil {
		return model.Client{}, fmt.Errorf("saving client: %w", err)
	}
	c.ID = item.ID
	s.log.Debug("client created", slog.String("code", c.Code))
	return c, nil
}

// UpdateClient rewrites a client's name and description. The code is
// immutable: the stored record keeps the code it was created with.
func (s *Service) UpdateClient(ctx context.Context, id, name, description string) error {
	existing, ok := s.cat.ClientByID(id)
	if !ok {
		return fmt.Errorf("no client with id %q", id)
	}
	if !timesheet.Required(name) || !timesheet.Required(description) {
		return fmt.Errorf("client name and description are required")
	}
	updated := model.Client{Code: existing.Code, Name: name, Description: description}
	if err := s.client.UpdateItem(ctx, s.lists.Clients, id, updated.Fields()); err != nil {
		return fmt.Errorf("updating client: %w", err)
	}
	s.log.Debug("client updated", slog.String("code", existing.Code))
	return nil
}

// CreateProject stores a new project under an existing client.
func (s *Service) CreateProject(ctx context.Context, p model.Project) (model.Project, error) {
	if !timesheet.Required(p.ClientCode) || !timesheet.Required(p.Name) || !timesheet.Required(p.Description) {
		return model.Project{}, fmt.Errorf("project client, name and description are required")
	}
	if _, ok := s.cat.ClientByCode(p.ClientCode); !ok {
		return model.Project{}, fmt.Errorf("no client with code %q", p.ClientCode)
	}
	item, err := s.client.CreateItem(ctx, s.lists.Projects, p.Fields())
	if err != nil {
		return model.Project{}, fmt.Errorf("saving project: %w", err)
	}
	p.ID = item.ID
	s.log.Debug("project created", slog.String("name", p.Name), slog.String("client", p.ClientCode))
	return p, nil
}

// UpdateProject rewrites an existing project.
func (s *Service) UpdateProject(ctx context.Context, p model.Project) error {
	if p.ID == "" {
		return fmt.Errorf("project has no id")
	}
	if !timesheet.Required(p.ClientCode) || !timesheet.Required(p.Name) || !timesheet.Required(p.Description) {
		return fmt.Errorf("project client, name and description are required")
	}
	if _, ok := s.cat.ClientByCode(p.ClientCode); !ok {
		return fmt.Errorf("no client with code %q", p.ClientCode)
	}
	if err := s.client.UpdateItem(ctx, s.lists.Projects, p.ID, p.Fields()); err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return nil
}

// DeleteProject removes a project. Its time entries are preserved.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	if err := s.client.DeleteItem(ctx, s.lists.Projects, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return nil
}

// CreateActivity stores a new activity under an existing project.
func (s *Service) CreateActivity(ctx context.Context, a model.Activity) (model.Activity, error) {
	if !timesheet.Required(a.ProjectName) || !timesheet.Required(a.Name) || !timesheet.Required(a.Description) {
		return model.Activity{}, fmt.Errorf("activity project, name and description are required")
	}
	if _, ok := s.cat.ProjectByName(a.ProjectName); !ok {
		return model.Activity{}, fmt.Errorf("no project named %q", a.ProjectName)
	}
	item, err := s.client.CreateItem(ctx, s.lists.Activities, a.Fields())
	if err != nil {
		return model.Activity{}, fmt.Errorf("saving activity: %w", err)
	}
	a.ID = item.ID
	return a, nil
}

// UpdateActivity rewrites an existing activity.
func (s *Service) UpdateActivity(ctx context.Context, a model.Activity) error {
	if a.ID == "" {
		return fmt.Errorf("activity has no id")
	}
	if !timesheet.Required(a.ProjectName) || !timesheet.Required(a.Name) || !timesheet.Required(a.Description) {
		return fmt.Errorf("activity project, name and description are required")
	}
	if err := s.client.UpdateItem(ctx, s.lists.Activities, a.ID, a.Fields()); err != nil {
		return fmt.Errorf("updating activity: %w", err)
	}
	return nil
}

// DeleteActivity removes an activity. Entries referencing it become
// non-billable in the metrics.
func (s *Service) DeleteActivity(ctx context.Context, id string) error {
	if err := s.client.DeleteItem(ctx, s.lists.Activities, id); err != nil {
		return fmt.Errorf("deleting activity: %w", err)
	}
	return nil
}

// CreateAssignment assigns a user to a client. A second assignment for the
// same (email, client code) pair is rejected before any network call.
func (s *Service) CreateAssignment(ctx context.Context, a model.UserClientAccess) (model.UserClientAccess, error) {
	if !timesheet.ValidateEmail(a.UserEmail) {
		return model.UserClientAccess{}, timesheet.ErrInvalidEmail
	}
	if _, ok := s.cat.ClientByCode(a.ClientCode); !ok {
		return model.UserClientAccess{}, fmt.Errorf("no client with code %q", a.ClientCode)
	}
	if a.Team != model.TeamOnshore && a.Team != model.TeamOffshore {
		return model.UserClientAccess{}, fmt.Errorf("team must be %s or %s", model.TeamOnshore, model.TeamOffshore)
	}
	if a.AllocationPercent < 0 || a.AllocationPercent > 100 {
		return model.UserClientAccess{}, fmt.Errorf("allocation must be between 0 and 100")
	}
	if s.cat.AssignmentExists(a.UserEmail, a.ClientCode) {
		return model.UserClientAccess{}, ErrDuplicateAssignment
	}
	item, err := s.client.CreateItem(ctx, s.lists.UserClientAccess, a.Fields())
	if err != nil {
		return model.UserClientAccess{}, fmt.Errorf("saving assignment: %w", err)
	}
	a.ID = item.ID
	s.log.Debug("assignment created", slog.String("email", a.UserEmail), slog.String("client", a.ClientCode))
	return a, nil
}

// DeleteAssignment removes a user-to-client assignment.
func (s *Service) DeleteAssignment(ctx context.Context, id string) error {
	if err := s.client.DeleteItem(ctx, s.lists.UserClientAccess, id); err != nil {
		return fmt.Errorf("deleting assignment: %w", err)
	}
	return nil
}
