package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/undocked/timekeep/internal/model"
	"github.com/undocked/timekeep/internal/sharepoint"
)

// CascadePlan describes what deleting a client will remove: its dependent
// projects and assignments, then the client itself. Time entries are never
// part of the cascade.
type CascadePlan struct {
	Client   model.Client
	Projects []model.Project
	Access   []model.UserClientAccess
}

// StepFailure records one delete step that did not complete.
type StepFailure struct {
	List   string
	ItemID string
	Err    error
}

// CascadeResult reports how far a cascade got. A partial result leaves the
// client record in place so a re-run can finish the remaining steps; every
// step is idempotent because deleting an already-missing id is a no-op.
type CascadeResult struct {
	ProjectsDeleted int
	AccessDeleted   int
	ClientDeleted   bool
	Failures        []StepFailure
}

// Partial reports whether some steps failed while others completed.
func (r CascadeResult) Partial() bool {
	return len(r.Failures) > 0 && (r.ProjectsDeleted > 0 || r.AccessDeleted > 0)
}

// PlanClientDelete resolves the cascade for the client with the given item
// id from the current catalog snapshot.
func (s *Service) PlanClientDelete(id string) (CascadePlan, error) {
	c, ok := s.cat.ClientByID(id)
	if !ok {
		return CascadePlan{}, fmt.Errorf("no client with id %q", id)
	}
	return CascadePlan{
		Client:   c,
		Projects: s.cat.ProjectsForClient(c.Code),
		Access:   s.cat.AccessForClient(c.Code),
	}, nil
}

// ExecuteClientDelete runs the cascade: dependent projects, then dependent
// assignments, then the client, in that order. Steps that fail are recorded
// and the client is kept so the cascade can be re-run; the returned error is
// non-nil whenever anything was left behind.
func (s *Service) ExecuteClientDelete(ctx context.Context, plan CascadePlan) (CascadeResult, error) {
	var result CascadeResult

	for _, p := range plan.Projects {
		if err := s.client.DeleteItem(ctx, s.lists.Projects, p.ID); err != nil && !errors.Is(err, sharepoint.ErrNotFound) {
			result.Failures = append(result.Failures, StepFailure{List: s.lists.Projects, ItemID: p.ID, Err: err})
			continue
		}
		result.ProjectsDeleted++
	}
	for _, a := range plan.Access {
		if err := s.client.DeleteItem(ctx, s.lists.UserClientAccess, a.ID); err != nil && !errors.Is(err, sharepoint.ErrNotFound) {
			result.Failures = append(result.Failures, StepFailure{List: s.lists.UserClientAccess, ItemID: a.ID, Err: err})
			continue
		}
		result.AccessDeleted++
	}

	if len(result.Failures) > 0 {
		s.log.Warn("client delete incomplete",
			slog.String("code", plan.Client.Code),
			slog.Int("failed_steps", len(result.Failures)))
		return result, fmt.Errorf("client %q not deleted: %d dependent record(s) could not be removed; re-run to retry", plan.Client.Code, len(result.Failures))
	}

	if err := s.client.DeleteItem(ctx, s.lists.Clients, plan.Client.ID); err != nil && !errors.Is(err, sharepoint.ErrNotFound) {
		result.Failures = append(result.Failures, StepFailure{List: s.lists.Clients, ItemID: plan.Client.ID, Err: err})
		return result, fmt.Errorf("dependent records removed but client %q could not be deleted: %w", plan.Client.Code, err)
	}
	result.ClientDeleted = true
	s.log.Debug("client deleted", slog.String("code", plan.Client.Code),
		slog.Int("projects", result.ProjectsDeleted), slog.Int("assignments", result.AccessDeleted))
	return result, nil
}
