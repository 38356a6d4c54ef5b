package timesheet

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/undocked/timekeep/internal/model"
	"github.com/undocked/timekeep/internal/sharepoint"
	"github.com/undocked/timekeep/internal/timecalc"
)

// StoreClient is the subset of the data store client the service writes
// through. *sharepoint.Client satisfies it; tests substitute a fake.
type StoreClient interface {
	CreateItem(ctx context.Context, listName string, fields map[string]any) (sharepoint.Item, error)
	UpdateItem(ctx context.Context, listName, itemID string, fields map[string]any) error
	DeleteItem(ctx context.Context, listName, itemID string) error
}

// Service persists time entries to the entries list. Reads go through the
// catalog snapshot; the caller reloads the catalog after mutations.
type Service struct {
	client StoreClient
	list   string
	log    *slog.Logger
}

// NewService creates a service writing to the named entries list.
func NewService(client StoreClient, listName string, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{client: client, list: listName, log: log}
}

// validate applies the entry validation rules shared by create and update.
func validate(e model.TimeEntry) error {
	switch {
	case !Required(e.UserEmail):
		return fmt.Errorf("entry has no owner")
	case !Required(e.ClientCode):
		return fmt.Errorf("please select a client")
	case !Required(e.ProjectName):
		return fmt.Errorf("please select a project")
	case !Required(e.ActivityTask):
		return fmt.Errorf("please select an activity")
	case e.Date.IsZero():
		return fmt.Errorf("please select a date")
	case !ValidateHours(e.Hours):
		return ErrInvalidHours
	}
	return nil
}

// Create validates and stores a new entry, returning it with its assigned id.
func (s *Service) Create(ctx context.Context, e model.TimeEntry) (model.TimeEntry, error) {
	if err := validate(e); err != nil {
		return model.TimeEntry{}, err
	}
	item, err := s.client.CreateItem(ctx, s.list, e.Fields())
	if err != nil {
		return model.TimeEntry{}, fmt.Errorf("saving time entry: %w", err)
	}
	e.ID = item.ID
	s.log.Debug("time entry created", slog.String("id", e.ID), slog.String("date", model.DateField(e.Date)))
	return e, nil
}

// Update validates and rewrites an existing entry.
func (s *Service) Update(ctx context.Context, e model.TimeEntry) error {
	if e.ID == "" {
		return fmt.Errorf("entry has no id")
	}
	if err := validate(e); err != nil {
		return err
	}
	if err := s.client.UpdateItem(ctx, s.list, e.ID, e.Fields()); err != nil {
		return fmt.Errorf("updating time entry: %w", err)
	}
	s.log.Debug("time entry updated", slog.String("id", e.ID))
	return nil
}

// Delete removes an entry by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteItem(ctx, s.list, id); err != nil {
		return fmt.Errorf("deleting time entry: %w", err)
	}
	s.log.Debug("time entry deleted", slog.String("id", id))
	return nil
}

// WeekTotal sums the hours of entries on or after the start of the week
// (Sunday) containing now.
func WeekTotal(entries []model.TimeEntry, now time.Time) float64 {
	start := timecalc.WeekStart(now)
	var total float64
	for _, e := range entries {
		if !e.Date.Before(start) {
			total += e.Hours
		}
	}
	return total
}

// DayGroup is one date's entries with their hour total, used by the list
// rendering.
type DayGroup struct {
	Date    string
	Entries []model.TimeEntry
	Total   float64
}

// GroupByDay groups entries (assumed newest-first) by calendar day and
// totals each day's hours.
func GroupByDay(entries []model.TimeEntry) []DayGroup {
	var groups []DayGroup
	index := map[string]int{}
	for _, e := range entries {
		key := model.DateField(e.Date)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DayGroup{Date: key})
		}
		groups[i].Entries = append(groups[i].Entries, e)
		groups[i].Total += e.Hours
	}
	return groups
}
