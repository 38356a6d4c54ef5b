package timesheet_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/undocked/timekeep/internal/model"
	"github.com/undocked/timekeep/internal/sharepoint"
	"github.com/undocked/timekeep/internal/timesheet"
)

// fakeStore records writes instead of talking to the list API.
type fakeStore struct {
	nextID  int
	created []map[string]any
	updated map[string]map[string]any
	deleted []string
	err     error
}

func (f *fakeStore) CreateItem(_ context.Context, _ string, fields map[string]any) (sharepoint.Item, error) {
	if f.err != nil {
		return sharepoint.Item{}, f.err
	}
	f.nextID++
	f.created = append(f.created, fields)
	return sharepoint.Item{ID: fmt.Sprintf("%d", f.nextID), Fields: fields}, nil
}

func (f *fakeStore) UpdateItem(_ context.Context, _ string, itemID string, fields map[string]any) error {
	if f.err != nil {
		return f.err
	}
	if f.updated == nil {
		f.updated = map[string]map[string]any{}
	}
	f.updated[itemID] = fields
	return nil
}

func (f *fakeStore) DeleteItem(_ context.Context, _ string, itemID string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, itemID)
	return nil
}

func validEntry() model.TimeEntry {
	return model.TimeEntry{
		UserEmail:    owner,
		Date:         time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		ClientCode:   "ACME",
		ProjectName:  "Platform",
		ActivityTask: "Development",
		Hours:        8,
	}
}

func TestServiceCreate(t *testing.T) {
	store := &fakeStore{}
	svc := timesheet.NewService(store, "TimeEntries", nil)

	created, err := svc.Create(context.Background(), validEntry())
	require.NoError(t, err)
	require.Equal(t, "1", created.ID)
	require.Len(t, store.created, 1)
	require.Equal(t, 8.0, store.created[0]["Hours"])
}

func TestServiceCreateRejectsInvalid(t *testing.T) {
	store := &fakeStore{}
	svc := timesheet.NewService(store, "TimeEntries", nil)

	tests := []struct {
		name   string
		mutate func(*model.TimeEntry)
	}{
		{"no owner", func(e *model.TimeEntry) { e.UserEmail = "" }},
		{"no client", func(e *model.TimeEntry) { e.ClientCode = "" }},
		{"no activity", func(e *model.TimeEntry) { e.ActivityTask = "" }},
		{"zero date", func(e *model.TimeEntry) { e.Date = time.Time{} }},
		{"bad hours", func(e *model.TimeEntry) { e.Hours = 8.1 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := validEntry()
			tc.mutate(&e)
			_, err := svc.Create(context.Background(), e)
			require.Error(t, err)
		})
	}
	require.Empty(t, store.created, "invalid entries must not reach the store")
}

func TestServiceUpdate(t *testing.T) {
	store := &fakeStore{}
	svc := timesheet.NewService(store, "TimeEntries", nil)

	e := validEntry()
	require.Error(t, svc.Update(context.Background(), e), "update without id must fail")

	e.ID = "42"
	e.Hours = 6.25
	require.NoError(t, svc.Update(context.Background(), e))
	require.Equal(t, 6.25, store.updated["42"]["Hours"])
}

func TestServiceDelete(t *testing.T) {
	store := &fakeStore{}
	svc := timesheet.NewService(store, "TimeEntries", nil)

	require.NoError(t, svc.Delete(context.Background(), "42"))
	require.Equal(t, []string{"42"}, store.deleted)

	store.err = errors.New("boom")
	require.Error(t, svc.Delete(context.Background(), "43"))
}

func TestWeekTotal(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC) // Friday
	entries := []model.TimeEntry{
		{Date: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC), Hours: 8},   // Monday this week
		{Date: time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC), Hours: 4},   // Sunday, week start
		{Date: time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC), Hours: 8},   // Saturday last week
		{Date: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), Hours: 7.5}, // older
	}
	require.Equal(t, 12.0, timesheet.WeekTotal(entries, now))
}

func TestGroupByDay(t *testing.T) {
	d1 := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	entries := []model.TimeEntry{
		{ID: "1", Date: d1, Hours: 4},
		{ID: "2", Date: d1, Hours: 3.5},
		{ID: "3", Date: d2, Hours: 8},
	}

	groups := timesheet.GroupByDay(entries)
	require.Len(t, groups, 2)
	require.Equal(t, "2026-08-25", groups[0].Date)
	require.Equal(t, 7.5, groups[0].Total)
	require.Len(t, groups[0].Entries, 2)
	require.Equal(t, "2026-08-24", groups[1].Date)
	require.Equal(t, 8.0, groups[1].Total)
}
