package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/undocked/timekeep/internal/catalog"
	"github.com/undocked/timekeep/internal/config"
	"github.com/undocked/timekeep/internal/sharepoint"
)

// fakeLists serves canned items per list name.
type fakeLists struct {
	items map[string][]sharepoint.Item
	fail  map[string]error
}

func (f *fakeLists) ListItems(_ context.Context, listName string) ([]sharepoint.Item, error) {
	if err := f.fail[listName]; err != nil {
		return nil, err
	}
	return f.items[listName], nil
}

func lists() config.ListNames {
	return config.ListNames{
		TimeEntries:      "TimeEntries",
		Clients:          "Clients",
		Projects:         "Projects",
		Activities:       "Activities",
		UserClientAccess: "UserClientAccess",
		UtilizationRules: "ClientUtilizationRules",
		Holidays:         "Holidays",
	}
}

func item(id string, fields map[string]any) sharepoint.Item {
	return sharepoint.Item{ID: id, Fields: fields}
}

func seededStore(t *testing.T) *catalog.Store {
	t.Helper()
	fake := &fakeLists{items: map[string][]sharepoint.Item{
		"Clients": {
			item("1", map[string]any{"ClientCode": "ACME", "Title": "Acme Corp"}),
			item("2", map[string]any{"ClientCode": "GLOBEX", "Title": "Globex"}),
		},
		"Projects": {
			item("10", map[string]any{"Title": "Platform", "ClientCode": "ACME", "Billable": true}),
			item("11", map[string]any{"Title": "Migration", "ClientCode": "GLOBEX", "Billable": true}),
		},
		"Activities": {
			item("20", map[string]any{"Title": "Development", "ProjectName": "Platform"}),
		},
		"UserClientAccess": {
			item("30", map[string]any{"Title": "Ada@Example.com", "ClientCode": "ACME", "Team": "Onshore", "AllocationPercent": 100.0}),
		},
		"ClientUtilizationRules": {
			item("40", map[string]any{"ClientCode": "ACME", "ClientCodeLookupId": 1.0, "TargetUtilizationPercent": 75.0}),
			item("41", map[string]any{"ClientCode": "GLOBEX", "TargetUtilizationPercent": 90.0}),
		},
		"Holidays": {
			item("50", map[string]any{"Title": "Founders Day", "HolidayDate": "2026-07-03", "Team": "Both"}),
		},
		"TimeEntries": {
			item("60", map[string]any{"Title": "ada@example.com", "Date": "2026-08-24", "ClientCode": "ACME", "ProjectName": "Platform", "ActivityTask": "Development", "Hours": 8.0}),
			item("61", map[string]any{"Title": "ada@example.com", "Date": "2026-08-26", "ClientCode": "ACME", "ProjectName": "Platform", "ActivityTask": "Development", "Hours": 4.0}),
			item("62", map[string]any{"Title": "grace@example.com", "Date": "2026-08-25", "ClientCode": "GLOBEX", "ProjectName": "Migration", "ActivityTask": "Development", "Hours": 6.0}),
		},
	}}

	store := catalog.NewStore(fake, lists(), nil)
	require.NoError(t, store.Load(context.Background()))
	return store
}

func TestLoadPopulatesCollections(t *testing.T) {
	store := seededStore(t)

	require.Len(t, store.Clients, 2)
	require.Len(t, store.Projects, 2)
	require.Len(t, store.Activities, 1)
	require.Len(t, store.Access, 1)
	require.Len(t, store.Rules, 2)
	require.Len(t, store.Holidays, 1)
	require.Len(t, store.Entries, 3)

	// Unset activity Billable decodes as billable.
	require.True(t, store.Activities[0].Billable)
}

func TestLoadFailureKeepsSnapshot(t *testing.T) {
	fake := &fakeLists{items: map[string][]sharepoint.Item{
		"Clients": {item("1", map[string]any{"ClientCode": "ACME", "Title": "Acme Corp"})},
	}}
	store := catalog.NewStore(fake, lists(), nil)
	require.NoError(t, store.Load(context.Background()))
	require.Len(t, store.Clients, 1)

	fake.fail = map[string]error{"Projects": errors.New("throttled")}
	require.Error(t, store.Load(context.Background()))
	require.Len(t, store.Clients, 1, "failed reload must not clear the snapshot")
}

func TestLookups(t *testing.T) {
	store := seededStore(t)

	c, ok := store.ClientByCode("ACME")
	require.True(t, ok)
	require.Equal(t, "Acme Corp", c.Name)

	c, ok = store.ClientByID("2")
	require.True(t, ok)
	require.Equal(t, "GLOBEX", c.Code)

	_, ok = store.ClientByCode("NOPE")
	require.False(t, ok)

	require.Len(t, store.ProjectsForClient("ACME"), 1)
	require.Len(t, store.ActivitiesForProject("Platform"), 1)

	_, ok = store.ActivityFor("Development", "Platform")
	require.True(t, ok)
	_, ok = store.ActivityFor("Development", "Migration")
	require.False(t, ok, "activity lookup is scoped to the project")
}

func TestAssignmentLookupsIgnoreEmailCase(t *testing.T) {
	store := seededStore(t)

	require.Len(t, store.AssignmentsForUser("ada@example.com"), 1)
	require.True(t, store.AssignmentExists("ADA@EXAMPLE.COM", "ACME"))
	require.False(t, store.AssignmentExists("ada@example.com", "GLOBEX"))
}

func TestRuleForClientSkipsUnboundRules(t *testing.T) {
	store := seededStore(t)

	rule := store.RuleForClient("ACME")
	require.NotNil(t, rule)
	require.Equal(t, 75.0, rule.TargetUtilization)

	// Item 41 has no lookup column, so its client code never bound.
	require.Nil(t, store.RuleForClient("GLOBEX"))
}

func TestEntriesForOwnerNewestFirst(t *testing.T) {
	store := seededStore(t)

	entries := store.EntriesForOwner("ada@example.com")
	require.Len(t, entries, 2)
	require.Equal(t, "61", entries[0].ID)
	require.Equal(t, "60", entries[1].ID)

	e, ok := store.EntryByID("ada@example.com", "60")
	require.True(t, ok)
	require.Equal(t, 8.0, e.Hours)

	_, ok = store.EntryByID("ada@example.com", "62")
	require.False(t, ok, "another user's entry must not resolve")
}
