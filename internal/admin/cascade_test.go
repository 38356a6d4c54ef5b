package admin_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/undocked/timekeep/internal/sharepoint"
)

func TestPlanClientDelete(t *testing.T) {
	svc := newService(&fakeStore{})

	plan, err := svc.PlanClientDelete("1")
	require.NoError(t, err)
	require.Equal(t, "ACME", plan.Client.Code)
	require.Len(t, plan.Projects, 2)
	require.Len(t, plan.Access, 2)

	_, err = svc.PlanClientDelete("99")
	require.Error(t, err)
}

func TestExecuteClientDelete(t *testing.T) {
	store := &fakeStore{}
	svc := newService(store)

	plan, err := svc.PlanClientDelete("1")
	require.NoError(t, err)

	result, err := svc.ExecuteClientDelete(context.Background(), plan)
	require.NoError(t, err)
	require.Equal(t, 2, result.ProjectsDeleted)
	require.Equal(t, 2, result.AccessDeleted)
	require.True(t, result.ClientDeleted)
	require.Empty(t, result.Failures)

	// Dependents go first, the client strictly last.
	require.Len(t, store.calls, 5)
	require.Equal(t, "Projects", store.calls[0].list)
	require.Equal(t, "Projects", store.calls[1].list)
	require.Equal(t, "UserClientAccess", store.calls[2].list)
	require.Equal(t, "UserClientAccess", store.calls[3].list)
	require.Equal(t, call{op: "delete", list: "Clients", itemID: "1"}, store.calls[4])
}

func TestExecuteClientDeleteKeepsClientOnFailure(t *testing.T) {
	store := &fakeStore{failIDs: map[string]error{"11": errors.New("locked")}}
	svc := newService(store)

	plan, err := svc.PlanClientDelete("1")
	require.NoError(t, err)

	result, err := svc.ExecuteClientDelete(context.Background(), plan)
	require.Error(t, err)
	require.False(t, result.ClientDeleted)
	require.True(t, result.Partial())
	require.Len(t, result.Failures, 1)
	require.Equal(t, "11", result.Failures[0].ItemID)

	for _, c := range store.calls {
		require.NotEqual(t, "Clients", c.list, "the client must survive a partial cascade")
	}
}

func TestExecuteClientDeleteTreatsMissingItemsAsDone(t *testing.T) {
	// A re-run after a partial failure hits ids that are already gone.
	store := &fakeStore{failIDs: map[string]error{
		"10": sharepoint.ErrNotFound,
		"30": sharepoint.ErrNotFound,
	}}
	svc := newService(store)

	plan, err := svc.PlanClientDelete("1")
	require.NoError(t, err)

	result, err := svc.ExecuteClientDelete(context.Background(), plan)
	require.NoError(t, err)
	require.Equal(t, 2, result.ProjectsDeleted)
	require.Equal(t, 2, result.AccessDeleted)
	require.True(t, result.ClientDeleted)
}
