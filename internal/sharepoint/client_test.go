package sharepoint_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/undocked/timekeep/internal/sharepoint"
)

const sitePath = "contoso.sharepoint.com:/sites/Timekeeping:"

func newTestClient(t *testing.T, handler http.HandlerFunc) *sharepoint.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return sharepoint.NewClient(srv.Client(), srv.URL, sitePath, nil)
}

func TestListItemsFollowsPagination(t *testing.T) {
	var srv *httptest.Server
	calls := 0
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, http.MethodGet, r.Method)

		switch calls {
		case 1:
			require.Contains(t, r.URL.Path, "/sites/"+sitePath+"/lists/Clients/items")
			require.Equal(t, "fields", r.URL.Query().Get("expand"))
			fmt.Fprintf(w, `{"value":[{"id":"1","fields":{"Title":"Acme Corp"}}],"@odata.nextLink":%q}`,
				srv.URL+"/page2")
		default:
			require.Equal(t, "/page2", r.URL.Path)
			fmt.Fprint(w, `{"value":[{"id":"2","fields":{"Title":"Globex"}}]}`)
		}
	}))
	t.Cleanup(srv.Close)
	client := sharepoint.NewClient(srv.Client(), srv.URL, sitePath, nil)

	items, err := client.ListItems(context.Background(), "Clients")
	require.NoError(t, err)
	require.Equal(t, 2, calls)
	require.Len(t, items, 2)
	require.Equal(t, "1", items[0].ID)
	require.Equal(t, "Acme Corp", items[0].Fields["Title"])
	require.Equal(t, "2", items[1].ID)
}

func TestCreateItemWrapsFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Contains(t, r.URL.Path, "/lists/TimeEntries/items")

		var payload map[string]map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, 8.0, payload["fields"]["Hours"])

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":"77","fields":{"Hours":8}}`)
	})

	item, err := client.CreateItem(context.Background(), "TimeEntries", map[string]any{"Hours": 8.0})
	require.NoError(t, err)
	require.Equal(t, "77", item.ID)
}

func TestUpdateItemPatchesFieldsResource(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Contains(t, r.URL.Path, "/lists/TimeEntries/items/42/fields")

		var fields map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&fields))
		require.Equal(t, "updated", fields["Notes"])
		fmt.Fprint(w, `{}`)
	})

	err := client.UpdateItem(context.Background(), "TimeEntries", "42", map[string]any{"Notes": "updated"})
	require.NoError(t, err)
}

func TestDeleteItemMapsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		if r.URL.Path[len(r.URL.Path)-2:] == "42" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})

	require.NoError(t, client.DeleteItem(context.Background(), "TimeEntries", "42"))
	require.ErrorIs(t, client.DeleteItem(context.Background(), "TimeEntries", "43"), sharepoint.ErrNotFound)
}

func TestErrorCarriesStatusAndBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"message":"Access denied"}}`)
	})

	_, err := client.ListItems(context.Background(), "Clients")
	require.Error(t, err)

	var se *sharepoint.StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, http.StatusForbidden, se.StatusCode)
	require.Contains(t, se.Body, "Access denied")
}
