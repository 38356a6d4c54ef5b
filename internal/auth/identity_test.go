package auth_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/undocked/timekeep/internal/auth"
)

func meServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/me", r.URL.Path)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestMePrefersMail(t *testing.T) {
	srv := meServer(t, `{"mail":"Ada@Example.com","userPrincipalName":"ada_upn@example.com"}`)

	email, err := auth.Me(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", email, "mail wins and is lowercased")
}

func TestMeFallsBackToPrincipalName(t *testing.T) {
	srv := meServer(t, `{"mail":"","userPrincipalName":"Ada@Example.com"}`)

	email, err := auth.Me(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "ada@example.com", email)
}

func TestMeErrors(t *testing.T) {
	srv := meServer(t, `{}`)
	_, err := auth.Me(context.Background(), srv.Client(), srv.URL)
	require.Error(t, err, "a profile without any email is unusable")

	denied := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(denied.Close)
	_, err = auth.Me(context.Background(), denied.Client(), denied.URL)
	require.Error(t, err)
}
