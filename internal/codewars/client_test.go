package codewars

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/users/{name}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("name") {
		case "warrior":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"username":"warrior","honor":1234,"ranks":{"overall":{"rank":-4,"name":"4 kyu","color":"blue"}}}`))
		case "flaky":
			http.Error(w, "upstream down", http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"success":false,"reason":"not found"}`))
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

func TestGetUser(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(ClientOptions{BaseURL: srv.URL + "/"})

	account, err := client.GetUser(context.Background(), "warrior")
	require.NoError(t, err)
	assert.Equal(t, "warrior", account.Username)
	assert.Equal(t, "4 kyu", account.Rank)
	assert.Equal(t, 1234, account.Honor)
}

func TestGetUser_NotFound(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(ClientOptions{BaseURL: srv.URL})

	_, err := client.GetUser(context.Background(), "nobody-here")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUser_APIError(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(ClientOptions{BaseURL: srv.URL})

	_, err := client.GetUser(context.Background(), "flaky")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "upstream down")
}

func TestGetUser_EmptyUsername(t *testing.T) {
	_, err := NewClient(ClientOptions{}).GetUser(context.Background(), "  ")
	require.Error(t, err)
}
