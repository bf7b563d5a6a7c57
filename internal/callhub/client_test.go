package callhub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "secret-key"}, testLogger())
	_, err := c.get(context.Background(), "/v1/agents/", nil)
	require.NoError(t, err)
	assert.Equal(t, "Token secret-key", gotAuth)
}

func TestAPIErrorFieldMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"username": ["This field is required."], "email": "Enter a valid email address."}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "k"}, testLogger())
	_, err := c.postForm(context.Background(), "/v1/agents/", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, []string{"This field is required."}, apiErr.Fields["username"])
	assert.Equal(t, []string{"Enter a valid email address."}, apiErr.Fields["email"])
	assert.Contains(t, apiErr.Error(), "username: This field is required.")
}

func TestEmptyResponseNormalized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "k"}, testLogger())
	result, err := c.delete(context.Background(), "/v1/tags/5/")
	require.NoError(t, err)
	assert.Equal(t, true, result["success"])
}

func TestNonJSONSuccessWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "k"}, testLogger())
	result, err := c.get(context.Background(), "/", nil)
	require.NoError(t, err)
	assert.Equal(t, "OK", result["message"])
}

func TestListAllPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")
		switch page {
		case "", "1":
			json.NewEncoder(w).Encode(map[string]any{
				"count":   5,
				"next":    "http://ignored/?page=2",
				"results": []map[string]any{{"id": 1}, {"id": 2}, {"id": 3}},
			})
		case "2":
			json.NewEncoder(w).Encode(map[string]any{
				"count":   5,
				"next":    nil,
				"results": []map[string]any{{"id": 4}, {"id": 5}},
			})
		default:
			t.Errorf("unexpected page %q", page)
		}
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "k"}, testLogger())
	result, err := c.ListContacts(context.Background(), ListOptions{AllPages: true})
	require.NoError(t, err)

	assert.Equal(t, 5, result["count"])
	results := result["results"].([]map[string]any)
	require.Len(t, results, 5)
	assert.Equal(t, float64(1), results[0]["id"])
	assert.Equal(t, float64(5), results[4]["id"])
}

func TestListSinglePagePassthrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("page_size"))
		json.NewEncoder(w).Encode(map[string]any{"count": 1, "results": []any{}})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "k"}, testLogger())
	_, err := c.ListContacts(context.Background(), ListOptions{Page: 2, PageSize: 50})
	require.NoError(t, err)
}

func TestResolveTeam(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"id": 201, "name": "Canvassers"},
				{"id": 305, "name": "Phone Bank"},
			},
		})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "k"}, testLogger())

	team, err := c.ResolveTeam(context.Background(), TeamByName("Phone Bank"))
	require.NoError(t, err)
	assert.Equal(t, float64(305), team["id"])

	team, err = c.ResolveTeam(context.Background(), TeamByID("201"))
	require.NoError(t, err)
	assert.Equal(t, "Canvassers", team["name"])

	_, err = c.ResolveTeam(context.Background(), TeamByName("Missing"))
	require.Error(t, err)
}

func TestListCustomFieldsConcatenatedQuirk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Two JSON objects glued together, as the live endpoint does.
		fmt.Fprint(w, `{"id": 1, "name": "Region"}{"id": 2, "name": "Shift"}`)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "k"}, testLogger())
	result, err := c.ListCustomFields(context.Background(), ListOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, result["count"])
	fields := result["results"].([]map[string]any)
	require.Len(t, fields, 2)
	assert.Equal(t, "Shift", fields[1]["name"])
}
