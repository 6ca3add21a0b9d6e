package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orion-console/dto"
	"orion-console/models"
)

func TestListSendsPaginationAndOmitsBlankFilters(t *testing.T) {
	var got map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/teams", r.URL.Path)
		got = r.URL.Query()
		_ = json.NewEncoder(w).Encode(dto.ListResponse[models.Team]{
			Data:       []models.Team{{ID: "t1", Name: "Core"}},
			Pagination: dto.PaginationInfo{Page: 2, PageSize: 5, TotalItems: 6, TotalPages: 2},
			Metadata:   &dto.Metadata{Filters: []string{"name", "tags"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	resp, err := c.Teams.List(context.Background(), dto.ListQuery{Page: 2, PageSize: 5, Search: "  ", Filter: ""})
	require.NoError(t, err)

	assert.Equal(t, []string{"2"}, got["page"])
	assert.Equal(t, []string{"5"}, got["pageSize"])
	assert.NotContains(t, got, "search")
	assert.NotContains(t, got, "filter")
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	assert.Equal(t, []string{"name", "tags"}, resp.AvailableFilters())
}

func TestListSendsFilterAndSearch(t *testing.T) {
	var got map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(`{"data":null,"pagination":{"page":1,"pageSize":10,"totalItems":0,"totalPages":1}}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.Collaborators.List(context.Background(), dto.ListQuery{Page: 1, PageSize: 10, Search: "Jane", Filter: "name"})
	require.NoError(t, err)

	assert.Equal(t, []string{"name"}, got["filter"])
	assert.Equal(t, []string{"Jane"}, got["search"])
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
}

func TestDropdownSendsHeaderAndAcceptsBothShapes(t *testing.T) {
	bodies := []string{
		`[{"id":"p1","name":"Dev"}]`,
		`{"data":[{"id":"p1","name":"Dev"}]}`,
	}
	for _, body := range bodies {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "true", r.Header.Get(HeaderDropdown))
			assert.Empty(t, r.URL.RawQuery)
			w.Write([]byte(body))
		}))

		items, err := New(srv.URL).Positions.Dropdown(context.Background())
		srv.Close()

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Dev", items[0].Name)
	}
}

func TestGetNotFoundMatchesErrNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collaborators/c-9", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"collaborator not found"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Collaborators.Get(context.Background(), "c-9")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
	assert.Equal(t, "failed to get collaborators: status=404 collaborator not found", err.Error())
}

func TestServerErrorIsNormalized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Projects.List(context.Background(), dto.ListQuery{Page: 1, PageSize: 20})

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "list projects", apiErr.Op)
	assert.Equal(t, "boom", apiErr.Message)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestTransportErrorIsNormalized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := New(url).Teams.Delete(context.Background(), "t1")

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.Status)
	assert.Contains(t, err.Error(), "failed to delete teams")
}

func TestCreateAndUpdateSendJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in models.Position
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		switch r.Method {
		case http.MethodPost:
			assert.Equal(t, "/positions", r.URL.Path)
			in.ID = "p-new"
			w.WriteHeader(http.StatusCreated)
		case http.MethodPut:
			assert.Equal(t, "/positions/p-1", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(in)
	}))
	defer srv.Close()

	c := New(srv.URL)
	created, err := c.Positions.Create(context.Background(), models.Position{Name: "QA"})
	require.NoError(t, err)
	assert.Equal(t, "p-new", created.ID)

	updated, err := c.Positions.Update(context.Background(), "p-1", models.Position{ID: "p-1", Name: "QA Lead"})
	require.NoError(t, err)
	assert.Equal(t, "QA Lead", updated.Name)
}

func TestIDIsEscapedAsOneSegment(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Method+" "+r.RequestURI)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	require.NoError(t, c.Teams.Delete(context.Background(), "../positions/x"))
	_, err := c.Teams.Get(context.Background(), "a b?c")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"DELETE /api/teams/..%2Fpositions%2Fx",
		"GET /api/teams/a%20b%3Fc",
	}, got)
}

func TestDotSegmentIDsAreRejected(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	bff := NewBFF(srv.URL + "/api/bff")
	for _, id := range []string{"", ".", ".."} {
		err := c.Teams.Delete(context.Background(), id)
		assert.ErrorIs(t, err, ErrInvalidID, "id %q", id)

		_, err = c.Positions.Update(context.Background(), id, models.Position{Name: "QA"})
		assert.ErrorIs(t, err, ErrInvalidID, "id %q", id)

		assert.ErrorIs(t, bff.DeleteCollaborator(context.Background(), id), ErrInvalidID, "id %q", id)

		_, err = bff.TeamOverview(context.Background(), id)
		assert.ErrorIs(t, err, ErrInvalidID, "id %q", id)
	}
	_, err := bff.CollaboratorFormData(context.Background(), "..")
	assert.ErrorIs(t, err, ErrInvalidID)
	assert.Zero(t, calls)
}
