package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orion-console/dto"
	"orion-console/models"
)

type fakeBackend struct {
	mu      sync.Mutex
	posts   []map[string]any
	deletes []string

	// "METHOD /path" 별 요청 본문
	writes map[string]map[string]any
}

func (b *fakeBackend) recordWrite(r *http.Request) map[string]any {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writes[r.Method+" "+r.URL.Path] = body
	return body
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()
	b := &fakeBackend{writes: map[string]map[string]any{}}
	people := []models.CollaboratorView{
		{Collaborator: models.Collaborator{ID: "c1", FirstName: "Jane", LastName: "Doe"}, PositionName: "Engineer", TeamName: "Platform"},
		{Collaborator: models.Collaborator{ID: "c2", FirstName: "John", LastName: "Roe"}, PositionName: "Designer", TeamName: "Growth"},
		{Collaborator: models.Collaborator{ID: "c3", FirstName: "Ann", LastName: "Lee"}, PositionName: "p-missing", TeamName: "Platform"},
	}
	for i := 4; i <= 12; i++ {
		people = append(people, models.CollaboratorView{
			Collaborator: models.Collaborator{ID: "c" + strconv.Itoa(i), FirstName: "Member", LastName: strconv.Itoa(i)},
			PositionName: "Engineer", TeamName: "Growth",
		})
	}
	platform := models.Team{ID: "t1", Name: "Platform", Description: "Core services", Tags: []string{"infra"}}
	write := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/bff/collaborators", func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		size, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
		if page < 1 || size < 1 {
			write(w, http.StatusBadRequest, map[string]string{"error": "bad paging"})
			return
		}
		start := min((page-1)*size, len(people))
		end := min(start+size, len(people))
		write(w, http.StatusOK, dto.CollaboratorListData{
			Collaborators: people[start:end],
			Pagination: dto.PaginationInfo{
				Page: page, PageSize: size, TotalItems: len(people),
				TotalPages: (len(people) + size - 1) / size,
			},
			Metadata: &dto.Metadata{Filters: []string{"lastName", "firstName"}},
		})
	})
	mux.HandleFunc("GET /api/bff/collaborators/form-data", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, dto.CollaboratorFormData{
			Positions: []models.Position{{ID: "p1", Name: "Engineer"}},
			Teams:     []models.Team{{ID: "t1", Name: "Platform"}},
		})
	})
	mux.HandleFunc("POST /api/bff/collaborators", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.mu.Lock()
		b.posts = append(b.posts, body)
		b.mu.Unlock()
		body["id"] = "c9"
		write(w, http.StatusCreated, body)
	})
	mux.HandleFunc("DELETE /api/teams/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "t1" {
			write(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		b.mu.Lock()
		b.deletes = append(b.deletes, "teams/t1")
		b.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /api/teams/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "t1" {
			write(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		write(w, http.StatusOK, platform)
	})
	mux.HandleFunc("POST /api/teams", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusCreated, b.recordWrite(r))
	})
	mux.HandleFunc("PUT /api/teams/{id}", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, b.recordWrite(r))
	})
	mux.HandleFunc("POST /api/positions", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusCreated, b.recordWrite(r))
	})
	mux.HandleFunc("GET /api/bff/teams/{id}/overview", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "t1" {
			write(w, http.StatusNotFound, map[string]string{"error": "team not found"})
			return
		}
		write(w, http.StatusOK, dto.TeamOverview{
			Team:    platform,
			Members: []models.CollaboratorView{people[0], people[2]},
			Projects: dto.ListResponse[models.Project]{
				Data:       []models.Project{{ID: "pr1", Name: "Orion", Status: models.ProjectStatusActive, OwnerID: "t1"}},
				Pagination: dto.PaginationInfo{Page: 1, PageSize: 10, TotalItems: 1, TotalPages: 1},
			},
		})
	})
	mux.HandleFunc("GET /api/projects", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusInternalServerError, map[string]string{"error": "database unavailable"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return b, srv
}

func run(t *testing.T, srv *httptest.Server, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--api-url", srv.URL+"/api", "--bff-url", srv.URL+"/api/bff"))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListCollaborators(t *testing.T) {
	_, srv := newFakeBackend(t)

	out, err := run(t, srv, "", "list", "collaborators", "--query", "page=2&pageSize=1")
	require.NoError(t, err)

	assert.Contains(t, out, "John Roe")
	assert.NotContains(t, out, "Jane Doe")
	assert.Contains(t, out, "page 2 of 12, 12 items, 1 per page")
	assert.Contains(t, out, "filters: firstName, lastName")
	assert.Contains(t, out, "url: /collaborators?page=2&pageSize=1")
}

func TestListDropsDefaultsFromURL(t *testing.T) {
	_, srv := newFakeBackend(t)

	out, err := run(t, srv, "", "list", "collaborators", "--query", "page=1&pageSize=10")
	require.NoError(t, err)
	assert.Contains(t, out, "url: /collaborators\n")
}

func TestListFailureReportsError(t *testing.T) {
	_, srv := newFakeBackend(t)

	out, err := run(t, srv, "", "list", "projects")
	require.Error(t, err)
	assert.Equal(t, exitAPI, exitCode(err))
	assert.Contains(t, out, "(no results)")
	assert.Contains(t, out, "page 1 of 1, 0 items")
	assert.Contains(t, out, "error: ")
}

func TestListUnknownResource(t *testing.T) {
	_, srv := newFakeBackend(t)

	_, err := run(t, srv, "", "list", "invoices")
	require.Error(t, err)
	assert.Equal(t, exitUsage, exitCode(err))
}

func TestBrowseNavigatesAndGoesBack(t *testing.T) {
	_, srv := newFakeBackend(t)

	out, err := run(t, srv, "s 5\nn\ng 9\nback\nq\n", "browse", "collaborators")
	require.NoError(t, err)

	screens := strings.Split(out, "> ")
	require.Len(t, screens, 6)
	assert.Contains(t, screens[0], "page 1 of 2, 12 items, 10 per page")
	assert.Contains(t, screens[1], "page 1 of 3, 12 items, 5 per page")
	assert.Contains(t, screens[1], "url: /collaborators?pageSize=5")
	assert.Contains(t, screens[2], "page 2 of 3")
	assert.Contains(t, screens[2], "url: /collaborators?page=2&pageSize=5")
	// 범위 밖: 변화 없음
	assert.Contains(t, screens[3], "page 2 of 3")
	assert.Contains(t, screens[4], "page 1 of 3")
	assert.Contains(t, screens[4], "url: /collaborators?pageSize=5")
}

func TestBrowseRejectsBadCommands(t *testing.T) {
	_, srv := newFakeBackend(t)

	out, err := run(t, srv, "g two\nzz\nq\n", "browse", "collaborators")
	require.NoError(t, err)
	assert.Contains(t, out, `invalid number "two"`)
	assert.Contains(t, out, `unknown command "zz"`)
}

func TestFormShowsReferences(t *testing.T) {
	_, srv := newFakeBackend(t)

	out, err := run(t, srv, "", "form", "collaborator", "--position", "p1")
	require.NoError(t, err)
	assert.Contains(t, out, "mode: create")
	assert.Contains(t, out, "positionId: p1 (Engineer)")
	assert.Contains(t, out, "  t1  Platform")
}

func TestFormValidationSendsNothing(t *testing.T) {
	b, srv := newFakeBackend(t)

	out, err := run(t, srv, "", "form", "collaborator", "--first-name", "Jane", "--save")
	require.Error(t, err)
	assert.Equal(t, exitValidation, exitCode(err))
	assert.Contains(t, out, "invalid lastName: required")
	assert.Empty(t, b.posts)
}

func TestFormCreate(t *testing.T) {
	b, srv := newFakeBackend(t)

	out, err := run(t, srv, "", "form", "collaborator",
		"--first-name", " Jane ", "--last-name", "Doe", "--position", "p1", "--team", "t1",
		"--tag", "go", "--tag", "go", "--save")
	require.NoError(t, err)

	assert.Contains(t, out, "saved collaborator c9 (Jane Doe)")
	require.Len(t, b.posts, 1)
	assert.Equal(t, "Jane", b.posts[0]["firstName"])
	assert.Equal(t, []any{"go"}, b.posts[0]["tags"])
}

func TestDelete(t *testing.T) {
	b, srv := newFakeBackend(t)

	out, err := run(t, srv, "", "delete", "teams", "t1")
	require.NoError(t, err)
	assert.Equal(t, "deleted teams t1\n", out)
	assert.Equal(t, []string{"teams/t1"}, b.deletes)

	_, err = run(t, srv, "", "delete", "teams", "t404")
	require.Error(t, err)
	assert.Equal(t, exitAPI, exitCode(err))
	assert.EqualError(t, err, "teams t404 not found")
}

func TestBrowseOnlyOffersConfiguredPageSizes(t *testing.T) {
	_, srv := newFakeBackend(t)

	out, err := run(t, srv, "s 7\ns 20\nq\n", "browse", "collaborators")
	require.NoError(t, err)

	screens := strings.Split(out, "> ")
	require.Len(t, screens, 4)
	assert.Contains(t, screens[1], "page size must be one of 5, 10, 20, 50")
	assert.NotContains(t, screens[1], "7 per page")
	assert.Contains(t, screens[2], "page 1 of 1, 12 items, 20 per page")
}

func TestTeamFormCreate(t *testing.T) {
	b, srv := newFakeBackend(t)

	out, err := run(t, srv, "", "form", "team", "--name", " Growth ", "--tag", "sales", "--save")
	require.NoError(t, err)
	assert.Contains(t, out, "saved team ")
	assert.Contains(t, out, "(Growth)")

	body := b.writes["POST /api/teams"]
	require.NotNil(t, body)
	id, _ := body["id"].(string)
	_, perr := uuid.Parse(id)
	require.NoError(t, perr)
	assert.Equal(t, "Growth", body["name"])
	assert.Equal(t, []any{"sales"}, body["tags"])
}

func TestTeamFormEdit(t *testing.T) {
	b, srv := newFakeBackend(t)

	out, err := run(t, srv, "", "form", "team", "t1")
	require.NoError(t, err)
	assert.Contains(t, out, "mode: edit t1")
	assert.Contains(t, out, "name: Platform")
	assert.Contains(t, out, "tags: infra")

	_, err = run(t, srv, "", "form", "team", "t1", "--remove-tag", "infra", "--tag", "core", "--save")
	require.NoError(t, err)
	body := b.writes["PUT /api/teams/t1"]
	require.NotNil(t, body)
	assert.Equal(t, "t1", body["id"])
	assert.Equal(t, "Platform", body["name"])
	assert.Equal(t, []any{"core"}, body["tags"])

	_, err = run(t, srv, "", "form", "team", "t404")
	require.Error(t, err)
	assert.Equal(t, exitAPI, exitCode(err))
	assert.EqualError(t, err, "team t404 not found")
}

func TestPositionFormRequiresName(t *testing.T) {
	b, srv := newFakeBackend(t)

	out, err := run(t, srv, "", "form", "position", "--description", "builds things", "--save")
	require.Error(t, err)
	assert.Equal(t, exitValidation, exitCode(err))
	assert.Contains(t, out, "invalid name: required")
	assert.Empty(t, b.writes)

	out, err = run(t, srv, "", "form", "position", "--name", "Engineer", "--save")
	require.NoError(t, err)
	assert.Contains(t, out, "(Engineer)")
	assert.Equal(t, "Engineer", b.writes["POST /api/positions"]["name"])
}

func TestFormRejectsDotID(t *testing.T) {
	_, srv := newFakeBackend(t)

	_, err := run(t, srv, "", "form", "team", "..")
	require.Error(t, err)
	assert.Equal(t, exitUsage, exitCode(err))
}

func TestHomeShowsTeamOverview(t *testing.T) {
	_, srv := newFakeBackend(t)

	out, err := run(t, srv, "", "home", "t1")
	require.NoError(t, err)
	assert.Contains(t, out, "team: Platform (t1)")
	assert.Contains(t, out, "description: Core services")
	assert.Contains(t, out, "members (2):")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "Ann Lee")
	assert.Contains(t, out, "projects (1):")
	assert.Contains(t, out, "Orion")

	_, err = run(t, srv, "", "home", "t404")
	require.Error(t, err)
	assert.Equal(t, exitAPI, exitCode(err))
	assert.EqualError(t, err, "team t404 not found")
}
