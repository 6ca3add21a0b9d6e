package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"orion-console/apiclient"
	"orion-console/dto"
	"orion-console/models"
)

// fakeAPI 는 REST API(/api) 를 흉내 내는 테스트 서버다.
type fakeAPI struct {
	mu        sync.Mutex
	resources map[string][]map[string]any
	hits      map[string]int
	queries   map[string]url.Values
	bodies    map[string][]map[string]any
	fail      map[string]int
}

func newFakeAPI(t *testing.T) (*fakeAPI, *apiclient.Client) {
	t.Helper()
	f := &fakeAPI{
		resources: map[string][]map[string]any{},
		hits:      map[string]int{},
		queries:   map[string]url.Values{},
		bodies:    map[string][]map[string]any{},
		fail:      map[string]int{},
	}
	f.seed("positions", []models.Position{
		{ID: "p1", Name: "Engineer"},
		{ID: "p2", Name: "Designer"},
	})
	f.seed("teams", []models.Team{
		{ID: "t1", Name: "Platform"},
		{ID: "t2", Name: "Growth"},
	})
	f.seed("collaborators", []models.Collaborator{
		{ID: "c1", FirstName: "Jane", LastName: "Doe", PositionID: "p1", TeamID: "t1"},
		{ID: "c2", FirstName: "John", LastName: "Roe", PositionID: "p2", TeamID: "t2"},
		{ID: "c3", FirstName: "Ann", LastName: "Lee", PositionID: "p-missing", TeamID: "t1"},
	})
	f.seed("projects", []models.Project{
		{ID: "pr1", Name: "Console", Status: models.ProjectStatusActive, OwnerID: "t1"},
		{ID: "pr2", Name: "Billing", Status: models.ProjectStatusDraft, OwnerID: "t2"},
	})

	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	return f, apiclient.New(srv.URL + "/api")
}

func (f *fakeAPI) seed(resource string, items any) {
	b, _ := json.Marshal(items)
	var out []map[string]any
	_ = json.Unmarshal(b, &out)
	f.resources[resource] = out
}

func (f *fakeAPI) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[key]
}

func (f *fakeAPI) failWith(key string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[key] = status
}

func (f *fakeAPI) query(key string) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[key]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// serve 는 "METHOD /resource[/id]" 키로 호출 수를 센다. dropdown 호출은 " dropdown" 이 붙는다.
func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/api"), "/"), "/")
	resource := parts[0]
	id := ""
	if len(parts) > 1 {
		id = parts[1]
	}

	key := r.Method + " /" + resource
	if id != "" {
		key += "/" + id
	}
	if r.Header.Get(apiclient.HeaderDropdown) == "true" {
		key += " dropdown"
	}
	f.hits[key]++
	f.queries[key] = r.URL.Query()

	if status, ok := f.fail[key]; ok {
		writeJSON(w, status, map[string]string{"error": "forced failure"})
		return
	}
	items, ok := f.resources[resource]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown resource"})
		return
	}

	switch {
	case r.Method == http.MethodGet && id == "" && strings.HasSuffix(key, " dropdown"):
		writeJSON(w, http.StatusOK, items)
	case r.Method == http.MethodGet && id == "":
		f.list(w, r, items)
	case r.Method == http.MethodGet:
		if item := find(items, id); item != nil {
			writeJSON(w, http.StatusOK, item)
			return
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("%s %s not found", resource, id)})
	case r.Method == http.MethodPost:
		body := decodeBody(r.Body)
		f.bodies[key] = append(f.bodies[key], body)
		f.resources[resource] = append(items, body)
		writeJSON(w, http.StatusCreated, body)
	case r.Method == http.MethodPut:
		if find(items, id) == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		body := decodeBody(r.Body)
		f.bodies[key] = append(f.bodies[key], body)
		writeJSON(w, http.StatusOK, body)
	case r.Method == http.MethodDelete:
		if find(items, id) == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeAPI) list(w http.ResponseWriter, r *http.Request, items []map[string]any) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	filtered := make([]map[string]any, 0, len(items))
	for _, it := range items {
		if matches(it, q.Get("filter"), q.Get("search")) {
			filtered = append(filtered, it)
		}
	}
	total := len(filtered)
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	start := min((page-1)*pageSize, total)
	end := min(start+pageSize, total)

	writeJSON(w, http.StatusOK, map[string]any{
		"data":       filtered[start:end],
		"pagination": dto.PaginationInfo{Page: page, PageSize: pageSize, TotalItems: total, TotalPages: pages},
		"metadata":   map[string]any{"filters": []string{"firstName", "lastName", "teamId", "ownerId"}},
	})
}

func matches(item map[string]any, field, search string) bool {
	if search == "" {
		return true
	}
	if field != "" {
		return fmt.Sprint(item[field]) == search
	}
	for _, v := range item {
		if s, ok := v.(string); ok && strings.Contains(strings.ToLower(s), strings.ToLower(search)) {
			return true
		}
	}
	return false
}

func find(items []map[string]any, id string) map[string]any {
	for _, it := range items {
		if it["id"] == id {
			return it
		}
	}
	return nil
}

func decodeBody(r io.Reader) map[string]any {
	var body map[string]any
	_ = json.NewDecoder(r).Decode(&body)
	return body
}
