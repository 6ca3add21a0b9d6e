package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"orion-console/listdata"
	"orion-console/models"
	"orion-console/urlstate"
)

var resourceNames = []string{"positions", "teams", "collaborators", "projects"}

// columns 는 T 한 행을 표의 열로 바꾼다.
type columns[T any] struct {
	headers []string
	row     func(T) []string
}

var positionColumns = columns[models.Position]{
	headers: []string{"ID", "NAME", "DESCRIPTION", "TAGS"},
	row: func(p models.Position) []string {
		return []string{p.ID, p.Name, p.Description, strings.Join(p.Tags, ",")}
	},
}

var teamColumns = columns[models.Team]{
	headers: []string{"ID", "NAME", "DESCRIPTION", "TAGS"},
	row: func(t models.Team) []string {
		return []string{t.ID, t.Name, t.Description, strings.Join(t.Tags, ",")}
	},
}

var collaboratorColumns = columns[models.CollaboratorView]{
	headers: []string{"ID", "NAME", "POSITION", "TEAM", "TAGS"},
	row: func(c models.CollaboratorView) []string {
		return []string{c.ID, c.FullName(), c.PositionName, c.TeamName, strings.Join(c.Tags, ",")}
	},
}

var projectColumns = columns[models.Project]{
	headers: []string{"ID", "NAME", "STATUS", "OWNER", "TAGS"},
	row: func(p models.Project) []string {
		return []string{p.ID, p.Name, string(p.Status), p.OwnerID, strings.Join(p.Tags, ",")}
	},
}

// session 은 목록 화면 하나다. 컨트롤러와 메모리 주소창을 묶는다.
type session interface {
	initialize(ctx context.Context, pageSize int) error
	exec(ctx context.Context, command string, args []string) error
	render(w io.Writer)
	err() string
}

// newSession 은 resource 의 세션을 만든다. 협업자 목록은 직책, 팀 이름이 채워지도록 BFF 를 거친다.
// browse 의 s 명령은 config 의 page_size_options 안의 크기만 받는다.
func (a *app) newSession(resource string, loc *urlstate.MemoryLocation) (session, error) {
	sizes := a.cfg.App.Pagination.PageSizeOptions
	switch resource {
	case "positions":
		return newListSession(listdata.New(a.api.Positions.List, loc), loc, positionColumns, sizes), nil
	case "teams":
		return newListSession(listdata.New(a.api.Teams.List, loc), loc, teamColumns, sizes), nil
	case "collaborators":
		return newListSession(listdata.New(a.bff.Collaborators, loc), loc, collaboratorColumns, sizes), nil
	case "projects":
		return newListSession(listdata.New(a.api.Projects.List, loc), loc, projectColumns, sizes), nil
	}
	return nil, withCode(exitUsage, fmt.Errorf("unknown resource %q (want one of %s)", resource, strings.Join(resourceNames, ", ")))
}

type listSession[T any] struct {
	ctrl *listdata.Controller[T]
	loc  *urlstate.MemoryLocation
	cols columns[T]

	// 비어 있으면 모든 양수 크기를 허용한다.
	sizes []int
}

func newListSession[T any](ctrl *listdata.Controller[T], loc *urlstate.MemoryLocation, cols columns[T], sizes []int) *listSession[T] {
	return &listSession[T]{ctrl: ctrl, loc: loc, cols: cols, sizes: sizes}
}

func (s *listSession[T]) initialize(ctx context.Context, pageSize int) error {
	return s.ctrl.Initialize(ctx, pageSize)
}

func (s *listSession[T]) err() string {
	return s.ctrl.State().Error
}

// exec 는 browse 명령 하나를 실행한다. 로드 실패는 반환하지 않고 상태에 남아 render 에서 보인다.
// 목록을 옮기는 명령은 히스토리에 항목을 쌓아 "back" 으로 이전 URL 로 돌아갈 수 있게 한다.
func (s *listSession[T]) exec(ctx context.Context, command string, args []string) error {
	switch command {
	case "f":
		if len(args) < 1 {
			return fmt.Errorf("usage: f FIELD [VALUE...]")
		}
		s.ctrl.SetFilterField(args[0])
		s.ctrl.SetSearchValue(strings.Join(args[1:], " "))
		return nil
	case "r":
		_ = s.ctrl.Reload(ctx)
		return nil
	case "back":
		if !s.loc.Back() {
			return fmt.Errorf("no previous page in history")
		}
		_ = s.ctrl.SyncFromLocation(ctx)
		return nil
	case "forward":
		if !s.loc.Forward() {
			return fmt.Errorf("no next page in history")
		}
		_ = s.ctrl.SyncFromLocation(ctx)
		return nil
	}

	var run func() error
	switch command {
	case "n":
		run = func() error { return s.ctrl.GoToNextPage(ctx) }
	case "p":
		run = func() error { return s.ctrl.GoToPreviousPage(ctx) }
	case "g", "s":
		if len(args) != 1 {
			return fmt.Errorf("usage: %s N", command)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid number %q", args[0])
		}
		if command == "g" {
			run = func() error { return s.ctrl.GoToPage(ctx, n) }
		} else {
			if len(s.sizes) > 0 && !slices.Contains(s.sizes, n) {
				return fmt.Errorf("page size must be one of %s", joinInts(s.sizes))
			}
			run = func() error { return s.ctrl.ChangePageSize(ctx, n) }
		}
	case "a":
		run = func() error { return s.ctrl.ApplyFilters(ctx) }
	case "c":
		run = func() error { return s.ctrl.ClearFilters(ctx) }
	default:
		return fmt.Errorf("unknown command %q", command)
	}

	before := s.loc.String()
	s.loc.Push(s.loc.Query())
	_ = run()
	if s.loc.String() == before {
		// 이동 없음
		s.loc.Back()
	}
	return nil
}

func (s *listSession[T]) render(w io.Writer) {
	st := s.ctrl.State()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(s.cols.headers, "\t"))
	for _, item := range st.Data {
		fmt.Fprintln(tw, strings.Join(s.cols.row(item), "\t"))
	}
	_ = tw.Flush()
	if len(st.Data) == 0 {
		fmt.Fprintln(w, "(no results)")
	}

	p := st.Pagination
	fmt.Fprintf(w, "page %d of %d, %d items, %d per page\n", p.Page, p.TotalPages, p.TotalItems, p.PageSize)
	if st.Active.Filter != "" || st.Active.Search != "" {
		fmt.Fprintf(w, "filter: %s=%q\n", st.Active.Filter, st.Active.Search)
	}
	if st.FilterField != st.Active.Filter || st.SearchValue != st.Active.Search {
		fmt.Fprintf(w, "staged: %s=%q (a to apply)\n", st.FilterField, st.SearchValue)
	}
	if len(st.AvailableFilters) > 0 {
		filters := append([]string(nil), st.AvailableFilters...)
		sort.Strings(filters)
		fmt.Fprintf(w, "filters: %s\n", strings.Join(filters, ", "))
	}
	fmt.Fprintf(w, "url: %s\n", s.loc.String())
	if st.Error != "" {
		fmt.Fprintf(w, "error: %s\n", st.Error)
	}
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}

func newLocation(resource, rawQuery string) (*urlstate.MemoryLocation, error) {
	loc, err := urlstate.NewMemoryLocation("/" + resource + "?" + strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		return nil, withCode(exitUsage, fmt.Errorf("invalid --query: %w", err))
	}
	return loc, nil
}
