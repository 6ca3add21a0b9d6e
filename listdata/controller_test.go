package listdata

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orion-console/dto"
	"orion-console/urlstate"
)

type item struct {
	ID   string
	Name string
}

// fakeSource 는 고정된 항목을 페이지로 나눠 돌려주고 받은 쿼리를 모두 기록한다.
type fakeSource struct {
	mu      sync.Mutex
	items   []item
	calls   []dto.ListQuery
	err     error
	filters []string
}

func newFakeSource(n int) *fakeSource {
	items := make([]item, n)
	for i := range items {
		items[i] = item{ID: string(rune('a' + i%26)), Name: "item"}
	}
	return &fakeSource{items: items, filters: []string{"name", "email"}}
}

func (f *fakeSource) fetch(_ context.Context, q dto.ListQuery) (dto.ListResponse[item], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, q)
	if f.err != nil {
		return dto.ListResponse[item]{}, f.err
	}

	total := len(f.items)
	pages := (total + q.PageSize - 1) / q.PageSize
	if pages < 1 {
		pages = 1
	}
	start := (q.Page - 1) * q.PageSize
	end := start + q.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return dto.ListResponse[item]{
		Data:       append([]item(nil), f.items[start:end]...),
		Pagination: dto.PaginationInfo{Page: q.Page, PageSize: q.PageSize, TotalItems: total, TotalPages: pages},
		Metadata:   &dto.Metadata{Filters: f.filters},
	}, nil
}

func (f *fakeSource) lastCall(t *testing.T) dto.ListQuery {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.calls)
	return f.calls[len(f.calls)-1]
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestController(t *testing.T, src *fakeSource, rawURL string) (*Controller[item], *urlstate.MemoryLocation) {
	t.Helper()
	loc, err := urlstate.NewMemoryLocation(rawURL)
	require.NoError(t, err)
	c := New[item](src.fetch, loc)
	require.NoError(t, c.Initialize(context.Background(), 10))
	return c, loc
}

func TestInitializeReadsLocation(t *testing.T) {
	src := newFakeSource(25)
	c, _ := newTestController(t, src, "/collaborators?page=2&pageSize=5&filter=name&search=Jane")

	assert.Equal(t, dto.ListQuery{Page: 2, PageSize: 5, Filter: "name", Search: "Jane"}, src.lastCall(t))

	s := c.State()
	assert.Equal(t, 2, s.Pagination.Page)
	assert.Equal(t, 5, s.Pagination.PageSize)
	assert.Equal(t, "name", s.FilterField)
	assert.Equal(t, "Jane", s.SearchValue)
	assert.False(t, s.Loading)
	assert.Empty(t, s.Error)
	assert.Equal(t, []string{"name", "email"}, s.AvailableFilters)
}

func TestInitializeDefaults(t *testing.T) {
	src := newFakeSource(3)
	c, loc := newTestController(t, src, "/positions")

	assert.Equal(t, dto.ListQuery{Page: 1, PageSize: 10}, src.lastCall(t))
	assert.Len(t, c.State().Data, 3)
	assert.Equal(t, "/positions", loc.String())
}

func TestConcreteScenarioNextPage(t *testing.T) {
	calls := []dto.ListQuery{}
	fetch := func(_ context.Context, q dto.ListQuery) (dto.ListResponse[string], error) {
		calls = append(calls, q)
		return dto.ListResponse[string]{
			Data:       []string{"A", "B", "C"},
			Pagination: dto.PaginationInfo{Page: q.Page, PageSize: 10, TotalItems: 25, TotalPages: 3},
		}, nil
	}
	c := New[string](fetch, nil)
	require.NoError(t, c.Initialize(context.Background(), 10))

	s := c.State()
	assert.Equal(t, []string{"A", "B", "C"}, s.Data)
	assert.Equal(t, 3, s.Pagination.TotalPages)

	require.NoError(t, c.GoToNextPage(context.Background()))
	require.Len(t, calls, 2)
	assert.Equal(t, 2, calls[1].Page)
}

func TestGoToPageUpdatesURL(t *testing.T) {
	src := newFakeSource(25)
	c, loc := newTestController(t, src, "/teams")
	ctx := context.Background()

	for _, page := range []int{1, 2, 3} {
		require.NoError(t, c.GoToPage(ctx, page))
		assert.Equal(t, page, c.State().Pagination.Page)
		if page == 1 {
			assert.Empty(t, loc.Query().Get("page"))
		} else {
			assert.Equal(t, string(rune('0'+page)), loc.Query().Get("page"))
		}
	}
}

func TestGoToPageOutOfRangeIsNoop(t *testing.T) {
	src := newFakeSource(25)
	c, loc := newTestController(t, src, "/teams?page=2")
	before := c.State()
	beforeURL := loc.String()
	calls := src.callCount()

	for _, n := range []int{0, -1, 4, 100} {
		require.NoError(t, c.GoToPage(context.Background(), n))
	}

	assert.Equal(t, calls, src.callCount())
	assert.Equal(t, before, c.State())
	assert.Equal(t, beforeURL, loc.String())
}

func TestNextAndPreviousAreBounded(t *testing.T) {
	src := newFakeSource(15)
	c, _ := newTestController(t, src, "/teams")
	ctx := context.Background()

	require.NoError(t, c.GoToPreviousPage(ctx))
	assert.Equal(t, 1, src.callCount())

	require.NoError(t, c.GoToNextPage(ctx))
	assert.Equal(t, 2, c.State().Pagination.Page)

	require.NoError(t, c.GoToNextPage(ctx))
	assert.Equal(t, 2, src.callCount())

	require.NoError(t, c.GoToPreviousPage(ctx))
	assert.Equal(t, 1, c.State().Pagination.Page)
}

func TestApplyFiltersSendsStagedFilterAtPageOne(t *testing.T) {
	src := newFakeSource(25)
	c, loc := newTestController(t, src, "/collaborators?page=3")
	ctx := context.Background()

	c.SetFilterField("name")
	c.SetSearchValue("Jane")
	assert.Equal(t, 1, src.callCount(), "staging must not fetch")

	require.NoError(t, c.ApplyFilters(ctx))

	assert.Equal(t, dto.ListQuery{Page: 1, PageSize: 10, Filter: "name", Search: "Jane"}, src.lastCall(t))
	assert.Equal(t, 1, c.State().Pagination.Page)
	assert.Equal(t, "filter=name&search=Jane", loc.Query().Encode())
}

func TestClearFilters(t *testing.T) {
	src := newFakeSource(25)
	c, loc := newTestController(t, src, "/collaborators?page=2&filter=name&search=Jane")

	require.NoError(t, c.ClearFilters(context.Background()))

	s := c.State()
	assert.Empty(t, s.FilterField)
	assert.Empty(t, s.SearchValue)
	assert.Equal(t, dto.ListQuery{Page: 1, PageSize: 10}, src.lastCall(t))
	assert.Empty(t, loc.Query().Encode())
}

func TestChangePageSize(t *testing.T) {
	src := newFakeSource(25)
	c, loc := newTestController(t, src, "/teams?page=2&filter=name&search=x")
	ctx := context.Background()

	require.NoError(t, c.ChangePageSize(ctx, 20))
	assert.Equal(t, dto.ListQuery{Page: 1, PageSize: 20, Filter: "name", Search: "x"}, src.lastCall(t))
	assert.Equal(t, "20", loc.Query().Get("pageSize"))

	calls := src.callCount()
	require.NoError(t, c.ChangePageSize(ctx, 0))
	assert.Equal(t, calls, src.callCount())
}

func TestReloadKeepsQuery(t *testing.T) {
	src := newFakeSource(25)
	c, _ := newTestController(t, src, "/teams?page=2&pageSize=5&filter=name&search=x")

	require.NoError(t, c.Reload(context.Background()))
	assert.Equal(t, dto.ListQuery{Page: 2, PageSize: 5, Filter: "name", Search: "x"}, src.lastCall(t))
}

func TestFetchErrorPolicy(t *testing.T) {
	src := newFakeSource(25)
	c, loc := newTestController(t, src, "/teams?page=2")
	beforeURL := loc.String()

	src.mu.Lock()
	src.err = errors.New("network down")
	src.mu.Unlock()

	err := c.ChangePageSize(context.Background(), 20)
	require.Error(t, err)

	s := c.State()
	assert.Equal(t, []item{}, s.Data)
	assert.Equal(t, dto.PaginationInfo{Page: 1, PageSize: 20, TotalItems: 0, TotalPages: 1}, s.Pagination)
	assert.Equal(t, "network down", s.Error)
	assert.False(t, s.Loading)
	assert.Equal(t, beforeURL, loc.String())

	src.mu.Lock()
	src.err = nil
	src.mu.Unlock()

	require.NoError(t, c.Reload(context.Background()))
	assert.Empty(t, c.State().Error)
}

func TestMissingPaginationIsNormalized(t *testing.T) {
	fetch := func(_ context.Context, q dto.ListQuery) (dto.ListResponse[string], error) {
		return dto.ListResponse[string]{}, nil
	}
	c := New[string](fetch, nil)
	require.NoError(t, c.Initialize(context.Background(), 25))

	s := c.State()
	assert.Equal(t, []string{}, s.Data)
	assert.Equal(t, dto.EmptyPagination(25), s.Pagination)
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	type pending struct {
		q       dto.ListQuery
		release chan struct{}
	}
	started := make(chan pending)
	first := true

	fetch := func(ctx context.Context, q dto.ListQuery) (dto.ListResponse[string], error) {
		if first {
			first = false
			return dto.ListResponse[string]{
				Data:       []string{"p1"},
				Pagination: dto.PaginationInfo{Page: 1, PageSize: 10, TotalItems: 30, TotalPages: 3},
			}, nil
		}
		p := pending{q: q, release: make(chan struct{})}
		started <- p
		<-p.release
		return dto.ListResponse[string]{
			Data:       []string{"p" + string(rune('0'+q.Page))},
			Pagination: dto.PaginationInfo{Page: q.Page, PageSize: 10, TotalItems: 30, TotalPages: 3},
		}, nil
	}

	loc, err := urlstate.NewMemoryLocation("/teams")
	require.NoError(t, err)
	c := New[string](fetch, loc)
	require.NoError(t, c.Initialize(context.Background(), 10))

	ctx := context.Background()
	done2 := make(chan error, 1)
	done3 := make(chan error, 1)

	go func() { done2 <- c.GoToPage(ctx, 2) }()
	p2 := <-started
	go func() { done3 <- c.GoToPage(ctx, 3) }()
	p3 := <-started
	assert.Equal(t, 2, p2.q.Page)
	assert.Equal(t, 3, p3.q.Page)
	assert.True(t, c.State().Loading)

	close(p3.release)
	require.NoError(t, <-done3)
	close(p2.release)
	require.NoError(t, <-done2)

	s := c.State()
	assert.Equal(t, 3, s.Pagination.Page)
	assert.Equal(t, []string{"p3"}, s.Data)
	assert.False(t, s.Loading)
	assert.Equal(t, "3", loc.Query().Get("page"))
}

func TestSyncFromLocation(t *testing.T) {
	src := newFakeSource(25)
	c, loc := newTestController(t, src, "/teams")
	ctx := context.Background()

	require.NoError(t, c.GoToPage(ctx, 2))
	loc.Push(loc.Query())
	require.NoError(t, c.GoToPage(ctx, 3))

	require.True(t, loc.Back())
	require.NoError(t, c.SyncFromLocation(ctx))
	assert.Equal(t, 2, c.State().Pagination.Page)

	calls := src.callCount()
	require.NoError(t, c.SyncFromLocation(ctx))
	assert.Equal(t, calls, src.callCount(), "unchanged URL must not refetch")
}

func TestEmptyErrorMessageFallsBack(t *testing.T) {
	fetch := func(context.Context, dto.ListQuery) (dto.ListResponse[int], error) {
		return dto.ListResponse[int]{}, errors.New("")
	}
	c := New[int](fetch, nil)
	require.Error(t, c.Initialize(context.Background(), 10))
	assert.True(t, strings.Contains(c.State().Error, "error"))
}

func TestConcurrentOperationsSettle(t *testing.T) {
	src := newFakeSource(100)
	c, _ := newTestController(t, src, "/teams")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for i := 1; i <= 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = c.GoToPage(ctx, n)
		}(i)
	}
	wg.Wait()

	s := c.State()
	assert.False(t, s.Loading)
	assert.Len(t, s.Data, 10)
}

func TestFiltersKeepPageSizeOfInFlightLoad(t *testing.T) {
	type pending struct {
		q       dto.ListQuery
		release chan struct{}
	}
	started := make(chan pending)
	var mu sync.Mutex
	first := true

	fetch := func(ctx context.Context, q dto.ListQuery) (dto.ListResponse[string], error) {
		mu.Lock()
		initial := first
		first = false
		mu.Unlock()
		if !initial {
			p := pending{q: q, release: make(chan struct{})}
			started <- p
			<-p.release
		}
		pages := (30 + q.PageSize - 1) / q.PageSize
		return dto.ListResponse[string]{
			Data:       []string{"row"},
			Pagination: dto.PaginationInfo{Page: q.Page, PageSize: q.PageSize, TotalItems: 30, TotalPages: pages},
		}, nil
	}

	loc, err := urlstate.NewMemoryLocation("/collaborators")
	require.NoError(t, err)
	c := New[string](fetch, loc)
	ctx := context.Background()
	require.NoError(t, c.Initialize(ctx, 10))

	resized := make(chan error, 1)
	go func() { resized <- c.ChangePageSize(ctx, 20) }()
	pResize := <-started
	assert.Equal(t, dto.ListQuery{Page: 1, PageSize: 20}, pResize.q)

	c.SetFilterField("name")
	c.SetSearchValue("Jane")
	filtered := make(chan error, 1)
	go func() { filtered <- c.ApplyFilters(ctx) }()
	pFilter := <-started
	assert.Equal(t, dto.ListQuery{Page: 1, PageSize: 20, Filter: "name", Search: "Jane"}, pFilter.q)

	close(pFilter.release)
	require.NoError(t, <-filtered)
	close(pResize.release)
	require.NoError(t, <-resized)

	s := c.State()
	assert.Equal(t, 20, s.Pagination.PageSize)
	assert.Equal(t, "name", s.Active.Filter)
	assert.Contains(t, loc.String(), "pageSize=20")
}

func TestPagingDuringInFlightResizeUsesNewSize(t *testing.T) {
	started := make(chan chan struct{})
	var mu sync.Mutex
	calls := []dto.ListQuery{}

	fetch := func(ctx context.Context, q dto.ListQuery) (dto.ListResponse[string], error) {
		mu.Lock()
		calls = append(calls, q)
		n := len(calls)
		mu.Unlock()
		if n == 2 {
			release := make(chan struct{})
			started <- release
			<-release
		}
		pages := (30 + q.PageSize - 1) / q.PageSize
		return dto.ListResponse[string]{
			Pagination: dto.PaginationInfo{Page: q.Page, PageSize: q.PageSize, TotalItems: 30, TotalPages: pages},
		}, nil
	}

	c := New[string](fetch, nil)
	ctx := context.Background()
	require.NoError(t, c.Initialize(ctx, 10))

	resized := make(chan error, 1)
	go func() { resized <- c.ChangePageSize(ctx, 20) }()
	release := <-started

	// 20 개씩이면 2 페이지가 끝이다.
	require.NoError(t, c.GoToPage(ctx, 3))
	require.NoError(t, c.GoToPage(ctx, 2))
	require.NoError(t, c.Reload(ctx))

	close(release)
	require.NoError(t, <-resized)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, calls, 4)
	assert.Equal(t, dto.ListQuery{Page: 2, PageSize: 20}, calls[2])
	assert.Equal(t, dto.ListQuery{Page: 2, PageSize: 20}, calls[3])
	assert.Equal(t, 2, c.State().Pagination.Page)
}
