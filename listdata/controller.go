// Package listdata 는 페이지네이션과 필터를 가진 제네릭 목록 컨트롤러다.
//
// Controller 는 목록 하나의 page, pageSize, 두 필드 필터(filterField, searchValue)를 소유하고
// 호출자가 넘긴 FetchFunc 로 데이터를 읽는다. 성공한 로드는 urlstate.Location 에 반영된다.
//
// 로드는 겹칠 수 있다. 로드마다 순번을 받고 가장 마지막에 발행된 로드만 결과를 반영한다.
// 이전 로드의 응답은 도착 순서와 상관없이 버려진다.
package listdata

import (
	"context"
	"sync"

	"orion-console/dto"
	"orion-console/urlstate"
)

const DefaultPageSize = 10

// FetchFunc 는 q 에 해당하는 T 한 페이지를 읽는다.
type FetchFunc[T any] func(ctx context.Context, q dto.ListQuery) (dto.ListResponse[T], error)

// State 는 Controller 의 스냅샷이다.
type State[T any] struct {
	Data       []T
	Pagination dto.PaginationInfo
	Metadata   *dto.Metadata
	Loading    bool
	Error      string

	// 입력 중인(아직 적용하지 않은) 필터
	FilterField string
	SearchValue string
	// Active 는 마지막으로 발행된 로드의 쿼리다.
	Active dto.ListQuery

	AvailableFilters []string
}

// Controller 는 동시에 사용해도 안전하다. fetch 중에는 락을 잡지 않는다.
type Controller[T any] struct {
	fetch FetchFunc[T]
	loc   urlstate.Location

	mu              sync.Mutex
	defaultPageSize int
	seq             uint64

	data       []T
	pagination dto.PaginationInfo
	metadata   *dto.Metadata
	loading    bool
	err        string

	filterField string
	searchValue string
	active      dto.ListQuery
}

// New 는 컨트롤러를 만든다. loc 이 nil 이면 URL 동기화를 하지 않는다.
func New[T any](fetch FetchFunc[T], loc urlstate.Location) *Controller[T] {
	return &Controller[T]{
		fetch:           fetch,
		loc:             loc,
		defaultPageSize: DefaultPageSize,
		data:            []T{},
		pagination:      dto.EmptyPagination(DefaultPageSize),
		active:          dto.ListQuery{Page: 1, PageSize: DefaultPageSize},
	}
}

// Initialize 는 location 에서 page, pageSize, filter, search 를 읽고
// (기본값 1, defaultPageSize, "", "") 첫 로드를 발행한다.
// defaultPageSize 가 0 이하면 DefaultPageSize 를 쓴다.
func (c *Controller[T]) Initialize(ctx context.Context, defaultPageSize int) error {
	c.mu.Lock()
	if defaultPageSize > 0 {
		c.defaultPageSize = defaultPageSize
	}
	s := urlstate.Defaults(c.defaultPageSize)
	if c.loc != nil {
		s = urlstate.Parse(c.loc.Query(), c.defaultPageSize)
	}
	c.filterField = s.Filter
	c.searchValue = s.Search
	c.pagination = dto.EmptyPagination(s.PageSize)
	c.mu.Unlock()

	return c.load(ctx, dto.ListQuery{Page: s.Page, PageSize: s.PageSize, Filter: s.Filter, Search: s.Search})
}

// SetFilterField 는 필터 필드만 바꾼다. 로드하지 않는다.
func (c *Controller[T]) SetFilterField(field string) {
	c.mu.Lock()
	c.filterField = field
	c.mu.Unlock()
}

// SetSearchValue 는 검색어만 바꾼다. 로드하지 않는다.
func (c *Controller[T]) SetSearchValue(value string) {
	c.mu.Lock()
	c.searchValue = value
	c.mu.Unlock()
}

// ApplyFilters 는 입력 중인 필터를 적용하고 1 페이지를 로드한다.
func (c *Controller[T]) ApplyFilters(ctx context.Context) error {
	c.mu.Lock()
	q := dto.ListQuery{Page: 1, PageSize: c.requested().PageSize, Filter: c.filterField, Search: c.searchValue}
	c.mu.Unlock()
	return c.load(ctx, q)
}

// ClearFilters 는 필터를 비우고 필터 없이 1 페이지를 로드한다.
func (c *Controller[T]) ClearFilters(ctx context.Context) error {
	c.mu.Lock()
	c.filterField = ""
	c.searchValue = ""
	q := dto.ListQuery{Page: 1, PageSize: c.requested().PageSize}
	c.mu.Unlock()
	return c.load(ctx, q)
}

// GoToPage 는 현재 필터로 n 페이지를 로드한다. [1, totalPages] 밖이면 무시한다.
func (c *Controller[T]) GoToPage(ctx context.Context, n int) error {
	c.mu.Lock()
	q := c.requested()
	if n < 1 || n > c.totalPages(q.PageSize) {
		c.mu.Unlock()
		return nil
	}
	q.Page = n
	c.mu.Unlock()
	return c.load(ctx, q)
}

func (c *Controller[T]) GoToNextPage(ctx context.Context) error {
	c.mu.Lock()
	q := c.requested()
	last := q.Page >= c.totalPages(q.PageSize)
	c.mu.Unlock()
	if last {
		return nil
	}
	return c.GoToPage(ctx, q.Page+1)
}

func (c *Controller[T]) GoToPreviousPage(ctx context.Context) error {
	c.mu.Lock()
	page := c.requested().Page
	c.mu.Unlock()
	if page <= 1 {
		return nil
	}
	return c.GoToPage(ctx, page-1)
}

// ChangePageSize 는 새 크기로 1 페이지를 로드한다. 필터는 유지한다.
// 1 보다 작은 크기는 무시한다.
func (c *Controller[T]) ChangePageSize(ctx context.Context, size int) error {
	if size < 1 {
		return nil
	}
	c.mu.Lock()
	q := c.requested()
	q.Page = 1
	q.PageSize = size
	c.mu.Unlock()
	return c.load(ctx, q)
}

// Reload 는 현재 페이지를 같은 크기와 필터로 다시 읽는다.
// 실패한 로드 뒤에는 실패한 쿼리를 다시 시도한다.
func (c *Controller[T]) Reload(ctx context.Context) error {
	c.mu.Lock()
	q := c.requested()
	c.mu.Unlock()
	return c.load(ctx, q)
}

// SyncFromLocation 은 뒤로/앞으로 가기 같은 외부 이동 후 컨트롤러를 URL 에 맞춘다.
// URL 의 쿼리가 현재 쿼리와 다를 때만 로드한다.
func (c *Controller[T]) SyncFromLocation(ctx context.Context) error {
	if c.loc == nil {
		return nil
	}
	c.mu.Lock()
	s := urlstate.Parse(c.loc.Query(), c.defaultPageSize)
	q := dto.ListQuery{Page: s.Page, PageSize: s.PageSize, Filter: s.Filter, Search: s.Search}
	if q == c.requested() {
		c.mu.Unlock()
		return nil
	}
	c.filterField = s.Filter
	c.searchValue = s.Search
	c.mu.Unlock()
	return c.load(ctx, q)
}

// State 는 컨트롤러의 스냅샷을 반환한다.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State[T]{
		Data:        append([]T(nil), c.data...),
		Pagination:  c.pagination,
		Metadata:    c.metadata,
		Loading:     c.loading,
		Error:       c.err,
		FilterField: c.filterField,
		SearchValue: c.searchValue,
		Active:      c.active,
	}
	if s.Data == nil {
		s.Data = []T{}
	}
	if c.metadata != nil {
		s.AvailableFilters = append([]string(nil), c.metadata.Filters...)
	}
	return s
}

// requested 는 다음 동작의 기준이 되는 쿼리다. c.mu 를 잡은 상태에서 호출한다.
//
// 로드 중이거나 마지막 로드가 실패했으면 마지막으로 발행한 쿼리(active)를,
// 아니면 서버가 돌려준 page, pageSize 를 쓴다.
func (c *Controller[T]) requested() dto.ListQuery {
	q := c.active
	if !c.loading && c.err == "" {
		q.Page = c.pagination.Page
		q.PageSize = c.pagination.PageSize
	}
	return q
}

// totalPages 는 pageSize 기준의 전체 페이지 수다. c.mu 를 잡은 상태에서 호출한다.
// 반영된 결과와 pageSize 가 다르면 totalItems 로 다시 계산한다.
func (c *Controller[T]) totalPages(pageSize int) int {
	if pageSize == c.pagination.PageSize || pageSize < 1 {
		return c.pagination.TotalPages
	}
	return max(1, (c.pagination.TotalItems+pageSize-1)/pageSize)
}

// load 는 q 를 발행한다. 반환 에러는 이 로드의 fetch 에러이며 State.Error 에도 기록된다.
// 더 새로운 로드에 밀린 로드는 nil 을 반환하고 상태를 건드리지 않는다.
func (c *Controller[T]) load(ctx context.Context, q dto.ListQuery) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.loading = true
	c.err = ""
	c.active = dto.ListQuery{Page: q.Page, PageSize: q.PageSize, Filter: q.Filter, Search: q.Search}
	c.mu.Unlock()

	resp, err := c.fetch(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		return nil
	}
	c.loading = false

	if err != nil {
		c.data = []T{}
		c.pagination = dto.EmptyPagination(q.PageSize)
		c.err = errorMessage(err)
		return err
	}

	c.data = resp.Data
	if c.data == nil {
		c.data = []T{}
	}
	c.pagination = resp.Pagination
	if c.pagination.Page < 1 {
		c.pagination = dto.EmptyPagination(q.PageSize)
	}
	if c.pagination.PageSize < 1 {
		c.pagination.PageSize = q.PageSize
	}
	if c.pagination.TotalPages < 1 {
		c.pagination.TotalPages = 1
	}
	c.metadata = resp.Metadata

	if c.loc != nil {
		c.loc.Replace(urlstate.Encode(c.loc.Query(), urlstate.QueryState{
			Page:     c.pagination.Page,
			PageSize: c.pagination.PageSize,
			Filter:   q.Filter,
			Search:   q.Search,
		}, c.defaultPageSize))
	}
	return nil
}

func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return "an error occurred"
}
