package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"orion-console/dto"
	"orion-console/httpclient"
)

// HeaderDropdown 이 "true" 면 목록 엔드포인트가 페이지 없이 전체 배열을 반환한다.
const HeaderDropdown = "X-dropdown"

// Resource 는 REST API 의 CRUD 리소스 하나(/positions, /collaborators 등)에 대한 타입 클라이언트다.
type Resource[T any] struct {
	c    caller
	path string
	name string
}

func NewResource[T any](base *httpclient.BaseClient, resourcePath string) *Resource[T] {
	name := strings.Trim(resourcePath, "/")
	return &Resource[T]{c: caller{base: base}, path: "/" + name, name: name}
}

// ListValues 는 목록 쿼리를 인코딩한다.
// page, pageSize 는 양수면 항상 보내고 filter, search 는 비어 있지 않을 때만 보낸다.
func ListValues(q dto.ListQuery) url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if strings.TrimSpace(q.Filter) != "" {
		v.Set("filter", q.Filter)
	}
	if strings.TrimSpace(q.Search) != "" {
		v.Set("search", q.Search)
	}
	return v
}

// List 는 GET /{resource}?page&pageSize&filter&search 다.
func (r *Resource[T]) List(ctx context.Context, q dto.ListQuery) (dto.ListResponse[T], error) {
	var out dto.ListResponse[T]
	if err := r.c.call(ctx, "list "+r.name, http.MethodGet, r.path, ListValues(q), nil, nil, &out); err != nil {
		return dto.ListResponse[T]{}, err
	}
	if out.Data == nil {
		out.Data = []T{}
	}
	return out, nil
}

// Dropdown 은 선택 컨트롤용 전체 목록을 가져온다.
// 응답은 배열이 기본이고 {"data": [...]} 형태도 받아 준다.
func (r *Resource[T]) Dropdown(ctx context.Context) ([]T, error) {
	op := "list " + r.name + " for dropdown"
	header := http.Header{}
	header.Set(HeaderDropdown, "true")

	var raw json.RawMessage
	if err := r.c.call(ctx, op, http.MethodGet, r.path, nil, header, nil, &raw); err != nil {
		return nil, err
	}

	items := []T{}
	if len(raw) == 0 || string(raw) == "null" {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, nil
	}
	var env struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &Error{Op: op, Status: http.StatusOK, Message: "invalid response body: " + err.Error(), Err: err}
	}
	if env.Data == nil {
		env.Data = []T{}
	}
	return env.Data, nil
}

// Get 은 엔티티 하나를 조회한다. 없으면 ErrNotFound 와 매칭되는 에러를 반환한다.
func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	var out T
	op := "get " + r.name
	p, err := entityPath(op, r.path, id)
	if err != nil {
		return out, err
	}
	err = r.c.call(ctx, op, http.MethodGet, p, nil, nil, nil, &out)
	return out, err
}

func (r *Resource[T]) Create(ctx context.Context, body any) (T, error) {
	var out T
	err := r.c.call(ctx, "create "+r.name, http.MethodPost, r.path, nil, nil, body, &out)
	return out, err
}

func (r *Resource[T]) Update(ctx context.Context, id string, body any) (T, error) {
	var out T
	op := "update " + r.name
	p, err := entityPath(op, r.path, id)
	if err != nil {
		return out, err
	}
	err = r.c.call(ctx, op, http.MethodPut, p, nil, nil, body, &out)
	return out, err
}

// Delete 는 응답 본문을 무시한다.
func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	op := "delete " + r.name
	p, err := entityPath(op, r.path, id)
	if err != nil {
		return err
	}
	return r.c.call(ctx, op, http.MethodDelete, p, nil, nil, nil, nil)
}

// entityPath 는 prefix 뒤에 id 를 escape 한 세그먼트 하나로 붙인다.
// 빈 id 와 ".", ".." 는 요청을 보내지 않고 ErrInvalidID 로 실패한다.
func entityPath(op, prefix, id string, rest ...string) (string, error) {
	if id == "" || id == "." || id == ".." {
		return "", &Error{Op: op, Message: fmt.Sprintf("invalid id %q", id), Err: ErrInvalidID}
	}
	parts := append([]string{prefix, url.PathEscape(id)}, rest...)
	return strings.Join(parts, "/"), nil
}
