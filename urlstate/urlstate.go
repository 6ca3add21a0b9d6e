// Package urlstate 는 목록 쿼리 상태를 URL 쿼리 문자열로 옮긴다.
//
// URL 은 목록 컨트롤러 상태의 거울일 뿐 원본이 아니다. 시작할 때와 외부 이동 때 읽고
// 로드가 성공할 때마다 쓴다. 기본값인 파라미터는 쓰지 않는다.
package urlstate

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	ParamPage     = "page"
	ParamPageSize = "pageSize"
	ParamFilter   = "filter"
	ParamSearch   = "search"

	DefaultPage = 1
)

// QueryState 는 목록 상태 중 주소창에 남는 부분이다.
type QueryState struct {
	Page     int
	PageSize int
	Filter   string
	Search   string
}

// Defaults 는 기본 페이지 크기에 대한 기본 상태다.
func Defaults(defaultPageSize int) QueryState {
	return QueryState{Page: DefaultPage, PageSize: defaultPageSize}
}

// Parse 는 values 에서 쿼리 상태를 읽는다. 숫자가 없거나 잘못됐거나 0 이하이면 기본값을 쓴다.
func Parse(values url.Values, defaultPageSize int) QueryState {
	s := Defaults(defaultPageSize)
	if n, ok := positiveInt(values.Get(ParamPage)); ok {
		s.Page = n
	}
	if n, ok := positiveInt(values.Get(ParamPageSize)); ok {
		s.PageSize = n
	}
	s.Filter = strings.TrimSpace(values.Get(ParamFilter))
	s.Search = values.Get(ParamSearch)
	return s
}

// Encode 는 base 의 복사본에 s 를 쓴다. 기본값인 파라미터는 빼고
// base 에 있던 다른 파라미터는 유지한다.
func Encode(base url.Values, s QueryState, defaultPageSize int) url.Values {
	out := url.Values{}
	for k, vs := range base {
		out[k] = append([]string(nil), vs...)
	}
	for _, k := range []string{ParamPage, ParamPageSize, ParamFilter, ParamSearch} {
		out.Del(k)
	}
	if s.Page > 0 && s.Page != DefaultPage {
		out.Set(ParamPage, strconv.Itoa(s.Page))
	}
	if s.PageSize > 0 && s.PageSize != defaultPageSize {
		out.Set(ParamPageSize, strconv.Itoa(s.PageSize))
	}
	if s.Filter != "" {
		out.Set(ParamFilter, s.Filter)
	}
	if s.Search != "" {
		out.Set(ParamSearch, s.Search)
	}
	return out
}

func positiveInt(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
