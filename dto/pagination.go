package dto

import "encoding/json"

// PaginationInfo 는 서버가 계산한 목록 응답의 페이지 정보다.
// TotalPages 는 그대로 신뢰하며 클라이언트가 다시 계산하지 않는다.
type PaginationInfo struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// EmptyPagination 은 아무것도 읽지 않았을 때의 페이지 정보다.
func EmptyPagination(pageSize int) PaginationInfo {
	return PaginationInfo{Page: 1, PageSize: pageSize, TotalItems: 0, TotalPages: 1}
}

// Metadata 는 목록에 대한 서버 힌트다. Filters 는 filter 파라미터로 받는 필드 이름이고
// 나머지 키는 Extra 에 남긴다.
type Metadata struct {
	Filters []string       `json:"filters,omitempty"`
	Extra   map[string]any `json:"-"`
}

func (m Metadata) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Extra)+1)
	for k, v := range m.Extra {
		out[k] = v
	}
	if len(m.Filters) > 0 {
		out["filters"] = m.Filters
	}
	return json.Marshal(out)
}

func (m *Metadata) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	m.Filters = nil
	m.Extra = nil
	for k, v := range raw {
		if k == "filters" {
			if err := json.Unmarshal(v, &m.Filters); err != nil {
				return err
			}
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return err
		}
		if m.Extra == nil {
			m.Extra = map[string]any{}
		}
		m.Extra[k] = val
	}
	return nil
}

// ListResponse 는 모든 목록 엔드포인트가 공유하는 페이지 응답 봉투다.
//
// 예: ListResponse[models.Team]
type ListResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination PaginationInfo `json:"pagination"`
	Metadata   *Metadata      `json:"metadata,omitempty"`
}

// AvailableFilters 는 metadata.filters 를 반환한다. 없으면 nil 이다.
func (r ListResponse[T]) AvailableFilters() []string {
	if r.Metadata == nil {
		return nil
	}
	return r.Metadata.Filters
}

// ListQuery 는 목록의 쿼리다. page, pageSize 와 두 필드 필터로 이뤄진다.
// Filter 는 서버가 아는 필드 이름(비면 전체 필드)이고 Search 는 검색어다.
type ListQuery struct {
	Page     int
	PageSize int
	Search   string
	Filter   string
}
