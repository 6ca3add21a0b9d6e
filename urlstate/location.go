package urlstate

import (
	"net/url"
	"sync"
)

// Location 은 목록 컨트롤러가 보는 주소창이다.
// Replace 는 현재 항목을 덮어쓰며 히스토리를 쌓지 않는다.
type Location interface {
	Query() url.Values
	Replace(url.Values)
}

// MemoryLocation 은 히스토리 스택을 가진 메모리 주소창이다.
// 콘솔 CLI 와 테스트에서 쓴다. 동시에 사용해도 안전하다.
type MemoryLocation struct {
	mu      sync.Mutex
	path    string
	entries []url.Values
	current int
}

// NewMemoryLocation 은 rawURL("/collaborators?page=2") 을 파싱해 location 을 만든다.
func NewMemoryLocation(rawURL string) (*MemoryLocation, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	return &MemoryLocation{path: u.Path, entries: []url.Values{u.Query()}}, nil
}

func (l *MemoryLocation) Query() url.Values {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneValues(l.entries[l.current])
}

func (l *MemoryLocation) Replace(v url.Values) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[l.current] = cloneValues(v)
}

// Push 는 히스토리에 새 항목을 쌓고 앞쪽 항목은 버린다.
// 사용자가 새 URL 로 이동하는 것에 해당한다.
func (l *MemoryLocation) Push(v url.Values) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries[:l.current+1], cloneValues(v))
	l.current++
}

// Back 은 한 항목 뒤로 간다. 히스토리의 처음이면 false 다.
func (l *MemoryLocation) Back() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current == 0 {
		return false
	}
	l.current--
	return true
}

// Forward 는 한 항목 앞으로 간다. 히스토리의 끝이면 false 다.
func (l *MemoryLocation) Forward() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current >= len(l.entries)-1 {
		return false
	}
	l.current++
	return true
}

// String 은 현재 항목을 path?query 로 표시한다.
func (l *MemoryLocation) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	u := url.URL{Path: l.path, RawQuery: l.entries[l.current].Encode()}
	return u.String()
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
