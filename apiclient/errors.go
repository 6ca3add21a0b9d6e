package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound 는 404 응답에서 만들어진 모든 *Error 와 매칭된다.
var ErrNotFound = errors.New("resource not found")

// ErrInvalidID 는 경로에 쓸 수 없는 id("", ".", "..") 다. 요청은 보내지 않는다.
var ErrInvalidID = errors.New("invalid resource id")

// Error 는 모든 클라이언트 호출이 반환하는 단일 에러 형태다.
// 서버에 도달하지 못했으면 Status 가 0 이다.
type Error struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("failed to %s: status=%d %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("failed to %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return ErrNotFound
	}
	return e.Err
}

// StatusCode 는 err 에 담긴 HTTP 상태 코드를 반환한다. 없으면 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func transportError(op string, err error) *Error {
	return &Error{Op: op, Message: err.Error(), Err: err}
}

// statusError 는 에러 본문에서 메시지를 꺼낸다.
// {"error": "..."}, {"error": {"message": "..."}}, {"message": "..."} 를 풀고 나머지는 그대로 둔다.
func statusError(op string, status int, body []byte) *Error {
	msg := strings.TrimSpace(string(body))
	var env struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if json.Unmarshal(body, &env) == nil {
		var s string
		var detail struct {
			Message string `json:"message"`
		}
		switch {
		case len(env.Error) > 0 && json.Unmarshal(env.Error, &s) == nil && s != "":
			msg = s
		case len(env.Error) > 0 && json.Unmarshal(env.Error, &detail) == nil && detail.Message != "":
			msg = detail.Message
		case env.Message != "":
			msg = env.Message
		}
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &Error{Op: op, Status: status, Message: msg}
}
