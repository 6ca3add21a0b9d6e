// Package microfrontend 는 콘솔과 iframe 에 임베드된 마이크로프론트엔드 사이의
// postMessage 프로토콜이다.
//
// 메시지는 type 과 payload 를 가진 JSON 객체다. 호스트는 iframe 로드 후 INIT_CONFIG 를
// 한 번 보내고, 이후 iframe 은 직책 변경, 화면 이동 요청, 에러를 알린다.
package microfrontend

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

type Type string

const (
	TypeInitConfig        Type = "INIT_CONFIG"
	TypePositionCreated   Type = "POSITION_CREATED"
	TypePositionUpdated   Type = "POSITION_UPDATED"
	TypePositionDeleted   Type = "POSITION_DELETED"
	TypeNavigationRequest Type = "NAVIGATION_REQUEST"
	TypeError             Type = "ERROR"
)

var types = []Type{
	TypeInitConfig,
	TypePositionCreated,
	TypePositionUpdated,
	TypePositionDeleted,
	TypeNavigationRequest,
	TypeError,
}

// Types 는 프로토콜의 모든 메시지 타입이다.
func Types() []Type { return append([]Type(nil), types...) }

// Known 은 t 가 프로토콜에 정의된 타입인지 알려준다.
func (t Type) Known() bool { return slices.Contains(types, t) }

// IsPositionEvent 는 t 가 직책 변경 알림인지 알려준다.
func (t Type) IsPositionEvent() bool {
	return t == TypePositionCreated || t == TypePositionUpdated || t == TypePositionDeleted
}

var ErrMalformed = errors.New("malformed microfrontend message")

// Message 는 프로토콜 메시지 봉투다.
type Message struct {
	Type    Type            `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// InitConfigPayload 는 iframe 로드 직후 호스트가 보낸다.
type InitConfigPayload struct {
	AuthToken    string `json:"authToken"`
	APIURL       string `json:"apiUrl"`
	ParentOrigin string `json:"parentOrigin"`
}

// PositionPayload 는 POSITION_* 메시지의 payload 다. 삭제 시에는 ID 만 보장된다.
type PositionPayload struct {
	ID          string   `json:"id"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type NavigationPayload struct {
	Route string `json:"route"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// New 는 payload 를 JSON 으로 직렬화해 메시지를 만든다.
func New(t Type, payload any) (Message, error) {
	if payload == nil {
		return Message{Type: t}, nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("marshal %s payload: %w", t, err)
	}
	return Message{Type: t, Payload: b}, nil
}

// NewInitConfig 는 INIT_CONFIG 메시지를 만든다.
func NewInitConfig(authToken, apiURL, parentOrigin string) Message {
	msg, _ := New(TypeInitConfig, InitConfigPayload{
		AuthToken:    authToken,
		APIURL:       apiURL,
		ParentOrigin: parentOrigin,
	})
	return msg
}

// Decode 는 raw 를 메시지로 파싱한다. type 이 없으면 에러다.
func Decode(raw []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if msg.Type == "" {
		return Message{}, fmt.Errorf("%w: missing type", ErrMalformed)
	}
	return msg, nil
}

// DecodePayload 는 msg 의 payload 를 P 로 읽는다.
func DecodePayload[P any](msg Message) (P, error) {
	var p P
	if len(msg.Payload) == 0 || string(msg.Payload) == "null" {
		return p, fmt.Errorf("%w: %s has no payload", ErrMalformed, msg.Type)
	}
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		return p, fmt.Errorf("%w: %s payload: %v", ErrMalformed, msg.Type, err)
	}
	return p, nil
}
