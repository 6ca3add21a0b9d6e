package microfrontend

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"sync"

	"orion-console/logger"
)

// Origin 은 브라우저와 같은 방식으로 rawURL 의 scheme://host[:port] origin 을 계산한다.
// 소문자로 바꾸고 기본 포트는 뺀다.
func Origin(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%q is not an absolute URL", rawURL)
	}
	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	port := u.Port()
	if (scheme == "http" && port == "80") || (scheme == "https" && port == "443") {
		port = ""
	}
	if port != "" {
		host = net.JoinHostPort(host, port)
	} else if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	return scheme + "://" + host, nil
}

// Bridge 는 iframe 을 로드한 URL 에 묶인다. 그 URL 의 origin 에서 온 메시지만 받는다.
type Bridge struct {
	src    string
	origin string
}

func NewBridge(src string) (*Bridge, error) {
	origin, err := Origin(src)
	if err != nil {
		return nil, fmt.Errorf("microfrontend url: %w", err)
	}
	return &Bridge{src: src, origin: origin}, nil
}

// Origin 은 메시지를 받는 유일한 origin 이자 iframe 으로 보내는 메시지의 targetOrigin 이다.
func (b *Bridge) Origin() string { return b.origin }

// Source 는 iframe 의 src 로 쓰는 URL 이다.
func (b *Bridge) Source() string { return b.src }

// Accept 는 iframe origin 에서 온 raw 만 디코딩한다. 다른 origin 의 메시지는 버리고
// ok=false, err=nil 을 반환한다.
func (b *Bridge) Accept(origin string, raw []byte) (msg Message, ok bool, err error) {
	got, perr := Origin(origin)
	if perr != nil || got != b.origin {
		logger.DebugWithFields("microfrontend message discarded", logger.Fields{
			"origin":   origin,
			"expected": b.origin,
		})
		return Message{}, false, nil
	}
	msg, err = Decode(raw)
	if err != nil {
		return Message{}, false, err
	}
	return msg, true, nil
}

// HandlerFunc 는 받은 메시지 하나를 처리한다.
type HandlerFunc func(ctx context.Context, msg Message) error

// Dispatcher 는 타입별로 메시지를 핸들러에 넘긴다.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[Type]HandlerFunc
	fallback HandlerFunc
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: map[Type]HandlerFunc{}}
}

// Handle 은 t 의 핸들러를 fn 으로 등록한다. 기존 핸들러는 대체된다.
func (d *Dispatcher) Handle(t Type, fn HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[t] = fn
}

// Fallback 은 핸들러가 없는 타입의 메시지를 받는다.
func (d *Dispatcher) Fallback(fn HandlerFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fallback = fn
}

// Dispatch 는 msg.Type 의 핸들러를 호출한다. 핸들러도 fallback 도 없으면 무시한다.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) error {
	d.mu.RLock()
	fn, ok := d.handlers[msg.Type]
	if !ok {
		fn = d.fallback
	}
	d.mu.RUnlock()
	if fn == nil {
		return nil
	}
	return fn(ctx, msg)
}
