package services

import (
	"context"
	"errors"
	"time"

	"orion-console/cmd/bff/metrics"
	"orion-console/logger"
	"orion-console/microfrontend"
	"orion-console/models"
	"orion-console/trace"
)

var ErrEventStoreDisabled = errors.New("microfrontend event store is not configured")

// EventStore 는 릴레이된 메시지의 감사 로그 저장소다.
type EventStore interface {
	Insert(ctx context.Context, ev models.MicrofrontendEvent) (models.MicrofrontendEvent, error)
	ListRecent(ctx context.Context, eventType string, limit int64) ([]models.MicrofrontendEvent, error)
}

// RelayResult 는 Relay 의 결과다. Accepted=false 면 다른 출처의 메시지라 무시된 것이다.
type RelayResult struct {
	Accepted bool
	Event    models.MicrofrontendEvent
}

// MicrofrontendService 는 콘솔이 전달한 postMessage 를 검증하고 기록한다.
//
// - bridge: MICROFRONTEND_URL 의 origin 과 일치하는 메시지만 받는다.
// - store: nil 이면 기록하지 않는다.
// - POSITION_* 메시지는 positions 참조 캐시를 무효화한다.
type MicrofrontendService struct {
	bridge      *microfrontend.Bridge
	store       EventStore
	refs        *ReferenceService
	dispatcher  *microfrontend.Dispatcher
	recentLimit int
}

func NewMicrofrontendService(bridge *microfrontend.Bridge, store EventStore, refs *ReferenceService, recentLimit int) *MicrofrontendService {
	if recentLimit < 1 {
		recentLimit = 50
	}
	s := &MicrofrontendService{
		bridge:      bridge,
		store:       store,
		refs:        refs,
		dispatcher:  microfrontend.NewDispatcher(),
		recentLimit: recentLimit,
	}
	for _, t := range microfrontend.Types() {
		if t.IsPositionEvent() {
			s.dispatcher.Handle(t, s.invalidatePositions)
		}
	}
	s.dispatcher.Handle(microfrontend.TypeError, func(ctx context.Context, msg microfrontend.Message) error {
		p, err := microfrontend.DecodePayload[microfrontend.ErrorPayload](msg)
		if err != nil {
			return err
		}
		logger.WarnWithFields("microfrontend reported an error", logger.Fields{
			"request_id": trace.RequestIDFromContext(ctx),
			"message":    p.Message,
		})
		return nil
	})
	s.dispatcher.Fallback(func(ctx context.Context, msg microfrontend.Message) error {
		if !msg.Type.Known() {
			logger.WarnWithFields("unknown microfrontend message type", logger.Fields{
				"request_id": trace.RequestIDFromContext(ctx),
				"type":       string(msg.Type),
			})
			return nil
		}
		logger.DebugWithFields("microfrontend message relayed", logger.Fields{
			"request_id": trace.RequestIDFromContext(ctx),
			"type":       string(msg.Type),
		})
		return nil
	})
	return s
}

// Relay 는 origin 이 다르면 아무것도 하지 않고 Accepted=false 를 반환한다.
// 형식이 잘못된 메시지는 microfrontend.ErrMalformed 로 실패한다.
func (s *MicrofrontendService) Relay(ctx context.Context, origin string, raw []byte) (RelayResult, error) {
	msg, ok, err := s.bridge.Accept(origin, raw)
	if err != nil {
		metrics.RecordMicrofrontendMessage("", "malformed")
		return RelayResult{}, err
	}
	if !ok {
		metrics.RecordMicrofrontendMessage("", "discarded")
		return RelayResult{Accepted: false}, nil
	}

	ev := models.MicrofrontendEvent{
		Type:       string(msg.Type),
		Origin:     s.bridge.Origin(),
		Payload:    string(msg.Payload),
		RequestID:  trace.RequestIDFromContext(ctx),
		ReceivedAt: time.Now().UTC(),
	}
	if s.store != nil {
		if ev, err = s.store.Insert(ctx, ev); err != nil {
			metrics.RecordMicrofrontendMessage(typeLabel(msg.Type), "store_failed")
			return RelayResult{}, err
		}
	}

	if err := s.dispatcher.Dispatch(ctx, msg); err != nil {
		logger.WarnWithFields("microfrontend message handler failed", logger.Fields{
			"request_id": ev.RequestID,
			"type":       ev.Type,
			"error":      err.Error(),
		})
	}
	metrics.RecordMicrofrontendMessage(typeLabel(msg.Type), "accepted")
	return RelayResult{Accepted: true, Event: ev}, nil
}

// typeLabel 은 메트릭 라벨이다. 프로토콜에 없는 타입은 "unknown" 하나로 묶는다.
func typeLabel(t microfrontend.Type) string {
	if !t.Known() {
		return "unknown"
	}
	return string(t)
}

// InitConfigResult 는 iframe 로드 직후 호스트가 보낼 INIT_CONFIG 메시지와 전송 대상이다.
type InitConfigResult struct {
	TargetOrigin string
	Source       string
	Message      microfrontend.Message
}

// InitConfig 는 authToken, apiURL, parentOrigin 으로 INIT_CONFIG 를 만든다.
// authToken 은 검증하지 않고 그대로 전달한다.
func (s *MicrofrontendService) InitConfig(authToken, apiURL, parentOrigin string) InitConfigResult {
	return InitConfigResult{
		TargetOrigin: s.bridge.Origin(),
		Source:       s.bridge.Source(),
		Message:      microfrontend.NewInitConfig(authToken, apiURL, parentOrigin),
	}
}

// Recent 는 최근 이벤트를 최대 limit 개 반환한다. limit 이 범위를 벗어나면 기본값을 쓴다.
func (s *MicrofrontendService) Recent(ctx context.Context, eventType string, limit int) ([]models.MicrofrontendEvent, error) {
	if s.store == nil {
		return nil, ErrEventStoreDisabled
	}
	if limit < 1 || limit > s.recentLimit {
		limit = s.recentLimit
	}
	return s.store.ListRecent(ctx, eventType, int64(limit))
}

func (s *MicrofrontendService) invalidatePositions(ctx context.Context, msg microfrontend.Message) error {
	if s.refs == nil {
		return nil
	}
	return s.refs.Invalidate(ctx, RefPositions, string(msg.Type))
}
