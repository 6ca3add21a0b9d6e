package dto

import (
	"encoding/json"

	"orion-console/microfrontend"
)

// ErrorResponseDTO는 공통 에러 응답 형식을 통일하기 위한 DTO이다.
// Details 는 검증 실패 시 필드별 사유를 담는다.
type ErrorResponseDTO struct {
	Error   string            `json:"error" example:"upstream_request_failed"`
	Message string            `json:"message,omitempty" example:"failed to list teams: status=500"`
	Details map[string]string `json:"details,omitempty"`
}

// MessageResponseDTO는 단순 메시지 응답 형식을 통일하기 위한 DTO이다.
type MessageResponseDTO struct {
	Message string `json:"message" example:"collaborator deleted"`
}

// HealthDTO 는 /health 응답이다. Components 는 의존성별 up/down 이다.
type HealthDTO struct {
	Status     string            `json:"status" example:"ok"`
	Components map[string]string `json:"components"`
	Errors     map[string]string `json:"errors,omitempty"`
}

// MicrofrontendRelayRequest 는 콘솔이 받은 postMessage 를 BFF 로 전달하는 요청이다.
type MicrofrontendRelayRequest struct {
	Origin  string          `json:"origin" binding:"required" example:"http://localhost:4200"`
	Message json.RawMessage `json:"message" binding:"required" swaggertype:"object"`
}

// MicrofrontendRelayResponse 는 릴레이 결과다. Accepted=false 면 출처가 달라 무시된 메시지다.
type MicrofrontendRelayResponse struct {
	Accepted bool   `json:"accepted"`
	Type     string `json:"type,omitempty" example:"POSITION_CREATED"`
	ID       string `json:"id,omitempty"`
}

// MicrofrontendInitConfigResponse 는 콘솔이 iframe 에 보낼 INIT_CONFIG 다.
// 콘솔은 iframe 을 Src 로 로드하고 Message 를 TargetOrigin 으로 postMessage 한다.
type MicrofrontendInitConfigResponse struct {
	TargetOrigin string                `json:"targetOrigin" example:"http://localhost:4200"`
	Src          string                `json:"src" example:"http://localhost:4200/positions"`
	Message      microfrontend.Message `json:"message" swaggertype:"object"`
}
