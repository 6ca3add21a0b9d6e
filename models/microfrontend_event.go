package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MicrofrontendEvent 는 마이크로프론트엔드에서 릴레이되어 받아들여진 메시지다.
// 컬렉션: microfrontend_events
type MicrofrontendEvent struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type       string             `bson:"type" json:"type"`
	Origin     string             `bson:"origin" json:"origin"`
	Payload    string             `bson:"payload" json:"payload"`
	RequestID  string             `bson:"request_id,omitempty" json:"request_id,omitempty"`
	ReceivedAt time.Time          `bson:"received_at" json:"received_at"`
}
