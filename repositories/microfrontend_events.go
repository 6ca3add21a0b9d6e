package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"orion-console/db"
	"orion-console/models"
)

type MicrofrontendEventRepository struct {
	col *mongo.Collection
}

func NewMicrofrontendEventRepository(database *mongo.Database) *MicrofrontendEventRepository {
	return &MicrofrontendEventRepository{col: database.Collection(db.CollectionMicrofrontendEvents)}
}

func (r *MicrofrontendEventRepository) Insert(ctx context.Context, ev models.MicrofrontendEvent) (models.MicrofrontendEvent, error) {
	if ev.ReceivedAt.IsZero() {
		ev.ReceivedAt = time.Now()
	}
	res, err := r.col.InsertOne(ctx, ev)
	if err != nil {
		return models.MicrofrontendEvent{}, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		ev.ID = id
	}
	return ev, nil
}

// ListRecent 는 received_at 내림차순으로 최대 limit 개를 반환한다.
// eventType 이 비어 있으면 모든 타입을 조회한다.
func (r *MicrofrontendEventRepository) ListRecent(ctx context.Context, eventType string, limit int64) ([]models.MicrofrontendEvent, error) {
	filter := bson.M{}
	if eventType != "" {
		filter["type"] = eventType
	}
	opts := options.Find().SetSort(bson.D{{Key: "received_at", Value: -1}}).SetLimit(limit)

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	events := []models.MicrofrontendEvent{}
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
