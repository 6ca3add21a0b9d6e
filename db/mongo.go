package db

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"orion-console/logger"
)

const CollectionMicrofrontendEvents = "microfrontend_events"

var (
	clientOnce sync.Once
	client     *mongo.Client
	db         *mongo.Database
)

// Init 은 전역 Mongo 클라이언트와 데이터베이스를 초기화한다.
// 여러 번 호출해도 최초 1회만 연결한다.
func Init(ctx context.Context, uri, dbName string) error {
	if uri == "" {
		return errors.New("mongo uri is empty")
	}
	var initErr error
	clientOnce.Do(func() {
		if dbName == "" {
			dbName = "orion_console"
		}

		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		cl, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			initErr = err
			return
		}
		if err := cl.Ping(ctx, readpref.Primary()); err != nil {
			_ = cl.Disconnect(context.Background())
			initErr = err
			return
		}
		client = cl
		db = client.Database(dbName)

		if err := ensureIndexes(ctx, db); err != nil {
			initErr = err
			return
		}
		logger.InfoWithFields("MongoDB connected and indexes ensured", logger.Fields{"db": dbName})
	})
	return initErr
}

func Client() *mongo.Client     { return client }
func Database() *mongo.Database { return db }

// Close 는 Init 으로 연결된 클라이언트를 닫는다.
func Close(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}

func ensureIndexes(ctx context.Context, d *mongo.Database) error {
	col := d.Collection(CollectionMicrofrontendEvents)

	// microfrontend_events: 최근 이벤트 조회용 received_at desc
	if _, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "received_at", Value: -1}},
		Options: options.Index().SetName("idx_received_at_desc"),
	}); err != nil {
		return err
	}
	// microfrontend_events: 타입별 조회
	if _, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "type", Value: 1}, {Key: "received_at", Value: -1}},
		Options: options.Index().SetName("idx_type_received_at"),
	}); err != nil {
		return err
	}
	return nil
}
