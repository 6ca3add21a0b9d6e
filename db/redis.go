package db

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"orion-console/logger"
)

// NewRedis 는 addr 로 연결한 redis 클라이언트를 반환한다. 연결 확인(PING)에 실패하면 에러.
func NewRedis(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	logger.InfoWithFields("Redis connected", logger.Fields{"addr": addr})
	return rdb, nil
}
