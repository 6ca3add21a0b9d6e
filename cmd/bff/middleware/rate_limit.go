package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	bffdto "orion-console/cmd/bff/dto"
	"orion-console/logger"
)

const rateLimitPrefix = "bff:ratelimit"

// NewRateLimitStore 는 redis 가 있으면 redis store 를, 없거나 실패하면 memory store 를 반환한다.
func NewRateLimitStore(rdb *redis.Client) limiter.Store {
	if rdb == nil {
		return memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: rateLimitPrefix})
	}
	store, err := sredis.NewStoreWithOptions(rdb, limiter.StoreOptions{Prefix: rateLimitPrefix, MaxRetry: 3})
	if err != nil {
		logger.WarnWithFields("failed to create redis rate limit store, falling back to memory", logger.Fields{"error": err.Error()})
		return memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: rateLimitPrefix})
	}
	return store
}

// RateLimit 는 클라이언트 IP 기준으로 formatted("600-M") 속도를 적용한다.
func RateLimit(formatted string, store limiter.Store) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formatted, err)
	}
	return mgin.NewMiddleware(
		limiter.New(store, rate),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, bffdto.ErrorResponseDTO{Error: "rate_limited"})
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			// 저장소 장애로 요청을 막지는 않는다.
			logger.WarnWithFields("rate limit store error", logger.Fields{"error": err.Error()})
			c.Next()
		}),
	), nil
}
