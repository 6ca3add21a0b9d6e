package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"orion-console/cmd/bff/metrics"
)

// Metrics 는 라우트 템플릿(c.FullPath) 기준으로 요청 수와 지연 시간을 기록한다.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
