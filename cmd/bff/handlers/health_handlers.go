package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	bffdto "orion-console/cmd/bff/dto"
)

// HealthCheck 는 의존성 하나의 상태 확인 함수다.
type HealthCheck func(ctx context.Context) error

// HealthHandler godoc
// @Summary      Health check
// @Description  Probes the REST API and, when configured, redis and MongoDB
// @Tags         health
// @Produce      json
// @Success      200  {object}  bffdto.HealthDTO
// @Failure      503  {object}  bffdto.HealthDTO
// @Router       /health [get]
func HealthHandler(checks map[string]HealthCheck) gin.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		out := bffdto.HealthDTO{Status: "ok", Components: map[string]string{}}
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				out.Status = "degraded"
				out.Components[name] = "down"
				if out.Errors == nil {
					out.Errors = map[string]string{}
				}
				out.Errors[name] = err.Error()
				continue
			}
			out.Components[name] = "up"
		}

		status := http.StatusOK
		if out.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, out)
	}
}
