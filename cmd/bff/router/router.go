package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"orion-console/apiclient"
	"orion-console/cmd/bff/handlers"
	"orion-console/cmd/bff/middleware"
	"orion-console/cmd/bff/services"
	"orion-console/config"
	_ "orion-console/docs"
	"orion-console/microfrontend"
	"orion-console/trace"
)

const BasePath = "/api/bff"

// Dependencies 는 라우터가 사용하는 외부 자원이다. Redis, EventStore 는 선택이다.
type Dependencies struct {
	Config       config.Config
	API          *apiclient.Client
	Redis        *redis.Client
	EventStore   services.EventStore
	HealthChecks map[string]handlers.HealthCheck
}

func New(deps Dependencies) (*gin.Engine, error) {
	cfg := deps.Config

	bridge, err := microfrontend.NewBridge(cfg.Env.MicrofrontendURL)
	if err != nil {
		return nil, err
	}
	rateLimit, err := middleware.RateLimit(cfg.Env.RateLimit, middleware.NewRateLimitStore(deps.Redis))
	if err != nil {
		return nil, err
	}

	paging := services.PageSizePolicy{
		Default: cfg.App.Pagination.DefaultPageSize,
		Max:     cfg.App.Pagination.MaxPageSize,
	}
	refs := services.NewReferenceService(deps.API, services.NewReferenceCache(deps.Redis, cfg.App.Cache.ReferenceTTL))
	collaboratorSvc := services.NewCollaboratorService(deps.API, refs, paging)
	teamSvc := services.NewTeamService(deps.API, refs, paging)
	microfrontendSvc := services.NewMicrofrontendService(bridge, deps.EventStore, refs, cfg.App.Events.RecentLimit)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestTrace(), middleware.Metrics())

	checks := map[string]handlers.HealthCheck{
		"rest_api": deps.API.Health,
	}
	if deps.Redis != nil {
		checks["redis"] = func(ctx context.Context) error { return deps.Redis.Ping(ctx).Err() }
	}
	for name, check := range deps.HealthChecks {
		checks[name] = check
	}
	r.GET("/health", handlers.HealthHandler(checks))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group(BasePath, rateLimit)
	{
		api.GET("/collaborators/form-data", handlers.GetCollaboratorCreateFormDataHandler(collaboratorSvc))
		api.GET("/collaborators/:id/form-data", handlers.GetCollaboratorFormDataHandler(collaboratorSvc))
		api.GET("/collaborators", handlers.ListCollaboratorsHandler(collaboratorSvc))
		api.POST("/collaborators", handlers.CreateCollaboratorHandler(collaboratorSvc))
		api.PUT("/collaborators/:id", handlers.UpdateCollaboratorHandler(collaboratorSvc))
		api.DELETE("/collaborators/:id", handlers.DeleteCollaboratorHandler(collaboratorSvc))

		api.GET("/teams/:id/overview", handlers.GetTeamOverviewHandler(teamSvc))

		api.POST("/microfrontend/events", handlers.RelayMicrofrontendEventHandler(microfrontendSvc))
		api.GET("/microfrontend/events", handlers.ListMicrofrontendEventsHandler(microfrontendSvc))
		api.GET("/microfrontend/init-config", handlers.GetMicrofrontendInitConfigHandler(microfrontendSvc, cfg.Env.APIBaseURL, cfg.Env.CORSAllowedOrigins))
	}

	return r, nil
}

// WithCORS 는 콘솔과 마이크로프론트엔드 origin 에서의 브라우저 호출을 허용한다.
func WithCORS(h http.Handler, cfg config.Config) http.Handler {
	origins := append([]string{}, cfg.Env.CORSAllowedOrigins...)
	if origin, err := microfrontend.Origin(cfg.Env.MicrofrontendURL); err == nil {
		origins = append(origins, origin)
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization", trace.HeaderRequestID},
		ExposedHeaders:   []string{trace.HeaderRequestID, trace.HeaderSpanID},
		AllowCredentials: true,
	}).Handler(h)
}
