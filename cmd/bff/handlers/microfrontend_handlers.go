package handlers

import (
	"errors"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	bffdto "orion-console/cmd/bff/dto"
	"orion-console/cmd/bff/services"
	"orion-console/microfrontend"
)

// RelayMicrofrontendEventHandler godoc
// @Summary      Relay a microfrontend message
// @Description  Records a postMessage received from the embedded microfrontend. Messages from a foreign origin are acknowledged with 202 and dropped.
// @Tags         microfrontend
// @Accept       json
// @Produce      json
// @Param        body  body  bffdto.MicrofrontendRelayRequest  true  "Origin and message"
// @Success      201  {object}  bffdto.MicrofrontendRelayResponse
// @Success      202  {object}  bffdto.MicrofrontendRelayResponse
// @Failure      400  {object}  bffdto.ErrorResponseDTO
// @Failure      500  {object}  bffdto.ErrorResponseDTO
// @Router       /microfrontend/events [post]
func RelayMicrofrontendEventHandler(svc *services.MicrofrontendService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req bffdto.MicrofrontendRelayRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeBindingError(c, err, req)
			return
		}
		res, err := svc.Relay(c.Request.Context(), req.Origin, req.Message)
		if err != nil {
			if errors.Is(err, microfrontend.ErrMalformed) {
				writeError(c, err, "")
				return
			}
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, bffdto.ErrorResponseDTO{Error: "failed_to_store_event"})
			return
		}
		if !res.Accepted {
			c.JSON(http.StatusAccepted, bffdto.MicrofrontendRelayResponse{Accepted: false})
			return
		}
		out := bffdto.MicrofrontendRelayResponse{Accepted: true, Type: res.Event.Type}
		if !res.Event.ID.IsZero() {
			out.ID = res.Event.ID.Hex()
		}
		c.JSON(http.StatusCreated, out)
	}
}

// ListMicrofrontendEventsHandler godoc
// @Summary      Recent microfrontend messages
// @Tags         microfrontend
// @Param        type   query  string  false  "Message type, e.g. POSITION_CREATED"
// @Param        limit  query  int     false  "Maximum number of events"
// @Produce      json
// @Success      200  {array}   models.MicrofrontendEvent
// @Failure      503  {object}  bffdto.ErrorResponseDTO
// @Router       /microfrontend/events [get]
func ListMicrofrontendEventsHandler(svc *services.MicrofrontendService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		events, err := svc.Recent(c.Request.Context(), c.Query("type"), limit)
		if err != nil {
			if errors.Is(err, services.ErrEventStoreDisabled) {
				c.JSON(http.StatusServiceUnavailable, bffdto.ErrorResponseDTO{Error: "event_store_disabled"})
				return
			}
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, bffdto.ErrorResponseDTO{Error: "failed_to_load_events"})
			return
		}
		c.JSON(http.StatusOK, events)
	}
}

// GetMicrofrontendInitConfigHandler godoc
// @Summary      INIT_CONFIG for the embedded microfrontend
// @Description  Builds the INIT_CONFIG message the console posts to the iframe after it loads. The bearer token is forwarded as authToken without verification. parentOrigin is the request Origin when it is an allowed console origin, otherwise the first allowed origin.
// @Tags         microfrontend
// @Produce      json
// @Param        Authorization  header  string  false  "Bearer token forwarded to the microfrontend"
// @Success      200  {object}  bffdto.MicrofrontendInitConfigResponse
// @Router       /microfrontend/init-config [get]
func GetMicrofrontendInitConfigHandler(svc *services.MicrofrontendService, apiURL string, consoleOrigins []string) gin.HandlerFunc {
	allowed := make([]string, 0, len(consoleOrigins))
	for _, o := range consoleOrigins {
		if origin, err := microfrontend.Origin(o); err == nil {
			allowed = append(allowed, origin)
		}
	}

	return func(c *gin.Context) {
		parent := ""
		if len(allowed) > 0 {
			parent = allowed[0]
		}
		if origin, err := microfrontend.Origin(c.GetHeader("Origin")); err == nil && slices.Contains(allowed, origin) {
			parent = origin
		}

		cfg := svc.InitConfig(bearerToken(c.GetHeader("Authorization")), apiURL, parent)
		c.JSON(http.StatusOK, bffdto.MicrofrontendInitConfigResponse{
			TargetOrigin: cfg.TargetOrigin,
			Src:          cfg.Source,
			Message:      cfg.Message,
		})
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
