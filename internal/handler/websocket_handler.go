package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
	"github.com/keiri-hq/keiri-backend/internal/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ConnectionAuthorizer validates a JWT and its subject's access to a company
type ConnectionAuthorizer interface {
	Authorize(ctx context.Context, token string, companyID uuid.UUID) (subject string, err error)
}

// WebSocketHandler handles WebSocket connections
type WebSocketHandler struct {
	hub            *websocket.Hub
	authorizer     ConnectionAuthorizer
	allowedOrigins map[string]bool
	upgrader       ws.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler
func NewWebSocketHandler(hub *websocket.Hub, authorizer ConnectionAuthorizer, allowedOrigins []string) *WebSocketHandler {
	// Build origin lookup map
	originMap := make(map[string]bool)
	for _, origin := range allowedOrigins {
		originMap[origin] = true
	}

	h := &WebSocketHandler{
		hub:            hub,
		authorizer:     authorizer,
		allowedOrigins: originMap,
	}

	h.upgrader = ws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}

	return h
}

// checkOrigin validates the request origin against allowed origins
func (h *WebSocketHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// Allow requests with no Origin header (e.g., same-origin or non-browser clients)
		return true
	}

	if h.allowedOrigins[origin] {
		return true
	}

	log.Warn().
		Str("origin", origin).
		Msg("WebSocket connection rejected: origin not allowed")
	return false
}

// HandleWS handles WebSocket connection requests at GET /ws?token=...&companyId=...
func (h *WebSocketHandler) HandleWS(c echo.Context) error {
	companyID, err := uuid.Parse(c.QueryParam("companyId"))
	if err != nil {
		log.Debug().Msg("WebSocket connection rejected: invalid company ID")
		return echo.NewHTTPError(http.StatusBadRequest, "invalid company ID")
	}

	// Get token from query parameter
	token := c.QueryParam("token")
	if token == "" {
		log.Debug().Msg("WebSocket connection rejected: missing token")
		return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}

	subject, err := h.authorizer.Authorize(c.Request().Context(), token, companyID)
	if err != nil {
		switch {
		case errors.Is(err, websocket.ErrInvalidToken):
			log.Debug().Err(err).Msg("WebSocket connection rejected: invalid token")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		case errors.Is(err, websocket.ErrNotMember):
			log.Debug().Str("company_id", companyID.String()).Msg("WebSocket connection rejected: not a member")
			return echo.NewHTTPError(http.StatusForbidden, "no access to this company")
		}
		log.Error().Err(err).Str("company_id", companyID.String()).Msg("WebSocket authorization failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "authorization failed")
	}

	// Upgrade HTTP connection to WebSocket
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return err
	}

	client := websocket.NewClient(conn, companyID)

	log.Info().
		Str("company_id", companyID.String()).
		Str("subject", subject).
		Str("client_id", client.ID()).
		Msg("WebSocket client connected")

	go client.Serve(h.hub)

	return nil
}
