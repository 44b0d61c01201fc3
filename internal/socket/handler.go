package socket

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Handler upgrades authenticated HTTP requests to websocket connections and
// registers them with the hub.
type Handler struct {
	hub       *Hub
	jwtSecret string
	logger    *zap.Logger
	upgrader  websocket.Upgrader
}

// NewHandler creates a websocket Handler
func NewHandler(hub *Hub, jwtSecret string, logger *zap.Logger) *Handler {
	return &Handler{
		hub:       hub,
		jwtSecret: jwtSecret,
		logger:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect cross-origin from the dashboard;
			// auth happens via the bearer credential, not the Origin header.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS handles GET /ws. A connection is admitted only with a valid
// previously-issued credential; on connect it is subscribed to its user
// room and one room per held role.
func (h *Handler) ServeWS(c echo.Context) error {
	user, err := Authenticate(c.Request(), h.jwtSecret)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the failure response
		return nil
	}

	client := newClient(h.hub, conn, user, h.logger)

	h.hub.Join(UserRoom(user.ID), client)
	for _, role := range user.Roles {
		h.hub.Join(RoleRoom(role), client)
	}

	h.logger.Info("user connected",
		zap.String("user", user.Username),
		zap.Strings("roles", user.Roles))

	go client.writePump()
	go client.readPump()
	return nil
}
