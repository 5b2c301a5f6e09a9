package handlers

import (
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/umalmyha/leads/internal/notify"
)

// EventsHTTPHandler streams requirement change events to admins over websocket
type EventsHTTPHandler struct {
	hub      *notify.Hub
	upgrader websocket.Upgrader
}

// NewEventsHTTPHandler builds new EventsHTTPHandler
func NewEventsHTTPHandler(hub *notify.Hub) *EventsHTTPHandler {
	return &EventsHTTPHandler{hub: hub}
}

// Subscribe upgrades connection and streams events until client leaves
// @Summary     Requirement events
// @Description Websocket stream of requirement.created, requirement.status_changed and requirement.deleted events
// @Tags        requirements
// @Security    ApiKeyAuth
// @Param       token query string false "Session token for clients unable to set Authorization header"
// @Success     101   "Switching protocols"
// @Failure     401   {object} errors.AuthErr
// @Router      /api/requirements/events [get]
func (h *EventsHTTPHandler) Subscribe(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// upgrader has already replied with error status
		return nil
	}

	h.hub.Serve(conn)
	return nil
}
