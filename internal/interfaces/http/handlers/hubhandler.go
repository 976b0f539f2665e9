package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"tempus/internal/application/session/usecases"
	"tempus/internal/domain/session"
	"tempus/internal/infrastructure/services"
	"tempus/internal/interfaces/http/middleware"
	"tempus/internal/shared/errors"
	"tempus/internal/shared/logger"
	"tempus/internal/shared/utils"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Should be configured in production
	},
}

// HubHandler upgrades subscribers onto the session event hub. Workstation
// clients follow their own session; kiosk displays follow a workstation
// across session turnover.
type HubHandler struct {
	hub                *services.SessionHub
	getTime            usecases.GetTimeExecutor
	workstationSession usecases.GetWorkstationSessionExecutor
	logger             logger.Interface
}

func NewHubHandler(
	hub *services.SessionHub,
	getTime usecases.GetTimeExecutor,
	workstationSession usecases.GetWorkstationSessionExecutor,
	log logger.Interface,
) *HubHandler {
	return &HubHandler{
		hub:                hub,
		getTime:            getTime,
		workstationSession: workstationSession,
		logger:             log,
	}
}

// SessionWS handles GET /ws/sessions/:id
func (h *HubHandler) SessionWS(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	// Resolve the snapshot before the upgrade so an unknown session is a
	// plain HTTP error rather than an immediate close.
	snapshot, err := h.getTime.Execute(c.Request.Context(), usecases.GetTimeQuery{SessionID: sessionID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorw("failed to upgrade to websocket",
			"error", err,
			"session_id", sessionID,
			"ip", c.ClientIP(),
		)
		return
	}

	client := h.hub.Subscribe(sessionID, conn)
	client.Send <- snapshotEvent(snapshot, middleware.WorkstationFromContext(c))

	go h.writePump(conn, client.Send)
	h.readPump(conn, func() { h.hub.Unsubscribe(sessionID, client) })
}

// WorkstationWS handles GET /ws/workstations/:id
func (h *HubHandler) WorkstationWS(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid workstation ID")
		return
	}
	workstationID := uint(id)

	// A workstation may only follow its own channel.
	if middleware.WorkstationFromContext(c) != workstationID {
		h.logger.Warnw("workstation subscribed to a foreign channel",
			"requested_workstation", workstationID,
			"actual_workstation", middleware.WorkstationFromContext(c),
			"ip", c.ClientIP(),
		)
		utils.ErrorResponse(c, http.StatusForbidden, "workstation mismatch")
		return
	}

	// Resolved before the upgrade so a repository failure is a plain HTTP
	// error. A not found snapshot means the workstation is idle.
	snapshot, err := h.workstationSession.Execute(c.Request.Context(), usecases.GetWorkstationSessionQuery{
		WorkstationID: workstationID,
	})
	if err != nil && !errors.IsNotFoundError(err) {
		utils.ErrorResponseWithError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorw("failed to upgrade to websocket",
			"error", err,
			"workstation_id", workstationID,
			"ip", c.ClientIP(),
		)
		return
	}

	client := h.hub.SubscribeWorkstation(workstationID, conn)
	if snapshot != nil {
		client.Send <- snapshotEvent(snapshot, workstationID)
	}

	go h.writePump(conn, client.Send)
	h.readPump(conn, func() { h.hub.UnsubscribeWorkstation(workstationID, client) })
}

// readPump drains the connection. Subscribers never send application
// messages; reads exist to process control frames and detect the close.
func (h *HubHandler) readPump(conn *websocket.Conn, unsubscribe func()) {
	defer func() {
		unsubscribe()
		conn.Close()
	}()

	conn.SetReadLimit(4096)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warnw("subscriber websocket read error", "error", err)
			}
			return
		}
	}
}

// writePump pushes hub events and keepalive pings to the subscriber.
func (h *HubHandler) writePump(conn *websocket.Conn, send chan session.Event) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case evt, ok := <-send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := conn.WriteJSON(evt); err != nil {
				h.logger.Warnw("failed to write to subscriber websocket", "error", err)
				return
			}

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// snapshotEvent renders the handshake countdown snapshot so a reconnected
// client repaints immediately instead of waiting for the next tick.
func snapshotEvent(snapshot *usecases.GetTimeResult, workstationID uint) session.Event {
	return session.Event{
		Type:          session.EventTimeUpdate,
		SessionID:     snapshot.SessionID,
		WorkstationID: workstationID,
		Timestamp:     time.Now().Unix(),
		Data: session.TimeUpdateData{
			Remaining:   snapshot.Remaining,
			Clock:       snapshot.Clock,
			PercentUsed: snapshot.PercentUsed,
			Status:      snapshot.Status,
		},
	}
}
