// Package handlers provides the HTTP handlers of the session engine API.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tempus/internal/application/session/usecases"
	"tempus/internal/domain/session"
	"tempus/internal/interfaces/http/middleware"
	"tempus/internal/shared/logger"
	"tempus/internal/shared/utils"
)

type CreateSessionRequest struct {
	UserID          uint   `json:"user_id" binding:"required"`
	WorkstationID   uint   `json:"workstation_id" binding:"required"`
	DurationSeconds int    `json:"duration_seconds"`
	Notes           string `json:"notes"`
}

type RedeemCodeRequest struct {
	Code string `json:"code" binding:"required,accesscode"`
}

type AddTimeRequest struct {
	Seconds int `json:"seconds" binding:"required"`
}

type TerminateSessionRequest struct {
	Reason string `json:"reason"`
}

// SessionHandler serves the operator and workstation session endpoints.
type SessionHandler struct {
	createSession    usecases.CreateSessionExecutor
	validateCode     usecases.ValidateCodeExecutor
	startSession     usecases.StartSessionExecutor
	addTime          usecases.AddTimeExecutor
	terminateSession usecases.TerminateSessionExecutor
	suspendSession   usecases.SuspendSessionExecutor
	resumeSession    usecases.ResumeSessionExecutor
	getSession       usecases.GetSessionExecutor
	getTime          usecases.GetTimeExecutor
	listSessions     usecases.ListSessionsExecutor
	activeSessions   usecases.ActiveSessionsExecutor
	sessionStats     usecases.SessionStatsExecutor
	defaultDuration  int
	logger           logger.Interface
}

type SessionHandlerDeps struct {
	CreateSession    usecases.CreateSessionExecutor
	ValidateCode     usecases.ValidateCodeExecutor
	StartSession     usecases.StartSessionExecutor
	AddTime          usecases.AddTimeExecutor
	TerminateSession usecases.TerminateSessionExecutor
	SuspendSession   usecases.SuspendSessionExecutor
	ResumeSession    usecases.ResumeSessionExecutor
	GetSession       usecases.GetSessionExecutor
	GetTime          usecases.GetTimeExecutor
	ListSessions     usecases.ListSessionsExecutor
	ActiveSessions   usecases.ActiveSessionsExecutor
	SessionStats     usecases.SessionStatsExecutor
	DefaultDuration  int
	Logger           logger.Interface
}

func NewSessionHandler(deps SessionHandlerDeps) *SessionHandler {
	return &SessionHandler{
		createSession:    deps.CreateSession,
		validateCode:     deps.ValidateCode,
		startSession:     deps.StartSession,
		addTime:          deps.AddTime,
		terminateSession: deps.TerminateSession,
		suspendSession:   deps.SuspendSession,
		resumeSession:    deps.ResumeSession,
		getSession:       deps.GetSession,
		getTime:          deps.GetTime,
		listSessions:     deps.ListSessions,
		activeSessions:   deps.ActiveSessions,
		sessionStats:     deps.SessionStats,
		defaultDuration:  deps.DefaultDuration,
		logger:           deps.Logger,
	}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	duration := req.DurationSeconds
	if duration == 0 {
		duration = h.defaultDuration
	}

	result, err := h.createSession.Execute(c.Request.Context(), usecases.CreateSessionCommand{
		UserID:          req.UserID,
		WorkstationID:   req.WorkstationID,
		DurationSeconds: duration,
		Operator:        middleware.OperatorFromContext(c),
		Notes:           req.Notes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "session created")
}

// Validate handles POST /api/v1/codes/validate
func (h *SessionHandler) Validate(c *gin.Context) {
	var req RedeemCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.validateCode.Execute(c.Request.Context(), usecases.ValidateCodeCommand{
		Code:          req.Code,
		WorkstationID: middleware.WorkstationFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Start handles POST /api/v1/codes/redeem
func (h *SessionHandler) Start(c *gin.Context) {
	var req RedeemCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.startSession.Execute(c.Request.Context(), usecases.StartSessionCommand{
		Code:          req.Code,
		WorkstationID: middleware.WorkstationFromContext(c),
		Actor:         actorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// AddTime handles POST /api/v1/sessions/:id/time
func (h *SessionHandler) AddTime(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	var req AddTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.addTime.Execute(c.Request.Context(), usecases.AddTimeCommand{
		SessionID: sessionID,
		Seconds:   req.Seconds,
		Actor:     middleware.OperatorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "time added", result)
}

// Terminate handles POST /api/v1/sessions/:id/terminate
func (h *SessionHandler) Terminate(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	var req TerminateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.terminateSession.Execute(c.Request.Context(), usecases.TerminateSessionCommand{
		SessionID: sessionID,
		Reason:    session.TerminationReason(req.Reason),
		Actor:     middleware.OperatorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "session terminated", result)
}

// Suspend handles POST /api/v1/sessions/:id/suspend
func (h *SessionHandler) Suspend(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	result, err := h.suspendSession.Execute(c.Request.Context(), usecases.SuspendSessionCommand{
		SessionID: sessionID,
		Actor:     middleware.OperatorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "session suspended", result)
}

// Resume handles POST /api/v1/sessions/:id/resume
func (h *SessionHandler) Resume(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	result, err := h.resumeSession.Execute(c.Request.Context(), usecases.ResumeSessionCommand{
		SessionID: sessionID,
		Actor:     middleware.OperatorFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "session resumed", result)
}

// Get handles GET /api/v1/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	result, err := h.getSession.Execute(c.Request.Context(), usecases.GetSessionQuery{SessionID: sessionID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetTime handles GET /api/v1/sessions/:id/time
func (h *SessionHandler) GetTime(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	result, err := h.getTime.Execute(c.Request.Context(), usecases.GetTimeQuery{SessionID: sessionID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// List handles GET /api/v1/sessions
func (h *SessionHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	userID, _ := strconv.ParseUint(c.Query("user_id"), 10, 32)
	workstationID, _ := strconv.ParseUint(c.Query("workstation_id"), 10, 32)

	result, err := h.listSessions.Execute(c.Request.Context(), usecases.ListSessionsQuery{
		Status:        c.Query("status"),
		UserID:        uint(userID),
		WorkstationID: uint(workstationID),
		Page:          page,
		PageSize:      pageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Sessions, result.Total, page, pageSize)
}

// Active handles GET /api/v1/sessions/active
func (h *SessionHandler) Active(c *gin.Context) {
	result, err := h.activeSessions.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Stats handles GET /api/v1/sessions/stats
func (h *SessionHandler) Stats(c *gin.Context) {
	result, err := h.sessionStats.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func sessionIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid session ID")
		return 0, false
	}
	return uint(id), true
}

// actorFromContext names the caller for audit purposes: the operator when
// authenticated, otherwise the workstation identity.
func actorFromContext(c *gin.Context) string {
	if operator := middleware.OperatorFromContext(c); operator != "" {
		return operator
	}
	if wsID := middleware.WorkstationFromContext(c); wsID != 0 {
		return "workstation:" + strconv.FormatUint(uint64(wsID), 10)
	}
	return "anonymous"
}
