package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tempus/internal/application/session/usecases"
	"tempus/internal/interfaces/http/middleware"
	"tempus/internal/shared/logger"
	"tempus/internal/shared/utils"
)

type RequestExtensionRequest struct {
	Minutes int `json:"minutes" binding:"required"`
}

type RespondExtensionRequest struct {
	Approve bool   `json:"approve"`
	Message string `json:"message"`
}

// ExtensionHandler serves the extension request endpoints: workstations
// file requests, operators resolve them.
type ExtensionHandler struct {
	requestExtension usecases.RequestExtensionExecutor
	respondExtension usecases.RespondExtensionExecutor
	listRequests     usecases.ListExtensionRequestsExecutor
	logger           logger.Interface
}

func NewExtensionHandler(
	requestExtension usecases.RequestExtensionExecutor,
	respondExtension usecases.RespondExtensionExecutor,
	listRequests usecases.ListExtensionRequestsExecutor,
	logger logger.Interface,
) *ExtensionHandler {
	return &ExtensionHandler{
		requestExtension: requestExtension,
		respondExtension: respondExtension,
		listRequests:     listRequests,
		logger:           logger,
	}
}

// Request handles POST /api/v1/sessions/:id/extensions
func (h *ExtensionHandler) Request(c *gin.Context) {
	sessionID, ok := sessionIDParam(c)
	if !ok {
		return
	}

	var req RequestExtensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.requestExtension.Execute(c.Request.Context(), usecases.RequestExtensionCommand{
		SessionID:     sessionID,
		WorkstationID: middleware.WorkstationFromContext(c),
		Minutes:       req.Minutes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "extension requested")
}

// Respond handles POST /api/v1/extensions/:id/respond
func (h *ExtensionHandler) Respond(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || requestID == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid extension request ID")
		return
	}

	var req RespondExtensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.respondExtension.Execute(c.Request.Context(), usecases.RespondExtensionCommand{
		RequestID: uint(requestID),
		Approve:   req.Approve,
		Actor:     middleware.OperatorFromContext(c),
		Message:   req.Message,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "extension request resolved", result)
}

// List handles GET /api/v1/extensions
func (h *ExtensionHandler) List(c *gin.Context) {
	sessionID, _ := strconv.ParseUint(c.Query("session_id"), 10, 32)

	result, err := h.listRequests.Execute(c.Request.Context(), usecases.ListExtensionRequestsQuery{
		SessionID: uint(sessionID),
		Status:    c.Query("status"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
