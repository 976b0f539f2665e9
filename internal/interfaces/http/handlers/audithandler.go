package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"tempus/internal/infrastructure/repository"
	"tempus/internal/shared/utils"
)

// AuditTrailReader is the slice of the audit store the handler needs.
type AuditTrailReader interface {
	ListBySession(ctx context.Context, sessionID uint, limit int) ([]repository.AuditEntry, error)
	ListRecent(ctx context.Context, limit int) ([]repository.AuditEntry, error)
}

// AuditHandler exposes the audit trail to operators.
type AuditHandler struct {
	trail AuditTrailReader
}

func NewAuditHandler(trail AuditTrailReader) *AuditHandler {
	return &AuditHandler{trail: trail}
}

// List handles GET /api/v1/audit
func (h *AuditHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	sessionID, _ := strconv.ParseUint(c.Query("session_id"), 10, 32)

	var entries []repository.AuditEntry
	var err error
	if sessionID != 0 {
		entries, err = h.trail.ListBySession(c.Request.Context(), uint(sessionID), limit)
	} else {
		entries, err = h.trail.ListRecent(c.Request.Context(), limit)
	}
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, 200, "", entries)
}
