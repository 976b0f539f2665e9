package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tempus/internal/domain/registry"
	"tempus/internal/infrastructure/auth"
	"tempus/internal/shared/logger"
	"tempus/internal/shared/utils"
)

// Workstation identity headers. The token is presented in plain form and
// checked against the stored hash.
const (
	HeaderWorkstationName  = "X-Workstation-Name"
	HeaderWorkstationToken = "X-Workstation-Token"
)

// WorkstationAuthMiddleware resolves the caller's workstation identity from
// its enrollment token. Every rejection is the same generic 401 so a probe
// cannot tell a wrong name from a wrong token.
type WorkstationAuthMiddleware struct {
	workstationRepo registry.WorkstationRepository
	tokens          *auth.WorkstationTokenService
	allowUnbound    bool
	logger          logger.Interface
}

func NewWorkstationAuthMiddleware(
	workstationRepo registry.WorkstationRepository,
	tokens *auth.WorkstationTokenService,
	allowUnbound bool,
	logger logger.Interface,
) *WorkstationAuthMiddleware {
	return &WorkstationAuthMiddleware{
		workstationRepo: workstationRepo,
		tokens:          tokens,
		allowUnbound:    allowUnbound,
		logger:          logger,
	}
}

// Identify authenticates the workstation and stores its ID in the context.
// Without credentials the request proceeds unbound when the deployment
// allows it, and is rejected otherwise.
func (m *WorkstationAuthMiddleware) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.GetHeader(HeaderWorkstationName)
		token := c.GetHeader(HeaderWorkstationToken)

		if name == "" && token == "" {
			if m.allowUnbound {
				c.Next()
				return
			}
			utils.ErrorResponse(c, http.StatusUnauthorized, "workstation identity required")
			c.Abort()
			return
		}

		workstation, err := m.workstationRepo.FindByName(c.Request.Context(), name)
		if err != nil {
			m.logger.Warnw("workstation auth failed",
				"workstation", name,
				"client_ip", c.ClientIP(),
			)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid workstation credentials")
			c.Abort()
			return
		}

		if err := m.tokens.Verify(token, workstation.TokenHash()); err != nil {
			m.logger.Warnw("workstation token rejected",
				"workstation", name,
				"client_ip", c.ClientIP(),
			)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid workstation credentials")
			c.Abort()
			return
		}

		workstation.Touch(time.Now())
		if err := m.workstationRepo.Update(c.Request.Context(), workstation); err != nil {
			m.logger.Warnw("failed to record workstation heartbeat",
				"workstation", name,
				"error", err,
			)
		}

		c.Set(ContextKeyWorkstationID, workstation.ID())
		c.Next()
	}
}

// RequireWorkstation rejects requests that did not authenticate as a
// workstation, regardless of the unbound-start setting.
func (m *WorkstationAuthMiddleware) RequireWorkstation() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextKeyWorkstationID); !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, "workstation identity required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// WorkstationFromContext returns the authenticated workstation ID, zero when
// the caller is unbound.
func WorkstationFromContext(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyWorkstationID); exists {
		if wsID, ok := id.(uint); ok {
			return wsID
		}
	}
	return 0
}
