package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tempus/internal/infrastructure/auth"
	"tempus/internal/shared/logger"
	"tempus/internal/shared/utils"
)

// Context keys set by the auth middlewares.
const (
	ContextKeyOperator      = "operator"
	ContextKeyOperatorRole  = "operator_role"
	ContextKeyWorkstationID = "workstation_id"
)

// AuthMiddleware guards the operator API with bearer tokens.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify operator token",
				"error", err,
				"client_ip", c.ClientIP(),
			)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextKeyOperator, claims.Operator)
		c.Set(ContextKeyOperatorRole, claims.Role)

		c.Next()
	}
}

// OperatorFromContext returns the authenticated operator name, empty when
// the request is unauthenticated.
func OperatorFromContext(c *gin.Context) string {
	return c.GetString(ContextKeyOperator)
}
