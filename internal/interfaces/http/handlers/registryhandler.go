package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tempus/internal/application/registry/usecases"
	"tempus/internal/shared/logger"
	"tempus/internal/shared/utils"
)

type EnrollWorkstationRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
}

type CreateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// RegistryHandler serves the workstation and user registries.
type RegistryHandler struct {
	enrollWorkstation usecases.EnrollWorkstationExecutor
	listWorkstations  usecases.ListWorkstationsExecutor
	createUser        usecases.CreateUserExecutor
	listUsers         usecases.ListUsersExecutor
	logger            logger.Interface
}

func NewRegistryHandler(
	enrollWorkstation usecases.EnrollWorkstationExecutor,
	listWorkstations usecases.ListWorkstationsExecutor,
	createUser usecases.CreateUserExecutor,
	listUsers usecases.ListUsersExecutor,
	logger logger.Interface,
) *RegistryHandler {
	return &RegistryHandler{
		enrollWorkstation: enrollWorkstation,
		listWorkstations:  listWorkstations,
		createUser:        createUser,
		listUsers:         listUsers,
		logger:            logger,
	}
}

// EnrollWorkstation handles POST /api/v1/workstations
func (h *RegistryHandler) EnrollWorkstation(c *gin.Context) {
	var req EnrollWorkstationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.enrollWorkstation.Execute(c.Request.Context(), usecases.EnrollWorkstationCommand{
		Name:     req.Name,
		Location: req.Location,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "workstation enrolled")
}

// ListWorkstations handles GET /api/v1/workstations
func (h *RegistryHandler) ListWorkstations(c *gin.Context) {
	result, err := h.listWorkstations.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// CreateUser handles POST /api/v1/users
func (h *RegistryHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.createUser.Execute(c.Request.Context(), usecases.CreateUserCommand{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "user registered")
}

// ListUsers handles GET /api/v1/users
func (h *RegistryHandler) ListUsers(c *gin.Context) {
	result, err := h.listUsers.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
