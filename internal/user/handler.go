// File: internal/user/handler.go
package user

import (
	"errors"

	"poi_backend/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for identity handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new identity handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the profile-settings and admin user-management
// routes on the paths the application has always served.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW, adminRoleMW gin.HandlerFunc) {
	router.GET("/settings", authMW, h.showSettings)
	router.POST("/settings", authMW, h.updateSettings)
	router.GET("/adminsettings", authMW, adminRoleMW, h.showSettings)
	router.POST("/adminsettings", authMW, adminRoleMW, h.updateSettings)

	router.GET("/admin", authMW, adminRoleMW, h.listUsers)
	router.GET("/editUser/:id", authMW, adminRoleMW, h.getUser)
	router.POST("/editUser/:id", authMW, adminRoleMW, h.updateUser)
	router.GET("/deleteUser/:id", authMW, adminRoleMW, h.deleteUser)
}

func (h *Handler) showSettings(c *gin.Context) {
	principalID := common.GetPrincipalIDFromContext(c)
	if principalID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	found, err := h.service.GetByID(c.Request.Context(), principalID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Settings retrieved.", ToUserResponse(found))
}

func (h *Handler) updateSettings(c *gin.Context) {
	principalID := common.GetPrincipalIDFromContext(c)
	if principalID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	updated, err := h.service.UpdateProfile(c.Request.Context(), principalID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Settings updated.", ToUserResponse(updated))
}

func (h *Handler) listUsers(c *gin.Context) {
	page, pageSize := common.GetPaginationParams(c)
	users, pagination, err := h.service.ListUsers(c.Request.Context(), page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	common.RespondPaginated(c, "Users retrieved.", responses, pagination)
}

func (h *Handler) getUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid user ID format."))
		return
	}

	found, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User retrieved.", ToUserResponse(found))
}

func (h *Handler) updateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid user ID format."))
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	updated, err := h.service.UpdateProfile(c.Request.Context(), id, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User updated.", ToUserResponse(updated))
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid user ID format."))
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User deleted.", nil)
}
