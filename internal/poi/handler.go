// File: internal/poi/handler.go
package poi

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"poi_backend/internal/category"
	"poi_backend/internal/common"
	"poi_backend/internal/config"
	"poi_backend/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for POI handlers.
type Handler struct {
	service         Service
	categoryService category.Service
	userService     user.Service
	cfg             *config.Config
	logger          *zap.Logger
}

// NewHandler creates a new POI handler.
func NewHandler(service Service, categoryService category.Service, userService user.Service, cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{
		service:         service,
		categoryService: categoryService,
		userService:     userService,
		cfg:             cfg,
		logger:          logger,
	}
}

// RegisterRoutes sets up the POI routes on the paths the application has
// always served. The image id in /deleteimage carries a slash, so that
// segment is a wildcard.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW, adminRoleMW gin.HandlerFunc) {
	router.GET("/home", authMW, h.showCreateForm)
	router.GET("/view", authMW, h.listOwnPOIs)
	router.POST("/create", authMW, h.createPOI)
	router.GET("/editPOI/:id", authMW, h.getPOI)
	router.POST("/editPOI/:id", authMW, h.updatePOI)
	router.GET("/deletePOI/:id", authMW, h.deletePOI)
	router.POST("/uploadImage/:id", authMW, h.uploadImage)
	router.GET("/viewCategory/:id", authMW, h.listOwnPOIsByCategory)
	router.GET("/deleteimage/:poiid/*imageid", authMW, h.deleteImage)
	router.GET("/viewUser/:id", authMW, adminRoleMW, h.viewUser)
}

// showCreateForm returns the data the creation form needs, which is the
// category list.
func (h *Handler) showCreateForm(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	responses := make([]category.CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = category.ToCategoryResponse(&categories[i])
	}
	common.RespondOK(c, "Create form data retrieved.", gin.H{"categories": responses})
}

func (h *Handler) listOwnPOIs(c *gin.Context) {
	principalID := common.GetPrincipalIDFromContext(c)
	if principalID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	pois, err := h.service.ListByCreator(c.Request.Context(), principalID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "POIs retrieved.", pois)
}

func (h *Handler) createPOI(c *gin.Context) {
	principalID := common.GetPrincipalIDFromContext(c)
	if principalID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadBytes)

	var req CreatePOIRequest
	if err := c.ShouldBind(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	imageFile, err := h.formImage(c)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), principalID, req, imageFile)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "POI created.", created)
}

func (h *Handler) getPOI(c *gin.Context) {
	principalID := common.GetPrincipalIDFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid POI ID format."))
		return
	}

	found, err := h.service.GetByID(c.Request.Context(), principalID, common.GetPrincipalRoleFromContext(c), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	// The edit form also needs the category list.
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	categoryResponses := make([]category.CategoryResponse, len(categories))
	for i := range categories {
		categoryResponses[i] = category.ToCategoryResponse(&categories[i])
	}
	common.RespondOK(c, "POI retrieved.", gin.H{
		"poi":        found,
		"categories": categoryResponses,
	})
}

func (h *Handler) updatePOI(c *gin.Context) {
	principalID := common.GetPrincipalIDFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid POI ID format."))
		return
	}

	var req UpdatePOIRequest
	if err := c.ShouldBind(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), principalID, common.GetPrincipalRoleFromContext(c), id, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "POI updated.", updated)
}

func (h *Handler) deletePOI(c *gin.Context) {
	principalID := common.GetPrincipalIDFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid POI ID format."))
		return
	}

	if err := h.service.Delete(c.Request.Context(), principalID, common.GetPrincipalRoleFromContext(c), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "POI deleted.", nil)
}

func (h *Handler) uploadImage(c *gin.Context) {
	principalID := common.GetPrincipalIDFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid POI ID format."))
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxUploadBytes)

	imageFile, err := h.formImage(c)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	if imageFile == nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("An image file is required."))
		return
	}

	updated, err := h.service.AttachImage(c.Request.Context(), principalID, common.GetPrincipalRoleFromContext(c), id, imageFile)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Image uploaded.", updated)
}

// listOwnPOIsByCategory lists the requesting user's POIs within one
// category. Other users' POIs in the category are never included.
func (h *Handler) listOwnPOIsByCategory(c *gin.Context) {
	principalID := common.GetPrincipalIDFromContext(c)
	if principalID == uuid.Nil {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid category ID format."))
		return
	}

	found, err := h.categoryService.GetByID(c.Request.Context(), categoryID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	pois, err := h.service.ListByCreatorAndCategory(c.Request.Context(), principalID, categoryID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "POIs retrieved.", gin.H{
		"category": category.ToCategoryResponse(found),
		"pois":     pois,
	})
}

func (h *Handler) deleteImage(c *gin.Context) {
	principalID := common.GetPrincipalIDFromContext(c)
	poiID, err := uuid.Parse(c.Param("poiid"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid POI ID format."))
		return
	}

	imageID := strings.TrimPrefix(c.Param("imageid"), "/")
	if imageID == "" {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("An image ID is required."))
		return
	}

	updated, err := h.service.DetachImage(c.Request.Context(), principalID, common.GetPrincipalRoleFromContext(c), poiID, imageID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Image detached.", updated)
}

// viewUser is the admin view of one user together with every POI the user
// created.
func (h *Handler) viewUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid user ID format."))
		return
	}

	found, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	pois, err := h.service.ListByCreator(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "User retrieved.", gin.H{
		"user": user.ToUserResponse(found),
		"pois": pois,
	})
}

// formImage pulls the optional "image" file out of a multipart form. A
// missing file is not an error; an oversized body is rejected as a 400.
func (h *Handler) formImage(c *gin.Context) (*multipart.FileHeader, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, common.ErrBadRequest.WithDetails("Uploaded file exceeds the maximum allowed size.")
		}
		// Non-multipart requests carrying no file land here too.
		if strings.Contains(err.Error(), "request Content-Type isn't multipart/form-data") {
			return nil, nil
		}
		h.logger.Warn("Failed to read uploaded file", zap.Error(err))
		return nil, common.ErrBadRequest.WithDetails("Could not read the uploaded file.")
	}
	return fileHeader, nil
}
