// File: internal/auth/handler.go
package auth

import (
	"errors"
	"net/http"

	"poi_backend/internal/common"
	"poi_backend/internal/config"
	"poi_backend/internal/shared"
	"poi_backend/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// LoginRequest defines the structure for submitting credentials.
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Handler struct holds dependencies for auth handlers.
type Handler struct {
	userService  user.Service
	tokenService shared.TokenService
	blocklist    TokenBlocklistService
	cfg          *config.Config
	logger       *zap.Logger
}

// NewHandler creates a new auth handler.
func NewHandler(
	userService user.Service,
	tokenService shared.TokenService,
	blocklist TokenBlocklistService,
	cfg *config.Config,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		userService:  userService,
		tokenService: tokenService,
		blocklist:    blocklist,
		cfg:          cfg,
		logger:       logger,
	}
}

// RegisterRoutes sets up the routes for account operations. The GET form
// routes answer with form metadata; the app has no server-side templates.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	router.GET("/", h.index)
	router.GET("/signup", h.showSignup)
	router.POST("/signup", h.signup)
	router.GET("/login", h.showLogin)
	router.POST("/login", h.login)
	router.GET("/logout", authMW, h.logout)
}

func (h *Handler) index(c *gin.Context) {
	common.RespondOK(c, "Welcome to Points of Interest", nil)
}

func (h *Handler) showSignup(c *gin.Context) {
	common.RespondOK(c, "Sign up for Points of Interest", gin.H{
		"fields": []string{"firstName", "lastName", "email", "password"},
	})
}

func (h *Handler) showLogin(c *gin.Context) {
	common.RespondOK(c, "Login to Points of Interest", gin.H{
		"fields": []string{"email", "password"},
	})
}

// signup registers a new user and establishes a session immediately.
func (h *Handler) signup(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("Signup: invalid payload", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	newUser, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	if err := h.establishSession(c, newUser); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Signup successful.", gin.H{
		"user": user.ToUserResponse(newUser),
		"next": "/home",
	})
}

// login verifies credentials and establishes a role-scoped session. Session
// establishment is gated on the credential check succeeding.
func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warn("Login: invalid payload", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails(err.Error()))
		return
	}

	principal, err := h.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	if err := h.establishSession(c, principal); err != nil {
		common.RespondWithError(c, err)
		return
	}

	next := "/home"
	if principal.Role == common.RoleAdmin {
		next = "/admin"
	}
	common.RespondOK(c, "Login successful.", gin.H{
		"user": user.ToUserResponse(principal),
		"next": next,
	})
}

// logout revokes the current session token and clears the session cookie.
func (h *Handler) logout(c *gin.Context) {
	if val, exists := c.Get(common.PrincipalClaimsKey); exists {
		if claims, ok := val.(*shared.Claims); ok && claims.ID != "" && claims.ExpiresAt != nil {
			if err := h.blocklist.AddToBlocklist(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
				h.logger.Warn("Failed to blocklist session token on logout", zap.Error(err))
			}
		}
	}
	h.clearSessionCookie(c)
	common.RespondOK(c, "Logged out.", gin.H{"next": "/"})
}

func (h *Handler) establishSession(c *gin.Context, principal *user.User) error {
	token, expiresAt, err := h.tokenService.GenerateToken(principal)
	if err != nil {
		return common.ErrInternalServer.WithDetails("Could not establish session.")
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		h.cfg.SessionCookieName,
		token,
		int(h.cfg.JWTExpiry.Seconds()),
		"/",
		h.cfg.SessionCookieDomain,
		h.cfg.SessionCookieSecure,
		true,
	)
	h.logger.Debug("Session established",
		zap.String("principalID", principal.ID.String()),
		zap.String("role", principal.Role),
		zap.Time("expiresAt", expiresAt),
	)
	return nil
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.SessionCookieName, "", -1, "/", h.cfg.SessionCookieDomain, h.cfg.SessionCookieSecure, true)
}
