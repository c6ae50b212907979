package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/priority-focus-api/internal/dto"
	apierrors "github.com/yukikurage/priority-focus-api/internal/errors"
	"github.com/yukikurage/priority-focus-api/internal/middleware"
	"github.com/yukikurage/priority-focus-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	log         *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

// Register creates a manager account and returns a bearer token.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Email    string `json:"email" binding:"required,email,max=255"`
		Password string `json:"password" binding:"required"`
		Name     string `json:"name" binding:"required"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Email, password, and name are required")
		return
	}

	result, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toAuthResponse(result))
}

// Login authenticates a manager and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Email and password are required")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAuthResponse(result))
}

// Logout acknowledges the logout. Tokens are stateless; the client drops it.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}

// Me returns the authenticated manager.
func (h *AuthHandler) Me(c *gin.Context) {
	managerID, ok := middleware.GetManagerID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	manager, err := h.authService.Me(c.Request.Context(), managerID)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToManagerDTO(*manager))
}

// UpdateSettings replaces the manager's settings object.
func (h *AuthHandler) UpdateSettings(c *gin.Context) {
	type UpdateSettingsRequest struct {
		Settings map[string]interface{} `json:"settings" binding:"required"`
	}

	managerID, ok := middleware.GetManagerID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "settings must be an object")
		return
	}

	manager, err := h.authService.UpdateSettings(c.Request.Context(), managerID, req.Settings)
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToManagerDTO(*manager))
}

func toAuthResponse(result *services.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		Manager:   dto.ToManagerDTO(*result.Manager),
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	}
}

func (h *AuthHandler) respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrNameTooLong):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, "Password must be at least 6 characters")
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, "Email already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, "Invalid credentials")
	case errors.Is(err, services.ErrManagerNotFound):
		apierrors.NotFound(c, "Manager not found")
	default:
		internalError(c, h.log, err)
	}
}

// internalError logs the cause and answers with a generic 500.
func internalError(c *gin.Context, log *slog.Logger, err error) {
	log.ErrorContext(c.Request.Context(), "request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
	_ = c.Error(err)
	apierrors.InternalError(c, "")
}
