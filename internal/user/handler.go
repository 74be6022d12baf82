// File: internal/user/handler.go
package user

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"profilehub_backend/internal/common"
	"profilehub_backend/internal/middleware"
)

// Handler struct holds dependencies for user handlers.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new user handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the routes for registration and credential operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", h.signup)
		authGroup.POST("/forgot-password", h.forgotPassword)
	}

	accountGroup := router.Group("/account")
	accountGroup.Use(authMW)
	{
		accountGroup.GET("/me", h.getMe)
	}
}

func (h *Handler) signup(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Signup: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithMessage("Please provide all the required fields."))
		return
	}

	usr, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "User created successfully.", ToUserResponse(usr))
}

func (h *Handler) forgotPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Forgot password: Invalid request body", zap.Error(err))
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithMessage("Please provide all the required fields."))
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req.Email, req.Password); err != nil {
		common.RespondWithError(c, err)
		return
	}
	// Success regardless of whether the email matched a row.
	common.RespondOK(c, "Password reset successfully.", nil)
}

func (h *Handler) getMe(c *gin.Context) {
	principalID := middleware.GetPrincipalIDFromContext(c)
	if principalID == "" {
		h.logger.Error("Principal ID not found in context for /me", zap.String("path", c.Request.URL.Path))
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	usr, profile, err := h.service.GetAccount(c.Request.Context(), principalID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}

	response := gin.H{"user": ToUserResponse(usr)}
	if profile != nil {
		response["profile"] = ToProfileResponse(profile)
	}
	common.RespondOK(c, "Account retrieved successfully.", response)
}
