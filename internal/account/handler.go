// File: internal/account/handler.go
package account

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"profilehub_backend/internal/common"
	"profilehub_backend/internal/middleware"
)

// Handler struct holds dependencies for onboarding handlers.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new onboarding handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes sets up the onboarding route. Authentication is mandatory.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	accountGroup := router.Group("/account")
	accountGroup.Use(authMW)
	{
		accountGroup.POST("/onboarding-user", h.onboardUser)
	}
}

func (h *Handler) onboardUser(c *gin.Context) {
	principalID := middleware.GetPrincipalIDFromContext(c)
	if principalID == "" {
		common.RespondWithError(c, common.ErrUnauthorized.WithMessage("Unauthorized user."))
		return
	}

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		h.logger.Warn("Onboarding: malformed multipart body", zap.Error(err))
		common.RespondWithError(c, common.ErrBadRequest.WithMessage("Could not read the submitted form."))
		return
	}

	req := OnboardingRequest{
		FirstName: c.PostForm("firstName"),
		LastName:  c.PostForm("lastName"),
		Bio:       c.PostForm("bio"),
		DOB:       c.PostForm("dob"),
		Country:   c.PostForm("country"),
	}

	// The image is optional; a missing part is not an error.
	if fileHeader, err := c.FormFile("profileImage"); err == nil && fileHeader.Filename != "" {
		file, openErr := fileHeader.Open()
		if openErr != nil {
			h.logger.Warn("Onboarding: could not open uploaded file", zap.Error(openErr))
			common.RespondWithError(c, common.ErrBadRequest.WithMessage("Could not read the uploaded image."))
			return
		}
		defer file.Close()

		req.Image = &ImageUpload{
			Content:     file,
			FileName:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
		}
	}

	if _, err := h.service.Onboard(c.Request.Context(), principalID, req); err != nil {
		common.RespondWithError(c, err)
		return
	}

	common.RespondOK(c, "User details saved successfully.", nil)
}
