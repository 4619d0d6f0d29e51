package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/receitinhas/backend/internal/middleware"
	"github.com/receitinhas/backend/internal/service"
)

type ProfileHandler struct {
	profiles *service.ProfileService
	images   *service.ImageService
}

func NewProfileHandler(profiles *service.ProfileService, images *service.ImageService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, images: images}
}

// GetProfile returns the caller's profile, creating it from the account
// record on first access.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[ProfileHandler] get profile failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar perfil"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile accepts a multipart form with display_name and bio fields
// and an optional "photo" file.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	updates := map[string]interface{}{}
	if name, exists := c.GetPostForm("display_name"); exists {
		updates["display_name"] = name
	}
	if bio, exists := c.GetPostForm("bio"); exists {
		updates["bio"] = bio
	}

	if file, ok := formFile(c, "photo"); ok {
		if file.Size > service.MaxImageSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrImageTooLarge.Error()})
			return
		}
		data, contentType, err := readFile(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgUploadFailed})
			return
		}
		url, err := h.images.UploadProfilePhoto(c.Request.Context(), userID, data, contentType)
		if err != nil {
			respondUploadError(c, err)
			return
		}
		updates["photo_url"] = url
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nada para atualizar"})
		return
	}

	if err := h.profiles.UpdateProfile(c.Request.Context(), userID, updates); err != nil {
		log.Printf("[ProfileHandler] update profile failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao atualizar perfil"})
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		log.Printf("[ProfileHandler] get profile failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar perfil"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
