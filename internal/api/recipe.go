package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/receitinhas/backend/internal/draft"
	"github.com/receitinhas/backend/internal/filter"
	"github.com/receitinhas/backend/internal/middleware"
	"github.com/receitinhas/backend/internal/model"
	"github.com/receitinhas/backend/internal/service"
	"github.com/receitinhas/backend/internal/store"
)

// User-facing messages, matching the client's toasts.
const (
	msgRecipeNotFound = "Receita não encontrada"
	msgLoadFailed     = "Erro ao carregar receitas. Por favor, tente novamente mais tarde."
	msgIndexBuilding  = "O índice está a ser construído. Por favor, aguarde alguns minutos e tente novamente."
	msgCreateFailed   = "Erro ao criar receita"
	msgUpdateFailed   = "Erro ao atualizar receita"
	msgDeleteFailed   = "Erro ao eliminar receita"
	msgUploadFailed   = "Erro ao fazer upload da imagem"
)

type RecipeHandler struct {
	store    *store.Store
	images   *service.ImageService
	profiles *service.ProfileService
}

func NewRecipeHandler(s *store.Store, images *service.ImageService, profiles *service.ProfileService) *RecipeHandler {
	return &RecipeHandler{
		store:    s,
		images:   images,
		profiles: profiles,
	}
}

// ListRecipes returns the caller's recipes, newest first, narrowed by the
// query-string filters. The unfiltered total rides along so the client can
// tell "no matches" apart from "no recipes yet".
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	recipes, err := h.store.List(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrIndexBuilding) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": msgIndexBuilding})
			return
		}
		log.Printf("[RecipeHandler] list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgLoadFailed})
		return
	}

	filtered := filter.Apply(recipes, filter.Params{
		Query:           c.Query("q"),
		Occasion:        c.Query("occasion"),
		Difficulty:      c.Query("difficulty"),
		PreparationTime: c.Query("preparation_time"),
	})

	c.JSON(http.StatusOK, gin.H{
		"recipes": filtered,
		"total":   len(recipes),
	})
}

// GetRecipe returns one recipe with its instructions grouped by sub-step.
// Missing and foreign recipes both render the same empty state.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": msgRecipeNotFound})
		return
	}

	recipe, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": msgRecipeNotFound})
			return
		}
		log.Printf("[RecipeHandler] get %s failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgLoadFailed})
		return
	}
	if recipe.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": msgRecipeNotFound})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipe":             recipe,
		"instruction_groups": model.GroupInstructions(recipe.Instructions),
	})
}

// CreateRecipe accepts a multipart form: a "recipe" JSON part with the form
// draft and an optional "image" file. The image is uploaded before the
// document write; if the upload fails nothing is persisted.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	d, err := bindDraft(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := d.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload := d.Payload()
	payload.UserID = userID

	if file, ok := formFile(c, "image"); ok {
		url, err := h.uploadCover(c, userID, file)
		if err != nil {
			respondUploadError(c, err)
			return
		}
		payload.ImageURL = url
	}

	id, err := h.store.Create(c.Request.Context(), payload)
	if err != nil {
		log.Printf("[RecipeHandler] create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgCreateFailed})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": payload, "id": id})
}

// UpdateRecipe overwrites an owned recipe. A replacement image is uploaded
// first and the previous blob deleted afterwards, best-effort.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": msgRecipeNotFound})
		return
	}

	existing, err := h.store.Get(c.Request.Context(), id)
	if err != nil || existing.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": msgRecipeNotFound})
		return
	}

	d, err := bindDraft(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := d.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload := d.Payload()
	payload.UserID = userID

	if file, ok := formFile(c, "image"); ok {
		url, err := h.uploadCover(c, userID, file)
		if err != nil {
			respondUploadError(c, err)
			return
		}
		if existing.ImageURL != "" {
			h.images.DeleteByURL(c.Request.Context(), existing.ImageURL)
		}
		payload.ImageURL = url
	}

	if err := h.store.Update(c.Request.Context(), id, payload); err != nil {
		log.Printf("[RecipeHandler] update %s failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgUpdateFailed})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Receita atualizada com sucesso!",
		"id":      id,
	})
}

// DeleteRecipe removes an owned recipe. Its blobs are deleted first,
// best-effort: a blob that is already gone never blocks the document
// delete.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": msgRecipeNotFound})
		return
	}

	recipe, err := h.store.Get(c.Request.Context(), id)
	if err != nil || recipe.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": msgRecipeNotFound})
		return
	}

	if recipe.ImageURL != "" {
		h.images.DeleteByURL(c.Request.Context(), recipe.ImageURL)
	}
	for _, m := range recipe.Memories {
		if m.ImageURL != "" {
			h.images.DeleteByURL(c.Request.Context(), m.ImageURL)
		}
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[RecipeHandler] delete %s failed: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgDeleteFailed})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Receita eliminada com sucesso!",
		"id":      id,
	})
}

// UploadMemoryImage stores a memory photo and returns its URL for the
// client to embed in a memory entry before saving the recipe.
func (h *RecipeHandler) UploadMemoryImage(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	file, ok := formFile(c, "image")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "imagem em falta"})
		return
	}
	if file.Size > service.MaxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrImageTooLarge.Error()})
		return
	}

	data, contentType, err := readFile(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgUploadFailed})
		return
	}

	url, err := h.images.UploadMemory(c.Request.Context(), userID, file.Filename, data, contentType)
	if err != nil {
		respondUploadError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// FavoriteRecipe marks an owned recipe as a favorite on the profile.
func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.store.Get(c.Request.Context(), id)
	if err != nil || recipe.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": msgRecipeNotFound})
		return
	}

	if err := h.profiles.AddFavorite(c.Request.Context(), userID, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao adicionar aos favoritos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// UnfavoriteRecipe removes a recipe from the profile's favorites.
func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.profiles.RemoveFavorite(c.Request.Context(), userID, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao remover dos favoritos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *RecipeHandler) uploadCover(c *gin.Context, userID uuid.UUID, file *multipart.FileHeader) (string, error) {
	// Reject oversized files before touching the body or the network.
	if file.Size > service.MaxImageSize {
		return "", service.ErrImageTooLarge
	}
	data, contentType, err := readFile(file)
	if err != nil {
		return "", &service.UploadError{Err: err}
	}
	return h.images.Upload(c.Request.Context(), userID, file.Filename, data, contentType)
}

// bindDraft accepts either a bare JSON body or a multipart form with a
// "recipe" JSON part.
func bindDraft(c *gin.Context) (*draft.Draft, error) {
	var d draft.Draft
	if part := c.PostForm("recipe"); part != "" {
		if err := json.Unmarshal([]byte(part), &d); err != nil {
			return nil, errors.New("pedido inválido")
		}
		return &d, nil
	}
	if err := c.ShouldBindJSON(&d); err != nil {
		return nil, errors.New("pedido inválido")
	}
	return &d, nil
}

func formFile(c *gin.Context, field string) (*multipart.FileHeader, bool) {
	file, err := c.FormFile(field)
	if err != nil {
		return nil, false
	}
	return file, true
}

func readFile(file *multipart.FileHeader) ([]byte, string, error) {
	f, err := file.Open()
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return data, file.Header.Get("Content-Type"), nil
}

func respondUploadError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrImageTooLarge) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[RecipeHandler] image upload failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msgUploadFailed})
}
