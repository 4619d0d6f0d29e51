package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/receitinhas/backend/internal/draft"
	"github.com/receitinhas/backend/internal/middleware"
	"github.com/receitinhas/backend/internal/service"
)

type DraftHandler struct {
	drafts *service.DraftService
}

func NewDraftHandler(drafts *service.DraftService) *DraftHandler {
	return &DraftHandler{drafts: drafts}
}

// SaveDraft stores the in-progress form so a half-written recipe survives
// a page reload. Drafts expire on their own after a day.
func (h *DraftHandler) SaveDraft(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var d draft.Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pedido inválido"})
		return
	}

	d.UserID = userID.String()

	if err := h.drafts.SaveDraft(c.Request.Context(), &d); err != nil {
		log.Printf("[DraftHandler] save failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao guardar rascunho"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": d.ID})
}

func (h *DraftHandler) GetDraft(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	d, err := h.drafts.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		if isRedisNil(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rascunho não encontrado"})
			return
		}
		log.Printf("[DraftHandler] get failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao carregar rascunho"})
		return
	}
	if d.UserID != userID.String() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rascunho não encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": d})
}

func (h *DraftHandler) UpdateDraft(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id := c.Param("id")

	existing, err := h.drafts.GetDraft(c.Request.Context(), id)
	if err != nil || existing.UserID != userID.String() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rascunho não encontrado"})
		return
	}

	var d draft.Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pedido inválido"})
		return
	}

	d.ID = id
	d.UserID = existing.UserID
	d.CreatedAt = existing.CreatedAt

	if err := h.drafts.UpdateDraft(c.Request.Context(), &d); err != nil {
		log.Printf("[DraftHandler] update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao guardar rascunho"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *DraftHandler) DeleteDraft(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	id := c.Param("id")

	existing, err := h.drafts.GetDraft(c.Request.Context(), id)
	if err != nil || existing.UserID != userID.String() {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rascunho não encontrado"})
		return
	}

	if err := h.drafts.DeleteDraft(c.Request.Context(), id); err != nil {
		log.Printf("[DraftHandler] delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao eliminar rascunho"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

func isRedisNil(err error) bool {
	return errors.Is(err, redis.Nil)
}
