package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/recipebox-dev/recipebox/internal/store"
	"github.com/recipebox-dev/recipebox/internal/utils"
)

type UpdateAttributeRequest struct {
	Name string `json:"name" binding:"required"`
}

// AttributeHandler serves both tag and ingredient endpoints; the two
// differ only in the backing store and the noun used in messages.
type AttributeHandler struct {
	attrs store.AttributeStore
	kind  string
}

func NewTagHandler(attrs store.AttributeStore) *AttributeHandler {
	return &AttributeHandler{attrs: attrs, kind: "Tag"}
}

func NewIngredientHandler(attrs store.AttributeStore) *AttributeHandler {
	return &AttributeHandler{attrs: attrs, kind: "Ingredient"}
}

func (h *AttributeHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	assignedOnly, err := utils.ParseAssignedOnly(ctx.Query("assigned_only"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "assigned_only"})
		return
	}

	attrs, err := h.attrs.List(ctx.Request.Context(), userID, assignedOnly)

	if err != nil {
		log.Printf("Failed to list %ss: %v", h.kind, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve " + h.kind + "s"})
		return
	}

	if attrs == nil {
		attrs = []store.Attribute{}
	}

	ctx.JSON(http.StatusOK, attrs)
}

func (h *AttributeHandler) Update(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := utils.GetResourceID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateAttributeRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "name is required", "field": "name"})
		return
	}

	attr, err := h.attrs.Update(ctx.Request.Context(), userID, id, body.Name)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": h.kind + " not found"})
			return
		}
		log.Printf("Failed to update %s: %v", h.kind, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update " + h.kind})
		return
	}

	ctx.JSON(http.StatusOK, attr)
}

func (h *AttributeHandler) Delete(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, err := utils.GetResourceID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.attrs.Delete(ctx.Request.Context(), userID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": h.kind + " not found"})
			return
		}
		log.Printf("Failed to delete %s: %v", h.kind, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete " + h.kind})
		return
	}

	ctx.Status(http.StatusNoContent)
}
