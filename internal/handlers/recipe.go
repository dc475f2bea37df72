package handlers

import (
	"errors"
	"io"
	"log"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/recipebox-dev/recipebox/internal/imagestore"
	"github.com/recipebox-dev/recipebox/internal/models"
	"github.com/recipebox-dev/recipebox/internal/store"
	"github.com/recipebox-dev/recipebox/internal/utils"
)

// ImageStore persists validated upload payloads.
type ImageStore interface {
	Save(r io.Reader, originalName string) (string, error)
	Remove(relPath string) error
}

type AttributeRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreateRecipeRequest struct {
	Title       string             `json:"title" binding:"required"`
	TimeMinutes *int               `json:"time_minutes" binding:"required,gte=0"`
	Price       *float64           `json:"price" binding:"required,gte=0,lt=1000"`
	Description string             `json:"description"`
	Link        string             `json:"link"`
	Tags        []AttributeRequest `json:"tags" binding:"omitempty,dive"`
	Ingredients []AttributeRequest `json:"ingredients" binding:"omitempty,dive"`
}

// UpdateRecipeRequest distinguishes absent fields from zero values:
// a nil pointer means "leave it alone". For Tags and Ingredients an
// explicit empty list clears the association set, while omitting the
// key keeps it.
type UpdateRecipeRequest struct {
	Title       *string             `json:"title"`
	TimeMinutes *int                `json:"time_minutes" binding:"omitempty,gte=0"`
	Price       *float64            `json:"price" binding:"omitempty,gte=0,lt=1000"`
	Description *string             `json:"description"`
	Link        *string             `json:"link"`
	Tags        *[]AttributeRequest `json:"tags" binding:"omitempty,dive"`
	Ingredients *[]AttributeRequest `json:"ingredients" binding:"omitempty,dive"`
}

type RecipeSummary struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	TimeMinutes int               `json:"time_minutes"`
	Price       float64           `json:"price"`
	Link        string            `json:"link"`
	Image       string            `json:"image"`
	Tags        []store.Attribute `json:"tags"`
	Ingredients []store.Attribute `json:"ingredients"`
}

type RecipeDetail struct {
	RecipeSummary
	Description string `json:"description"`
}

type RecipeHandler struct {
	recipes store.RecipeStore
	images  ImageStore
}

func NewRecipeHandler(recipes store.RecipeStore, images ImageStore) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, images: images}
}

func recipeSummary(recipe models.Recipe) RecipeSummary {
	tags := make([]store.Attribute, 0, len(recipe.Tags))

	for _, tag := range recipe.Tags {
		tags = append(tags, store.Attribute{ID: tag.ID, Name: tag.Name})
	}

	ingredients := make([]store.Attribute, 0, len(recipe.Ingredients))

	for _, ingredient := range recipe.Ingredients {
		ingredients = append(ingredients, store.Attribute{ID: ingredient.ID, Name: ingredient.Name})
	}

	return RecipeSummary{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Image:       recipe.Image,
		Tags:        tags,
		Ingredients: ingredients,
	}
}

func recipeDetail(recipe models.Recipe) RecipeDetail {
	return RecipeDetail{
		RecipeSummary: recipeSummary(recipe),
		Description:   recipe.Description,
	}
}

// validPrice rejects values that do not fit decimal(5,2).
func validPrice(price float64) bool {
	scaled := price * 100

	return math.Abs(scaled-math.Round(scaled)) < 1e-9
}

func attributeNames(attrs []AttributeRequest) []string {
	names := make([]string, 0, len(attrs))

	for _, attr := range attrs {
		names = append(names, attr.Name)
	}

	return names
}

func (h *RecipeHandler) List(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	tagIDs, err := utils.ParseIDList(ctx.Query("tags"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "tags"})
		return
	}

	ingredientIDs, err := utils.ParseIDList(ctx.Query("ingredients"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "ingredients"})
		return
	}

	recipes, err := h.recipes.List(ctx.Request.Context(), userID, store.RecipeFilter{
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
	})

	if err != nil {
		log.Printf("Failed to list recipes: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recipes"})
		return
	}

	response := make([]RecipeSummary, 0, len(recipes))

	for _, recipe := range recipes {
		response = append(response, recipeSummary(recipe))
	}

	ctx.JSON(http.StatusOK, response)
}

func (h *RecipeHandler) Create(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateRecipeRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "title, time_minutes and price are required"})
		return
	}

	if !validPrice(*body.Price) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "price must have at most 2 decimal places", "field": "price"})
		return
	}

	recipe := models.Recipe{
		Title:       body.Title,
		Description: body.Description,
		TimeMinutes: *body.TimeMinutes,
		Price:       *body.Price,
		Link:        body.Link,
	}

	created, err := h.recipes.Create(
		ctx.Request.Context(),
		userID,
		recipe,
		attributeNames(body.Tags),
		attributeNames(body.Ingredients),
	)

	if err != nil {
		log.Printf("Failed to create recipe: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}

	ctx.JSON(http.StatusCreated, recipeDetail(created))
}

func (h *RecipeHandler) Get(ctx *gin.Context) {
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

	recipe, err := h.recipes.Get(ctx.Request.Context(), userID, id)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		log.Printf("Failed to fetch recipe: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recipe"})
		return
	}

	ctx.JSON(http.StatusOK, recipeDetail(recipe))
}

// Update serves both PUT and PATCH: only keys present in the payload are
// written, for either verb.
func (h *RecipeHandler) Update(ctx *gin.Context) {
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

	var body UpdateRecipeRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.Price != nil && !validPrice(*body.Price) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "price must have at most 2 decimal places", "field": "price"})
		return
	}

	changes := store.RecipeChanges{
		Title:       body.Title,
		Description: body.Description,
		TimeMinutes: body.TimeMinutes,
		Price:       body.Price,
		Link:        body.Link,
	}

	if body.Tags != nil {
		names := attributeNames(*body.Tags)
		changes.Tags = &names
	}

	if body.Ingredients != nil {
		names := attributeNames(*body.Ingredients)
		changes.Ingredients = &names
	}

	recipe, err := h.recipes.Update(ctx.Request.Context(), userID, id, changes)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		log.Printf("Failed to update recipe: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe"})
		return
	}

	ctx.JSON(http.StatusOK, recipeDetail(recipe))
}

func (h *RecipeHandler) Delete(ctx *gin.Context) {
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

	if err := h.recipes.Delete(ctx.Request.Context(), userID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		log.Printf("Failed to delete recipe: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (h *RecipeHandler) UploadImage(ctx *gin.Context) {
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

	fileHeader, err := ctx.FormFile("image")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "image file is required", "field": "image"})
		return
	}

	file, err := fileHeader.Open()

	if err != nil {
		log.Printf("Failed to open upload: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	defer file.Close()

	path, err := h.images.Save(file, fileHeader.Filename)

	if err != nil {
		if errors.Is(err, imagestore.ErrInvalidImage) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "upload is not a valid image", "field": "image"})
			return
		}
		log.Printf("Failed to store image: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	recipe, previous, err := h.recipes.SetImage(ctx.Request.Context(), userID, id, path)

	if err != nil {
		// the file was written before the ownership check resolved;
		// don't leave it behind
		if rmErr := h.images.Remove(path); rmErr != nil {
			log.Printf("Failed to remove orphaned image %s: %v", path, rmErr)
		}
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		log.Printf("Failed to attach image: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach image"})
		return
	}

	if previous != "" && previous != path {
		if rmErr := h.images.Remove(previous); rmErr != nil {
			log.Printf("Failed to remove replaced image %s: %v", previous, rmErr)
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"id": recipe.ID, "image": recipe.Image})
}
