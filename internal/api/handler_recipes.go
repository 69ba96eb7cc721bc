package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"manufacturing-backend/internal/record"
)

// GetRecipes handles GET /recipes with parents inlined.
func (h *Handler) GetRecipes(c *gin.Context) {
	recipes, err := h.store.Recipes().List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, record.FromRecipes(recipes))
}

// GetRecipe handles GET /recipes/:id.
func (h *Handler) GetRecipe(c *gin.Context) {
	id, err := pathID(c, "Recipe")
	if err != nil {
		_ = c.Error(err)
		return
	}
	recipe, err := h.store.Recipes().Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, record.FromRecipe(recipe))
}

// CreateRecipe handles POST /recipes. References are checked before insert.
func (h *Handler) CreateRecipe(c *gin.Context) {
	fields, err := bindFields(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	recipe, err := h.guard.CreateRecipe(c.Request.Context(), fields)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, record.FromRecipe(recipe))
}

// UpdateRecipe handles PUT /recipes/:id.
func (h *Handler) UpdateRecipe(c *gin.Context) {
	id, err := pathID(c, "Recipe")
	if err != nil {
		_ = c.Error(err)
		return
	}
	fields, err := bindFields(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	recipe, err := h.guard.UpdateRecipe(c.Request.Context(), id, fields)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, record.FromRecipe(recipe))
}

// DeleteRecipe handles DELETE /recipes/:id. Parents are kept.
func (h *Handler) DeleteRecipe(c *gin.Context) {
	id, err := pathID(c, "Recipe")
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.guard.DeleteRecipe(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, record.Deleted("Recipe"))
}
