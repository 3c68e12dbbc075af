package handlers

import (
	"net/http"

	"github.com/bookcook/api/internal/models"
	"github.com/bookcook/api/internal/services"
	"github.com/bookcook/api/internal/validate"
	"github.com/go-chi/chi/v5"
)

// RecipeHandler handles HTTP requests related to recipes.
type RecipeHandler struct {
	service services.RecipeServiceProvider
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(service services.RecipeServiceProvider) *RecipeHandler {
	return &RecipeHandler{service: service}
}

// GetAll handles the request to get all recipes.
func (h *RecipeHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.service.GetAllRecipes(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

// Get handles the request to get a single recipe by its ID.
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := validate.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	recipe, err := h.service.GetRecipeByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

// Create handles the request to create a new recipe.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRecipeRequest
	if err := validate.DecodeShape(r.Body, &req, models.CreateRecipeKeys...); err != nil {
		writeError(w, r, err)
		return
	}

	recipe, err := h.service.CreateRecipe(r.Context(), models.Recipe{
		ID:          *req.ID,
		Name:        req.Name,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"id": recipe.ID})
}

// Update handles the request to replace an existing recipe.
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := validate.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.UpdateRecipeRequest
	if err := validate.DecodeShape(r.Body, &req, models.UpdateRecipeKeys...); err != nil {
		writeError(w, r, err)
		return
	}

	err = h.service.UpdateRecipe(r.Context(), id, models.Recipe{Name: req.Name, Ingredients: req.Ingredients})
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles the request to delete a recipe.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := validate.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.service.DeleteRecipe(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
