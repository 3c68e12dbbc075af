package services

import (
	"context"
	"fmt"

	"github.com/bookcook/api/internal/models"
	"github.com/bookcook/api/internal/store"
)

// RecipeServiceProvider defines the interface for recipe services.
type RecipeServiceProvider interface {
	GetAllRecipes(ctx context.Context) ([]models.Recipe, error)
	GetRecipeByID(ctx context.Context, id int) (models.Recipe, error)
	CreateRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error)
	UpdateRecipe(ctx context.Context, id int, recipe models.Recipe) error
	DeleteRecipe(ctx context.Context, id int) error
}

// RecipeService provides business logic for the cookbook.
type RecipeService struct {
	recipes store.Recipes
	events  EventServiceProvider
}

// NewRecipeService creates a new RecipeService.
func NewRecipeService(recipes store.Recipes, events EventServiceProvider) *RecipeService {
	return &RecipeService{recipes: recipes, events: events}
}

// GetAllRecipes retrieves every recipe.
func (s *RecipeService) GetAllRecipes(ctx context.Context) ([]models.Recipe, error) {
	recipes, err := s.recipes.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	return recipes, nil
}

// GetRecipeByID retrieves a single recipe.
func (s *RecipeService) GetRecipeByID(ctx context.Context, id int) (models.Recipe, error) {
	recipe, err := s.recipes.FindOne(ctx, id)
	if err != nil {
		return models.Recipe{}, notFound(err, "Recipe", id)
	}
	return recipe, nil
}

// CreateRecipe inserts a recipe under its caller-supplied ID.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error) {
	if err := s.recipes.Insert(ctx, recipe); err != nil {
		return models.Recipe{}, fmt.Errorf("failed to create recipe %d: %w", recipe.ID, err)
	}
	record(ctx, s.events, "recipe.create", fmt.Sprintf("Recipe '%s' created.", recipe.Name), fmt.Sprintf("recipe:%d", recipe.ID))
	return recipe, nil
}

// UpdateRecipe replaces the recipe stored under id.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id int, recipe models.Recipe) error {
	recipe.ID = id
	if err := s.recipes.Update(ctx, id, recipe); err != nil {
		return notFound(err, "Recipe", id)
	}
	record(ctx, s.events, "recipe.update", fmt.Sprintf("Recipe '%s' updated.", recipe.Name), fmt.Sprintf("recipe:%d", id))
	return nil
}

// DeleteRecipe removes a recipe.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id int) error {
	if err := s.recipes.Delete(ctx, id); err != nil {
		return notFound(err, "Recipe", id)
	}
	record(ctx, s.events, "recipe.delete", fmt.Sprintf("Recipe %d deleted.", id), fmt.Sprintf("recipe:%d", id))
	return nil
}
