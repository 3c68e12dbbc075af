package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bookcook/api/internal/models"
	"github.com/bookcook/api/internal/store"
)

// RecipeStore is a store.Recipes backed by the recipes table.
type RecipeStore struct {
	db *sql.DB
}

// NewRecipeStore creates a new RecipeStore.
func NewRecipeStore(db *sql.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

func scanRecipe(row scanner) (models.Recipe, error) {
	var recipe models.Recipe
	if err := row.Scan(&recipe.ID, &recipe.Name, &recipe.IngredientsJSON); err != nil {
		return models.Recipe{}, err
	}
	recipe.PrepareForAPI()
	return recipe, nil
}

// FindAll retrieves all recipes ordered by ID.
func (s *RecipeStore) FindAll(ctx context.Context) ([]models.Recipe, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, ingredients_json FROM recipes ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := []models.Recipe{}
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	return recipes, rows.Err()
}

// FindOne retrieves a single recipe by its ID.
func (s *RecipeStore) FindOne(ctx context.Context, id int) (models.Recipe, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, ingredients_json FROM recipes WHERE id = ?", id)
	recipe, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Recipe{}, store.ErrNotFound
	}
	return recipe, err
}

// Insert adds a new recipe.
func (s *RecipeStore) Insert(ctx context.Context, recipe models.Recipe) error {
	recipe.PrepareForSave()
	_, err := s.db.ExecContext(ctx, "INSERT INTO recipes (id, name, ingredients_json) VALUES (?, ?, ?)",
		recipe.ID, recipe.Name, recipe.IngredientsJSON)
	if isUniqueViolation(err) {
		return store.ErrDuplicate
	}
	return err
}

// Update replaces the recipe stored under id.
func (s *RecipeStore) Update(ctx context.Context, id int, recipe models.Recipe) error {
	recipe.PrepareForSave()
	res, err := s.db.ExecContext(ctx, "UPDATE recipes SET id = ?, name = ?, ingredients_json = ? WHERE id = ?",
		recipe.ID, recipe.Name, recipe.IngredientsJSON, id)
	if isUniqueViolation(err) {
		return store.ErrDuplicate
	}
	if err != nil {
		return err
	}
	return affectedOne(res)
}

// Delete removes a recipe.
func (s *RecipeStore) Delete(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM recipes WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affectedOne(res)
}
