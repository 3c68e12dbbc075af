package models

import "encoding/json"

// Recipe is a single cookbook entry.
type Recipe struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`

	// JSON string field for DB storage
	IngredientsJSON string `json:"-"`
}

// PrepareForSave marshals the ingredient list into its JSON string for DB storage.
func (r *Recipe) PrepareForSave() {
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	b, _ := json.Marshal(r.Ingredients)
	r.IngredientsJSON = string(b)
}

// PrepareForAPI unmarshals the stored JSON string back into the ingredient list.
func (r *Recipe) PrepareForAPI() {
	if r.IngredientsJSON != "" {
		json.Unmarshal([]byte(r.IngredientsJSON), &r.Ingredients)
	}
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
}
