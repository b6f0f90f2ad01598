// Package recipes serves the crawled recipe collection embedded with the
// binary.
package recipes

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

//go:embed recipes.json
var recipesJSON []byte

type Recipe struct {
	Slug         string      `json:"slug"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Category     string      `json:"category"`
	Time         string      `json:"time"`
	Servings     string      `json:"servings,omitempty"`
	Ingredients  Ingredients `json:"ingredients"`
	Instructions []string    `json:"instructions"`
	Equipment    []string    `json:"equipment"`
	Garnish      []string    `json:"garnish,omitempty"`
}

// IngredientSection groups ingredients under a heading. Recipes with a flat
// ingredient list have a single untitled section.
type IngredientSection struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// Ingredients accepts both the flat-array and the titled-sections JSON
// shapes used across the crawled data.
type Ingredients struct {
	Sections []IngredientSection
}

func (in *Ingredients) UnmarshalJSON(data []byte) error {
	var flat []string
	if err := json.Unmarshal(data, &flat); err == nil {
		in.Sections = []IngredientSection{{Items: flat}}
		return nil
	}

	var grouped map[string][]string
	if err := json.Unmarshal(data, &grouped); err != nil {
		return fmt.Errorf("ingredients must be a list or titled sections: %w", err)
	}

	titles := make([]string, 0, len(grouped))
	for title := range grouped {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	in.Sections = make([]IngredientSection, 0, len(titles))
	for _, title := range titles {
		in.Sections = append(in.Sections, IngredientSection{Title: title, Items: grouped[title]})
	}
	return nil
}

func (in Ingredients) MarshalJSON() ([]byte, error) {
	if len(in.Sections) == 1 && in.Sections[0].Title == "" {
		return json.Marshal(in.Sections[0].Items)
	}
	grouped := make(map[string][]string, len(in.Sections))
	for _, s := range in.Sections {
		grouped[s.Title] = s.Items
	}
	return json.Marshal(grouped)
}

// Flatten returns all ingredients regardless of grouping.
func (in Ingredients) Flatten() []string {
	var out []string
	for _, s := range in.Sections {
		out = append(out, s.Items...)
	}
	return out
}

// Library provides read access over the recipe collection.
type Library struct {
	recipes []Recipe
}

func Load() (*Library, error) {
	var recipes []Recipe
	if err := json.Unmarshal(recipesJSON, &recipes); err != nil {
		return nil, fmt.Errorf("parse recipes: %w", err)
	}
	return &Library{recipes: recipes}, nil
}

func (l *Library) All() []Recipe {
	return l.recipes
}

func (l *Library) BySlug(slug string) *Recipe {
	for i := range l.recipes {
		if l.recipes[i].Slug == slug {
			return &l.recipes[i]
		}
	}
	return nil
}

func (l *Library) ByCategory(category string) []Recipe {
	var out []Recipe
	for _, r := range l.recipes {
		if strings.EqualFold(r.Category, category) {
			out = append(out, r)
		}
	}
	return out
}

// Categories returns the distinct categories, sorted.
func (l *Library) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range l.recipes {
		if !seen[r.Category] {
			seen[r.Category] = true
			out = append(out, r.Category)
		}
	}
	sort.Strings(out)
	return out
}

func (l *Library) CategoryCounts() map[string]int {
	counts := map[string]int{}
	for _, r := range l.recipes {
		counts[r.Category]++
	}
	return counts
}
