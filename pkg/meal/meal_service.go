package meal

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"foodflow/domain"
)

type (
	// InventoryLister is the part of the item store meal suggestions read.
	InventoryLister interface {
		ListItems(ctx context.Context, userID string, location domain.Location) ([]domain.InventoryItem, error)
	}

	MealService interface {
		ListMeals(ctx context.Context, category string, query string) []domain.Meal
		GetMeal(ctx context.Context, id string) (domain.Meal, error)
		Suggestions(ctx context.Context, userID string) (domain.MealSuggestionResponse, error)
	}

	mealService struct {
		meals     []domain.Meal
		inventory InventoryLister
	}
)

func NewMealService(inventory InventoryLister) MealService {
	return &mealService{meals: catalog, inventory: inventory}
}

func cloneMeal(m domain.Meal) domain.Meal {
	m.TotalIngredients = len(m.Ingredients)
	m.Tags = slices.Clone(m.Tags)
	m.Ingredients = slices.Clone(m.Ingredients)
	m.Instructions = slices.Clone(m.Instructions)
	return m
}

// ListMeals filters by category, then by a case-insensitive name match.
// Category "All" or blank and a blank query keep everything.
func (s *mealService) ListMeals(ctx context.Context, category string, query string) []domain.Meal {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]domain.Meal, 0, len(s.meals))
	for _, m := range s.meals {
		if category != "" && category != domain.MealCategoryAll && m.Category != category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(m.Name), q) {
			continue
		}
		out = append(out, cloneMeal(m))
	}
	return out
}

func (s *mealService) GetMeal(ctx context.Context, id string) (domain.Meal, error) {
	for _, m := range s.meals {
		if m.ID == id {
			return cloneMeal(m), nil
		}
	}
	return domain.Meal{}, domain.ErrMealNotFound
}

// Suggestions ranks meals by how many of their ingredients the user has in
// stock. An ingredient counts when an item has the same name, ignoring case.
func (s *mealService) Suggestions(ctx context.Context, userID string) (domain.MealSuggestionResponse, error) {
	if userID == "" {
		return domain.MealSuggestionResponse{}, domain.ErrUnauthenticated
	}

	items, err := s.inventory.ListItems(ctx, userID, domain.LocationAll)
	if err != nil {
		return domain.MealSuggestionResponse{}, err
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, strings.TrimSpace(item.Name))
	}

	meals := make([]domain.Meal, 0, len(s.meals))
	for _, m := range s.meals {
		m = cloneMeal(m)
		for _, ing := range m.Ingredients {
			if inStock(names, ing) {
				m.IngredientsUsed++
			}
		}
		meals = append(meals, m)
	}

	slices.SortStableFunc(meals, func(a, b domain.Meal) int {
		return cmp.Compare(b.IngredientsUsed, a.IngredientsUsed)
	})
	return domain.MealSuggestionResponse{Meals: meals, InventoryItems: len(items)}, nil
}

func inStock(names []string, ingredient string) bool {
	return slices.ContainsFunc(names, func(n string) bool {
		return strings.EqualFold(n, ingredient)
	})
}
