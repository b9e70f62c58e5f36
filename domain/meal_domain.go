package domain

import "errors"

var (
	MessageSuccessGetMeals       = "meals retrieved successfully"
	MessageSuccessGetMealDetail  = "meal retrieved successfully"
	MessageSuccessGetSuggestions = "meal suggestions retrieved successfully"

	MessageFailedGetMeals       = "failed to retrieve meals"
	MessageFailedGetMealDetail  = "failed to retrieve meal"
	MessageFailedGetSuggestions = "failed to retrieve meal suggestions"

	ErrMealNotFound = errors.New("meal not found")

	MealCategoryAll = "All"
)

type (
	Meal struct {
		ID               string   `json:"id"`
		Name             string   `json:"name"`
		ImageURL         string   `json:"image_url"`
		Category         string   `json:"category"`
		PrepTimeMinutes  int      `json:"prep_time_minutes"`
		IngredientsUsed  int      `json:"ingredients_used"`
		TotalIngredients int      `json:"total_ingredients"`
		Tags             []string `json:"tags"`
		Calories         int      `json:"calories"`
		Ingredients      []string `json:"ingredients"`
		Instructions     []string `json:"instructions"`
	}

	MealSuggestionResponse struct {
		Meals          []Meal `json:"meals"`
		InventoryItems int    `json:"inventory_items"`
	}
)
