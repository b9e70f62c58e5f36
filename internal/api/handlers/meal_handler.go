package handlers

import (
	"foodflow/domain"
	"foodflow/internal/api/presenters"
	"foodflow/pkg/meal"

	"github.com/gofiber/fiber/v2"
)

type (
	MealHandler interface {
		GetMeals(c *fiber.Ctx) error
		GetMealDetail(c *fiber.Ctx) error
		GetSuggestions(c *fiber.Ctx) error
	}

	mealHandler struct {
		mealService meal.MealService
	}
)

func NewMealHandler(mealService meal.MealService) MealHandler {
	return &mealHandler{mealService: mealService}
}

func (h *mealHandler) GetMeals(c *fiber.Ctx) error {
	meals := h.mealService.ListMeals(c.UserContext(), c.Query("category", domain.MealCategoryAll), c.Query("q"))
	return presenters.SuccessResponse(c, meals, fiber.StatusOK, domain.MessageSuccessGetMeals)
}

func (h *mealHandler) GetMealDetail(c *fiber.Ctx) error {
	res, err := h.mealService.GetMeal(c.UserContext(), c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetMealDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMealDetail)
}

func (h *mealHandler) GetSuggestions(c *fiber.Ctx) error {
	res, err := h.mealService.Suggestions(c.UserContext(), currentUserID(c))
	if err != nil {
		return presenters.ErrorResponse(c, statusFor(err), domain.MessageFailedGetSuggestions, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetSuggestions)
}
