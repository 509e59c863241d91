package handlers

import (
	"dailydiet/internal/middleware"
	"dailydiet/internal/services"

	"github.com/gofiber/fiber/v2"
)

// MealHandler handles HTTP requests for meals.
type MealHandler struct {
	service *services.MealService
}

// NewMealHandler creates a new MealHandler.
func NewMealHandler(service *services.MealService) *MealHandler {
	return &MealHandler{
		service: service,
	}
}

// RegisterRoutes registers the meal routes behind requireSession.
func (h *MealHandler) RegisterRoutes(router fiber.Router, requireSession fiber.Handler) {
	mealRoutes := router.Group("/meals", requireSession)
	// Registered before /:mealId so "metrics" is not taken for an ID.
	mealRoutes.Get("/metrics", h.HandleGetMetrics)
	mealRoutes.Post("/", h.HandleCreateMeal)
	mealRoutes.Get("/", h.HandleGetMeals)
	mealRoutes.Get("/:mealId", h.HandleGetMealByID)
	mealRoutes.Put("/:mealId", h.HandleUpdateMeal)
	mealRoutes.Delete("/:mealId", h.HandleDeleteMeal)
}

// HandleCreateMeal creates a meal owned by the caller.
func (h *MealHandler) HandleCreateMeal(c *fiber.Ctx) error {
	var req services.CreateMealInput
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}

	if _, err := h.service.Create(c.UserContext(), middleware.SessionFrom(c), req); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// HandleGetMeals lists the caller's meals.
func (h *MealHandler) HandleGetMeals(c *fiber.Ctx) error {
	meals, err := h.service.List(c.UserContext(), middleware.SessionFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"meals": meals,
	})
}

// HandleGetMealByID returns the caller's meal as a list of zero or one
// entries; an empty list means not found.
func (h *MealHandler) HandleGetMealByID(c *fiber.Ctx) error {
	meal, err := h.service.Get(c.UserContext(), middleware.SessionFrom(c), c.Params("mealId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"meal": meal,
	})
}

// HandleUpdateMeal applies the fields present in the body. Updating a meal
// that does not exist is a no-op.
func (h *MealHandler) HandleUpdateMeal(c *fiber.Ctx) error {
	var req services.UpdateMealInput
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}

	if _, err := h.service.Update(c.UserContext(), middleware.SessionFrom(c), c.Params("mealId"), req); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// HandleDeleteMeal deletes the caller's meal. Deleting a meal that does not
// exist succeeds.
func (h *MealHandler) HandleDeleteMeal(c *fiber.Ctx) error {
	if _, err := h.service.Delete(c.UserContext(), middleware.SessionFrom(c), c.Params("mealId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// HandleGetMetrics returns the caller's meal counts and best in-diet streak.
func (h *MealHandler) HandleGetMetrics(c *fiber.Ctx) error {
	metrics, err := h.service.Metrics(c.UserContext(), middleware.SessionFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(metrics)
}
