package repositories

import (
	"context"

	"dailydiet/internal/models"
)

// Order selects the order in which a user's meals are returned.
type Order int

const (
	// OrderInsertion returns meals in the order they were created.
	OrderInsertion Order = iota
	// OrderChronological returns meals sorted by the instant dateAndHour
	// denotes, ties broken by insertion order.
	OrderChronological
)

// MealRepository defines the interface for meal data access. Every read and
// write is scoped to a single owner.
type MealRepository interface {
	Create(ctx context.Context, meal *models.Meal) error
	ListByUser(ctx context.Context, userID string, order Order) ([]models.Meal, error)
	// GetByUser returns zero or one meals.
	GetByUser(ctx context.Context, userID, mealID string) ([]models.Meal, error)
	// Update applies patch and returns the number of rows it matched.
	Update(ctx context.Context, userID, mealID string, patch models.MealPatch) (int64, error)
	// Delete removes the meal and returns the number of rows removed.
	Delete(ctx context.Context, userID, mealID string) (int64, error)
}
