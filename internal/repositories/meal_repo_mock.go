package repositories

import (
	"context"
	"sort"
	"sync"

	"dailydiet/internal/models"

	"github.com/google/uuid"
)

// MockMealRepository is an in-memory implementation of MealRepository.
// Meals are kept in insertion order.
type MockMealRepository struct {
	meals   []models.Meal
	nextSeq uint64
	mu      sync.RWMutex
}

// NewMockMealRepository creates a new instance of MockMealRepository.
func NewMockMealRepository() *MockMealRepository {
	return &MockMealRepository{}
}

// Create appends a new meal.
func (r *MockMealRepository) Create(_ context.Context, meal *models.Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if meal.MealID == "" {
		meal.MealID = uuid.New().String()
	}
	meal.SetEatenAt()
	r.nextSeq++
	meal.Seq = r.nextSeq
	r.meals = append(r.meals, *meal)
	return nil
}

// ListByUser returns the meals owned by userID.
func (r *MockMealRepository) ListByUser(_ context.Context, userID string, order Order) ([]models.Meal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meals := make([]models.Meal, 0)
	for _, m := range r.meals {
		if m.UserID == userID {
			meals = append(meals, m)
		}
	}
	if order == OrderChronological {
		sort.SliceStable(meals, func(i, j int) bool {
			return meals[i].EatenAt < meals[j].EatenAt
		})
	}
	return meals, nil
}

// GetByUser returns the meal identified by (userID, mealID), if any.
func (r *MockMealRepository) GetByUser(_ context.Context, userID, mealID string) ([]models.Meal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meals := make([]models.Meal, 0, 1)
	if i := r.indexOf(userID, mealID); i >= 0 {
		meals = append(meals, r.meals[i])
	}
	return meals, nil
}

// Update merges patch onto the matching meal.
func (r *MockMealRepository) Update(_ context.Context, userID, mealID string, patch models.MealPatch) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(userID, mealID)
	if i < 0 || patch.Empty() {
		return 0, nil
	}
	patch.Apply(&r.meals[i])
	return 1, nil
}

// Delete removes the matching meal.
func (r *MockMealRepository) Delete(_ context.Context, userID, mealID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(userID, mealID)
	if i < 0 {
		return 0, nil
	}
	r.meals = append(r.meals[:i], r.meals[i+1:]...)
	return 1, nil
}

// indexOf must be called with r.mu held.
func (r *MockMealRepository) indexOf(userID, mealID string) int {
	for i, m := range r.meals {
		if m.UserID == userID && m.MealID == mealID {
			return i
		}
	}
	return -1
}
