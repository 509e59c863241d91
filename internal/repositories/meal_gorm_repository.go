package repositories

import (
	"context"
	"fmt"

	"dailydiet/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ForUser returns a GORM scope that filters meals by owner.
func ForUser(userID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{Column: clause.Column{Name: "userId"}, Value: userID})
	}
}

func byMealID(mealID string) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: "mealId"}, Value: mealID}
}

// GORMMealRepository is a GORM implementation of MealRepository.
type GORMMealRepository struct {
	db *gorm.DB
}

// NewGORMMealRepository creates a new instance of GORMMealRepository.
func NewGORMMealRepository(db *gorm.DB) *GORMMealRepository {
	return &GORMMealRepository{
		db: db,
	}
}

// Create inserts a new meal. A missing meal ID is generated.
func (r *GORMMealRepository) Create(ctx context.Context, meal *models.Meal) error {
	if meal.MealID == "" {
		meal.MealID = uuid.New().String()
	}
	meal.SetEatenAt()
	if err := r.db.WithContext(ctx).Create(meal).Error; err != nil {
		return fmt.Errorf("failed to create meal: %w", err)
	}
	return nil
}

// ListByUser returns every meal owned by userID.
func (r *GORMMealRepository) ListByUser(ctx context.Context, userID string, order Order) ([]models.Meal, error) {
	q := r.db.WithContext(ctx).Scopes(ForUser(userID))
	if order == OrderChronological {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: "eatenAt"}})
	}
	q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: "seq"}})

	meals := make([]models.Meal, 0)
	if err := q.Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("failed to list meals for user %s: %w", userID, err)
	}
	return meals, nil
}

// GetByUser returns the meal identified by (userID, mealID), if any.
func (r *GORMMealRepository) GetByUser(ctx context.Context, userID, mealID string) ([]models.Meal, error) {
	meals := make([]models.Meal, 0, 1)
	err := r.db.WithContext(ctx).
		Scopes(ForUser(userID)).
		Where(byMealID(mealID)).
		Limit(1).
		Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get meal %s: %w", mealID, err)
	}
	return meals, nil
}

// Update sets only the columns present in patch.
func (r *GORMMealRepository) Update(ctx context.Context, userID, mealID string, patch models.MealPatch) (int64, error) {
	if patch.Empty() {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&models.Meal{}).
		Scopes(ForUser(userID)).
		Where(byMealID(mealID)).
		Updates(patch.Columns())
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update meal %s: %w", mealID, res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes the meal identified by (userID, mealID).
func (r *GORMMealRepository) Delete(ctx context.Context, userID, mealID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Scopes(ForUser(userID)).
		Where(byMealID(mealID)).
		Delete(&models.Meal{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete meal %s: %w", mealID, res.Error)
	}
	return res.RowsAffected, nil
}
