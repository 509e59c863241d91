package services

import (
	"context"
	"log/slog"
	"strings"

	"dailydiet/internal/models"
	"dailydiet/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateMealInput is the payload of a meal creation.
type CreateMealInput struct {
	Description string `json:"description" validate:"required"`
	DateAndHour string `json:"dateAndHour" validate:"required,timestamp"`
	InOrOutDiet string `json:"inOrOutDiet" validate:"required,oneof=in out"`
}

// UpdateMealInput is the payload of a partial meal update. Absent fields are
// left unchanged.
type UpdateMealInput struct {
	Description *string `json:"description" validate:"omitnil,min=1"`
	DateAndHour *string `json:"dateAndHour" validate:"omitnil,timestamp"`
	InOrOutDiet *string `json:"inOrOutDiet" validate:"omitnil,oneof=in out"`
}

func (in UpdateMealInput) patch() models.MealPatch {
	p := models.MealPatch{
		Description: in.Description,
		DateAndHour: in.DateAndHour,
	}
	if in.InOrOutDiet != nil {
		d := models.Diet(*in.InOrOutDiet)
		p.InOrOutDiet = &d
	}
	return p
}

// MealService handles business logic related to meals. Every operation is
// scoped to the caller's session.
type MealService struct {
	repo     repositories.MealRepository
	events   EventPublisher
	validate *validator.Validate
	order    repositories.Order
}

// NewMealService creates a new MealService. events may be nil.
func NewMealService(repo repositories.MealRepository, events EventPublisher, order repositories.Order) *MealService {
	return &MealService{
		repo:     repo,
		events:   events,
		validate: NewValidator(),
		order:    order,
	}
}

// Create stores a new meal owned by the session and returns it.
func (s *MealService) Create(ctx context.Context, sess Session, in CreateMealInput) (*models.Meal, error) {
	if err := sess.authorize(); err != nil {
		return nil, err
	}
	in.DateAndHour = strings.TrimSpace(in.DateAndHour)
	if err := s.validate.Struct(in); err != nil {
		return nil, toValidationError(err)
	}

	meal := &models.Meal{
		UserID:      sess.UserID,
		MealID:      uuid.New().String(),
		Description: in.Description,
		DateAndHour: in.DateAndHour,
		InOrOutDiet: models.Diet(in.InOrOutDiet),
	}
	if err := s.repo.Create(ctx, meal); err != nil {
		return nil, &StoreError{Op: "create meal", Err: err}
	}

	slog.Debug("meal created", "userId", sess.UserID, "mealId", meal.MealID)
	publish(s.events, EventMealCreated, sess.UserID, meal.MealID)
	return meal, nil
}

// List returns every meal owned by the session.
func (s *MealService) List(ctx context.Context, sess Session) ([]models.Meal, error) {
	if err := sess.authorize(); err != nil {
		return nil, err
	}
	meals, err := s.repo.ListByUser(ctx, sess.UserID, s.order)
	if err != nil {
		return nil, &StoreError{Op: "list meals", Err: err}
	}
	return meals, nil
}

// Get returns the session's meal with mealID. Not found is an empty slice.
func (s *MealService) Get(ctx context.Context, sess Session, mealID string) ([]models.Meal, error) {
	mealID, err := s.checkMealRequest(sess, mealID)
	if err != nil {
		return nil, err
	}
	meals, err := s.repo.GetByUser(ctx, sess.UserID, mealID)
	if err != nil {
		return nil, &StoreError{Op: "get meal", Err: err}
	}
	return meals, nil
}

// Update applies the provided fields to the session's meal with mealID. It
// is a no-op when no meal matches, and reports whether a meal matched.
func (s *MealService) Update(ctx context.Context, sess Session, mealID string, in UpdateMealInput) (bool, error) {
	mealID, err := s.checkMealRequest(sess, mealID)
	if err != nil {
		return false, err
	}
	if in.DateAndHour != nil {
		trimmed := strings.TrimSpace(*in.DateAndHour)
		in.DateAndHour = &trimmed
	}
	if err := s.validate.Struct(in); err != nil {
		return false, toValidationError(err)
	}

	patch := in.patch()
	if patch.Empty() {
		return false, nil
	}
	n, err := s.repo.Update(ctx, sess.UserID, mealID, patch)
	if err != nil {
		return false, &StoreError{Op: "update meal", Err: err}
	}
	if n > 0 {
		publish(s.events, EventMealUpdated, sess.UserID, mealID)
	}
	return n > 0, nil
}

// Delete removes the session's meal with mealID. Deleting a missing meal
// succeeds; the result reports whether a meal was removed.
func (s *MealService) Delete(ctx context.Context, sess Session, mealID string) (bool, error) {
	mealID, err := s.checkMealRequest(sess, mealID)
	if err != nil {
		return false, err
	}
	n, err := s.repo.Delete(ctx, sess.UserID, mealID)
	if err != nil {
		return false, &StoreError{Op: "delete meal", Err: err}
	}
	if n > 0 {
		publish(s.events, EventMealDeleted, sess.UserID, mealID)
	}
	return n > 0, nil
}

// Metrics computes the session's meal counts and longest in-diet streak,
// freshly from the store.
func (s *MealService) Metrics(ctx context.Context, sess Session) (models.Metrics, error) {
	meals, err := s.List(ctx, sess)
	if err != nil {
		return models.Metrics{}, err
	}
	return ComputeMetrics(meals), nil
}

// checkMealRequest authorizes sess and returns mealID in canonical form.
func (s *MealService) checkMealRequest(sess Session, mealID string) (string, error) {
	if err := sess.authorize(); err != nil {
		return "", err
	}
	id, ok := CanonicalID(mealID)
	if !ok {
		return "", newFieldError("mealId", "mealId must be a valid UUID")
	}
	return id, nil
}
