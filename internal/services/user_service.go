package services

import (
	"context"
	"errors"
	"log/slog"

	"dailydiet/internal/models"
	"dailydiet/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// RegisterUserInput is the payload of a registration.
type RegisterUserInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

// UserService handles user registration.
type UserService struct {
	userRepo repositories.UserRepository
	events   EventPublisher
	validate *validator.Validate
}

// NewUserService creates a new UserService. events may be nil.
func NewUserService(userRepo repositories.UserRepository, events EventPublisher) *UserService {
	return &UserService{
		userRepo: userRepo,
		events:   events,
		validate: NewValidator(),
	}
}

// Register stores a user whose ID is the session identifier, so the cookie
// and the user record always agree.
func (s *UserService) Register(ctx context.Context, sess Session, in RegisterUserInput) (*models.User, error) {
	if err := sess.authorize(); err != nil {
		return nil, err
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, toValidationError(err)
	}

	user := &models.User{ID: sess.UserID, Name: in.Name}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateUser) {
			return nil, ErrUserExists
		}
		return nil, &StoreError{Op: "create user", Err: err}
	}

	slog.Info("user registered", "userId", user.ID)
	publish(s.events, EventUserRegistered, user.ID, "")
	return user, nil
}
