package repositories_test

import (
	"context"
	"testing"

	"dailydiet/internal/models"
	"dailydiet/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUserRepository(t *testing.T, repo repositories.UserRepository) {
	ctx := context.Background()
	id := uuid.NewString()

	require.NoError(t, repo.Create(ctx, &models.User{ID: id, Name: "Ada"}))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)

	err = repo.Create(ctx, &models.User{ID: id, Name: "Ada again"})
	assert.ErrorIs(t, err, repositories.ErrDuplicateUser)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)

	generated := &models.User{Name: "Grace"}
	require.NoError(t, repo.Create(ctx, generated))
	assert.NotEmpty(t, generated.ID)
}

func TestGORMUserRepository(t *testing.T) {
	testUserRepository(t, repositories.NewGORMUserRepository(newSQLiteDB(t)))
}

func TestMockUserRepository(t *testing.T) {
	testUserRepository(t, repositories.NewMockUserRepository())
}
