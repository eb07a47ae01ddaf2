//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/pet-adoption-api/internal/domains/users/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/users/ports"
	"github.com/Apurer/pet-adoption-api/internal/platform/migrations"
	"github.com/Apurer/pet-adoption-api/internal/shared/ids"
)

func setupUsersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("adoption_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func newUser(t *testing.T, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(ids.New(), "Ana", "Perez", email, "$2a$10$hash")
	require.NoError(t, err)
	return user
}

func TestRepository_CreateAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, newUser(t, "ana@example.com"))
	require.NoError(t, err)
	assert.False(t, created.Metadata.CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, created.Entity.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", byID.Entity.Email)
	assert.False(t, byID.Entity.IsAdmin())

	byEmail, err := repo.GetByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.Entity.ID, byEmail.Entity.ID)

	_, err = repo.Create(ctx, newUser(t, "ana@example.com"))
	assert.ErrorIs(t, err, ports.ErrEmailTaken)
}

func TestRepository_Update(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, newUser(t, "ana@example.com"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newUser(t, "bob@example.com"))
	require.NoError(t, err)

	user := created.Entity
	age := 31
	require.NoError(t, user.SetAge(&age))
	user.Promote()
	updated, err := repo.Update(ctx, user)
	require.NoError(t, err)
	assert.True(t, updated.Entity.IsAdmin())
	require.NotNil(t, updated.Entity.Age)
	assert.Equal(t, 31, *updated.Entity.Age)

	require.NoError(t, user.ChangeEmail("bob@example.com"))
	_, err = repo.Update(ctx, user)
	assert.ErrorIs(t, err, ports.ErrEmailTaken)

	ghost := newUser(t, "ghost@example.com")
	_, err = repo.Update(ctx, ghost)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ListAndDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	var second string
	for i := 1; i <= 3; i++ {
		created, err := repo.Create(ctx, newUser(t, fmt.Sprintf("user%d@example.com", i)))
		require.NoError(t, err)
		if i == 2 {
			second = created.Entity.ID
		}
	}

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	err = repo.Delete(ctx, second)
	require.NoError(t, err)
	_, err = repo.GetByID(ctx, second)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	err = repo.Delete(ctx, second)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
