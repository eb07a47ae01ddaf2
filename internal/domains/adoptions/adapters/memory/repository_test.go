package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	petmemory "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/memory"
	petdomain "github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
)

type failingWriter struct{}

func (failingWriter) MarkAdopted(context.Context, string) error { return errors.New("boom") }

func seedPet(t *testing.T, repo *petmemory.Repository, id string) {
	t.Helper()
	pet, err := petdomain.NewPet(id, "Firulais", "dog")
	require.NoError(t, err)
	age := 3
	require.NoError(t, pet.SetAge(&age))
	_, err = repo.Save(context.Background(), pet)
	require.NoError(t, err)
}

func newRequest(t *testing.T, id, userID, petID string) *domain.Request {
	t.Helper()
	request, err := domain.NewRequest(id, userID, petID)
	require.NoError(t, err)
	return request
}

func TestRepository_ListFiltersByUserInCreationOrder(t *testing.T) {
	repo := NewRepository(nil)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	repo.WithClock(func() time.Time {
		now = now.Add(time.Second)
		return now
	})
	ctx := context.Background()
	for _, r := range []*domain.Request{
		newRequest(t, "r1", "ana", "p1"),
		newRequest(t, "r2", "bob", "p1"),
		newRequest(t, "r3", "ana", "p2"),
	} {
		_, err := repo.Create(ctx, r)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, ports.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "r1", all[0].Entity.ID)
	assert.Equal(t, "r3", all[2].Entity.ID)

	mine, err := repo.List(ctx, ports.ListFilter{UserID: "ana"})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "r1", mine[0].Entity.ID)
	assert.Equal(t, "r3", mine[1].Entity.ID)
}

func TestRepository_TransitionApprovesAndAdoptsPet(t *testing.T) {
	pets := petmemory.NewRepository()
	seedPet(t, pets, "p1")
	repo := NewRepository(pets)
	ctx := context.Background()
	_, err := repo.Create(ctx, newRequest(t, "r1", "ana", "p1"))
	require.NoError(t, err)

	approved, err := repo.Transition(ctx, "r1", domain.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, approved.Entity.Status)

	pet, err := pets.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, petdomain.StatusAdopted, pet.Entity.Status)

	_, err = repo.Transition(ctx, "r1", domain.StatusRejected)
	assert.ErrorIs(t, err, domain.ErrNotPending)

	_, err = repo.Transition(ctx, "missing", domain.StatusApproved)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_RejectLeavesPetAvailable(t *testing.T) {
	pets := petmemory.NewRepository()
	seedPet(t, pets, "p1")
	repo := NewRepository(pets)
	ctx := context.Background()
	_, err := repo.Create(ctx, newRequest(t, "r1", "ana", "p1"))
	require.NoError(t, err)

	rejected, err := repo.Transition(ctx, "r1", domain.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, rejected.Entity.Status)

	pet, err := pets.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, pet.Entity.IsAvailable())
}

func TestRepository_ApprovalForDeletedPetSucceeds(t *testing.T) {
	repo := NewRepository(petmemory.NewRepository())
	ctx := context.Background()
	_, err := repo.Create(ctx, newRequest(t, "r1", "ana", "gone"))
	require.NoError(t, err)

	approved, err := repo.Transition(ctx, "r1", domain.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, approved.Entity.Status)
}

func TestRepository_FailedPetWriteKeepsRequestPending(t *testing.T) {
	repo := NewRepository(failingWriter{})
	ctx := context.Background()
	_, err := repo.Create(ctx, newRequest(t, "r1", "ana", "p1"))
	require.NoError(t, err)

	_, err = repo.Transition(ctx, "r1", domain.StatusApproved)
	require.Error(t, err)

	found, err := repo.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, found.Entity.Status)
}

func TestRepository_ConcurrentDecisionsHaveSingleWinner(t *testing.T) {
	pets := petmemory.NewRepository()
	seedPet(t, pets, "p1")
	repo := NewRepository(pets)
	ctx := context.Background()
	_, err := repo.Create(ctx, newRequest(t, "r1", "ana", "p1"))
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		conflicts atomic.Int32
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		decision := domain.StatusApproved
		if i%2 == 1 {
			decision = domain.StatusRejected
		}
		go func(to domain.Status) {
			defer wg.Done()
			_, err := repo.Transition(ctx, "r1", to)
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, domain.ErrNotPending):
				conflicts.Add(1)
			}
		}(decision)
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(15), conflicts.Load())
}

func TestRepository_ReturnsCopies(t *testing.T) {
	repo := NewRepository(nil)
	ctx := context.Background()
	created, err := repo.Create(ctx, newRequest(t, "r1", "ana", "p1"))
	require.NoError(t, err)
	created.Entity.Status = domain.StatusApproved

	found, err := repo.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, found.Entity.Status)

	require.NoError(t, repo.Delete(ctx, "r1"))
	assert.ErrorIs(t, repo.Delete(ctx, "r1"), ports.ErrNotFound)
}
