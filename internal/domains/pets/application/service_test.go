package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	petmemory "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/memory"
	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
	"github.com/Apurer/pet-adoption-api/internal/shared/ids"
)

func ptr[T any](v T) *T { return &v }

func createFirulais(t *testing.T, svc *Service) *pettypes.PetProjection {
	t.Helper()
	proj, err := svc.Create(context.Background(), pettypes.CreatePetInput{
		PetMutationInput: pettypes.PetMutationInput{
			Name:    ptr("Firulais"),
			Species: ptr("dog"),
			Age:     ptr(3),
		},
	})
	require.NoError(t, err)
	return proj
}

func TestCreate_Success(t *testing.T) {
	svc := NewService(petmemory.NewRepository())

	proj := createFirulais(t, svc)

	require.True(t, ids.Valid(proj.Entity.ID))
	require.Equal(t, "Firulais", proj.Entity.Name)
	require.Equal(t, domain.StatusAvailable, proj.Entity.Status)
	require.False(t, proj.Metadata.CreatedAt.IsZero())
	require.False(t, proj.Metadata.UpdatedAt.IsZero())
}

func TestCreate_InvalidInput(t *testing.T) {
	svc := NewService(petmemory.NewRepository())

	cases := map[string]pettypes.PetMutationInput{
		"missing name":    {Species: ptr("dog"), Age: ptr(1)},
		"missing species": {Name: ptr("Rex"), Age: ptr(1)},
		"missing age":     {Name: ptr("Rex"), Species: ptr("dog")},
		"negative age":    {Name: ptr("Rex"), Species: ptr("dog"), Age: ptr(-1)},
		"bad image":       {Name: ptr("Rex"), Species: ptr("dog"), Age: ptr(1), ImageURL: ptr("nope")},
		"bad status":      {Name: ptr("Rex"), Species: ptr("dog"), Age: ptr(1), Status: ptr("sold")},
	}
	for name, input := range cases {
		_, err := svc.Create(context.Background(), pettypes.CreatePetInput{PetMutationInput: input})
		require.ErrorIs(t, err, ErrInvalidInput, name)
		require.Equal(t, apierrors.KindValidation, apierrors.KindOf(err), name)
	}
}

func TestUpdate_UpdatesMetadata(t *testing.T) {
	repo := petmemory.NewRepository()
	now := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	repo.WithClock(func() time.Time { return now })
	svc := NewService(repo)

	proj := createFirulais(t, svc)
	now = now.Add(time.Hour)

	updated, err := svc.Update(context.Background(), pettypes.UpdatePetInput{
		ID:               proj.Entity.ID,
		PetMutationInput: pettypes.PetMutationInput{Breed: ptr("mestizo"), Description: ptr("very friendly")},
	})
	require.NoError(t, err)
	require.Equal(t, "mestizo", updated.Entity.Breed)
	require.Equal(t, "Firulais", updated.Entity.Name)
	require.Equal(t, proj.Metadata.CreatedAt, updated.Metadata.CreatedAt)
	require.True(t, updated.Metadata.UpdatedAt.After(proj.Metadata.UpdatedAt))
}

func TestUpdate_RequiresAtLeastOneField(t *testing.T) {
	svc := NewService(petmemory.NewRepository())
	proj := createFirulais(t, svc)

	_, err := svc.Update(context.Background(), pettypes.UpdatePetInput{ID: proj.Entity.ID})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(petmemory.NewRepository())

	_, err := svc.Update(context.Background(), pettypes.UpdatePetInput{
		ID:               ids.New(),
		PetMutationInput: pettypes.PetMutationInput{Name: ptr("Rex")},
	})
	require.Equal(t, apierrors.KindNotFound, apierrors.KindOf(err))
}

// racingRepository runs afterRead once the service has loaded a pet, standing in
// for a writer that commits between the read and the update.
type racingRepository struct {
	*petmemory.Repository
	afterRead func(id string)
}

func (r *racingRepository) GetByID(ctx context.Context, id string) (*pettypes.PetProjection, error) {
	proj, err := r.Repository.GetByID(ctx, id)
	if err == nil && r.afterRead != nil {
		r.afterRead(id)
	}
	return proj, err
}

func TestUpdate_KeepsConcurrentAdoption(t *testing.T) {
	ctx := context.Background()
	repo := &racingRepository{Repository: petmemory.NewRepository()}
	svc := NewService(repo)
	proj := createFirulais(t, svc)
	repo.afterRead = func(id string) {
		require.NoError(t, repo.MarkAdopted(ctx, id))
	}

	updated, err := svc.Update(ctx, pettypes.UpdatePetInput{
		ID:               proj.Entity.ID,
		PetMutationInput: pettypes.PetMutationInput{Description: ptr("loves walks")},
	})
	require.NoError(t, err)
	require.Equal(t, "loves walks", updated.Entity.Description)
	require.Equal(t, domain.StatusAdopted, updated.Entity.Status)
}

func TestUpdate_DoesNotRecreateConcurrentlyDeletedPet(t *testing.T) {
	ctx := context.Background()
	repo := &racingRepository{Repository: petmemory.NewRepository()}
	svc := NewService(repo)
	proj := createFirulais(t, svc)
	repo.afterRead = func(id string) {
		require.NoError(t, repo.Delete(ctx, id))
	}

	_, err := svc.Update(ctx, pettypes.UpdatePetInput{
		ID:               proj.Entity.ID,
		PetMutationInput: pettypes.PetMutationInput{Name: ptr("Rex")},
	})
	require.Equal(t, apierrors.KindNotFound, apierrors.KindOf(err))

	repo.afterRead = nil
	_, err = svc.GetByID(ctx, pettypes.PetIdentifier{ID: proj.Entity.ID})
	require.Equal(t, apierrors.KindNotFound, apierrors.KindOf(err))
}

func TestListAvailable_OnlyReturnsAvailable(t *testing.T) {
	repo := petmemory.NewRepository()
	svc := NewService(repo)
	ctx := context.Background()

	first := createFirulais(t, svc)
	createFirulais(t, svc)
	require.NoError(t, repo.MarkAdopted(ctx, first.Entity.ID))

	list, err := svc.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	for _, p := range list {
		require.Equal(t, domain.StatusAvailable, p.Entity.Status)
	}
}

func TestGetByIDAndDelete_MalformedIDIsNotFound(t *testing.T) {
	svc := NewService(petmemory.NewRepository())
	ctx := context.Background()

	_, err := svc.GetByID(ctx, pettypes.PetIdentifier{ID: "123"})
	require.Equal(t, apierrors.KindNotFound, apierrors.KindOf(err))

	err = svc.Delete(ctx, pettypes.PetIdentifier{ID: "zz"})
	require.Equal(t, apierrors.KindNotFound, apierrors.KindOf(err))
}

func TestDelete_RemovesPet(t *testing.T) {
	svc := NewService(petmemory.NewRepository())
	ctx := context.Background()
	proj := createFirulais(t, svc)

	require.NoError(t, svc.Delete(ctx, pettypes.PetIdentifier{ID: proj.Entity.ID}))
	_, err := svc.GetByID(ctx, pettypes.PetIdentifier{ID: proj.Entity.ID})
	require.Equal(t, apierrors.KindNotFound, apierrors.KindOf(err))
}
