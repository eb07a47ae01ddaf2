package adoptions_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"

	adoptionmemory "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/adapters/memory"
	adoptionapp "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	petmemory "github.com/Apurer/pet-adoption-api/internal/domains/pets/adapters/memory"
	petapp "github.com/Apurer/pet-adoption-api/internal/domains/pets/application"
	pettypes "github.com/Apurer/pet-adoption-api/internal/domains/pets/application/types"
	userports "github.com/Apurer/pet-adoption-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
	adoptionactivities "github.com/Apurer/pet-adoption-api/internal/platform/temporal/activities/adoptions"
	adoptionworkflows "github.com/Apurer/pet-adoption-api/internal/platform/temporal/workflows/adoptions"
)

type noUsers struct{}

func (noUsers) GetProfile(context.Context, string) (*userports.UserProjection, error) {
	return nil, apierrors.NotFound("user not found")
}

type ApprovalWorkflowSuite struct {
	testsuite.WorkflowTestSuite
	service *adoptionapp.Service
	pets    *petapp.Service
}

func newSuite(t *testing.T) (*ApprovalWorkflowSuite, *testsuite.TestWorkflowEnvironment) {
	t.Helper()
	petRepo := petmemory.NewRepository()
	pets := petapp.NewService(petRepo)
	suite := &ApprovalWorkflowSuite{
		service: adoptionapp.NewService(adoptionmemory.NewRepository(petRepo), pets, noUsers{}),
		pets:    pets,
	}
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterWorkflowWithOptions(adoptionworkflows.ApprovalWorkflow, workflow.RegisterOptions{Name: adoptionworkflows.ApprovalWorkflowName})
	env.RegisterActivityWithOptions(adoptionactivities.NewActivities(suite.service).ResolveRequest, activity.RegisterOptions{Name: adoptionactivities.ResolveRequestActivityName})
	return suite, env
}

func (s *ApprovalWorkflowSuite) pendingRequest(t *testing.T) *ports.RequestProjection {
	t.Helper()
	name, species, age := "Firulais", "dog", 3
	pet, err := s.pets.Create(context.Background(), pettypes.CreatePetInput{
		PetMutationInput: pettypes.PetMutationInput{Name: &name, Species: &species, Age: &age},
	})
	require.NoError(t, err)
	created, err := s.service.Create(context.Background(), ports.CreateInput{UserID: "u1", PetID: pet.Entity.ID})
	require.NoError(t, err)
	return created
}

func TestApprovalWorkflowApprovesRequest(t *testing.T) {
	suite, env := newSuite(t)
	request := suite.pendingRequest(t)

	env.ExecuteWorkflow(adoptionworkflows.ApprovalWorkflowName, adoptionworkflows.ApprovalWorkflowInput{
		Command: ports.ResolveInput{ID: request.Entity.ID, Decision: domain.StatusApproved},
	})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var resolved ports.RequestProjection
	require.NoError(t, env.GetWorkflowResult(&resolved))
	assert.Equal(t, domain.StatusApproved, resolved.Entity.Status)

	available, err := suite.pets.ListAvailable(context.Background())
	require.NoError(t, err)
	assert.Empty(t, available)
}

func TestApprovalWorkflowSurfacesConflictWithoutRetry(t *testing.T) {
	suite, env := newSuite(t)
	request := suite.pendingRequest(t)
	_, err := suite.service.Resolve(context.Background(), ports.ResolveInput{ID: request.Entity.ID, Decision: domain.StatusRejected})
	require.NoError(t, err)

	env.ExecuteWorkflow(adoptionworkflows.ApprovalWorkflowName, adoptionworkflows.ApprovalWorkflowInput{
		Command: ports.ResolveInput{ID: request.Entity.ID, Decision: domain.StatusApproved},
	})
	require.True(t, env.IsWorkflowCompleted())

	werr := env.GetWorkflowError()
	require.Error(t, werr)
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(werr, &appErr))
	assert.Equal(t, "conflict", appErr.Type())
	assert.True(t, appErr.NonRetryable())
}
