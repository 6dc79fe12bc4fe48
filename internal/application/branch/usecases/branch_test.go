package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmdesk/internal/application/branch/dto"
	"crmdesk/internal/domain/organization"
	"crmdesk/internal/infrastructure/persistence/testdb"
	"crmdesk/internal/infrastructure/repository"
	apperrors "crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/query"
)

func TestBranchUseCases(t *testing.T) {
	gdb := testdb.New(t)
	orgRepo := repository.NewOrganizationRepository(gdb)
	branchRepo := repository.NewBranchRepository(gdb)
	log := logger.NewDiscard()
	ctx := context.Background()

	org, err := organization.NewOrganization("Acme", "", "", "")
	require.NoError(t, err)
	require.NoError(t, orgRepo.Create(ctx, org))

	create := NewCreateBranchUseCase(branchRepo, orgRepo, log)

	t.Run("unknown organization", func(t *testing.T) {
		_, err := create.Execute(ctx, dto.CreateBranchRequest{OrganizationID: 999, Name: "Centro"})
		assert.True(t, apperrors.IsValidationError(err))
	})

	created, err := create.Execute(ctx, dto.CreateBranchRequest{OrganizationID: org.ID(), Name: " Centro ", City: "CDMX"})
	require.NoError(t, err)
	assert.Equal(t, "Centro", created.Name)

	t.Run("duplicate name within organization", func(t *testing.T) {
		_, err := create.Execute(ctx, dto.CreateBranchRequest{OrganizationID: org.ID(), Name: "Centro"})
		assert.True(t, apperrors.IsConflictError(err))
	})

	city := "Monterrey"
	updated, err := NewUpdateBranchUseCase(branchRepo, log).Execute(ctx, created.ID, dto.UpdateBranchRequest{City: &city})
	require.NoError(t, err)
	assert.Equal(t, "Monterrey", updated.City)
	assert.Equal(t, "Centro", updated.Name)

	list, err := NewListBranchesUseCase(branchRepo, log).Execute(ctx, query.NewListFilter(
		query.WithPredicates(query.Equals{Field: dto.FilterFields["organization_id"], Value: org.ID()}),
	))
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)

	require.NoError(t, NewDeleteBranchUseCase(branchRepo, log).Execute(ctx, created.ID))
	_, err = NewGetBranchUseCase(branchRepo).Execute(ctx, created.ID)
	assert.True(t, apperrors.IsNotFoundError(err))
}
