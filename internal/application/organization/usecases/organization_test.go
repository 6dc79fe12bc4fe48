package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmdesk/internal/application/organization/dto"
	"crmdesk/internal/infrastructure/persistence/testdb"
	"crmdesk/internal/infrastructure/repository"
	apperrors "crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/query"
)

func strPtr(s string) *string { return &s }

func TestOrganizationUseCases_Lifecycle(t *testing.T) {
	repo := repository.NewOrganizationRepository(testdb.New(t))
	log := logger.NewDiscard()
	ctx := context.Background()

	created, err := NewCreateOrganizationUseCase(repo, log).Execute(ctx, dto.CreateOrganizationRequest{
		Name:   "  Acme   corp ",
		Domain: "Acme.MX",
	})
	require.NoError(t, err)
	assert.Equal(t, "ACME CORP", created.Name)
	assert.Equal(t, "acme.mx", created.Domain)

	_, err = NewCreateOrganizationUseCase(repo, log).Execute(ctx, dto.CreateOrganizationRequest{Name: "acme corp"})
	assert.True(t, apperrors.IsConflictError(err), "same normalized name must conflict")

	updated, err := NewUpdateOrganizationUseCase(repo, log).Execute(ctx, created.ID, dto.UpdateOrganizationRequest{
		Name:  strPtr("acme corporation"),
		Phone: strPtr(" 555 0100 "),
	})
	require.NoError(t, err)
	assert.Equal(t, "ACME CORPORATION", updated.Name)
	assert.Equal(t, "555 0100", updated.Phone)
	assert.Equal(t, "acme.mx", updated.Domain)

	got, err := NewGetOrganizationUseCase(repo, log).Execute(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACME CORPORATION", got.Name)

	_, err = NewCreateOrganizationUseCase(repo, log).Execute(ctx, dto.CreateOrganizationRequest{Name: "Alianz"})
	require.NoError(t, err)

	list, err := NewListOrganizationsUseCase(repo, log).Execute(ctx, query.NewListFilter(
		query.WithPredicates(query.Contains{Field: dto.FilterFields["name"], Text: "ali"}),
	))
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)
	require.Len(t, list.Organizations, 1)
	assert.Equal(t, "ALIANZ", list.Organizations[0].Name)

	require.NoError(t, NewDeleteOrganizationUseCase(repo, log).Execute(ctx, created.ID))
	_, err = NewGetOrganizationUseCase(repo, log).Execute(ctx, created.ID)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestCreateOrganization_RejectsBlankName(t *testing.T) {
	repo := repository.NewOrganizationRepository(testdb.New(t))
	_, err := NewCreateOrganizationUseCase(repo, logger.NewDiscard()).Execute(context.Background(), dto.CreateOrganizationRequest{Name: "   "})
	assert.True(t, apperrors.IsValidationError(err))
}
