package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"emptycup-directory/internal/domain"
	"emptycup-directory/internal/repo/mocks"
	"emptycup-directory/internal/service"
)

func TestCatalogService_CreateInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.DesignerRepository{}
	inv := &mocks.Invalidator{}

	repo.On("Create", ctx, mock.AnythingOfType("*domain.Profile")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Profile).ID = 42 }).
		Return(nil)
	inv.On("Invalidate", ctx).Return(nil)

	svc := service.NewCatalogService(repo, inv, nil)
	p, err := svc.Create(ctx, domain.SampleProfiles()[0])
	require.NoError(t, err)
	require.Equal(t, int64(42), p.ID)

	repo.AssertExpectations(t)
	inv.AssertExpectations(t)
}

func TestCatalogService_CreateRejectsInvalid(t *testing.T) {
	repo := &mocks.DesignerRepository{}
	svc := service.NewCatalogService(repo, nil, nil)

	bad := domain.SampleProfiles()[0]
	bad.PriceRange = "$$$$"
	_, err := svc.Create(context.Background(), bad)

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalogService_CreateJSONRequiresEveryField(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.DesignerRepository{}
	svc := service.NewCatalogService(repo, nil, nil)

	_, err := svc.CreateJSON(ctx, []byte(`{"name":"Nook","rating":4,"description":"d","projects":1,
		"experience":1,"price_range":"$","phone1":"1","phone2":"2","location":"Pune"}`))
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	require.Contains(t, ve.Problems, "designer 1: missing required field: specialties")
	require.Contains(t, ve.Problems, "designer 1: missing required field: portfolio")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	raw, err := json.Marshal(domain.SampleProfiles()[1])
	require.NoError(t, err)
	repo.On("Create", ctx, mock.AnythingOfType("*domain.Profile")).Return(nil)
	p, err := svc.CreateJSON(ctx, raw)
	require.NoError(t, err)
	require.Equal(t, domain.SampleProfiles()[1].Name, p.Name)
	repo.AssertExpectations(t)
}

func TestCatalogService_ImportAllOrNothing(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.DesignerRepository{}
	inv := &mocks.Invalidator{}
	svc := service.NewCatalogService(repo, inv, nil)

	good := domain.SampleProfiles()
	raw, err := json.Marshal(good)
	require.NoError(t, err)

	repo.On("CreateBatch", ctx, mock.AnythingOfType("[]domain.Profile")).Return(3, nil)
	inv.On("Invalidate", ctx).Return(errors.New("redis down"))

	n, err := svc.Import(ctx, raw)
	require.NoError(t, err, "cache failures are logged, not returned")
	require.Equal(t, 3, n)

	// 一条不合法，整批拒绝
	mixed := append([]byte(`[{"name":"broken"},`), raw[1:]...)
	_, err = svc.Import(ctx, mixed)
	require.Error(t, err)
	repo.AssertNumberOfCalls(t, "CreateBatch", 1)
}

func TestCatalogService_Dashboard(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.DesignerRepository{}
	repo.On("Count", ctx).Return(int64(3), nil)
	repo.On("Recent", ctx, 5).Return(domain.SampleProfiles(), nil)

	d, err := service.NewCatalogService(repo, nil, nil).Dashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), d.DesignerCount)
	require.Len(t, d.Recent, 3)
}

func TestCatalogService_DeleteNotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.DesignerRepository{}
	repo.On("Delete", ctx, int64(9)).Return(domain.ErrDesignerNotFound)

	err := service.NewCatalogService(repo, nil, nil).Delete(ctx, 9)
	require.ErrorIs(t, err, domain.ErrDesignerNotFound)
}
