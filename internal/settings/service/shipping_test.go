package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/abedalshalabi/abo-zaina-sub001/internal/settings/domain"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/apperrors"
)

type mockShippingCityRepository struct {
	mock.Mock
}

func (m *mockShippingCityRepository) Create(ctx context.Context, c *domain.ShippingCity) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockShippingCityRepository) GetByID(ctx context.Context, id int64) (*domain.ShippingCity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShippingCity), args.Error(1)
}

func (m *mockShippingCityRepository) List(ctx context.Context, activeOnly bool) ([]domain.ShippingCity, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShippingCity), args.Error(1)
}

func (m *mockShippingCityRepository) Update(ctx context.Context, c *domain.ShippingCity) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockShippingCityRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockShippingCityRepository) ActiveCityCost(ctx context.Context, name string) (int64, bool, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func TestShippingService_CreateCity(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		repo := new(mockShippingCityRepository)
		svc := NewShippingService(repo, testLogger())

		repo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.ShippingCity) bool {
			return c.Name == "Jeddah" && c.Cost == 30 && c.IsActive
		})).Return(nil)

		c, err := svc.CreateCity(context.Background(), ShippingCityInput{Name: "Jeddah", Cost: 30, IsActive: true})

		require.NoError(t, err)
		assert.Equal(t, int64(30), c.Cost)
	})

	t.Run("negative cost rejected", func(t *testing.T) {
		repo := new(mockShippingCityRepository)
		svc := NewShippingService(repo, testLogger())

		_, err := svc.CreateCity(context.Background(), ShippingCityInput{Name: "Jeddah", Cost: -1})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		repo.AssertNotCalled(t, "Create")
	})
}

func TestShippingService_UpdateCity(t *testing.T) {
	repo := new(mockShippingCityRepository)
	svc := NewShippingService(repo, testLogger())

	now := time.Now().UTC()
	stored := &domain.ShippingCity{ID: 2, Name: "Jeddah", Cost: 30, IsActive: true, CreatedAt: now, UpdatedAt: now}

	repo.On("GetByID", mock.Anything, int64(2)).Return(stored, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.ShippingCity) bool {
		return c.ID == 2 && c.Cost == 45 && !c.IsActive
	})).Return(nil)

	c, err := svc.UpdateCity(context.Background(), 2, ShippingCityInput{Name: "Jeddah", Cost: 45, IsActive: false})

	require.NoError(t, err)
	assert.Equal(t, int64(45), c.Cost)
}

func TestShippingService_ActiveCityCost(t *testing.T) {
	repo := new(mockShippingCityRepository)
	svc := NewShippingService(repo, testLogger())

	repo.On("ActiveCityCost", mock.Anything, "Riyadh").Return(int64(40), true, nil)
	repo.On("ActiveCityCost", mock.Anything, "Atlantis").Return(int64(0), false, nil)

	cost, ok, err := svc.ActiveCityCost(context.Background(), "Riyadh")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(40), cost)

	_, ok, err = svc.ActiveCityCost(context.Background(), "Atlantis")
	require.NoError(t, err)
	assert.False(t, ok)
}
