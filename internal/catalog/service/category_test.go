package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/abedalshalabi/abo-zaina-sub001/internal/catalog/domain"
	"github.com/abedalshalabi/abo-zaina-sub001/pkg/apperrors"
)

type mockCategoryRepository struct {
	mock.Mock
}

func (m *mockCategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategoryRepository) ListAll(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *mockCategoryRepository) Update(ctx context.Context, c *domain.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func flatCategories() []domain.Category {
	now := time.Now().UTC()
	rootID := int64(1)
	return []domain.Category{
		{ID: 1, Name: "Appliances", Slug: "appliances", SortOrder: 1, IsActive: true, CreatedAt: now},
		{ID: 2, Name: "Fridges", Slug: "fridges", ParentID: &rootID, SortOrder: 1, IsActive: true, CreatedAt: now},
		{ID: 3, Name: "Washers", Slug: "washers", ParentID: &rootID, SortOrder: 2, IsActive: true, CreatedAt: now},
	}
}

func TestCategoryService_CategoryTree(t *testing.T) {
	repo := new(mockCategoryRepository)
	svc := NewCategoryService(repo, testLogger())

	repo.On("ListAll", mock.Anything).Return(flatCategories(), nil)

	tree, err := svc.CategoryTree(context.Background())

	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "appliances", tree[0].Slug)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "fridges", tree[0].Children[0].Slug)
}

func TestCategoryService_CreateCategory(t *testing.T) {
	t.Run("missing parent rejected", func(t *testing.T) {
		repo := new(mockCategoryRepository)
		svc := NewCategoryService(repo, testLogger())

		parentID := int64(99)
		repo.On("GetByID", mock.Anything, parentID).Return(nil, apperrors.NotFound("category", parentID))

		_, err := svc.CreateCategory(context.Background(), CategoryInput{
			Name:     "Orphans",
			Slug:     "orphans",
			ParentID: &parentID,
		})

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("root category", func(t *testing.T) {
		repo := new(mockCategoryRepository)
		svc := NewCategoryService(repo, testLogger())

		repo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Category) bool {
			return c.Slug == "appliances" && c.ParentID == nil
		})).Return(nil)

		c, err := svc.CreateCategory(context.Background(), CategoryInput{
			Name:     "Appliances",
			Slug:     "appliances",
			IsActive: true,
		})

		require.NoError(t, err)
		assert.Equal(t, "appliances", c.Slug)
		repo.AssertNotCalled(t, "GetByID")
	})
}

func TestCategoryService_UpdateCategory(t *testing.T) {
	t.Run("self parent rejected", func(t *testing.T) {
		repo := new(mockCategoryRepository)
		svc := NewCategoryService(repo, testLogger())

		selfID := int64(2)
		_, err := svc.UpdateCategory(context.Background(), 2, CategoryInput{
			Name:     "Fridges",
			Slug:     "fridges",
			ParentID: &selfID,
		})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		repo.AssertNotCalled(t, "Update")
	})
}
