package impl

import (
	"context"
	"testing"

	"dealradar/internal/domain/entity"
	domainerrors "dealradar/internal/domain/errors"
	"dealradar/internal/domain/repository"
	"dealradar/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func createTestCategoryService(t *testing.T) (usecase.CategoryUsecase, *fakeCategoryRepo) {
	t.Helper()

	categoryRepo := &fakeCategoryRepo{}
	service := NewCategoryService(CategoryServiceParams{
		TxManager:    &fakeTxManager{factory: &fakeFactory{categories: categoryRepo}},
		CategoryRepo: categoryRepo,
		Logger:       newDiscardLogger(),
	})

	return service, categoryRepo
}

func TestCategoryService_CreateCategory(t *testing.T) {
	service, repo := createTestCategoryService(t)

	repo.createCategoryFn = func(_ context.Context, category *entity.Category) error {
		category.ID = primitive.NewObjectID()

		return nil
	}

	category, err := service.CreateCategory(context.Background(), &usecase.CreateCategoryInput{
		Name:  "Groceries",
		Image: "https://cdn.example.com/groceries.png",
	})
	require.NoError(t, err)
	assert.False(t, category.ID.IsZero())
	assert.Equal(t, "Groceries", category.Name)
}

func TestCategoryService_DeleteCategory_CascadesSubCategories(t *testing.T) {
	service, repo := createTestCategoryService(t)
	categoryID := primitive.NewObjectID()

	var order []string
	repo.deleteSubCategoriesByCategoryIDFn = func(_ context.Context, id primitive.ObjectID) error {
		assert.Equal(t, categoryID, id)
		order = append(order, "subcategories")

		return nil
	}
	repo.deleteCategoryFn = func(_ context.Context, id primitive.ObjectID) error {
		assert.Equal(t, categoryID, id)
		order = append(order, "category")

		return nil
	}

	err := service.DeleteCategory(context.Background(), categoryID)
	require.NoError(t, err)

	// Children go first so the parent never outlives a failed cascade.
	assert.Equal(t, []string{"subcategories", "category"}, order)
}

func TestCategoryService_DeleteCategory_Unknown(t *testing.T) {
	service, repo := createTestCategoryService(t)

	repo.deleteSubCategoriesByCategoryIDFn = func(context.Context, primitive.ObjectID) error { return nil }
	repo.deleteCategoryFn = func(context.Context, primitive.ObjectID) error {
		return repository.ErrCategoryNotFound
	}

	err := service.DeleteCategory(context.Background(), primitive.NewObjectID())
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestCategoryService_ListSubCategories(t *testing.T) {
	service, repo := createTestCategoryService(t)
	categoryID := primitive.NewObjectID()

	repo.findSubCategoriesByCategoryIDFn = func(_ context.Context, id primitive.ObjectID) ([]*entity.SubCategory, error) {
		assert.Equal(t, categoryID, id)

		return []*entity.SubCategory{
			{Name: "Bakery", CategoryID: id},
			{Name: "Dairy", CategoryID: id},
		}, nil
	}

	subs, err := service.ListSubCategories(context.Background(), categoryID)
	require.NoError(t, err)
	assert.Len(t, subs, 2)
}

func TestCategoryService_DeleteSubCategory_Unknown(t *testing.T) {
	service, repo := createTestCategoryService(t)

	repo.deleteSubCategoryFn = func(context.Context, primitive.ObjectID) error {
		return repository.ErrSubCategoryNotFound
	}

	err := service.DeleteSubCategory(context.Background(), primitive.NewObjectID())
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}
