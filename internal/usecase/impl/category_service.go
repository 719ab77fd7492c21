package impl

import (
	"context"
	"log/slog"

	deliverycontext "dealradar/internal/delivery/context"
	"dealradar/internal/domain/entity"
	domainerrors "dealradar/internal/domain/errors"
	"dealradar/internal/domain/repository"
	"dealradar/internal/usecase"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx"
)

// categoryService implements the CategoryUsecase interface.
type categoryService struct {
	txManager    repository.TransactionManager
	categoryRepo repository.CategoryRepository
	logger       *slog.Logger
}

// CategoryServiceParams holds dependencies for CategoryService, injected by Fx.
type CategoryServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	CategoryRepo repository.CategoryRepository
	Logger       *slog.Logger
}

// NewCategoryService is the constructor for categoryService.
func NewCategoryService(params CategoryServiceParams) usecase.CategoryUsecase {
	return &categoryService{
		txManager:    params.TxManager,
		categoryRepo: params.CategoryRepo,
		logger:       params.Logger,
	}
}

func (srv *categoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *categoryService) CreateCategory(ctx context.Context, input *usecase.CreateCategoryInput) (*entity.Category, error) {
	category := &entity.Category{
		Name:  input.Name,
		Image: input.Image,
	}

	if err := srv.categoryRepo.CreateCategory(ctx, category); err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}

	return category, nil
}

func (srv *categoryService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

func (srv *categoryService) UpdateCategory(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.Category, error) {
	category, err := srv.categoryRepo.UpdateCategory(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("category not found")
		}

		return nil, errors.Wrap(err, "failed to update category")
	}

	return category, nil
}

// DeleteCategory removes the category and every subcategory under it.
func (srv *categoryService) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	srv.log(ctx).Info("Deleting category with cascade", slog.Any("categoryID", id))

	err := srv.txManager.Execute(ctx, func(txCtx context.Context, repos repository.RepositoryFactory) error {
		if err := repos.Categories().DeleteSubCategoriesByCategoryID(txCtx, id); err != nil {
			return errors.Wrap(err, "failed to cascade subcategories")
		}

		if err := repos.Categories().DeleteCategory(txCtx, id); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("category not found")
			}

			return errors.Wrap(err, "failed to delete category")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute category delete cascade", slog.Any("categoryID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute category delete cascade")
	}

	return nil
}

func (srv *categoryService) CreateSubCategory(ctx context.Context, input *usecase.CreateSubCategoryInput) (*entity.SubCategory, error) {
	subCategory := &entity.SubCategory{
		Name:       input.Name,
		CategoryID: input.CategoryID,
		Image:      input.Image,
	}

	if err := srv.categoryRepo.CreateSubCategory(ctx, subCategory); err != nil {
		return nil, errors.Wrap(err, "failed to create subcategory")
	}

	return subCategory, nil
}

func (srv *categoryService) ListSubCategories(ctx context.Context, categoryID primitive.ObjectID) ([]*entity.SubCategory, error) {
	subCategories, err := srv.categoryRepo.FindSubCategoriesByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subcategories")
	}

	return subCategories, nil
}

func (srv *categoryService) UpdateSubCategory(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.SubCategory, error) {
	subCategory, err := srv.categoryRepo.UpdateSubCategory(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrSubCategoryNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("subcategory not found")
		}

		return nil, errors.Wrap(err, "failed to update subcategory")
	}

	return subCategory, nil
}

func (srv *categoryService) DeleteSubCategory(ctx context.Context, id primitive.ObjectID) error {
	if err := srv.categoryRepo.DeleteSubCategory(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSubCategoryNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("subcategory not found")
		}

		return errors.Wrap(err, "failed to delete subcategory")
	}

	return nil
}
