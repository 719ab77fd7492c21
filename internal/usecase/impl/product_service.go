package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "dealradar/internal/delivery/context"
	"dealradar/internal/domain/entity"
	domainerrors "dealradar/internal/domain/errors"
	"dealradar/internal/domain/repository"
	"dealradar/internal/usecase"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx"
)

// productService implements the ProductUsecase interface.
type productService struct {
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create lists a new product under a business.
func (srv *productService) Create(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	quantity := input.Quantity
	if quantity.CreatedAt.IsZero() {
		quantity.CreatedAt = time.Now()
	}

	product := &entity.Product{
		Name:            input.Name,
		BrandName:       input.BrandName,
		Description:     input.Description,
		OpeningStock:    input.OpeningStock,
		StockType:       input.StockType,
		Quantity:        quantity,
		QuantityHistory: []entity.Quantity{},
		BatchNo:         input.BatchNo,
		ManufacturingAt: input.ManufacturingAt,
		ExpiryAt:        input.ExpiryAt,
		UnitMrp:         input.UnitMrp,
		SellingPrice:    input.SellingPrice,
		Images:          input.Images,
		Attributes:      input.Attributes,
		CountryCode:     input.CountryCode,
		BusinessID:      input.BusinessID,
		UserID:          input.UserID,
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		srv.log(ctx).Error("Failed to create product", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Debug("Product created", slog.Any("productID", product.ID))

	return product, nil
}

// FindByID retrieves one product.
func (srv *productService) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("product not found")
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// FindByBusinessID lists a business's products.
func (srv *productService) FindByBusinessID(ctx context.Context, businessID primitive.ObjectID) ([]*entity.Product, error) {
	products, err := srv.productRepo.FindByBusinessID(ctx, businessID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// Update applies a partial update. A quantity replacement archives the
// current snapshot into the history before the new one takes its place.
func (srv *productService) Update(ctx context.Context, id primitive.ObjectID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	if input.Quantity != nil {
		next := *input.Quantity
		if next.CreatedAt.IsZero() {
			next.CreatedAt = time.Now()
		}

		product, err := srv.productRepo.ReplaceQuantity(ctx, id, next)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, domainerrors.ErrNotFound.WrapMessage("product not found")
			}

			return nil, errors.Wrap(err, "failed to replace product quantity")
		}

		if len(input.Fields) == 0 {
			return product, nil
		}
	}

	if len(input.Fields) == 0 {
		return srv.FindByID(ctx, id)
	}

	product, err := srv.productRepo.Update(ctx, id, input.Fields)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("product not found")
		}

		return nil, errors.Wrap(err, "failed to update product")
	}

	return product, nil
}

// Delete removes a product.
func (srv *productService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := srv.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("product not found")
		}

		return errors.Wrap(err, "failed to delete product")
	}

	return nil
}
