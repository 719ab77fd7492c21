package impl

import (
	"context"
	"log/slog"

	deliverycontext "dealradar/internal/delivery/context"
	"dealradar/internal/domain/entity"
	domainerrors "dealradar/internal/domain/errors"
	"dealradar/internal/domain/repository"
	"dealradar/internal/domain/service"
	"dealradar/internal/usecase"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx"
)

// businessService implements the BusinessUsecase interface.
type businessService struct {
	txManager    repository.TransactionManager
	businessRepo repository.BusinessRepository
	qrService    service.QRCodeService
	logger       *slog.Logger
}

// BusinessServiceParams holds dependencies for BusinessService, injected by Fx.
type BusinessServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	BusinessRepo repository.BusinessRepository
	QRService    service.QRCodeService
	Logger       *slog.Logger
}

// NewBusinessService is the constructor for businessService.
func NewBusinessService(params BusinessServiceParams) usecase.BusinessUsecase {
	return &businessService{
		txManager:    params.TxManager,
		businessRepo: params.BusinessRepo,
		qrService:    params.QRService,
		logger:       params.Logger,
	}
}

func (srv *businessService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create registers a new business under a user.
func (srv *businessService) Create(ctx context.Context, input *usecase.CreateBusinessInput) (*entity.Business, error) {
	business := &entity.Business{
		Name:           input.Name,
		UserID:         input.UserID,
		OpeningTime:    input.OpeningTime,
		ClosingTime:    input.ClosingTime,
		PhoneNumber:    input.PhoneNumber,
		Email:          input.Email,
		GeoLocation:    entity.NewGeoPoint(input.Longitude, input.Latitude),
		UpiID:          input.UpiID,
		ManagerContact: input.ManagerContact,
		CategoryID:     input.CategoryID,
		SubCategoryID:  input.SubCategoryID,
		Brands:         input.Brands,
	}

	if err := srv.businessRepo.Create(ctx, business); err != nil {
		srv.log(ctx).Error("Failed to create business", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create business")
	}

	srv.log(ctx).Debug("Business created", slog.Any("businessID", business.ID))

	return business, nil
}

// FindByID retrieves one business.
func (srv *businessService) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Business, error) {
	business, err := srv.businessRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("business not found")
		}

		return nil, errors.Wrap(err, "failed to find business")
	}

	return business, nil
}

// FindByUserID lists a user's businesses.
func (srv *businessService) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*entity.Business, error) {
	businesses, err := srv.businessRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list businesses")
	}

	return businesses, nil
}

// Update applies a partial field update.
func (srv *businessService) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.Business, error) {
	business, err := srv.businessRepo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("business not found")
		}

		return nil, errors.Wrap(err, "failed to update business")
	}

	return business, nil
}

// Delete removes the business and cascades to its products.
func (srv *businessService) Delete(ctx context.Context, id primitive.ObjectID) error {
	srv.log(ctx).Info("Deleting business with cascade", slog.Any("businessID", id))

	err := srv.txManager.Execute(ctx, func(txCtx context.Context, repos repository.RepositoryFactory) error {
		if err := repos.Products().DeleteByBusinessID(txCtx, id); err != nil {
			return errors.Wrap(err, "failed to cascade products")
		}

		if err := repos.Businesses().Delete(txCtx, id); err != nil {
			if errors.Is(err, repository.ErrBusinessNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("business not found")
			}

			return errors.Wrap(err, "failed to delete business")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute business delete cascade", slog.Any("businessID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute business delete cascade")
	}

	return nil
}

// PaymentQR renders the business's UPI id as a payment QR PNG.
func (srv *businessService) PaymentQR(ctx context.Context, id primitive.ObjectID) ([]byte, error) {
	business, err := srv.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if business.UpiID == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("business has no UPI id configured")
	}

	png, err := srv.qrService.PaymentQR(business.UpiID, business.Name)
	if err != nil {
		srv.log(ctx).Error("Failed to render payment QR", slog.Any("businessID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to render payment QR")
	}

	return png, nil
}
