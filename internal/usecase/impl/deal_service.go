package impl

import (
	"context"
	"log/slog"
	"time"

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

const metersPerKm = 1000.0

// dealService implements the DealUsecase interface, including the
// personalized geospatial discovery query.
type dealService struct {
	dealRepo     repository.DealRepository
	businessRepo repository.BusinessRepository
	userRepo     repository.UserRepository
	publisher    service.EventPublisher
	pushSender   service.PushSender
	logger       *slog.Logger
}

// DealServiceParams holds dependencies for DealService, injected by Fx.
type DealServiceParams struct {
	fx.In

	DealRepo     repository.DealRepository
	BusinessRepo repository.BusinessRepository
	UserRepo     repository.UserRepository
	Publisher    service.EventPublisher
	PushSender   service.PushSender
	Logger       *slog.Logger
}

// NewDealService is the constructor for dealService.
func NewDealService(params DealServiceParams) usecase.DealUsecase {
	return &dealService{
		dealRepo:     params.DealRepo,
		businessRepo: params.BusinessRepo,
		userRepo:     params.UserRepo,
		publisher:    params.Publisher,
		pushSender:   params.PushSender,
		logger:       params.Logger,
	}
}

func (srv *dealService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create posts a new deal, announces it on the event bus, and pushes a
// confirmation to the owner's device when they opted in.
func (srv *dealService) Create(ctx context.Context, input *usecase.CreateDealInput) (*entity.Deal, error) {
	deal := &entity.Deal{
		Name:           input.Name,
		StartDate:      input.StartDate,
		EndDate:        input.EndDate,
		Description:    input.Description,
		MarketPrice:    input.MarketPrice,
		OfferPrice:     input.OfferPrice,
		HomeDelivery:   input.HomeDelivery,
		ReturnAccepted: input.ReturnAccepted,
		ProductID:      input.ProductID,
		BusinessID:     input.BusinessID,
		UserID:         input.UserID,
	}

	if err := srv.dealRepo.Create(ctx, deal); err != nil {
		srv.log(ctx).Error("Failed to create deal", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create deal")
	}

	srv.announce(ctx, service.DealEventCreated, deal)
	srv.notifyOwner(ctx, deal)

	srv.log(ctx).Debug("Deal created", slog.Any("dealID", deal.ID))

	return deal, nil
}

// announce publishes a deal lifecycle event. Publishing is best effort;
// the mutation has already been committed.
func (srv *dealService) announce(ctx context.Context, eventType string, deal *entity.Deal) {
	event := &service.DealEvent{
		Type:       eventType,
		DealID:     deal.ID.Hex(),
		BusinessID: deal.BusinessID.Hex(),
		UserID:     deal.UserID.Hex(),
		Name:       deal.Name,
		OfferPrice: deal.OfferPrice,
		EndDate:    deal.EndDate,
		OccurredAt: time.Now(),
	}

	if err := srv.publisher.PublishDealEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish deal event",
			slog.String("event_type", eventType),
			slog.Any("dealID", deal.ID),
			slog.Any("error", err),
		)
	}
}

// notifyOwner pushes a confirmation to the posting user's device.
func (srv *dealService) notifyOwner(ctx context.Context, deal *entity.Deal) {
	owner, err := srv.userRepo.FindByID(ctx, deal.UserID)
	if err != nil {
		srv.log(ctx).Warn("Failed to load deal owner for push", slog.Any("error", err))

		return
	}

	if owner.DeviceToken == "" || !owner.Notifications.Push {
		return
	}

	err = srv.pushSender.SendPush(ctx, owner.DeviceToken,
		"Deal is live",
		deal.Name+" is now visible to nearby shoppers",
		map[string]string{"dealId": deal.ID.Hex()},
	)
	if err != nil {
		srv.log(ctx).Warn("Failed to push deal confirmation", slog.Any("error", err))
	}
}

// FindByID retrieves one deal.
func (srv *dealService) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Deal, error) {
	deal, err := srv.dealRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDealNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("deal not found")
		}

		return nil, errors.Wrap(err, "failed to find deal")
	}

	return deal, nil
}

// Update applies a partial field update.
func (srv *dealService) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.Deal, error) {
	deal, err := srv.dealRepo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repository.ErrDealNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("deal not found")
		}

		return nil, errors.Wrap(err, "failed to update deal")
	}

	return deal, nil
}

// Delete removes a deal and announces its removal.
func (srv *dealService) Delete(ctx context.Context, id primitive.ObjectID) error {
	deal, err := srv.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := srv.dealRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrDealNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("deal not found")
		}

		return errors.Wrap(err, "failed to delete deal")
	}

	srv.announce(ctx, service.DealEventDeleted, deal)

	return nil
}

// Discover returns deals from businesses near the given location whose
// subcategory matches the requesting user's interests.
func (srv *dealService) Discover(ctx context.Context, input *usecase.DiscoverInput) ([]*entity.DiscoveredDeal, error) {
	user, err := srv.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrCannotPersonalize.WrapMessage("unknown user")
		}

		return nil, errors.Wrap(err, "failed to load user for discovery")
	}

	if !user.HasInterests() {
		srv.log(ctx).Debug("Discovery refused, user has no interests", slog.Any("userID", user.ID))

		return nil, domainerrors.ErrCannotPersonalize.WrapMessage("empty interest set")
	}

	maxMeters := input.RadiusKm * metersPerKm
	if maxMeters <= repository.DiscoveryMinDistanceMeters {
		// The search window collapses below the distance floor.
		return []*entity.DiscoveredDeal{}, nil
	}

	query := repository.DiscoveryQuery{
		Near:        entity.NewGeoPoint(input.Longitude, input.Latitude),
		MaxMeters:   maxMeters,
		InterestIDs: user.Interests,
	}

	rows, err := srv.businessRepo.DiscoverDeals(ctx, query)
	if err != nil {
		srv.log(ctx).Error("Discovery aggregation failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to run discovery")
	}

	if rows == nil {
		rows = []*entity.DiscoveredDeal{}
	}

	srv.log(ctx).Debug("Discovery completed",
		slog.Any("userID", user.ID),
		slog.Int("results", len(rows)),
	)

	return rows, nil
}
