package impl

import (
	"context"
	"testing"
	"time"

	"dealradar/internal/domain/entity"
	domainerrors "dealradar/internal/domain/errors"
	"dealradar/internal/domain/repository"
	"dealradar/internal/domain/service"
	"dealradar/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type dealServiceFixtures struct {
	service      usecase.DealUsecase
	dealRepo     *fakeDealRepo
	businessRepo *fakeBusinessRepo
	userRepo     *fakeUserRepo
	publisher    *fakePublisher
	pushSender   *fakePushSender
}

func createTestDealService(t *testing.T) dealServiceFixtures {
	t.Helper()

	dealRepo := &fakeDealRepo{}
	businessRepo := &fakeBusinessRepo{}
	userRepo := &fakeUserRepo{}
	publisher := &fakePublisher{}
	pushSender := &fakePushSender{}

	service := NewDealService(DealServiceParams{
		DealRepo:     dealRepo,
		BusinessRepo: businessRepo,
		UserRepo:     userRepo,
		Publisher:    publisher,
		PushSender:   pushSender,
		Logger:       newDiscardLogger(),
	})

	return dealServiceFixtures{
		service:      service,
		dealRepo:     dealRepo,
		businessRepo: businessRepo,
		userRepo:     userRepo,
		publisher:    publisher,
		pushSender:   pushSender,
	}
}

func TestDealService_Create_PublishesAndNotifies(t *testing.T) {
	fx := createTestDealService(t)
	userID := primitive.NewObjectID()

	fx.dealRepo.createFn = func(_ context.Context, deal *entity.Deal) error {
		deal.ID = primitive.NewObjectID()

		return nil
	}
	fx.userRepo.findByIDFn = func(context.Context, primitive.ObjectID) (*entity.User, error) {
		return &entity.User{
			ID:            userID,
			DeviceToken:   "device-token",
			Notifications: entity.NotificationOptIn{Push: true},
		}, nil
	}

	input := &usecase.CreateDealInput{
		Name:       "Half price bread",
		OfferPrice: 20,
		EndDate:    time.Now().Add(48 * time.Hour),
		ProductID:  primitive.NewObjectID(),
		BusinessID: primitive.NewObjectID(),
		UserID:     userID,
	}

	deal, err := fx.service.Create(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, deal.ID.IsZero())

	require.Len(t, fx.publisher.events, 1)
	event := fx.publisher.events[0]
	assert.Equal(t, service.DealEventCreated, event.Type)
	assert.Equal(t, deal.ID.Hex(), event.DealID)
	assert.Equal(t, input.BusinessID.Hex(), event.BusinessID)

	require.Len(t, fx.pushSender.tokens, 1)
	assert.Equal(t, "device-token", fx.pushSender.tokens[0])
}

func TestDealService_Create_SkipsPushWhenOptedOut(t *testing.T) {
	fx := createTestDealService(t)

	fx.dealRepo.createFn = func(_ context.Context, deal *entity.Deal) error {
		deal.ID = primitive.NewObjectID()

		return nil
	}
	fx.userRepo.findByIDFn = func(context.Context, primitive.ObjectID) (*entity.User, error) {
		return &entity.User{
			DeviceToken:   "device-token",
			Notifications: entity.NotificationOptIn{Push: false},
		}, nil
	}

	_, err := fx.service.Create(context.Background(), &usecase.CreateDealInput{
		Name:   "Quiet deal",
		UserID: primitive.NewObjectID(),
	})
	require.NoError(t, err)
	assert.Empty(t, fx.pushSender.tokens)
}

func TestDealService_Create_PublishFailureIsBestEffort(t *testing.T) {
	fx := createTestDealService(t)
	fx.publisher.err = errors.New("broker down")

	fx.dealRepo.createFn = func(_ context.Context, deal *entity.Deal) error {
		deal.ID = primitive.NewObjectID()

		return nil
	}
	fx.userRepo.findByIDFn = func(context.Context, primitive.ObjectID) (*entity.User, error) {
		return &entity.User{}, nil
	}

	deal, err := fx.service.Create(context.Background(), &usecase.CreateDealInput{
		Name:   "Resilient deal",
		UserID: primitive.NewObjectID(),
	})

	// The mutation already committed; a dead broker must not undo it.
	require.NoError(t, err)
	assert.NotNil(t, deal)
}

func TestDealService_Delete_AnnouncesRemoval(t *testing.T) {
	fx := createTestDealService(t)
	dealID := primitive.NewObjectID()

	fx.dealRepo.findByIDFn = func(_ context.Context, id primitive.ObjectID) (*entity.Deal, error) {
		return &entity.Deal{ID: id, Name: "Old deal"}, nil
	}
	fx.dealRepo.deleteFn = func(context.Context, primitive.ObjectID) error { return nil }

	err := fx.service.Delete(context.Background(), dealID)
	require.NoError(t, err)

	require.Len(t, fx.publisher.events, 1)
	assert.Equal(t, service.DealEventDeleted, fx.publisher.events[0].Type)
	assert.Equal(t, dealID.Hex(), fx.publisher.events[0].DealID)
}

func TestDealService_Delete_UnknownDeal(t *testing.T) {
	fx := createTestDealService(t)

	fx.dealRepo.findByIDFn = func(context.Context, primitive.ObjectID) (*entity.Deal, error) {
		return nil, repository.ErrDealNotFound
	}

	err := fx.service.Delete(context.Background(), primitive.NewObjectID())
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
	assert.Empty(t, fx.publisher.events)
}

func TestDealService_Discover_UnknownUser(t *testing.T) {
	fx := createTestDealService(t)

	fx.userRepo.findByIDFn = func(context.Context, primitive.ObjectID) (*entity.User, error) {
		return nil, repository.ErrUserNotFound
	}

	rows, err := fx.service.Discover(context.Background(), &usecase.DiscoverInput{
		UserID:   primitive.NewObjectID(),
		RadiusKm: 5,
	})

	assert.Nil(t, rows)
	assert.True(t, errors.Is(err, domainerrors.ErrCannotPersonalize))
}

func TestDealService_Discover_EmptyInterests(t *testing.T) {
	fx := createTestDealService(t)

	fx.userRepo.findByIDFn = func(context.Context, primitive.ObjectID) (*entity.User, error) {
		return &entity.User{ID: primitive.NewObjectID()}, nil
	}

	rows, err := fx.service.Discover(context.Background(), &usecase.DiscoverInput{
		UserID:   primitive.NewObjectID(),
		RadiusKm: 5,
	})

	assert.Nil(t, rows)
	assert.True(t, errors.Is(err, domainerrors.ErrCannotPersonalize))
}

func TestDealService_Discover_CollapsedWindow(t *testing.T) {
	fx := createTestDealService(t)

	fx.userRepo.findByIDFn = func(context.Context, primitive.ObjectID) (*entity.User, error) {
		return &entity.User{
			ID:        primitive.NewObjectID(),
			Interests: []primitive.ObjectID{primitive.NewObjectID()},
		}, nil
	}

	// 0.1 km = 100 m, inside the 150 m floor. The aggregation never runs;
	// the unstubbed business repo would panic if it did.
	rows, err := fx.service.Discover(context.Background(), &usecase.DiscoverInput{
		UserID:   primitive.NewObjectID(),
		RadiusKm: 0.1,
	})

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestDealService_Discover_Success(t *testing.T) {
	fx := createTestDealService(t)
	interests := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}

	fx.userRepo.findByIDFn = func(context.Context, primitive.ObjectID) (*entity.User, error) {
		return &entity.User{ID: primitive.NewObjectID(), Interests: interests}, nil
	}

	caller := entity.NewGeoPoint(77.59, 12.97)
	business := entity.NewGeoPoint(77.595, 12.97)

	var query repository.DiscoveryQuery
	fx.businessRepo.discoverDealsFn = func(_ context.Context, q repository.DiscoveryQuery) ([]*entity.DiscoveredDeal, error) {
		query = q

		return []*entity.DiscoveredDeal{
			{Deal: entity.Deal{Name: "Nearby deal"}, DistanceMeters: caller.DistanceMeters(business)},
		}, nil
	}

	rows, err := fx.service.Discover(context.Background(), &usecase.DiscoverInput{
		UserID:    primitive.NewObjectID(),
		Longitude: caller.Lon(),
		Latitude:  caller.Lat(),
		RadiusKm:  5,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Nearby deal", rows[0].Deal.Name)
	assert.Greater(t, rows[0].DistanceMeters, repository.DiscoveryMinDistanceMeters)
	assert.Less(t, rows[0].DistanceMeters, query.MaxMeters)

	assert.Equal(t, 5000.0, query.MaxMeters)
	assert.Equal(t, interests, query.InterestIDs)
	assert.Equal(t, 77.59, query.Near.Lon())
	assert.Equal(t, 12.97, query.Near.Lat())
}

func TestDealService_Discover_NilRowsNormalized(t *testing.T) {
	fx := createTestDealService(t)

	fx.userRepo.findByIDFn = func(context.Context, primitive.ObjectID) (*entity.User, error) {
		return &entity.User{
			ID:        primitive.NewObjectID(),
			Interests: []primitive.ObjectID{primitive.NewObjectID()},
		}, nil
	}
	fx.businessRepo.discoverDealsFn = func(context.Context, repository.DiscoveryQuery) ([]*entity.DiscoveredDeal, error) {
		return nil, nil
	}

	rows, err := fx.service.Discover(context.Background(), &usecase.DiscoverInput{
		UserID:   primitive.NewObjectID(),
		RadiusKm: 5,
	})

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
