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

type userServiceFixtures struct {
	service  usecase.UserUsecase
	userRepo *fakeUserRepo
	hasher   *fakeHasher
	tokens   *fakeTokenService
	mailer   *fakeMailer
	factory  *fakeFactory
}

func createTestUserService(t *testing.T) userServiceFixtures {
	t.Helper()

	userRepo := &fakeUserRepo{}
	hasher := &fakeHasher{}
	tokens := &fakeTokenService{}
	mailer := &fakeMailer{}
	factory := &fakeFactory{users: userRepo}

	service := NewUserService(UserServiceParams{
		TxManager:    &fakeTxManager{factory: factory},
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokens,
		Mailer:       mailer,
		Logger:       newDiscardLogger(),
	})

	return userServiceFixtures{
		service:  service,
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		mailer:   mailer,
		factory:  factory,
	}
}

func TestUserService_Register_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	var created *entity.User
	fx.userRepo.createFn = func(_ context.Context, user *entity.User) error {
		user.ID = primitive.NewObjectID()
		created = user

		return nil
	}

	input := &usecase.RegisterUserInput{
		Name:          "Test User",
		Email:         "test@example.com",
		PhoneNumber:   "+911234567890",
		Password:      "Password123!",
		Longitude:     77.59,
		Latitude:      12.97,
		Notifications: entity.NotificationOptIn{Email: true},
	}

	output, err := fx.service.Register(ctx, input)
	require.NoError(t, err)
	require.NotNil(t, output)

	assert.Equal(t, input.Email, output.User.Email)
	assert.False(t, output.User.ID.IsZero())
	assert.Equal(t, "hashed:Password123!", created.Password)
	assert.True(t, created.GeoLocation.Valid())
	assert.Equal(t, 77.59, created.GeoLocation.Lon())

	// Referral codes are 8 uppercase hex characters.
	assert.Len(t, created.ReferalCode, 8)
	assert.Equal(t, created.ReferalCode, output.User.ReferalCode)

	// Opted into email, so the welcome mail went out.
	require.Len(t, fx.mailer.sent, 1)
	assert.Equal(t, input.Email, fx.mailer.sent[0].To)
}

func TestUserService_Register_EmailOptOutSkipsWelcomeMail(t *testing.T) {
	fx := createTestUserService(t)

	fx.userRepo.createFn = func(_ context.Context, user *entity.User) error {
		user.ID = primitive.NewObjectID()

		return nil
	}

	_, err := fx.service.Register(context.Background(), &usecase.RegisterUserInput{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "Password123!",
	})
	require.NoError(t, err)
	assert.Empty(t, fx.mailer.sent)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestUserService(t)

	fx.userRepo.createFn = func(context.Context, *entity.User) error {
		return repository.ErrDuplicateEmail
	}

	output, err := fx.service.Register(context.Background(), &usecase.RegisterUserInput{
		Email:    "taken@example.com",
		Password: "Password123!",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
}

func TestUserService_Register_DuplicatePhone(t *testing.T) {
	fx := createTestUserService(t)

	fx.userRepo.createFn = func(context.Context, *entity.User) error {
		return repository.ErrDuplicatePhone
	}

	output, err := fx.service.Register(context.Background(), &usecase.RegisterUserInput{
		Email:       "test@example.com",
		PhoneNumber: "+911234567890",
		Password:    "Password123!",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrPhoneTaken))
}

func TestUserService_Register_ReferralCreditsReferrer(t *testing.T) {
	fx := createTestUserService(t)
	referrerID := primitive.NewObjectID()

	fx.userRepo.createFn = func(_ context.Context, user *entity.User) error {
		user.ID = primitive.NewObjectID()

		return nil
	}
	fx.userRepo.findByReferralCodeFn = func(_ context.Context, code string) (*entity.User, error) {
		assert.Equal(t, "AB12CD34", code)

		return &entity.User{ID: referrerID, Bounty: 3}, nil
	}

	var creditedID primitive.ObjectID
	var creditedDelta int
	fx.userRepo.incrementBountyFn = func(_ context.Context, id primitive.ObjectID, delta int) error {
		creditedID = id
		creditedDelta = delta

		return nil
	}

	_, err := fx.service.Register(context.Background(), &usecase.RegisterUserInput{
		Email:      "test@example.com",
		Password:   "Password123!",
		ReferredBy: "AB12CD34",
	})
	require.NoError(t, err)

	assert.Equal(t, referrerID, creditedID)
	assert.Equal(t, 1, creditedDelta)
}

func TestUserService_Register_UnknownReferralCodeIgnored(t *testing.T) {
	fx := createTestUserService(t)

	fx.userRepo.createFn = func(_ context.Context, user *entity.User) error {
		user.ID = primitive.NewObjectID()

		return nil
	}
	fx.userRepo.findByReferralCodeFn = func(context.Context, string) (*entity.User, error) {
		return nil, repository.ErrUserNotFound
	}

	output, err := fx.service.Register(context.Background(), &usecase.RegisterUserInput{
		Email:      "test@example.com",
		Password:   "Password123!",
		ReferredBy: "NOPE0000",
	})

	// A bad code never fails the registration.
	require.NoError(t, err)
	assert.NotNil(t, output)
}

func TestUserService_Login_Success(t *testing.T) {
	fx := createTestUserService(t)
	userID := primitive.NewObjectID()

	fx.userRepo.findByEmailFn = func(_ context.Context, email string) (*entity.User, error) {
		return &entity.User{
			ID:       userID,
			Name:     "Test User",
			Email:    email,
			Password: "hashed:Password123!",
		}, nil
	}

	output, err := fx.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "test@example.com",
		Password: "Password123!",
	})
	require.NoError(t, err)

	assert.Equal(t, "access-"+userID.Hex(), output.AccessToken)
	assert.Equal(t, "refresh-"+userID.Hex(), output.RefreshToken)
	assert.Equal(t, userID, output.User.ID)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	fx := createTestUserService(t)

	fx.userRepo.findByEmailFn = func(_ context.Context, email string) (*entity.User, error) {
		return &entity.User{Email: email, Password: "hashed:Correct123!"}, nil
	}

	output, err := fx.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "test@example.com",
		Password: "Wrong123!",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	fx := createTestUserService(t)

	fx.userRepo.findByEmailFn = func(context.Context, string) (*entity.User, error) {
		return nil, repository.ErrUserNotFound
	}

	output, err := fx.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "Password123!",
	})

	// Unknown email and wrong password are indistinguishable to the caller.
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestUserService_Update_HashesPassword(t *testing.T) {
	fx := createTestUserService(t)
	userID := primitive.NewObjectID()

	var updatedFields map[string]any
	fx.userRepo.updateFn = func(_ context.Context, _ primitive.ObjectID, fields map[string]any) (*entity.User, error) {
		updatedFields = fields

		return &entity.User{ID: userID}, nil
	}

	_, err := fx.service.Update(context.Background(), userID, map[string]any{
		"name":     "New Name",
		"password": "NewPass123!",
	})
	require.NoError(t, err)

	assert.Equal(t, "hashed:NewPass123!", updatedFields["password"])
	assert.Equal(t, "New Name", updatedFields["name"])
}

func TestUserService_Update_RejectsNonStringPassword(t *testing.T) {
	fx := createTestUserService(t)

	_, err := fx.service.Update(context.Background(), primitive.NewObjectID(), map[string]any{
		"password": 12345,
	})

	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestUserService_Delete_CascadesBusinessesAndProducts(t *testing.T) {
	fx := createTestUserService(t)
	userID := primitive.NewObjectID()

	var order []string

	businessRepo := &fakeBusinessRepo{
		deleteByUserIDFn: func(_ context.Context, id primitive.ObjectID) ([]primitive.ObjectID, error) {
			assert.Equal(t, userID, id)
			order = append(order, "businesses")

			return []primitive.ObjectID{primitive.NewObjectID()}, nil
		},
	}
	productRepo := &fakeProductRepo{
		deleteByUserIDFn: func(_ context.Context, id primitive.ObjectID) error {
			assert.Equal(t, userID, id)
			order = append(order, "products")

			return nil
		},
	}
	fx.factory.businesses = businessRepo
	fx.factory.products = productRepo
	fx.userRepo.deleteFn = func(_ context.Context, id primitive.ObjectID) error {
		assert.Equal(t, userID, id)
		order = append(order, "user")

		return nil
	}

	err := fx.service.Delete(context.Background(), userID)
	require.NoError(t, err)

	// Dependents go first so a failed cascade never orphans them.
	assert.Equal(t, []string{"businesses", "products", "user"}, order)
}

func TestUserService_Delete_UnknownUser(t *testing.T) {
	fx := createTestUserService(t)

	fx.factory.businesses = &fakeBusinessRepo{
		deleteByUserIDFn: func(context.Context, primitive.ObjectID) ([]primitive.ObjectID, error) {
			return nil, nil
		},
	}
	fx.factory.products = &fakeProductRepo{
		deleteByUserIDFn: func(context.Context, primitive.ObjectID) error { return nil },
	}
	fx.userRepo.deleteFn = func(context.Context, primitive.ObjectID) error {
		return repository.ErrUserNotFound
	}

	err := fx.service.Delete(context.Background(), primitive.NewObjectID())
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}
