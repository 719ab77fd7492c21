// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "dealradar/internal/delivery/context"
	"dealradar/internal/domain/entity"
	domainerrors "dealradar/internal/domain/errors"
	"dealradar/internal/domain/repository"
	"dealradar/internal/domain/service"
	"dealradar/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx"
)

const referralBounty = 1

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	mailer       service.Mailer
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Mailer       service.Mailer
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		mailer:       params.Mailer,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete user registration process.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during registration")
	}

	newUser := &entity.User{
		Name:          input.Name,
		Email:         input.Email,
		PhoneNumber:   input.PhoneNumber,
		Password:      hashedPassword,
		ReferalCode:   newReferralCode(),
		CountryCode:   input.CountryCode,
		ImeiNumber:    input.ImeiNumber,
		DeviceToken:   input.DeviceToken,
		GeoLocation:   entity.NewGeoPoint(input.Longitude, input.Latitude),
		Interests:     input.Interests,
		Notifications: input.Notifications,
	}

	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, domainerrors.ErrEmailTaken.WrapMessage("registration rejected")
		}
		if errors.Is(err, repository.ErrDuplicatePhone) {
			return nil, domainerrors.ErrPhoneTaken.WrapMessage("registration rejected")
		}

		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	srv.rewardReferrer(ctx, input.ReferredBy)
	srv.sendWelcomeEmail(ctx, newUser)

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.RegisterOutput{User: newUser}, nil
}

// rewardReferrer credits the owner of the presented referral code.
// An unknown code is ignored; registration never fails over it.
func (srv *userService) rewardReferrer(ctx context.Context, code string) {
	if code == "" {
		return
	}

	referrer, err := srv.userRepo.FindByReferralCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Unknown referral code presented", slog.String("code", code))

			return
		}
		srv.log(ctx).Error("Failed to resolve referral code", slog.Any("error", err))

		return
	}

	if err := srv.userRepo.IncrementBounty(ctx, referrer.ID, referralBounty); err != nil {
		srv.log(ctx).Error("Failed to credit referral bounty",
			slog.Any("referrerID", referrer.ID),
			slog.Any("error", err),
		)
	}
}

// sendWelcomeEmail hands the welcome message to the email service.
// Delivery is best effort and never fails the registration.
func (srv *userService) sendWelcomeEmail(ctx context.Context, user *entity.User) {
	if !user.Notifications.Email {
		return
	}

	msg := &service.EmailMessage{
		To:      user.Email,
		Subject: "Welcome aboard",
		Body:    "Hi " + user.Name + ", your account is ready. Your referral code is " + user.ReferalCode + ".",
	}

	if err := srv.mailer.Send(ctx, msg); err != nil {
		srv.log(ctx).Warn("Failed to send welcome email",
			slog.String("email", user.Email),
			slog.Any("error", err),
		)
	}
}

// Login orchestrates the user login process.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting user login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to load user for login")
	}

	if !srv.hasher.Check(input.Password, user.Password) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	accessToken, refreshToken, err := srv.tokenService.IssueTokenPair(
		user.ID.Hex(),
		service.UserData{Name: user.Name, Email: user.Email},
	)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token pair", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue tokens during login")
	}

	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// FindByID retrieves one user.
func (srv *userService) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("user not found")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// Update applies a partial update. A new password is hashed before it
// touches the store.
func (srv *userService) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.User, error) {
	if raw, ok := fields["password"]; ok {
		plain, ok := raw.(string)
		if !ok || plain == "" {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("password must be a non-empty string")
		}

		hashed, err := srv.hasher.Hash(plain)
		if err != nil {
			return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password during update")
		}
		fields["password"] = hashed
	}

	user, err := srv.userRepo.Update(ctx, id, fields)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, domainerrors.ErrNotFound.WrapMessage("user not found")
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, domainerrors.ErrEmailTaken.WrapMessage("update rejected")
		case errors.Is(err, repository.ErrDuplicatePhone):
			return nil, domainerrors.ErrPhoneTaken.WrapMessage("update rejected")
		}

		return nil, errors.Wrap(err, "failed to update user")
	}

	return user, nil
}

// Delete removes the user and cascades to their businesses and products.
func (srv *userService) Delete(ctx context.Context, id primitive.ObjectID) error {
	srv.log(ctx).Info("Deleting user with cascade", slog.Any("userID", id))

	err := srv.txManager.Execute(ctx, func(txCtx context.Context, repos repository.RepositoryFactory) error {
		if _, err := repos.Businesses().DeleteByUserID(txCtx, id); err != nil {
			return errors.Wrap(err, "failed to cascade businesses")
		}

		if err := repos.Products().DeleteByUserID(txCtx, id); err != nil {
			return errors.Wrap(err, "failed to cascade products")
		}

		if err := repos.Users().Delete(txCtx, id); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("user not found")
			}

			return errors.Wrap(err, "failed to delete user")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute user delete cascade", slog.Any("userID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute user delete cascade")
	}

	srv.log(ctx).Info("User deleted", slog.Any("userID", id))

	return nil
}

// newReferralCode derives a short shareable code from a fresh UUID.
func newReferralCode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")

	return strings.ToUpper(raw[:8])
}
