// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"dealradar/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Name          string
	Email         string
	PhoneNumber   string
	Password      string
	CountryCode   string
	ImeiNumber    string
	DeviceToken   string
	ReferredBy    string // referral code of an existing user, optional
	Longitude     float64
	Latitude      float64
	Interests     []primitive.ObjectID
	Notifications entity.NotificationOptIn
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user.
type RegisterOutput struct {
	User *entity.User
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterUserInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.User, error)
	// Delete removes the user together with their businesses and products.
	Delete(ctx context.Context, id primitive.ObjectID) error
}
