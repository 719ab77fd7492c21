// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application
// layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"dealradar/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Domain-specific errors for user persistence.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when the unique email index rejects a write.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicatePhone is returned when the unique phone index rejects a write.
	ErrDuplicatePhone = errors.New("phone number already registered")
)

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete
// implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique id.
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByReferralCode retrieves the user owning a referral code.
	FindByReferralCode(ctx context.Context, code string) (*entity.User, error)

	// Create persists a new user. Unique-index clashes surface as
	// ErrDuplicateEmail / ErrDuplicatePhone.
	Create(ctx context.Context, user *entity.User) error

	// Update applies a partial field update to an existing user.
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.User, error)

	// Delete removes a user. Cascades are orchestrated by the usecase.
	Delete(ctx context.Context, id primitive.ObjectID) error

	// IncrementBounty atomically adds delta to the user's bounty counter.
	IncrementBounty(ctx context.Context, id primitive.ObjectID, delta int) error
}
