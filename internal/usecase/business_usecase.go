package usecase

import (
	"context"

	"dealradar/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateBusinessInput defines the data required to register a business.
type CreateBusinessInput struct {
	Name           string
	UserID         primitive.ObjectID
	OpeningTime    string
	ClosingTime    string
	PhoneNumber    string
	Email          string
	Longitude      float64
	Latitude       float64
	UpiID          string
	ManagerContact string
	CategoryID     primitive.ObjectID
	SubCategoryID  primitive.ObjectID
	Brands         []string
}

// BusinessUsecase defines the interface for business-related operations.
type BusinessUsecase interface {
	Create(ctx context.Context, input *CreateBusinessInput) (*entity.Business, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Business, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*entity.Business, error)
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.Business, error)
	// Delete removes the business together with its products.
	Delete(ctx context.Context, id primitive.ObjectID) error
	// PaymentQR renders the business's UPI id as a scannable PNG.
	PaymentQR(ctx context.Context, id primitive.ObjectID) ([]byte, error)
}
