package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Business is a physical/commercial listing owned by a user. GeoLocation
// is a GeoJSON point backed by a 2dsphere index; proximity queries in
// deal discovery run against it.
type Business struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	OpeningTime    string             `bson:"openingTime" json:"openingTime"`
	ClosingTime    string             `bson:"closingTime" json:"closingTime"`
	PhoneNumber    string             `bson:"phoneNumber" json:"phoneNumber"`
	Email          string             `bson:"email,omitempty" json:"email,omitempty"`
	GeoLocation    GeoPoint           `bson:"geoLocation" json:"geoLocation"`
	UpiID          string             `bson:"upiId" json:"upiId"`
	ManagerContact string             `bson:"managerContact" json:"managerContact"`
	CategoryID     primitive.ObjectID `bson:"categoryId" json:"categoryId"`
	SubCategoryID  primitive.ObjectID `bson:"subCategoryId" json:"subCategoryId"`
	Brands         []string           `bson:"brands" json:"brands"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
