package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Deal is a time-boxed promotional offer tied to one product of one
// business. EndDate is the expiry boundary consulted by discovery
// clients; the query itself surfaces whatever the store holds.
type Deal struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	StartDate      time.Time          `bson:"startDate" json:"startDate"`
	EndDate        time.Time          `bson:"endDate" json:"endDate"`
	Description    string             `bson:"description" json:"description"`
	MarketPrice    float64            `bson:"marketPrice" json:"marketPrice"`
	OfferPrice     float64            `bson:"offerPrice" json:"offerPrice"`
	HomeDelivery   bool               `bson:"homeDelivery" json:"homeDelivery"`
	ReturnAccepted bool               `bson:"returnAccepted" json:"returnAccepted"`
	ProductID      primitive.ObjectID `bson:"productId" json:"productId"`
	BusinessID     primitive.ObjectID `bson:"businessId" json:"businessId"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DiscoveredDeal is one row of the discovery aggregation: a nearby
// business, one of its deals, and the deal's product when it resolves.
type DiscoveredDeal struct {
	Business       Business `bson:"business" json:"business"`
	Deal           Deal     `bson:"deal" json:"deal"`
	Product        *Product `bson:"product,omitempty" json:"product,omitempty"`
	DistanceMeters float64  `bson:"distanceMeters" json:"distanceMeters"`
}
