package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Quantity is one stock snapshot for a product.
type Quantity struct {
	No        int       `bson:"no" json:"no"`
	BillNo    string    `bson:"billNo" json:"billNo"`
	FirmName  string    `bson:"firmName" json:"firmName"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Attribute is a free-form name/value pair attached to a product.
type Attribute struct {
	Name  string `bson:"name" json:"name"`
	Value string `bson:"value" json:"value"`
}

// Product is an item sold under a business. QuantityHistory is
// append-only: every quantity update pushes the superseded snapshot.
type Product struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	BrandName       string             `bson:"brandName" json:"brandName"`
	Description     string             `bson:"description" json:"description"`
	OpeningStock    int                `bson:"openingStock" json:"openingStock"`
	StockType       string             `bson:"stockType" json:"stockType"`
	Quantity        Quantity           `bson:"quantity" json:"quantity"`
	QuantityHistory []Quantity         `bson:"quantityHistory" json:"quantityHistory"`
	BatchNo         string             `bson:"batchNo" json:"batchNo"`
	ManufacturingAt time.Time          `bson:"manufacturingDate" json:"manufacturingDate"`
	ExpiryAt        time.Time          `bson:"expiryDate" json:"expiryDate"`
	UnitMrp         float64            `bson:"unitMrp" json:"unitMrp"`
	SellingPrice    float64            `bson:"sellingPrice" json:"sellingPrice"`
	Images          []string           `bson:"images" json:"images"`
	Attributes      []Attribute        `bson:"attributes" json:"attributes"`
	CountryCode     string             `bson:"countryCode" json:"countryCode"`
	BusinessID      primitive.ObjectID `bson:"businessId" json:"businessId"`
	UserID          primitive.ObjectID `bson:"userId" json:"userId"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
