package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is the top level of the two-level taxonomy.
type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SubCategory references its parent category. Deleting a category
// cascades to its subcategories.
type SubCategory struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	CategoryID primitive.ObjectID `bson:"categoryId" json:"categoryId"`
	Image      string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
