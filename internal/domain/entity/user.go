package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationOptIn holds the user's per-channel delivery preferences.
type NotificationOptIn struct {
	Email bool `bson:"email" json:"email"`
	Push  bool `bson:"push" json:"push"`
	SMS   bool `bson:"sms" json:"sms"`
}

// User is the core identity in the system. Email and phone number are
// globally unique; Password always holds a bcrypt hash, never plaintext.
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	PhoneNumber string             `bson:"phoneNumber" json:"phoneNumber"`
	Password    string             `bson:"password" json:"-"`
	// ReferalCode keeps the historical wire spelling used by clients.
	ReferalCode string             `bson:"referalCode" json:"referalCode"`
	CountryCode string             `bson:"countryCode" json:"countryCode"`
	ImeiNumber  string             `bson:"imeiNumber" json:"imeiNumber"`
	DeviceToken string             `bson:"deviceToken,omitempty" json:"deviceToken,omitempty"`
	GeoLocation GeoPoint           `bson:"geoLocation" json:"geoLocation"`
	// Interests is the set of subcategory ids used to personalize deal discovery.
	Interests     []primitive.ObjectID `bson:"interestArray" json:"interestArray"`
	Bounty        int                  `bson:"bounty" json:"bounty"`
	Notifications NotificationOptIn    `bson:"notifications" json:"notifications"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// HasInterests reports whether the user can be personalized at all.
// Discovery refuses to run for users without a declared interest set.
func (u *User) HasInterests() bool {
	return len(u.Interests) > 0
}
