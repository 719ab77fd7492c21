package service

import (
	"context"
	"time"
)

// Deal event types.
const (
	DealEventCreated = "deal.created"
	DealEventDeleted = "deal.deleted"
)

// DealEvent is published on deal lifecycle changes for downstream
// consumers (notification fan-out, analytics).
type DealEvent struct {
	Type       string    `json:"type"`
	DealID     string    `json:"dealId"`
	BusinessID string    `json:"businessId"`
	UserID     string    `json:"userId"`
	Name       string    `json:"name"`
	OfferPrice float64   `json:"offerPrice"`
	EndDate    time.Time `json:"endDate"`
	OccurredAt time.Time `json:"occurredAt"`
}

// EventPublisher pushes deal events to the configured provider.
type EventPublisher interface {
	PublishDealEvent(ctx context.Context, event *DealEvent) error
	Close() error
}
