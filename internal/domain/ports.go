package domain

import (
	"context"
	"time"
)

type SubscriptionRepository interface {
	// Monitor paths
	DueForExpiry(ctx context.Context, now time.Time) ([]Subscription, error)
	MarkExpired(ctx context.Context, ids []string) (int64, error)
	ExpiringBetween(ctx context.Context, from, to time.Time) ([]Subscription, error)
	HasNotification(ctx context.Context, subscriptionID string, t NotificationType) (bool, error)
	// InsertNotification reports whether a row was actually written; the
	// unique key on (subscription_id, type) makes duplicates a silent no-op.
	InsertNotification(ctx context.Context, n SubscriptionNotification) (bool, error)
	CountPendingByType(ctx context.Context) (map[NotificationType]int, error)

	// Mailer paths
	PendingNotifications(ctx context.Context, limit int) ([]SubscriptionNotification, error)
	MarkNotificationSent(ctx context.Context, id string) error
}

type HotelRepository interface {
	CreateHotel(ctx context.Context, h Hotel) error
	GetHotel(ctx context.Context, id string) (Hotel, error)
	ListHotels(ctx context.Context, status *HotelStatus, limit int) ([]Hotel, error)
	UpdateHotel(ctx context.Context, h Hotel) error
	UpdateHotelStatus(ctx context.Context, id string, status HotelStatus, approvedAt *time.Time) error
	DeleteHotel(ctx context.Context, id string) error
}

// UserDirectory resolves platform users to their email addresses.
type UserDirectory interface {
	EmailByID(ctx context.Context, userID string) (string, error)
}

// AuditLog records dispatched admin notifications, best effort.
type AuditLog interface {
	RecordDispatch(ctx context.Context, rec DispatchAudit) error
}

type DispatchAudit struct {
	ID        string
	Recipient string
	Subject   string
	Priority  string
	Context   string
	ContextID string
	EmailID   string
	SentAt    time.Time
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type Email struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// EmailSender hands a message to the delivery provider and returns the
// provider's message id.
type EmailSender interface {
	Send(ctx context.Context, m Email) (string, error)
}

type Coords struct{ Lat, Lon float64 }

// LocationProvider is the geolocation capability. Current returns
// ErrCapabilityDenied when the capability is refused or unavailable.
type LocationProvider interface {
	Current(ctx context.Context) (Coords, error)
}
