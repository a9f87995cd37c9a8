package domain

import "time"

type PlanType string

const (
	PlanFreemium   PlanType = "freemium"
	PlanPremium    PlanType = "premium"
	PlanEnterprise PlanType = "enterprise"
)

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionExpired   SubscriptionStatus = "expired"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionSuspended SubscriptionStatus = "suspended"
)

// Subscription is a hotel owner's paid-plan record. The expiry monitor only
// ever moves active -> expired; cancelled and suspended are admin-set.
type Subscription struct {
	ID        string
	UserID    string
	Plan      PlanType
	Status    SubscriptionStatus
	StartDate time.Time
	EndDate   *time.Time // nil for freemium plans with no expiry
	AutoRenew bool
	// Opaque external billing reference; never interpreted here.
	StripeSubscriptionID *string
}

type NotificationType string

const (
	NotificationExpired   NotificationType = "expired"
	NotificationWarning7d NotificationType = "expiry_warning_7d"
	NotificationWarning1d NotificationType = "expiry_warning_1d"
)

// SubscriptionNotification is an append-only record of a lifecycle milestone.
// At most one warning of each type exists per subscription; the storage layer
// enforces this with a unique key on (subscription_id, type).
type SubscriptionNotification struct {
	ID             string
	SubscriptionID string
	UserID         string
	Type           NotificationType
	EmailSent      bool
	CreatedAt      time.Time
}

// ExpirySummary is the result payload of one monitor run.
type ExpirySummary struct {
	Expired   int                      `json:"expired"`
	Warned7d  int                      `json:"warned_7d"`
	Warned1d  int                      `json:"warned_1d"`
	Pending   map[NotificationType]int `json:"pending_by_type"`
	StepError []string                 `json:"step_errors,omitempty"`
}
