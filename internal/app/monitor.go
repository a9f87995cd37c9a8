package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotrodebabi/internal/domain"
)

const (
	warnWindow7d = 7 * 24 * time.Hour
	warnWindow1d = 24 * time.Hour
)

// ExpiryMonitor is the scheduled batch that walks subscription end-dates:
// it expires overdue subscriptions and records the 7-day and 1-day warning
// milestones at most once each. The steps are independent; a failing step is
// logged and recorded without blocking the ones after it, and nothing is
// rolled back (each step is idempotent across runs).
type ExpiryMonitor struct {
	repo  domain.SubscriptionRepository
	clock func() time.Time
}

func NewExpiryMonitor(repo domain.SubscriptionRepository, clock func() time.Time) *ExpiryMonitor {
	if clock == nil {
		clock = time.Now
	}
	return &ExpiryMonitor{repo: repo, clock: clock}
}

// Run executes one monitor pass. The returned error is non-nil only when
// every step failed, i.e. the store is effectively unreachable; partial
// failures are reported through the summary's step_errors instead.
func (m *ExpiryMonitor) Run(ctx context.Context) (domain.ExpirySummary, error) {
	now := m.clock()
	var sum domain.ExpirySummary
	steps := 0
	failed := 0

	fail := func(step string, err error) {
		failed++
		sum.StepError = append(sum.StepError, fmt.Sprintf("%s: %v", step, err))
		log.Error().Err(err).Str("step", step).Msg("expiry monitor step failed")
	}

	// 1) expire overdue actives
	steps++
	if n, err := m.expireDue(ctx, now); err != nil {
		fail("expire", err)
	} else {
		sum.Expired = n
	}

	// 2) 7-day warning window
	steps++
	if n, err := m.warn(ctx, now, warnWindow7d, domain.NotificationWarning7d); err != nil {
		fail("warn_7d", err)
	} else {
		sum.Warned7d = n
	}

	// 3) 1-day warning window. Overlaps the 7-day window on purpose: a
	// subscription expiring tomorrow legitimately carries both warnings.
	steps++
	if n, err := m.warn(ctx, now, warnWindow1d, domain.NotificationWarning1d); err != nil {
		fail("warn_1d", err)
	} else {
		sum.Warned1d = n
	}

	// 4) undelivered notification counts
	steps++
	if pending, err := m.repo.CountPendingByType(ctx); err != nil {
		fail("pending", err)
	} else {
		sum.Pending = pending
	}

	if failed == steps {
		return sum, fmt.Errorf("expiry monitor: all %d steps failed: %s", steps, sum.StepError[0])
	}
	return sum, nil
}

// expireDue transitions active subscriptions past their end-date to expired
// and appends an "expired" notification for each. No dedup check: the select
// predicate excludes non-active rows, so a re-run is a natural no-op.
func (m *ExpiryMonitor) expireDue(ctx context.Context, now time.Time) (int, error) {
	due, err := m.repo.DueForExpiry(ctx, now)
	if err != nil {
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}
	ids := make([]string, len(due))
	for i, s := range due {
		ids[i] = s.ID
	}
	if _, err := m.repo.MarkExpired(ctx, ids); err != nil {
		return 0, err
	}
	for _, s := range due {
		if _, err := m.repo.InsertNotification(ctx, domain.SubscriptionNotification{
			ID:             uuid.NewString(),
			SubscriptionID: s.ID,
			UserID:         s.UserID,
			Type:           domain.NotificationExpired,
			CreatedAt:      now,
		}); err != nil {
			return 0, err
		}
	}
	log.Info().Int("count", len(due)).Msg("subscriptions expired")
	return len(due), nil
}

// warn inserts one warning notification per subscription whose end-date
// falls inside [now, now+window]. The existence check plus the storage-level
// unique key on (subscription_id, type) keep the milestone at-most-once even
// across concurrent runs.
func (m *ExpiryMonitor) warn(ctx context.Context, now time.Time, window time.Duration, t domain.NotificationType) (int, error) {
	subs, err := m.repo.ExpiringBetween(ctx, now, now.Add(window))
	if err != nil {
		return 0, err
	}
	warned := 0
	for _, s := range subs {
		exists, err := m.repo.HasNotification(ctx, s.ID, t)
		if err != nil {
			return warned, err
		}
		if exists {
			continue
		}
		inserted, err := m.repo.InsertNotification(ctx, domain.SubscriptionNotification{
			ID:             uuid.NewString(),
			SubscriptionID: s.ID,
			UserID:         s.UserID,
			Type:           t,
			CreatedAt:      now,
		})
		if err != nil {
			return warned, err
		}
		if inserted {
			warned++
		}
	}
	return warned, nil
}
