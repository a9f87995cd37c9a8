package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hotrodebabi/internal/app"
	"hotrodebabi/internal/domain"
)

// fakeSubRepo is an in-memory SubscriptionRepository mirroring the storage
// semantics that matter to the monitor: the status predicate on selects and
// the unique key on (subscription_id, type).
type fakeSubRepo struct {
	mu     sync.Mutex // the mailer marks rows sent from worker goroutines
	subs   map[string]*domain.Subscription
	notifs map[string]domain.SubscriptionNotification // keyed subID|type

	// hideExisting makes HasNotification report false even when the row is
	// there, to exercise the insert-ignore path under a lost race.
	hideExisting bool

	dueErr, markErr, expiringErr, hasErr, insertErr, countErr, pendingErr, sentErr error
}

func newFakeSubRepo(subs ...domain.Subscription) *fakeSubRepo {
	r := &fakeSubRepo{
		subs:   make(map[string]*domain.Subscription),
		notifs: make(map[string]domain.SubscriptionNotification),
	}
	for i := range subs {
		s := subs[i]
		r.subs[s.ID] = &s
	}
	return r
}

func notifKey(subID string, t domain.NotificationType) string { return subID + "|" + string(t) }

func (r *fakeSubRepo) DueForExpiry(_ context.Context, now time.Time) ([]domain.Subscription, error) {
	if r.dueErr != nil {
		return nil, r.dueErr
	}
	var out []domain.Subscription
	for _, s := range r.subs {
		if s.Status == domain.SubscriptionActive && s.EndDate != nil && s.EndDate.Before(now) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSubRepo) MarkExpired(_ context.Context, ids []string) (int64, error) {
	if r.markErr != nil {
		return 0, r.markErr
	}
	var n int64
	for _, id := range ids {
		if s, ok := r.subs[id]; ok && s.Status == domain.SubscriptionActive {
			s.Status = domain.SubscriptionExpired
			n++
		}
	}
	return n, nil
}

func (r *fakeSubRepo) ExpiringBetween(_ context.Context, from, to time.Time) ([]domain.Subscription, error) {
	if r.expiringErr != nil {
		return nil, r.expiringErr
	}
	var out []domain.Subscription
	for _, s := range r.subs {
		if s.Status != domain.SubscriptionActive || s.EndDate == nil {
			continue
		}
		if !s.EndDate.Before(from) && !s.EndDate.After(to) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeSubRepo) HasNotification(_ context.Context, subID string, t domain.NotificationType) (bool, error) {
	if r.hasErr != nil {
		return false, r.hasErr
	}
	if r.hideExisting {
		return false, nil
	}
	_, ok := r.notifs[notifKey(subID, t)]
	return ok, nil
}

func (r *fakeSubRepo) InsertNotification(_ context.Context, n domain.SubscriptionNotification) (bool, error) {
	if r.insertErr != nil {
		return false, r.insertErr
	}
	k := notifKey(n.SubscriptionID, n.Type)
	if _, ok := r.notifs[k]; ok {
		return false, nil
	}
	r.notifs[k] = n
	return true, nil
}

func (r *fakeSubRepo) CountPendingByType(_ context.Context) (map[domain.NotificationType]int, error) {
	if r.countErr != nil {
		return nil, r.countErr
	}
	out := make(map[domain.NotificationType]int)
	for _, n := range r.notifs {
		if !n.EmailSent {
			out[n.Type]++
		}
	}
	return out, nil
}

func (r *fakeSubRepo) PendingNotifications(_ context.Context, limit int) ([]domain.SubscriptionNotification, error) {
	if r.pendingErr != nil {
		return nil, r.pendingErr
	}
	var out []domain.SubscriptionNotification
	for _, n := range r.notifs {
		if !n.EmailSent && len(out) < limit {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeSubRepo) MarkNotificationSent(_ context.Context, id string) error {
	if r.sentErr != nil {
		return r.sentErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, n := range r.notifs {
		if n.ID == id {
			n.EmailSent = true
			r.notifs[k] = n
		}
	}
	return nil
}

func activeSub(id string, end time.Time) domain.Subscription {
	return domain.Subscription{
		ID:      id,
		UserID:  "user-" + id,
		Plan:    domain.PlanPremium,
		Status:  domain.SubscriptionActive,
		EndDate: &end,
	}
}

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestMonitor_ExpireOnceAcrossRuns(t *testing.T) {
	now := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
	repo := newFakeSubRepo(activeSub("s1", now.Add(-time.Hour)))
	mon := app.NewExpiryMonitor(repo, fixedClock(now))

	sum, err := mon.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.Expired != 1 {
		t.Fatalf("expired = %d, want 1", sum.Expired)
	}
	if repo.subs["s1"].Status != domain.SubscriptionExpired {
		t.Fatal("subscription not transitioned to expired")
	}
	if _, ok := repo.notifs[notifKey("s1", domain.NotificationExpired)]; !ok {
		t.Fatal("expired notification not recorded")
	}

	// a second pass must be a no-op: the row is no longer active
	sum, err = mon.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if sum.Expired != 0 {
		t.Fatalf("second run expired = %d, want 0", sum.Expired)
	}
	if len(repo.notifs) != 1 {
		t.Fatalf("notifications = %d, want 1", len(repo.notifs))
	}
}

func TestMonitor_WarningWindowsOverlap(t *testing.T) {
	now := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
	// 12h out: inside both the 7-day and the 1-day window
	repo := newFakeSubRepo(activeSub("s1", now.Add(12*time.Hour)))
	mon := app.NewExpiryMonitor(repo, fixedClock(now))

	sum, err := mon.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.Warned7d != 1 || sum.Warned1d != 1 {
		t.Fatalf("warned = (%d, %d), want (1, 1)", sum.Warned7d, sum.Warned1d)
	}

	sum, err = mon.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if sum.Warned7d != 0 || sum.Warned1d != 0 {
		t.Fatalf("second run warned = (%d, %d), want (0, 0)", sum.Warned7d, sum.Warned1d)
	}
}

func TestMonitor_SevenDayWindowOnly(t *testing.T) {
	now := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
	repo := newFakeSubRepo(
		activeSub("s1", now.Add(3*24*time.Hour)), // 7d window only
		activeSub("s2", now.Add(9*24*time.Hour)), // outside both
	)
	mon := app.NewExpiryMonitor(repo, fixedClock(now))

	sum, err := mon.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.Warned7d != 1 || sum.Warned1d != 0 {
		t.Fatalf("warned = (%d, %d), want (1, 0)", sum.Warned7d, sum.Warned1d)
	}
	if sum.Pending[domain.NotificationWarning7d] != 1 {
		t.Fatalf("pending 7d = %d, want 1", sum.Pending[domain.NotificationWarning7d])
	}
}

func TestMonitor_LostRaceIsNotCounted(t *testing.T) {
	now := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
	repo := newFakeSubRepo(activeSub("s1", now.Add(12*time.Hour)))
	repo.notifs[notifKey("s1", domain.NotificationWarning1d)] = domain.SubscriptionNotification{
		ID: "pre", SubscriptionID: "s1", Type: domain.NotificationWarning1d,
	}
	// the existence check misses the row; the insert must still dedup
	repo.hideExisting = true
	mon := app.NewExpiryMonitor(repo, fixedClock(now))

	sum, err := mon.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.Warned1d != 0 {
		t.Fatalf("warned 1d = %d, want 0 after losing the insert race", sum.Warned1d)
	}
	if got := repo.notifs[notifKey("s1", domain.NotificationWarning1d)].ID; got != "pre" {
		t.Fatalf("existing notification overwritten: %s", got)
	}
}

func TestMonitor_StepFailureDoesNotBlockOthers(t *testing.T) {
	now := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
	repo := newFakeSubRepo(activeSub("s1", now.Add(12*time.Hour)))
	repo.dueErr = errors.New("lock wait timeout")
	mon := app.NewExpiryMonitor(repo, fixedClock(now))

	sum, err := mon.Run(context.Background())
	if err != nil {
		t.Fatalf("partial failure must not fail the run: %v", err)
	}
	if len(sum.StepError) != 1 {
		t.Fatalf("step errors = %v, want exactly one", sum.StepError)
	}
	if sum.Warned7d != 1 || sum.Warned1d != 1 {
		t.Fatalf("later steps skipped: warned = (%d, %d)", sum.Warned7d, sum.Warned1d)
	}
}

func TestMonitor_AllStepsFailing(t *testing.T) {
	repo := newFakeSubRepo()
	dbDown := errors.New("driver: bad connection")
	repo.dueErr, repo.expiringErr, repo.countErr = dbDown, dbDown, dbDown

	sum, err := app.NewExpiryMonitor(repo, nil).Run(context.Background())
	if err == nil {
		t.Fatal("expected an error when every step fails")
	}
	if len(sum.StepError) != 4 {
		t.Fatalf("step errors = %v, want all four recorded", sum.StepError)
	}
}
