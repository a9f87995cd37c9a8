package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"hotrodebabi/internal/app"
	"hotrodebabi/internal/domain"
)

func pendingNotif(id, subID, userID string, t domain.NotificationType) domain.SubscriptionNotification {
	return domain.SubscriptionNotification{ID: id, SubscriptionID: subID, UserID: userID, Type: t}
}

func TestMailer_DrainSendsAndMarks(t *testing.T) {
	repo := newFakeSubRepo()
	repo.notifs[notifKey("s1", domain.NotificationWarning7d)] = pendingNotif("n1", "s1", "u1", domain.NotificationWarning7d)
	repo.notifs[notifKey("s2", domain.NotificationExpired)] = pendingNotif("n2", "s2", "u2", domain.NotificationExpired)

	users := &fakeUsers{emails: map[string]string{"u1": "a@hotel.ci", "u2": "b@hotel.ci"}}
	sender := &fakeSender{}
	m := app.NewMailer(repo, users, sender, 2, 50)

	sent, failed, err := m.Drain(context.Background())
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if sent != 2 || failed != 0 {
		t.Fatalf("sent=%d failed=%d, want 2/0", sent, failed)
	}
	for _, n := range repo.notifs {
		if !n.EmailSent {
			t.Fatalf("notification %s still pending", n.ID)
		}
	}

	var warn7 bool
	for _, e := range sender.sent {
		if strings.Contains(e.Subject, "7 jours") {
			warn7 = true
		}
	}
	if !warn7 {
		t.Fatal("7-day milestone subject missing")
	}

	// a second drain finds nothing
	if sent, _, _ := m.Drain(context.Background()); sent != 0 {
		t.Fatalf("second drain sent %d, want 0", sent)
	}
}

func TestMailer_FailedSendStaysPending(t *testing.T) {
	repo := newFakeSubRepo()
	repo.notifs[notifKey("s1", domain.NotificationWarning1d)] = pendingNotif("n1", "s1", "u1", domain.NotificationWarning1d)

	users := &fakeUsers{emails: map[string]string{"u1": "a@hotel.ci"}}
	m := app.NewMailer(repo, users, &fakeSender{err: errors.New("throttled")}, 1, 10)

	sent, failed, err := m.Drain(context.Background())
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if sent != 0 || failed != 1 {
		t.Fatalf("sent=%d failed=%d, want 0/1", sent, failed)
	}
	if repo.notifs[notifKey("s1", domain.NotificationWarning1d)].EmailSent {
		t.Fatal("failed delivery must leave the row pending")
	}
}

func TestMailer_UnresolvableUserFails(t *testing.T) {
	repo := newFakeSubRepo()
	repo.notifs[notifKey("s1", domain.NotificationExpired)] = pendingNotif("n1", "s1", "ghost", domain.NotificationExpired)

	sender := &fakeSender{}
	m := app.NewMailer(repo, &fakeUsers{}, sender, 1, 10)

	sent, failed, err := m.Drain(context.Background())
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if sent != 0 || failed != 1 || len(sender.sent) != 0 {
		t.Fatalf("sent=%d failed=%d delivered=%d, want 0/1/0", sent, failed, len(sender.sent))
	}
}

func TestMailer_ListFailure(t *testing.T) {
	repo := newFakeSubRepo()
	repo.pendingErr = errors.New("bad connection")
	if _, _, err := app.NewMailer(repo, &fakeUsers{}, &fakeSender{}, 1, 10).Drain(context.Background()); err == nil {
		t.Fatal("expected the list failure to surface")
	}
}
