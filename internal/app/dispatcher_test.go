package app_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"hotrodebabi/internal/app"
	"hotrodebabi/internal/domain"
)

type fakeUsers struct {
	emails map[string]string
	err    error
}

func (f *fakeUsers) EmailByID(_ context.Context, userID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	e, ok := f.emails[userID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return e, nil
}

// fakeSender is shared with the mailer tests, which send concurrently.
type fakeSender struct {
	mu   sync.Mutex
	sent []domain.Email
	err  error
}

func (f *fakeSender) Send(_ context.Context, m domain.Email) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, m)
	return "msg-001", nil
}

type fakeAudit struct {
	recs []domain.DispatchAudit
	err  error
}

func (f *fakeAudit) RecordDispatch(_ context.Context, rec domain.DispatchAudit) error {
	if f.err != nil {
		return f.err
	}
	f.recs = append(f.recs, rec)
	return nil
}

func TestDispatch_RequiresTarget(t *testing.T) {
	sender := &fakeSender{}
	d := app.NewDispatcher(&fakeUsers{}, sender, &fakeAudit{})

	_, err := d.Dispatch(context.Background(), app.DispatchRequest{
		Subject: "Maintenance", Message: "Le site sera indisponible ce soir.",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatal("validation failure must not send anything")
	}
}

func TestDispatch_RequiresSubjectAndMessage(t *testing.T) {
	d := app.NewDispatcher(&fakeUsers{}, &fakeSender{}, &fakeAudit{})
	for _, req := range []app.DispatchRequest{
		{TargetEmail: "a@b.ci", Message: "corps"},
		{TargetEmail: "a@b.ci", Subject: "objet"},
		{TargetEmail: "a@b.ci", Subject: "  ", Message: "corps"},
	} {
		if _, err := d.Dispatch(context.Background(), req); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("req %+v: expected validation error, got %v", req, err)
		}
	}
}

func TestDispatch_ResolvesUserID(t *testing.T) {
	users := &fakeUsers{emails: map[string]string{"u1": "owner@hotel.ci"}}
	sender := &fakeSender{}
	audit := &fakeAudit{}
	d := app.NewDispatcher(users, sender, audit)

	res, err := d.Dispatch(context.Background(), app.DispatchRequest{
		TargetUserID: "u1",
		Subject:      "Abonnement",
		Message:      "Votre abonnement expire bientôt.",
		Priority:     "URGENT",
		Context:      "subscription",
		ContextID:    "sub-9",
	})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if res.EmailID != "msg-001" {
		t.Fatalf("email id = %q", res.EmailID)
	}
	if len(sender.sent) != 1 || sender.sent[0].To != "owner@hotel.ci" {
		t.Fatalf("sent = %+v", sender.sent)
	}
	if !strings.Contains(sender.sent[0].HTML, "URGENT") {
		t.Fatal("urgent banner missing from the html body")
	}
	if len(audit.recs) != 1 || audit.recs[0].Priority != "urgent" || audit.recs[0].ContextID != "sub-9" {
		t.Fatalf("audit = %+v", audit.recs)
	}
}

func TestDispatch_UnknownUser(t *testing.T) {
	d := app.NewDispatcher(&fakeUsers{}, &fakeSender{}, &fakeAudit{})
	_, err := d.Dispatch(context.Background(), app.DispatchRequest{
		TargetUserID: "ghost", Subject: "s", Message: "m",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error for unresolvable user, got %v", err)
	}
}

func TestDispatch_ExplicitEmailWins(t *testing.T) {
	users := &fakeUsers{err: errors.New("directory down")}
	sender := &fakeSender{}
	d := app.NewDispatcher(users, sender, &fakeAudit{})

	if _, err := d.Dispatch(context.Background(), app.DispatchRequest{
		TargetEmail: "direct@hotel.ci", Subject: "s", Message: "m",
	}); err != nil {
		t.Fatalf("explicit address must not hit the directory: %v", err)
	}
	if sender.sent[0].To != "direct@hotel.ci" {
		t.Fatalf("to = %q", sender.sent[0].To)
	}
}

func TestDispatch_ProviderFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("throttled")}
	audit := &fakeAudit{}
	d := app.NewDispatcher(&fakeUsers{}, sender, audit)

	_, err := d.Dispatch(context.Background(), app.DispatchRequest{
		TargetEmail: "a@b.ci", Subject: "s", Message: "m",
	})
	if err == nil {
		t.Fatal("provider failure must surface")
	}
	if len(audit.recs) != 0 {
		t.Fatal("failed sends must not be audited")
	}
}

func TestDispatch_AuditFailureIsSwallowed(t *testing.T) {
	d := app.NewDispatcher(&fakeUsers{}, &fakeSender{}, &fakeAudit{err: errors.New("table locked")})
	res, err := d.Dispatch(context.Background(), app.DispatchRequest{
		TargetEmail: "a@b.ci", Subject: "s", Message: "m",
	})
	if err != nil {
		t.Fatalf("audit failure must not fail the dispatch: %v", err)
	}
	if res.EmailID == "" {
		t.Fatal("result missing the provider message id")
	}
}

func TestDispatch_NoSenderConfigured(t *testing.T) {
	d := app.NewDispatcher(&fakeUsers{}, nil, nil)
	_, err := d.Dispatch(context.Background(), app.DispatchRequest{
		TargetEmail: "a@b.ci", Subject: "s", Message: "m",
	})
	if err == nil || errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected a configuration error, got %v", err)
	}
}
