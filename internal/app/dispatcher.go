package app

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotrodebabi/internal/domain"
)

type DispatchRequest struct {
	TargetUserID string `json:"targetUserId,omitempty"`
	TargetEmail  string `json:"targetEmail,omitempty"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
	Priority     string `json:"priority,omitempty"` // urgent | high | normal
	Context      string `json:"context,omitempty"`
	ContextID    string `json:"contextId,omitempty"`
}

type DispatchResult struct {
	EmailID   string
	Timestamp time.Time
}

// Dispatcher sends templated admin notifications to a single user. Requests
// are validated before any side effect; delivery failures surface to the
// caller; the audit row afterwards is best effort and its failure is only
// logged.
type Dispatcher struct {
	users  domain.UserDirectory
	sender domain.EmailSender
	audit  domain.AuditLog
	clock  func() time.Time
}

func NewDispatcher(users domain.UserDirectory, sender domain.EmailSender, audit domain.AuditLog) *Dispatcher {
	return &Dispatcher{users: users, sender: sender, audit: audit, clock: time.Now}
}

func (d *Dispatcher) Dispatch(ctx context.Context, req DispatchRequest) (DispatchResult, error) {
	if strings.TrimSpace(req.TargetUserID) == "" && strings.TrimSpace(req.TargetEmail) == "" {
		return DispatchResult{}, fmt.Errorf("%w: targetUserId or targetEmail is required", domain.ErrValidation)
	}
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Message) == "" {
		return DispatchResult{}, fmt.Errorf("%w: subject and message are required", domain.ErrValidation)
	}

	if d.sender == nil {
		return DispatchResult{}, fmt.Errorf("email delivery is not configured")
	}

	to := strings.TrimSpace(req.TargetEmail)
	if to == "" {
		email, err := d.users.EmailByID(ctx, req.TargetUserID)
		if err != nil || email == "" {
			return DispatchResult{}, fmt.Errorf("%w: no email address for user %s", domain.ErrValidation, req.TargetUserID)
		}
		to = email
	}

	prio := normalizePriority(req.Priority)
	msg := domain.Email{
		To:      to,
		Subject: req.Subject,
		HTML:    renderBody(prio, req.Subject, req.Message),
		Text:    req.Message,
	}

	emailID, err := d.sender.Send(ctx, msg)
	if err != nil {
		return DispatchResult{}, fmt.Errorf("dispatch to %s: %w", to, err)
	}

	result := DispatchResult{EmailID: emailID, Timestamp: d.clock()}

	if d.audit != nil {
		rec := domain.DispatchAudit{
			ID:        uuid.NewString(),
			Recipient: to,
			Subject:   req.Subject,
			Priority:  prio,
			Context:   req.Context,
			ContextID: req.ContextID,
			EmailID:   emailID,
			SentAt:    result.Timestamp,
		}
		if err := d.audit.RecordDispatch(ctx, rec); err != nil {
			log.Warn().Err(err).Str("recipient", to).Msg("dispatch audit write failed")
		}
	}
	return result, nil
}

func normalizePriority(p string) string {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "urgent":
		return "urgent"
	case "high":
		return "high"
	default:
		return "normal"
	}
}

// Severity banner is a visual marker only; delivery is identical for every
// priority.
var priorityBanner = map[string]struct{ label, color string }{
	"urgent": {"URGENT", "#dc2626"},
	"high":   {"Important", "#d97706"},
	"normal": {"Information", "#2563eb"},
}

func renderBody(priority, subject, message string) string {
	b := priorityBanner[priority]
	var sb strings.Builder
	sb.WriteString(`<div style="font-family:sans-serif;max-width:600px;margin:0 auto">`)
	fmt.Fprintf(&sb, `<div style="background:%s;color:#fff;padding:8px 16px;border-radius:4px 4px 0 0;font-weight:bold">%s</div>`, b.color, b.label)
	fmt.Fprintf(&sb, `<h2 style="margin:16px 0 8px">%s</h2>`, html.EscapeString(subject))
	fmt.Fprintf(&sb, `<p style="white-space:pre-line">%s</p>`, html.EscapeString(message))
	sb.WriteString(`<hr style="border:none;border-top:1px solid #e5e7eb"/>`)
	sb.WriteString(`<p style="color:#6b7280;font-size:12px">Hotro de Babi — message envoyé par l'équipe d'administration.</p>`)
	sb.WriteString(`</div>`)
	return sb.String()
}
