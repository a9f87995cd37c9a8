package app

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotrodebabi/internal/domain"
)

// Mailer drains notification rows still flagged email_sent=false, sends the
// milestone email and marks the row delivered. Rows whose send fails stay
// pending for the next run (at-least-once delivery).
type Mailer struct {
	repo    domain.SubscriptionRepository
	users   domain.UserDirectory
	sender  domain.EmailSender
	workers int64
	batch   int
}

func NewMailer(repo domain.SubscriptionRepository, users domain.UserDirectory, sender domain.EmailSender, workers, batch int) *Mailer {
	if workers <= 0 {
		workers = 4
	}
	if batch <= 0 {
		batch = 100
	}
	return &Mailer{repo: repo, users: users, sender: sender, workers: int64(workers), batch: batch}
}

// Drain processes one batch of pending notifications. Sends run concurrently
// under a weighted semaphore; per-row failures are logged and skipped.
func (m *Mailer) Drain(ctx context.Context) (sent, failed int, err error) {
	pending, err := m.repo.PendingNotifications(ctx, m.batch)
	if err != nil {
		return 0, 0, fmt.Errorf("list pending notifications: %w", err)
	}
	if len(pending) == 0 {
		return 0, 0, nil
	}

	sem := semaphore.NewWeighted(m.workers)
	var wg sync.WaitGroup
	var okCount, failCount atomic.Int64

	for _, n := range pending {
		n := n
		if err := sem.Acquire(ctx, 1); err != nil {
			break // context cancelled; report what finished so far
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)
			if err := m.deliver(ctx, n); err != nil {
				failCount.Add(1)
				log.Warn().Err(err).
					Str("notification_id", n.ID).
					Str("type", string(n.Type)).
					Msg("notification delivery failed")
				return
			}
			okCount.Add(1)
		}()
	}
	wg.Wait()
	return int(okCount.Load()), int(failCount.Load()), nil
}

func (m *Mailer) deliver(ctx context.Context, n domain.SubscriptionNotification) error {
	to, err := m.users.EmailByID(ctx, n.UserID)
	if err != nil {
		return fmt.Errorf("resolve user %s: %w", n.UserID, err)
	}
	subject, body := milestoneMessage(n.Type)
	if _, err := m.sender.Send(ctx, domain.Email{To: to, Subject: subject, Text: body, HTML: renderBody("normal", subject, body)}); err != nil {
		return err
	}
	return m.repo.MarkNotificationSent(ctx, n.ID)
}

func milestoneMessage(t domain.NotificationType) (subject, body string) {
	switch t {
	case domain.NotificationWarning7d:
		return "Votre abonnement expire dans 7 jours",
			"Votre abonnement Hotro de Babi arrive à échéance dans 7 jours. Renouvelez-le pour conserver l'accès à vos annonces."
	case domain.NotificationWarning1d:
		return "Votre abonnement expire demain",
			"Dernier rappel : votre abonnement Hotro de Babi expire demain. Renouvelez-le dès maintenant."
	default:
		return "Votre abonnement a expiré",
			"Votre abonnement Hotro de Babi a expiré. Vos annonces ne sont plus mises en avant tant qu'il n'est pas renouvelé."
	}
}
