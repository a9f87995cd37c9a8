package sesmail

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"golang.org/x/time/rate"

	"hotrodebabi/internal/adapters/observability"
	"hotrodebabi/internal/domain"
)

// sesAPI is the slice of the SES client we use; tests swap in a fake.
type sesAPI interface {
	SendEmail(ctx context.Context, in *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Sender delivers email through Amazon SES, with client-side rate limiting
// so a large mailer drain stays under the account's send quota.
type Sender struct {
	client sesAPI
	from   string
	rl     *rate.Limiter
}

func New(ctx context.Context, from string, rps int) (*Sender, error) {
	if from == "" {
		return nil, fmt.Errorf("sender address is required")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewWithClient(ses.NewFromConfig(cfg), from, rps), nil
}

func NewWithClient(client sesAPI, from string, rps int) *Sender {
	if rps <= 0 {
		rps = 10
	}
	return &Sender{
		client: client,
		from:   from,
		rl:     rate.NewLimiter(rate.Limit(rps), rps),
	}
}

func (s *Sender) Send(ctx context.Context, m domain.Email) (string, error) {
	if err := s.rl.Wait(ctx); err != nil {
		return "", err
	}

	body := &types.Body{}
	if m.HTML != "" {
		body.Html = &types.Content{Data: aws.String(m.HTML), Charset: aws.String("UTF-8")}
	}
	if m.Text != "" {
		body.Text = &types.Content{Data: aws.String(m.Text), Charset: aws.String("UTF-8")}
	}

	start := time.Now()
	out, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(s.from),
		Destination: &types.Destination{ToAddresses: []string{m.To}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(m.Subject), Charset: aws.String("UTF-8")},
			Body:    body,
		},
	})
	if err != nil {
		observability.ObserveExternal("ses", "send_email", 0, time.Since(start))
		observability.ObserveEmail("failed")
		return "", fmt.Errorf("ses send to %s: %w", m.To, err)
	}
	observability.ObserveExternal("ses", "send_email", 200, time.Since(start))
	observability.ObserveEmail("sent")
	return aws.ToString(out.MessageId), nil
}
