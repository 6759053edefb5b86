package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// emailsAPI is the part of the Resend client this package uses
type emailsAPI interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendSender delivers mail through the Resend HTTP API
type ResendSender struct {
	emails emailsAPI
	from   string
}

func NewResendSender(apiKey, from string) *ResendSender {
	client := resend.NewClient(apiKey)
	return &ResendSender{emails: client.Emails, from: from}
}

func (s *ResendSender) Provider() string { return "resend" }

func (s *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	}

	sent, err := s.emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("resend: %w", err)
	}
	return sent.Id, nil
}
