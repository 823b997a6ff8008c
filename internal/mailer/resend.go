package mailer

import (
	"context"
	"fmt"
	"strings"

	"quarhire/internal/domain"

	"github.com/resend/resend-go/v2"
)

// ErrNotConfigured is returned when no API key was provided.
var ErrNotConfigured = domain.ConfigError{Service: "email"}

type Attachment struct {
	Filename string
	Content  []byte
}

type Message struct {
	To          []string
	ReplyTo     string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// ResendMailer delivers messages through the Resend HTTP API.
type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(apiKey, from string) *ResendMailer {
	m := &ResendMailer{from: from}
	if key := strings.TrimSpace(apiKey); key != "" {
		m.client = resend.NewClient(key)
	}
	return m
}

func (m *ResendMailer) Configured() bool {
	return m != nil && m.client != nil && strings.TrimSpace(m.from) != ""
}

// Send returns the provider message id.
func (m *ResendMailer) Send(ctx context.Context, msg Message) (string, error) {
	if !m.Configured() {
		return "", ErrNotConfigured
	}
	req := &resend.SendEmailRequest{
		From:    m.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		ReplyTo: msg.ReplyTo,
	}
	for _, a := range msg.Attachments {
		req.Attachments = append(req.Attachments, &resend.Attachment{
			Filename: a.Filename,
			Content:  a.Content,
		})
	}
	sent, err := m.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return "", &domain.UpstreamError{Service: "email", Err: fmt.Errorf("send %q: %w", msg.Subject, err)}
	}
	return sent.Id, nil
}
