package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/mpalashb/secureprime-digital-agency/config"
	"github.com/mpalashb/secureprime-digital-agency/pkg/logger"
)

// DefaultResendSender is used when FROM_MY_DOMAIN_EMAIL is not set
const DefaultResendSender = "onboarding@resend.dev"

// ErrNotConfigured is returned by the sender used when no provider credentials are present
var ErrNotConfigured = errors.New("email service is not configured")

// Message is one outgoing transactional email
type Message struct {
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

// Sender delivers a message and returns the provider's message id
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
	Provider() string
}

// NewSender picks the provider from configuration: Resend first, then SMTP.
// Without either, every send fails with ErrNotConfigured.
func NewSender(cfg *config.Config) Sender {
	switch {
	case cfg.ResendAPIKey != "":
		from := cfg.FromEmail
		if from == "" {
			from = DefaultResendSender
			logger.Log.Info("FROM_MY_DOMAIN_EMAIL not set, using Resend default sender", "from", from)
		}
		return NewResendSender(cfg.ResendAPIKey, from)
	case cfg.SMTPHost != "" && cfg.SMTPUsername != "" && cfg.SMTPPassword != "":
		from := cfg.FromEmail
		if from == "" {
			from = cfg.SMTPUsername // Brevo uses login email as from address
		}
		return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, from)
	default:
		return disabledSender{}
	}
}

// IsConfigured reports whether the sender can actually deliver mail
func IsConfigured(s Sender) bool {
	_, disabled := s.(disabledSender)
	return !disabled
}

type disabledSender struct{}

func (disabledSender) Send(context.Context, Message) (string, error) {
	return "", ErrNotConfigured
}

func (disabledSender) Provider() string { return "none" }

// SMTPSender handles sending emails via an SMTP relay
type SMTPSender struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	sendMail  func(ctx context.Context, host, addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender creates a sender for a plain-auth SMTP relay such as Brevo
func NewSMTPSender(host, port, username, password, fromEmail string) *SMTPSender {
	return &SMTPSender{
		host:      host,
		port:      port,
		username:  username,
		password:  password,
		fromEmail: fromEmail,
		sendMail:  sendMailContext,
	}
}

func (s *SMTPSender) Provider() string { return "smtp" }

// Send delivers msg. SMTP has no message id, so the id is empty on success.
// The whole exchange is bounded by ctx: Send does not return while the connection is still in use.
func (s *SMTPSender) Send(ctx context.Context, msg Message) (string, error) {
	raw := s.buildMIME(msg)

	// Setup SMTP authentication
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := net.JoinHostPort(s.host, s.port)

	if err := s.sendMail(ctx, s.host, addr, auth, s.fromEmail, msg.To, raw); err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	return "", nil
}

// sendMailContext is smtp.SendMail with the dial and every later read and write tied to ctx
func sendMailContext(ctx context.Context, host, addr string, a smtp.Auth, from string, to []string, msg []byte) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	c, err := smtp.NewClient(conn, host)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: host, MinVersion: tls.VersionTLS12}); err != nil {
			return err
		}
	}
	if a != nil {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(a); err != nil {
				return err
			}
		}
	}

	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

// buildMIME constructs the raw RFC 5322 message. Header values are folded to
// one line and RFC 2047 encoded, so form input cannot add headers.
func (s *SMTPSender) buildMIME(msg Message) []byte {
	to := make([]string, 0, len(msg.To))
	for _, addr := range msg.To {
		to = append(to, headerValue(addr))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", headerValue(s.fromEmail))
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	if msg.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", headerValue(msg.ReplyTo))
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", headerValue(msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func headerValue(v string) string {
	return mime.QEncoding.Encode("utf-8", strings.TrimSpace(lineBreaks.Replace(v)))
}
