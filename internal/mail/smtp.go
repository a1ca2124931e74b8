package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// SMTPMailer sends email through an SMTP relay using go-mail.
type SMTPMailer struct {
	client *gomail.Client
	sender string
}

// NewSMTPMailer returns a mailer for the given SMTP relay. user/pass enable
// plain auth; sender is the From address on every message.
func NewSMTPMailer(host string, port int, user, pass, sender string) (*SMTPMailer, error) {
	if host == "" {
		return nil, fmt.Errorf("mail: SMTP host not configured")
	}
	if sender == "" {
		return nil, fmt.Errorf("mail: sender address not configured")
	}
	opts := []gomail.Option{gomail.WithPort(port)}
	if user != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(user),
			gomail.WithPassword(pass),
		)
	}
	client, err := gomail.NewClient(host, opts...)
	if err != nil {
		return nil, fmt.Errorf("mail: %w", err)
	}
	return &SMTPMailer{client: client, sender: sender}, nil
}

// SendWelcome sends the post-registration greeting.
func (m *SMTPMailer) SendWelcome(ctx context.Context, to, name string) error {
	subject, body := welcomeBody(to, name)
	return m.send(ctx, to, subject, body)
}

// SendVerifyOTP sends an account-verification code.
func (m *SMTPMailer) SendVerifyOTP(ctx context.Context, to, code string) error {
	subject, body := verifyOTPBody(code)
	return m.send(ctx, to, subject, body)
}

// SendResetOTP sends a password-reset code.
func (m *SMTPMailer) SendResetOTP(ctx context.Context, to, code string) error {
	subject, body := resetOTPBody(code)
	return m.send(ctx, to, subject, body)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.sender); err != nil {
		return fmt.Errorf("mail: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("mail: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)
	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("mail: %w", err)
	}
	return nil
}
