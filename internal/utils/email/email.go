// Package email delivers one-time codes over SMTP.
package email

import (
	"fmt"
	"net/mail"
	"net/http"

	"github.com/vexora-shop/accounts/internal/config"
	"github.com/vexora-shop/accounts/internal/errors"
	"gopkg.in/gomail.v2"
)

type Email struct {
	config *config.Email
	dialer *gomail.Dialer
}

func New(config *config.Email) *Email {
	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.Username, config.Password)
	return &Email{
		config: config,
		dialer: dialer,
	}
}

func (e *Email) IsCorrect(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return &errors.ErrorWithStatusCode{Message: err.Error(), StatusCode: http.StatusBadRequest}
	}
	return nil
}

// Send delivers an HTML body to the recipient. The call blocks until the
// SMTP server accepts or rejects the message; callers decide what a failure
// means for their flow.
func (e *Email) Send(recipientEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", e.config.From, e.config.SenderName)
	m.SetHeader("To", recipientEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := e.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", recipientEmail, err)
	}
	return nil
}
