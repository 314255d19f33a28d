package smtp

import (
	"errors"
	"fmt"

	"github.com/taskhub/backend/pkg/email"

	"github.com/go-gomail/gomail"
)

type SMTPSender struct {
	from     string
	fromName string
	pass     string
	host     string
	port     int
}

func NewSMTPSender(from, fromName, pass, host string, port int) (*SMTPSender, error) {
	if !email.IsEmailValid(from) {
		return nil, errors.New("invalid from email")
	}

	return &SMTPSender{from: from, fromName: fromName, pass: pass, host: host, port: port}, nil
}

func (s *SMTPSender) Send(input email.SendEmailInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(s.from, s.fromName))
	msg.SetHeader("To", input.To)
	msg.SetHeader("Subject", input.Subject)
	if input.Text != "" {
		msg.SetBody("text/plain", input.Text)
		msg.AddAlternative("text/html", input.Body)
	} else {
		msg.SetBody("text/html", input.Body)
	}

	dialer := gomail.NewDialer(s.host, s.port, s.from, s.pass)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email via smtp: %w", err)
	}

	return nil
}
