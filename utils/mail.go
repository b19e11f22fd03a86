package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/sokoni/sokoni-api/config"
	"github.com/wneessen/go-mail"
)

type EmailData struct {
	Name      string
	Message   string
	ActionURL string
}

// Mailer is the outbound notification collaborator. Sends happen after
// the business transaction they relate to and never revert it; callers
// decide whether a failure is logged or reported.
type Mailer interface {
	Send(to, subject, templateName string, data EmailData) error
}

type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.FromEmail,
	}
}

func (m *SMTPMailer) Send(to, subject, templateName string, data EmailData) error {
	tmpl, err := template.ParseFiles(filepath.Join("templates", templateName))
	if err != nil {
		return fmt.Errorf("template parse error: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body.String())

	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(m.username),
		mail.WithPassword(m.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
