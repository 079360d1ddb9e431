// Package mailer sends plain-text unsubscribe notices over SMTP.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"ghunsub/internal/models"
)

// Mailer delivers unsubscribe notices to a single recipient. Username
// is optional; when empty the send is unauthenticated, which is the
// normal case for a localhost relay.
type Mailer struct {
	Addr     string
	From     string
	To       string
	Username string
	Password string
}

// Compose renders the full message for a notice.
func (m *Mailer) Compose(notice models.Notice) (string, error) {
	url, err := notice.HumanURL()
	if err != nil {
		return "", err
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", m.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", m.To))
	msg.WriteString(fmt.Sprintf("Subject: Unsubscribed from %q\r\n", notice.Title))
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(fmt.Sprintf("You have been unsubscribed from the %s with the subject\n%q.\n\nVisit %s to resubscribe.\n",
		strings.ToLower(notice.SubjectType), notice.Title, url))
	return msg.String(), nil
}

// SendNotice composes and delivers one unsubscribe notice.
func (m *Mailer) SendNotice(notice models.Notice) error {
	body, err := m.Compose(notice)
	if err != nil {
		return err
	}

	client, err := smtp.Dial(m.Addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server %s: %v", m.Addr, err)
	}
	defer client.Close()

	if m.Username != "" {
		host := m.Addr
		if i := strings.LastIndex(host, ":"); i >= 0 {
			host = host[:i]
		}
		auth := smtp.PlainAuth("", m.Username, m.Password, host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP auth: %v", err)
		}
	}

	if err := client.Mail(m.From); err != nil {
		return fmt.Errorf("SMTP MAIL FROM: %v", err)
	}
	if err := client.Rcpt(m.To); err != nil {
		return fmt.Errorf("SMTP RCPT TO: %v", err)
	}
	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("SMTP DATA: %v", err)
	}
	if _, err := writer.Write([]byte(body)); err != nil {
		return fmt.Errorf("failed to write email body: %v", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close email body: %v", err)
	}
	return client.Quit()
}
