// Package mail sends transactional email. Delivery is an external
// collaborator: services depend only on the Mailer interface.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer delivers a verification email carrying the given link.
type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, link string) error
}

// SMTPMailer sends through a plain SMTP endpoint, with optional AUTH PLAIN
// when a username is configured.
type SMTPMailer struct {
	addr     string
	from     string
	username string
	password string
}

func NewSMTPMailer(addr, from, username, password string) *SMTPMailer {
	return &SMTPMailer{addr: addr, from: from, username: username, password: password}
}

// sendMail is a seam for testing smtp.SendMail.
var sendMail = smtp.SendMail

func (m *SMTPMailer) SendVerificationEmail(ctx context.Context, to, link string) error {
	var auth smtp.Auth
	if m.username != "" {
		host := m.addr
		if i := strings.LastIndexByte(host, ':'); i >= 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", m.username, m.password, host)
	}
	return sendMail(m.addr, auth, m.from, []string{to}, VerificationMessage(m.from, to, link))
}

// VerificationMessage builds the raw RFC 5322 message body.
func VerificationMessage(from, to, link string) []byte {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Verify your email\r\n"+
		"Content-Type: text/plain; charset=utf-8\r\n\r\n"+
		"Please confirm your email address by opening the link below:\r\n\r\n%s\r\n",
		from, to, link)
	return []byte(msg)
}

// NoopMailer drops every message; useful in tests and local runs without
// an SMTP endpoint.
type NoopMailer struct{}

func (NoopMailer) SendVerificationEmail(ctx context.Context, to, link string) error { return nil }
