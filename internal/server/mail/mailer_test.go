package mail

import (
	"context"
	"net/smtp"
	"strings"
	"testing"
)

func TestVerificationMessage_ContainsLink(t *testing.T) {
	t.Parallel()

	msg := string(VerificationMessage("from@x.com", "to@x.com", "https://x.com/api/users/verify/tok"))

	for _, want := range []string{
		"From: from@x.com",
		"To: to@x.com",
		"Subject: Verify your email",
		"https://x.com/api/users/verify/tok",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestSMTPMailer_Send(t *testing.T) {
	orig := sendMail
	t.Cleanup(func() { sendMail = orig })

	var gotAddr, gotFrom string
	var gotTo []string
	var gotAuth smtp.Auth
	sendMail = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo = addr, a, from, to
		return nil
	}

	m := NewSMTPMailer("mail:25", "from@x.com", "", "")
	if err := m.SendVerificationEmail(context.Background(), "to@x.com", "link"); err != nil {
		t.Fatalf("SendVerificationEmail error: %v", err)
	}
	if gotAddr != "mail:25" || gotFrom != "from@x.com" || len(gotTo) != 1 || gotTo[0] != "to@x.com" {
		t.Fatalf("unexpected send args: %q %q %v", gotAddr, gotFrom, gotTo)
	}
	if gotAuth != nil {
		t.Fatalf("expected no auth without username")
	}

	m = NewSMTPMailer("mail:25", "from@x.com", "user", "pw")
	if err := m.SendVerificationEmail(context.Background(), "to@x.com", "link"); err != nil {
		t.Fatalf("SendVerificationEmail error: %v", err)
	}
	if gotAuth == nil {
		t.Fatalf("expected auth when username configured")
	}
}

func TestNoopMailer(t *testing.T) {
	t.Parallel()

	if err := (NoopMailer{}).SendVerificationEmail(context.Background(), "to@x.com", "link"); err != nil {
		t.Fatalf("noop mailer returned error: %v", err)
	}
}
