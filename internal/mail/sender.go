package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/tazhibayda/idea-service/internal/log"
)

// Sender delivers one HTML email to every address in to. Either the whole
// send succeeds or an error is returned; callers treat a failure as fatal
// for the request.
type Sender interface {
	Send(ctx context.Context, to []string, subject, htmlBody string) error
}

type SMTPSender struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

func NewSMTP(host, port, user, pass, from string) *SMTPSender {
	return &SMTPSender{Host: host, Port: port, User: user, Pass: pass, From: from}
}

func (s *SMTPSender) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	if len(to) == 0 {
		return nil
	}
	msg := strings.Join([]string{
		"From: " + s.From,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
		htmlBody,
	}, "\r\n")

	var auth smtp.Auth
	if s.User != "" {
		auth = smtp.PlainAuth("", s.User, s.Pass, s.Host)
	}
	if err := smtp.SendMail(s.Host+":"+s.Port, auth, s.From, to, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// LogSender is the dev/test sender: it just logs the send.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	log.Infof("[MAIL] to=%s subj=%s", strings.Join(to, ","), subject)
	return nil
}
