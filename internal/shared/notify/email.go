package notify

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/samber/oops"

	"github.com/reshetovitsme/mobile-portal/internal/shared/config"
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Email sends notifications to the configured recipients over SMTP
type Email struct {
	cfg      config.EmailConfig
	sendMail sendMailFunc
	now      func() time.Time
}

func NewEmail(cfg config.EmailConfig) *Email {
	return &Email{cfg: cfg, sendMail: smtp.SendMail, now: time.Now}
}

func (e *Email) Name() string {
	return "email"
}

func (e *Email) Notify(_ context.Context, msg Message) error {
	if e.cfg.Host == "" || len(e.cfg.Recipients) == 0 {
		return nil
	}

	var auth smtp.Auth
	if e.cfg.Username != "" {
		auth = smtp.PlainAuth("", e.cfg.Username, e.cfg.Password, e.cfg.Host)
	}

	addr := net.JoinHostPort(e.cfg.Host, strconv.Itoa(e.cfg.Port))
	if err := e.sendMail(addr, auth, e.cfg.From, e.cfg.Recipients, e.compose(msg)); err != nil {
		return oops.With("addr", addr, "event", msg.Event, "context", "failed to send email").Wrap(err)
	}
	return nil
}

func (e *Email) compose(msg Message) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", e.cfg.From)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(e.cfg.Recipients, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", headerSafe(msg.Subject)))
	fmt.Fprintf(&buf, "Date: %s\r\n", e.now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	buf.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return buf.Bytes()
}

func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
