// Package notify fans portal events out to the operators' channels.
package notify

import (
	"bytes"
	"context"
	"embed"
	"log/slog"
	"text/template"

	"github.com/samber/oops"
)

//go:embed templates
var templatesFS embed.FS

var templates = template.Must(template.New("").ParseFS(templatesFS, "templates/*/*.txt"))

// Message is one event destined for the operators
type Message struct {
	Event   string
	Subject string
	Body    string
	Payload any
}

// Notifier delivers a message to one channel
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// NewMessage renders the named body template with data.
func NewMessage(event, subject, templateName string, data any) (Message, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		return Message{}, oops.With("template", templateName, "context", "failed to render notification").Wrap(err)
	}

	return Message{
		Event:   event,
		Subject: subject,
		Body:    buf.String(),
		Payload: data,
	}, nil
}

// Fanout delivers to every configured notifier. Delivery failures are
// logged and never reported to the caller.
type Fanout struct {
	notifiers []Notifier
	logger    *slog.Logger
}

func NewFanout(logger *slog.Logger, notifiers ...Notifier) *Fanout {
	return &Fanout{
		notifiers: notifiers,
		logger:    logger.With("component", "notify"),
	}
}

func (f *Fanout) Notify(ctx context.Context, msg Message) error {
	for _, n := range f.notifiers {
		if err := n.Notify(ctx, msg); err != nil {
			f.logger.Error("Failed to deliver notification", "event", msg.Event, "notifier", nameOf(n), "error", err)
		}
	}
	return nil
}

func nameOf(n Notifier) string {
	if named, ok := n.(interface{ Name() string }); ok {
		return named.Name()
	}
	return "unknown"
}
