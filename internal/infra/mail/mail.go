package mail

import (
	"context"
	"errors"
)

// Attachment is a file carried by a message.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message is one outbound email.
type Message struct {
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

// Sender delivers messages. Delivery failure after a successful save is
// reported but never invalidates the saved quote.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Recorder captures messages in memory for tests.
type Recorder struct {
	Outbox []Message
	Err    error
}

func (r *Recorder) Send(_ context.Context, msg Message) error {
	if r.Err != nil {
		return r.Err
	}
	r.Outbox = append(r.Outbox, msg)
	return nil
}

// ErrNotConfigured is returned by Disabled for every send attempt.
var ErrNotConfigured = errors.New("email delivery not configured")

// Disabled stands in for the Sender when no SMTP host is configured. It
// fails every send so the operator is never told a mail went out when the
// channel does not exist.
type Disabled struct{}

func (Disabled) Send(context.Context, Message) error { return ErrNotConfigured }
