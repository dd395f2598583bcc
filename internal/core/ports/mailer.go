package ports

import "context"

// Mail is a rendered outbound message.
type Mail struct {
	To       string
	Subject  string
	Text     string
	HTML     string
	Category string
}

// Mailer delivers a single message synchronously.
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

// MailQueue accepts messages for asynchronous delivery.
type MailQueue interface {
	Enqueue(m Mail)
}
