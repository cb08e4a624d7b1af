package repository

import "context"

// Message is a transactional email.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer sends transactional email. Callers treat failures as best-effort.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
