package mailer

import "net/mail"

// EmailMessage is a single outbound email.
type EmailMessage struct {
	To          []mail.Address
	Subject     string
	TextContent string
	HTMLContent string
}

func (m *EmailMessage) HasRecipients() bool {
	return len(m.To) > 0
}

func (m *EmailMessage) HasContent() bool {
	return m.TextContent != "" || m.HTMLContent != ""
}

// Mailer sends transactional email. Delivery is best effort; callers
// must not treat a send failure as a request failure.
type Mailer interface {
	SendMessages(messages ...*EmailMessage)
}
