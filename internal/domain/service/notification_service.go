package service

import "context"

// EmailMessage is one outbound email handed to the external delivery service.
type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Mailer delivers email through the external email service. Delivery is
// best effort; callers log failures and never fail the request over them.
type Mailer interface {
	Send(ctx context.Context, msg *EmailMessage) error
}

// PushSender delivers a push notification to a single device token.
type PushSender interface {
	SendPush(ctx context.Context, token, title, body string, data map[string]string) error
}
