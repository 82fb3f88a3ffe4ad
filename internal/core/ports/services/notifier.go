package services

import "context"

// NotificationDispatcher delivers a notification to a single recipient.
// Implementations are expected to be slow (SMTP); callers treat failures
// as non-fatal and must not roll back workflow state when Send errors.
type NotificationDispatcher interface {
	Send(ctx context.Context, to, subject, textBody, htmlBody string) error
}
