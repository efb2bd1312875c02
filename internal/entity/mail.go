package entity

import "database/sql"

// SendEmailRequest is an outbox row recording every send attempt. Sends are
// fire-and-forget: a failed row keeps its error message but is never retried.
type SendEmailRequest struct {
	Id       int            `db:"id"`
	From     string         `db:"from_email"`
	To       string         `db:"to_email"`
	Html     string         `db:"html"`
	Subject  string         `db:"subject"`
	ReplyTo  string         `db:"reply_to"`
	Sent     bool           `db:"sent"`
	SentAt   sql.NullTime   `db:"sent_at"`
	ErrorMsg sql.NullString `db:"error_msg"`
}

// NotificationOutcome is the per-recipient result of a dispatch. Either flag
// being false never fails the request that triggered the notification.
type NotificationOutcome struct {
	RequesterSent bool
	StaffSent     bool
}
