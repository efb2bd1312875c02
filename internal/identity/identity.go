// Package identity resolves the linking key that ties meeting, inquiry and
// order records to whoever submitted them.
package identity

import "strings"

// Session is the authenticated customer attached to a request, nil for guests.
type Session struct {
	UserId string
	Email  string
}

// Resolve returns the linking key for a submission: the stable user id when a
// session is present, otherwise the normalized form of the submitted email.
// The key is always non-empty for a validated submission.
func Resolve(session *Session, submittedEmail string) string {
	if session != nil && session.UserId != "" {
		return session.UserId
	}
	return Normalize(submittedEmail)
}

// Normalize lowercases and trims an email so guest records written at
// different times compare equal during reconciliation.
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
