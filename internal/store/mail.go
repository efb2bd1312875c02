package store

import (
	"context"
	"fmt"

	"github.com/hidecraft/hidecraft-manager/internal/dependency"
	"github.com/hidecraft/hidecraft-manager/internal/entity"
	gerr "github.com/hidecraft/hidecraft-manager/internal/errors"
)

type mailStore struct {
	*MYSQLStore
}

// Mail returns an object implementing the mail outbox repository
func (ms *MYSQLStore) Mail() dependency.Mail {
	return &mailStore{
		MYSQLStore: ms,
	}
}

func (s *mailStore) AddMail(ctx context.Context, ser *entity.SendEmailRequest) (int, error) {
	query := `
	INSERT INTO send_email_request (from_email, to_email, html, subject, reply_to, sent)
	VALUES (:from, :to, :html, :subject, :replyTo, FALSE)
	`
	id, err := ExecNamedLastId(ctx, s.DB(), query, map[string]any{
		"from":    ser.From,
		"to":      ser.To,
		"html":    ser.Html,
		"subject": ser.Subject,
		"replyTo": ser.ReplyTo,
	})
	if err != nil {
		return 0, fmt.Errorf("can't insert send email request: %w", err)
	}
	return id, nil
}

func (s *mailStore) UpdateSent(ctx context.Context, id int) error {
	n, err := ExecNamedRows(ctx, s.DB(), `
		UPDATE send_email_request
		SET sent = TRUE, sent_at = NOW(), error_msg = NULL
		WHERE id = :id
	`, map[string]any{"id": id})
	if err != nil {
		return fmt.Errorf("can't update sent: %w", err)
	}
	if n == 0 {
		return gerr.ErrNotFound
	}
	return nil
}

func (s *mailStore) AddError(ctx context.Context, id int, errMsg string) error {
	n, err := ExecNamedRows(ctx, s.DB(), `
		UPDATE send_email_request
		SET error_msg = :errMsg
		WHERE id = :id
	`, map[string]any{
		"id":     id,
		"errMsg": errMsg,
	})
	if err != nil {
		return fmt.Errorf("can't add error: %w", err)
	}
	if n == 0 {
		return gerr.ErrNotFound
	}
	return nil
}
