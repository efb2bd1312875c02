package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hidecraft/hidecraft-manager/internal/dependency"
	gerr "github.com/hidecraft/hidecraft-manager/internal/errors"
)

type adminStore struct {
	*MYSQLStore
}

// Admin returns an object implementing the admin account repository
func (ms *MYSQLStore) Admin() dependency.Admin {
	return &adminStore{
		MYSQLStore: ms,
	}
}

func (s *adminStore) AddAdmin(ctx context.Context, un, pwHash string) error {
	query := `INSERT INTO admins (username, password_hash) VALUES (:username, :passwordHash)`
	err := ExecNamed(ctx, s.DB(), query, map[string]any{
		"username":     un,
		"passwordHash": pwHash,
	})
	if err != nil {
		if s.IsErrUniqueViolation(err) {
			return gerr.ErrAlreadyExists
		}
		return fmt.Errorf("can't insert admin: %w", err)
	}
	return nil
}

func (s *adminStore) DeleteAdmin(ctx context.Context, username string) error {
	n, err := ExecNamedRows(ctx, s.DB(), `DELETE FROM admins WHERE username = :username`, map[string]any{
		"username": username,
	})
	if err != nil {
		return fmt.Errorf("can't delete admin: %w", err)
	}
	if n == 0 {
		return gerr.ErrNotFound
	}
	return nil
}

func (s *adminStore) ChangePassword(ctx context.Context, un, newHash string) error {
	n, err := ExecNamedRows(ctx, s.DB(), `UPDATE admins SET password_hash = :passwordHash WHERE username = :username`, map[string]any{
		"username":     un,
		"passwordHash": newHash,
	})
	if err != nil {
		return fmt.Errorf("can't change password: %w", err)
	}
	if n == 0 {
		return gerr.ErrNotFound
	}
	return nil
}

func (s *adminStore) PasswordHashByUsername(ctx context.Context, un string) (string, error) {
	var hash string
	err := s.DB().GetContext(ctx, &hash, `SELECT password_hash FROM admins WHERE username = ?`, un)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", gerr.ErrNotFound
		}
		return "", fmt.Errorf("can't get password hash: %w", err)
	}
	return hash, nil
}
