package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hidecraft/hidecraft-manager/internal/dependency"
	"github.com/hidecraft/hidecraft-manager/internal/entity"
	gerr "github.com/hidecraft/hidecraft-manager/internal/errors"
)

type userStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Users() dependency.Users {
	return &userStore{
		MYSQLStore: ms,
	}
}

// UpsertUser creates the account on first login and refreshes the profile
// fields on every subsequent one. The generated id never changes for a
// provider identity, it is the stable linking key.
func (s *userStore) UpsertUser(ctx context.Context, providerId, email, name, avatarURL string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	err := s.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		var existingId string
		err := rep.DB().GetContext(ctx, &existingId, `SELECT id FROM user_account WHERE provider_id = ?`, providerId)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("can't get user: %w", err)
			}
			return ExecNamed(ctx, rep.DB(), `
				INSERT INTO user_account (id, provider_id, email, name, avatar_url)
				VALUES (:id, :providerId, :email, :name, :avatarUrl)
			`, map[string]any{
				"id":         uuid.New().String(),
				"providerId": providerId,
				"email":      email,
				"name":       name,
				"avatarUrl":  avatarURL,
			})
		}

		return ExecNamed(ctx, rep.DB(), `
			UPDATE user_account
			SET email = :email, name = :name, avatar_url = :avatarUrl
			WHERE id = :id
		`, map[string]any{
			"id":        existingId,
			"email":     email,
			"name":      name,
			"avatarUrl": avatarURL,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("can't upsert user: %w", err)
	}

	var u entity.User
	err = s.DB().GetContext(ctx, &u, `
		SELECT id, provider_id, email, name, avatar_url, created_at, updated_at
		FROM user_account
		WHERE provider_id = ?
	`, providerId)
	if err != nil {
		return nil, fmt.Errorf("can't get upserted user: %w", err)
	}
	return &u, nil
}

func (s *userStore) GetUserById(ctx context.Context, id string) (*entity.User, error) {
	var u entity.User
	err := s.DB().GetContext(ctx, &u, `
		SELECT id, provider_id, email, name, avatar_url, created_at, updated_at
		FROM user_account
		WHERE id = ?
	`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrNotFound
		}
		return nil, fmt.Errorf("can't get user: %w", err)
	}
	return &u, nil
}

func (s *userStore) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var u entity.User
	err := s.DB().GetContext(ctx, &u, `
		SELECT id, provider_id, email, name, avatar_url, created_at, updated_at
		FROM user_account
		WHERE email = ?
		ORDER BY created_at ASC
		LIMIT 1
	`, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrNotFound
		}
		return nil, fmt.Errorf("can't get user by email: %w", err)
	}
	return &u, nil
}
