package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hidecraft/hidecraft-manager/internal/dependency"
	"github.com/hidecraft/hidecraft-manager/internal/entity"
)

type cartStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Carts() dependency.Carts {
	return &cartStore{
		MYSQLStore: ms,
	}
}

func (s *cartStore) GetCartItems(ctx context.Context, userId string) ([]entity.CartItem, error) {
	items, err := QueryListNamed[entity.CartItem](ctx, s.DB(), `
		SELECT id, user_id, product_id, quantity, added_at
		FROM cart_item
		WHERE user_id = :userId
		ORDER BY added_at ASC, id ASC
	`, map[string]any{"userId": userId})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []entity.CartItem{}, nil
		}
		return nil, fmt.Errorf("can't get cart items: %w", err)
	}
	return items, nil
}

// ReplaceCartItems swaps the stored cart for the given set atomically.
func (s *cartStore) ReplaceCartItems(ctx context.Context, userId string, items []entity.CartItem) error {
	return s.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		err := ExecNamed(ctx, rep.DB(), `DELETE FROM cart_item WHERE user_id = :userId`, map[string]any{
			"userId": userId,
		})
		if err != nil {
			return fmt.Errorf("can't clear cart: %w", err)
		}

		if len(items) == 0 {
			return nil
		}

		rows := make([]map[string]any, 0, len(items))
		for _, it := range items {
			if it.Quantity <= 0 || it.ProductId <= 0 {
				continue
			}
			rows = append(rows, map[string]any{
				"user_id":    userId,
				"product_id": it.ProductId,
				"quantity":   it.Quantity,
			})
		}
		if err := BulkInsert(ctx, rep.DB(), "cart_item", rows); err != nil {
			return fmt.Errorf("can't insert cart items: %w", err)
		}
		return nil
	})
}
