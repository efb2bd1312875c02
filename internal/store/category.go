package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hidecraft/hidecraft-manager/internal/dependency"
	"github.com/hidecraft/hidecraft-manager/internal/entity"
	gerr "github.com/hidecraft/hidecraft-manager/internal/errors"
)

type categoryStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Categories() dependency.Categories {
	return &categoryStore{
		MYSQLStore: ms,
	}
}

func (s *categoryStore) AddCategory(ctx context.Context, c *entity.CategoryInsert) (int, error) {
	query := `
	INSERT INTO category (name, slug, description, display_order)
	VALUES (:name, :slug, :description, :displayOrder)
	`
	id, err := ExecNamedLastId(ctx, s.DB(), query, map[string]any{
		"name":         c.Name,
		"slug":         c.Slug,
		"description":  c.Description,
		"displayOrder": c.DisplayOrder,
	})
	if err != nil {
		if s.IsErrUniqueViolation(err) {
			return 0, gerr.ErrAlreadyExists
		}
		return 0, fmt.Errorf("can't insert category: %w", err)
	}
	return id, nil
}

func (s *categoryStore) UpdateCategory(ctx context.Context, id int, c *entity.CategoryInsert) error {
	query := `
	UPDATE category
	SET name = :name, slug = :slug, description = :description, display_order = :displayOrder
	WHERE id = :id
	`
	n, err := ExecNamedRows(ctx, s.DB(), query, map[string]any{
		"id":           id,
		"name":         c.Name,
		"slug":         c.Slug,
		"description":  c.Description,
		"displayOrder": c.DisplayOrder,
	})
	if err != nil {
		if s.IsErrUniqueViolation(err) {
			return gerr.ErrAlreadyExists
		}
		return fmt.Errorf("can't update category: %w", err)
	}
	if n == 0 {
		return gerr.ErrNotFound
	}
	return nil
}

func (s *categoryStore) ListCategories(ctx context.Context) ([]entity.Category, error) {
	categories, err := QueryListNamed[entity.Category](ctx, s.DB(), `
		SELECT id, created_at, updated_at, name, slug, description, display_order
		FROM category
		ORDER BY display_order ASC, name ASC
	`, map[string]any{})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []entity.Category{}, nil
		}
		return nil, fmt.Errorf("can't list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryStore) GetCategoryBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	var c entity.Category
	err := s.DB().GetContext(ctx, &c, `
		SELECT id, created_at, updated_at, name, slug, description, display_order
		FROM category
		WHERE slug = ?
	`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrNotFound
		}
		return nil, fmt.Errorf("can't get category: %w", err)
	}
	return &c, nil
}

func (s *categoryStore) DeleteCategoryById(ctx context.Context, id int) error {
	n, err := ExecNamedRows(ctx, s.DB(), `DELETE FROM category WHERE id = :id`, map[string]any{"id": id})
	if err != nil {
		return fmt.Errorf("can't delete category: %w", err)
	}
	if n == 0 {
		return gerr.ErrNotFound
	}
	return nil
}
