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

type testimonialStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Testimonials() dependency.Testimonials {
	return &testimonialStore{
		MYSQLStore: ms,
	}
}

func (s *testimonialStore) AddTestimonial(ctx context.Context, t *entity.TestimonialInsert) (int, error) {
	query := `
	INSERT INTO testimonial (author, company, quote, rating, published)
	VALUES (:author, :company, :quote, :rating, :published)
	`
	id, err := ExecNamedLastId(ctx, s.DB(), query, map[string]any{
		"author":    t.Author,
		"company":   t.Company,
		"quote":     t.Quote,
		"rating":    t.Rating,
		"published": t.Published,
	})
	if err != nil {
		return 0, fmt.Errorf("can't insert testimonial: %w", err)
	}
	return id, nil
}

func (s *testimonialStore) UpdateTestimonial(ctx context.Context, id int, t *entity.TestimonialInsert) error {
	query := `
	UPDATE testimonial
	SET author = :author, company = :company, quote = :quote, rating = :rating, published = :published
	WHERE id = :id
	`
	n, err := ExecNamedRows(ctx, s.DB(), query, map[string]any{
		"id":        id,
		"author":    t.Author,
		"company":   t.Company,
		"quote":     t.Quote,
		"rating":    t.Rating,
		"published": t.Published,
	})
	if err != nil {
		return fmt.Errorf("can't update testimonial: %w", err)
	}
	if n == 0 {
		return gerr.ErrNotFound
	}
	return nil
}

func (s *testimonialStore) ListTestimonials(ctx context.Context, publishedOnly bool) ([]entity.Testimonial, error) {
	query := `
		SELECT id, created_at, updated_at, author, company, quote, rating, published
		FROM testimonial
	`
	if publishedOnly {
		query += " WHERE published = TRUE"
	}
	query += " ORDER BY created_at DESC"

	testimonials, err := QueryListNamed[entity.Testimonial](ctx, s.DB(), query, map[string]any{})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []entity.Testimonial{}, nil
		}
		return nil, fmt.Errorf("can't list testimonials: %w", err)
	}
	return testimonials, nil
}

func (s *testimonialStore) DeleteTestimonialById(ctx context.Context, id int) error {
	n, err := ExecNamedRows(ctx, s.DB(), `DELETE FROM testimonial WHERE id = :id`, map[string]any{"id": id})
	if err != nil {
		return fmt.Errorf("can't delete testimonial: %w", err)
	}
	if n == 0 {
		return gerr.ErrNotFound
	}
	return nil
}
