package entity

import (
	"strings"
	"time"
)

type Category struct {
	Id        int       `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
	CategoryInsert
}

type CategoryInsert struct {
	Name         string `db:"name"`
	Slug         string `db:"slug"`
	Description  string `db:"description"`
	DisplayOrder int    `db:"display_order"`
}

func ValidateCategoryInsert(c *CategoryInsert) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Slug = strings.TrimSpace(strings.ToLower(c.Slug))

	if c.Name == "" {
		return &ValidationError{Message: "category name is required"}
	}
	if c.Slug == "" {
		return &ValidationError{Message: "category slug is required"}
	}
	return nil
}
