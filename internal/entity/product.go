package entity

import (
	"database/sql"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	Id        int       `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
	ProductInsert
}

type ProductInsert struct {
	Name         string          `db:"name"`
	Slug         string          `db:"slug"`
	CategoryId   int             `db:"category_id"`
	Description  string          `db:"description"`
	Materials    string          `db:"materials"`
	UnitPrice    decimal.Decimal `db:"unit_price"`
	MinOrderQty  int             `db:"min_order_qty"`
	LeadTimeDays int             `db:"lead_time_days"`
	ThumbnailId  sql.NullInt32   `db:"thumbnail_id"`
	Featured     bool            `db:"featured"`
	Hidden       bool            `db:"hidden"`
}

// ProductFull is a product with its gallery media resolved.
type ProductFull struct {
	Product
	Media []MediaFull
}

type ProductFilters struct {
	CategoryId *int
	Featured   *bool
	PriceFrom  *decimal.Decimal
	PriceTo    *decimal.Decimal
}

func ValidateProductInsert(p *ProductInsert) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Slug = strings.TrimSpace(strings.ToLower(p.Slug))

	if p.Name == "" {
		return &ValidationError{Message: "product name is required"}
	}
	if p.Slug == "" {
		return &ValidationError{Message: "product slug is required"}
	}
	if strings.ContainsAny(p.Slug, " /?#") {
		return &ValidationError{Message: "product slug must not contain spaces or url separators"}
	}
	if p.CategoryId <= 0 {
		return &ValidationError{Message: "category id is required"}
	}
	if p.UnitPrice.IsNegative() {
		return &ValidationError{Message: "unit price must not be negative"}
	}
	if p.MinOrderQty < 0 {
		return &ValidationError{Message: "min order quantity must not be negative"}
	}
	if p.LeadTimeDays < 0 {
		return &ValidationError{Message: "lead time must not be negative"}
	}
	return nil
}
