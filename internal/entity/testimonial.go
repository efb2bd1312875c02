package entity

import (
	"strings"
	"time"
)

type Testimonial struct {
	Id        int       `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
	TestimonialInsert
}

type TestimonialInsert struct {
	Author    string `db:"author"`
	Company   string `db:"company"`
	Quote     string `db:"quote"`
	Rating    int    `db:"rating"`
	Published bool   `db:"published"`
}

func ValidateTestimonialInsert(t *TestimonialInsert) error {
	t.Author = strings.TrimSpace(t.Author)
	t.Company = strings.TrimSpace(t.Company)
	t.Quote = strings.TrimSpace(t.Quote)

	if t.Author == "" {
		return &ValidationError{Message: "author is required"}
	}
	if t.Quote == "" {
		return &ValidationError{Message: "quote is required"}
	}
	if len(t.Quote) > 2000 {
		return &ValidationError{Message: "quote must not exceed 2000 characters"}
	}
	if t.Rating < 1 || t.Rating > 5 {
		return &ValidationError{Message: "rating must be between 1 and 5"}
	}
	return nil
}
