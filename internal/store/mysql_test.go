package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestDB(t *testing.T) *MYSQLStore {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	db, err := New(context.Background(), Config{
		DSN:         dsn,
		Automigrate: true,
	})
	assert.NoError(t, err)

	tables := []string{
		"send_email_request",
		"cart_item",
		"sample_order_item",
		"sample_order",
		"inquiry_sample_item",
		"inquiry_customization",
		"inquiry_request",
		"meeting_sample_item",
		"meeting_request",
		"user_account",
		"product_media",
		"product",
		"media",
		"category",
		"testimonial",
		"admins",
	}

	_, err = db.db.ExecContext(context.Background(), "SET FOREIGN_KEY_CHECKS = 0")
	assert.NoError(t, err)
	for _, table := range tables {
		_, err = db.db.ExecContext(context.Background(), "DELETE FROM "+table)
		assert.NoError(t, err)
	}
	_, err = db.db.ExecContext(context.Background(), "SET FOREIGN_KEY_CHECKS = 1")
	assert.NoError(t, err)

	return db
}
