package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hidecraft/hidecraft-manager/internal/entity"
	gerr "github.com/hidecraft/hidecraft-manager/internal/errors"
)

func TestUpsertUser(t *testing.T) {
	db := newTestDB(t)

	us := db.Users()
	ctx := context.Background()

	u, err := us.UpsertUser(ctx, "google-123", "Mixed.Case@Acme.com", "Jane", "https://avatar.test/1.png")
	require.NoError(t, err)
	assert.NotEmpty(t, u.Id)
	assert.Equal(t, "mixed.case@acme.com", u.Email)

	// second login refreshes the profile but keeps the id
	u2, err := us.UpsertUser(ctx, "google-123", "mixed.case@acme.com", "Jane Doe", "https://avatar.test/2.png")
	require.NoError(t, err)
	assert.Equal(t, u.Id, u2.Id)
	assert.Equal(t, "Jane Doe", u2.Name)

	got, err := us.GetUserById(ctx, u.Id)
	require.NoError(t, err)
	assert.Equal(t, "google-123", got.ProviderId)

	byEmail, err := us.GetUserByEmail(ctx, "MIXED.CASE@acme.com")
	require.NoError(t, err)
	assert.Equal(t, u.Id, byEmail.Id)

	_, err = us.GetUserById(ctx, "missing")
	assert.ErrorIs(t, err, gerr.ErrNotFound)
}

func TestCartRoundTrip(t *testing.T) {
	db := newTestDB(t)

	cs := db.Carts()
	ctx := context.Background()

	userId := "b9a7c8f0-0000-4000-8000-0000000000aa"

	items, err := cs.GetCartItems(ctx, userId)
	require.NoError(t, err)
	assert.Empty(t, items)

	err = cs.ReplaceCartItems(ctx, userId, []entity.CartItem{
		{ProductId: 1, Quantity: 2},
		{ProductId: 2, Quantity: 1},
	})
	require.NoError(t, err)

	items, err = cs.GetCartItems(ctx, userId)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	err = cs.ReplaceCartItems(ctx, userId, nil)
	require.NoError(t, err)

	items, err = cs.GetCartItems(ctx, userId)
	require.NoError(t, err)
	assert.Empty(t, items)
}
