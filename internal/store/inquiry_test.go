package store

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hidecraft/hidecraft-manager/internal/entity"
	gerr "github.com/hidecraft/hidecraft-manager/internal/errors"
)

func testInquiryInsert(email string) *entity.InquiryRequestInsert {
	return &entity.InquiryRequestInsert{
		Name:            "John Buyer",
		Email:           email,
		Company:         "Acme Retail",
		Phone:           "+12025550178",
		InquiryType:     entity.InquiryTypeBulk,
		InquirySource:   entity.InquirySourceContactForm,
		ProductInterest: "wallets",
		ProductId:       sql.NullInt32{},
		Message:         "looking for a bulk quote on 500 units",
	}
}

func TestInquiryRequests(t *testing.T) {
	db := newTestDB(t)

	is := db.Inquiries()
	ctx := context.Background()

	insert := testInquiryInsert("john@acme.com")
	insert.Customization = &entity.CustomizationDetails{
		CustomType: "embossed logo",
		Quantity:   500,
		Budget:     "5000-10000 USD",
		Timeline:   "Q1 2027",
	}
	insert.SampleItems = []entity.SampleItem{
		{ProductName: "Bifold Wallet", Quantity: 3},
	}

	id, err := is.AddInquiryRequest(ctx, insert, "john@acme.com")
	require.NoError(t, err)

	got, err := is.GetInquiryRequestById(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.InquiryStatusNew, got.Status)
	assert.Equal(t, "john@acme.com", got.LinkingKey)
	require.NotNil(t, got.Customization)
	assert.Equal(t, "embossed logo", got.Customization.CustomType)
	assert.Len(t, got.SampleItems, 1)

	mine, err := is.GetInquiryRequestsMine(ctx, "john@acme.com", "john@acme.com")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = is.GetInquiryRequestById(ctx, 999999)
	assert.ErrorIs(t, err, gerr.ErrNotFound)
}

func TestInquiryStatusForwardOnly(t *testing.T) {
	db := newTestDB(t)

	is := db.Inquiries()
	ctx := context.Background()

	id, err := is.AddInquiryRequest(ctx, testInquiryInsert("flow@acme.com"), "flow@acme.com")
	require.NoError(t, err)

	// skipping stages forward is allowed
	err = is.UpdateInquiryStatus(ctx, id, entity.InquiryStatusQuoted)
	assert.NoError(t, err)

	// no going back
	err = is.UpdateInquiryStatus(ctx, id, entity.InquiryStatusContacted)
	assert.ErrorIs(t, err, gerr.ErrInvalidTransition)

	// same status is not a move
	err = is.UpdateInquiryStatus(ctx, id, entity.InquiryStatusQuoted)
	assert.ErrorIs(t, err, gerr.ErrInvalidTransition)

	err = is.UpdateInquiryStatus(ctx, id, entity.InquiryStatusClosed)
	assert.NoError(t, err)

	err = is.UpdateInquiryStatus(ctx, 999999, entity.InquiryStatusClosed)
	assert.ErrorIs(t, err, gerr.ErrNotFound)
}

func TestInquiryStatusConcurrentUpdates(t *testing.T) {
	db := newTestDB(t)

	is := db.Inquiries()
	ctx := context.Background()

	id, err := is.AddInquiryRequest(ctx, testInquiryInsert("race@acme.com"), "race@acme.com")
	require.NoError(t, err)

	// each write is guarded on the status it validated, so racing staff
	// updates can never land a backwards move
	statuses := []entity.InquiryStatus{
		entity.InquiryStatusContacted,
		entity.InquiryStatusQuoted,
		entity.InquiryStatusConverted,
		entity.InquiryStatusClosed,
	}
	errs := make([]error, len(statuses))
	var wg sync.WaitGroup
	for i, st := range statuses {
		wg.Add(1)
		go func(i int, st entity.InquiryStatus) {
			defer wg.Done()
			errs[i] = is.UpdateInquiryStatus(ctx, id, st)
		}(i, st)
	}
	wg.Wait()

	got, err := is.GetInquiryRequestById(ctx, id)
	require.NoError(t, err)

	// the final status is never behind a transition that reported success
	for i, st := range statuses {
		if errs[i] == nil {
			assert.False(t, entity.CanTransitionInquiryStatus(got.Status, st),
				"final status %s is behind committed status %s", got.Status, st)
		}
	}
}

func TestRelinkGuestInquiryRequests(t *testing.T) {
	db := newTestDB(t)

	is := db.Inquiries()
	ctx := context.Background()

	_, err := is.AddInquiryRequest(ctx, testInquiryInsert("guest2@acme.com"), "guest2@acme.com")
	require.NoError(t, err)

	userId := "b9a7c8f0-0000-4000-8000-000000000002"

	n, err := is.RelinkGuestInquiryRequests(ctx, "guest2@acme.com", userId)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = is.RelinkGuestInquiryRequests(ctx, "guest2@acme.com", userId)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
