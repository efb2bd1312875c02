package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hidecraft/hidecraft-manager/internal/entity"
	gerr "github.com/hidecraft/hidecraft-manager/internal/errors"
)

func testMeetingInsert(email string) *entity.MeetingRequestInsert {
	return &entity.MeetingRequestInsert{
		Name:        "Jane Buyer",
		Email:       email,
		Company:     "Acme Retail",
		Phone:       "+12025550134",
		MeetingType: entity.MeetingTypeConsultation,
		MeetingMode: entity.MeetingModeVideo,
		Date:        time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC),
		TimeSlot:    "10:00 AM",
		Timezone:    "America/New_York",
		Message:     "interested in the belt collection",
		SampleItems: []entity.SampleItem{
			{ProductName: "Classic Belt", Quantity: 2},
		},
	}
}

func TestMeetingRequests(t *testing.T) {
	db := newTestDB(t)

	ms := db.Meetings()
	ctx := context.Background()

	link := "https://meet.google.com/abc-defg-hij"
	eventId := "evt_123"
	id, err := ms.AddMeetingRequest(ctx, testMeetingInsert("jane@acme.com"), "jane@acme.com", &link, &eventId)
	require.NoError(t, err)

	got, err := ms.GetMeetingRequestById(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.MeetingStatusScheduled, got.Status)
	assert.Equal(t, "jane@acme.com", got.LinkingKey)
	assert.True(t, got.MeetLink.Valid)
	assert.Equal(t, link, got.MeetLink.String)
	assert.Len(t, got.SampleItems, 1)

	// phone meetings carry no link
	phoneInsert := testMeetingInsert("jane@acme.com")
	phoneInsert.MeetingMode = entity.MeetingModePhone
	phoneId, err := ms.AddMeetingRequest(ctx, phoneInsert, "jane@acme.com", nil, nil)
	require.NoError(t, err)

	phoneGot, err := ms.GetMeetingRequestById(ctx, phoneId)
	require.NoError(t, err)
	assert.False(t, phoneGot.MeetLink.Valid)

	mine, err := ms.GetMeetingRequestsMine(ctx, "jane@acme.com", "jane@acme.com")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = ms.GetMeetingRequestById(ctx, 999999)
	assert.ErrorIs(t, err, gerr.ErrNotFound)
}

func TestMeetingRequestsMineOrderedBySlotTime(t *testing.T) {
	db := newTestDB(t)

	ms := db.Meetings()
	ctx := context.Background()

	// "01:00 PM" sorts before "09:00 AM" as text; chronological order must win
	slots := []string{"01:00 PM", "09:00 AM", "11:30 AM", "04:30 PM"}
	for _, slot := range slots {
		ins := testMeetingInsert("slots@acme.com")
		ins.TimeSlot = slot
		_, err := ms.AddMeetingRequest(ctx, ins, "slots@acme.com", nil, nil)
		require.NoError(t, err)
	}

	mine, err := ms.GetMeetingRequestsMine(ctx, "slots@acme.com", "slots@acme.com")
	require.NoError(t, err)
	require.Len(t, mine, 4)

	got := make([]string, 0, len(mine))
	for _, m := range mine {
		got = append(got, m.TimeSlot)
	}
	assert.Equal(t, []string{"09:00 AM", "11:30 AM", "01:00 PM", "04:30 PM"}, got)
}

func TestMeetingStatusTransitions(t *testing.T) {
	db := newTestDB(t)

	ms := db.Meetings()
	ctx := context.Background()

	id, err := ms.AddMeetingRequest(ctx, testMeetingInsert("status@acme.com"), "status@acme.com", nil, nil)
	require.NoError(t, err)

	err = ms.UpdateMeetingStatus(ctx, id, entity.MeetingStatusCompleted)
	assert.NoError(t, err)

	// terminal statuses stay put
	err = ms.UpdateMeetingStatus(ctx, id, entity.MeetingStatusCancelled)
	assert.ErrorIs(t, err, gerr.ErrInvalidTransition)

	err = ms.UpdateMeetingStatus(ctx, 999999, entity.MeetingStatusCancelled)
	assert.ErrorIs(t, err, gerr.ErrNotFound)
}

func TestRelinkGuestMeetingRequests(t *testing.T) {
	db := newTestDB(t)

	ms := db.Meetings()
	ctx := context.Background()

	// guest bookings keyed by email
	_, err := ms.AddMeetingRequest(ctx, testMeetingInsert("guest@acme.com"), "guest@acme.com", nil, nil)
	require.NoError(t, err)
	_, err = ms.AddMeetingRequest(ctx, testMeetingInsert("guest@acme.com"), "guest@acme.com", nil, nil)
	require.NoError(t, err)

	userId := "b9a7c8f0-0000-4000-8000-000000000001"

	n, err := ms.RelinkGuestMeetingRequests(ctx, "guest@acme.com", userId)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// second pass is a no-op
	n, err = ms.RelinkGuestMeetingRequests(ctx, "guest@acme.com", userId)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	mine, err := ms.GetMeetingRequestsMine(ctx, userId, "guest@acme.com")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, m := range mine {
		assert.Equal(t, userId, m.LinkingKey)
	}
}

func TestSetMeetingNotified(t *testing.T) {
	db := newTestDB(t)

	ms := db.Meetings()
	ctx := context.Background()

	id, err := ms.AddMeetingRequest(ctx, testMeetingInsert("notify@acme.com"), "notify@acme.com", nil, nil)
	require.NoError(t, err)

	err = ms.SetMeetingNotified(ctx, id, entity.NotificationOutcome{RequesterSent: true, StaffSent: false})
	require.NoError(t, err)

	got, err := ms.GetMeetingRequestById(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.RequesterNotified)
	assert.False(t, got.StaffNotified)
}
