package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMeeting() MeetingRequestInsert {
	return MeetingRequestInsert{
		Name:        "Jordan Reyes",
		Email:       "jordan@acmeleather.com",
		Company:     "Acme Leather Co",
		MeetingType: MeetingTypeConsultation,
		MeetingMode: MeetingModeVideo,
		Date:        time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC),
		TimeSlot:    "10:00 AM",
		Timezone:    "America/New_York",
	}
}

func TestValidateMeetingRequestInsert(t *testing.T) {
	m := validMeeting()
	require.NoError(t, ValidateMeetingRequestInsert(&m))

	m = validMeeting()
	m.Name = "   "
	assert.Error(t, ValidateMeetingRequestInsert(&m))

	m = validMeeting()
	m.Email = "not-an-email"
	assert.Error(t, ValidateMeetingRequestInsert(&m))

	m = validMeeting()
	m.MeetingType = "coffee"
	assert.Error(t, ValidateMeetingRequestInsert(&m))

	m = validMeeting()
	m.MeetingMode = "telegram"
	assert.Error(t, ValidateMeetingRequestInsert(&m))

	m = validMeeting()
	m.TimeSlot = "10:15 AM"
	assert.Error(t, ValidateMeetingRequestInsert(&m))

	m = validMeeting()
	m.Timezone = "Mars/Olympus"
	assert.Error(t, ValidateMeetingRequestInsert(&m))

	m = validMeeting()
	m.SampleItems = []SampleItem{{ProductName: "Tote", Quantity: 0}}
	assert.Error(t, ValidateMeetingRequestInsert(&m))

	// whitespace gets trimmed before checks
	m = validMeeting()
	m.Email = "  jordan@acmeleather.com  "
	require.NoError(t, ValidateMeetingRequestInsert(&m))
	assert.Equal(t, "jordan@acmeleather.com", m.Email)
}

func TestCanTransitionMeetingStatus(t *testing.T) {
	assert.True(t, CanTransitionMeetingStatus(MeetingStatusScheduled, MeetingStatusCompleted))
	assert.True(t, CanTransitionMeetingStatus(MeetingStatusScheduled, MeetingStatusCancelled))

	assert.False(t, CanTransitionMeetingStatus(MeetingStatusCompleted, MeetingStatusCancelled))
	assert.False(t, CanTransitionMeetingStatus(MeetingStatusCancelled, MeetingStatusScheduled))
	assert.False(t, CanTransitionMeetingStatus(MeetingStatusScheduled, MeetingStatusScheduled))
}
