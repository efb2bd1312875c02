package calendar

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"

	"github.com/hidecraft/hidecraft-manager/internal/dependency"
)

var fallbackLinkRe = regexp.MustCompile(`^https://meet\.google\.com/[a-z]{4}-[a-z]{4}-[a-z]{4}$`)

type fakeInserter struct {
	failConference bool
	failAll        bool
	noLink         bool
	calls          int
	lastEvent      *calendar.Event
}

func (f *fakeInserter) insert(ctx context.Context, calendarId string, event *calendar.Event, withConference bool) (*calendar.Event, error) {
	f.calls++
	f.lastEvent = event
	if f.failAll {
		return nil, fmt.Errorf("calendar unavailable")
	}
	if withConference && f.failConference {
		return nil, fmt.Errorf("conference data rejected")
	}

	created := &calendar.Event{Id: "evt_1"}
	if withConference && !f.noLink {
		created.HangoutLink = "https://meet.google.com/abc-defg-hij"
	}
	return created, nil
}

func testScheduler(ins eventInserter) *Scheduler {
	return &Scheduler{
		inserter: ins,
		c: &Config{
			CalendarId: "primary",
			Timezone:   "UTC",
		},
	}
}

func testDetails() dependency.MeetingDetails {
	return dependency.MeetingDetails{
		Name:        "Jane",
		Email:       "jane@acme.com",
		Date:        time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC),
		TimeSlot:    "02:30 PM",
		Timezone:    "America/New_York",
		MeetingType: "consultation",
	}
}

func TestScheduleReturnsProviderLink(t *testing.T) {
	ins := &fakeInserter{}
	res := testScheduler(ins).Schedule(context.Background(), testDetails())

	assert.Equal(t, "https://meet.google.com/abc-defg-hij", res.MeetLink)
	assert.Equal(t, "evt_1", res.EventId)
	assert.False(t, res.Fallback)
	assert.Equal(t, 1, ins.calls)
}

func TestScheduleRetriesWithoutConference(t *testing.T) {
	ins := &fakeInserter{failConference: true}
	res := testScheduler(ins).Schedule(context.Background(), testDetails())

	// second insert succeeds without a link, so we fall back
	assert.Equal(t, 2, ins.calls)
	assert.True(t, res.Fallback)
	assert.Regexp(t, fallbackLinkRe, res.MeetLink)
	assert.Equal(t, "evt_1", res.EventId)
}

func TestScheduleTotalFailureUsesFallback(t *testing.T) {
	ins := &fakeInserter{failAll: true}
	res := testScheduler(ins).Schedule(context.Background(), testDetails())

	assert.True(t, res.Fallback)
	assert.Regexp(t, fallbackLinkRe, res.MeetLink)
	assert.Empty(t, res.EventId)
}

func TestScheduleEventWithoutLinkUsesFallback(t *testing.T) {
	ins := &fakeInserter{noLink: true}
	res := testScheduler(ins).Schedule(context.Background(), testDetails())

	assert.True(t, res.Fallback)
	assert.Regexp(t, fallbackLinkRe, res.MeetLink)
	assert.Equal(t, "evt_1", res.EventId)
}

func TestSlotStart(t *testing.T) {
	s := testScheduler(&fakeInserter{})

	start, err := s.slotStart(testDetails())
	require.NoError(t, err)

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 12, 14, 30, 0, 0, loc), start)

	// unknown timezone falls back to the organizer timezone
	det := testDetails()
	det.Timezone = "Mars/Olympus"
	start, err = s.slotStart(det)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, start.Location())

	det.TimeSlot = "25:99"
	_, err = s.slotStart(det)
	assert.Error(t, err)
}

func TestSlotStartEmptyTimezoneUsesOrganizer(t *testing.T) {
	s := testScheduler(&fakeInserter{})
	s.c.Timezone = "Asia/Kolkata"

	det := testDetails()
	det.Timezone = ""
	start, err := s.slotStart(det)
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", start.Location().String())

	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 12, 14, 30, 0, 0, kolkata), start)
}

func TestScheduleEventCarriesResolvedTimezone(t *testing.T) {
	ins := &fakeInserter{}
	s := testScheduler(ins)
	s.c.Timezone = "Asia/Kolkata"

	det := testDetails()
	det.Timezone = ""
	s.Schedule(context.Background(), det)

	require.NotNil(t, ins.lastEvent)
	assert.Equal(t, "Asia/Kolkata", ins.lastEvent.Start.TimeZone)
	assert.Equal(t, "Asia/Kolkata", ins.lastEvent.End.TimeZone)
}

func TestFallbackMeetLinkShape(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.Regexp(t, fallbackLinkRe, fallbackMeetLink())
	}
}
