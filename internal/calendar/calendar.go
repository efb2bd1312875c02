package calendar

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"log/slog"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/hidecraft/hidecraft-manager/internal/dependency"
)

const (
	slotDuration   = 30 * time.Minute
	slotTimeLayout = "03:04 PM"
)

type Config struct {
	CredentialsJSON string `mapstructure:"credentials_json"`
	CalendarId      string `mapstructure:"calendar_id"`
	Timezone        string `mapstructure:"timezone"`
}

// eventInserter is the slice of the calendar API Schedule depends on.
type eventInserter interface {
	insert(ctx context.Context, calendarId string, event *calendar.Event, withConference bool) (*calendar.Event, error)
}

type googleInserter struct {
	svc *calendar.Service
}

func (g *googleInserter) insert(ctx context.Context, calendarId string, event *calendar.Event, withConference bool) (*calendar.Event, error) {
	call := g.svc.Events.Insert(calendarId, event).Context(ctx)
	if withConference {
		call = call.ConferenceDataVersion(1)
	}
	return call.Do()
}

// Scheduler books meeting slots on the organizer's Google Calendar.
type Scheduler struct {
	inserter eventInserter
	c        *Config
}

func New(ctx context.Context, c *Config) (*Scheduler, error) {
	if c.CalendarId == "" {
		return nil, fmt.Errorf("calendar id is required")
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}

	svc, err := calendar.NewService(ctx, option.WithCredentialsJSON([]byte(c.CredentialsJSON)))
	if err != nil {
		return nil, fmt.Errorf("can't create calendar service: %w", err)
	}

	return &Scheduler{
		inserter: &googleInserter{svc: svc},
		c:        c,
	}, nil
}

// Schedule books a 30-minute event with a Meet link. It never returns an
// error: when the provider is unreachable or returns no link the result
// carries a locally generated fallback link and Fallback is set.
func (s *Scheduler) Schedule(ctx context.Context, det dependency.MeetingDetails) dependency.EventResult {
	start, err := s.slotStart(det)
	if err != nil {
		slog.Default().WarnContext(ctx, "can't resolve meeting slot, using fallback link",
			slog.String("timeSlot", det.TimeSlot),
			slog.String("timezone", det.Timezone),
			slog.String("err", err.Error()),
		)
		return fallbackResult()
	}
	end := start.Add(slotDuration)

	event := &calendar.Event{
		Summary:     fmt.Sprintf("Hidecraft %s meeting: %s", det.MeetingType, det.Name),
		Description: det.Message,
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: start.Location().String(),
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: start.Location().String(),
		},
		Attendees: []*calendar.EventAttendee{
			{Email: det.Email, DisplayName: det.Name},
		},
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId: fmt.Sprintf("hidecraft-%d", time.Now().UnixNano()),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{
					Type: "hangoutsMeet",
				},
			},
		},
	}

	created, err := s.inserter.insert(ctx, s.c.CalendarId, event, true)
	if err != nil {
		slog.Default().WarnContext(ctx, "conference insert failed, retrying without conference data",
			slog.String("err", err.Error()),
		)
		event.ConferenceData = nil
		created, err = s.inserter.insert(ctx, s.c.CalendarId, event, false)
		if err != nil {
			slog.Default().WarnContext(ctx, "calendar insert failed, using fallback link",
				slog.String("err", err.Error()),
			)
			return fallbackResult()
		}
	}

	link := meetLink(created)
	if link == "" {
		slog.Default().WarnContext(ctx, "event created without meet link, using fallback link",
			slog.String("eventId", created.Id),
		)
		res := fallbackResult()
		res.EventId = created.Id
		return res
	}

	return dependency.EventResult{
		MeetLink: link,
		EventId:  created.Id,
	}
}

// slotStart converts the meeting date, "02:30 PM" slot and requester
// timezone into a concrete start time. An absent or unknown timezone falls
// back to the organizer timezone. LoadLocation("") silently means UTC, so
// the empty string is substituted before the lookup.
func (s *Scheduler) slotStart(det dependency.MeetingDetails) (time.Time, error) {
	tz := strings.TrimSpace(det.Timezone)
	if tz == "" {
		tz = s.c.Timezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc, err = time.LoadLocation(s.c.Timezone)
		if err != nil {
			return time.Time{}, fmt.Errorf("can't load timezone: %w", err)
		}
	}

	slot, err := time.Parse(slotTimeLayout, strings.TrimSpace(det.TimeSlot))
	if err != nil {
		return time.Time{}, fmt.Errorf("can't parse time slot: %w", err)
	}

	d := det.Date
	return time.Date(d.Year(), d.Month(), d.Day(), slot.Hour(), slot.Minute(), 0, 0, loc), nil
}

func meetLink(ev *calendar.Event) string {
	if ev.HangoutLink != "" {
		return ev.HangoutLink
	}
	if ev.ConferenceData == nil {
		return ""
	}
	for _, ep := range ev.ConferenceData.EntryPoints {
		if ep.EntryPointType == "video" && ep.Uri != "" {
			return ep.Uri
		}
	}
	return ""
}

func fallbackResult() dependency.EventResult {
	return dependency.EventResult{
		MeetLink: fallbackMeetLink(),
		Fallback: true,
	}
}

func fallbackMeetLink() string {
	seg := func() string {
		b := make([]byte, 4)
		for i := range b {
			b[i] = byte('a' + rand.Intn(26))
		}
		return string(b)
	}
	return fmt.Sprintf("https://meet.google.com/%s-%s-%s", seg(), seg(), seg())
}
