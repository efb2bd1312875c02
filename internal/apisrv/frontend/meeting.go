package frontend

import (
	"net/http"

	"log/slog"

	"github.com/go-chi/render"

	"github.com/hidecraft/hidecraft-manager/internal/apisrv/auth"
	"github.com/hidecraft/hidecraft-manager/internal/apisrv/respond"
	"github.com/hidecraft/hidecraft-manager/internal/dependency"
	"github.com/hidecraft/hidecraft-manager/internal/entity"
	"github.com/hidecraft/hidecraft-manager/internal/identity"
)

type meetingRequest struct {
	entity.MeetingRequestInsert
}

func (mr *meetingRequest) Bind(r *http.Request) error {
	return entity.ValidateMeetingRequestInsert(&mr.MeetingRequestInsert)
}

type meetingResponse struct {
	Meeting  *entity.MeetingRequest `json:"meeting"`
	MeetLink string                 `json:"meetLink,omitempty"`
}

func (m *meetingResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// createMeeting books a meeting: validate, resolve the linking key, schedule
// a calendar event for video meetings, persist, then notify best-effort.
// Once the record is persisted the request succeeds regardless of what the
// calendar or mail providers did.
func (s *Server) createMeeting(w http.ResponseWriter, r *http.Request) {
	req := &meetingRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	req.Email = identity.Normalize(req.Email)

	session := auth.SessionFromContext(r.Context())
	linkingKey := identity.Resolve(session, req.Email)

	var meetLink, calendarEventId *string
	if req.MeetingMode == entity.MeetingModeVideo {
		res := s.scheduler.Schedule(r.Context(), dependency.MeetingDetails{
			Name:        req.Name,
			Email:       req.Email,
			Company:     req.Company,
			Date:        req.Date,
			TimeSlot:    req.TimeSlot,
			Timezone:    req.Timezone,
			MeetingType: string(req.MeetingType),
			Message:     req.Message,
		})
		if res.Fallback {
			slog.Default().WarnContext(r.Context(), "calendar degraded, serving fallback meet link",
				slog.String("email", req.Email),
			)
		}
		meetLink = &res.MeetLink
		if res.EventId != "" {
			calendarEventId = &res.EventId
		}
	}

	id, err := s.rep.Meetings().AddMeetingRequest(r.Context(), &req.MeetingRequestInsert, linkingKey, meetLink, calendarEventId)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}

	meeting, err := s.rep.Meetings().GetMeetingRequestById(r.Context(), id)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}

	outcome := s.mailer.NotifyMeeting(r.Context(), s.rep, &meeting)
	if err := s.rep.Meetings().SetMeetingNotified(r.Context(), id, outcome); err != nil {
		slog.Default().ErrorContext(r.Context(), "can't record notification outcome",
			slog.Int("meetingId", id),
			slog.String("err", err.Error()),
		)
	}
	meeting.RequesterNotified = outcome.RequesterSent
	meeting.StaffNotified = outcome.StaffSent

	render.Render(w, r, &meetingResponse{
		Meeting:  &meeting,
		MeetLink: meeting.MeetLink.String,
	})
}

type meetingListResponse struct {
	Meetings []entity.MeetingRequest `json:"meetings"`
}

func (m *meetingListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// listMyMeetings migrates any guest records for the session email onto the
// user id, then returns everything linked to the caller soonest-first. The
// relink is idempotent so repeated calls converge.
func (s *Server) listMyMeetings(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())

	email := identity.Normalize(session.Email)
	n, err := s.rep.Meetings().RelinkGuestMeetingRequests(r.Context(), email, session.UserId)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	if n > 0 {
		slog.Default().InfoContext(r.Context(), "relinked guest meeting requests",
			slog.Int("count", n),
		)
	}

	meetings, err := s.rep.Meetings().GetMeetingRequestsMine(r.Context(), session.UserId, email)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.Render(w, r, &meetingListResponse{Meetings: meetings})
}
