package frontend

import (
	"net/http"

	"log/slog"

	"github.com/go-chi/render"

	"github.com/hidecraft/hidecraft-manager/internal/apisrv/auth"
	"github.com/hidecraft/hidecraft-manager/internal/apisrv/respond"
	"github.com/hidecraft/hidecraft-manager/internal/entity"
	"github.com/hidecraft/hidecraft-manager/internal/identity"
)

type inquiryRequest struct {
	entity.InquiryRequestInsert
}

func (ir *inquiryRequest) Bind(r *http.Request) error {
	return entity.ValidateInquiryRequestInsert(&ir.InquiryRequestInsert)
}

type inquiryResponse struct {
	Inquiry *entity.InquiryRequest `json:"inquiry"`
}

func (i *inquiryResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// createInquiry persists the inquiry and notifies best-effort. Mail failures
// never fail the submission.
func (s *Server) createInquiry(w http.ResponseWriter, r *http.Request) {
	req := &inquiryRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	req.Email = identity.Normalize(req.Email)

	session := auth.SessionFromContext(r.Context())
	linkingKey := identity.Resolve(session, req.Email)

	id, err := s.rep.Inquiries().AddInquiryRequest(r.Context(), &req.InquiryRequestInsert, linkingKey)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}

	inquiry, err := s.rep.Inquiries().GetInquiryRequestById(r.Context(), id)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}

	s.mailer.NotifyInquiry(r.Context(), s.rep, &inquiry)

	render.Render(w, r, &inquiryResponse{Inquiry: &inquiry})
}

type inquiryListResponse struct {
	Inquiries []entity.InquiryRequest `json:"inquiries"`
}

func (i *inquiryListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (s *Server) listMyInquiries(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())

	email := identity.Normalize(session.Email)
	n, err := s.rep.Inquiries().RelinkGuestInquiryRequests(r.Context(), email, session.UserId)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	if n > 0 {
		slog.Default().InfoContext(r.Context(), "relinked guest inquiry requests",
			slog.Int("count", n),
		)
	}

	inquiries, err := s.rep.Inquiries().GetInquiryRequestsMine(r.Context(), session.UserId, email)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.Render(w, r, &inquiryListResponse{Inquiries: inquiries})
}
