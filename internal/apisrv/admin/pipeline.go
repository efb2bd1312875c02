package admin

import (
	"net/http"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/hidecraft/hidecraft-manager/internal/apisrv/respond"
	"github.com/hidecraft/hidecraft-manager/internal/entity"
)

type meetingListResponse struct {
	Meetings   []entity.MeetingRequest `json:"meetings"`
	TotalCount int                     `json:"totalCount"`
}

func (m *meetingListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (s *Server) listMeetings(w http.ResponseWriter, r *http.Request) {
	limit, offset, orderFactor := paging(r)

	filters := entity.MeetingFilters{
		Email:    r.URL.Query().Get("email"),
		DateFrom: dateParam(r, "dateFrom"),
		DateTo:   dateParam(r, "dateTo"),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := entity.MeetingStatus(raw)
		filters.Status = &status
	}
	if raw := r.URL.Query().Get("type"); raw != "" {
		mt := entity.MeetingType(raw)
		filters.MeetingType = &mt
	}

	meetings, total, err := s.rep.Meetings().GetMeetingRequestsPaged(r.Context(), limit, offset, orderFactor, filters)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.Render(w, r, &meetingListResponse{Meetings: meetings, TotalCount: total})
}

type statusRequest struct {
	Status string `json:"status"`
}

func (sr *statusRequest) Bind(r *http.Request) error {
	return nil
}

func (s *Server) updateMeetingStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		render.Render(w, r, respond.ErrInvalidRequest(err))
		return
	}

	req := &statusRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, respond.ErrInvalidRequest(err))
		return
	}

	if err := s.rep.Meetings().UpdateMeetingStatus(r.Context(), id, entity.MeetingStatus(req.Status)); err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.NoContent(w, r)
}

type inquiryListResponse struct {
	Inquiries  []entity.InquiryRequest `json:"inquiries"`
	TotalCount int                     `json:"totalCount"`
}

func (i *inquiryListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (s *Server) listInquiries(w http.ResponseWriter, r *http.Request) {
	limit, offset, orderFactor := paging(r)

	filters := entity.InquiryFilters{
		Email:    r.URL.Query().Get("email"),
		DateFrom: dateParam(r, "dateFrom"),
		DateTo:   dateParam(r, "dateTo"),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := entity.InquiryStatus(raw)
		filters.Status = &status
	}
	if raw := r.URL.Query().Get("type"); raw != "" {
		it := entity.InquiryType(raw)
		filters.InquiryType = &it
	}

	inquiries, total, err := s.rep.Inquiries().GetInquiryRequestsPaged(r.Context(), limit, offset, orderFactor, filters)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.Render(w, r, &inquiryListResponse{Inquiries: inquiries, TotalCount: total})
}

func (s *Server) updateInquiryStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		render.Render(w, r, respond.ErrInvalidRequest(err))
		return
	}

	req := &statusRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, respond.ErrInvalidRequest(err))
		return
	}

	if err := s.rep.Inquiries().UpdateInquiryStatus(r.Context(), id, entity.InquiryStatus(req.Status)); err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.NoContent(w, r)
}

type orderListResponse struct {
	Orders     []entity.Order `json:"orders"`
	TotalCount int            `json:"totalCount"`
}

func (o *orderListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	limit, offset, orderFactor := paging(r)

	filters := entity.OrderFilters{
		Email:    r.URL.Query().Get("email"),
		DateFrom: dateParam(r, "dateFrom"),
		DateTo:   dateParam(r, "dateTo"),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := entity.OrderStatus(raw)
		filters.Status = &status
	}

	orders, total, err := s.rep.Orders().GetOrdersPaged(r.Context(), limit, offset, orderFactor, filters)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.Render(w, r, &orderListResponse{Orders: orders, TotalCount: total})
}

// updateOrderStatus moves the order and tells the buyer, best-effort.
func (s *Server) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderUUID := chi.URLParam(r, "uuid")

	req := &statusRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, respond.ErrInvalidRequest(err))
		return
	}

	if err := s.rep.Orders().UpdateOrderStatus(r.Context(), orderUUID, entity.OrderStatus(req.Status)); err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}

	order, err := s.rep.Orders().GetOrderByUUID(r.Context(), orderUUID)
	if err != nil {
		slog.Default().ErrorContext(r.Context(), "can't load order for status mail",
			slog.String("uuid", orderUUID),
			slog.String("err", err.Error()),
		)
		render.NoContent(w, r)
		return
	}
	s.mailer.NotifyOrderStatus(r.Context(), s.rep, order)

	render.NoContent(w, r)
}
