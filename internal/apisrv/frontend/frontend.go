// Package frontend serves the public marketing site API: catalog reads,
// sample cart, and the meeting, inquiry and sample-order forms.
package frontend

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hidecraft/hidecraft-manager/internal/dependency"
	"github.com/hidecraft/hidecraft-manager/internal/entity"
)

type Server struct {
	rep       dependency.Repository
	mailer    dependency.Mailer
	scheduler dependency.EventScheduler
}

func New(rep dependency.Repository, mailer dependency.Mailer, scheduler dependency.EventScheduler) *Server {
	return &Server{
		rep:       rep,
		mailer:    mailer,
		scheduler: scheduler,
	}
}

// Routes mounts the public surface. maybeSession attaches a customer session
// when one is presented, withSession requires one.
func (s *Server) Routes(r chi.Router, maybeSession, withSession func(http.Handler) http.Handler) {
	r.Get("/products", s.listProducts)
	r.Get("/products/{slug}", s.getProductBySlug)
	r.Get("/categories", s.listCategories)
	r.Get("/gallery", s.listGallery)
	r.Get("/testimonials", s.listTestimonials)

	r.Group(func(r chi.Router) {
		r.Use(maybeSession)
		r.Post("/meetings", s.createMeeting)
		r.Post("/inquiries", s.createInquiry)
		r.Post("/orders", s.createOrder)
	})

	r.Group(func(r chi.Router) {
		r.Use(withSession)
		r.Get("/meetings/mine", s.listMyMeetings)
		r.Get("/inquiries/mine", s.listMyInquiries)
		r.Get("/orders/mine", s.listMyOrders)
		r.Get("/cart", s.getCart)
		r.Put("/cart", s.putCart)
	})
}

func paging(r *http.Request) (limit, offset int, orderFactor entity.OrderFactor) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}
	orderFactor = entity.Descending
	if r.URL.Query().Get("order") == "asc" {
		orderFactor = entity.Ascending
	}
	return limit, offset, orderFactor
}
