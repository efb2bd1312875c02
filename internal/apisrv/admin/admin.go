// Package admin serves the staff back office: catalog management, gallery
// uploads, and meeting, inquiry and order pipelines.
package admin

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hidecraft/hidecraft-manager/internal/dependency"
	"github.com/hidecraft/hidecraft-manager/internal/entity"
)

type Server struct {
	rep    dependency.Repository
	mailer dependency.Mailer
	bucket dependency.FileStore
}

func New(rep dependency.Repository, mailer dependency.Mailer, bucket dependency.FileStore) *Server {
	return &Server{
		rep:    rep,
		mailer: mailer,
		bucket: bucket,
	}
}

func (s *Server) Routes(r chi.Router) {
	r.Post("/products", s.addProduct)
	r.Put("/products/{id}", s.updateProduct)
	r.Delete("/products/{id}", s.deleteProduct)
	r.Put("/products/{id}/hidden", s.setProductHidden)
	r.Put("/products/{id}/thumbnail", s.setProductThumbnail)
	r.Put("/products/{id}/media", s.setProductMedia)
	r.Get("/products", s.listProducts)

	r.Post("/categories", s.addCategory)
	r.Put("/categories/{id}", s.updateCategory)
	r.Delete("/categories/{id}", s.deleteCategory)

	r.Post("/testimonials", s.addTestimonial)
	r.Put("/testimonials/{id}", s.updateTestimonial)
	r.Delete("/testimonials/{id}", s.deleteTestimonial)
	r.Get("/testimonials", s.listTestimonials)

	r.Post("/media", s.uploadMedia)
	r.Delete("/media/{id}", s.deleteMedia)
	r.Get("/media", s.listMedia)

	r.Get("/meetings", s.listMeetings)
	r.Put("/meetings/{id}/status", s.updateMeetingStatus)

	r.Get("/inquiries", s.listInquiries)
	r.Put("/inquiries/{id}/status", s.updateInquiryStatus)

	r.Get("/orders", s.listOrders)
	r.Put("/orders/{uuid}/status", s.updateOrderStatus)
}

func paging(r *http.Request) (limit, offset int, orderFactor entity.OrderFactor) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 200 {
		limit = 50
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

func idParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

func dateParam(r *http.Request, key string) *time.Time {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}
