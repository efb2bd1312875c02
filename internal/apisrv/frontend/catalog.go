package frontend

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/shopspring/decimal"

	"github.com/hidecraft/hidecraft-manager/internal/apisrv/respond"
	"github.com/hidecraft/hidecraft-manager/internal/entity"
)

type productListResponse struct {
	Products   []entity.Product `json:"products"`
	TotalCount int              `json:"totalCount"`
}

func (p *productListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	limit, offset, orderFactor := paging(r)

	filters := entity.ProductFilters{}
	if cid, err := strconv.Atoi(r.URL.Query().Get("categoryId")); err == nil && cid > 0 {
		filters.CategoryId = &cid
	}
	if r.URL.Query().Get("featured") == "true" {
		featured := true
		filters.Featured = &featured
	}
	if raw := r.URL.Query().Get("priceFrom"); raw != "" {
		if from, err := decimal.NewFromString(raw); err == nil {
			filters.PriceFrom = &from
		}
	}
	if raw := r.URL.Query().Get("priceTo"); raw != "" {
		if to, err := decimal.NewFromString(raw); err == nil {
			filters.PriceTo = &to
		}
	}

	products, total, err := s.rep.Products().GetProductsPaged(r.Context(), limit, offset, orderFactor, filters, false)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.Render(w, r, &productListResponse{Products: products, TotalCount: total})
}

type productResponse struct {
	Product *entity.ProductFull `json:"product"`
}

func (p *productResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (s *Server) getProductBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := s.rep.Products().GetProductBySlug(r.Context(), slug)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	if product.Hidden {
		render.Render(w, r, respond.ErrNotFound)
		return
	}
	render.Render(w, r, &productResponse{Product: product})
}

type categoryListResponse struct {
	Categories []entity.Category `json:"categories"`
}

func (c *categoryListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.rep.Categories().ListCategories(r.Context())
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.Render(w, r, &categoryListResponse{Categories: categories})
}

type galleryResponse struct {
	Media      []entity.MediaFull `json:"media"`
	TotalCount int                `json:"totalCount"`
}

func (g *galleryResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (s *Server) listGallery(w http.ResponseWriter, r *http.Request) {
	limit, offset, orderFactor := paging(r)

	media, total, err := s.rep.Media().ListMediaPaged(r.Context(), limit, offset, orderFactor)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.Render(w, r, &galleryResponse{Media: media, TotalCount: total})
}

type testimonialListResponse struct {
	Testimonials []entity.Testimonial `json:"testimonials"`
}

func (t *testimonialListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (s *Server) listTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := s.rep.Testimonials().ListTestimonials(r.Context(), true)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.Render(w, r, &testimonialListResponse{Testimonials: testimonials})
}
