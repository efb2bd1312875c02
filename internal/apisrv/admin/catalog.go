package admin

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/hidecraft/hidecraft-manager/internal/apisrv/respond"
	"github.com/hidecraft/hidecraft-manager/internal/entity"
)

type productRequest struct {
	entity.ProductInsert
}

func (pr *productRequest) Bind(r *http.Request) error {
	return entity.ValidateProductInsert(&pr.ProductInsert)
}

type idResponse struct {
	Id int `json:"id"`
}

func (i *idResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (s *Server) addProduct(w http.ResponseWriter, r *http.Request) {
	req := &productRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}

	id, err := s.rep.Products().AddProduct(r.Context(), &req.ProductInsert)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.Render(w, r, &idResponse{Id: id})
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		render.Render(w, r, respond.ErrInvalidRequest(err))
		return
	}

	req := &productRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}

	if err := s.rep.Products().UpdateProduct(r.Context(), id, &req.ProductInsert); err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.NoContent(w, r)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		render.Render(w, r, respond.ErrInvalidRequest(err))
		return
	}

	if err := s.rep.Products().DeleteProductById(r.Context(), id); err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.NoContent(w, r)
}

type hiddenRequest struct {
	Hidden bool `json:"hidden"`
}

func (hr *hiddenRequest) Bind(r *http.Request) error {
	return nil
}

func (s *Server) setProductHidden(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		render.Render(w, r, respond.ErrInvalidRequest(err))
		return
	}

	req := &hiddenRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, respond.ErrInvalidRequest(err))
		return
	}

	if err := s.rep.Products().SetProductHidden(r.Context(), id, req.Hidden); err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.NoContent(w, r)
}

type thumbnailRequest struct {
	MediaId int `json:"mediaId"`
}

func (tr *thumbnailRequest) Bind(r *http.Request) error {
	return nil
}

func (s *Server) setProductThumbnail(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		render.Render(w, r, respond.ErrInvalidRequest(err))
		return
	}

	req := &thumbnailRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, respond.ErrInvalidRequest(err))
		return
	}

	if err := s.rep.Products().SetProductThumbnail(r.Context(), id, req.MediaId); err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.NoContent(w, r)
}

type productMediaRequest struct {
	MediaIds []int `json:"mediaIds"`
}

func (pr *productMediaRequest) Bind(r *http.Request) error {
	return nil
}

func (s *Server) setProductMedia(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		render.Render(w, r, respond.ErrInvalidRequest(err))
		return
	}

	req := &productMediaRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, respond.ErrInvalidRequest(err))
		return
	}

	if err := s.rep.Products().SetProductMedia(r.Context(), id, req.MediaIds); err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.NoContent(w, r)
}

type productListResponse struct {
	Products   []entity.Product `json:"products"`
	TotalCount int              `json:"totalCount"`
}

func (p *productListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// listProducts includes hidden products, unlike the public catalog.
func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	limit, offset, orderFactor := paging(r)

	products, total, err := s.rep.Products().GetProductsPaged(r.Context(), limit, offset, orderFactor, entity.ProductFilters{}, true)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.Render(w, r, &productListResponse{Products: products, TotalCount: total})
}

type categoryRequest struct {
	entity.CategoryInsert
}

func (cr *categoryRequest) Bind(r *http.Request) error {
	return entity.ValidateCategoryInsert(&cr.CategoryInsert)
}

func (s *Server) addCategory(w http.ResponseWriter, r *http.Request) {
	req := &categoryRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}

	id, err := s.rep.Categories().AddCategory(r.Context(), &req.CategoryInsert)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.Render(w, r, &idResponse{Id: id})
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		render.Render(w, r, respond.ErrInvalidRequest(err))
		return
	}

	req := &categoryRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}

	if err := s.rep.Categories().UpdateCategory(r.Context(), id, &req.CategoryInsert); err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.NoContent(w, r)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		render.Render(w, r, respond.ErrInvalidRequest(err))
		return
	}

	if err := s.rep.Categories().DeleteCategoryById(r.Context(), id); err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.NoContent(w, r)
}

type testimonialRequest struct {
	entity.TestimonialInsert
}

func (tr *testimonialRequest) Bind(r *http.Request) error {
	return entity.ValidateTestimonialInsert(&tr.TestimonialInsert)
}

func (s *Server) addTestimonial(w http.ResponseWriter, r *http.Request) {
	req := &testimonialRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}

	id, err := s.rep.Testimonials().AddTestimonial(r.Context(), &req.TestimonialInsert)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.Render(w, r, &idResponse{Id: id})
}

func (s *Server) updateTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		render.Render(w, r, respond.ErrInvalidRequest(err))
		return
	}

	req := &testimonialRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}

	if err := s.rep.Testimonials().UpdateTestimonial(r.Context(), id, &req.TestimonialInsert); err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.NoContent(w, r)
}

func (s *Server) deleteTestimonial(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		render.Render(w, r, respond.ErrInvalidRequest(err))
		return
	}

	if err := s.rep.Testimonials().DeleteTestimonialById(r.Context(), id); err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.NoContent(w, r)
}

type testimonialListResponse struct {
	Testimonials []entity.Testimonial `json:"testimonials"`
}

func (t *testimonialListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (s *Server) listTestimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := s.rep.Testimonials().ListTestimonials(r.Context(), false)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.Render(w, r, &testimonialListResponse{Testimonials: testimonials})
}
