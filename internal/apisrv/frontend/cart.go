package frontend

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/hidecraft/hidecraft-manager/internal/apisrv/auth"
	"github.com/hidecraft/hidecraft-manager/internal/apisrv/respond"
	"github.com/hidecraft/hidecraft-manager/internal/entity"
)

type cartResponse struct {
	Items []entity.CartItem `json:"items"`
}

func (c *cartResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())

	items, err := s.rep.Carts().GetCartItems(r.Context(), session.UserId)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.Render(w, r, &cartResponse{Items: items})
}

type cartSyncRequest struct {
	Items []entity.CartItem `json:"items"`
}

func (c *cartSyncRequest) Bind(r *http.Request) error {
	return nil
}

// putCart syncs the locally held cart on login: the server-side cart wins
// when non-empty, otherwise the submitted cart is adopted. The canonical
// cart is returned either way.
func (s *Server) putCart(w http.ResponseWriter, r *http.Request) {
	req := &cartSyncRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, respond.ErrInvalidRequest(err))
		return
	}

	session := auth.SessionFromContext(r.Context())

	server, err := s.rep.Carts().GetCartItems(r.Context(), session.UserId)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}

	merged := entity.MergeCarts(server, req.Items)
	if err := s.rep.Carts().ReplaceCartItems(r.Context(), session.UserId, merged); err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}

	items, err := s.rep.Carts().GetCartItems(r.Context(), session.UserId)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.Render(w, r, &cartResponse{Items: items})
}
