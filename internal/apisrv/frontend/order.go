package frontend

import (
	"fmt"
	"net/http"

	"log/slog"

	"github.com/go-chi/render"
	"github.com/shopspring/decimal"

	"github.com/hidecraft/hidecraft-manager/internal/apisrv/auth"
	"github.com/hidecraft/hidecraft-manager/internal/apisrv/respond"
	"github.com/hidecraft/hidecraft-manager/internal/entity"
	"github.com/hidecraft/hidecraft-manager/internal/identity"
)

type orderRequest struct {
	entity.OrderInsert
}

func (or *orderRequest) Bind(r *http.Request) error {
	return entity.ValidateOrderInsert(&or.OrderInsert)
}

type orderResponse struct {
	Order *entity.Order `json:"order"`
}

func (o *orderResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// createOrder places a sample order. Items are priced from the catalog, not
// from the client payload, and hidden products are rejected.
func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	req := &orderRequest{}
	if err := render.Bind(r, req); err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	req.Email = identity.Normalize(req.Email)

	total := decimal.Zero
	for i := range req.Items {
		product, err := s.rep.Products().GetProductById(r.Context(), req.Items[i].ProductId)
		if err != nil {
			render.Render(w, r, respond.ErrInvalidRequest(fmt.Errorf("unknown product: %d", req.Items[i].ProductId)))
			return
		}
		if product.Hidden {
			render.Render(w, r, respond.ErrInvalidRequest(fmt.Errorf("unknown product: %d", req.Items[i].ProductId)))
			return
		}
		req.Items[i].ProductName = product.Name
		req.Items[i].UnitPrice = product.UnitPrice
		total = total.Add(product.UnitPrice.Mul(decimal.NewFromInt(int64(req.Items[i].Quantity))))
	}
	req.Total = total

	session := auth.SessionFromContext(r.Context())
	linkingKey := identity.Resolve(session, req.Email)

	order, err := s.rep.Orders().CreateOrder(r.Context(), &req.OrderInsert, linkingKey)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}

	s.mailer.NotifyOrder(r.Context(), s.rep, order)

	render.Render(w, r, &orderResponse{Order: order})
}

type orderListResponse struct {
	Orders []entity.Order `json:"orders"`
}

func (o *orderListResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func (s *Server) listMyOrders(w http.ResponseWriter, r *http.Request) {
	session := auth.SessionFromContext(r.Context())

	email := identity.Normalize(session.Email)
	n, err := s.rep.Orders().RelinkGuestOrders(r.Context(), email, session.UserId)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	if n > 0 {
		slog.Default().InfoContext(r.Context(), "relinked guest orders",
			slog.Int("count", n),
		)
	}

	orders, err := s.rep.Orders().GetOrdersMine(r.Context(), session.UserId, email)
	if err != nil {
		render.Render(w, r, respond.Error(err))
		return
	}
	render.Render(w, r, &orderListResponse{Orders: orders})
}
