package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hidecraft/hidecraft-manager/internal/dependency"
	"github.com/hidecraft/hidecraft-manager/internal/entity"
	gerr "github.com/hidecraft/hidecraft-manager/internal/errors"
)

type orderStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Orders() dependency.Orders {
	return &orderStore{
		MYSQLStore: ms,
	}
}

const orderSelectColumns = `
	id, uuid, created_at, updated_at, status, linking_key, name, email, company,
	phone, shipping_address, total`

func (s *orderStore) CreateOrder(ctx context.Context, o *entity.OrderInsert, linkingKey string) (*entity.Order, error) {
	orderUUID := uuid.New().String()

	err := s.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		query := `
		INSERT INTO sample_order (
			uuid, status, linking_key, name, email, company, phone, shipping_address, total
		)
		VALUES (
			:uuid, :status, :linkingKey, :name, :email, :company, :phone, :shippingAddress, :total
		)
		`
		oid, err := ExecNamedLastId(ctx, rep.DB(), query, map[string]any{
			"uuid":            orderUUID,
			"status":          entity.OrderStatusPlaced,
			"linkingKey":      linkingKey,
			"name":            o.Name,
			"email":           o.Email,
			"company":         o.Company,
			"phone":           o.Phone,
			"shippingAddress": o.ShippingAddress,
			"total":           o.Total,
		})
		if err != nil {
			return fmt.Errorf("can't insert order: %w", err)
		}

		rows := make([]map[string]any, 0, len(o.Items))
		for _, it := range o.Items {
			rows = append(rows, map[string]any{
				"order_id":     oid,
				"product_id":   it.ProductId,
				"product_name": it.ProductName,
				"quantity":     it.Quantity,
				"unit_price":   it.UnitPrice,
			})
		}
		if err := BulkInsert(ctx, rep.DB(), "sample_order_item", rows); err != nil {
			return fmt.Errorf("can't insert order items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrderByUUID(ctx, orderUUID)
}

func (s *orderStore) GetOrderByUUID(ctx context.Context, orderUUID string) (*entity.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM sample_order WHERE uuid = ?`, orderSelectColumns)

	var o entity.Order
	err := s.DB().GetContext(ctx, &o, query, orderUUID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrNotFound
		}
		return nil, fmt.Errorf("can't get order: %w", err)
	}

	orders := []entity.Order{o}
	if err := s.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (s *orderStore) GetOrdersMine(ctx context.Context, linkingKey, email string) ([]entity.Order, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM sample_order
		WHERE linking_key = :linkingKey OR email = :email
		ORDER BY created_at DESC
	`, orderSelectColumns)

	orders, err := QueryListNamed[entity.Order](ctx, s.DB(), query, map[string]any{
		"linkingKey": linkingKey,
		"email":      email,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []entity.Order{}, nil
		}
		return nil, fmt.Errorf("can't get orders: %w", err)
	}
	if err := s.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderStore) GetOrdersPaged(ctx context.Context, limit, offset int, orderFactor entity.OrderFactor, filters entity.OrderFilters) ([]entity.Order, int, error) {
	whereConditions := []string{}
	args := map[string]any{
		"limit":  limit,
		"offset": offset,
	}

	if filters.Status != nil {
		whereConditions = append(whereConditions, "status = :status")
		args["status"] = *filters.Status
	}
	if filters.Email != "" {
		whereConditions = append(whereConditions, "email LIKE :email")
		args["email"] = "%" + filters.Email + "%"
	}
	if filters.DateFrom != nil {
		whereConditions = append(whereConditions, "created_at >= :dateFrom")
		args["dateFrom"] = *filters.DateFrom
	}
	if filters.DateTo != nil {
		whereConditions = append(whereConditions, "created_at <= :dateTo")
		args["dateTo"] = *filters.DateTo
	}

	whereClause := ""
	if len(whereConditions) > 0 {
		whereClause = "WHERE " + strings.Join(whereConditions, " AND ")
	}

	orderByClause := "created_at DESC"
	if orderFactor == entity.Ascending {
		orderByClause = "created_at ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM sample_order
		%s
		ORDER BY %s
		LIMIT :limit OFFSET :offset
	`, orderSelectColumns, whereClause, orderByClause)

	orders, err := QueryListNamed[entity.Order](ctx, s.DB(), query, args)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []entity.Order{}, 0, nil
		}
		return nil, 0, fmt.Errorf("can't get orders: %w", err)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM sample_order %s`, whereClause)
	totalCount, err := QueryCountNamed(ctx, s.DB(), countQuery, args)
	if err != nil {
		return nil, 0, fmt.Errorf("can't get total count: %w", err)
	}

	if err := s.attachItems(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, totalCount, nil
}

// UpdateOrderStatus applies the fulfilment lifecycle rules: forward moves
// only, cancellation allowed from any non-terminal status.
func (s *orderStore) UpdateOrderStatus(ctx context.Context, orderUUID string, status entity.OrderStatus) error {
	current, err := s.GetOrderByUUID(ctx, orderUUID)
	if err != nil {
		return err
	}
	if !entity.CanTransitionOrderStatus(current.Status, status) {
		return gerr.ErrInvalidTransition
	}

	// guard on the status we validated against so a concurrent staff update
	// can't commit a backwards move between the read and the write
	query := `UPDATE sample_order SET status = :status WHERE uuid = :uuid AND status = :fromStatus`
	n, err := ExecNamedRows(ctx, s.DB(), query, map[string]any{
		"uuid":       orderUUID,
		"status":     status,
		"fromStatus": current.Status,
	})
	if err != nil {
		return fmt.Errorf("can't update order status: %w", err)
	}
	if n == 0 {
		return gerr.ErrInvalidTransition
	}
	return nil
}

func (s *orderStore) RelinkGuestOrders(ctx context.Context, email, userId string) (int, error) {
	query := `
		UPDATE sample_order
		SET linking_key = :userId
		WHERE email = :email AND linking_key != :userId
	`
	n, err := ExecNamedRows(ctx, s.DB(), query, map[string]any{
		"email":  email,
		"userId": userId,
	})
	if err != nil {
		return 0, fmt.Errorf("can't relink guest orders: %w", err)
	}
	return n, nil
}

func (s *orderStore) attachItems(ctx context.Context, orders []entity.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.Id)
	}

	items, err := QueryListNamed[entity.OrderItem](ctx, s.DB(), `
		SELECT id, order_id, product_id, product_name, quantity, unit_price
		FROM sample_order_item
		WHERE order_id IN (:ids)
	`, map[string]any{"ids": ids})
	if err != nil {
		return fmt.Errorf("can't get order items: %w", err)
	}

	itemsByOrder := make(map[int][]entity.OrderItem, len(orders))
	for _, it := range items {
		itemsByOrder[it.OrderId] = append(itemsByOrder[it.OrderId], it)
	}
	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].Id]
	}
	return nil
}
