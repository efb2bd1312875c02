package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/hidecraft/hidecraft-manager/internal/dependency"
	"github.com/hidecraft/hidecraft-manager/internal/entity"
	gerr "github.com/hidecraft/hidecraft-manager/internal/errors"
)

type inquiryStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Inquiries() dependency.Inquiries {
	return &inquiryStore{
		MYSQLStore: ms,
	}
}

func (s *inquiryStore) AddInquiryRequest(ctx context.Context, i *entity.InquiryRequestInsert, linkingKey string) (int, error) {
	var id int
	err := s.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		query := `
		INSERT INTO inquiry_request (
			status, linking_key, name, email, company, phone,
			inquiry_type, inquiry_source, product_interest, product_id, message
		)
		VALUES (
			:status, :linkingKey, :name, :email, :company, :phone,
			:inquiryType, :inquirySource, :productInterest, :productId, :message
		)
		`
		iid, err := ExecNamedLastId(ctx, rep.DB(), query, map[string]any{
			"status":          entity.InquiryStatusNew,
			"linkingKey":      linkingKey,
			"name":            i.Name,
			"email":           i.Email,
			"company":         i.Company,
			"phone":           i.Phone,
			"inquiryType":     i.InquiryType,
			"inquirySource":   i.InquirySource,
			"productInterest": i.ProductInterest,
			"productId":       i.ProductId,
			"message":         i.Message,
		})
		if err != nil {
			return fmt.Errorf("can't insert inquiry request: %w", err)
		}

		if i.Customization != nil {
			cq := `
			INSERT INTO inquiry_customization (inquiry_request_id, custom_type, quantity, budget, timeline)
			VALUES (:inquiryId, :customType, :quantity, :budget, :timeline)
			`
			err := ExecNamed(ctx, rep.DB(), cq, map[string]any{
				"inquiryId":  iid,
				"customType": i.Customization.CustomType,
				"quantity":   i.Customization.Quantity,
				"budget":     i.Customization.Budget,
				"timeline":   i.Customization.Timeline,
			})
			if err != nil {
				return fmt.Errorf("can't insert inquiry customization: %w", err)
			}
		}

		if len(i.SampleItems) > 0 {
			rows := make([]map[string]any, 0, len(i.SampleItems))
			for _, si := range i.SampleItems {
				rows = append(rows, map[string]any{
					"inquiry_request_id": iid,
					"product_name":       si.ProductName,
					"quantity":           si.Quantity,
				})
			}
			if err := BulkInsert(ctx, rep.DB(), "inquiry_sample_item", rows); err != nil {
				return fmt.Errorf("can't insert inquiry sample items: %w", err)
			}
		}

		id = iid
		return nil
	})
	return id, err
}

const inquirySelectColumns = `
	id, created_at, updated_at, status, linking_key, name, email, company, phone,
	inquiry_type, inquiry_source, product_interest, product_id, message`

func (s *inquiryStore) GetInquiryRequestById(ctx context.Context, id int) (entity.InquiryRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM inquiry_request WHERE id = ?`, inquirySelectColumns)

	var i entity.InquiryRequest
	err := s.DB().GetContext(ctx, &i, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.InquiryRequest{}, gerr.ErrNotFound
		}
		return entity.InquiryRequest{}, fmt.Errorf("can't get inquiry request: %w", err)
	}

	inquiries := []entity.InquiryRequest{i}
	if err := s.attachDetails(ctx, inquiries); err != nil {
		return entity.InquiryRequest{}, err
	}
	return inquiries[0], nil
}

func (s *inquiryStore) GetInquiryRequestsMine(ctx context.Context, linkingKey, email string) ([]entity.InquiryRequest, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM inquiry_request
		WHERE linking_key = :linkingKey OR email = :email
		ORDER BY created_at DESC
	`, inquirySelectColumns)

	inquiries, err := QueryListNamed[entity.InquiryRequest](ctx, s.DB(), query, map[string]any{
		"linkingKey": linkingKey,
		"email":      email,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []entity.InquiryRequest{}, nil
		}
		return nil, fmt.Errorf("can't get inquiry requests: %w", err)
	}
	if err := s.attachDetails(ctx, inquiries); err != nil {
		return nil, err
	}
	return inquiries, nil
}

func (s *inquiryStore) GetInquiryRequestsPaged(ctx context.Context, limit, offset int, orderFactor entity.OrderFactor, filters entity.InquiryFilters) ([]entity.InquiryRequest, int, error) {
	whereConditions := []string{}
	args := map[string]any{
		"limit":  limit,
		"offset": offset,
	}

	if filters.Status != nil {
		whereConditions = append(whereConditions, "status = :status")
		args["status"] = *filters.Status
	}
	if filters.InquiryType != nil {
		whereConditions = append(whereConditions, "inquiry_type = :inquiryType")
		args["inquiryType"] = *filters.InquiryType
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
		FROM inquiry_request
		%s
		ORDER BY %s
		LIMIT :limit OFFSET :offset
	`, inquirySelectColumns, whereClause, orderByClause)

	inquiries, err := QueryListNamed[entity.InquiryRequest](ctx, s.DB(), query, args)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []entity.InquiryRequest{}, 0, nil
		}
		return nil, 0, fmt.Errorf("can't get inquiry requests: %w", err)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM inquiry_request %s`, whereClause)
	totalCount, err := QueryCountNamed(ctx, s.DB(), countQuery, args)
	if err != nil {
		return nil, 0, fmt.Errorf("can't get total count: %w", err)
	}

	if err := s.attachDetails(ctx, inquiries); err != nil {
		return nil, 0, err
	}
	return inquiries, totalCount, nil
}

// UpdateInquiryStatus moves the inquiry forward through the lifecycle.
// Backwards or same-status moves are rejected with ErrInvalidTransition.
func (s *inquiryStore) UpdateInquiryStatus(ctx context.Context, id int, status entity.InquiryStatus) error {
	current, err := s.GetInquiryRequestById(ctx, id)
	if err != nil {
		return err
	}
	if !entity.CanTransitionInquiryStatus(current.Status, status) {
		return gerr.ErrInvalidTransition
	}

	// guard on the status we validated against so a concurrent staff update
	// can't commit a backwards move between the read and the write
	query := `UPDATE inquiry_request SET status = :status WHERE id = :id AND status = :fromStatus`
	n, err := ExecNamedRows(ctx, s.DB(), query, map[string]any{
		"id":         id,
		"status":     status,
		"fromStatus": current.Status,
	})
	if err != nil {
		return fmt.Errorf("can't update inquiry status: %w", err)
	}
	if n == 0 {
		return gerr.ErrInvalidTransition
	}
	return nil
}

func (s *inquiryStore) RelinkGuestInquiryRequests(ctx context.Context, email, userId string) (int, error) {
	query := `
		UPDATE inquiry_request
		SET linking_key = :userId
		WHERE email = :email AND linking_key != :userId
	`
	n, err := ExecNamedRows(ctx, s.DB(), query, map[string]any{
		"email":  email,
		"userId": userId,
	})
	if err != nil {
		return 0, fmt.Errorf("can't relink guest inquiry requests: %w", err)
	}
	return n, nil
}

func (s *inquiryStore) attachDetails(ctx context.Context, inquiries []entity.InquiryRequest) error {
	if len(inquiries) == 0 {
		return nil
	}

	ids := make([]int, 0, len(inquiries))
	for _, i := range inquiries {
		ids = append(ids, i.Id)
	}

	type customizationRow struct {
		Id               int    `db:"id"`
		InquiryRequestId int    `db:"inquiry_request_id"`
		CustomType       string `db:"custom_type"`
		Quantity         int    `db:"quantity"`
		Budget           string `db:"budget"`
		Timeline         string `db:"timeline"`
	}
	customizations, err := QueryListNamed[customizationRow](ctx, s.DB(), `
		SELECT id, inquiry_request_id, custom_type, quantity, budget, timeline
		FROM inquiry_customization
		WHERE inquiry_request_id IN (:ids)
	`, map[string]any{"ids": ids})
	if err != nil {
		return fmt.Errorf("can't get inquiry customizations: %w", err)
	}
	customizationByInquiry := make(map[int]customizationRow, len(customizations))
	for _, c := range customizations {
		customizationByInquiry[c.InquiryRequestId] = c
	}

	type itemRow struct {
		Id               int    `db:"id"`
		InquiryRequestId int    `db:"inquiry_request_id"`
		ProductName      string `db:"product_name"`
		Quantity         int    `db:"quantity"`
	}
	items, err := QueryListNamed[itemRow](ctx, s.DB(), `
		SELECT id, inquiry_request_id, product_name, quantity
		FROM inquiry_sample_item
		WHERE inquiry_request_id IN (:ids)
	`, map[string]any{"ids": ids})
	if err != nil {
		return fmt.Errorf("can't get inquiry sample items: %w", err)
	}
	itemsByInquiry := make(map[int][]entity.SampleItem, len(inquiries))
	for _, it := range items {
		itemsByInquiry[it.InquiryRequestId] = append(itemsByInquiry[it.InquiryRequestId], entity.SampleItem{
			Id:          it.Id,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
		})
	}

	for idx := range inquiries {
		if c, ok := customizationByInquiry[inquiries[idx].Id]; ok {
			inquiries[idx].Customization = &entity.CustomizationDetails{
				Id:         c.Id,
				CustomType: c.CustomType,
				Quantity:   c.Quantity,
				Budget:     c.Budget,
				Timeline:   c.Timeline,
			}
		}
		inquiries[idx].SampleItems = itemsByInquiry[inquiries[idx].Id]
	}
	return nil
}
