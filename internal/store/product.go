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

type productStore struct {
	*MYSQLStore
}

// Products returns an object implementing product repository
func (ms *MYSQLStore) Products() dependency.Products {
	return &productStore{
		MYSQLStore: ms,
	}
}

const productSelectColumns = `
	id, created_at, updated_at, name, slug, category_id, description, materials,
	unit_price, min_order_qty, lead_time_days, thumbnail_id, featured, hidden`

func (s *productStore) AddProduct(ctx context.Context, prd *entity.ProductInsert) (int, error) {
	query := `
	INSERT INTO product (
		name, slug, category_id, description, materials,
		unit_price, min_order_qty, lead_time_days, thumbnail_id, featured, hidden
	)
	VALUES (
		:name, :slug, :categoryId, :description, :materials,
		:unitPrice, :minOrderQty, :leadTimeDays, :thumbnailId, :featured, :hidden
	)
	`
	id, err := ExecNamedLastId(ctx, s.DB(), query, map[string]any{
		"name":         prd.Name,
		"slug":         prd.Slug,
		"categoryId":   prd.CategoryId,
		"description":  prd.Description,
		"materials":    prd.Materials,
		"unitPrice":    prd.UnitPrice,
		"minOrderQty":  prd.MinOrderQty,
		"leadTimeDays": prd.LeadTimeDays,
		"thumbnailId":  prd.ThumbnailId,
		"featured":     prd.Featured,
		"hidden":       prd.Hidden,
	})
	if err != nil {
		if s.IsErrUniqueViolation(err) {
			return 0, gerr.ErrAlreadyExists
		}
		return 0, fmt.Errorf("can't insert product: %w", err)
	}
	return id, nil
}

func (s *productStore) UpdateProduct(ctx context.Context, id int, prd *entity.ProductInsert) error {
	query := `
	UPDATE product
	SET name = :name,
		slug = :slug,
		category_id = :categoryId,
		description = :description,
		materials = :materials,
		unit_price = :unitPrice,
		min_order_qty = :minOrderQty,
		lead_time_days = :leadTimeDays,
		featured = :featured,
		hidden = :hidden
	WHERE id = :id
	`
	n, err := ExecNamedRows(ctx, s.DB(), query, map[string]any{
		"id":           id,
		"name":         prd.Name,
		"slug":         prd.Slug,
		"categoryId":   prd.CategoryId,
		"description":  prd.Description,
		"materials":    prd.Materials,
		"unitPrice":    prd.UnitPrice,
		"minOrderQty":  prd.MinOrderQty,
		"leadTimeDays": prd.LeadTimeDays,
		"featured":     prd.Featured,
		"hidden":       prd.Hidden,
	})
	if err != nil {
		if s.IsErrUniqueViolation(err) {
			return gerr.ErrAlreadyExists
		}
		return fmt.Errorf("can't update product: %w", err)
	}
	if n == 0 {
		return gerr.ErrNotFound
	}
	return nil
}

func (s *productStore) GetProductsPaged(ctx context.Context, limit, offset int, orderFactor entity.OrderFactor, filters entity.ProductFilters, showHidden bool) ([]entity.Product, int, error) {
	whereConditions := []string{}
	args := map[string]any{
		"limit":  limit,
		"offset": offset,
	}

	if !showHidden {
		whereConditions = append(whereConditions, "hidden = FALSE")
	}
	if filters.CategoryId != nil {
		whereConditions = append(whereConditions, "category_id = :categoryId")
		args["categoryId"] = *filters.CategoryId
	}
	if filters.Featured != nil {
		whereConditions = append(whereConditions, "featured = :featured")
		args["featured"] = *filters.Featured
	}
	if filters.PriceFrom != nil {
		whereConditions = append(whereConditions, "unit_price >= :priceFrom")
		args["priceFrom"] = *filters.PriceFrom
	}
	if filters.PriceTo != nil {
		whereConditions = append(whereConditions, "unit_price <= :priceTo")
		args["priceTo"] = *filters.PriceTo
	}

	whereClause := ""
	if len(whereConditions) > 0 {
		whereClause = "WHERE " + strings.Join(whereConditions, " AND ")
	}

	orderByClause := "id DESC"
	if orderFactor == entity.Ascending {
		orderByClause = "id ASC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM product
		%s
		ORDER BY %s
		LIMIT :limit OFFSET :offset
	`, productSelectColumns, whereClause, orderByClause)

	products, err := QueryListNamed[entity.Product](ctx, s.DB(), query, args)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []entity.Product{}, 0, nil
		}
		return nil, 0, fmt.Errorf("can't get products: %w", err)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM product %s`, whereClause)
	totalCount, err := QueryCountNamed(ctx, s.DB(), countQuery, args)
	if err != nil {
		return nil, 0, fmt.Errorf("can't get total count: %w", err)
	}
	return products, totalCount, nil
}

func (s *productStore) GetProductById(ctx context.Context, id int) (*entity.ProductFull, error) {
	query := fmt.Sprintf(`SELECT %s FROM product WHERE id = ?`, productSelectColumns)
	return s.getProductFull(ctx, query, id)
}

func (s *productStore) GetProductBySlug(ctx context.Context, slug string) (*entity.ProductFull, error) {
	query := fmt.Sprintf(`SELECT %s FROM product WHERE slug = ?`, productSelectColumns)
	return s.getProductFull(ctx, query, slug)
}

func (s *productStore) getProductFull(ctx context.Context, query string, arg any) (*entity.ProductFull, error) {
	var p entity.Product
	err := s.DB().GetContext(ctx, &p, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrNotFound
		}
		return nil, fmt.Errorf("can't get product: %w", err)
	}

	media, err := QueryListNamed[entity.MediaFull](ctx, s.DB(), `
		SELECT m.id, m.created_at, m.updated_at, m.full_size, m.full_size_width,
			m.full_size_height, m.thumbnail, m.thumbnail_width, m.thumbnail_height,
			m.blur_hash, m.alt
		FROM media m
		INNER JOIN product_media pm ON pm.media_id = m.id
		WHERE pm.product_id = :productId
		ORDER BY pm.id ASC
	`, map[string]any{"productId": p.Id})
	if err != nil {
		return nil, fmt.Errorf("can't get product media: %w", err)
	}

	return &entity.ProductFull{
		Product: p,
		Media:   media,
	}, nil
}

func (s *productStore) DeleteProductById(ctx context.Context, id int) error {
	n, err := ExecNamedRows(ctx, s.DB(), `DELETE FROM product WHERE id = :id`, map[string]any{"id": id})
	if err != nil {
		return fmt.Errorf("can't delete product: %w", err)
	}
	if n == 0 {
		return gerr.ErrNotFound
	}
	return nil
}

func (s *productStore) SetProductHidden(ctx context.Context, id int, hidden bool) error {
	n, err := ExecNamedRows(ctx, s.DB(), `UPDATE product SET hidden = :hidden WHERE id = :id`, map[string]any{
		"id":     id,
		"hidden": hidden,
	})
	if err != nil {
		return fmt.Errorf("can't set product hidden: %w", err)
	}
	if n == 0 {
		return gerr.ErrNotFound
	}
	return nil
}

func (s *productStore) SetProductThumbnail(ctx context.Context, id int, mediaId int) error {
	n, err := ExecNamedRows(ctx, s.DB(), `UPDATE product SET thumbnail_id = :mediaId WHERE id = :id`, map[string]any{
		"id":      id,
		"mediaId": mediaId,
	})
	if err != nil {
		return fmt.Errorf("can't set product thumbnail: %w", err)
	}
	if n == 0 {
		return gerr.ErrNotFound
	}
	return nil
}

// SetProductMedia replaces the product gallery with the given media set.
func (s *productStore) SetProductMedia(ctx context.Context, id int, mediaIds []int) error {
	return s.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		err := ExecNamed(ctx, rep.DB(), `DELETE FROM product_media WHERE product_id = :productId`, map[string]any{
			"productId": id,
		})
		if err != nil {
			return fmt.Errorf("can't clear product media: %w", err)
		}

		if len(mediaIds) == 0 {
			return nil
		}

		rows := make([]map[string]any, 0, len(mediaIds))
		for _, mid := range mediaIds {
			rows = append(rows, map[string]any{
				"product_id": id,
				"media_id":   mid,
			})
		}
		if err := BulkInsert(ctx, rep.DB(), "product_media", rows); err != nil {
			return fmt.Errorf("can't insert product media: %w", err)
		}
		return nil
	})
}
