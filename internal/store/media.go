package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hidecraft/hidecraft-manager/internal/dependency"
	"github.com/hidecraft/hidecraft-manager/internal/entity"
	gerr "github.com/hidecraft/hidecraft-manager/internal/errors"
)

type mediaStore struct {
	*MYSQLStore
}

// Media returns an object implementing media storage interface
func (ms *MYSQLStore) Media() dependency.Media {
	return &mediaStore{
		MYSQLStore: ms,
	}
}

func (s *mediaStore) AddMedia(ctx context.Context, media *entity.MediaInsert) (int, error) {
	query := `
	INSERT INTO media (
		full_size, full_size_width, full_size_height,
		thumbnail, thumbnail_width, thumbnail_height, blur_hash, alt
	)
	VALUES (
		:fullSize, :fullSizeWidth, :fullSizeHeight,
		:thumbnail, :thumbnailWidth, :thumbnailHeight, :blurHash, :alt
	)
	`
	id, err := ExecNamedLastId(ctx, s.DB(), query, map[string]any{
		"fullSize":        media.FullSizeMediaURL,
		"fullSizeWidth":   media.FullSizeWidth,
		"fullSizeHeight":  media.FullSizeHeight,
		"thumbnail":       media.ThumbnailMediaURL,
		"thumbnailWidth":  media.ThumbnailWidth,
		"thumbnailHeight": media.ThumbnailHeight,
		"blurHash":        media.BlurHash,
		"alt":             media.Alt,
	})
	if err != nil {
		return 0, fmt.Errorf("can't insert media: %w", err)
	}
	return id, nil
}

func (s *mediaStore) DeleteMediaById(ctx context.Context, id int) error {
	n, err := ExecNamedRows(ctx, s.DB(), `DELETE FROM media WHERE id = :id`, map[string]any{"id": id})
	if err != nil {
		return fmt.Errorf("can't delete media: %w", err)
	}
	if n == 0 {
		return gerr.ErrNotFound
	}
	return nil
}

func (s *mediaStore) ListMediaPaged(ctx context.Context, limit, offset int, orderFactor entity.OrderFactor) ([]entity.MediaFull, int, error) {
	orderByClause := "id DESC"
	if orderFactor == entity.Ascending {
		orderByClause = "id ASC"
	}

	query := fmt.Sprintf(`
		SELECT id, created_at, updated_at, full_size, full_size_width, full_size_height,
			thumbnail, thumbnail_width, thumbnail_height, blur_hash, alt
		FROM media
		ORDER BY %s
		LIMIT :limit OFFSET :offset
	`, orderByClause)

	media, err := QueryListNamed[entity.MediaFull](ctx, s.DB(), query, map[string]any{
		"limit":  limit,
		"offset": offset,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []entity.MediaFull{}, 0, nil
		}
		return nil, 0, fmt.Errorf("can't list media: %w", err)
	}

	totalCount, err := QueryCountNamed(ctx, s.DB(), `SELECT COUNT(*) FROM media`, map[string]any{})
	if err != nil {
		return nil, 0, fmt.Errorf("can't get total count: %w", err)
	}
	return media, totalCount, nil
}
