package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sqldb "github.com/clipvault/clipvault/internal/database/sqlc"
)

type TagRepository struct {
	ctx *Context
}

func NewTagRepository(dbCtx *Context) *TagRepository {
	return &TagRepository{ctx: dbCtx}
}

func (r *TagRepository) ListForEntry(ctx context.Context, entryID string) ([]string, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("tag repository: missing database context")
	}

	return queries.ListTagsForEntry(ctx, entryID)
}

func (r *TagRepository) ListWithCounts(ctx context.Context) ([]TagCount, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("tag repository: missing database context")
	}

	rows, err := queries.ListTagsWithCounts(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]TagCount, 0, len(rows))
	for _, row := range rows {
		result = append(result, TagCount{Tag: row.Tag, EntryCount: row.EntryCount})
	}
	return result, nil
}

func (r *TagRepository) Attach(ctx context.Context, entryID, tag string) error {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return fmt.Errorf("tag repository: missing database context")
	}

	return queries.InsertEntryTag(ctx, sqldb.InsertEntryTagParams{EntryID: entryID, Tag: tag})
}

func (r *TagRepository) Detach(ctx context.Context, entryID, tag string) (bool, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return false, fmt.Errorf("tag repository: missing database context")
	}

	affected, err := queries.DeleteEntryTag(ctx, sqldb.DeleteEntryTagParams{EntryID: entryID, Tag: tag})
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *TagRepository) GetColor(ctx context.Context, tag string) (*TagColorRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("tag repository: missing database context")
	}

	row, err := queries.GetTagColor(ctx, tag)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	record := TagColorRecordFromRow(row)
	return &record, nil
}

func (r *TagRepository) SetColor(ctx context.Context, tag, color string) error {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return fmt.Errorf("tag repository: missing database context")
	}

	return queries.UpsertTagColor(ctx, sqldb.UpsertTagColorParams{
		Tag:       tag,
		Color:     color,
		UpdatedAt: timeToUnixNano(time.Now()),
	})
}

func (r *TagRepository) ListColors(ctx context.Context) ([]TagColorRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("tag repository: missing database context")
	}

	rows, err := queries.ListTagColors(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]TagColorRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, TagColorRecordFromRow(row))
	}
	return result, nil
}
