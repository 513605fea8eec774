package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/clipvault/clipvault/internal/clip"
	sqldb "github.com/clipvault/clipvault/internal/database/sqlc"
)

type EntryRepository struct {
	ctx *Context
}

func NewEntryRepository(dbCtx *Context) *EntryRepository {
	return &EntryRepository{ctx: dbCtx}
}

func (r *EntryRepository) FindByID(ctx context.Context, id string) (*EntryRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("entry repository: missing database context")
	}

	row, err := queries.FindEntryByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	record := EntryRecordFromRow(row)
	return &record, nil
}

// FindByIDPrefix resolves a unique id prefix to a record. It returns nil when
// no entry matches and an error when the prefix is ambiguous.
func (r *EntryRepository) FindByIDPrefix(ctx context.Context, prefix string) (*EntryRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("entry repository: missing database context")
	}

	rows, err := queries.FindEntriesByIDPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		record := EntryRecordFromRow(rows[0])
		return &record, nil
	default:
		return nil, fmt.Errorf("ambiguous id prefix: %s", prefix)
	}
}

func (r *EntryRepository) FindByKindAndHash(ctx context.Context, kind clip.Kind, hash string) (*EntryRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("entry repository: missing database context")
	}

	row, err := queries.FindEntryByKindAndHash(ctx, sqldb.FindEntryByKindAndHashParams{Kind: string(kind), Hash: hash})
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	record := EntryRecordFromRow(row)
	return &record, nil
}

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Tag            string
	Kind           clip.Kind
	IncludeTrashed bool
}

func (r *EntryRepository) List(ctx context.Context, filter ListFilter) ([]EntryRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("entry repository: missing database context")
	}

	var (
		rows []sqldb.Entry
		err  error
	)
	switch {
	case filter.Tag != "":
		rows, err = queries.ListEntriesByTag(ctx, sqldb.ListEntriesByTagParams{Tag: filter.Tag, IncludeTrashed: filter.IncludeTrashed})
	case filter.Kind != "":
		rows, err = queries.ListEntriesByKind(ctx, sqldb.ListEntriesByKindParams{Kind: string(filter.Kind), IncludeTrashed: filter.IncludeTrashed})
	default:
		rows, err = queries.ListEntries(ctx, filter.IncludeTrashed)
	}
	if err != nil {
		return nil, err
	}

	result := make([]EntryRecord, 0, len(rows))
	for _, row := range rows {
		record := EntryRecordFromRow(row)
		if filter.Tag != "" && filter.Kind != "" && record.Kind != filter.Kind {
			continue
		}
		result = append(result, record)
	}
	return result, nil
}

func (r *EntryRepository) Create(ctx context.Context, rec EntryRecord) error {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return fmt.Errorf("entry repository: missing database context")
	}

	return queries.InsertEntry(ctx, EntryInsertParams(rec))
}

func (r *EntryRepository) Delete(ctx context.Context, id string) (bool, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return false, fmt.Errorf("entry repository: missing database context")
	}

	affected, err := queries.DeleteEntryByID(ctx, id)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *EntryRepository) Count(ctx context.Context) (int64, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return 0, fmt.Errorf("entry repository: missing database context")
	}

	return queries.CountEntries(ctx)
}
