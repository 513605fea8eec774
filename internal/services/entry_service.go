package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clipvault/clipvault/internal/clip"
	"github.com/clipvault/clipvault/internal/database"
	sqldb "github.com/clipvault/clipvault/internal/database/sqlc"
)

// ErrNotFound is returned when a requested entry is not found.
var ErrNotFound = errors.New("entry not found")

// EntryService exposes high-level operations on clipboard entries.
type EntryService struct {
	ctx     *database.Context
	entries *database.EntryRepository
	tags    *database.TagRepository
}

// NewEntryService creates a new EntryService.
func NewEntryService(ctx *database.Context) *EntryService {
	return &EntryService{
		ctx:     ctx,
		entries: database.NewEntryRepository(ctx),
		tags:    database.NewTagRepository(ctx),
	}
}

// Insert persists a new entry together with its initial tags in one
// transaction. After it returns, readers in other processes see the complete
// entry or nothing.
func (s *EntryService) Insert(ctx context.Context, rec database.EntryRecord, tags []string) error {
	return s.withTx(ctx, func(txCtx context.Context, q *sqldb.Queries) error {
		if err := q.InsertEntry(txCtx, database.EntryInsertParams(rec)); err != nil {
			return err
		}
		for _, tag := range tags {
			if err := q.InsertEntryTag(txCtx, sqldb.InsertEntryTagParams{EntryID: rec.ID, Tag: tag}); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get retrieves an entry by exact id.
func (s *EntryService) Get(ctx context.Context, id string) (*database.EntryRecord, error) {
	rec, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

// Resolve finds an entry by exact id first, then by unique id prefix.
func (s *EntryService) Resolve(ctx context.Context, idOrPrefix string) (*database.EntryRecord, error) {
	rec, err := s.entries.FindByID(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		return rec, nil
	}

	rec, err = s.entries.FindByIDPrefix(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

// FindDuplicate looks up an existing entry with the same kind and payload
// fingerprint. It returns nil when there is no duplicate.
func (s *EntryService) FindDuplicate(ctx context.Context, kind clip.Kind, hash string) (*database.EntryRecord, error) {
	return s.entries.FindByKindAndHash(ctx, kind, hash)
}

// List retrieves entries in display order: pinned first, then recency.
func (s *EntryService) List(ctx context.Context, filter database.ListFilter) ([]database.EntryRecord, error) {
	return s.entries.List(ctx, filter)
}

// TagsFor returns the tag set of an entry.
func (s *EntryService) TagsFor(ctx context.Context, entryID string) ([]string, error) {
	return s.tags.ListForEntry(ctx, entryID)
}

// SetPinned toggles the pinned flag and returns true if the entry existed.
func (s *EntryService) SetPinned(ctx context.Context, id string, pinned bool) (bool, error) {
	q, err := s.queries()
	if err != nil {
		return false, err
	}

	var pinnedVal int64
	if pinned {
		pinnedVal = 1
	}
	affected, err := q.UpdateEntryPinned(ctx, sqldb.UpdateEntryPinnedParams{
		Pinned:    pinnedVal,
		UpdatedAt: time.Now().UnixNano(),
		ID:        id,
	})
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// SetLabel sets or clears the display label. Content is never touched.
func (s *EntryService) SetLabel(ctx context.Context, id string, label *string) (bool, error) {
	q, err := s.queries()
	if err != nil {
		return false, err
	}

	params := sqldb.UpdateEntryLabelParams{
		UpdatedAt: time.Now().UnixNano(),
		ID:        id,
	}
	if label != nil && *label != "" {
		params.DisplayLabel.String = *label
		params.DisplayLabel.Valid = true
	}
	affected, err := q.UpdateEntryLabel(ctx, params)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// SetTrashed toggles the soft-delete flag.
func (s *EntryService) SetTrashed(ctx context.Context, id string, trashed bool) (bool, error) {
	q, err := s.queries()
	if err != nil {
		return false, err
	}

	var trashedVal int64
	if trashed {
		trashedVal = 1
	}
	affected, err := q.UpdateEntryTrashed(ctx, sqldb.UpdateEntryTrashedParams{
		Trashed:   trashedVal,
		UpdatedAt: time.Now().UnixNano(),
		ID:        id,
	})
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Delete removes an entry row. Tags cascade at the database layer; side-file
// cleanup is the caller's concern so the explicit-delete path can remove it
// while retention deliberately does not.
func (s *EntryService) Delete(ctx context.Context, id string) (bool, error) {
	return s.entries.Delete(ctx, id)
}

// Count returns the total number of entries, trashed included.
func (s *EntryService) Count(ctx context.Context) (int64, error) {
	return s.entries.Count(ctx)
}

// PruneOlderThan removes unpinned entries created before the cutoff and
// returns the number removed.
func (s *EntryService) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	q, err := s.queries()
	if err != nil {
		return 0, err
	}
	return q.DeleteUnpinnedEntriesBefore(ctx, cutoff.UnixNano())
}

// OldestUnpinnedIDs returns up to limit unpinned entry ids, oldest first.
func (s *EntryService) OldestUnpinnedIDs(ctx context.Context, limit int64) ([]string, error) {
	q, err := s.queries()
	if err != nil {
		return nil, err
	}
	return q.ListOldestUnpinnedIDs(ctx, limit)
}

// DeleteByIDs removes the given entries in one transaction and returns the
// number removed.
func (s *EntryService) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	var removed int64
	err := s.withTx(ctx, func(txCtx context.Context, q *sqldb.Queries) error {
		for _, id := range ids {
			affected, err := q.DeleteEntryByID(txCtx, id)
			if err != nil {
				return err
			}
			removed += affected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// ReferencedSideFiles returns the side-file names referenced by any entry.
func (s *EntryService) ReferencedSideFiles(ctx context.Context) ([]string, error) {
	q, err := s.queries()
	if err != nil {
		return nil, err
	}
	return q.ListSideFiles(ctx)
}

func (s *EntryService) withTx(ctx context.Context, fn func(context.Context, *sqldb.Queries) error) error {
	if s.ctx == nil || s.ctx.DB == nil {
		return fmt.Errorf("entry service: missing database context")
	}

	tx, err := s.ctx.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	queries := sqldb.New(tx)

	if err := fn(ctx, queries); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return nil
}

func (s *EntryService) queries() (*sqldb.Queries, error) {
	if s.ctx == nil {
		return nil, fmt.Errorf("entry service: missing database context")
	}
	if s.ctx.Queries == nil {
		if s.ctx.DB == nil {
			return nil, fmt.Errorf("entry service: database handle not initialised")
		}
		s.ctx.Queries = sqldb.New(s.ctx.DB)
	}
	return s.ctx.Queries, nil
}
