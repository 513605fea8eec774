package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/clipvault/clipvault/internal/database"
	sqldb "github.com/clipvault/clipvault/internal/database/sqlc"
)

// ErrInvalidTag is returned for empty or whitespace-only tag names.
var ErrInvalidTag = errors.New("invalid tag name")

// TagService manages the tag set across entries and the tag color side-map.
type TagService struct {
	ctx     *database.Context
	entries *database.EntryRepository
	tags    *database.TagRepository
}

// NewTagService creates a new TagService.
func NewTagService(ctx *database.Context) *TagService {
	return &TagService{
		ctx:     ctx,
		entries: database.NewEntryRepository(ctx),
		tags:    database.NewTagRepository(ctx),
	}
}

// NormalizeTag trims whitespace and validates a tag name.
func NormalizeTag(tag string) (string, error) {
	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		return "", ErrInvalidTag
	}
	return trimmed, nil
}

// Attach adds a tag to one entry. Set semantics: attaching an already
// present tag is a no-op.
func (s *TagService) Attach(ctx context.Context, entryID, tag string) error {
	normalized, err := NormalizeTag(tag)
	if err != nil {
		return err
	}

	rec, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		return err
	}
	if rec == nil {
		return ErrNotFound
	}

	return s.tags.Attach(ctx, entryID, normalized)
}

// Detach removes a tag from one entry and returns true if it was present.
func (s *TagService) Detach(ctx context.Context, entryID, tag string) (bool, error) {
	normalized, err := NormalizeTag(tag)
	if err != nil {
		return false, err
	}
	return s.tags.Detach(ctx, entryID, normalized)
}

// Rename rewrites a tag on every entry that has it and moves its color
// mapping, all in one transaction. Entries already carrying the new tag keep
// a single copy. Returns the number of entries that referenced the old tag.
func (s *TagService) Rename(ctx context.Context, oldTag, newTag string) (int64, error) {
	oldNorm, err := NormalizeTag(oldTag)
	if err != nil {
		return 0, err
	}
	newNorm, err := NormalizeTag(newTag)
	if err != nil {
		return 0, err
	}
	if oldNorm == newNorm {
		return 0, nil
	}

	var touched int64
	err = s.withTx(ctx, func(txCtx context.Context, q *sqldb.Queries) error {
		count, err := q.CountEntriesWithTag(txCtx, oldNorm)
		if err != nil {
			return err
		}
		touched = count

		if _, err := q.RenameEntryTags(txCtx, sqldb.RenameEntryTagsParams{NewTag: newNorm, OldTag: oldNorm}); err != nil {
			return err
		}
		// Rows that collided with an existing (entry, newTag) pair were
		// ignored by the rename and still carry the old tag.
		if _, err := q.DeleteTagEverywhere(txCtx, oldNorm); err != nil {
			return err
		}

		if _, err := q.RenameTagColor(txCtx, sqldb.RenameTagColorParams{NewTag: newNorm, OldTag: oldNorm}); err != nil {
			return err
		}
		if _, err := q.DeleteTagColor(txCtx, oldNorm); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return touched, nil
}

// DeleteEverywhere removes a tag from every entry and drops its color.
// Entries left with zero tags are untouched otherwise.
func (s *TagService) DeleteEverywhere(ctx context.Context, tag string) (int64, error) {
	normalized, err := NormalizeTag(tag)
	if err != nil {
		return 0, err
	}

	var removed int64
	err = s.withTx(ctx, func(txCtx context.Context, q *sqldb.Queries) error {
		affected, err := q.DeleteTagEverywhere(txCtx, normalized)
		if err != nil {
			return err
		}
		removed = affected
		_, err = q.DeleteTagColor(txCtx, normalized)
		return err
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// SetColor assigns a color to a tag in the side mapping. Entry records are
// never touched by recoloring.
func (s *TagService) SetColor(ctx context.Context, tag, color string) error {
	normalized, err := NormalizeTag(tag)
	if err != nil {
		return err
	}
	if strings.TrimSpace(color) == "" {
		return errors.New("invalid color")
	}
	return s.tags.SetColor(ctx, normalized, color)
}

// Color returns the color mapping for a tag, or nil when none is set.
func (s *TagService) Color(ctx context.Context, tag string) (*database.TagColorRecord, error) {
	return s.tags.GetColor(ctx, tag)
}

// Colors returns the full tag color mapping.
func (s *TagService) Colors(ctx context.Context) (map[string]string, error) {
	records, err := s.tags.ListColors(ctx)
	if err != nil {
		return nil, err
	}

	colors := make(map[string]string, len(records))
	for _, rec := range records {
		colors[rec.Tag] = rec.Color
	}
	return colors, nil
}

// TagInfo describes a distinct tag in use.
type TagInfo struct {
	Tag        string
	EntryCount int64
	Color      string
}

// ListInUse enumerates distinct tags with usage counts and colors.
func (s *TagService) ListInUse(ctx context.Context) ([]TagInfo, error) {
	counts, err := s.tags.ListWithCounts(ctx)
	if err != nil {
		return nil, err
	}
	colors, err := s.Colors(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]TagInfo, 0, len(counts))
	for _, count := range counts {
		result = append(result, TagInfo{
			Tag:        count.Tag,
			EntryCount: count.EntryCount,
			Color:      colors[count.Tag],
		})
	}
	return result, nil
}

func (s *TagService) withTx(ctx context.Context, fn func(context.Context, *sqldb.Queries) error) error {
	if s.ctx == nil || s.ctx.DB == nil {
		return fmt.Errorf("tag service: missing database context")
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
