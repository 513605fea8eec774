package sqldb

import (
	"context"
)

// TagColor mirrors a row of the tag_colors table.
type TagColor struct {
	Tag       string
	Color     string
	UpdatedAt int64
}

const insertEntryTag = `INSERT OR IGNORE INTO entry_tags (entry_id, tag) VALUES (?, ?)`

type InsertEntryTagParams struct {
	EntryID string
	Tag     string
}

func (q *Queries) InsertEntryTag(ctx context.Context, arg InsertEntryTagParams) error {
	_, err := q.db.ExecContext(ctx, insertEntryTag, arg.EntryID, arg.Tag)
	return err
}

const deleteEntryTag = `DELETE FROM entry_tags WHERE entry_id = ? AND tag = ?`

type DeleteEntryTagParams struct {
	EntryID string
	Tag     string
}

func (q *Queries) DeleteEntryTag(ctx context.Context, arg DeleteEntryTagParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteEntryTag, arg.EntryID, arg.Tag)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listTagsForEntry = `SELECT tag FROM entry_tags WHERE entry_id = ? ORDER BY tag`

func (q *Queries) ListTagsForEntry(ctx context.Context, entryID string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listTagsForEntry, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

const listTagsWithCounts = `SELECT tag, COUNT(entry_id) AS entry_count FROM entry_tags GROUP BY tag ORDER BY tag`

type ListTagsWithCountsRow struct {
	Tag        string
	EntryCount int64
}

func (q *Queries) ListTagsWithCounts(ctx context.Context) ([]ListTagsWithCountsRow, error) {
	rows, err := q.db.QueryContext(ctx, listTagsWithCounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []ListTagsWithCountsRow
	for rows.Next() {
		var row ListTagsWithCountsRow
		if err := rows.Scan(&row.Tag, &row.EntryCount); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// UPDATE OR IGNORE keeps set semantics when an entry already carries the new
// tag; leftovers are removed by DeleteTagEverywhere afterwards.
const renameEntryTags = `UPDATE OR IGNORE entry_tags SET tag = ? WHERE tag = ?`

type RenameEntryTagsParams struct {
	NewTag string
	OldTag string
}

func (q *Queries) RenameEntryTags(ctx context.Context, arg RenameEntryTagsParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, renameEntryTags, arg.NewTag, arg.OldTag)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteTagEverywhere = `DELETE FROM entry_tags WHERE tag = ?`

func (q *Queries) DeleteTagEverywhere(ctx context.Context, tag string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteTagEverywhere, tag)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countEntriesWithTag = `SELECT COUNT(entry_id) FROM entry_tags WHERE tag = ?`

func (q *Queries) CountEntriesWithTag(ctx context.Context, tag string) (int64, error) {
	row := q.db.QueryRowContext(ctx, countEntriesWithTag, tag)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const upsertTagColor = `INSERT INTO tag_colors (tag, color, updated_at) VALUES (?, ?, ?)
ON CONFLICT (tag) DO UPDATE SET color = excluded.color, updated_at = excluded.updated_at`

type UpsertTagColorParams struct {
	Tag       string
	Color     string
	UpdatedAt int64
}

func (q *Queries) UpsertTagColor(ctx context.Context, arg UpsertTagColorParams) error {
	_, err := q.db.ExecContext(ctx, upsertTagColor, arg.Tag, arg.Color, arg.UpdatedAt)
	return err
}

const getTagColor = `SELECT tag, color, updated_at FROM tag_colors WHERE tag = ?`

func (q *Queries) GetTagColor(ctx context.Context, tag string) (TagColor, error) {
	row := q.db.QueryRowContext(ctx, getTagColor, tag)
	var tc TagColor
	err := row.Scan(&tc.Tag, &tc.Color, &tc.UpdatedAt)
	return tc, err
}

const deleteTagColor = `DELETE FROM tag_colors WHERE tag = ?`

func (q *Queries) DeleteTagColor(ctx context.Context, tag string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteTagColor, tag)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const renameTagColor = `UPDATE OR IGNORE tag_colors SET tag = ? WHERE tag = ?`

type RenameTagColorParams struct {
	NewTag string
	OldTag string
}

func (q *Queries) RenameTagColor(ctx context.Context, arg RenameTagColorParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, renameTagColor, arg.NewTag, arg.OldTag)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listTagColors = `SELECT tag, color, updated_at FROM tag_colors ORDER BY tag`

func (q *Queries) ListTagColors(ctx context.Context) ([]TagColor, error) {
	rows, err := q.db.QueryContext(ctx, listTagColors)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []TagColor
	for rows.Next() {
		var tc TagColor
		if err := rows.Scan(&tc.Tag, &tc.Color, &tc.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, tc)
	}
	return result, rows.Err()
}
