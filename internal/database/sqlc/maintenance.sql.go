package sqldb

import "context"

const deleteAllEntryTags = `DELETE FROM entry_tags`

func (q *Queries) DeleteAllEntryTags(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllEntryTags)
	return err
}

const deleteAllTagColors = `DELETE FROM tag_colors`

func (q *Queries) DeleteAllTagColors(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllTagColors)
	return err
}

const deleteAllEntries = `DELETE FROM entries`

func (q *Queries) DeleteAllEntries(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllEntries)
	return err
}
