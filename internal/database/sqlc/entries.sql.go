package sqldb

import (
	"context"
	"database/sql"
)

// Entry mirrors a row of the entries table.
type Entry struct {
	ID           string
	Kind         string
	Content      string
	Hash         string
	SideFile     sql.NullString
	DisplayLabel sql.NullString
	Pinned       int64
	Trashed      int64
	CreatedAt    int64
	UpdatedAt    int64
}

const insertEntry = `INSERT INTO entries (id, kind, content, hash, side_file, display_label, pinned, trashed, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

type InsertEntryParams struct {
	ID           string
	Kind         string
	Content      string
	Hash         string
	SideFile     sql.NullString
	DisplayLabel sql.NullString
	Pinned       int64
	Trashed      int64
	CreatedAt    int64
	UpdatedAt    int64
}

func (q *Queries) InsertEntry(ctx context.Context, arg InsertEntryParams) error {
	_, err := q.db.ExecContext(ctx, insertEntry,
		arg.ID,
		arg.Kind,
		arg.Content,
		arg.Hash,
		arg.SideFile,
		arg.DisplayLabel,
		arg.Pinned,
		arg.Trashed,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const findEntryByID = `SELECT id, kind, content, hash, side_file, display_label, pinned, trashed, created_at, updated_at
FROM entries WHERE id = ?`

func (q *Queries) FindEntryByID(ctx context.Context, id string) (Entry, error) {
	row := q.db.QueryRowContext(ctx, findEntryByID, id)
	var e Entry
	err := row.Scan(&e.ID, &e.Kind, &e.Content, &e.Hash, &e.SideFile, &e.DisplayLabel, &e.Pinned, &e.Trashed, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

const findEntriesByIDPrefix = `SELECT id, kind, content, hash, side_file, display_label, pinned, trashed, created_at, updated_at
FROM entries WHERE id LIKE ? || '%' ORDER BY id LIMIT 3`

func (q *Queries) FindEntriesByIDPrefix(ctx context.Context, prefix string) ([]Entry, error) {
	rows, err := q.db.QueryContext(ctx, findEntriesByIDPrefix, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Content, &e.Hash, &e.SideFile, &e.DisplayLabel, &e.Pinned, &e.Trashed, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

const findEntryByKindAndHash = `SELECT id, kind, content, hash, side_file, display_label, pinned, trashed, created_at, updated_at
FROM entries WHERE kind = ? AND hash = ? ORDER BY created_at DESC, id LIMIT 1`

type FindEntryByKindAndHashParams struct {
	Kind string
	Hash string
}

func (q *Queries) FindEntryByKindAndHash(ctx context.Context, arg FindEntryByKindAndHashParams) (Entry, error) {
	row := q.db.QueryRowContext(ctx, findEntryByKindAndHash, arg.Kind, arg.Hash)
	var e Entry
	err := row.Scan(&e.ID, &e.Kind, &e.Content, &e.Hash, &e.SideFile, &e.DisplayLabel, &e.Pinned, &e.Trashed, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

const listEntries = `SELECT id, kind, content, hash, side_file, display_label, pinned, trashed, created_at, updated_at
FROM entries WHERE (? OR trashed = 0)
ORDER BY pinned DESC, created_at DESC, id`

func (q *Queries) ListEntries(ctx context.Context, includeTrashed bool) ([]Entry, error) {
	rows, err := q.db.QueryContext(ctx, listEntries, includeTrashed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

const listEntriesByKind = `SELECT id, kind, content, hash, side_file, display_label, pinned, trashed, created_at, updated_at
FROM entries WHERE kind = ? AND (? OR trashed = 0)
ORDER BY pinned DESC, created_at DESC, id`

type ListEntriesByKindParams struct {
	Kind           string
	IncludeTrashed bool
}

func (q *Queries) ListEntriesByKind(ctx context.Context, arg ListEntriesByKindParams) ([]Entry, error) {
	rows, err := q.db.QueryContext(ctx, listEntriesByKind, arg.Kind, arg.IncludeTrashed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

const listEntriesByTag = `SELECT e.id, e.kind, e.content, e.hash, e.side_file, e.display_label, e.pinned, e.trashed, e.created_at, e.updated_at
FROM entries e
JOIN entry_tags et ON et.entry_id = e.id
WHERE et.tag = ? AND (? OR e.trashed = 0)
ORDER BY e.pinned DESC, e.created_at DESC, e.id`

type ListEntriesByTagParams struct {
	Tag            string
	IncludeTrashed bool
}

func (q *Queries) ListEntriesByTag(ctx context.Context, arg ListEntriesByTagParams) ([]Entry, error) {
	rows, err := q.db.QueryContext(ctx, listEntriesByTag, arg.Tag, arg.IncludeTrashed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

const updateEntryPinned = `UPDATE entries SET pinned = ?, updated_at = ? WHERE id = ?`

type UpdateEntryPinnedParams struct {
	Pinned    int64
	UpdatedAt int64
	ID        string
}

func (q *Queries) UpdateEntryPinned(ctx context.Context, arg UpdateEntryPinnedParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateEntryPinned, arg.Pinned, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const updateEntryLabel = `UPDATE entries SET display_label = ?, updated_at = ? WHERE id = ?`

type UpdateEntryLabelParams struct {
	DisplayLabel sql.NullString
	UpdatedAt    int64
	ID           string
}

func (q *Queries) UpdateEntryLabel(ctx context.Context, arg UpdateEntryLabelParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateEntryLabel, arg.DisplayLabel, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const updateEntryTrashed = `UPDATE entries SET trashed = ?, updated_at = ? WHERE id = ?`

type UpdateEntryTrashedParams struct {
	Trashed   int64
	UpdatedAt int64
	ID        string
}

func (q *Queries) UpdateEntryTrashed(ctx context.Context, arg UpdateEntryTrashedParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateEntryTrashed, arg.Trashed, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteEntryByID = `DELETE FROM entries WHERE id = ?`

func (q *Queries) DeleteEntryByID(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteEntryByID, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteUnpinnedEntriesBefore = `DELETE FROM entries WHERE pinned = 0 AND created_at < ?`

func (q *Queries) DeleteUnpinnedEntriesBefore(ctx context.Context, createdAt int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteUnpinnedEntriesBefore, createdAt)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countEntries = `SELECT COUNT(*) FROM entries`

func (q *Queries) CountEntries(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countEntries)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const listOldestUnpinnedIDs = `SELECT id FROM entries WHERE pinned = 0 ORDER BY created_at ASC, id LIMIT ?`

func (q *Queries) ListOldestUnpinnedIDs(ctx context.Context, limit int64) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listOldestUnpinnedIDs, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

const listSideFiles = `SELECT side_file FROM entries WHERE side_file IS NOT NULL`

func (q *Queries) ListSideFiles(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listSideFiles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var result []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Content, &e.Hash, &e.SideFile, &e.DisplayLabel, &e.Pinned, &e.Trashed, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}
