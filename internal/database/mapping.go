package database

import (
	"github.com/clipvault/clipvault/internal/clip"
	sqldb "github.com/clipvault/clipvault/internal/database/sqlc"
)

// EntryRecordFromRow converts a database entry row to an EntryRecord.
func EntryRecordFromRow(row sqldb.Entry) EntryRecord {
	return EntryRecord{
		ID:           row.ID,
		Kind:         clip.Kind(row.Kind),
		Content:      row.Content,
		Hash:         row.Hash,
		SideFile:     optionalString(row.SideFile),
		DisplayLabel: optionalStringPtr(row.DisplayLabel),
		Pinned:       row.Pinned != 0,
		Trashed:      row.Trashed != 0,
		CreatedAt:    unixNanoToTime(row.CreatedAt),
		UpdatedAt:    unixNanoToTime(row.UpdatedAt),
	}
}

// EntryInsertParams creates insert parameters from an EntryRecord.
func EntryInsertParams(rec EntryRecord) sqldb.InsertEntryParams {
	return sqldb.InsertEntryParams{
		ID:           rec.ID,
		Kind:         string(rec.Kind),
		Content:      rec.Content,
		Hash:         rec.Hash,
		SideFile:     nullString(rec.SideFile),
		DisplayLabel: stringPtrToNullString(rec.DisplayLabel),
		Pinned:       boolToInt64(rec.Pinned),
		Trashed:      boolToInt64(rec.Trashed),
		CreatedAt:    timeToUnixNano(rec.CreatedAt),
		UpdatedAt:    timeToUnixNano(rec.UpdatedAt),
	}
}

// TagColorRecordFromRow converts a tag color row to a TagColorRecord.
func TagColorRecordFromRow(row sqldb.TagColor) TagColorRecord {
	return TagColorRecord{
		Tag:       row.Tag,
		Color:     row.Color,
		UpdatedAt: unixNanoToTime(row.UpdatedAt),
	}
}
