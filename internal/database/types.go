package database

import (
	"time"

	"github.com/clipvault/clipvault/internal/clip"
)

// EntryRecord represents a row in the entries table.
type EntryRecord struct {
	ID           string
	Kind         clip.Kind
	Content      string
	Hash         string
	SideFile     string
	DisplayLabel *string
	Pinned       bool
	Trashed      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TagColorRecord mirrors the tag_colors side table. Colors are keyed by tag
// string, independent of entry records.
type TagColorRecord struct {
	Tag       string
	Color     string
	UpdatedAt time.Time
}

// TagCount contains the usage count for a tag.
type TagCount struct {
	Tag        string
	EntryCount int64
}
