package usecase

import (
	"context"
	"fmt"

	"github.com/clipvault/clipvault/internal/capture"
	"github.com/clipvault/clipvault/internal/database"
	"github.com/clipvault/clipvault/internal/services"
	"github.com/clipvault/clipvault/internal/sidefile"
)

// Entry wires the entry and tag services with the side-file store behind the
// operations the commands expose.
type Entry struct {
	entryService *services.EntryService
	tagService   *services.TagService
	ingestor     *capture.Ingestor
	store        *sidefile.Store
}

func NewEntry(dbCtx *database.Context, store *sidefile.Store, maxItemSize int) *Entry {
	entrySvc := services.NewEntryService(dbCtx)
	return &Entry{
		entryService: entrySvc,
		tagService:   services.NewTagService(dbCtx),
		ingestor:     capture.NewIngestor(entrySvc, store, maxItemSize),
		store:        store,
	}
}

// Add captures a text payload through the same pipeline the daemon uses.
func (u *Entry) Add(ctx context.Context, text string, tags []string) (*capture.Result, error) {
	return u.ingestor.IngestText(ctx, text, tags)
}

// AddBinary captures raw bytes, sniffing the kind from the payload.
func (u *Entry) AddBinary(ctx context.Context, data []byte, tags []string) (*capture.Result, error) {
	return u.ingestor.IngestBinary(ctx, data, tags)
}

// Item is an entry with its tag set, the shape commands render.
type Item struct {
	database.EntryRecord
	Tags []string
}

// Get resolves an id or unique id prefix to a full item.
func (u *Entry) Get(ctx context.Context, idOrPrefix string) (*Item, error) {
	rec, err := u.entryService.Resolve(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	tags, err := u.entryService.TagsFor(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	return &Item{EntryRecord: *rec, Tags: tags}, nil
}

// Content returns the payload bytes for an entry: side-file bytes for binary
// kinds, the stored content otherwise.
func (u *Entry) Content(ctx context.Context, idOrPrefix string) (*Item, []byte, error) {
	item, err := u.Get(ctx, idOrPrefix)
	if err != nil {
		return nil, nil, err
	}
	if item.SideFile == "" {
		return item, []byte(item.EntryRecord.Content), nil
	}
	data, err := u.store.Read(item.SideFile)
	if err != nil {
		return nil, nil, fmt.Errorf("read side file %s: %w", item.SideFile, err)
	}
	return item, data, nil
}

// List returns items matching the filter, pinned first then newest first.
func (u *Entry) List(ctx context.Context, filter database.ListFilter) ([]Item, error) {
	records, err := u.entryService.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(records))
	for _, rec := range records {
		tags, err := u.entryService.TagsFor(ctx, rec.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, Item{EntryRecord: rec, Tags: tags})
	}
	return items, nil
}

func (u *Entry) SetPinned(ctx context.Context, idOrPrefix string, pinned bool) (*database.EntryRecord, error) {
	rec, err := u.entryService.Resolve(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	if _, err := u.entryService.SetPinned(ctx, rec.ID, pinned); err != nil {
		return nil, err
	}
	rec.Pinned = pinned
	return rec, nil
}

// SetLabel overrides (or clears, with nil) the display label. The label is
// stored verbatim; only auto-derived labels are capped. Content is never
// touched.
func (u *Entry) SetLabel(ctx context.Context, idOrPrefix string, label *string) (*database.EntryRecord, error) {
	rec, err := u.entryService.Resolve(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	if _, err := u.entryService.SetLabel(ctx, rec.ID, label); err != nil {
		return nil, err
	}
	rec.DisplayLabel = label
	return rec, nil
}

func (u *Entry) SetTrashed(ctx context.Context, idOrPrefix string, trashed bool) (*database.EntryRecord, error) {
	rec, err := u.entryService.Resolve(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	if _, err := u.entryService.SetTrashed(ctx, rec.ID, trashed); err != nil {
		return nil, err
	}
	rec.Trashed = trashed
	return rec, nil
}

// Delete removes an entry permanently, including its side-file.
func (u *Entry) Delete(ctx context.Context, idOrPrefix string) (*database.EntryRecord, error) {
	rec, err := u.entryService.Resolve(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	if _, err := u.entryService.Delete(ctx, rec.ID); err != nil {
		return nil, err
	}
	if rec.SideFile != "" {
		if err := u.store.Delete(rec.SideFile); err != nil {
			return nil, fmt.Errorf("remove side file %s: %w", rec.SideFile, err)
		}
	}
	return rec, nil
}

// VerifyPayload checks a binary entry's side file against the stored
// fingerprint. Entries without a side file always verify.
func (u *Entry) VerifyPayload(ctx context.Context, idOrPrefix string) (bool, error) {
	item, err := u.Get(ctx, idOrPrefix)
	if err != nil {
		return false, err
	}
	if item.SideFile == "" {
		return true, nil
	}
	return u.store.Verify(item.SideFile, item.Hash)
}

func (u *Entry) Count(ctx context.Context) (int64, error) {
	return u.entryService.Count(ctx)
}

// Tags exposes the tag operations alongside the entry ones.
func (u *Entry) Tags() *services.TagService {
	return u.tagService
}

// TagEntry attaches tags to an entry resolved by id or prefix.
func (u *Entry) TagEntry(ctx context.Context, idOrPrefix string, tags []string) (*database.EntryRecord, error) {
	rec, err := u.entryService.Resolve(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	for _, tag := range tags {
		if err := u.tagService.Attach(ctx, rec.ID, tag); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// UntagEntry removes tags from an entry resolved by id or prefix.
func (u *Entry) UntagEntry(ctx context.Context, idOrPrefix string, tags []string) (*database.EntryRecord, error) {
	rec, err := u.entryService.Resolve(ctx, idOrPrefix)
	if err != nil {
		return nil, err
	}
	for _, tag := range tags {
		if _, err := u.tagService.Detach(ctx, rec.ID, tag); err != nil {
			return nil, err
		}
	}
	return rec, nil
}
